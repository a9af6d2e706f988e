package ros

import (
	"bytes"
	"encoding/json"
	"time"
)

// Time is a ROS timestamp.
type Time struct {
	Secs  int64 `json:"secs"`
	Nsecs int64 `json:"nsecs"`
}

// Nanos returns the timestamp in nanoseconds since the epoch.
func (t Time) Nanos() int64 {
	return t.Secs*int64(time.Second) + t.Nsecs
}

// NewTime converts t to a ROS timestamp.
func NewTime(t time.Time) Time {
	if t.IsZero() {
		return Time{}
	}
	nanos := t.UnixNano()
	return Time{Secs: nanos / int64(time.Second), Nsecs: nanos % int64(time.Second)}
}

// Header is the std_msgs header.
type Header struct {
	Seq     int    `json:"seq"`
	Stamp   Time   `json:"stamp"`
	FrameID string `json:"frame_id"`
}

// Point is a geometry_msgs point.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Quaternion is a geometry_msgs quaternion in x, y, z, w order.
type Quaternion struct {
	X float64
	Y float64
	Z float64
	W float64
}

// Pose is a geometry_msgs pose.
type Pose struct {
	Position    Point
	Orientation Quaternion
}

// Pose2D is a geometry_msgs planar pose.
type Pose2D struct {
	X     float64
	Y     float64
	Theta float64
}

// GoalID is a goal identifier sent either as a string or as a number.
type GoalID string

// UnmarshalJSON accepts a JSON string or number.
func (id *GoalID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = GoalID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = GoalID(n.String())
	return nil
}

// RobotStateMessage is a recorded robot state: the vehicle pose and its fuel level.
type RobotStateMessage struct {
	Meta Time
	Data struct {
		Header Header
		Pose   Pose
		Fuel   float64
	}
}

// NamedGoalMessage is a recorded navigation goal.
type NamedGoalMessage struct {
	Meta Time
	Data struct {
		ID   GoalID
		Pose Pose2D
	}
}

// ImageMessage is a recorded sensor_msgs image. Data is base64 encoded in the recording.
type ImageMessage struct {
	Meta Time
	Data struct {
		Header      Header
		Height      int
		Width       int
		Encoding    string
		IsBigendian uint8 `json:"is_bigendian"`
		Step        int
		Data        []byte
	}
}

// JoyMessage is a recorded joystick sample.
type JoyMessage struct {
	Meta Time
	Data struct {
		Header  Header
		Axes    []float64
		Buttons []int
	}
}

// SteeringMessage is the outbound steering command. Steer is in degrees.
type SteeringMessage struct {
	Header Header  `json:"header"`
	Steer  float64 `json:"steer"`
	ID     string  `json:"id"`
	Goal   Point   `json:"goal"`
}

// meta is the part every recorded message shares.
type meta struct {
	Meta Time
}
