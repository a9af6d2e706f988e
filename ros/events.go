package ros

import (
	"encoding/json"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"go.viam.com/groundstation/spatialmath"
	"go.viam.com/groundstation/telemetry"
)

const elevationCellBytes = 8

// EventFromMessage decodes one recorded message of the given kind.
func EventFromMessage(kind telemetry.Kind, raw []byte) (telemetry.Event, error) {
	switch kind {
	case telemetry.KindRobotState:
		var msg RobotStateMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			return nil, errors.Wrap(err, "error decoding robot state")
		}
		p, q := msg.Data.Pose.Position, msg.Data.Pose.Orientation
		pose := spatialmath.NewPose(r3.Vector{X: p.X, Y: p.Y, Z: p.Z}, spatialmath.NewQuaternion(q.X, q.Y, q.Z, q.W))
		return telemetry.RobotState{Pose: pose, Fuel: msg.Data.Fuel}, nil
	case telemetry.KindGoal:
		var msg NamedGoalMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			return nil, errors.Wrap(err, "error decoding goal")
		}
		return telemetry.NamedGoal{ID: string(msg.Data.ID), X: msg.Data.Pose.X, Y: msg.Data.Pose.Y}, nil
	case telemetry.KindElevation:
		var msg ImageMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			return nil, errors.Wrap(err, "error decoding elevation image")
		}
		data := compactRows(msg, elevationCellBytes)
		if msg.Data.IsBigendian != 0 {
			data = swapWords(data, elevationCellBytes)
		}
		return telemetry.ElevationImage{
			Width: msg.Data.Width, Height: msg.Data.Height, Encoding: msg.Data.Encoding, Data: data,
		}, nil
	case telemetry.KindHazard:
		var msg ImageMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			return nil, errors.Wrap(err, "error decoding hazard image")
		}
		return telemetry.HazardImage{
			Width: msg.Data.Width, Height: msg.Data.Height, Encoding: msg.Data.Encoding, Data: compactRows(msg, 1),
		}, nil
	case telemetry.KindJoy:
		var msg JoyMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			return nil, errors.Wrap(err, "error decoding joystick")
		}
		return telemetry.Joy{Axes: msg.Data.Axes, Buttons: msg.Data.Buttons}, nil
	default:
		return nil, errors.Errorf("unknown message kind %q", kind)
	}
}

// compactRows drops row padding when the image step is wider than its pixels.
func compactRows(msg ImageMessage, cellBytes int) []byte {
	d := msg.Data
	rowBytes := d.Width * cellBytes
	if d.Step <= rowBytes || d.Height <= 0 || len(d.Data) != d.Step*d.Height {
		return d.Data
	}
	out := make([]byte, 0, rowBytes*d.Height)
	for row := 0; row < d.Height; row++ {
		out = append(out, d.Data[row*d.Step:row*d.Step+rowBytes]...)
	}
	return out
}

// swapWords reverses the byte order of every size byte word in data.
func swapWords(data []byte, size int) []byte {
	out := make([]byte, len(data))
	copy(out, data)
	for i := 0; i+size <= len(out); i += size {
		word := out[i : i+size]
		for l, r := 0, size-1; l < r; l, r = l+1, r-1 {
			word[l], word[r] = word[r], word[l]
		}
	}
	return out
}
