// Package telemetry defines the inbound ground station events and the dispatcher that delivers
// them, one at a time and in arrival order, to their handlers.
package telemetry

import (
	"go.viam.com/groundstation/spatialmath"
)

// Kind names an event stream.
type Kind string

// The inbound event streams.
const (
	KindRobotState Kind = "state"
	KindGoal       Kind = "current_goal"
	KindElevation  Kind = "dem"
	KindHazard     Kind = "hazmap"
	KindJoy        Kind = "joy"
)

// Event is one inbound telemetry message.
type Event interface {
	Kind() Kind
}

// RobotState is the vehicle's latest pose and fuel level.
type RobotState struct {
	Pose spatialmath.Pose
	Fuel float64
}

// Kind returns KindRobotState.
func (RobotState) Kind() Kind { return KindRobotState }

// NamedGoal is the current navigation goal.
type NamedGoal struct {
	ID string
	X  float64
	Y  float64
}

// Kind returns KindGoal.
func (NamedGoal) Kind() Kind { return KindGoal }

// ElevationImage carries a DEM as a raw image payload.
type ElevationImage struct {
	Width    int
	Height   int
	Encoding string
	Data     []byte
}

// Kind returns KindElevation.
func (ElevationImage) Kind() Kind { return KindElevation }

// HazardImage carries a hazard map as a raw 8 bit image payload.
type HazardImage struct {
	Width    int
	Height   int
	Encoding string
	Data     []byte
}

// Kind returns KindHazard.
func (HazardImage) Kind() Kind { return KindHazard }

// Joy is a joystick sample.
type Joy struct {
	Axes    []float64
	Buttons []int
}

// Kind returns KindJoy.
func (Joy) Kind() Kind { return KindJoy }
