package spatialmath

import (
	"fmt"

	"github.com/golang/geo/r3"
)

// Pose represents a 6dof pose: a position in the vehicle's world frame and an orientation.
type Pose interface {
	Point() r3.Vector
	Orientation() Orientation
}

type pose struct {
	point       r3.Vector
	orientation Orientation
}

// NewZeroPose returns a pose at the origin with no rotation.
func NewZeroPose() Pose {
	return &pose{orientation: NewZeroOrientation()}
}

// NewPose creates a pose from a point and an orientation. A nil orientation means no rotation.
func NewPose(p r3.Vector, o Orientation) Pose {
	if o == nil {
		o = NewZeroOrientation()
	}
	return &pose{point: p, orientation: o}
}

func (p *pose) Point() r3.Vector {
	return p.point
}

func (p *pose) Orientation() Orientation {
	return p.orientation
}

func (p *pose) String() string {
	ea := p.orientation.EulerAngles()
	return fmt.Sprintf("{X:%.3f Y:%.3f Z:%.3f Roll:%.3f Pitch:%.3f Yaw:%.3f}",
		p.point.X, p.point.Y, p.point.Z, ea.Roll, ea.Pitch, ea.Yaw)
}

// PoseAlmostEqual will return a bool describing whether 2 poses are approximately the same.
func PoseAlmostEqual(a, b Pose) bool {
	return a.Point().Sub(b.Point()).Norm() < 1e-8 && OrientationAlmostEqual(a.Orientation(), b.Orientation())
}
