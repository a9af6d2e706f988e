package spatialmath

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
)

// Orientation is an interface used to express the different parameterizations of the orientation
// of a rigid object or a frame of reference in 3D Euclidean space.
type Orientation interface {
	Quaternion() quat.Number
	EulerAngles() *EulerAngles
}

type quaternion quat.Number

// NewZeroOrientation returns an orientatation which signifies no rotation.
func NewZeroOrientation() Orientation {
	return &quaternion{1, 0, 0, 0}
}

// NewQuaternion returns an orientation from quaternion components in the (x, y, z, w) order used
// by ROS geometry messages.
func NewQuaternion(x, y, z, w float64) Orientation {
	return &quaternion{Real: w, Imag: x, Jmag: y, Kmag: z}
}

// Quaternion returns the orientation as a gonum quaternion.
func (q *quaternion) Quaternion() quat.Number {
	return quat.Number(*q)
}

// EulerAngles returns the static XYZ Euler angles of the orientation.
func (q *quaternion) EulerAngles() *EulerAngles {
	return QuatToEulerAngles(quat.Number(*q))
}

// OrientationAlmostEqual will return a bool describing whether 2 poses have approximately the same orientation.
func OrientationAlmostEqual(o1, o2 Orientation) bool {
	return QuaternionAlmostEqual(o1.Quaternion(), o2.Quaternion(), 1e-5)
}

// QuaternionAlmostEqual is an equality test for all the float components of a quaternion. Quaternions have double
// coverage, q and -q represent the same rotation, so both signs are accepted.
func QuaternionAlmostEqual(a, b quat.Number, tol float64) bool {
	near := func(p, q quat.Number) bool {
		return math.Abs(p.Real-q.Real) < tol &&
			math.Abs(p.Imag-q.Imag) < tol &&
			math.Abs(p.Jmag-q.Jmag) < tol &&
			math.Abs(p.Kmag-q.Kmag) < tol
	}
	return near(a, b) || near(a, quat.Scale(-1, b))
}
