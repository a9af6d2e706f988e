package spatialmath

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
)

// matrix entries smaller than this are treated as zero when detecting gimbal lock.
const eulerEpsilon = 4 * 2.220446049250313e-16

// EulerAngles are three angles (in radians) used to represent the rotation of an object in 3D
// Euclidean space. The angles are applied about the static x, y and z axes in that order, so roll
// happens first and yaw last.
type EulerAngles struct {
	Roll  float64 `json:"roll"`
	Pitch float64 `json:"pitch"`
	Yaw   float64 `json:"yaw"`
}

// NewEulerAngles creates an empty EulerAngles struct.
func NewEulerAngles() *EulerAngles {
	return &EulerAngles{Roll: 0, Pitch: 0, Yaw: 0}
}

// EulerAngles returns orientation in Euler angle representation.
func (ea *EulerAngles) EulerAngles() *EulerAngles {
	return ea
}

// Quaternion returns orientation in quaternion representation.
func (ea *EulerAngles) Quaternion() quat.Number {
	half := func(angle float64, axis int) quat.Number {
		s, c := math.Sincos(angle / 2)
		q := quat.Number{Real: c}
		switch axis {
		case 0:
			q.Imag = s
		case 1:
			q.Jmag = s
		default:
			q.Kmag = s
		}
		return q
	}
	// static axes compose right to left
	return quat.Mul(half(ea.Yaw, 2), quat.Mul(half(ea.Pitch, 1), half(ea.Roll, 0)))
}

// QuatToEulerAngles converts a quaternion to static XYZ Euler angles. The quaternion does not need
// to be normalized; a zero quaternion yields zero angles.
func QuatToEulerAngles(q quat.Number) *EulerAngles {
	n := quat.Abs(q)
	if n < eulerEpsilon {
		return NewEulerAngles()
	}
	q = quat.Scale(1/n, q)
	w, x, y, z := q.Real, q.Imag, q.Jmag, q.Kmag

	m00 := 1 - 2*(y*y+z*z)
	m10 := 2 * (x*y + w*z)
	m11 := 1 - 2*(x*x+z*z)
	m12 := 2 * (y*z - w*x)
	m20 := 2 * (x*z - w*y)
	m21 := 2 * (y*z + w*x)
	m22 := 1 - 2*(x*x+y*y)

	cy := math.Hypot(m00, m10)
	if cy > eulerEpsilon {
		return &EulerAngles{
			Roll:  math.Atan2(m21, m22),
			Pitch: math.Atan2(-m20, cy),
			Yaw:   math.Atan2(m10, m00),
		}
	}
	// gimbal lock, yaw is folded into roll
	return &EulerAngles{
		Roll:  math.Atan2(-m12, m11),
		Pitch: math.Atan2(-m20, cy),
		Yaw:   0,
	}
}
