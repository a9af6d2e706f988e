package utils

import (
	"math"
	"testing"

	"go.viam.com/test"
)

func TestAngles(t *testing.T) {
	test.That(t, DegToRad(180), test.ShouldAlmostEqual, math.Pi)
	test.That(t, RadToDeg(math.Pi/2), test.ShouldAlmostEqual, 90)
	test.That(t, RadToDeg(DegToRad(33.3)), test.ShouldAlmostEqual, 33.3)
}

func TestClamp(t *testing.T) {
	test.That(t, ClampFloat(-1, 0, 255), test.ShouldEqual, 0)
	test.That(t, ClampFloat(300, 0, 255), test.ShouldEqual, 255)
	test.That(t, ClampFloat(12.5, 0, 255), test.ShouldEqual, 12.5)
	test.That(t, MaxInt(1, 3), test.ShouldEqual, 3)
	test.That(t, MaxInt(4, -3), test.ShouldEqual, 4)
}
