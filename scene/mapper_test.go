package scene

import (
	"math"
	"testing"

	"github.com/golang/geo/r2"
	"go.viam.com/test"
)

func TestWorldToView(t *testing.T) {
	test.That(t, WorldToView(8, 12, 4), test.ShouldResemble, r2.Point{X: 2, Y: 3})
	test.That(t, WorldToView(-3, 5, 1), test.ShouldResemble, r2.Point{X: -3, Y: 5})
	test.That(t, CenterOffset(16, 32), test.ShouldResemble, r2.Point{X: -8, Y: -16})
}

func TestPlaceCentersOverlay(t *testing.T) {
	size := r2.Point{X: 16, Y: 32}
	for _, downsample := range []int{1, 2, 4, 7} {
		m, err := NewMapper(downsample, DefaultMargin)
		test.That(t, err, test.ShouldBeNil)
		for _, world := range []r2.Point{{X: 0, Y: 0}, {X: 8, Y: 8}, {X: 123.5, Y: -40}} {
			pos := m.Place(world.X, world.Y, size)
			center := pos.Add(size.Mul(0.5))
			test.That(t, center.X, test.ShouldAlmostEqual, world.X/float64(downsample))
			test.That(t, center.Y, test.ShouldAlmostEqual, world.Y/float64(downsample))
		}
	}
}

func TestSceneBounds(t *testing.T) {
	bounds := SceneBounds(200, 100, 50)
	test.That(t, bounds.Lo(), test.ShouldResemble, r2.Point{X: -50, Y: -50})
	test.That(t, bounds.Size(), test.ShouldResemble, r2.Point{X: 300, Y: 200})

	m, err := NewMapper(DefaultDownsample, 10)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, m.SceneBounds(4, 4).Size(), test.ShouldResemble, r2.Point{X: 24, Y: 24})
}

func TestHeadingDegrees(t *testing.T) {
	test.That(t, HeadingDegrees(0), test.ShouldEqual, 90.)
	test.That(t, HeadingDegrees(math.Pi/2), test.ShouldAlmostEqual, 180.)
	test.That(t, HeadingDegrees(-math.Pi/2), test.ShouldAlmostEqual, 0.)
}

func TestNewMapperErrors(t *testing.T) {
	_, err := NewMapper(0, DefaultMargin)
	test.That(t, err, test.ShouldNotBeNil)
	_, err = NewMapper(2, -1)
	test.That(t, err, test.ShouldNotBeNil)
}
