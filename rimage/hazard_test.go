package rimage

import (
	"image"
	"testing"

	"github.com/pkg/errors"
	"go.viam.com/test"
)

func TestHazardTint(t *testing.T) {
	grid, err := NewHazardGrid(2, 2, []byte{0, 1, 255, 0})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, grid.IsObstacle(0, 0), test.ShouldBeTrue)
	test.That(t, grid.IsObstacle(1, 0), test.ShouldBeFalse)

	tint := HazardTint(grid)
	test.That(t, tint.Bounds(), test.ShouldResemble, image.Rect(0, 0, 2, 2))
	test.That(t, tint.NRGBAAt(0, 0), test.ShouldResemble, ObstacleColor)
	test.That(t, tint.NRGBAAt(1, 0), test.ShouldResemble, ClearColor)
	test.That(t, tint.NRGBAAt(0, 1), test.ShouldResemble, ClearColor)
	test.That(t, tint.NRGBAAt(1, 1), test.ShouldResemble, ObstacleColor)

	_, err = NewHazardGrid(2, 2, []byte{0, 1, 1})
	var malformed *MalformedGridError
	test.That(t, errors.As(err, &malformed), test.ShouldBeTrue)

	_, err = DecodeHazard(2, 2, "64FC1", []byte{0, 1, 1, 0})
	test.That(t, err, test.ShouldNotBeNil)
}

func TestScaleToSize(t *testing.T) {
	grid, err := NewHazardGrid(2, 2, []byte{0, 1, 1, 0})
	test.That(t, err, test.ShouldBeNil)
	tint := HazardTint(grid)

	for _, size := range []image.Point{{4, 4}, {7, 3}, {1, 1}, {2, 2}} {
		scaled := ScaleToSize(tint, size.X, size.Y)
		test.That(t, scaled.Bounds(), test.ShouldResemble, image.Rect(0, 0, size.X, size.Y))
	}

	scaled := ScaleToSize(tint, 4, 4)
	test.That(t, scaled.NRGBAAt(0, 0), test.ShouldResemble, ObstacleColor)
	test.That(t, scaled.NRGBAAt(1, 1), test.ShouldResemble, ObstacleColor)
	test.That(t, scaled.NRGBAAt(3, 3), test.ShouldResemble, ObstacleColor)
	test.That(t, scaled.NRGBAAt(3, 0).A, test.ShouldEqual, ClearColor.A)
	test.That(t, scaled.NRGBAAt(0, 3).A, test.ShouldEqual, ClearColor.A)

	aff := ScaleTransform(image.Rect(0, 0, 10, 20), image.Rect(0, 0, 40, 10))
	test.That(t, aff[0], test.ShouldEqual, 4.)
	test.That(t, aff[4], test.ShouldEqual, 0.5)
	test.That(t, aff[2], test.ShouldEqual, 0.)
	test.That(t, aff[5], test.ShouldEqual, 0.)
}
