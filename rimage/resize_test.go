package rimage

import (
	"testing"

	"go.viam.com/test"
)

func ramp(t *testing.T, w, h int) *ElevationGrid {
	t.Helper()
	data := make([]float64, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			data[y*w+x] = float64(x)
		}
	}
	grid, err := NewElevationGrid(w, h, data)
	test.That(t, err, test.ShouldBeNil)
	return grid
}

func TestDownsample(t *testing.T) {
	grid := ramp(t, 8, 6)

	t.Run("dimensions", func(t *testing.T) {
		small, err := Downsample(grid, 2)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, small.Width(), test.ShouldEqual, 4)
		test.That(t, small.Height(), test.ShouldEqual, 3)

		small, err = Downsample(grid, 4)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, small.Width(), test.ShouldEqual, 2)
		test.That(t, small.Height(), test.ShouldEqual, 1)

		small, err = Downsample(grid, 100)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, small.Width(), test.ShouldEqual, 1)
		test.That(t, small.Height(), test.ShouldEqual, 1)
	})

	t.Run("linear", func(t *testing.T) {
		// each output cell lands between two source cells
		small, err := Downsample(grid, 2)
		test.That(t, err, test.ShouldBeNil)
		for x := 0; x < small.Width(); x++ {
			test.That(t, small.At(x, 1), test.ShouldAlmostEqual, 2*float64(x)+0.5)
		}
	})

	t.Run("identity", func(t *testing.T) {
		same, err := Downsample(grid, 1)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, same.Width(), test.ShouldEqual, 8)
		test.That(t, same.At(5, 5), test.ShouldEqual, 5.)
	})

	t.Run("bad factor", func(t *testing.T) {
		_, err := Downsample(grid, 0)
		test.That(t, err, test.ShouldNotBeNil)
		test.That(t, err.Error(), test.ShouldContainSubstring, "at least 1")
	})

	t.Run("constant", func(t *testing.T) {
		flat, err := NewElevationGrid(5, 5, []float64{
			3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3,
		})
		test.That(t, err, test.ShouldBeNil)
		small := Resize(flat, 3, 2)
		for y := 0; y < 2; y++ {
			for x := 0; x < 3; x++ {
				test.That(t, small.At(x, y), test.ShouldAlmostEqual, 3.)
			}
		}
	})
}
