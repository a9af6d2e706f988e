package rimage

import (
	"math/rand"
	"sort"
	"testing"

	"go.viam.com/test"
)

func TestBuildGrayscaleScenario(t *testing.T) {
	grid, err := NewElevationGrid(4, 4, []float64{
		0, 0, 0, 0,
		0, 10, 10, 0,
		0, 10, 10, 0,
		0, 0, 0, 0,
	})
	test.That(t, err, test.ShouldBeNil)
	small, err := Downsample(grid, 1)
	test.That(t, err, test.ShouldBeNil)

	gray := BuildGrayscale(small)
	test.That(t, gray.Bounds().Dx(), test.ShouldEqual, 4)
	test.That(t, gray.Bounds().Dy(), test.ShouldEqual, 4)
	for _, corner := range [][2]int{{0, 0}, {3, 0}, {0, 3}, {3, 3}} {
		test.That(t, gray.GrayAt(corner[0], corner[1]).Y, test.ShouldEqual, uint8(0))
	}
	for _, center := range [][2]int{{1, 1}, {2, 1}, {1, 2}, {2, 2}} {
		test.That(t, gray.GrayAt(center[0], center[1]).Y, test.ShouldEqual, uint8(255))
	}
}

func TestBuildGrayscaleFlat(t *testing.T) {
	grid, err := NewElevationGrid(3, 3, []float64{5, 5, 5, 5, 5, 5, 5, 5, 5})
	test.That(t, err, test.ShouldBeNil)
	gray := BuildGrayscale(grid)
	for _, v := range gray.Pix {
		test.That(t, v, test.ShouldEqual, uint8(0))
	}
}

func TestBuildGrayscaleMonotonic(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	const w, h = 16, 9
	data := make([]float64, w*h)
	for i := range data {
		data[i] = r.Float64()*400 - 120
	}
	grid, err := NewElevationGrid(w, h, data)
	test.That(t, err, test.ShouldBeNil)
	gray := BuildGrayscale(grid)

	idx := make([]int, len(data))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool { return data[idx[a]] < data[idx[b]] })

	test.That(t, gray.Pix[idx[0]], test.ShouldEqual, uint8(0))
	test.That(t, gray.Pix[idx[len(idx)-1]], test.ShouldEqual, uint8(255))
	for i := 1; i < len(idx); i++ {
		test.That(t, gray.Pix[idx[i]], test.ShouldBeGreaterThanOrEqualTo, gray.Pix[idx[i-1]])
	}
}
