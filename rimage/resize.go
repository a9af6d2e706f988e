package rimage

import (
	"math"

	"github.com/pkg/errors"

	"go.viam.com/groundstation/utils"
)

// Downsample shrinks grid by an integer factor. The result is floor(W/factor) x floor(H/factor)
// cells, never smaller than 1x1, sampled with bilinear interpolation between source cell centers.
// A factor of 1 returns a copy.
func Downsample(grid *ElevationGrid, factor int) (*ElevationGrid, error) {
	if factor < 1 {
		return nil, errors.Errorf("downsample factor must be at least 1, got %d", factor)
	}
	if factor == 1 {
		return grid.clone(), nil
	}
	return Resize(grid, utils.MaxInt(1, grid.width/factor), utils.MaxInt(1, grid.height/factor)), nil
}

// Resize resamples grid to exactly width x height cells using bilinear interpolation.
func Resize(grid *ElevationGrid, width, height int) *ElevationGrid {
	if width == grid.width && height == grid.height {
		return grid.clone()
	}

	scaleX := float64(grid.width) / float64(width)
	scaleY := float64(grid.height) / float64(height)
	out := make([]float64, width*height)

	for y := 0; y < height; y++ {
		y0, y1, fy := sampleAxis((float64(y)+0.5)*scaleY-0.5, grid.height)
		for x := 0; x < width; x++ {
			x0, x1, fx := sampleAxis((float64(x)+0.5)*scaleX-0.5, grid.width)
			top := grid.At(x0, y0)*(1-fx) + grid.At(x1, y0)*fx
			bottom := grid.At(x0, y1)*(1-fx) + grid.At(x1, y1)*fx
			out[y*width+x] = top*(1-fy) + bottom*fy
		}
	}
	return &ElevationGrid{width: width, height: height, data: out}
}

// sampleAxis returns the two neighbouring source indices around pos and the weight of the second.
// Positions outside the grid clamp to the edge cell.
func sampleAxis(pos float64, n int) (int, int, float64) {
	if pos <= 0 {
		return 0, 0, 0
	}
	i0 := int(math.Floor(pos))
	if i0 >= n-1 {
		return n - 1, n - 1, 0
	}
	return i0, i0 + 1, pos - float64(i0)
}
