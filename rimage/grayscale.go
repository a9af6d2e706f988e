package rimage

import (
	"image"
	"math"

	"go.viam.com/groundstation/utils"
)

// BuildGrayscale normalizes grid onto 0-255 using its min/max heights. Each cell maps to
// floor((z-min)*255/range). A flat grid maps every cell to 0, as do NaN cells.
func BuildGrayscale(grid *ElevationGrid) *image.Gray {
	gray := image.NewGray(image.Rect(0, 0, grid.width, grid.height))

	minZ, maxZ, err := grid.DynamicRange()
	if err != nil {
		// flat, leave zeroed
		return gray
	}
	dynRange := maxZ - minZ

	for y := 0; y < grid.height; y++ {
		for x := 0; x < grid.width; x++ {
			z := grid.At(x, y)
			if math.IsNaN(z) {
				continue
			}
			if z >= maxZ {
				gray.Pix[y*gray.Stride+x] = 255
				continue
			}
			v := math.Floor((z - minZ) * 255 / dynRange)
			gray.Pix[y*gray.Stride+x] = uint8(utils.ClampFloat(v, 0, 255))
		}
	}
	return gray
}
