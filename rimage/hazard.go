package rimage

import (
	"image"
	"image/color"

	"github.com/pkg/errors"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// ObstacleCode is the hazard cell value that marks an obstacle. Every other value is clear.
const ObstacleCode = 0

var (
	// ObstacleColor is the tint of an obstacle cell.
	ObstacleColor = color.NRGBA{R: 0xff, G: 0x00, B: 0x00, A: 0xff}
	// ClearColor is the tint of a traversable cell.
	ClearColor = color.NRGBA{R: 0xdd, G: 0xdd, B: 0xdd, A: 0xdd}
)

// HazardGrid is a row-major grid of single byte hazard codes. Its resolution is independent of
// the elevation grid.
type HazardGrid struct {
	width  int
	height int
	data   []byte
}

// NewHazardGrid wraps data as a width x height hazard grid.
func NewHazardGrid(width, height int, data []byte) (*HazardGrid, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.Errorf("bad width or height for hazard grid %d %d", width, height)
	}
	if len(data) != width*height {
		return nil, NewMalformedGridError(width, height, len(data), width*height)
	}
	return &HazardGrid{width: width, height: height, data: data}, nil
}

// DecodeHazard builds a hazard grid from an 8 bit single channel image payload.
func DecodeHazard(width, height int, encoding string, payload []byte) (*HazardGrid, error) {
	switch encoding {
	case "", "mono8", "8UC1", "passthrough":
	default:
		return nil, NewUnsupportedEncodingError(encoding)
	}
	data := make([]byte, len(payload))
	copy(data, payload)
	return NewHazardGrid(width, height, data)
}

// Width returns the number of columns.
func (h *HazardGrid) Width() int {
	return h.width
}

// Height returns the number of rows.
func (h *HazardGrid) Height() int {
	return h.height
}

// IsObstacle reports whether the cell at column x, row y is an obstacle.
func (h *HazardGrid) IsObstacle(x, y int) bool {
	return h.data[y*h.width+x] == ObstacleCode
}

// HazardTint maps every hazard cell to its fixed tint, at the grid's native resolution.
func HazardTint(grid *HazardGrid) *image.NRGBA {
	tint := image.NewNRGBA(image.Rect(0, 0, grid.width, grid.height))
	for y := 0; y < grid.height; y++ {
		for x := 0; x < grid.width; x++ {
			c := ClearColor
			if grid.IsObstacle(x, y) {
				c = ObstacleColor
			}
			tint.SetNRGBA(x, y, c)
		}
	}
	return tint
}

// ScaleTransform returns the affine transform that stretches a src sized image onto a dst sized
// one. It scales only; there is no translation or rotation.
func ScaleTransform(src, dst image.Rectangle) f64.Aff3 {
	return f64.Aff3{
		float64(dst.Dx()) / float64(src.Dx()), 0, 0,
		0, float64(dst.Dy()) / float64(src.Dy()), 0,
	}
}

// ScaleToSize stretches img to exactly width x height through an affine scale. Cells are not
// blended so hazard edges stay sharp.
func ScaleToSize(img image.Image, width, height int) *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, width, height))
	if img.Bounds().Empty() || width <= 0 || height <= 0 {
		return out
	}
	src := img.Bounds()
	aff := ScaleTransform(src, out.Bounds())
	aff[2] = -float64(src.Min.X) * aff[0]
	aff[5] = -float64(src.Min.Y) * aff[4]
	xdraw.NearestNeighbor.Transform(out, aff, img, src, xdraw.Src, nil)
	return out
}
