package rimage

import (
	"encoding/binary"
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

// ElevationEncoding is the image encoding tag of a single channel float64 elevation image.
const ElevationEncoding = "64FC1"

const bytesPerElevation = 8

// ElevationGrid is a row-major grid of terrain heights. It is immutable once built; a new DEM
// replaces the grid wholesale.
type ElevationGrid struct {
	width  int
	height int
	data   []float64
}

// NewElevationGrid wraps data as a width x height grid. The grid takes ownership of data.
func NewElevationGrid(width, height int, data []float64) (*ElevationGrid, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.Errorf("bad width or height for elevation grid %d %d", width, height)
	}
	if len(data) != width*height {
		return nil, NewMalformedGridError(width, height, len(data)*bytesPerElevation, width*height*bytesPerElevation)
	}
	return &ElevationGrid{width: width, height: height, data: data}, nil
}

// DecodeElevation decodes a little-endian float64 row-major payload, as carried by an elevation
// image message.
func DecodeElevation(width, height int, encoding string, payload []byte) (*ElevationGrid, error) {
	switch encoding {
	case "", ElevationEncoding, "passthrough":
	default:
		return nil, NewUnsupportedEncodingError(encoding)
	}
	if width <= 0 || height <= 0 {
		return nil, errors.Errorf("bad width or height for elevation grid %d %d", width, height)
	}
	if want := width * height * bytesPerElevation; len(payload) != want {
		return nil, NewMalformedGridError(width, height, len(payload), want)
	}

	data := make([]float64, width*height)
	for i := range data {
		data[i] = math.Float64frombits(binary.LittleEndian.Uint64(payload[i*bytesPerElevation:]))
	}
	return &ElevationGrid{width: width, height: height, data: data}, nil
}

// EncodeElevation is the inverse of DecodeElevation.
func EncodeElevation(grid *ElevationGrid) []byte {
	out := make([]byte, len(grid.data)*bytesPerElevation)
	for i, z := range grid.data {
		binary.LittleEndian.PutUint64(out[i*bytesPerElevation:], math.Float64bits(z))
	}
	return out
}

// Width returns the number of columns.
func (g *ElevationGrid) Width() int {
	return g.width
}

// Height returns the number of rows.
func (g *ElevationGrid) Height() int {
	return g.height
}

// At returns the height at column x, row y.
func (g *ElevationGrid) At(x, y int) float64 {
	return g.data[y*g.width+x]
}

// DynamicRange returns the lowest and highest heights in the grid. NaN cells are ignored. A
// flat grid returns a DegenerateRangeError alongside its single height.
func (g *ElevationGrid) DynamicRange() (float64, float64, error) {
	values := g.data
	if floats.HasNaN(values) {
		values = make([]float64, 0, len(g.data))
		for _, z := range g.data {
			if !math.IsNaN(z) {
				values = append(values, z)
			}
		}
		if len(values) == 0 {
			return math.NaN(), math.NaN(), NewDegenerateRangeError(math.NaN())
		}
	}

	minZ, maxZ := floats.Min(values), floats.Max(values)
	if maxZ-minZ == 0 {
		return minZ, maxZ, NewDegenerateRangeError(minZ)
	}
	return minZ, maxZ, nil
}

func (g *ElevationGrid) clone() *ElevationGrid {
	data := make([]float64, len(g.data))
	copy(data, g.data)
	return &ElevationGrid{width: g.width, height: g.height, data: data}
}
