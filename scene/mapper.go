package scene

import (
	"github.com/golang/geo/r2"
	"github.com/golang/geo/r1"
	"github.com/pkg/errors"

	"go.viam.com/groundstation/utils"
)

const (
	// DefaultDownsample is the divisor applied to world coordinates and DEM dimensions.
	DefaultDownsample = 4
	// DefaultMargin is the border left around the raster on every side of the scene.
	DefaultMargin = 50.
	// headingOffset turns icons drawn pointing up so that a zero yaw points along +x.
	headingOffset = 90.
)

// Mapper holds the world to view transform shared by every overlay.
type Mapper struct {
	downsample int
	margin     float64
}

// NewMapper returns a mapper for the given downsample factor and scene margin.
func NewMapper(downsample int, margin float64) (*Mapper, error) {
	if downsample < 1 {
		return nil, errors.Errorf("downsample must be at least 1, got %d", downsample)
	}
	if margin < 0 {
		return nil, errors.Errorf("margin cannot be negative, got %v", margin)
	}
	return &Mapper{downsample: downsample, margin: margin}, nil
}

// Downsample returns the downsample factor.
func (m *Mapper) Downsample() int {
	return m.downsample
}

// Margin returns the scene margin.
func (m *Mapper) Margin() float64 {
	return m.margin
}

// Place returns the top-left position for an overlay of the given size so that its center sits on
// the world point.
func (m *Mapper) Place(worldX, worldY float64, size r2.Point) r2.Point {
	return WorldToView(worldX, worldY, m.downsample).Add(CenterOffset(size.X, size.Y))
}

// SceneBounds returns the scene rectangle for a raster of the given size.
func (m *Mapper) SceneBounds(rasterWidth, rasterHeight int) r2.Rect {
	return SceneBounds(rasterWidth, rasterHeight, m.margin)
}

// WorldToView divides world coordinates by the downsample factor. There is no rotation or
// mirroring.
func WorldToView(worldX, worldY float64, downsample int) r2.Point {
	d := float64(downsample)
	return r2.Point{X: worldX / d, Y: worldY / d}
}

// CenterOffset is the shift that centers a width x height box on a point.
func CenterOffset(width, height float64) r2.Point {
	return r2.Point{X: -width / 2, Y: -height / 2}
}

// SceneBounds is the raster's rectangle grown by margin on each side.
func SceneBounds(rasterWidth, rasterHeight int, margin float64) r2.Rect {
	return r2.Rect{
		X: r1.Interval{Lo: -margin, Hi: float64(rasterWidth) + margin},
		Y: r1.Interval{Lo: -margin, Hi: float64(rasterHeight) + margin},
	}
}

// HeadingDegrees converts a yaw in radians to the rotation of a directional icon.
func HeadingDegrees(yaw float64) float64 {
	return utils.RadToDeg(yaw) + headingOffset
}
