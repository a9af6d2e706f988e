package scene

import (
	"image"
	"image/color"

	"github.com/golang/geo/r2"
	"golang.org/x/image/math/f64"
)

// OverlayKind identifies a scene item. Kinds are ordered by stacking: later kinds draw on top.
type OverlayKind int

// The scene items.
const (
	DEMLayer OverlayKind = iota
	HazardOverlay
	GoalMarker
	RobotMarker
	SteeringArrow
)

func (k OverlayKind) String() string {
	switch k {
	case DEMLayer:
		return "dem"
	case HazardOverlay:
		return "hazard"
	case GoalMarker:
		return "goal"
	case RobotMarker:
		return "robot"
	case SteeringArrow:
		return "steer"
	default:
		return "unknown"
	}
}

// ZValue is the stacking order of the kind.
func (k OverlayKind) ZValue() float64 {
	return float64(k)
}

// Item is a positioned, rotatable drawable owned by a Surface. Positions are the top-left corner
// of the item's bounding rectangle, in view coordinates. Rotation is in degrees about the
// transform origin, which is relative to the item's top-left.
type Item interface {
	Kind() OverlayKind
	Pos() r2.Point
	SetPos(p r2.Point)
	Rotation() float64
	SetRotation(degrees float64)
	TransformOrigin() r2.Point
	SetTransformOrigin(p r2.Point)
	// BoundingRect is the item's untransformed extent in its own coordinates.
	BoundingRect() r2.Rect
}

// Marker is an item carrying a text label.
type Marker interface {
	Item
	Label() string
	SetLabel(text string)
	SetFontSize(points float64)
}

// Pixmap is an image item with an extra affine transform applied before positioning.
type Pixmap interface {
	Item
	Image() image.Image
	Transform() f64.Aff3
	SetTransform(aff f64.Aff3)
}

// Surface is the drawing toolkit the scene is composited on.
type Surface interface {
	AddPixmap(kind OverlayKind, img image.Image) Pixmap
	AddArrow(kind OverlayKind, c color.Color) Item
	AddMarker(kind OverlayKind, label string, c color.Color) Marker
	RemoveItem(item Item)
	SetSceneRect(rect r2.Rect)
	FitInView(rect r2.Rect)
}

// Palette holds the overlay colors.
type Palette struct {
	Robot color.Color
	Goal  color.Color
	Arrow color.Color
}

// DefaultPalette is purple for the robot, blue for the goal and black for the steering arrow.
var DefaultPalette = Palette{
	Robot: color.NRGBA{R: 125, G: 0, B: 125, A: 255},
	Goal:  color.NRGBA{R: 68, G: 134, B: 252, A: 255},
	Arrow: color.Black,
}

// DisplayedBounds is the pixmap's bounding rectangle after its transform, relative to its
// position.
func DisplayedBounds(p Pixmap) r2.Rect {
	b, aff := p.BoundingRect(), p.Transform()
	apply := func(x, y float64) r2.Point {
		return r2.Point{X: aff[0]*x + aff[1]*y + aff[2], Y: aff[3]*x + aff[4]*y + aff[5]}
	}
	return r2.RectFromPoints(apply(b.X.Lo, b.Y.Lo), apply(b.X.Hi, b.Y.Hi))
}

// placeCentered moves item so its center lands on the world point.
func placeCentered(m *Mapper, item Item, worldX, worldY float64) {
	item.SetPos(m.Place(worldX, worldY, item.BoundingRect().Size()))
}

// orient rotates item about its own center.
func orient(item Item, yaw float64) {
	size := item.BoundingRect().Size()
	item.SetTransformOrigin(r2.Point{X: size.X / 2, Y: size.Y / 2})
	item.SetRotation(HeadingDegrees(yaw))
}
