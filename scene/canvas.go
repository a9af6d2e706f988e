package scene

import (
	"image"
	"image/color"
	"math"
	"sort"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"github.com/golang/geo/r2"
	"golang.org/x/image/math/f64"

	"go.viam.com/groundstation/rimage"
)

// ArrowSize is the untransformed extent of robot and steering arrows.
var ArrowSize = r2.Point{X: 16, Y: 32}

const markerPadding = 4.

var identityTransform = f64.Aff3{1, 0, 0, 0, 1, 0}

// Canvas is a Surface that composites its items with gg and renders them into a fixed size
// viewport. The most recently fitted rectangle is scaled to the viewport keeping its aspect
// ratio, centered.
type Canvas struct {
	items      []canvasItem
	sceneRect  r2.Rect
	viewRect   r2.Rect
	viewport   image.Point
	background color.Color
}

// NewCanvas returns an empty canvas with a width x height viewport.
func NewCanvas(width, height int) *Canvas {
	return &Canvas{
		sceneRect:  r2.EmptyRect(),
		viewRect:   r2.EmptyRect(),
		viewport:   image.Pt(width, height),
		background: color.White,
	}
}

type canvasItem interface {
	Item
	draw(dc *gg.Context)
}

// AddPixmap adds img as a new item.
func (c *Canvas) AddPixmap(kind OverlayKind, img image.Image) Pixmap {
	item := &pixmapItem{baseItem: newBaseItem(kind, sizeOf(img.Bounds())), img: img, aff: identityTransform}
	c.items = append(c.items, item)
	return item
}

// AddArrow adds an upward pointing arrow.
func (c *Canvas) AddArrow(kind OverlayKind, col color.Color) Item {
	item := &arrowItem{baseItem: newBaseItem(kind, ArrowSize), color: col}
	c.items = append(c.items, item)
	return item
}

// AddMarker adds a filled disc with a centered label.
func (c *Canvas) AddMarker(kind OverlayKind, label string, col color.Color) Marker {
	item := &markerItem{baseItem: newBaseItem(kind, r2.Point{}), color: col, fontSize: minGoalFontSize}
	item.SetLabel(label)
	c.items = append(c.items, item)
	return item
}

// RemoveItem removes item from the canvas. Unknown items are ignored.
func (c *Canvas) RemoveItem(item Item) {
	for i, existing := range c.items {
		if existing == item {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

// SetSceneRect sets the scene's extent.
func (c *Canvas) SetSceneRect(rect r2.Rect) {
	c.sceneRect = rect
}

// FitInView sets the rectangle shown in the viewport.
func (c *Canvas) FitInView(rect r2.Rect) {
	c.viewRect = rect
}

// SceneRect returns the scene's extent.
func (c *Canvas) SceneRect() r2.Rect {
	return c.sceneRect
}

// ViewRect returns the rectangle shown in the viewport.
func (c *Canvas) ViewRect() r2.Rect {
	return c.viewRect
}

// SetViewport changes the output size of Render.
func (c *Canvas) SetViewport(width, height int) {
	c.viewport = image.Pt(width, height)
}

// Viewport returns the output size of Render.
func (c *Canvas) Viewport() image.Point {
	return c.viewport
}

// Items returns the canvas items in the order they were added.
func (c *Canvas) Items() []Item {
	items := make([]Item, 0, len(c.items))
	for _, item := range c.items {
		items = append(items, item)
	}
	return items
}

// RenderScene draws the view rectangle at one pixel per view unit.
func (c *Canvas) RenderScene() image.Image {
	rect := c.viewRect
	if rect.IsEmpty() {
		rect = c.sceneRect
	}
	if rect.IsEmpty() {
		return image.NewNRGBA(image.Rectangle{})
	}
	width := int(math.Ceil(rect.X.Length()))
	height := int(math.Ceil(rect.Y.Length()))

	dc := gg.NewContext(width, height)
	dc.SetColor(c.background)
	dc.Clear()
	dc.Translate(-rect.X.Lo, -rect.Y.Lo)

	ordered := make([]canvasItem, len(c.items))
	copy(ordered, c.items)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Kind().ZValue() < ordered[j].Kind().ZValue()
	})
	for _, item := range ordered {
		pos, origin := item.Pos(), item.TransformOrigin()
		dc.Push()
		dc.Translate(pos.X+origin.X, pos.Y+origin.Y)
		dc.Rotate(gg.Radians(item.Rotation()))
		dc.Translate(-origin.X, -origin.Y)
		item.draw(dc)
		dc.Pop()
	}
	return dc.Image()
}

// Render draws the view rectangle scaled into the viewport, keeping its aspect ratio.
func (c *Canvas) Render() *image.NRGBA {
	out := imaging.New(c.viewport.X, c.viewport.Y, c.background)
	scene := c.RenderScene()
	sw, sh := scene.Bounds().Dx(), scene.Bounds().Dy()
	if sw == 0 || sh == 0 || c.viewport.X == 0 || c.viewport.Y == 0 {
		return out
	}
	scale := math.Min(float64(c.viewport.X)/float64(sw), float64(c.viewport.Y)/float64(sh))
	fitW := int(math.Max(1, math.Round(float64(sw)*scale)))
	fitH := int(math.Max(1, math.Round(float64(sh)*scale)))
	fitted := imaging.Resize(scene, fitW, fitH, imaging.Linear)
	return imaging.PasteCenter(out, fitted)
}

// SavePNG renders the viewport to a PNG file.
func (c *Canvas) SavePNG(path string) error {
	return imaging.Save(c.Render(), path)
}

type baseItem struct {
	kind     OverlayKind
	size     r2.Point
	pos      r2.Point
	rotation float64
	origin   r2.Point
}

func newBaseItem(kind OverlayKind, size r2.Point) baseItem {
	return baseItem{kind: kind, size: size}
}

func (b *baseItem) Kind() OverlayKind {
	return b.kind
}

func (b *baseItem) Pos() r2.Point {
	return b.pos
}

func (b *baseItem) SetPos(p r2.Point) {
	b.pos = p
}

func (b *baseItem) Rotation() float64 {
	return b.rotation
}

func (b *baseItem) SetRotation(degrees float64) {
	b.rotation = degrees
}

func (b *baseItem) TransformOrigin() r2.Point {
	return b.origin
}

func (b *baseItem) SetTransformOrigin(p r2.Point) {
	b.origin = p
}

func (b *baseItem) BoundingRect() r2.Rect {
	return r2.RectFromPoints(r2.Point{}, b.size)
}

type arrowItem struct {
	baseItem
	color color.Color
}

func (a *arrowItem) draw(dc *gg.Context) {
	rimage.DrawArrow(dc, a.size.X, a.size.Y, a.color)
}

type markerItem struct {
	baseItem
	color    color.Color
	label    string
	fontSize float64
}

func (m *markerItem) Label() string {
	return m.label
}

func (m *markerItem) SetLabel(text string) {
	m.label = text
	m.resize()
}

func (m *markerItem) SetFontSize(points float64) {
	m.fontSize = points
	m.resize()
}

// resize keeps the disc large enough to hold the label.
func (m *markerItem) resize() {
	w, h := rimage.MeasureString(m.label, m.fontSize)
	side := math.Max(math.Max(w, h), m.fontSize) + 2*markerPadding
	m.size = r2.Point{X: side, Y: side}
}

func (m *markerItem) draw(dc *gg.Context) {
	r := m.size.X / 2
	dc.SetColor(m.color)
	dc.DrawCircle(r, r, r)
	dc.Fill()
	rimage.DrawCenteredString(dc, m.label, r, r, color.White, m.fontSize)
}

type pixmapItem struct {
	baseItem
	img image.Image
	aff f64.Aff3
}

func (p *pixmapItem) Image() image.Image {
	return p.img
}

func (p *pixmapItem) Transform() f64.Aff3 {
	return p.aff
}

func (p *pixmapItem) SetTransform(aff f64.Aff3) {
	p.aff = aff
}

func (p *pixmapItem) draw(dc *gg.Context) {
	img := p.img
	if p.aff != identityTransform {
		shown := DisplayedBounds(p).Size()
		img = rimage.ScaleToSize(img, int(math.Round(shown.X)), int(math.Round(shown.Y)))
	}
	dc.DrawImage(img, int(math.Round(p.aff[2])), int(math.Round(p.aff[5])))
}

func sizeOf(r image.Rectangle) r2.Point {
	return r2.Point{X: float64(r.Dx()), Y: float64(r.Dy())}
}
