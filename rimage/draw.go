package rimage

import (
	"image/color"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
)

var labelFont *truetype.Font

func init() {
	var err error
	labelFont, err = truetype.Parse(gobold.TTF)
	if err != nil {
		panic(err)
	}
}

// LabelFace returns the bold sans face used for overlay labels at the given point size.
func LabelFace(size float64) font.Face {
	return truetype.NewFace(labelFont, &truetype.Options{Size: size})
}

// MeasureString returns the width and height of text drawn in the label face.
func MeasureString(text string, size float64) (float64, float64) {
	dc := gg.NewContext(1, 1)
	dc.SetFontFace(LabelFace(size))
	return dc.MeasureString(text)
}

// DrawCenteredString writes text centered on (x, y).
func DrawCenteredString(dc *gg.Context, text string, x, y float64, c color.Color, size float64) {
	dc.SetFontFace(LabelFace(size))
	dc.SetColor(c)
	dc.DrawStringAnchored(text, x, y, 0.5, 0.5)
}

// DrawArrow draws an upward pointing arrow filling a width x height box at the origin.
func DrawArrow(dc *gg.Context, width, height float64, c color.Color) {
	shaft := width / 4
	head := height / 3
	dc.SetColor(c)
	dc.MoveTo(width/2, 0)
	dc.LineTo(width, head)
	dc.LineTo(width/2+shaft/2, head)
	dc.LineTo(width/2+shaft/2, height)
	dc.LineTo(width/2-shaft/2, height)
	dc.LineTo(width/2-shaft/2, head)
	dc.LineTo(0, head)
	dc.ClosePath()
	dc.Fill()
}
