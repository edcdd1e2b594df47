// Package pattern provides procedural gray-level test patterns.
package pattern

import (
	"image"
	"image/color"
)

// Ramp is a gray ramp that advances by one level every Run pixels in
// row-major order, wrapping from 255 back to 0.  The run is counted over
// the whole image, so it carries over from the end of one row to the start
// of the next.
//
// The output looks like this for Run = 4:
//
//	0 0 0 0 1 1 1 1 2 2 2 2 ... 255 255 255 255 0 0 0 0 1 ...
type Ramp struct {
	Rect image.Rectangle
	Run  int
}

// NewRamp returns a ramp covering r.  If run is less than 1, the level
// advances on every pixel.
func NewRamp(r image.Rectangle, run int) *Ramp {
	if run < 1 {
		run = 1
	}
	return &Ramp{Rect: r, Run: run}
}

func (p *Ramp) ColorModel() color.Model {
	return color.GrayModel
}

func (p *Ramp) Bounds() image.Rectangle {
	return p.Rect
}

func (p *Ramp) At(x, y int) color.Color {
	return p.GrayAt(x, y)
}

// GrayAt returns the gray level of the pixel at (x, y), or black if the
// point is outside the ramp.
func (p *Ramp) GrayAt(x, y int) color.Gray {
	if !image.Pt(x, y).In(p.Rect) {
		return color.Gray{}
	}
	run := p.Run
	if run < 1 {
		run = 1
	}
	return color.Gray{Y: uint8(p.Index(x, y) / run % 256)}
}

// Index returns the row-major index of (x, y) relative to the top left
// corner of the ramp.
func (p *Ramp) Index(x, y int) int {
	return (y-p.Rect.Min.Y)*p.Rect.Dx() + (x - p.Rect.Min.X)
}
