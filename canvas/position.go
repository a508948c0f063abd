package canvas

import (
	"github.com/kinodeck/lenscam/parameter"
	"github.com/kinodeck/lenscam/vmath"
)

// Position is the virtual camera state over the canvas
// Invariant: Scale in [MinScale, MaxScale]; (X, Y) inside Bounds(Scale)
// Owned exclusively by the camera engine; read-only everywhere else
type Position struct {
	X, Y  float64
	Scale float64
}

// Vec returns the positional part of p
func (p Position) Vec() vmath.Vec2 {
	return vmath.Vec2{X: p.X, Y: p.Y}
}

// Rect is an axis-aligned region in canvas units
type Rect struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// Contains reports whether (x, y) lies inside r
func (r Rect) Contains(x, y float64) bool {
	return x >= r.MinX && x <= r.MaxX && y >= r.MinY && y <= r.MaxY
}

// Geometry describes the canvas extents and the viewport that looks at it
type Geometry struct {
	Width, Height       float64 // canvas size in canvas units
	ViewportW, ViewportH float64 // viewport size in canvas units at scale 1
	MinScale, MaxScale   float64
}

// DefaultGeometry returns a geometry sized for the standard section field
func DefaultGeometry() Geometry {
	return Geometry{
		Width:     2400,
		Height:    1600,
		ViewportW: 800,
		ViewportH: 600,
		MinScale:  parameter.MinScale,
		MaxScale:  parameter.MaxScale,
	}
}

// Bounds returns the valid camera-center region at the given scale
// Higher scale zooms in, shrinking the visible area and widening the
// region the center may occupy
func (g Geometry) Bounds(scale float64) Rect {
	scale = vmath.Clamp(scale, g.MinScale, g.MaxScale)
	halfW := g.ViewportW / (2 * scale)
	halfH := g.ViewportH / (2 * scale)

	r := Rect{MinX: halfW, MinY: halfH, MaxX: g.Width - halfW, MaxY: g.Height - halfH}

	// Viewport wider than canvas at this scale: pin center to middle
	if r.MinX > r.MaxX {
		mid := g.Width / 2
		r.MinX, r.MaxX = mid, mid
	}
	if r.MinY > r.MaxY {
		mid := g.Height / 2
		r.MinY, r.MaxY = mid, mid
	}
	return r
}

// Clamp corrects p to satisfy the position invariant
// Returns the corrected position and whether any component changed
// Invalid coordinates are always corrected, never rejected
func (g Geometry) Clamp(p Position) (Position, bool) {
	corrected := false

	scale := vmath.Clamp(p.Scale, g.MinScale, g.MaxScale)
	if scale != p.Scale {
		corrected = true
	}

	b := g.Bounds(scale)
	x := vmath.Clamp(p.X, b.MinX, b.MaxX)
	y := vmath.Clamp(p.Y, b.MinY, b.MaxY)
	if x != p.X || y != p.Y {
		corrected = true
	}

	return Position{X: x, Y: y, Scale: scale}, corrected
}
