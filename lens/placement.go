package lens

import (
	"github.com/kinodeck/lenscam/parameter"
	"github.com/kinodeck/lenscam/vmath"
)

// Size is a viewport extent in viewport units
type Size struct {
	W, H float64
}

// Edge names a viewport edge that forced menu repositioning
type Edge int

const (
	EdgeLeft Edge = iota
	EdgeRight
	EdgeTop
	EdgeBottom
)

// String implements fmt.Stringer
func (e Edge) String() string {
	switch e {
	case EdgeLeft:
		return "left"
	case EdgeRight:
		return "right"
	case EdgeTop:
		return "top"
	case EdgeBottom:
		return "bottom"
	}
	return "unknown"
}

// MenuPosition is the placed radial menu
// Recomputed on every activation, discarded on deactivation
type MenuPosition struct {
	Center           vmath.Vec2
	Radius           float64
	Repositioned     bool
	ConstraintReason []Edge
}

// Place positions a radial menu of the given radius centered at the
// cursor, shifting inward when the centered menu would overflow any
// viewport edge. ConstraintReason records the violated edges
//
// Pure and deterministic: identical inputs always yield identical
// output
func Place(cursor vmath.Vec2, viewport Size, radius float64) MenuPosition {
	margin := radius + parameter.LensEdgeMargin
	menu := MenuPosition{Center: cursor, Radius: radius}

	// Horizontal
	if viewport.W < 2*margin {
		menu.Center.X = viewport.W / 2
		menu.Repositioned = true
		menu.ConstraintReason = append(menu.ConstraintReason, EdgeLeft, EdgeRight)
	} else if cursor.X < margin {
		menu.Center.X = margin
		menu.Repositioned = true
		menu.ConstraintReason = append(menu.ConstraintReason, EdgeLeft)
	} else if cursor.X > viewport.W-margin {
		menu.Center.X = viewport.W - margin
		menu.Repositioned = true
		menu.ConstraintReason = append(menu.ConstraintReason, EdgeRight)
	}

	// Vertical
	if viewport.H < 2*margin {
		menu.Center.Y = viewport.H / 2
		menu.Repositioned = true
		menu.ConstraintReason = append(menu.ConstraintReason, EdgeTop, EdgeBottom)
	} else if cursor.Y < margin {
		menu.Center.Y = margin
		menu.Repositioned = true
		menu.ConstraintReason = append(menu.ConstraintReason, EdgeTop)
	} else if cursor.Y > viewport.H-margin {
		menu.Center.Y = viewport.H - margin
		menu.Repositioned = true
		menu.ConstraintReason = append(menu.ConstraintReason, EdgeBottom)
	}

	return menu
}
