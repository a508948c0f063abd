package camera

import (
	"github.com/kinodeck/lenscam/canvas"
)

// MovementType selects the cinematic interpolation of a transition
type MovementType int

const (
	// MovementPanTilt moves x/y at constant scale
	MovementPanTilt MovementType = iota

	// MovementZoomIn raises scale only
	MovementZoomIn

	// MovementZoomOut lowers scale only
	MovementZoomOut

	// MovementDollyZoom interpolates position and scale while a blur
	// envelope rises and falls, the vertigo effect
	MovementDollyZoom

	// MovementRackFocus redirects blur focus without positional change
	MovementRackFocus

	// MovementMatchCut swaps position instantly under a cross-fade
	MovementMatchCut
)

// String implements fmt.Stringer
func (m MovementType) String() string {
	switch m {
	case MovementPanTilt:
		return "pan-tilt"
	case MovementZoomIn:
		return "zoom-in"
	case MovementZoomOut:
		return "zoom-out"
	case MovementDollyZoom:
		return "dolly-zoom"
	case MovementRackFocus:
		return "rack-focus"
	case MovementMatchCut:
		return "match-cut"
	}
	return "unknown"
}

// ChooseMovement picks a movement type for navigating from the current
// camera state to a section, by cinematic analogy:
// reselecting the focused section racks focus, far jumps cut, scale
// changes dolly or zoom, everything else pans
func ChooseMovement(pos canvas.Position, focused canvas.SectionID, geom canvas.Geometry, target canvas.Section) MovementType {
	if target.ID == focused {
		return MovementRackFocus
	}

	dist := target.Center.Distance(pos.Vec())
	scaleDiff := target.Scale - pos.Scale

	farCut := geom.Width / 2
	if dist > farCut {
		return MovementMatchCut
	}

	const scaleEps = 0.05
	if scaleDiff > scaleEps || scaleDiff < -scaleEps {
		if dist < 1 {
			if scaleDiff > 0 {
				return MovementZoomIn
			}
			return MovementZoomOut
		}
		return MovementDollyZoom
	}

	return MovementPanTilt
}
