package events

import (
	"github.com/kinodeck/lenscam/canvas"
)

// PointerPayload is a raw pointer sample in viewport coordinates
type PointerPayload struct {
	X, Y float64
}

// LensPayload describes the placed menu on activation
type LensPayload struct {
	CenterX, CenterY float64
	Radius           float64
	Repositioned     bool
}

// SelectionPayload names a section and the movement used to reach it
type SelectionPayload struct {
	Section      canvas.SectionID
	MovementType int // camera.MovementType value; int avoids an import cycle
	ItemIndex    int
}

// TransitionPayload reports camera transition lifecycle
type TransitionPayload struct {
	Section    canvas.SectionID
	Superseded bool
}

// QualityPayload carries the new tier and whether it was a downgrade
type QualityPayload struct {
	Tier      int // quality.Tier value
	Downgrade bool
}

// ArrowPayload carries a selection step direction, -1 or +1
type ArrowPayload struct {
	Step int
}

// VisibilityPayload reports host visibility for sampling pause
type VisibilityPayload struct {
	Visible bool
}
