package events

import (
	"time"
)

// Type identifies a navigation event
type Type int

const (
	// TypeNone is the zero value, never dispatched
	TypeNone Type = iota

	// TypePointerMoved carries a raw pointer sample
	// Trigger: input translator | Consumer: cursor tracker | Payload: *PointerPayload
	TypePointerMoved

	// TypePointerDown signals a press at the current pointer position
	// Trigger: input translator | Consumer: lens machine | Payload: *PointerPayload
	TypePointerDown

	// TypePointerUp signals release; position tells inside/outside lens
	// Trigger: input translator | Consumer: lens machine | Payload: *PointerPayload
	TypePointerUp

	// TypeLensShortcut requests immediate lens activation
	// Trigger: keyboard shortcut | Consumer: lens machine | Payload: nil
	TypeLensShortcut

	// TypeLensActivated announces the lens is open with a placed menu
	// Trigger: lens machine | Consumer: audio, host | Payload: *LensPayload
	TypeLensActivated

	// TypeLensDismissed announces a full deactivation back to Idle
	// Trigger: lens machine | Consumer: host | Payload: nil
	TypeLensDismissed

	// TypeSelectionMoved reports keyboard stepping through lens items
	// Trigger: lens machine | Consumer: host | Payload: *SelectionPayload
	TypeSelectionMoved

	// TypeSectionSelected dispatches navigation to the camera engine
	// Trigger: lens machine | Consumer: camera, audio, host router
	// Payload: *SelectionPayload
	TypeSectionSelected

	// TypeTransitionStarted announces a new camera transition
	// Trigger: camera engine | Consumer: host | Payload: *TransitionPayload
	TypeTransitionStarted

	// TypeTransitionCompleted announces a transition reached its target
	// Trigger: camera engine | Consumer: host | Payload: *TransitionPayload
	TypeTransitionCompleted

	// TypeQualityChanged carries exactly-once tier changes
	// Trigger: quality manager | Consumer: camera, dof, host
	// Payload: *QualityPayload
	TypeQualityChanged

	// TypeEscape deactivates the lens and latches the blur override
	// Trigger: input translator | Consumer: lens machine, dof | Payload: nil
	TypeEscape

	// TypeArrowKey steps lens selection while Active
	// Trigger: input translator | Consumer: lens machine | Payload: *ArrowPayload
	TypeArrowKey

	// TypeConfirmKey selects the current lens item (Enter/Space)
	// Trigger: input translator | Consumer: lens machine | Payload: nil
	TypeConfirmKey

	// TypeVisibilityChanged pauses or resumes cursor sampling
	// Trigger: host | Consumer: cursor tracker | Payload: *VisibilityPayload
	TypeVisibilityChanged
)

// Event is one navigation event with metadata
type Event struct {
	Type      Type
	Payload   any
	Frame     uint64 // for deduplication
	Timestamp time.Time
}
