package parameter

import "time"

// Lens activation gestures
const (
	// LensHoverDelay is how long the pointer must dwell before a hover
	// activates the lens
	LensHoverDelay = 800 * time.Millisecond

	// LensPressDelay is how long a pointer press must be held before it
	// activates the lens (shorter than hover: pressing is deliberate)
	LensPressDelay = 350 * time.Millisecond

	// LensHoverJitterTolerance is the max pointer travel during the
	// hover dwell before the dwell timer restarts
	LensHoverJitterTolerance = 8.0

	// LensDeactivateFade is the Deactivating -> Idle settle time
	LensDeactivateFade = 150 * time.Millisecond
)

// Lens geometry
const (
	// LensRadius is the default radial menu radius in canvas units
	LensRadius = 120.0

	// LensItemMinAngle is the minimum angular separation between items;
	// when edge clipping shrinks the usable arc below
	// visibleItems*LensItemMinAngle, low-priority items are trimmed
	LensItemMinAngle = 0.55 // radians, ~31.5 degrees

	// LensEdgeMargin keeps the repositioned menu center this far inside
	// the viewport beyond the bare radius
	LensEdgeMargin = 8.0
)
