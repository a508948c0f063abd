package parameter

import "time"

// Cursor sampling
const (
	// CursorVelocitySmoothing is the exponential smoothing factor for
	// finite-difference velocity; lower values suppress more jitter
	CursorVelocitySmoothing = 0.3

	// CursorIdleTimeout marks the tracker idle when no sample arrives
	// for this long; idle trackers skip per-frame work
	CursorIdleTimeout = 2 * time.Second

	// FocusRingFadeTimeout is how long the focus ring persists after
	// the pointer leaves the viewport before fading out
	FocusRingFadeTimeout = 1500 * time.Millisecond

	// FocusRingFadeDuration is the opacity ramp length of the fade
	FocusRingFadeDuration = 400 * time.Millisecond
)
