package parameter

import "time"

// Frame scheduling
const (
	// FrameInterval targets 60fps
	FrameInterval = 16667 * time.Microsecond

	// FrameBudget is the per-frame work allowance before remaining
	// low-priority callbacks defer to the next frame
	FrameBudget = 16600 * time.Microsecond

	// PausedFrameInterval is the relaxed poll interval while the
	// scheduler is paused, to save CPU
	PausedFrameInterval = 2 * FrameInterval

	// MaxFrameDebt caps drift correction; if the loop falls further
	// behind than this, the deadline resets instead of fast-forwarding
	MaxFrameDebt = 2 * FrameInterval
)

// Event queue
const (
	// EventQueueSize must be a power of two (ring index masking)
	EventQueueSize = 256

	// EventBufferMask derives from EventQueueSize
	EventBufferMask = EventQueueSize - 1
)
