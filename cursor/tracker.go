package cursor

import (
	"sync/atomic"
	"time"

	"github.com/kinodeck/lenscam/parameter"
	"github.com/kinodeck/lenscam/status"
	"github.com/kinodeck/lenscam/vmath"
)

// Position is the latest committed pointer sample
// Owned by the Tracker, overwritten each commit, read-only elsewhere
type Position struct {
	X, Y      float64
	Timestamp time.Time
	Velocity  vmath.Vec2 // viewport units per second, smoothed
}

// Vec returns the positional part of p
func (p Position) Vec() vmath.Vec2 {
	return vmath.Vec2{X: p.X, Y: p.Y}
}

// Tracker throttles raw pointer samples to at most one committed
// update per frame and estimates velocity by finite difference with
// exponential smoothing
//
// Offer may be called from the input goroutine many times per frame;
// Commit runs once per frame on the scheduler and publishes the last
// offered sample. Sampling pauses while the host is hidden
type Tracker struct {
	running bool
	visible bool

	current   Position
	hasSample bool

	pending    Position
	hasPending bool

	// Pointer presence for the focus ring fade
	inside bool
	leftAt time.Time

	statSamples *atomic.Int64
	statSpeed   *status.AtomicFloat
}

// NewTracker creates a tracker publishing to the given registry
func NewTracker(reg *status.Registry) *Tracker {
	return &Tracker{
		visible:     true,
		statSamples: reg.Ints.Get("cursor.samples"),
		statSpeed:   reg.Floats.Get("cursor.speed"),
	}
}

// Start enables sampling
func (t *Tracker) Start() {
	t.running = true
}

// Stop disables sampling; the last committed position is retained
func (t *Tracker) Stop() {
	t.running = false
	t.hasPending = false
}

// SetVisible pauses sampling while the host element or tab is hidden
func (t *Tracker) SetVisible(visible bool) {
	t.visible = visible
	if !visible {
		t.hasPending = false
	}
}

// Offer records a raw pointer sample; only the newest sample before
// the next Commit survives
func (t *Tracker) Offer(x, y float64, now time.Time) {
	if !t.running || !t.visible {
		return
	}
	t.pending = Position{X: x, Y: y, Timestamp: now}
	t.hasPending = true
	t.inside = true
}

// PointerLeft marks the pointer outside the viewport; the last known
// position is retained and the focus ring starts its fade countdown
func (t *Tracker) PointerLeft(now time.Time) {
	t.inside = false
	t.leftAt = now
	t.hasPending = false
}

// Commit publishes the pending sample, at most once per frame
// Velocity is the finite difference of the last two samples blended
// with the previous estimate to suppress jitter
func (t *Tracker) Commit(now time.Time) {
	if !t.running || !t.visible || !t.hasPending {
		return
	}
	next := t.pending
	t.hasPending = false

	if t.hasSample {
		dt := next.Timestamp.Sub(t.current.Timestamp).Seconds()
		if dt > 0 {
			raw := vmath.Vec2{
				X: (next.X - t.current.X) / dt,
				Y: (next.Y - t.current.Y) / dt,
			}
			next.Velocity = vmath.Vec2{
				X: vmath.ExpSmooth(t.current.Velocity.X, raw.X, parameter.CursorVelocitySmoothing),
				Y: vmath.ExpSmooth(t.current.Velocity.Y, raw.Y, parameter.CursorVelocitySmoothing),
			}
		} else {
			next.Velocity = t.current.Velocity
		}
	}

	t.current = next
	t.hasSample = true
	t.statSamples.Add(1)
	t.statSpeed.Set(next.Velocity.Magnitude())
}

// Current returns the latest committed sample
func (t *Tracker) Current() (Position, bool) {
	return t.current, t.hasSample
}

// Idle reports whether no sample has been committed recently
// Idle trackers let the scheduler skip per-frame cursor work
func (t *Tracker) Idle(now time.Time) bool {
	if !t.hasSample {
		return true
	}
	return now.Sub(t.current.Timestamp) > parameter.CursorIdleTimeout
}

// RingOpacity returns the focus ring opacity in [0, 1]
// While the pointer is inside the viewport the ring is fully visible;
// after it leaves, the ring holds for the fade timeout then ramps to
// zero instead of disappearing abruptly
func (t *Tracker) RingOpacity(now time.Time) float64 {
	if !t.hasSample {
		return 0
	}
	if t.inside {
		return 1
	}
	since := now.Sub(t.leftAt)
	if since <= parameter.FocusRingFadeTimeout {
		return 1
	}
	fade := since - parameter.FocusRingFadeTimeout
	if fade >= parameter.FocusRingFadeDuration {
		return 0
	}
	return 1 - float64(fade)/float64(parameter.FocusRingFadeDuration)
}
