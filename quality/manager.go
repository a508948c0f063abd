package quality

import (
	"sync/atomic"
	"time"

	"github.com/kinodeck/lenscam/events"
	"github.com/kinodeck/lenscam/parameter"
	"github.com/kinodeck/lenscam/status"
)

// Tier is a discrete visual-fidelity level
type Tier int

const (
	// TierAccessible trades all effect richness for frame rate
	TierAccessible Tier = iota

	// TierBalanced halves blur and concurrency budgets
	TierBalanced

	// TierHigh is full fidelity
	TierHigh
)

// String implements fmt.Stringer
func (t Tier) String() string {
	switch t {
	case TierAccessible:
		return "Accessible"
	case TierBalanced:
		return "Balanced"
	case TierHigh:
		return "High"
	}
	return "Unknown"
}

// Budget is the effect allowance at a tier
type Budget struct {
	MaxBlur                 float64
	MaxConcurrentAnimations int
	TransitionScale         float64
}

// BudgetFor returns the effect budget for tier
func BudgetFor(t Tier) Budget {
	switch t {
	case TierHigh:
		return Budget{
			MaxBlur:                 parameter.MaxBlurHigh,
			MaxConcurrentAnimations: parameter.MaxConcurrentAnimationsHigh,
			TransitionScale:         1.0,
		}
	case TierBalanced:
		return Budget{
			MaxBlur:                 parameter.MaxBlurBalanced,
			MaxConcurrentAnimations: parameter.MaxConcurrentAnimationsBalanced,
			TransitionScale:         parameter.TransitionScaleBalanced,
		}
	default:
		return Budget{
			MaxBlur:                 0,
			MaxConcurrentAnimations: 1,
			TransitionScale:         parameter.TransitionScaleAccessible,
		}
	}
}

// Manager drives quality-tier hysteresis from a sliding fps window
//
// A full window averaging below the low-water mark emits exactly one
// downgrade event and restarts the window; above the high-water mark,
// one upgrade event. Averages inside the hysteresis band emit nothing,
// preventing oscillation. Pinned managers (reduced motion) stay at
// TierAccessible and never emit
type Manager struct {
	tier   Tier
	pinned bool

	window []float64
	filled int
	idx    int

	queue *events.Queue

	statTier       *atomic.Int64
	statDowngrades *atomic.Int64
	statUpgrades   *atomic.Int64
}

// NewManager creates a manager starting at TierHigh
// If reducedMotion is set the tier pins to TierAccessible
func NewManager(queue *events.Queue, reg *status.Registry, reducedMotion bool) *Manager {
	m := &Manager{
		tier:           TierHigh,
		window:         make([]float64, parameter.QualityWindowFrames),
		queue:          queue,
		statTier:       reg.Ints.Get("quality.tier"),
		statDowngrades: reg.Ints.Get("quality.downgrades"),
		statUpgrades:   reg.Ints.Get("quality.upgrades"),
	}
	if reducedMotion {
		m.tier = TierAccessible
		m.pinned = true
	}
	m.statTier.Store(int64(m.tier))
	return m
}

// Tier returns the current quality tier
func (m *Manager) Tier() Tier {
	return m.tier
}

// Budget returns the effect budget at the current tier
func (m *Manager) Budget() Budget {
	return BudgetFor(m.tier)
}

// AddSample feeds one per-frame fps measurement
// Called from a low-priority scheduler callback
func (m *Manager) AddSample(fps float64, now time.Time, frame uint64) {
	if m.pinned || fps <= 0 {
		return
	}

	m.window[m.idx] = fps
	m.idx = (m.idx + 1) % len(m.window)
	if m.filled < len(m.window) {
		m.filled++
	}
	if m.filled < len(m.window) {
		return
	}

	avg := m.average()
	switch {
	case avg < parameter.QualityLowWater && m.tier > TierAccessible:
		m.shift(m.tier-1, true, now, frame)
	case avg > parameter.QualityHighWater && m.tier < TierHigh:
		m.shift(m.tier+1, false, now, frame)
	}
}

func (m *Manager) average() float64 {
	var sum float64
	for _, v := range m.window {
		sum += v
	}
	return sum / float64(len(m.window))
}

// shift changes tier, emits the exactly-once event, and restarts the
// window so the same sustained average cannot emit twice
func (m *Manager) shift(to Tier, downgrade bool, now time.Time, frame uint64) {
	m.tier = to
	m.filled = 0
	m.idx = 0
	m.statTier.Store(int64(to))
	if downgrade {
		m.statDowngrades.Add(1)
	} else {
		m.statUpgrades.Add(1)
	}
	m.queue.Push(events.Event{
		Type:      events.TypeQualityChanged,
		Payload:   &events.QualityPayload{Tier: int(to), Downgrade: downgrade},
		Frame:     frame,
		Timestamp: now,
	})
}
