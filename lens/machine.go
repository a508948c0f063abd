package lens

import (
	"sync/atomic"
	"time"

	"github.com/kinodeck/lenscam/canvas"
	"github.com/kinodeck/lenscam/events"
	"github.com/kinodeck/lenscam/parameter"
	"github.com/kinodeck/lenscam/status"
	"github.com/kinodeck/lenscam/vmath"
)

// State is the lens activation state
type State int

const (
	StateIdle State = iota
	StatePendingHover
	StatePendingClick
	StateActive
	StateDeactivating
)

// String implements fmt.Stringer
func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StatePendingHover:
		return "PendingHover"
	case StatePendingClick:
		return "PendingClick"
	case StateActive:
		return "Active"
	case StateDeactivating:
		return "Deactivating"
	}
	return "Unknown"
}

// Selection band around the ring where a pointer release picks an item
const (
	selectBandInner = 0.4
	selectBandOuter = 1.6
)

// Machine is the lens activation state machine
//
// Transition table:
//
//	Idle          pointer move          -> PendingHover (dwell anchor set)
//	Idle          pointer down          -> PendingClick
//	PendingHover  dwell >= hover delay  -> Active
//	PendingHover  pointer down          -> PendingClick
//	PendingHover  move past tolerance   -> PendingHover (dwell restarts)
//	PendingClick  held >= press delay   -> Active
//	PendingClick  early release         -> Idle (gesture timeout, silent)
//	any pending   shortcut              -> Active
//	Active        activation attempt    -> Active (idempotent no-op)
//	Active        selection             -> Deactivating (dispatches)
//	Active        Escape / release-out  -> Deactivating
//	Deactivating  fade elapsed          -> Idle (menu discarded)
//
// All methods run on the frame goroutine; there is no lock because
// there is no contention to arbitrate
type Machine struct {
	state     State
	enteredAt time.Time

	pointer    vmath.Vec2
	hasPointer bool
	anchor     vmath.Vec2
	pressed    bool

	menu   MenuPosition
	items  []ItemPosition
	selIdx int

	registry *canvas.Registry
	viewport Size
	radius   float64
	queue    *events.Queue

	hoverActivation bool
	deactivateFade  time.Duration

	// pick maps a section to the camera movement ordinal used for the
	// dispatched selection; injected by the director
	pick func(canvas.Section) int

	statActivations *atomic.Int64
	statTrimmed     *atomic.Int64
}

// NewMachine creates a lens machine over the section registry
func NewMachine(registry *canvas.Registry, viewport Size, queue *events.Queue, reg *status.Registry, pick func(canvas.Section) int) *Machine {
	return &Machine{
		state:           StateIdle,
		registry:        registry,
		viewport:        viewport,
		radius:          parameter.LensRadius,
		queue:           queue,
		pick:            pick,
		hoverActivation: true,
		deactivateFade:  parameter.LensDeactivateFade,
		statActivations: reg.Ints.Get("lens.activations"),
		statTrimmed:     reg.Ints.Get("lens.trimmed"),
	}
}

// State returns the current activation state
func (m *Machine) State() State {
	return m.state
}

// Menu returns the placed menu; zero value outside Active/Deactivating
func (m *Machine) Menu() MenuPosition {
	return m.menu
}

// Items returns the derived item positions for the current activation
func (m *Machine) Items() []ItemPosition {
	return m.items
}

// SelectedIndex returns the keyboard selection index into Items
func (m *Machine) SelectedIndex() int {
	return m.selIdx
}

// SetViewport updates the viewport used for placement on resize
func (m *Machine) SetViewport(v Size) {
	m.viewport = v
}

// SetRadius overrides the menu radius; hosts with coarse units
// (terminal cells) scale it to the viewport
func (m *Machine) SetRadius(r float64) {
	if r > 0 {
		m.radius = r
	}
}

// SetHoverActivation enables or disables dwell-to-open
// Touch pointers have no hover; they open by press-and-hold or shortcut
func (m *Machine) SetHoverActivation(enabled bool) {
	m.hoverActivation = enabled
	if !enabled && m.state == StatePendingHover {
		m.state = StateIdle
	}
}

// SetDeactivateFade adjusts the dismissal fade length
// Zero dismisses on the next update, for budgets with no slot for a
// second concurrent animation
func (m *Machine) SetDeactivateFade(d time.Duration) {
	if d < 0 {
		d = 0
	}
	m.deactivateFade = d
}

// PointerMoved feeds a committed cursor sample
func (m *Machine) PointerMoved(x, y float64, now time.Time) {
	pos := vmath.Vec2{X: x, Y: y}
	m.pointer = pos
	m.hasPointer = true

	switch m.state {
	case StateIdle:
		if m.hoverActivation {
			m.state = StatePendingHover
			m.anchor = pos
			m.enteredAt = now
		}

	case StatePendingHover:
		if pos.Distance(m.anchor) > parameter.LensHoverJitterTolerance {
			m.anchor = pos
			m.enteredAt = now
		}

	case StateActive:
		// Hovering near an item steals the keyboard selection
		if idx, ok := m.itemAt(pos); ok {
			m.selIdx = idx
		}
	}
}

// PointerDown feeds a press gesture
func (m *Machine) PointerDown(now time.Time) {
	m.pressed = true

	switch m.state {
	case StateIdle, StatePendingHover:
		m.state = StatePendingClick
		m.enteredAt = now
	case StateActive:
		// Idempotent guard: already active
	}
}

// PointerUp feeds a release gesture
func (m *Machine) PointerUp(now time.Time, frame uint64) {
	m.pressed = false

	switch m.state {
	case StatePendingClick:
		// Gesture did not complete in time; silently revert
		m.state = StateIdle

	case StateActive:
		if !m.hasPointer {
			return
		}
		if idx, ok := m.itemAt(m.pointer); ok {
			m.selectItem(idx, now, frame)
			return
		}
		if m.pointer.Distance(m.menu.Center) > m.menu.Radius*selectBandOuter {
			m.deactivate(now)
		}
	}
}

// Shortcut activates the lens immediately from any pre-active state
// A second attempt while Active is a no-op
func (m *Machine) Shortcut(now time.Time, frame uint64) {
	switch m.state {
	case StateIdle, StatePendingHover, StatePendingClick:
		m.activate(now, frame)
	}
}

// Escape deactivates the lens or cancels any pending gesture
func (m *Machine) Escape(now time.Time) {
	switch m.state {
	case StateActive:
		m.deactivate(now)
	case StatePendingHover, StatePendingClick:
		m.state = StateIdle
	}
}

// CancelPending aborts pending gestures, e.g. on visibility loss
// Deactivating the lens also cancels the hover-activation timer by
// leaving the pending states entirely
func (m *Machine) CancelPending() {
	switch m.state {
	case StatePendingHover, StatePendingClick:
		m.state = StateIdle
	}
}

// Arrow steps the keyboard selection through visible items
func (m *Machine) Arrow(step int, now time.Time, frame uint64) {
	if m.state != StateActive || len(m.items) == 0 {
		return
	}

	visible := m.visibleIndices()
	if len(visible) == 0 {
		return
	}

	// Find current position within the visible ring and wrap
	cur := 0
	for k, idx := range visible {
		if idx == m.selIdx {
			cur = k
			break
		}
	}
	cur = (cur + step + len(visible)) % len(visible)
	m.selIdx = visible[cur]

	m.queue.Push(events.Event{
		Type:      events.TypeSelectionMoved,
		Payload:   &events.SelectionPayload{Section: m.items[m.selIdx].Section, ItemIndex: m.selIdx},
		Frame:     frame,
		Timestamp: now,
	})
}

// Confirm selects the current keyboard selection (Enter/Space)
func (m *Machine) Confirm(now time.Time, frame uint64) {
	if m.state != StateActive {
		return
	}
	if m.selIdx < 0 || m.selIdx >= len(m.items) || !m.items[m.selIdx].Visible {
		return
	}
	m.selectItem(m.selIdx, now, frame)
}

// Update advances time-driven transitions; runs once per frame
func (m *Machine) Update(now time.Time, frame uint64) {
	switch m.state {
	case StatePendingHover:
		if now.Sub(m.enteredAt) >= parameter.LensHoverDelay {
			m.activate(now, frame)
		}

	case StatePendingClick:
		if m.pressed && now.Sub(m.enteredAt) >= parameter.LensPressDelay {
			m.activate(now, frame)
		}

	case StateDeactivating:
		if now.Sub(m.enteredAt) >= m.deactivateFade {
			m.state = StateIdle
			m.menu = MenuPosition{}
			m.items = nil
			m.selIdx = 0
			m.queue.Push(events.Event{
				Type:      events.TypeLensDismissed,
				Frame:     frame,
				Timestamp: now,
			})
		}
	}
}

// activate computes the menu placement from the current cursor and
// enters Active
func (m *Machine) activate(now time.Time, frame uint64) {
	if !m.hasPointer {
		// Keyboard-only activation: open at the viewport center
		m.pointer = vmath.Vec2{X: m.viewport.W / 2, Y: m.viewport.H / 2}
		m.hasPointer = true
	}

	m.menu = Place(m.pointer, m.viewport, m.radius)

	var trimmed int
	m.items, trimmed = LayoutItems(m.menu, m.registry.All(), m.viewport)
	m.statTrimmed.Add(int64(trimmed))

	m.selIdx = 0
	for i, it := range m.items {
		if it.Visible {
			m.selIdx = i
			break
		}
	}

	m.state = StateActive
	m.enteredAt = now
	m.statActivations.Add(1)

	m.queue.Push(events.Event{
		Type: events.TypeLensActivated,
		Payload: &events.LensPayload{
			CenterX:      m.menu.Center.X,
			CenterY:      m.menu.Center.Y,
			Radius:       m.menu.Radius,
			Repositioned: m.menu.Repositioned,
		},
		Frame:     frame,
		Timestamp: now,
	})
}

// selectItem dispatches the selection and begins deactivation
func (m *Machine) selectItem(idx int, now time.Time, frame uint64) {
	item := m.items[idx]
	section, ok := m.registry.Get(item.Section)
	if !ok {
		return
	}

	m.queue.Push(events.Event{
		Type: events.TypeSectionSelected,
		Payload: &events.SelectionPayload{
			Section:      section.ID,
			MovementType: m.pick(section),
			ItemIndex:    idx,
		},
		Frame:     frame,
		Timestamp: now,
	})
	m.deactivate(now)
}

func (m *Machine) deactivate(now time.Time) {
	m.state = StateDeactivating
	m.enteredAt = now
}

// itemAt returns the visible item nearest the point when the point
// lies within the selection band around the ring
func (m *Machine) itemAt(p vmath.Vec2) (int, bool) {
	if len(m.items) == 0 {
		return 0, false
	}
	dist := p.Distance(m.menu.Center)
	if dist < m.menu.Radius*selectBandInner || dist > m.menu.Radius*selectBandOuter {
		return 0, false
	}

	best, bestD := -1, 0.0
	for i, it := range m.items {
		if !it.Visible {
			continue
		}
		d := p.Distance(it.Pos)
		if best == -1 || d < bestD {
			best, bestD = i, d
		}
	}
	if best == -1 {
		return 0, false
	}
	return best, true
}

func (m *Machine) visibleIndices() []int {
	out := make([]int, 0, len(m.items))
	for i, it := range m.items {
		if it.Visible {
			out = append(out, i)
		}
	}
	return out
}
