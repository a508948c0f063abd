package lens

import (
	"testing"
	"time"

	"github.com/kinodeck/lenscam/canvas"
	"github.com/kinodeck/lenscam/events"
	"github.com/kinodeck/lenscam/parameter"
	"github.com/kinodeck/lenscam/status"
	"github.com/kinodeck/lenscam/vmath"
)

const testMovement = 42

func newTestMachine(t *testing.T) (*Machine, *events.Queue) {
	t.Helper()
	reg, err := canvas.NewRegistry([]canvas.Section{
		{ID: "home", Center: vmath.Vec2{X: 200, Y: 200}, Priority: 4},
		{ID: "work", Center: vmath.Vec2{X: 900, Y: 200}, Priority: 3},
		{ID: "about", Center: vmath.Vec2{X: 200, Y: 900}, Priority: 2},
		{ID: "contact", Center: vmath.Vec2{X: 900, Y: 900}, Priority: 1},
	})
	if err != nil {
		t.Fatal(err)
	}
	q := events.NewQueue()
	m := NewMachine(reg, Size{W: 800, H: 600}, q, status.NewRegistry(), func(canvas.Section) int {
		return testMovement
	})
	return m, q
}

func drain(q *events.Queue, want events.Type) []events.Event {
	var out []events.Event
	for _, ev := range q.Consume() {
		if ev.Type == want {
			out = append(out, ev)
		}
	}
	return out
}

func TestHoverDwellActivates(t *testing.T) {
	m, q := newTestMachine(t)
	base := time.Now()

	m.PointerMoved(400, 300, base)
	if m.State() != StatePendingHover {
		t.Fatalf("state = %v", m.State())
	}

	m.Update(base.Add(parameter.LensHoverDelay-time.Millisecond), 1)
	if m.State() != StatePendingHover {
		t.Fatal("activated before the dwell elapsed")
	}

	m.Update(base.Add(parameter.LensHoverDelay), 2)
	if m.State() != StateActive {
		t.Fatalf("state = %v, want Active at the dwell boundary", m.State())
	}

	got := drain(q, events.TypeLensActivated)
	if len(got) != 1 {
		t.Fatalf("activation events = %d", len(got))
	}
	p := got[0].Payload.(*events.LensPayload)
	if p.CenterX != 400 || p.CenterY != 300 || p.Repositioned {
		t.Errorf("payload = %+v", p)
	}
}

func TestHoverJitterRestartsDwell(t *testing.T) {
	m, _ := newTestMachine(t)
	base := time.Now()

	m.PointerMoved(400, 300, base)

	// Within tolerance: dwell anchor holds
	m.PointerMoved(400+parameter.LensHoverJitterTolerance/2, 300, base.Add(400*time.Millisecond))
	m.Update(base.Add(parameter.LensHoverDelay), 1)
	if m.State() != StateActive {
		t.Fatal("small jitter should not restart the dwell")
	}

	m2, _ := newTestMachine(t)
	m2.PointerMoved(400, 300, base)

	// Past tolerance: dwell restarts from the new anchor
	m2.PointerMoved(400+parameter.LensHoverJitterTolerance*2, 300, base.Add(400*time.Millisecond))
	m2.Update(base.Add(parameter.LensHoverDelay), 1)
	if m2.State() != StatePendingHover {
		t.Fatal("large movement should restart the dwell")
	}
	m2.Update(base.Add(400*time.Millisecond+parameter.LensHoverDelay), 2)
	if m2.State() != StateActive {
		t.Fatal("restarted dwell never completed")
	}
}

func TestPressAndHoldActivates(t *testing.T) {
	m, q := newTestMachine(t)
	base := time.Now()

	m.PointerMoved(400, 300, base)
	m.PointerDown(base)
	if m.State() != StatePendingClick {
		t.Fatalf("state = %v", m.State())
	}

	m.Update(base.Add(parameter.LensPressDelay-time.Millisecond), 1)
	if m.State() != StatePendingClick {
		t.Fatal("activated before the press delay")
	}

	m.Update(base.Add(parameter.LensPressDelay), 2)
	if m.State() != StateActive {
		t.Fatalf("state = %v, want Active", m.State())
	}
	if got := drain(q, events.TypeLensActivated); len(got) != 1 {
		t.Errorf("activation events = %d", len(got))
	}
}

func TestEarlyReleaseRevertsSilently(t *testing.T) {
	m, q := newTestMachine(t)
	base := time.Now()

	m.PointerMoved(400, 300, base)
	m.PointerDown(base)
	m.PointerUp(base.Add(100*time.Millisecond), 1)

	if m.State() != StateIdle {
		t.Fatalf("state = %v, want Idle", m.State())
	}
	if got := q.Consume(); len(got) != 0 {
		t.Errorf("early release emitted %d events", len(got))
	}
}

func TestShortcutIdempotentWhileActive(t *testing.T) {
	m, q := newTestMachine(t)
	base := time.Now()

	m.PointerMoved(400, 300, base)
	m.Shortcut(base, 1)
	if m.State() != StateActive {
		t.Fatalf("state = %v", m.State())
	}

	m.Shortcut(base.Add(time.Millisecond), 2)
	if got := drain(q, events.TypeLensActivated); len(got) != 1 {
		t.Errorf("activation events = %d, want 1", len(got))
	}
}

func TestEscapeDeactivatesAndDiscardsMenu(t *testing.T) {
	m, q := newTestMachine(t)
	base := time.Now()

	m.PointerMoved(400, 300, base)
	m.Shortcut(base, 1)
	m.Escape(base.Add(time.Second))

	if m.State() != StateDeactivating {
		t.Fatalf("state = %v", m.State())
	}

	m.Update(base.Add(time.Second+parameter.LensDeactivateFade), 2)
	if m.State() != StateIdle {
		t.Fatalf("state = %v after fade", m.State())
	}
	if menu := m.Menu(); menu.Radius != 0 || menu.Repositioned {
		t.Errorf("menu not discarded on deactivation: %+v", menu)
	}
	if m.Items() != nil {
		t.Error("items not discarded on deactivation")
	}
	if got := drain(q, events.TypeLensDismissed); len(got) != 1 {
		t.Errorf("dismissal events = %d", len(got))
	}
}

func TestEscapeCancelsPendingGesture(t *testing.T) {
	m, _ := newTestMachine(t)
	base := time.Now()

	m.PointerMoved(400, 300, base)
	m.Escape(base)
	if m.State() != StateIdle {
		t.Fatalf("state = %v", m.State())
	}

	m.PointerDown(base)
	m.Escape(base)
	if m.State() != StateIdle {
		t.Fatalf("state = %v", m.State())
	}
}

func TestPointerSelectionDispatches(t *testing.T) {
	m, q := newTestMachine(t)
	base := time.Now()

	m.PointerMoved(400, 300, base)
	m.Shortcut(base, 1)
	q.Consume()

	// Release on the top ring item
	top := m.Items()[0].Pos
	m.PointerMoved(top.X, top.Y, base.Add(time.Millisecond))
	m.PointerUp(base.Add(2*time.Millisecond), 2)

	got := drain(q, events.TypeSectionSelected)
	if len(got) != 1 {
		t.Fatalf("selection events = %d", len(got))
	}
	p := got[0].Payload.(*events.SelectionPayload)
	if p.Section != "home" || p.MovementType != testMovement || p.ItemIndex != 0 {
		t.Errorf("payload = %+v", p)
	}
	if m.State() != StateDeactivating {
		t.Errorf("state = %v after selection", m.State())
	}
}

func TestReleaseFarOutsideDeactivates(t *testing.T) {
	m, q := newTestMachine(t)
	base := time.Now()

	m.PointerMoved(400, 300, base)
	m.Shortcut(base, 1)
	q.Consume()

	m.PointerMoved(790, 300, base.Add(time.Millisecond))
	m.PointerUp(base.Add(2*time.Millisecond), 2)

	if m.State() != StateDeactivating {
		t.Fatalf("state = %v", m.State())
	}
	if got := drain(q, events.TypeSectionSelected); len(got) != 0 {
		t.Errorf("outside release selected an item")
	}
}

func TestArrowWrapsSelection(t *testing.T) {
	m, q := newTestMachine(t)
	base := time.Now()

	m.PointerMoved(400, 300, base)
	m.Shortcut(base, 1)
	q.Consume()

	if m.SelectedIndex() != 0 {
		t.Fatalf("initial selection = %d", m.SelectedIndex())
	}

	m.Arrow(-1, base, 2)
	if m.SelectedIndex() != 3 {
		t.Errorf("backward wrap = %d, want 3", m.SelectedIndex())
	}
	m.Arrow(1, base, 3)
	if m.SelectedIndex() != 0 {
		t.Errorf("forward wrap = %d, want 0", m.SelectedIndex())
	}
	if got := drain(q, events.TypeSelectionMoved); len(got) != 2 {
		t.Errorf("selection-moved events = %d", len(got))
	}
}

func TestConfirmSelectsKeyboardChoice(t *testing.T) {
	m, q := newTestMachine(t)
	base := time.Now()

	m.PointerMoved(400, 300, base)
	m.Shortcut(base, 1)
	q.Consume()

	m.Arrow(1, base, 2)
	q.Consume()
	m.Confirm(base, 3)

	got := drain(q, events.TypeSectionSelected)
	if len(got) != 1 {
		t.Fatalf("selection events = %d", len(got))
	}
	p := got[0].Payload.(*events.SelectionPayload)
	if p.Section != "work" || p.ItemIndex != 1 {
		t.Errorf("payload = %+v", p)
	}
}

func TestKeyboardOnlyActivationOpensAtCenter(t *testing.T) {
	m, q := newTestMachine(t)
	base := time.Now()

	m.Shortcut(base, 1)
	if m.State() != StateActive {
		t.Fatalf("state = %v", m.State())
	}
	got := drain(q, events.TypeLensActivated)
	if len(got) != 1 {
		t.Fatal("no activation event")
	}
	p := got[0].Payload.(*events.LensPayload)
	if p.CenterX != 400 || p.CenterY != 300 {
		t.Errorf("keyboard activation center = (%v, %v), want viewport center", p.CenterX, p.CenterY)
	}
}

func TestZeroDeactivateFadeDismissesImmediately(t *testing.T) {
	m, q := newTestMachine(t)
	base := time.Now()

	m.SetDeactivateFade(0)
	m.PointerMoved(400, 300, base)
	m.Shortcut(base, 1)
	q.Consume()

	m.Escape(base.Add(time.Second))
	m.Update(base.Add(time.Second), 2)

	if m.State() != StateIdle {
		t.Fatalf("state = %v, want Idle on the dismissing update", m.State())
	}
	if got := drain(q, events.TypeLensDismissed); len(got) != 1 {
		t.Errorf("dismissal events = %d", len(got))
	}
}

func TestHoverActivationDisabled(t *testing.T) {
	m, q := newTestMachine(t)
	base := time.Now()

	m.SetHoverActivation(false)

	m.PointerMoved(400, 300, base)
	if m.State() != StateIdle {
		t.Fatalf("state = %v, want Idle without hover", m.State())
	}
	m.Update(base.Add(parameter.LensHoverDelay*2), 1)
	if m.State() != StateIdle {
		t.Fatalf("dwell activated with hover disabled: %v", m.State())
	}

	// Press-and-hold still works
	m.PointerDown(base.Add(time.Second))
	if m.State() != StatePendingClick {
		t.Fatalf("state = %v", m.State())
	}
	m.Update(base.Add(time.Second+parameter.LensPressDelay), 2)
	if m.State() != StateActive {
		t.Fatalf("press did not activate: %v", m.State())
	}
	if got := drain(q, events.TypeLensActivated); len(got) != 1 {
		t.Errorf("activation events = %d", len(got))
	}
}

func TestDisablingHoverCancelsPendingDwell(t *testing.T) {
	m, _ := newTestMachine(t)
	base := time.Now()

	m.PointerMoved(400, 300, base)
	if m.State() != StatePendingHover {
		t.Fatalf("state = %v", m.State())
	}

	m.SetHoverActivation(false)
	if m.State() != StateIdle {
		t.Errorf("pending dwell survived hover disable: %v", m.State())
	}
}

func TestCancelPendingOnVisibilityLoss(t *testing.T) {
	m, _ := newTestMachine(t)
	base := time.Now()

	m.PointerMoved(400, 300, base)
	m.CancelPending()
	if m.State() != StateIdle {
		t.Fatalf("state = %v", m.State())
	}

	// Active state is unaffected
	m.PointerMoved(400, 300, base)
	m.Shortcut(base, 1)
	m.CancelPending()
	if m.State() != StateActive {
		t.Fatalf("state = %v", m.State())
	}
}
