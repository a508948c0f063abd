package camera

import (
	"math"
	"testing"
	"time"

	"github.com/kinodeck/lenscam/canvas"
	"github.com/kinodeck/lenscam/events"
	"github.com/kinodeck/lenscam/parameter"
	"github.com/kinodeck/lenscam/quality"
	"github.com/kinodeck/lenscam/status"
	"github.com/kinodeck/lenscam/vmath"
)

func testGeometry() canvas.Geometry {
	return canvas.Geometry{
		Width: 2400, Height: 1600,
		ViewportW: 800, ViewportH: 600,
		MinScale: 0.5, MaxScale: 2.0,
	}
}

func newTestEngine() (*Engine, *events.Queue) {
	q := events.NewQueue()
	return NewEngine(testGeometry(), q, status.NewRegistry()), q
}

func transitions(q *events.Queue, want events.Type) []*events.TransitionPayload {
	var out []*events.TransitionPayload
	for _, ev := range q.Consume() {
		if ev.Type == want {
			out = append(out, ev.Payload.(*events.TransitionPayload))
		}
	}
	return out
}

func TestPanTiltKeepsScale(t *testing.T) {
	e, q := newTestEngine()
	base := time.Now()
	section := canvas.Section{ID: "work", Center: vmath.Vec2{X: 1500, Y: 900}, Scale: 2}

	e.TransitionTo(section, MovementPanTilt, base, 1)

	e.Step(base.Add(parameter.TransitionDuration/2), 2)
	mid := e.Position()
	if mid.Scale != 1 {
		t.Errorf("pan-tilt changed scale mid-flight: %v", mid.Scale)
	}
	if mid.X <= 1200 || mid.X >= 1500 {
		t.Errorf("mid-flight x = %v, want between 1200 and 1500", mid.X)
	}

	e.Step(base.Add(parameter.TransitionDuration), 3)
	got := e.Position()
	if got.X != 1500 || got.Y != 900 || got.Scale != 1 {
		t.Errorf("final position = %+v", got)
	}
	if e.IsTransitioning() {
		t.Error("transition still in flight after completion")
	}
	if done := transitions(q, events.TypeTransitionCompleted); len(done) != 1 || done[0].Section != "work" {
		t.Errorf("completion events = %v", done)
	}
}

func TestZoomChangesScaleOnly(t *testing.T) {
	e, _ := newTestEngine()
	base := time.Now()
	section := canvas.Section{ID: "detail", Center: vmath.Vec2{X: 1200, Y: 800}, Scale: 1.5}

	e.TransitionTo(section, MovementZoomIn, base, 1)
	e.Step(base.Add(parameter.TransitionDuration), 2)

	got := e.Position()
	if got.X != 1200 || got.Y != 800 {
		t.Errorf("zoom moved the camera: %+v", got)
	}
	if got.Scale != 1.5 {
		t.Errorf("scale = %v, want 1.5", got.Scale)
	}
}

func TestRackFocusPinsPosition(t *testing.T) {
	e, _ := newTestEngine()
	base := time.Now()
	section := canvas.Section{ID: "same", Center: vmath.Vec2{X: 2000, Y: 200}, Scale: 2}

	before := e.Position()
	e.TransitionTo(section, MovementRackFocus, base, 1)

	for i := 1; i <= 10; i++ {
		e.Step(base.Add(time.Duration(i)*parameter.TransitionDuration/10), uint64(i))
		if e.Position() != before {
			t.Fatalf("rack focus moved the camera at step %d: %+v", i, e.Position())
		}
	}
	if e.Focus() != "same" {
		t.Errorf("focus = %v", e.Focus())
	}
}

func TestMatchCutSwapsUnderCrossFade(t *testing.T) {
	e, _ := newTestEngine()
	base := time.Now()
	section := canvas.Section{ID: "far", Center: vmath.Vec2{X: 2000, Y: 1300}, Scale: 1}

	e.TransitionTo(section, MovementMatchCut, base, 1)

	// Position swaps on the first frame
	if got := e.Position(); got.X != 2000 || got.Y != 1300 {
		t.Fatalf("match cut did not swap position: %+v", got)
	}
	if e.CrossFade() != 0 {
		t.Fatalf("cross fade = %v at start", e.CrossFade())
	}

	e.Step(base.Add(parameter.MatchCutFadeDuration/2), 2)
	if cf := e.CrossFade(); cf <= 0 || cf >= 1 {
		t.Errorf("mid cross fade = %v, want in (0, 1)", cf)
	}
	if got := e.Position(); got.X != 2000 || got.Y != 1300 {
		t.Errorf("position drifted during cross fade: %+v", got)
	}

	e.Step(base.Add(parameter.MatchCutFadeDuration), 3)
	if e.CrossFade() != 1 {
		t.Errorf("final cross fade = %v", e.CrossFade())
	}
}

func TestSupersessionContinuesFromCurrent(t *testing.T) {
	e, q := newTestEngine()
	base := time.Now()

	a := canvas.Section{ID: "a", Center: vmath.Vec2{X: 2000, Y: 800}, Scale: 1}
	b := canvas.Section{ID: "b", Center: vmath.Vec2{X: 600, Y: 400}, Scale: 1}

	e.TransitionTo(a, MovementPanTilt, base, 1)
	e.Step(base.Add(parameter.TransitionDuration/2), 2)
	mid := e.Position()

	e.TransitionTo(b, MovementPanTilt, base.Add(parameter.TransitionDuration/2), 3)
	if e.Position() != mid {
		t.Errorf("supersession snapped: %+v vs %+v", e.Position(), mid)
	}

	started := transitions(q, events.TypeTransitionStarted)
	if len(started) != 2 {
		t.Fatalf("start events = %d", len(started))
	}
	if started[0].Superseded || !started[1].Superseded {
		t.Errorf("supersession flags = %v, %v", started[0].Superseded, started[1].Superseded)
	}

	// The superseding transition eases from the mid-flight position, so
	// the very next step moves only slightly
	e.Step(base.Add(parameter.TransitionDuration/2+parameter.FrameInterval), 4)
	step := e.Position().Vec().Distance(mid.Vec())
	if step > 50 {
		t.Errorf("first step after supersession jumped %v units", step)
	}

	e.Step(base.Add(parameter.TransitionDuration*2), 5)
	if got := e.Position(); got.X != 600 || got.Y != 400 {
		t.Errorf("final position = %+v", got)
	}
}

func TestClampedTargetStaysInBounds(t *testing.T) {
	e, _ := newTestEngine()
	base := time.Now()
	g := testGeometry()

	// Section near the canvas corner; its centered view is impossible
	section := canvas.Section{ID: "corner", Center: vmath.Vec2{X: 100, Y: 100}, Scale: 1}
	e.TransitionTo(section, MovementPanTilt, base, 1)

	total := parameter.TransitionDuration + parameter.ElasticSettleDuration
	for i := 1; i <= 60; i++ {
		e.Step(base.Add(time.Duration(i)*total/50), uint64(i))
		pos := e.Position()
		b := g.Bounds(pos.Scale)
		if !b.Contains(pos.X, pos.Y) {
			t.Fatalf("step %d position (%v, %v) outside bounds %+v", i, pos.X, pos.Y, b)
		}
	}

	got := e.Position()
	if got.X != 400 || got.Y != 300 {
		t.Errorf("final position = %+v, want clamped target (400, 300)", got)
	}
}

func TestDollyZoomBlurEnvelope(t *testing.T) {
	e, _ := newTestEngine()
	base := time.Now()
	section := canvas.Section{ID: "deep", Center: vmath.Vec2{X: 1400, Y: 900}, Scale: 1.8}

	e.TransitionTo(section, MovementDollyZoom, base, 1)

	e.Step(base.Add(parameter.TransitionDuration/2), 2)
	if mix := e.BlurMix(); math.Abs(mix-1) > 1e-9 {
		t.Errorf("blur mix at midpoint = %v, want 1", mix)
	}

	e.Step(base.Add(parameter.TransitionDuration), 3)
	if e.BlurMix() != 0 {
		t.Errorf("blur mix after completion = %v", e.BlurMix())
	}
}

func TestSupersededDollyEnvelopeDecays(t *testing.T) {
	e, _ := newTestEngine()
	base := time.Now()

	deep := canvas.Section{ID: "deep", Center: vmath.Vec2{X: 1400, Y: 900}, Scale: 1.8}
	e.TransitionTo(deep, MovementDollyZoom, base, 1)

	mid := base.Add(parameter.TransitionDuration / 2)
	e.Step(mid, 2)
	if e.BlurMix() != 1 {
		t.Fatalf("blur mix at dolly midpoint = %v, want 1", e.BlurMix())
	}

	aside := canvas.Section{ID: "aside", Center: vmath.Vec2{X: 800, Y: 600}, Scale: 1}
	e.TransitionTo(aside, MovementPanTilt, mid, 3)

	// The inherited envelope fades out across the pan instead of
	// holding full blur until completion
	e.Step(mid.Add(parameter.TransitionDuration/10), 4)
	first := e.BlurMix()
	if first >= 1 || first < 0.9 {
		t.Errorf("blur mix after first pan step = %v, want a small continuous drop", first)
	}

	prev := first
	for i := 2; i <= 10; i++ {
		e.Step(mid.Add(time.Duration(i)*parameter.TransitionDuration/10), uint64(3+i))
		mix := e.BlurMix()
		if mix > prev+1e-9 {
			t.Fatalf("blur mix rose mid-pan: %v -> %v", prev, mix)
		}
		prev = mix
	}
	if e.BlurMix() != 0 {
		t.Errorf("blur mix after pan completion = %v", e.BlurMix())
	}
}

func TestSupersededMatchCutFadeCompletes(t *testing.T) {
	e, _ := newTestEngine()
	base := time.Now()

	far := canvas.Section{ID: "far", Center: vmath.Vec2{X: 2000, Y: 1300}, Scale: 1}
	e.TransitionTo(far, MovementMatchCut, base, 1)

	mid := base.Add(parameter.MatchCutFadeDuration / 2)
	e.Step(mid, 2)
	prev := e.CrossFade()
	if prev <= 0 || prev >= 1 {
		t.Fatalf("cross fade at midpoint = %v", prev)
	}

	back := canvas.Section{ID: "back", Center: vmath.Vec2{X: 1200, Y: 800}, Scale: 1}
	e.TransitionTo(back, MovementPanTilt, mid, 3)

	// The partial fade continues rising through the pan; it never dips
	// back down or jumps at completion
	for i := 1; i <= 10; i++ {
		e.Step(mid.Add(time.Duration(i)*parameter.TransitionDuration/10), uint64(3+i))
		cf := e.CrossFade()
		if cf < prev-1e-9 {
			t.Fatalf("cross fade dipped mid-pan: %v -> %v", prev, cf)
		}
		prev = cf
	}
	if e.CrossFade() != 1 {
		t.Errorf("cross fade after pan completion = %v", e.CrossFade())
	}
}

func TestBudgetScalesDuration(t *testing.T) {
	e, _ := newTestEngine()
	base := time.Now()
	e.ApplyBudget(quality.Budget{TransitionScale: 0.5, MaxBlur: 6})

	section := canvas.Section{ID: "work", Center: vmath.Vec2{X: 1500, Y: 900}, Scale: 1}
	e.TransitionTo(section, MovementPanTilt, base, 1)

	e.Step(base.Add(parameter.TransitionDuration/2), 2)
	if e.IsTransitioning() {
		t.Error("scaled transition should already be complete")
	}
}

func TestChooseMovement(t *testing.T) {
	g := testGeometry()
	pos := canvas.Position{X: 1200, Y: 800, Scale: 1}

	tests := []struct {
		name    string
		focused canvas.SectionID
		target  canvas.Section
		want    MovementType
	}{
		{"refocus", "here", canvas.Section{ID: "here", Center: vmath.Vec2{X: 1200, Y: 800}, Scale: 1}, MovementRackFocus},
		{"far jump", "", canvas.Section{ID: "far", Center: vmath.Vec2{X: 2400, Y: 1600}, Scale: 1}, MovementMatchCut},
		{"zoom in", "", canvas.Section{ID: "in", Center: vmath.Vec2{X: 1200, Y: 800}, Scale: 1.5}, MovementZoomIn},
		{"zoom out", "", canvas.Section{ID: "out", Center: vmath.Vec2{X: 1200, Y: 800}, Scale: 0.6}, MovementZoomOut},
		{"dolly", "", canvas.Section{ID: "d", Center: vmath.Vec2{X: 1500, Y: 900}, Scale: 1.5}, MovementDollyZoom},
		{"pan", "", canvas.Section{ID: "p", Center: vmath.Vec2{X: 1500, Y: 900}, Scale: 1}, MovementPanTilt},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ChooseMovement(pos, tt.focused, g, tt.target); got != tt.want {
				t.Errorf("ChooseMovement = %v, want %v", got, tt.want)
			}
		})
	}
}
