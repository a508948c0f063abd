package engine

import (
	"fmt"
	"time"

	"github.com/kinodeck/lenscam/camera"
	"github.com/kinodeck/lenscam/canvas"
	"github.com/kinodeck/lenscam/cursor"
	"github.com/kinodeck/lenscam/dof"
	"github.com/kinodeck/lenscam/events"
	"github.com/kinodeck/lenscam/lens"
	"github.com/kinodeck/lenscam/parameter"
	"github.com/kinodeck/lenscam/quality"
	"github.com/kinodeck/lenscam/status"
)

// Caps are host-supplied device and environment capability flags
type Caps struct {
	ReducedMotion  bool
	Touch          bool
	BackdropFilter bool
	ViewportW      float64
	ViewportH      float64
}

// Config assembles a Director
type Config struct {
	Clock    Clock // nil = real time
	Geometry canvas.Geometry
	Sections []canvas.Section
	Caps     Caps
}

// Hooks are outward-facing delegates; all fire on the frame goroutine
type Hooks struct {
	// OnNavigate delegates a selection to the external router or
	// scroll coordinator
	OnNavigate func(section canvas.SectionID, movement camera.MovementType)

	// OnLensActivated fires when the lens opens
	OnLensActivated func()

	// OnLensDismissed fires on full deactivation
	OnLensDismissed func()

	// OnQualityChanged fires on exactly-once tier changes
	OnQualityChanged func(tier quality.Tier, downgrade bool)
}

// Director is the lifecycle-managed context that owns every subsystem
//
// There are no package-level singletons: the scheduler, queue, metric
// registry, and all spatial state live here and are passed by
// reference to consumers. All mutation happens inside frame callbacks
// on the scheduler goroutine, so cross-component reads always observe
// fully-committed values
type Director struct {
	clock Clock
	caps  Caps
	geom  canvas.Geometry

	Status    *status.Registry
	Queue     *events.Queue
	Scheduler *FrameScheduler
	Sections  *canvas.Registry

	Cursor  *cursor.Tracker
	Lens    *lens.Machine
	Camera  *camera.Engine
	Quality *quality.Manager
	Effect  *dof.Effect

	router *events.Router[*Director]
	hooks  Hooks

	// Per-frame context for event handlers
	now   time.Time
	frame uint64

	lastCursorStamp time.Time
}

// New creates a fully wired Director
func New(cfg Config) (*Director, error) {
	clock := cfg.Clock
	if clock == nil {
		clock = NewTimeProvider()
	}

	sections, err := canvas.NewRegistry(cfg.Sections)
	if err != nil {
		return nil, fmt.Errorf("section registry: %w", err)
	}

	reg := status.NewRegistry()
	queue := events.NewQueue()

	d := &Director{
		clock:     clock,
		caps:      cfg.Caps,
		geom:      cfg.Geometry,
		Status:    reg,
		Queue:     queue,
		Scheduler: NewFrameScheduler(clock, reg),
		Sections:  sections,
		Cursor:    cursor.NewTracker(reg),
		Camera:    camera.NewEngine(cfg.Geometry, queue, reg),
		Quality:   quality.NewManager(queue, reg, cfg.Caps.ReducedMotion),
		Effect:    dof.NewEffect(cfg.Caps.ReducedMotion, cfg.Caps.BackdropFilter),
	}

	viewport := lens.Size{W: cfg.Caps.ViewportW, H: cfg.Caps.ViewportH}
	d.Lens = lens.NewMachine(sections, viewport, queue, reg, d.pickMovement)
	if cfg.Caps.Touch {
		// No hover on touch pointers; the lens opens by press-and-hold
		// or shortcut only
		d.Lens.SetHoverActivation(false)
	}

	d.applyBudget(d.Quality.Tier())

	d.router = events.NewRouter[*Director](queue)
	d.router.Register(&pointerHandler{})
	d.router.Register(&keyHandler{})
	d.router.Register(&selectionHandler{})
	d.router.Register(&lensLifecycleHandler{})
	d.router.Register(&qualityHandler{})
	d.router.Register(&visibilityHandler{})

	// High priority: event dispatch, cursor commit, gesture timers,
	// transition interpolation. Low priority: quality sampling
	d.Scheduler.Register(d.stepHigh, PriorityHigh)
	d.Scheduler.Register(d.stepLow, PriorityLow)

	return d, nil
}

// SetHooks installs the outward delegates; call before Start
func (d *Director) SetHooks(h Hooks) {
	d.hooks = h
}

// Start enables sampling and begins the background frame loop
func (d *Director) Start() {
	d.Cursor.Start()
	d.Scheduler.Start()
}

// Stop halts the frame loop
func (d *Director) Stop() {
	d.Scheduler.Stop()
	d.Cursor.Stop()
}

// SetViewport propagates a host resize to menu placement
func (d *Director) SetViewport(w, h float64) {
	d.caps.ViewportW, d.caps.ViewportH = w, h
	d.Lens.SetViewport(lens.Size{W: w, H: h})
}

// ReenableBlur releases the Escape accessibility override
func (d *Director) ReenableBlur() {
	d.Effect.SetOverride(false)
}

// SectionOutput composites blur and opacity for one section
// Dolly-zoom raises blur through its envelope; match-cut scales
// opacity by the cross-fade
func (d *Director) SectionOutput(s canvas.Section) dof.Output {
	focus := d.Camera.Position().Vec()
	if fs, ok := d.Sections.Get(d.Camera.Focus()); ok {
		focus = fs.Center
	}

	out := d.Effect.Compute(s.Center, focus)

	if mix := d.Camera.BlurMix(); mix > 0 {
		envelope := mix * d.Quality.Budget().MaxBlur
		if envelope > out.Blur {
			out.Blur = envelope
		}
	}
	out.Opacity *= d.Camera.CrossFade()
	return out
}

// applyBudget propagates a tier's budget to every animation consumer
// A single concurrent-animation slot goes to the camera transition, so
// the lens dismissal fade collapses to a cut
func (d *Director) applyBudget(tier quality.Tier) {
	b := quality.BudgetFor(tier)
	d.Camera.ApplyBudget(b)
	d.Effect.SetTier(tier)
	if b.MaxConcurrentAnimations <= 1 {
		d.Lens.SetDeactivateFade(0)
	} else {
		d.Lens.SetDeactivateFade(parameter.LensDeactivateFade)
	}
}

// pickMovement chooses the camera movement for a lens selection
func (d *Director) pickMovement(s canvas.Section) int {
	return int(camera.ChooseMovement(d.Camera.Position(), d.Camera.Focus(), d.geom, s))
}

// stepHigh runs the ordered per-frame pipeline
func (d *Director) stepHigh(fc FrameContext) {
	d.now = fc.Now
	d.frame = fc.Frame

	d.router.DispatchAll(d)

	d.Cursor.Commit(fc.Now)
	if pos, ok := d.Cursor.Current(); ok && pos.Timestamp.After(d.lastCursorStamp) {
		d.lastCursorStamp = pos.Timestamp
		d.Lens.PointerMoved(pos.X, pos.Y, fc.Now)
	}

	d.Lens.Update(fc.Now, fc.Frame)
	d.Camera.Step(fc.Now, fc.Frame)

	// Events synthesized this frame (activation, selection, tier
	// changes) dispatch before the frame ends so renderers never see a
	// half-applied interaction
	d.router.DispatchAll(d)
}

// stepLow aggregates metrics into the quality window
func (d *Director) stepLow(fc FrameContext) {
	d.Quality.AddSample(d.Scheduler.FPS(), fc.Now, fc.Frame)
}
