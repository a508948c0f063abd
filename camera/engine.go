package camera

import (
	"math"
	"sync/atomic"
	"time"

	"github.com/kinodeck/lenscam/canvas"
	"github.com/kinodeck/lenscam/events"
	"github.com/kinodeck/lenscam/parameter"
	"github.com/kinodeck/lenscam/quality"
	"github.com/kinodeck/lenscam/status"
	"github.com/kinodeck/lenscam/vmath"
)

// Transition is the in-flight interpolation state
// Created when a transition begins, destroyed on completion or when a
// newer request supersedes it
type Transition struct {
	Movement  MovementType
	Section   canvas.SectionID
	Start     canvas.Position
	Target    canvas.Position
	StartedAt time.Time
	Duration  time.Duration
	Ease      func(float64) float64
	Elastic   bool // target was edge-clamped; easing bounces

	// Envelope values inherited at start; a superseding movement decays
	// them toward rest instead of freezing them mid-flight
	StartBlurMix   float64
	StartCrossFade float64
}

// Engine owns the canvas Position and interpolates it between sections
//
// States: Idle -> Animating -> Idle. At most one transition is active;
// a new request continues from the current mid-flight position rather
// than resetting, so superseding never snaps. All targets are clamped
// to the geometry bounds; clamped targets ease elastically so edge
// contact reads as a bounce instead of a hard stop
type Engine struct {
	geom canvas.Geometry

	pos       canvas.Position
	focus     canvas.SectionID
	blurMix   float64 // dolly-zoom envelope, [0, 1]
	crossFade float64 // match-cut presentation, 1 = fully visible

	trans *Transition

	transitionScale float64

	queue *events.Queue

	statTransitions *atomic.Int64
	statSuperseded  *atomic.Int64
}

// NewEngine creates an engine centered on the canvas at scale 1
func NewEngine(geom canvas.Geometry, queue *events.Queue, reg *status.Registry) *Engine {
	start, _ := geom.Clamp(canvas.Position{
		X:     geom.Width / 2,
		Y:     geom.Height / 2,
		Scale: 1,
	})
	return &Engine{
		geom:            geom,
		pos:             start,
		crossFade:       1,
		transitionScale: 1,
		queue:           queue,
		statTransitions: reg.Ints.Get("camera.transitions"),
		statSuperseded:  reg.Ints.Get("camera.superseded"),
	}
}

// Position returns the current committed camera position
// Always satisfies the scale and bounds invariants
func (e *Engine) Position() canvas.Position {
	return e.pos
}

// Focus returns the section the camera considers focused
func (e *Engine) Focus() canvas.SectionID {
	return e.focus
}

// BlurMix returns the dolly-zoom blur envelope in [0, 1]
func (e *Engine) BlurMix() float64 {
	return e.blurMix
}

// CrossFade returns match-cut presentation opacity in [0, 1]
func (e *Engine) CrossFade() float64 {
	return e.crossFade
}

// IsTransitioning reports whether a transition is in flight
func (e *Engine) IsTransitioning() bool {
	return e.trans != nil
}

// ApplyBudget scales transition durations per the quality tier
func (e *Engine) ApplyBudget(b quality.Budget) {
	if b.TransitionScale > 0 {
		e.transitionScale = b.TransitionScale
	}
}

// TransitionTo starts (or supersedes) a transition toward section
//
// Supersession continues interpolation from the current, possibly
// mid-flight, position; the prior target is discarded without snapping
func (e *Engine) TransitionTo(section canvas.Section, movement MovementType, now time.Time, frame uint64) {
	superseded := e.trans != nil
	if superseded {
		e.statSuperseded.Add(1)
	}

	start := e.pos
	target := e.targetFor(section, movement)
	target, clamped := e.geom.Clamp(target)

	ease := vmath.EaseInOutCubic
	if clamped {
		ease = vmath.EaseOutElastic
	}

	duration := time.Duration(float64(parameter.TransitionDuration) * e.transitionScale)
	if clamped {
		duration += parameter.ElasticSettleDuration
	}
	if movement == MovementMatchCut {
		duration = parameter.MatchCutFadeDuration
		ease = vmath.EaseOutCubic
	}

	e.trans = &Transition{
		Movement:       movement,
		Section:        section.ID,
		Start:          start,
		Target:         target,
		StartedAt:      now,
		Duration:       duration,
		Ease:           ease,
		Elastic:        clamped,
		StartBlurMix:   e.blurMix,
		StartCrossFade: e.crossFade,
	}
	e.focus = section.ID
	e.statTransitions.Add(1)

	if movement == MovementMatchCut {
		// Position swaps on the first frame; only opacity interpolates
		e.pos = target
		e.crossFade = 0
		e.trans.StartCrossFade = 0
	}

	e.queue.Push(events.Event{
		Type:      events.TypeTransitionStarted,
		Payload:   &events.TransitionPayload{Section: section.ID, Superseded: superseded},
		Frame:     frame,
		Timestamp: now,
	})
}

// targetFor derives the target position from the movement semantics
func (e *Engine) targetFor(section canvas.Section, movement MovementType) canvas.Position {
	switch movement {
	case MovementPanTilt:
		return canvas.Position{X: section.Center.X, Y: section.Center.Y, Scale: e.pos.Scale}

	case MovementZoomIn:
		scale := section.Scale
		if scale < e.pos.Scale {
			scale = e.pos.Scale * 1.25
		}
		return canvas.Position{X: e.pos.X, Y: e.pos.Y, Scale: scale}

	case MovementZoomOut:
		scale := section.Scale
		if scale > e.pos.Scale {
			scale = e.pos.Scale * 0.8
		}
		return canvas.Position{X: e.pos.X, Y: e.pos.Y, Scale: scale}

	case MovementRackFocus:
		// Blur target only; position is pinned for the whole duration
		return e.pos

	default: // MovementDollyZoom, MovementMatchCut
		return canvas.Position{X: section.Center.X, Y: section.Center.Y, Scale: section.Scale}
	}
}

// Step advances the in-flight transition, if any
// Runs on the scheduler at high priority so renderers observe a fully
// committed position within the same frame
func (e *Engine) Step(now time.Time, frame uint64) {
	tr := e.trans
	if tr == nil {
		return
	}

	t := 1.0
	if tr.Duration > 0 {
		t = vmath.Clamp01(float64(now.Sub(tr.StartedAt)) / float64(tr.Duration))
	}
	p := tr.Ease(t)

	switch tr.Movement {
	case MovementRackFocus, MovementMatchCut:
		// Position holds: rack focus pins it, match cut swapped at start

	default:
		next := canvas.Position{
			X:     vmath.Lerp(tr.Start.X, tr.Target.X, p),
			Y:     vmath.Lerp(tr.Start.Y, tr.Target.Y, p),
			Scale: vmath.Lerp(tr.Start.Scale, tr.Target.Scale, p),
		}
		// Elastic easing may overshoot the clamped target; the emitted
		// position still honors the bounds invariant
		e.pos, _ = e.geom.Clamp(next)
	}

	// Inherited envelopes decay toward rest every frame; a dolly zoom
	// layers its own envelope on top
	fade := vmath.Clamp01(p)
	e.blurMix = tr.StartBlurMix * (1 - fade)
	if tr.Movement == MovementDollyZoom {
		if env := math.Sin(math.Pi * t); env > e.blurMix {
			e.blurMix = env
		}
	}
	e.crossFade = vmath.Lerp(tr.StartCrossFade, 1, fade)

	if t >= 1 {
		e.complete(now, frame)
	}
}

func (e *Engine) complete(now time.Time, frame uint64) {
	tr := e.trans
	e.pos = tr.Target
	e.trans = nil
	e.blurMix = 0
	e.crossFade = 1

	e.queue.Push(events.Event{
		Type:      events.TypeTransitionCompleted,
		Payload:   &events.TransitionPayload{Section: tr.Section},
		Frame:     frame,
		Timestamp: now,
	})
}
