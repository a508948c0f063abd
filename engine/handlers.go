package engine

import (
	"github.com/kinodeck/lenscam/camera"
	"github.com/kinodeck/lenscam/events"
	"github.com/kinodeck/lenscam/quality"
)

// Event handlers bridging the queue to subsystem methods
// All run on the frame goroutine during dispatch

type pointerHandler struct{}

func (pointerHandler) EventTypes() []events.Type {
	return []events.Type{events.TypePointerMoved, events.TypePointerDown, events.TypePointerUp}
}

func (pointerHandler) HandleEvent(d *Director, ev events.Event) {
	switch ev.Type {
	case events.TypePointerMoved:
		if p, ok := ev.Payload.(*events.PointerPayload); ok {
			d.Cursor.Offer(p.X, p.Y, ev.Timestamp)
		}
	case events.TypePointerDown:
		d.Lens.PointerDown(d.now)
	case events.TypePointerUp:
		d.Lens.PointerUp(d.now, d.frame)
	}
}

type keyHandler struct{}

func (keyHandler) EventTypes() []events.Type {
	return []events.Type{events.TypeEscape, events.TypeArrowKey, events.TypeConfirmKey, events.TypeLensShortcut}
}

func (keyHandler) HandleEvent(d *Director, ev events.Event) {
	switch ev.Type {
	case events.TypeEscape:
		// Escape both deactivates the lens and latches the blur
		// override, taking effect within this frame
		d.Lens.Escape(d.now)
		d.Effect.SetOverride(true)

	case events.TypeArrowKey:
		if p, ok := ev.Payload.(*events.ArrowPayload); ok {
			d.Lens.Arrow(p.Step, d.now, d.frame)
		}

	case events.TypeConfirmKey:
		d.Lens.Confirm(d.now, d.frame)

	case events.TypeLensShortcut:
		d.Lens.Shortcut(d.now, d.frame)
	}
}

type selectionHandler struct{}

func (selectionHandler) EventTypes() []events.Type {
	return []events.Type{events.TypeSectionSelected}
}

func (selectionHandler) HandleEvent(d *Director, ev events.Event) {
	p, ok := ev.Payload.(*events.SelectionPayload)
	if !ok {
		return
	}
	section, ok := d.Sections.Get(p.Section)
	if !ok {
		return
	}

	movement := camera.MovementType(p.MovementType)
	d.Camera.TransitionTo(section, movement, d.now, d.frame)

	if d.hooks.OnNavigate != nil {
		d.hooks.OnNavigate(section.ID, movement)
	}
}

type lensLifecycleHandler struct{}

func (lensLifecycleHandler) EventTypes() []events.Type {
	return []events.Type{events.TypeLensActivated, events.TypeLensDismissed}
}

func (lensLifecycleHandler) HandleEvent(d *Director, ev events.Event) {
	switch ev.Type {
	case events.TypeLensActivated:
		if d.hooks.OnLensActivated != nil {
			d.hooks.OnLensActivated()
		}
	case events.TypeLensDismissed:
		if d.hooks.OnLensDismissed != nil {
			d.hooks.OnLensDismissed()
		}
	}
}

type qualityHandler struct{}

func (qualityHandler) EventTypes() []events.Type {
	return []events.Type{events.TypeQualityChanged}
}

func (qualityHandler) HandleEvent(d *Director, ev events.Event) {
	p, ok := ev.Payload.(*events.QualityPayload)
	if !ok {
		return
	}
	tier := quality.Tier(p.Tier)
	d.applyBudget(tier)

	if d.hooks.OnQualityChanged != nil {
		d.hooks.OnQualityChanged(tier, p.Downgrade)
	}
}

type visibilityHandler struct{}

func (visibilityHandler) EventTypes() []events.Type {
	return []events.Type{events.TypeVisibilityChanged}
}

func (visibilityHandler) HandleEvent(d *Director, ev events.Event) {
	p, ok := ev.Payload.(*events.VisibilityPayload)
	if !ok {
		return
	}
	d.Cursor.SetVisible(p.Visible)
	if !p.Visible {
		// Hiding the host cancels pending activation timers
		d.Lens.CancelPending()
		d.Cursor.PointerLeft(d.now)
	}
}
