package input

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/kinodeck/lenscam/events"
)

// Action is host-level fallout from an input event that the core does
// not consume
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionResize
)

// Translator parses tcell events into navigation events
//
// Runs on the host input goroutine; pushes are lock-free, so the frame
// loop never blocks on input. Press/release edges are derived from the
// button mask because tcell reports state, not transitions
type Translator struct {
	queue   *events.Queue
	buttons tcell.ButtonMask
}

// NewTranslator creates a translator feeding the given queue
func NewTranslator(queue *events.Queue) *Translator {
	return &Translator{queue: queue}
}

// Process translates one terminal event, pushing navigation events as
// a side effect, and returns any host-level action
func (t *Translator) Process(ev tcell.Event, now time.Time) Action {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		return ActionResize
	case *tcell.EventKey:
		return t.processKey(ev, now)
	case *tcell.EventMouse:
		t.processMouse(ev, now)
	}
	return ActionNone
}

func (t *Translator) processKey(ev *tcell.EventKey, now time.Time) Action {
	switch ev.Key() {
	case tcell.KeyEscape:
		t.push(events.TypeEscape, nil, now)

	case tcell.KeyEnter:
		t.push(events.TypeConfirmKey, nil, now)

	case tcell.KeyLeft, tcell.KeyUp:
		t.push(events.TypeArrowKey, &events.ArrowPayload{Step: -1}, now)

	case tcell.KeyRight, tcell.KeyDown:
		t.push(events.TypeArrowKey, &events.ArrowPayload{Step: 1}, now)

	case tcell.KeyCtrlL:
		t.push(events.TypeLensShortcut, nil, now)

	case tcell.KeyCtrlC:
		return ActionQuit

	case tcell.KeyRune:
		switch ev.Rune() {
		case ' ':
			t.push(events.TypeConfirmKey, nil, now)
		case 'q', 'Q':
			return ActionQuit
		}
	}
	return ActionNone
}

func (t *Translator) processMouse(ev *tcell.EventMouse, now time.Time) {
	x, y := ev.Position()
	t.push(events.TypePointerMoved, &events.PointerPayload{X: float64(x), Y: float64(y)}, now)

	prev := t.buttons
	curr := ev.Buttons()
	t.buttons = curr

	pressedNow := curr&tcell.Button1 != 0
	pressedBefore := prev&tcell.Button1 != 0

	if pressedNow && !pressedBefore {
		t.push(events.TypePointerDown, &events.PointerPayload{X: float64(x), Y: float64(y)}, now)
	}
	if !pressedNow && pressedBefore {
		t.push(events.TypePointerUp, &events.PointerPayload{X: float64(x), Y: float64(y)}, now)
	}
}

func (t *Translator) push(typ events.Type, payload any, now time.Time) {
	t.queue.Push(events.Event{
		Type:      typ,
		Payload:   payload,
		Timestamp: now,
	})
}
