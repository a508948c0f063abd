package main

import (
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/kinodeck/lenscam/canvas"
	"github.com/kinodeck/lenscam/engine"
)

func TestRenderDrawsFieldAndStatus(t *testing.T) {
	sim := tcell.NewSimulationScreen("UTF-8")
	if err := sim.Init(); err != nil {
		t.Fatal(err)
	}
	defer sim.Fini()
	sim.SetSize(80, 24)

	mock := engine.NewMockTimeProvider(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	director, err := engine.New(engine.Config{
		Clock:    mock,
		Geometry: canvas.DefaultGeometry(),
		Sections: demoSections(),
		Caps:     engine.Caps{BackdropFilter: true, ViewportW: 80, ViewportH: 24},
	})
	if err != nil {
		t.Fatal(err)
	}

	d := &demo{
		screen:   sim,
		director: director,
		lastTier: director.Quality.Tier().String(),
	}

	d.render(engine.FrameContext{Now: mock.Now(), Frame: 1})

	w, h := sim.Size()
	cells, _, _ := sim.GetContents()
	var drawn int
	for _, c := range cells[:w*(h-1)] {
		if len(c.Runes) > 0 && c.Runes[0] != ' ' && c.Runes[0] != 0 {
			drawn++
		}
	}
	if drawn == 0 {
		t.Error("render drew nothing in the section field")
	}

	// Status line occupies the bottom row
	status := ""
	for x := 0; x < w; x++ {
		c := cells[(h-1)*w+x]
		if len(c.Runes) > 0 {
			status += string(c.Runes[0])
		}
	}
	if !strings.Contains(status, "fps") || !strings.Contains(status, "tier") {
		t.Errorf("status line = %q", status)
	}
}

func TestRingRadiusScalesWithTerminal(t *testing.T) {
	if r := ringRadius(80, 24); r != 8 {
		t.Errorf("ringRadius(80, 24) = %v, want 8", r)
	}
	if r := ringRadius(200, 60); r != 20 {
		t.Errorf("ringRadius(200, 60) = %v, want 20", r)
	}
	if r := ringRadius(10, 6); r < 4 {
		t.Errorf("ringRadius floor violated: %v", r)
	}
}
