// Terminal host for the spatial navigation core
// Mouse moves the cursor; hold the left button or dwell to open the
// lens; arrows + Enter navigate it; Escape dismisses and kills blur;
// q quits
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/kinodeck/lenscam/audio"
	"github.com/kinodeck/lenscam/camera"
	"github.com/kinodeck/lenscam/canvas"
	"github.com/kinodeck/lenscam/engine"
	"github.com/kinodeck/lenscam/input"
	"github.com/kinodeck/lenscam/lens"
	"github.com/kinodeck/lenscam/quality"
	"github.com/kinodeck/lenscam/vmath"
)

func demoSections() []canvas.Section {
	return []canvas.Section{
		{ID: "home", Center: vmath.Vec2{X: 1200, Y: 800}, Scale: 1.0, Title: "Home", Priority: 5},
		{ID: "work", Center: vmath.Vec2{X: 600, Y: 400}, Scale: 1.2, Title: "Work", Priority: 4},
		{ID: "gallery", Center: vmath.Vec2{X: 1800, Y: 400}, Scale: 1.5, Title: "Gallery", Priority: 3},
		{ID: "about", Center: vmath.Vec2{X: 600, Y: 1200}, Scale: 0.8, Title: "About", Priority: 2},
		{ID: "contact", Center: vmath.Vec2{X: 1800, Y: 1200}, Scale: 1.0, Title: "Contact", Priority: 1},
	}
}

type demo struct {
	screen   tcell.Screen
	director *engine.Director
	cues     *audio.CuePlayer

	lastNav  string
	lastTier string
}

func main() {
	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "screen init: %v\n", err)
		os.Exit(1)
	}
	engine.SetCrashCleanup(screen.Fini)
	screen.EnableMouse()

	w, h := screen.Size()

	director, err := engine.New(engine.Config{
		Geometry: canvas.DefaultGeometry(),
		Sections: demoSections(),
		Caps: engine.Caps{
			BackdropFilter: true,
			ViewportW:      float64(w),
			ViewportH:      float64(h),
		},
	})
	if err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "director: %v\n", err)
		os.Exit(1)
	}
	director.Lens.SetRadius(ringRadius(w, h))

	d := &demo{
		screen:   screen,
		director: director,
		cues:     audio.NewCuePlayer(false),
		lastTier: director.Quality.Tier().String(),
	}

	director.SetHooks(engine.Hooks{
		OnNavigate: func(id canvas.SectionID, movement camera.MovementType) {
			d.lastNav = fmt.Sprintf("%s via %s", id, movement)
			d.cues.PlaySelect()
		},
		OnLensActivated: func() { d.cues.PlayActivate() },
		OnQualityChanged: func(tier quality.Tier, downgrade bool) {
			d.lastTier = tier.String()
			// A struggling host gets no decorative audio either
			d.cues.SetMuted(downgrade && tier == quality.TierAccessible)
		},
	})

	director.Scheduler.Register(d.render, engine.PriorityNormal)
	director.Start()

	quit := make(chan struct{})
	translator := input.NewTranslator(director.Queue)

	engine.Go(func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				close(quit)
				return
			}
			switch translator.Process(ev, time.Now()) {
			case input.ActionQuit:
				close(quit)
				return
			case input.ActionResize:
				nw, nh := screen.Size()
				director.SetViewport(float64(nw), float64(nh))
				director.Lens.SetRadius(ringRadius(nw, nh))
				screen.Sync()
			}
		}
	})

	<-quit
	director.Stop()
	d.cues.Close()
	screen.Fini()
}

func ringRadius(w, h int) float64 {
	r := float64(h) / 3
	if fw := float64(w) / 5; fw < r {
		r = fw
	}
	if r < 4 {
		r = 4
	}
	return r
}

// render draws the section field, lens ring, and status line
// Runs as a normal-priority frame callback after spatial state commits
func (d *demo) render(fc engine.FrameContext) {
	s := d.screen
	w, h := s.Size()
	s.Clear()

	pos := d.director.Camera.Position()
	geom := canvas.DefaultGeometry()
	sx := float64(w) / geom.ViewportW * pos.Scale
	sy := float64(h) / geom.ViewportH * pos.Scale

	for _, sec := range d.director.Sections.All() {
		out := d.director.SectionOutput(sec)

		x := int((sec.Center.X-pos.X)*sx) + w/2
		y := int((sec.Center.Y-pos.Y)*sy) + h/2
		if x < 0 || y < 0 || x >= w || y >= h {
			continue
		}

		style := sectionStyle(out.Blur, out.Opacity, sec.ID == d.director.Camera.Focus())
		label := "[ " + sec.Title + " ]"
		drawText(s, x-len(label)/2, y, label, style)
	}

	d.drawLens(w, h)
	d.drawStatus(w, h)

	s.Show()
}

func (d *demo) drawLens(w, h int) {
	if d.director.Lens.State() != lens.StateActive {
		return
	}

	menu := d.director.Lens.Menu()
	sel := d.director.Lens.SelectedIndex()

	for i, item := range d.director.Lens.Items() {
		if !item.Visible {
			continue
		}
		x, y := int(item.Pos.X), int(item.Pos.Y)
		if x < 0 || y < 0 || x >= w || y >= h {
			continue
		}
		style := tcell.StyleDefault.Foreground(tcell.ColorSilver)
		if i == sel {
			style = style.Foreground(tcell.ColorYellow).Bold(true)
		}
		drawText(d.screen, x-len(item.Title)/2, y, item.Title, style)
	}

	cx, cy := int(menu.Center.X), int(menu.Center.Y)
	if cx >= 0 && cy >= 0 && cx < w && cy < h {
		d.screen.SetContent(cx, cy, '◎', nil, tcell.StyleDefault.Foreground(tcell.ColorAqua))
	}
}

func (d *demo) drawStatus(w, h int) {
	pos := d.director.Camera.Position()
	line := fmt.Sprintf(" fps %.0f | tier %s | lens %s | cam (%.0f,%.0f x%.2f)",
		d.director.Scheduler.FPS(),
		d.lastTier,
		d.director.Lens.State(),
		pos.X, pos.Y, pos.Scale,
	)
	if d.lastNav != "" {
		line += " | " + d.lastNav
	}
	if d.director.Effect.Overridden() {
		line += " | blur off (Esc)"
	}
	drawText(d.screen, 0, h-1, pad(line, w), tcell.StyleDefault.Reverse(true))
}

func sectionStyle(blur, opacity float64, focused bool) tcell.Style {
	style := tcell.StyleDefault
	switch {
	case focused:
		style = style.Foreground(tcell.ColorWhite).Bold(true)
	case blur > 6 || opacity < 0.7:
		style = style.Foreground(tcell.ColorGray).Dim(true)
	case blur > 2 || opacity < 0.9:
		style = style.Foreground(tcell.ColorSilver)
	default:
		style = style.Foreground(tcell.ColorWhite)
	}
	return style
}

func drawText(s tcell.Screen, x, y int, text string, style tcell.Style) {
	for i, r := range text {
		s.SetContent(x+i, y, r, nil, style)
	}
}

func pad(s string, w int) string {
	for len(s) < w {
		s += " "
	}
	return s
}
