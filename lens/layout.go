package lens

import (
	"math"

	"github.com/kinodeck/lenscam/canvas"
	"github.com/kinodeck/lenscam/parameter"
	"github.com/kinodeck/lenscam/vmath"
)

// ItemPosition is one derived lens item, never persisted
type ItemPosition struct {
	Section  canvas.SectionID
	Title    string
	Angle    float64
	Pos      vmath.Vec2
	Visible  bool
	Priority int
}

// LayoutItems distributes sections evenly around the menu ring,
// starting at the top and proceeding clockwise in registry order
//
// When the viewport cannot fit every item on-screen, or the angular
// spacing would fall below the minimum, items are trimmed by ascending
// priority (ties break toward later registry order) until the rest
// fit. The highest-priority item survives as long as anything fits.
// Returns the items (trimmed ones keep Visible=false) and the trimmed
// count
func LayoutItems(menu MenuPosition, sections []canvas.Section, viewport Size) ([]ItemPosition, int) {
	n := len(sections)
	items := make([]ItemPosition, n)
	for i, s := range sections {
		items[i] = ItemPosition{
			Section:  s.ID,
			Title:    s.Title,
			Priority: s.Priority,
		}
	}
	if n == 0 {
		return items, 0
	}

	visible := make([]int, n)
	for i := range visible {
		visible[i] = i
	}

	for len(visible) > 0 {
		if placeRing(items, visible, menu, viewport) {
			break
		}
		if len(visible) == 1 {
			// Nothing fits; keep the sole survivor visible anyway so
			// the lens is never empty
			break
		}
		visible = trimLowest(items, visible)
	}

	trimmed := 0
	for i := range items {
		if !items[i].Visible {
			trimmed++
		}
	}
	return items, trimmed
}

// placeRing assigns angles and coordinates to the visible set and
// reports whether every visible item fits the viewport and spacing
func placeRing(items []ItemPosition, visible []int, menu MenuPosition, viewport Size) bool {
	for i := range items {
		items[i].Visible = false
	}

	n := len(visible)
	spacing := 2 * math.Pi / float64(n)

	fits := spacing >= parameter.LensItemMinAngle || n == 1
	for k, idx := range visible {
		angle := vmath.NormalizeAngle(-math.Pi/2 + spacing*float64(k))
		pos := menu.Center.Add(vmath.FromAngle(angle).Scale(menu.Radius))
		items[idx].Angle = angle
		items[idx].Pos = pos
		items[idx].Visible = true

		if pos.X < 0 || pos.X > viewport.W || pos.Y < 0 || pos.Y > viewport.H {
			fits = false
		}
	}
	return fits
}

// trimLowest removes the lowest-priority entry from the visible set
func trimLowest(items []ItemPosition, visible []int) []int {
	lowest := 0
	for k := 1; k < len(visible); k++ {
		if items[visible[k]].Priority <= items[visible[lowest]].Priority {
			lowest = k
		}
	}
	items[visible[lowest]].Visible = false
	return append(visible[:lowest], visible[lowest+1:]...)
}
