package lens

import (
	"reflect"
	"testing"

	"github.com/kinodeck/lenscam/vmath"
)

func TestPlaceCenteredCursorUnchanged(t *testing.T) {
	menu := Place(vmath.Vec2{X: 400, Y: 300}, Size{W: 800, H: 600}, 120)

	if menu.Repositioned {
		t.Errorf("centered cursor repositioned: %+v", menu)
	}
	if menu.Center.X != 400 || menu.Center.Y != 300 {
		t.Errorf("center moved to (%v, %v)", menu.Center.X, menu.Center.Y)
	}
	if len(menu.ConstraintReason) != 0 {
		t.Errorf("constraint reasons on unconstrained placement: %v", menu.ConstraintReason)
	}
}

func TestPlaceCornerCursorShiftsInward(t *testing.T) {
	menu := Place(vmath.Vec2{X: 10, Y: 10}, Size{W: 800, H: 600}, 120)

	if !menu.Repositioned {
		t.Fatal("corner cursor not repositioned")
	}
	// Shifted so the full ring plus margin fits
	if menu.Center.X != 128 || menu.Center.Y != 128 {
		t.Errorf("center = (%v, %v), want (128, 128)", menu.Center.X, menu.Center.Y)
	}
	want := []Edge{EdgeLeft, EdgeTop}
	if !reflect.DeepEqual(menu.ConstraintReason, want) {
		t.Errorf("reasons = %v, want %v", menu.ConstraintReason, want)
	}
}

func TestPlaceEdges(t *testing.T) {
	vp := Size{W: 800, H: 600}
	tests := []struct {
		name   string
		cursor vmath.Vec2
		want   []Edge
	}{
		{"right", vmath.Vec2{X: 790, Y: 300}, []Edge{EdgeRight}},
		{"bottom", vmath.Vec2{X: 400, Y: 595}, []Edge{EdgeBottom}},
		{"right bottom", vmath.Vec2{X: 795, Y: 595}, []Edge{EdgeRight, EdgeBottom}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			menu := Place(tt.cursor, vp, 120)
			if !menu.Repositioned {
				t.Fatal("not repositioned")
			}
			if !reflect.DeepEqual(menu.ConstraintReason, tt.want) {
				t.Errorf("reasons = %v, want %v", menu.ConstraintReason, tt.want)
			}
		})
	}
}

func TestPlaceTinyViewportPinsCenter(t *testing.T) {
	menu := Place(vmath.Vec2{X: 5, Y: 5}, Size{W: 200, H: 150}, 120)

	if menu.Center.X != 100 || menu.Center.Y != 75 {
		t.Errorf("center = (%v, %v), want viewport midpoint", menu.Center.X, menu.Center.Y)
	}
	want := []Edge{EdgeLeft, EdgeRight, EdgeTop, EdgeBottom}
	if !reflect.DeepEqual(menu.ConstraintReason, want) {
		t.Errorf("reasons = %v, want %v", menu.ConstraintReason, want)
	}
}

func TestPlaceDeterministic(t *testing.T) {
	cursor := vmath.Vec2{X: 33, Y: 577}
	vp := Size{W: 800, H: 600}

	first := Place(cursor, vp, 120)
	for i := 0; i < 10; i++ {
		if got := Place(cursor, vp, 120); !reflect.DeepEqual(got, first) {
			t.Fatalf("placement varied: %+v vs %+v", got, first)
		}
	}
}
