package canvas

import (
	"fmt"

	"github.com/kinodeck/lenscam/vmath"
)

// SectionID identifies a content section
type SectionID string

// Section is one navigable content region on the canvas
// Content and copy live with the host; the core only needs geometry
// and lens ordering
type Section struct {
	ID       SectionID
	Center   vmath.Vec2
	Scale    float64 // preferred camera scale when focused
	Title    string
	Priority int // higher survives lens trimming longer
}

// Registry is the static sectionId -> section map
// Built once at startup, read-only afterwards; iteration order is
// insertion order so lens item angles are stable
type Registry struct {
	byID  map[SectionID]Section
	order []SectionID
}

// NewRegistry builds a registry from the host-supplied sections
func NewRegistry(sections []Section) (*Registry, error) {
	r := &Registry{
		byID:  make(map[SectionID]Section, len(sections)),
		order: make([]SectionID, 0, len(sections)),
	}
	for _, s := range sections {
		if s.ID == "" {
			return nil, fmt.Errorf("section with empty id at %v", s.Center)
		}
		if _, dup := r.byID[s.ID]; dup {
			return nil, fmt.Errorf("duplicate section id %q", s.ID)
		}
		r.byID[s.ID] = s
		r.order = append(r.order, s.ID)
	}
	return r, nil
}

// Get returns the section for id
func (r *Registry) Get(id SectionID) (Section, bool) {
	s, ok := r.byID[id]
	return s, ok
}

// Len returns the section count
func (r *Registry) Len() int {
	return len(r.order)
}

// All returns sections in insertion order
func (r *Registry) All() []Section {
	out := make([]Section, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out
}

// Nearest returns the section whose center is closest to pos
// Used by renderers to self-determine focus state
func (r *Registry) Nearest(pos vmath.Vec2) (Section, bool) {
	if len(r.order) == 0 {
		return Section{}, false
	}
	best := r.byID[r.order[0]]
	bestD := best.Center.Distance(pos)
	for _, id := range r.order[1:] {
		s := r.byID[id]
		if d := s.Center.Distance(pos); d < bestD {
			best, bestD = s, d
		}
	}
	return best, true
}
