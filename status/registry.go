package status

import "sync/atomic"

// Registry is the central metrics facade
// Subsystems cache pointers during init; frame loops write directly to
// atomics without lookups
//
// Well-known keys:
//
//	engine.frames        Int    total frames executed
//	engine.dropped       Int    frames past budget
//	engine.deferred      Int    callbacks pushed to the next frame
//	engine.faults        Int    recovered callback panics
//	engine.last_fault    String most recent fault message
//	engine.fps           Float  measured frames per second
//	cursor.samples       Int    committed pointer samples
//	cursor.speed         Float  smoothed pointer speed
//	lens.activations     Int    Idle -> Active cycles
//	lens.trimmed         Int    items dropped by edge trimming
//	camera.transitions   Int    transitions started
//	camera.superseded    Int    transitions replaced mid-flight
//	quality.tier         Int    current tier ordinal
//	quality.downgrades   Int    downgrade events emitted
//	quality.upgrades     Int    upgrade events emitted
type Registry struct {
	Bools   *MetricMap[atomic.Bool]
	Ints    *MetricMap[atomic.Int64]
	Floats  *MetricMap[AtomicFloat]
	Strings *MetricMap[AtomicString]
}

// NewRegistry creates an initialized Registry
func NewRegistry() *Registry {
	return &Registry{
		Bools:   NewMetricMap[atomic.Bool](),
		Ints:    NewMetricMap[atomic.Int64](),
		Floats:  NewMetricMap[AtomicFloat](),
		Strings: NewMetricMap[AtomicString](),
	}
}

// TotalCount returns total metrics across all types
func (r *Registry) TotalCount() int {
	return r.Bools.Count() + r.Ints.Count() + r.Floats.Count() + r.Strings.Count()
}
