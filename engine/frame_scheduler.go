package engine

import (
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/kinodeck/lenscam/parameter"
	"github.com/kinodeck/lenscam/status"
)

// Priority orders callbacks within a frame; higher runs first
type Priority int

const (
	// PriorityLow is for metrics aggregation and idle polling
	PriorityLow Priority = iota

	// PriorityNormal is for render-feeding consumers
	PriorityNormal

	// PriorityHigh is for cursor sampling and in-flight interpolation
	PriorityHigh
)

// Token identifies a registered callback for unregistration
type Token uint64

// FrameContext is passed to every callback each frame
type FrameContext struct {
	Now   time.Time
	Delta time.Duration
	Frame uint64
}

// FrameCallback is one unit of per-frame work
// Must not block; work exceeding the budget defers lower-priority
// callbacks to the next frame
type FrameCallback func(FrameContext)

type callbackEntry struct {
	token    Token
	priority Priority
	seq      uint64 // registration order within a priority
	fn       FrameCallback
	deferred bool // skipped last frame; runs this frame regardless of budget
}

// FrameScheduler is the central animation-frame callback registry
//
// Each frame, callbacks run in descending priority order until the
// frame budget is exhausted; remaining callbacks defer to the next
// frame (and are guaranteed to run there). A panicking callback is
// recovered, recorded in the status registry, and unregistered so one
// faulty consumer cannot stall the loop
type FrameScheduler struct {
	clock    Clock
	budget   time.Duration
	interval time.Duration

	mu        sync.Mutex
	entries   []*callbackEntry
	nextToken Token
	nextSeq   uint64

	frame     atomic.Uint64
	lastStep  time.Time
	hasLast   bool
	fpsWindow []time.Duration
	fpsIdx    int

	paused atomic.Bool

	stopChan chan struct{}
	stopOnce sync.Once
	running  atomic.Bool
	wg       sync.WaitGroup

	// Cached metric pointers
	statFrames    *atomic.Int64
	statDropped   *atomic.Int64
	statDeferred  *atomic.Int64
	statFaults    *atomic.Int64
	statFPS       *status.AtomicFloat
	statLastFault *status.AtomicString
}

// NewFrameScheduler creates a scheduler bound to clock and registry
func NewFrameScheduler(clock Clock, reg *status.Registry) *FrameScheduler {
	return &FrameScheduler{
		clock:         clock,
		budget:        parameter.FrameBudget,
		interval:      parameter.FrameInterval,
		fpsWindow:     make([]time.Duration, 0, 60),
		stopChan:      make(chan struct{}),
		statFrames:    reg.Ints.Get("engine.frames"),
		statDropped:   reg.Ints.Get("engine.dropped"),
		statDeferred:  reg.Ints.Get("engine.deferred"),
		statFaults:    reg.Ints.Get("engine.faults"),
		statFPS:       reg.Floats.Get("engine.fps"),
		statLastFault: reg.Strings.Get("engine.last_fault"),
	}
}

// Register adds a callback at the given priority and returns its token
// Safe to call from any goroutine, including from inside a callback
func (s *FrameScheduler) Register(fn FrameCallback, priority Priority) Token {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextToken++
	s.nextSeq++
	entry := &callbackEntry{
		token:    s.nextToken,
		priority: priority,
		seq:      s.nextSeq,
		fn:       fn,
	}
	s.entries = append(s.entries, entry)
	sort.SliceStable(s.entries, func(i, j int) bool {
		if s.entries[i].priority != s.entries[j].priority {
			return s.entries[i].priority > s.entries[j].priority
		}
		return s.entries[i].seq < s.entries[j].seq
	})
	return entry.token
}

// Unregister removes the callback for token; unknown tokens are ignored
func (s *FrameScheduler) Unregister(token Token) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeLocked(token)
}

func (s *FrameScheduler) removeLocked(token Token) {
	for i, e := range s.entries {
		if e.token == token {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return
		}
	}
}

// Step executes one frame at the given time
// Exported so deterministic hosts and tests can drive frames without
// the background loop; the loop goroutine is the only other caller
func (s *FrameScheduler) Step(now time.Time) {
	frame := s.frame.Add(1)

	var delta time.Duration
	if s.hasLast {
		delta = now.Sub(s.lastStep)
	} else {
		delta = s.interval
	}
	s.lastStep = now
	s.hasLast = true
	s.recordFrameTime(delta)

	ctx := FrameContext{Now: now, Delta: delta, Frame: frame}

	// Snapshot under lock so callbacks may register/unregister freely
	s.mu.Lock()
	snapshot := make([]*callbackEntry, len(s.entries))
	copy(snapshot, s.entries)
	s.mu.Unlock()

	frameStart := s.clock.Now()
	budgetSpent := false

	for _, entry := range snapshot {
		if !budgetSpent && s.clock.Now().Sub(frameStart) >= s.budget {
			budgetSpent = true
		}

		// Entries deferred last frame run regardless of budget, which
		// bounds starvation to a single frame
		if budgetSpent && !entry.deferred {
			entry.deferred = true
			s.statDeferred.Add(1)
			continue
		}
		entry.deferred = false
		s.invoke(entry, ctx)
	}

	if s.clock.Now().Sub(frameStart) > s.budget {
		s.statDropped.Add(1)
	}
	s.statFrames.Store(int64(frame))
	s.statFPS.Set(s.measureFPS())
}

// invoke runs one callback with panic recovery
// A throwing callback is logged to the status registry and removed so
// the remaining callbacks in this frame still run
func (s *FrameScheduler) invoke(entry *callbackEntry, ctx FrameContext) {
	defer func() {
		if r := recover(); r != nil {
			s.statFaults.Add(1)
			s.statLastFault.Store(fmt.Sprintf("frame %d: %v", ctx.Frame, r))
			s.mu.Lock()
			s.removeLocked(entry.token)
			s.mu.Unlock()
		}
	}()
	entry.fn(ctx)
}

func (s *FrameScheduler) recordFrameTime(d time.Duration) {
	if d <= 0 {
		return
	}
	if len(s.fpsWindow) < cap(s.fpsWindow) {
		s.fpsWindow = append(s.fpsWindow, d)
		return
	}
	s.fpsWindow[s.fpsIdx] = d
	s.fpsIdx = (s.fpsIdx + 1) % len(s.fpsWindow)
}

func (s *FrameScheduler) measureFPS() float64 {
	if len(s.fpsWindow) == 0 {
		return 0
	}
	var total time.Duration
	for _, d := range s.fpsWindow {
		total += d
	}
	avg := total / time.Duration(len(s.fpsWindow))
	if avg <= 0 {
		return 0
	}
	return float64(time.Second) / float64(avg)
}

// FPS returns the measured frame rate over the rolling window
func (s *FrameScheduler) FPS() float64 {
	return s.statFPS.Get()
}

// DroppedFrames returns the count of frames that exceeded the budget
func (s *FrameScheduler) DroppedFrames() int64 {
	return s.statDropped.Load()
}

// Frame returns the current frame number
func (s *FrameScheduler) Frame() uint64 {
	return s.frame.Load()
}

// CallbackCount returns the number of registered callbacks
func (s *FrameScheduler) CallbackCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Pause suspends frame stepping; the loop keeps polling at a relaxed
// interval to save CPU
func (s *FrameScheduler) Pause() {
	s.paused.Store(true)
}

// Resume restarts frame stepping
func (s *FrameScheduler) Resume() {
	s.paused.Store(false)
	s.hasLast = false // avoid a giant delta spanning the pause
}

// Start begins the background frame loop
func (s *FrameScheduler) Start() {
	if s.running.CompareAndSwap(false, true) {
		s.wg.Add(1)
		Go(s.loop)
	}
}

// Stop halts the frame loop
func (s *FrameScheduler) Stop() {
	s.stopOnce.Do(func() {
		if s.running.CompareAndSwap(true, false) {
			close(s.stopChan)
			s.wg.Wait()
		}
	})
}

// loop drives Step on a drift-corrected fixed interval
func (s *FrameScheduler) loop() {
	defer s.wg.Done()

	nextDeadline := s.clock.Now().Add(s.interval)

	timer := time.NewTimer(0)
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
	defer timer.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		default:
		}

		var sleep time.Duration

		if s.paused.Load() {
			sleep = parameter.PausedFrameInterval
		} else {
			now := s.clock.Now()
			if !now.Before(nextDeadline) {
				s.Step(now)

				nextDeadline = nextDeadline.Add(s.interval)
				if now.Sub(nextDeadline) > parameter.MaxFrameDebt {
					nextDeadline = now.Add(s.interval)
				}
			}
			sleep = nextDeadline.Sub(s.clock.Now())
			if sleep < 0 {
				sleep = 0
			}
		}

		if sleep > 0 {
			timer.Reset(sleep)
			select {
			case <-timer.C:
			case <-s.stopChan:
				return
			}
		}
	}
}
