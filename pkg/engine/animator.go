package engine

import (
	"sync"
	"time"
)

// Framer schedules a callback for the next frame. The engine never
// decides frame timing itself; hosts plug in whatever clock they have.
type Framer interface {
	RequestFrame(fn func())
}

// TickFramer approximates animation frames with a fixed interval timer.
// It is the default for server-driven sessions, where there is no real
// display refresh to sync with.
type TickFramer struct {
	// Interval between frames. Zero means the 60Hz default.
	Interval time.Duration
}

// RequestFrame implements Framer.
func (f *TickFramer) RequestFrame(fn func()) {
	interval := f.Interval
	if interval == 0 {
		interval = time.Second / 60
	}
	time.AfterFunc(interval, fn)
}

// ManualFramer queues frame callbacks for explicit stepping. Tests use
// it to drive the commit loop deterministically.
type ManualFramer struct {
	mu      sync.Mutex
	pending []func()
}

// RequestFrame implements Framer.
func (f *ManualFramer) RequestFrame(fn func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pending = append(f.pending, fn)
}

// Pending returns the number of scheduled, unstepped frames.
func (f *ManualFramer) Pending() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.pending)
}

// Step fires the oldest scheduled frame. Returns false when none are
// scheduled.
func (f *ManualFramer) Step() bool {
	f.mu.Lock()
	if len(f.pending) == 0 {
		f.mu.Unlock()
		return false
	}
	fn := f.pending[0]
	f.pending = f.pending[1:]
	f.mu.Unlock()
	fn()
	return true
}

// animState is the coalescer's state.
type animState uint8

const (
	stateIdle    animState = iota // No frame scheduled
	statePending                  // Frame scheduled, work waiting
	stateExtra                    // Drawn this frame; one spare frame in flight
)

// animator coalesces bursts of update requests into at most one draw per
// frame. After drawing it keeps exactly one spare frame scheduled: a
// request arriving while the draw is still executing (listeners are
// re-entrant with respect to the commit loop) flips the spare frame from
// a no-op into the next draw instead of scheduling a second one.
type animator struct {
	mu     sync.Mutex
	state  animState
	framer Framer
	draw   func()
}

func newAnimator(framer Framer, draw func()) *animator {
	return &animator{framer: framer, draw: draw}
}

// Request notes that new work exists. Safe to call from inside draw.
// Returns true when the request rode an already scheduled frame instead
// of scheduling a new one.
func (a *animator) Request() bool {
	a.mu.Lock()
	switch a.state {
	case statePending:
		// Already scheduled; the coming frame will pick this up.
		a.mu.Unlock()
		return true
	case stateExtra:
		// The spare frame is in flight; promote it to a real draw.
		a.state = statePending
		a.mu.Unlock()
		return true
	default:
		a.state = statePending
		a.mu.Unlock()
		a.framer.RequestFrame(a.tick)
		return false
	}
}

func (a *animator) tick() {
	a.mu.Lock()
	switch a.state {
	case statePending:
		a.state = stateExtra
		a.mu.Unlock()
		a.framer.RequestFrame(a.tick)
		a.draw()
	case stateExtra:
		// Spare frame fired with nothing new; wind down.
		a.state = stateIdle
		a.mu.Unlock()
	default:
		a.mu.Unlock()
	}
}
