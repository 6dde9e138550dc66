package float

import (
	"sync"
	"time"

	"github.com/dshills/nimbus/internal/host"
)

// moveGate collapses bursts of cursor movement notifications into a
// single policy check after a quiet period. The last movement observed
// before the window elapses is the one delivered.
//
// Thread-safety: all methods are safe for concurrent use. The callback
// runs on a timer goroutine without the gate lock held.
type moveGate struct {
	mu       sync.Mutex
	delay    time.Duration
	timer    *time.Timer
	pending  bool
	seq      uint64 // sequence number to detect stale timer callbacks
	last     host.CursorEvent
	callback func(ev host.CursorEvent)
}

func newMoveGate(delay time.Duration, callback func(ev host.CursorEvent)) *moveGate {
	return &moveGate{
		delay:    delay,
		callback: callback,
	}
}

// Observe records a cursor movement and (re)starts the settle window.
// If more movements arrive within the window only the final one is
// delivered.
func (g *moveGate) Observe(ev host.CursorEvent) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.last = ev
	g.pending = true
	g.seq++
	currentSeq := g.seq

	if g.timer != nil {
		g.timer.Stop()
	}

	g.timer = time.AfterFunc(g.delay, func() {
		g.mu.Lock()
		if g.pending && g.seq == currentSeq && g.callback != nil {
			g.pending = false
			delivered := g.last
			g.mu.Unlock()
			g.callback(delivered)
		} else {
			g.mu.Unlock()
		}
	})
}

// Cancel drops any pending movement without delivering it.
func (g *moveGate) Cancel() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.timer != nil {
		g.timer.Stop()
		g.timer = nil
	}
	// Invalidate any timer callback already running.
	g.seq++
	g.pending = false
}

// Pending reports whether a movement is waiting out the settle window.
func (g *moveGate) Pending() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.pending
}
