package float

import (
	"sync"
	"testing"
	"time"

	"github.com/dshills/nimbus/internal/host"
)

// collectGate records delivered events under a lock.
type collectGate struct {
	mu     sync.Mutex
	events []host.CursorEvent
}

func (c *collectGate) deliver(ev host.CursorEvent) {
	c.mu.Lock()
	c.events = append(c.events, ev)
	c.mu.Unlock()
}

func (c *collectGate) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.events)
}

func (c *collectGate) lastEvent() (host.CursorEvent, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.events) == 0 {
		return host.CursorEvent{}, false
	}
	return c.events[len(c.events)-1], true
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", msg)
}

func TestMoveGate_DeliversAfterQuietPeriod(t *testing.T) {
	var c collectGate
	gate := newMoveGate(10*time.Millisecond, c.deliver)

	ev := host.CursorEvent{Buffer: 1, Cursor: host.Position{Line: 3, Col: 0}}
	gate.Observe(ev)

	if !gate.Pending() {
		t.Error("expected gate to be pending right after Observe")
	}
	if c.count() != 0 {
		t.Error("expected no delivery before the settle window elapses")
	}

	waitFor(t, time.Second, func() bool { return c.count() == 1 }, "debounced delivery")

	got, _ := c.lastEvent()
	if got != ev {
		t.Errorf("delivered event = %+v, want %+v", got, ev)
	}
	if gate.Pending() {
		t.Error("expected gate to be idle after delivery")
	}
}

func TestMoveGate_BurstCollapsesToLastEvent(t *testing.T) {
	var c collectGate
	gate := newMoveGate(20*time.Millisecond, c.deliver)

	for i := 1; i <= 5; i++ {
		gate.Observe(host.CursorEvent{Buffer: 1, Cursor: host.Position{Line: i, Col: 0}})
	}

	waitFor(t, time.Second, func() bool { return c.count() >= 1 }, "debounced delivery")
	time.Sleep(30 * time.Millisecond)

	if c.count() != 1 {
		t.Fatalf("expected burst to collapse to 1 delivery, got %d", c.count())
	}
	got, _ := c.lastEvent()
	if got.Cursor.Line != 5 {
		t.Errorf("delivered line = %d, want the last observed line 5", got.Cursor.Line)
	}
}

func TestMoveGate_CancelDropsPending(t *testing.T) {
	var c collectGate
	gate := newMoveGate(10*time.Millisecond, c.deliver)

	gate.Observe(host.CursorEvent{Buffer: 1})
	gate.Cancel()

	if gate.Pending() {
		t.Error("expected gate to be idle after Cancel")
	}

	time.Sleep(30 * time.Millisecond)
	if c.count() != 0 {
		t.Errorf("expected no delivery after Cancel, got %d", c.count())
	}
}

func TestMoveGate_ObserveAfterCancel(t *testing.T) {
	var c collectGate
	gate := newMoveGate(10*time.Millisecond, c.deliver)

	gate.Observe(host.CursorEvent{Buffer: 1, Cursor: host.Position{Line: 1, Col: 0}})
	gate.Cancel()
	gate.Observe(host.CursorEvent{Buffer: 2, Cursor: host.Position{Line: 2, Col: 0}})

	waitFor(t, time.Second, func() bool { return c.count() == 1 }, "delivery after re-observe")

	got, _ := c.lastEvent()
	if got.Buffer != 2 {
		t.Errorf("delivered buffer = %d, want 2", got.Buffer)
	}
}

func TestMoveGate_ConcurrentObserve(t *testing.T) {
	var c collectGate
	gate := newMoveGate(5*time.Millisecond, c.deliver)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				gate.Observe(host.CursorEvent{Buffer: n, Cursor: host.Position{Line: j + 1, Col: 0}})
			}
		}(i + 1)
	}
	wg.Wait()

	waitFor(t, time.Second, func() bool { return c.count() >= 1 }, "delivery after concurrent burst")
}
