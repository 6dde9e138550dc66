package float

import (
	"context"

	"github.com/dshills/nimbus/internal/host"
	"github.com/dshills/nimbus/internal/notify"
)

// onContextSwitch handles buffer.enter, insert.enter and insert.leave.
// A context switch into the float's own content buffer is ignored;
// every other switch closes the float.
func (m *Manager) onContextSwitch(_ context.Context, n notify.Notification) error {
	ev, ok := n.Payload.(host.BufferEvent)
	if !ok {
		return nil
	}

	m.mu.Lock()
	own := ev.Buffer == m.h.buf
	m.mu.Unlock()
	if own {
		return nil
	}

	m.Close()
	return nil
}

// popupHandler closes the float when the completion popup menu sits on
// the float's side of the cursor. Popup and float on opposite sides can
// coexist; on the same side the popup wins.
func (m *Manager) popupHandler(alignTop bool) notify.HandlerFunc {
	return func(_ context.Context, n notify.Notification) error {
		ev, ok := n.Payload.(host.PopupEvent)
		if !ok {
			return nil
		}
		if ev.AlignTop == alignTop {
			m.Close()
		}
		return nil
	}
}

// observeHandler feeds cursor movement into the gate; the policy check
// runs only after the burst settles.
func observeHandler(gate *moveGate) notify.HandlerFunc {
	return func(_ context.Context, n notify.Notification) error {
		if ev, ok := n.Payload.(host.CursorEvent); ok {
			gate.Observe(ev)
		}
		return nil
	}
}

// onCursorSettled applies the cursor movement rule once a burst
// settles. Movement inside the float itself is ignored, as is movement
// that kept the anchor position. Anything else closes the float unless
// all of the following hold: auto hide is off, the movement stayed in
// the anchor buffer, and the host is still in insert mode.
func (m *Manager) onCursorSettled(gate *moveGate, ev host.CursorEvent, autoHide bool) {
	m.mu.Lock()
	if m.gate != gate || !m.h.live() {
		m.mu.Unlock()
		return
	}
	buf := m.h.buf
	target := m.h.target
	var anchor *host.Position
	if m.h.cursor != nil {
		c := *m.h.cursor
		anchor = &c
	}
	m.mu.Unlock()

	if ev.Buffer == buf {
		return
	}
	if anchor != nil && ev.Buffer == target && ev.Cursor == *anchor {
		return
	}
	if autoHide || ev.Buffer != target || !m.insertMode() {
		m.Close()
	}
}
