package backend

import (
	"context"
	"fmt"

	"github.com/dshills/nimbus/internal/host"
	"github.com/dshills/nimbus/internal/notify"
)

// BindEvents installs the host autocmds and republishes their
// notifications on the bus. go-client runs each notification handler on
// its own goroutine, so bus delivery happens off the RPC read loop.
func (n *Nvim) BindEvents(bus notify.Bus) error {
	publish := func(topic notify.Topic, payload any) {
		_ = bus.Publish(context.Background(), topic, payload)
	}

	handlers := []struct {
		method string
		fn     any
	}{
		{"nimbus_buf_enter", func(buf int) {
			publish(host.TopicBufferEnter, host.BufferEvent{Buffer: buf})
		}},
		{"nimbus_insert_enter", func(buf int) {
			publish(host.TopicInsertEnter, host.BufferEvent{Buffer: buf})
		}},
		{"nimbus_insert_leave", func(buf int) {
			publish(host.TopicInsertLeave, host.BufferEvent{Buffer: buf})
		}},
		{"nimbus_popup_changed", func(alignTop bool, height, width int) {
			publish(host.TopicPopupChanged, host.PopupEvent{AlignTop: alignTop, Height: height, Width: width})
		}},
		{"nimbus_cursor_moved", func(buf, line, col int) {
			publish(host.TopicCursorMoved, host.CursorEvent{
				Buffer: buf,
				Cursor: host.Position{Line: line, Col: col},
			})
		}},
		{"nimbus_cursor_moved_i", func(buf, line, col int) {
			publish(host.TopicCursorMovedInsert, host.CursorEvent{
				Buffer: buf,
				Cursor: host.Position{Line: line, Col: col},
			})
		}},
	}
	for _, h := range handlers {
		if err := n.client.RegisterHandler(h.method, h.fn); err != nil {
			return fmt.Errorf("register %s: %w", h.method, err)
		}
	}

	if err := n.exec("return __nimbus.setup(...)", nil, n.client.ChannelID()); err != nil {
		return fmt.Errorf("install autocmds: %w", err)
	}
	return nil
}
