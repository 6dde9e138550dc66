package host

import "github.com/dshills/nimbus/internal/notify"

// Notification topics published by the host bridge.
const (
	// TopicBufferEnter fires when a buffer becomes the current buffer.
	// Payload: BufferEvent.
	TopicBufferEnter = notify.Topic("buffer.enter")

	// TopicInsertEnter fires when the host enters insert mode.
	// Payload: BufferEvent.
	TopicInsertEnter = notify.Topic("insert.enter")

	// TopicInsertLeave fires when the host leaves insert mode.
	// Payload: BufferEvent.
	TopicInsertLeave = notify.Topic("insert.leave")

	// TopicPopupChanged fires when the completion popup menu changes.
	// Payload: PopupEvent.
	TopicPopupChanged = notify.Topic("popup.changed")

	// TopicCursorMoved fires on cursor movement in normal mode.
	// Payload: CursorEvent.
	TopicCursorMoved = notify.Topic("cursor.moved")

	// TopicCursorMovedInsert fires on cursor movement in insert mode.
	// Payload: CursorEvent.
	TopicCursorMovedInsert = notify.Topic("cursor.moved.insert")
)

// BufferEvent identifies the buffer a notification happened in.
type BufferEvent struct {
	Buffer int
}

// CursorEvent carries a cursor movement.
type CursorEvent struct {
	Buffer int
	Cursor Position
}

// PopupEvent carries a completion popup menu change.
type PopupEvent struct {
	// AlignTop is true when the popup menu is rendered above the cursor.
	AlignTop bool

	// Height and Width are the popup dimensions in cells.
	Height int
	Width  int
}
