package host

import (
	"context"
	"sync"

	"github.com/dshills/nimbus/internal/notify"
)

// Tracker mirrors the slice of host state the float policy reads: the
// current buffer, whether the host is in insert mode, and where the
// completion popup menu sits relative to the cursor.
//
// It subscribes at critical priority so its view is updated before any
// policy handler for the same notification runs.
type Tracker struct {
	mu          sync.RWMutex
	buffer      int
	insert      bool
	pumAlignTop bool
	pumVisible  bool

	bus  notify.Bus
	subs []notify.Subscription
}

// NewTracker creates a detached tracker.
func NewTracker() *Tracker {
	return &Tracker{}
}

// Attach subscribes the tracker to the host topics it mirrors.
// Attaching an already attached tracker is an error.
func (t *Tracker) Attach(bus notify.Bus) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.bus != nil {
		return ErrAlreadyAttached
	}

	type binding struct {
		topic   notify.Topic
		handler notify.HandlerFunc
	}
	bindings := []binding{
		{TopicBufferEnter, t.onBufferEnter},
		{TopicInsertEnter, t.onInsertEnter},
		{TopicInsertLeave, t.onInsertLeave},
		{TopicPopupChanged, t.onPopupChanged},
	}

	subs := make([]notify.Subscription, 0, len(bindings))
	for _, b := range bindings {
		sub, err := bus.SubscribeFunc(b.topic, b.handler, notify.WithPriority(notify.PriorityCritical))
		if err != nil {
			for _, s := range subs {
				bus.Unsubscribe(s)
			}
			return err
		}
		subs = append(subs, sub)
	}

	t.bus = bus
	t.subs = subs
	return nil
}

// Close unsubscribes the tracker. It is safe to call on a detached
// tracker and safe to call more than once.
func (t *Tracker) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, sub := range t.subs {
		t.bus.Unsubscribe(sub)
	}
	t.subs = nil
	t.bus = nil
}

// Buffer returns the current buffer, or 0 before the first notification.
func (t *Tracker) Buffer() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.buffer
}

// InsertMode reports whether the host is in insert mode.
func (t *Tracker) InsertMode() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.insert
}

// PumAlignTop reports whether the completion popup menu was last seen
// above the cursor.
func (t *Tracker) PumAlignTop() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.pumAlignTop
}

// PumVisible reports whether a completion popup menu is showing.
func (t *Tracker) PumVisible() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.pumVisible
}

func (t *Tracker) onBufferEnter(_ context.Context, n notify.Notification) error {
	ev, ok := n.Payload.(BufferEvent)
	if !ok {
		return nil
	}
	t.mu.Lock()
	t.buffer = ev.Buffer
	t.mu.Unlock()
	return nil
}

func (t *Tracker) onInsertEnter(_ context.Context, n notify.Notification) error {
	ev, ok := n.Payload.(BufferEvent)
	if !ok {
		return nil
	}
	t.mu.Lock()
	t.insert = true
	t.buffer = ev.Buffer
	t.mu.Unlock()
	return nil
}

func (t *Tracker) onInsertLeave(_ context.Context, n notify.Notification) error {
	ev, ok := n.Payload.(BufferEvent)
	if !ok {
		return nil
	}
	t.mu.Lock()
	t.insert = false
	t.pumVisible = false
	t.buffer = ev.Buffer
	t.mu.Unlock()
	return nil
}

func (t *Tracker) onPopupChanged(_ context.Context, n notify.Notification) error {
	ev, ok := n.Payload.(PopupEvent)
	if !ok {
		return nil
	}
	t.mu.Lock()
	t.pumAlignTop = ev.AlignTop
	t.pumVisible = true
	t.mu.Unlock()
	return nil
}
