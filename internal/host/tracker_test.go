package host

import (
	"context"
	"testing"

	"github.com/dshills/nimbus/internal/notify"
)

func TestTracker_Attach(t *testing.T) {
	bus := notify.NewBus()
	tracker := NewTracker()

	if err := tracker.Attach(bus); err != nil {
		t.Fatalf("Attach() failed: %v", err)
	}
	defer tracker.Close()

	if err := tracker.Attach(bus); err != ErrAlreadyAttached {
		t.Errorf("second Attach(): expected ErrAlreadyAttached, got %v", err)
	}
}

func TestTracker_BufferAndInsertState(t *testing.T) {
	bus := notify.NewBus()
	ctx := context.Background()
	tracker := NewTracker()
	if err := tracker.Attach(bus); err != nil {
		t.Fatalf("Attach() failed: %v", err)
	}
	defer tracker.Close()

	if tracker.Buffer() != 0 || tracker.InsertMode() {
		t.Fatal("expected zero state before notifications")
	}

	bus.Publish(ctx, TopicBufferEnter, BufferEvent{Buffer: 4})
	if tracker.Buffer() != 4 {
		t.Errorf("Buffer() = %d after buffer.enter, want 4", tracker.Buffer())
	}

	bus.Publish(ctx, TopicInsertEnter, BufferEvent{Buffer: 5})
	if !tracker.InsertMode() {
		t.Error("expected insert mode after insert.enter")
	}
	if tracker.Buffer() != 5 {
		t.Errorf("Buffer() = %d after insert.enter, want 5", tracker.Buffer())
	}

	bus.Publish(ctx, TopicInsertLeave, BufferEvent{Buffer: 5})
	if tracker.InsertMode() {
		t.Error("expected normal mode after insert.leave")
	}
}

func TestTracker_PopupState(t *testing.T) {
	bus := notify.NewBus()
	ctx := context.Background()
	tracker := NewTracker()
	if err := tracker.Attach(bus); err != nil {
		t.Fatalf("Attach() failed: %v", err)
	}
	defer tracker.Close()

	if tracker.PumVisible() {
		t.Fatal("expected no popup before notifications")
	}

	bus.Publish(ctx, TopicPopupChanged, PopupEvent{AlignTop: true, Height: 8, Width: 30})
	if !tracker.PumVisible() {
		t.Error("expected popup visible after popup.changed")
	}
	if !tracker.PumAlignTop() {
		t.Error("expected popup aligned top")
	}

	bus.Publish(ctx, TopicPopupChanged, PopupEvent{AlignTop: false})
	if tracker.PumAlignTop() {
		t.Error("expected popup aligned bottom after second popup.changed")
	}

	bus.Publish(ctx, TopicInsertLeave, BufferEvent{Buffer: 1})
	if tracker.PumVisible() {
		t.Error("expected popup hidden after insert.leave")
	}
}

func TestTracker_IgnoresForeignPayloads(t *testing.T) {
	bus := notify.NewBus()
	ctx := context.Background()
	tracker := NewTracker()
	if err := tracker.Attach(bus); err != nil {
		t.Fatalf("Attach() failed: %v", err)
	}
	defer tracker.Close()

	bus.Publish(ctx, TopicBufferEnter, "not a buffer event")
	if tracker.Buffer() != 0 {
		t.Errorf("Buffer() = %d after malformed payload, want 0", tracker.Buffer())
	}
}

func TestTracker_CloseUnsubscribes(t *testing.T) {
	bus := notify.NewBus()
	ctx := context.Background()
	tracker := NewTracker()
	if err := tracker.Attach(bus); err != nil {
		t.Fatalf("Attach() failed: %v", err)
	}

	tracker.Close()
	tracker.Close() // idempotent

	bus.Publish(ctx, TopicBufferEnter, BufferEvent{Buffer: 9})
	if tracker.Buffer() != 0 {
		t.Errorf("Buffer() = %d after Close, want 0", tracker.Buffer())
	}
	if n := bus.Stats().ActiveSubscribers; n != 0 {
		t.Errorf("expected 0 active subscribers after Close, got %d", n)
	}
}
