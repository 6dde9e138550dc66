package notify

import (
	"context"
	"time"
)

// Priority determines handler execution order.
// Lower values execute first.
type Priority int

const (
	// PriorityCritical is for state trackers that other handlers read.
	PriorityCritical Priority = 0

	// PriorityHigh is for visibility policy handlers.
	PriorityHigh Priority = 100

	// PriorityNormal is the default priority.
	PriorityNormal Priority = 200

	// PriorityLow is for logging taps that run last.
	PriorityLow Priority = 300
)

// String returns a human-readable priority name.
func (p Priority) String() string {
	switch {
	case p <= PriorityCritical:
		return "critical"
	case p <= PriorityHigh:
		return "high"
	case p <= PriorityNormal:
		return "normal"
	default:
		return "low"
	}
}

// Notification is what handlers receive: the concrete topic the payload was
// published under plus the payload itself. Wildcard subscribers use Topic to
// distinguish which notification arrived.
type Notification struct {
	// Topic is the concrete topic the notification was published under.
	Topic Topic

	// Payload contains the notification-specific data.
	Payload any

	// Time is when the notification was published.
	Time time.Time
}

// Handler is the interface for notification handlers.
type Handler interface {
	// Handle processes a notification.
	// The payload is type-erased; handlers should type-assert.
	Handle(ctx context.Context, n Notification) error
}

// HandlerFunc is a function adapter for Handler.
type HandlerFunc func(ctx context.Context, n Notification) error

// Handle implements the Handler interface.
func (f HandlerFunc) Handle(ctx context.Context, n Notification) error {
	return f(ctx, n)
}

// FilterFunc is a predicate for filtering notifications.
// Return true to allow the notification, false to filter it out.
type FilterFunc func(n Notification) bool

// PanicHandler is called when a handler panics.
type PanicHandler func(n Notification, recovered any, stack []byte)

// Stats contains bus statistics.
type Stats struct {
	// Published is the total number of notifications published.
	Published uint64

	// Delivered is the total number of successful handler deliveries.
	Delivered uint64

	// HandlerErrors is the number of handlers that returned errors.
	HandlerErrors uint64

	// HandlerPanics is the number of handlers that panicked.
	HandlerPanics uint64

	// ActiveSubscribers is the current number of active subscriptions.
	ActiveSubscribers int
}
