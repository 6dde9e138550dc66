package notify

import "sync/atomic"

// Subscription represents an active notification subscription.
type Subscription interface {
	// ID returns the unique subscription identifier.
	ID() string

	// Topic returns the subscribed topic pattern.
	Topic() Topic

	// IsActive returns true if the subscription can receive notifications.
	IsActive() bool

	// Cancel permanently cancels the subscription.
	// A cancelled subscription receives no further notifications even
	// before it is removed from the bus.
	Cancel()
}

// SubscriptionConfig contains configuration for a subscription.
type SubscriptionConfig struct {
	// Priority determines execution order (lower values execute first).
	Priority Priority

	// Filter is an optional predicate to filter notifications.
	// If set, notifications are only delivered if Filter returns true.
	Filter FilterFunc

	// Once indicates the subscription should auto-cancel after the first delivery.
	Once bool
}

// SubscriptionOption is a function that configures a subscription.
type SubscriptionOption func(*SubscriptionConfig)

// WithPriority sets the subscription priority.
func WithPriority(p Priority) SubscriptionOption {
	return func(c *SubscriptionConfig) {
		c.Priority = p
	}
}

// WithFilter sets a filter predicate.
func WithFilter(f FilterFunc) SubscriptionOption {
	return func(c *SubscriptionConfig) {
		c.Filter = f
	}
}

// WithOnce sets the subscription to auto-cancel after the first delivery.
func WithOnce() SubscriptionOption {
	return func(c *SubscriptionConfig) {
		c.Once = true
	}
}

// subscription is the internal implementation of Subscription.
type subscription struct {
	id        string
	topic     Topic
	handler   Handler
	config    SubscriptionConfig
	cancelled atomic.Bool
}

func newSubscription(id string, t Topic, h Handler, opts ...SubscriptionOption) *subscription {
	config := SubscriptionConfig{Priority: PriorityNormal}
	for _, opt := range opts {
		opt(&config)
	}

	return &subscription{
		id:      id,
		topic:   t,
		handler: h,
		config:  config,
	}
}

// ID returns the subscription ID.
func (s *subscription) ID() string {
	return s.id
}

// Topic returns the subscribed topic pattern.
func (s *subscription) Topic() Topic {
	return s.topic
}

// IsActive returns true if the subscription has not been cancelled.
func (s *subscription) IsActive() bool {
	return !s.cancelled.Load()
}

// Cancel permanently cancels the subscription.
func (s *subscription) Cancel() {
	s.cancelled.Store(true)
}

// shouldDeliver returns true if the notification should be delivered
// to this subscription.
func (s *subscription) shouldDeliver(n Notification) bool {
	if !s.IsActive() {
		return false
	}
	if s.config.Filter != nil && !s.config.Filter(n) {
		return false
	}
	return true
}
