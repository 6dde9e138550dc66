package notify

import (
	"context"
	"runtime/debug"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Bus is the notification bus interface.
type Bus interface {
	// Publish delivers a payload to all subscriptions matching the topic.
	// Handlers run synchronously on the caller's goroutine in priority order.
	Publish(ctx context.Context, t Topic, payload any) error

	// Subscribe creates a new subscription for the given topic pattern.
	Subscribe(pattern Topic, handler Handler, opts ...SubscriptionOption) (Subscription, error)

	// SubscribeFunc is a convenience method for subscribing with a function handler.
	SubscribeFunc(pattern Topic, fn HandlerFunc, opts ...SubscriptionOption) (Subscription, error)

	// Unsubscribe cancels and removes a subscription.
	Unsubscribe(sub Subscription) error

	// Stats returns current bus statistics.
	Stats() Stats

	// Clear cancels and removes all subscriptions.
	Clear()
}

// bus is the default Bus implementation.
type bus struct {
	registry *registry

	panicHandler PanicHandler

	published     atomic.Uint64
	delivered     atomic.Uint64
	handlerErrors atomic.Uint64
	handlerPanics atomic.Uint64
}

// BusOption configures a Bus.
type BusOption func(*bus)

// WithPanicHandler sets the handler invoked when a subscription handler panics.
func WithPanicHandler(h PanicHandler) BusOption {
	return func(b *bus) {
		b.panicHandler = h
	}
}

// NewBus creates a new notification bus.
func NewBus(opts ...BusOption) Bus {
	b := &bus{
		registry: newRegistry(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Publish delivers a payload to all matching subscriptions.
// The registry snapshot is taken before any handler runs, so handlers may
// subscribe and unsubscribe without deadlocking the bus.
func (b *bus) Publish(ctx context.Context, t Topic, payload any) error {
	if !t.IsValid() {
		return ErrInvalidTopic
	}

	n := Notification{
		Topic:   t,
		Payload: payload,
		Time:    time.Now(),
	}

	subs := b.registry.match(t)
	b.published.Add(1)

	for _, sub := range subs {
		if !sub.shouldDeliver(n) {
			continue
		}

		err, panicked := b.execute(ctx, n, sub)
		switch {
		case panicked:
			b.handlerPanics.Add(1)
		case err != nil:
			b.handlerErrors.Add(1)
		default:
			b.delivered.Add(1)
		}

		if sub.config.Once && !panicked && err == nil {
			sub.Cancel()
			b.registry.remove(sub.ID())
		}
	}

	return nil
}

// execute runs a single handler with panic recovery.
func (b *bus) execute(ctx context.Context, n Notification, sub *subscription) (err error, panicked bool) {
	defer func() {
		if r := recover(); r != nil {
			panicked = true
			stack := debug.Stack()
			if b.panicHandler != nil {
				func() {
					defer func() {
						// A panic handler that itself panics is dropped.
						_ = recover()
					}()
					b.panicHandler(n, r, stack)
				}()
			}
		}
	}()

	err = sub.handler.Handle(ctx, n)
	return err, false
}

// Subscribe creates a new subscription for the given topic pattern.
// This method is safe to call concurrently.
func (b *bus) Subscribe(pattern Topic, handler Handler, opts ...SubscriptionOption) (Subscription, error) {
	if handler == nil {
		return nil, ErrNilHandler
	}
	if !pattern.IsValid() {
		return nil, ErrInvalidTopic
	}

	sub := newSubscription(uuid.New().String(), pattern, handler, opts...)
	b.registry.add(sub)
	return sub, nil
}

// SubscribeFunc is a convenience method for subscribing with a function handler.
func (b *bus) SubscribeFunc(pattern Topic, fn HandlerFunc, opts ...SubscriptionOption) (Subscription, error) {
	return b.Subscribe(pattern, fn, opts...)
}

// Unsubscribe cancels and removes a subscription.
// This method is safe to call concurrently, including from inside a handler.
func (b *bus) Unsubscribe(sub Subscription) error {
	if sub == nil {
		return ErrInvalidSubscription
	}

	sub.Cancel()
	if !b.registry.remove(sub.ID()) {
		return ErrSubscriptionNotFound
	}
	return nil
}

// Stats returns current bus statistics.
func (b *bus) Stats() Stats {
	return Stats{
		Published:         b.published.Load(),
		Delivered:         b.delivered.Load(),
		HandlerErrors:     b.handlerErrors.Load(),
		HandlerPanics:     b.handlerPanics.Load(),
		ActiveSubscribers: b.registry.countActive(),
	}
}

// Clear cancels and removes all subscriptions.
func (b *bus) Clear() {
	b.registry.clear()
}
