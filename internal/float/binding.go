package float

import "github.com/dshills/nimbus/internal/notify"

// topicHandler pairs a topic with the handler to bind to it.
type topicHandler struct {
	topic   notify.Topic
	handler notify.HandlerFunc
}

// bindings tracks the notification subscriptions that exist only while a
// float is live. It is not internally synchronized: the Manager mutates
// it under its own lock.
type bindings struct {
	bus  notify.Bus
	subs []notify.Subscription
}

func newBindings(bus notify.Bus) *bindings {
	return &bindings{bus: bus}
}

// bind subscribes the given handlers at policy priority. On any
// subscription failure it rolls back what it already bound.
func (b *bindings) bind(handlers []topicHandler) error {
	if b.bus == nil {
		return nil
	}

	subs := make([]notify.Subscription, 0, len(handlers))
	for _, th := range handlers {
		sub, err := b.bus.SubscribeFunc(th.topic, th.handler, notify.WithPriority(notify.PriorityHigh))
		if err != nil {
			for _, s := range subs {
				b.bus.Unsubscribe(s)
			}
			return err
		}
		subs = append(subs, sub)
	}

	b.subs = subs
	return nil
}

// unbind cancels all live-state subscriptions. Safe to call when
// nothing is bound.
func (b *bindings) unbind() {
	for _, sub := range b.subs {
		b.bus.Unsubscribe(sub)
	}
	b.subs = nil
}

// active reports whether any live-state subscription exists.
func (b *bindings) active() bool {
	return len(b.subs) > 0
}
