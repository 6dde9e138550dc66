package notify

import "errors"

// Sentinel errors for the notification bus.
var (
	// ErrInvalidTopic is returned when a topic is empty or malformed.
	ErrInvalidTopic = errors.New("invalid topic")

	// ErrNilHandler is returned when a nil handler is provided.
	ErrNilHandler = errors.New("handler cannot be nil")

	// ErrInvalidSubscription is returned when a nil subscription is passed to Unsubscribe.
	ErrInvalidSubscription = errors.New("invalid subscription")

	// ErrSubscriptionNotFound is returned when unsubscribing a subscription
	// the bus does not hold.
	ErrSubscriptionNotFound = errors.New("subscription not found")
)
