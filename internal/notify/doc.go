// Package notify provides the host notification bus for nimbus.
//
// The bus carries editor-side notifications (buffer entered, insert mode
// changed, popup menu changed, cursor moved) from the host bridge to the
// components that react to them. Topics are hierarchical with dot notation:
//
//	buffer.enter        - a buffer became the current buffer
//	insert.enter        - the host entered insert mode
//	cursor.moved.insert - the cursor moved while in insert mode
//
// Subscription patterns support wildcards: "*" matches exactly one segment,
// "**" matches zero or more segments, so "cursor.**" receives both cursor
// topics above.
//
// Delivery is synchronous. Handlers run on the publisher's goroutine in
// priority order, and a panicking handler is isolated from the publisher.
// The bus is safe for concurrent use, including subscribing and
// unsubscribing from inside a handler.
package notify
