// Package float owns the lifecycle of a single cursor-anchored float
// window: at most one float per Manager, and only the most recent Show
// request may win.
//
// The Manager serializes creation requests behind an exclusive lock and
// resolves the race between an in-flight creation and a concurrent Close
// with monotonic timestamps: every Close stamps the handle, and a
// creation that started at or before the latest stamp discards its
// result. Rendering is delegated to a host.Renderer; while a float is
// live the Manager subscribes to host notifications and applies the
// visibility policy (close on context switches, close when the popup
// menu lands on the float's side, debounced close on cursor movement
// away from the anchor).
package float
