// Package host defines the surface nimbus expects from the editor it is
// attached to: the renderer that creates and destroys float windows, the
// notification topics the editor feeds into the bus, the error sink that
// shows failures to the user, and a tracker that mirrors the small slice
// of editor state (current buffer, insert mode, popup menu alignment) the
// float policy reads.
//
// The package holds contracts and plain data only. The Neovim
// implementation lives in host/backend.
package host
