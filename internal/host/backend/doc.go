// Package backend bridges nimbus to a Neovim instance over msgpack-RPC.
//
// The bridge has three pieces: a connection wrapper around the go-client
// session (dialed or embedded child process), a host.Renderer that drives
// an embedded Lua module for float window placement, and the autocmd
// plumbing that forwards editor events onto the notification bus.
//
// The Lua module is installed once per session under the __nimbus global.
// Every renderer operation is a single ExecLua round trip after that, so
// creation stays one atomic exchange from the manager's point of view.
package backend
