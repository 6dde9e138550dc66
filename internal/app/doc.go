// Package app wires the nimbus components into a running daemon: it
// loads configuration, connects to Neovim, installs the RPC handlers
// and autocmds, and keeps the float manager fed with configuration
// changes until shutdown.
package app
