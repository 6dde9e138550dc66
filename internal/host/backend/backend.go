package backend

import (
	"fmt"
	"sync"

	"github.com/neovim/go-client/nvim"
)

// Nvim wraps a go-client session and lazily installs the Lua module the
// renderer and event plumbing call into.
type Nvim struct {
	client *nvim.Nvim

	loadOnce sync.Once
	loadErr  error
}

// Dial connects to a running Neovim instance listening on addr. The
// caller owns the event loop: run Serve before issuing host calls.
func Dial(addr string) (*Nvim, error) {
	client, err := nvim.Dial(addr, nvim.DialServe(false))
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", addr, err)
	}
	return &Nvim{client: client}, nil
}

// Embed starts an embedded Neovim child process. path names the nvim
// binary; empty means "nvim" from PATH. Extra args are appended after
// the embed flags.
func Embed(path string, args ...string) (*Nvim, error) {
	if path == "" {
		path = "nvim"
	}
	client, err := nvim.NewChildProcess(
		nvim.ChildProcessCommand(path),
		nvim.ChildProcessArgs(append([]string{"--embed", "--headless"}, args...)...),
		nvim.ChildProcessServe(false),
	)
	if err != nil {
		return nil, fmt.Errorf("start embedded nvim: %w", err)
	}
	return &Nvim{client: client}, nil
}

// Serve runs the RPC event loop until the connection closes. Host calls
// block until Serve is running, so start it first.
func (n *Nvim) Serve() error {
	return n.client.Serve()
}

// Close tears down the RPC connection.
func (n *Nvim) Close() error {
	return n.client.Close()
}

// Channel returns the RPC channel id Neovim assigned this session.
func (n *Nvim) Channel() int {
	return n.client.ChannelID()
}

// Report writes err to the host's error channel. It implements
// host.ErrorSink.
func (n *Nvim) Report(err error) {
	if err == nil {
		return
	}
	_ = n.client.WritelnErr("[nimbus] " + err.Error())
}

// exec runs a Lua chunk, loading the nimbus module on first use.
func (n *Nvim) exec(code string, result any, args ...any) error {
	n.loadOnce.Do(func() {
		n.loadErr = n.client.ExecLua(floatLua, nil)
	})
	if n.loadErr != nil {
		return fmt.Errorf("load host module: %w", n.loadErr)
	}
	return n.client.ExecLua(code, result, args...)
}
