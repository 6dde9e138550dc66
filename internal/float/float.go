package float

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dshills/nimbus/internal/docs"
	"github.com/dshills/nimbus/internal/host"
	"github.com/dshills/nimbus/internal/notify"
)

// defaultDebounce is the settle window for cursor movement checks.
const defaultDebounce = 300 * time.Millisecond

// Manager owns at most one cursor-anchored float window on the host.
//
// Show requests are serialized: one renderer round-trip is in flight at
// a time and later requests wait their turn. Close never waits for an
// in-flight creation; it stamps the handle so the creation discards its
// result when it resumes. All methods are safe for concurrent use.
type Manager struct {
	renderer host.Renderer
	bus      notify.Bus
	tracker  *host.Tracker
	sink     host.ErrorSink
	clock    Clock
	debounce time.Duration

	// creating serializes Show requests.
	creating sync.Mutex

	// mu guards the handle, bindings, gate, defaults and disposed flag.
	// Close takes only mu, never creating, so it can interleave with an
	// in-flight creation.
	mu       sync.Mutex
	h        handle
	binds    *bindings
	gate     *moveGate
	defaults Options
	disposed bool

	created    atomic.Uint64
	closed     atomic.Uint64
	superseded atomic.Uint64
	vetoed     atomic.Uint64
	failures   atomic.Uint64
}

// Stats counts manager activity.
type Stats struct {
	// Created is the number of creations committed to the handle.
	Created uint64

	// Closed is the number of closes that found a live surface.
	Closed uint64

	// Superseded is the number of creation results discarded because a
	// close overtook them.
	Superseded uint64

	// Vetoed is the number of creations the host declined.
	Vetoed uint64

	// Failures is the number of Show requests that ended in an error.
	Failures uint64
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithClock replaces the monotonic clock. Intended for tests.
func WithClock(c Clock) ManagerOption {
	return func(m *Manager) {
		m.clock = c
	}
}

// WithErrorSink sets where creation failures are reported.
func WithErrorSink(s host.ErrorSink) ManagerOption {
	return func(m *Manager) {
		m.sink = s
	}
}

// WithTracker supplies the host state tracker the policy consults for
// insert mode and popup alignment. Without one the manager assumes
// normal mode and bottom-aligned popups.
func WithTracker(t *host.Tracker) ManagerOption {
	return func(m *Manager) {
		m.tracker = t
	}
}

// WithDefaults sets the options Show starts from.
func WithDefaults(o Options) ManagerOption {
	return func(m *Manager) {
		m.defaults = cloneOptions(o)
	}
}

// WithDebounce sets the cursor movement settle window.
func WithDebounce(d time.Duration) ManagerOption {
	return func(m *Manager) {
		if d > 0 {
			m.debounce = d
		}
	}
}

// NewManager creates a manager that renders through the given renderer
// and watches host notifications on the given bus.
func NewManager(renderer host.Renderer, bus notify.Bus, opts ...ManagerOption) *Manager {
	m := &Manager{
		renderer: renderer,
		bus:      bus,
		clock:    newSystemClock(),
		debounce: defaultDebounce,
		defaults: DefaultOptions(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.binds = newBindings(bus)
	return m
}

// Show displays the given documentation in the float, replacing
// whatever the float currently shows. Blank fragments are dropped; if
// nothing remains Show behaves as Close. Failures are reported to the
// error sink, never returned: a float that cannot be shown must not
// break the feature that asked for it.
func (m *Manager) Show(ctx context.Context, documents []docs.Documentation, opts Options) {
	kept := docs.NonBlank(documents)
	if len(kept) == 0 {
		m.Close()
		return
	}

	m.mu.Lock()
	disposed := m.disposed
	m.mu.Unlock()
	if disposed {
		return
	}

	m.creating.Lock()
	defer m.creating.Unlock()

	if err := m.create(ctx, kept, opts); err != nil {
		m.failures.Add(1)
		m.report(err)
	}
}

// create runs one creation attempt. The caller holds the creating lock.
func (m *Manager) create(ctx context.Context, kept []docs.Documentation, opts Options) error {
	start := m.clock.Now()
	req := docs.Parse(kept)
	opts = m.fillDefaults(opts)
	cfg := m.buildConfig(opts, req)

	m.mu.Lock()
	win, buf := m.h.win, m.h.buf
	m.unbindLocked()
	m.mu.Unlock()

	res, err := m.renderer.CreateOrReuse(ctx, win, buf, req.Lines, cfg)
	if err != nil {
		// The host state is unknown; forget the window rather than
		// keep policy running against a surface that may be gone.
		m.mu.Lock()
		m.h.win = 0
		m.mu.Unlock()
		return fmt.Errorf("create float: %w", err)
	}
	if res == nil {
		// Host vetoed creation; no float exists now.
		m.vetoed.Add(1)
		m.mu.Lock()
		m.h.win = 0
		m.mu.Unlock()
		return nil
	}
	if err := res.Validate(); err != nil {
		m.mu.Lock()
		m.h.win = 0
		m.mu.Unlock()
		return fmt.Errorf("create float: %w", err)
	}

	m.mu.Lock()
	discard := m.h.supersedes(start) || m.disposed
	if !discard {
		m.h.win = res.Win
		m.h.buf = res.Buf
		m.h.target = res.Target
		cur := res.Cursor
		m.h.cursor = &cur
		if err := m.bindLocked(res.AlignTop, cfg.AutoHide); err != nil {
			m.mu.Unlock()
			return fmt.Errorf("bind float events: %w", err)
		}
		m.created.Add(1)
	}
	m.mu.Unlock()

	if discard {
		m.superseded.Add(1)
		m.renderer.Close(res.Win)
	}
	return nil
}

// Close tears the float down. It returns as soon as the handle is
// updated; the host-side window close is fire and forget. Every call
// stamps the handle, even when no float exists, so an in-flight
// creation that started before this call discards its result.
func (m *Manager) Close() {
	m.mu.Lock()
	m.h.closedAt = m.clock.Now()
	win := m.h.win
	m.h.win = 0
	m.unbindLocked()
	m.mu.Unlock()

	if win != 0 {
		m.closed.Add(1)
		m.renderer.Close(win)
	}
}

// Dispose closes the float and retires the manager. Later Show calls
// are no-ops. Dispose is idempotent.
func (m *Manager) Dispose() {
	m.mu.Lock()
	if m.disposed {
		m.mu.Unlock()
		return
	}
	m.disposed = true
	m.mu.Unlock()

	m.Close()
}

// IsRetriggerFor reports whether a float is live and anchored to the
// given buffer. Callers use it to decide whether a new trigger in that
// buffer should refresh the float instead of opening a fresh one.
func (m *Manager) IsRetriggerFor(buf int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.h.live() && m.h.target == buf
}

// Activated reports whether the recorded float still exists on the
// host. When the host reports it gone the manager records the absence.
func (m *Manager) Activated(ctx context.Context) (bool, error) {
	m.mu.Lock()
	win := m.h.win
	m.mu.Unlock()
	if win == 0 {
		return false, nil
	}

	ok, err := m.renderer.Valid(ctx, win)
	if err != nil {
		return false, fmt.Errorf("probe float: %w", err)
	}
	if ok {
		return true, nil
	}

	m.mu.Lock()
	if m.h.win == win {
		m.h.win = 0
		m.unbindLocked()
	}
	m.mu.Unlock()
	return false, nil
}

// Window returns the live float window id, or zero when absent.
func (m *Manager) Window() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.h.win
}

// Buffer returns the float content buffer id. The buffer survives
// closes so the host can reuse it; zero means none was ever created.
func (m *Manager) Buffer() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.h.buf
}

// Defaults returns the options Show starts from.
func (m *Manager) Defaults() Options {
	m.mu.Lock()
	defer m.mu.Unlock()
	return cloneOptions(m.defaults)
}

// SetDefaults replaces the options Show starts from. An in-flight
// request keeps the defaults it already captured.
func (m *Manager) SetDefaults(o Options) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaults = cloneOptions(o)
}

// Stats returns current manager counters.
func (m *Manager) Stats() Stats {
	return Stats{
		Created:    m.created.Load(),
		Closed:     m.closed.Load(),
		Superseded: m.superseded.Load(),
		Vetoed:     m.vetoed.Load(),
		Failures:   m.failures.Load(),
	}
}

// bindLocked activates the live-state subscriptions, parameterized by
// where the float landed and the effective auto-hide flag. Caller holds mu.
func (m *Manager) bindLocked(alignTop, autoHide bool) error {
	var gate *moveGate
	gate = newMoveGate(m.debounce, func(ev host.CursorEvent) {
		m.onCursorSettled(gate, ev, autoHide)
	})

	handlers := []topicHandler{
		{host.TopicBufferEnter, m.onContextSwitch},
		{host.TopicInsertEnter, m.onContextSwitch},
		{host.TopicInsertLeave, m.onContextSwitch},
		{host.TopicPopupChanged, m.popupHandler(alignTop)},
		{host.TopicCursorMoved, observeHandler(gate)},
		{host.TopicCursorMovedInsert, observeHandler(gate)},
	}
	if err := m.binds.bind(handlers); err != nil {
		gate.Cancel()
		return err
	}
	m.gate = gate
	return nil
}

// unbindLocked tears down the live-state subscriptions and drops any
// pending movement check. Caller holds mu.
func (m *Manager) unbindLocked() {
	m.binds.unbind()
	if m.gate != nil {
		m.gate.Cancel()
		m.gate = nil
	}
}

// fillDefaults resolves the structural blanks of a request against the
// manager defaults.
func (m *Manager) fillDefaults(opts Options) Options {
	d := m.Defaults()
	if opts.MaxHeight == 0 {
		opts.MaxHeight = d.MaxHeight
	}
	if opts.MaxWidth == 0 {
		opts.MaxWidth = d.MaxWidth
	}
	if opts.Highlight == "" {
		opts.Highlight = d.Highlight
	}
	if opts.BorderHighlight == "" {
		opts.BorderHighlight = d.BorderHighlight
	}
	if len(opts.Modes) == 0 {
		opts.Modes = d.Modes
	}
	return opts
}

// buildConfig assembles the renderer configuration from the resolved
// options, the parsed content and current host state.
func (m *Manager) buildConfig(opts Options, req docs.RenderRequest) host.FloatConfig {
	cfg := host.FloatConfig{
		MaxHeight:       opts.MaxHeight,
		MaxWidth:        opts.MaxWidth,
		PreferTop:       opts.PreferTop,
		OffsetX:         opts.OffsetX,
		Title:           opts.Title,
		Border:          opts.Border,
		CloseButton:     opts.CloseButton,
		Highlight:       opts.Highlight,
		BorderHighlight: opts.BorderHighlight,
		Cursorline:      opts.Cursorline,
		AutoHide:        opts.AutoHide,
		Modes:           opts.Modes,
		AlignTop:        m.pumAlignTop(),
		Highlights:      req.Highlights,
		CodeBlocks:      req.CodeBlocks,
	}
	if cfg.Title != "" && cfg.Border == ([4]int{}) {
		cfg.Border = [4]int{1, 1, 1, 1}
	}
	return cfg
}

func (m *Manager) insertMode() bool {
	if m.tracker == nil {
		return false
	}
	return m.tracker.InsertMode()
}

func (m *Manager) pumAlignTop() bool {
	if m.tracker == nil {
		return false
	}
	return m.tracker.PumAlignTop()
}

func (m *Manager) report(err error) {
	if m.sink != nil {
		m.sink.Report(err)
	}
}

func cloneOptions(o Options) Options {
	o.Modes = append([]string(nil), o.Modes...)
	return o
}
