package float

import "github.com/dshills/nimbus/internal/host"

// handle is the manager's record of the one float it may own. All
// fields are guarded by Manager.mu.
//
// win is nonzero exactly while the manager considers a float live. buf
// survives closes so the host can reuse the scratch buffer on the next
// creation. closedAt carries the monotonic stamp of the most recent
// close request; zero means no close has ever been requested.
type handle struct {
	win      int
	buf      int
	target   int
	cursor   *host.Position
	closedAt int64
}

// live reports whether a float surface is currently recorded.
func (h *handle) live() bool {
	return h.win != 0
}

// supersedes reports whether a creation that started at the given stamp
// has been overtaken by a close request. Equal stamps count as
// overtaken: a close issued in the same millisecond as the start must
// not lose.
func (h *handle) supersedes(start int64) bool {
	return h.closedAt != 0 && start <= h.closedAt
}
