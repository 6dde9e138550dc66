package float

import "time"

// Clock supplies the monotonic millisecond timestamps the supersession
// rule compares. Implementations must never return zero: a zero stamp on
// the handle means "never closed".
type Clock interface {
	Now() int64
}

// systemClock measures milliseconds since its creation.
type systemClock struct {
	start time.Time
}

func newSystemClock() *systemClock {
	return &systemClock{start: time.Now()}
}

// Now returns milliseconds elapsed since the clock was created, offset
// by one so it never returns the zero sentinel.
func (c *systemClock) Now() int64 {
	return time.Since(c.start).Milliseconds() + 1
}
