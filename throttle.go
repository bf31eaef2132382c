package debounce

import (
	"time"
)

// NewThrottle returns a throttled function which invokes f at most once per
// wait duration.
//
// The first call of a burst invokes f immediately, further calls within the
// burst invoke f at most once every wait, and the last call of a burst is
// always followed by a trailing invocation. It is equivalent to New with the
// Leading, Trailing and MaxWait(wait) options.
func NewThrottle(
	wait time.Duration,
	f func(),
	opts ...Option,
) (throttled func(), cancel func(), err error) {
	opts = append([]Option{Leading(), Trailing(), MaxWait(wait)}, opts...)

	return New(wait, f, opts...)
}
