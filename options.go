package debounce

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Option is a function that can be used to configure a debounced function.
type Option func(*options)

type options struct {
	leading  bool
	trailing bool
	maxWait  time.Duration
	clock    Clock
	logger   *zerolog.Logger
	ctx      context.Context
}

// Leading returns an option that will cause the debounced function to
// invoke the given function immediately on the first call of a burst, and
// then wait for the given duration before invoking the function again.
//
// When only leading is used, a burst of calls immediately invokes the function,
// any subsequent calls will be ignored until the wait duration has passed
// without further calls.
func Leading() Option {
	return func(o *options) {
		o.leading = true
	}
}

// Trailing returns an option that will cause the debounced function to be
// invoked after the wait duration has passed since the last call.
//
// Trailing is the default when neither Leading nor Trailing is given.
//
// If both Leading and Trailing are used, a burst of calls immediately
// invokes the function, followed by another invocation after the wait duration
// has passed since the last call. If only a single call is made, only one
// invocation will occur.
func Trailing() Option {
	return func(o *options) {
		o.trailing = true
	}
}

// MaxWait returns an option that bounds how long a continuous burst of calls
// can delay the invocation of the function.
//
// Without a max wait, the debounced function might never be invoked if it
// is called repeatedly within the wait duration.
//
// For example, if the wait duration is 100ms and the max wait duration is
// 500ms, the debounced function will be invoked every 500ms, even if it is
// called non-stop every 10ms. A maxWait of zero disables the bound, and a
// non-zero maxWait shorter than wait is a configuration error.
func MaxWait(maxWait time.Duration) Option {
	return func(o *options) {
		o.maxWait = maxWait
	}
}

// WithClock returns an option that replaces the clock used to read the
// current time and schedule timers.
func WithClock(c Clock) Option {
	return func(o *options) {
		o.clock = c
	}
}

// WithLogger returns an option that makes the debouncer emit debug events
// about windows and invocations to the given logger.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) {
		o.logger = &l
	}
}

// WithContext ties the lifetime of the debouncer to ctx. Once ctx is done
// the debouncer is disposed, and no pending invocation will run.
func WithContext(ctx context.Context) Option {
	return func(o *options) {
		o.ctx = ctx
	}
}
