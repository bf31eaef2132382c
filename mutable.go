package debounce

import (
	"time"
)

// NewMutable returns a debounced function like New, but it allows callback
// function f to be changed, as a new callback function is passed to each
// invocation of the debounced function.
//
// The returned cancel function can be used to cancel any pending invocation of
// f, but is not required to be called, so can be ignored if not needed.
//
// Only the very last f passed to the debounced function is called when the
// delay expires and the callback function is invoked. Previous f values are
// discarded.
//
// Both debounced and cancel functions are safe for concurrent use in
// goroutines, and can both be called multiple times.
func NewMutable(
	wait time.Duration,
	opts ...Option,
) (debounced func(f func()), cancel func(), err error) {
	d, err := NewDebouncer(wait, runFunc, opts...)
	if err != nil {
		return nil, nil, err
	}

	return d.Call, d.Cancel, nil
}

func runFunc(f func()) {
	if f != nil {
		f()
	}
}
