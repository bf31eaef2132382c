// Package debounce provides functions to debounce function calls, i.e., to
// ensure that a function is only executed after a certain amount of time has
// passed since the last call.
//
// Debouncing can be useful in scenarios where function calls may be triggered
// rapidly, such as in response to user input, but the underlying operation is
// expensive and only needs to be performed once per batch of calls.
//
// Calls are coalesced into windows. By default the function is invoked on the
// trailing edge of a window, once wait has passed without further calls. The
// Leading option invokes it on the first call of a window instead, or in
// addition when combined with Trailing. The MaxWait option bounds how long a
// window that never goes quiet can defer an invocation.
package debounce

import (
	"time"
)

// New returns a debounced function that delays invoking f until after wait time
// has elapsed since the last time the debounced function was invoked.
//
// The returned cancel function can be used to cancel any pending invocation of
// f, but is not required to be called, so can be ignored if not needed.
//
// Both debounced and cancel functions are safe for concurrent use in
// goroutines, and can both be called multiple times.
//
// The debounced function does not wait for a trailing invocation of f, so f
// needs to be thread-safe as it may be invoked again before the previous
// invocation completes.
func New(
	wait time.Duration,
	f func(),
	opts ...Option,
) (debounced func(), cancel func(), err error) {
	var fn func(struct{})
	if f != nil {
		fn = func(struct{}) { f() }
	}

	d, err := NewDebouncer(wait, fn, opts...)
	if err != nil {
		return nil, nil, err
	}

	return func() { d.Call(struct{}{}) }, d.Cancel, nil
}

// NewFunc is like New, but f receives the arguments of the most recent call
// to the debounced function.
func NewFunc[T any](
	wait time.Duration,
	f func(T),
	opts ...Option,
) (debounced func(T), cancel func(), err error) {
	d, err := NewDebouncer(wait, f, opts...)
	if err != nil {
		return nil, nil, err
	}

	return d.Call, d.Cancel, nil
}
