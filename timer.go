package debounce

import (
	"time"
)

// Timer is a handle to a function scheduled with Clock.AfterFunc.
//
// Stop prevents the function from running if it has not started yet. It
// returns false if the function has already run or the timer was already
// stopped. *time.Timer satisfies this interface.
type Timer interface {
	Stop() bool
}

// Clock is the time source and timer facility used by a Debouncer.
//
// AfterFunc must run f once, on its own goroutine or timeline, after d has
// elapsed. The default implementation is backed by time.Now and
// time.AfterFunc.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

type systemClock struct{}

// SystemClock returns the Clock backed by the standard library time package.
func SystemClock() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now()
}

func (systemClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
