package debounce

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

type edge string

const (
	edgeLeading  edge = "leading"
	edgeTrailing edge = "trailing"
	edgeMaxWait  edge = "max_wait"
	edgeFlush    edge = "flush"
)

// Debouncer coalesces calls carrying an argument of type T into as few
// invocations of a callback as its policy allows.
//
// A Debouncer tracks a single coalescing window. The first call opens the
// window, every call restarts the wait countdown, and the window closes once
// wait has passed without calls. Depending on the options, the callback is
// invoked when the window opens (Leading), when it closes (Trailing), and
// whenever the window has been kept open for longer than MaxWait.
//
// The callback always receives the arguments of the most recent call, and
// the callback itself can be replaced at any time with SetFunc without
// affecting an open window.
//
// All methods are safe for concurrent use. The callback is never invoked
// while internal locks are held: leading invocations, and max wait
// invocations detected by Call, run synchronously on the calling goroutine,
// while trailing invocations run on the timer's goroutine. A panic in the
// callback propagates to that goroutine and leaves the Debouncer usable.
type Debouncer[T any] struct {
	// Configuration
	wait     time.Duration
	leading  bool
	trailing bool
	maxWait  time.Duration
	clock    Clock
	log      zerolog.Logger

	fn atomic.Pointer[func(T)]

	// State
	mux         sync.Mutex
	disposed    bool
	dirty       bool
	windowStart time.Time
	lastCall    time.Time
	args        T
	timer       Timer
	timerGen    uint64
	stopCtx     func() bool

	// Invocations handed off but not yet returned. idle is signaled on
	// mux when running drops to zero.
	running int
	idle    *sync.Cond
}

// NewDebouncer creates a new Debouncer instance with the given wait duration,
// callback function, and options.
//
// An error wrapping ErrInvalidConfig is returned if wait is negative, or if
// MaxWait is set to a value shorter than wait.
func NewDebouncer[T any](
	wait time.Duration,
	f func(T),
	opts ...Option,
) (*Debouncer[T], error) {
	o := newOptions(opts)
	if err := o.validate(wait); err != nil {
		return nil, err
	}

	d := &Debouncer[T]{
		wait:     wait,
		leading:  o.leading,
		trailing: o.trailing,
		maxWait:  o.maxWait,
		clock:    o.clock,
		log:      zerolog.Nop(),
	}
	d.idle = sync.NewCond(&d.mux)
	if o.logger != nil {
		d.log = *o.logger
	}
	if f != nil {
		d.fn.Store(&f)
	}
	if o.ctx != nil {
		// Dispose may run as soon as AfterFunc is registered. Holding mux
		// orders it after the stopCtx write.
		d.mux.Lock()
		if o.ctx.Err() != nil {
			d.disposed = true
		} else {
			d.stopCtx = context.AfterFunc(o.ctx, d.Dispose)
		}
		d.mux.Unlock()
	}

	return d, nil
}

// Call records a call with the given arguments. This method is safe for
// concurrent use.
func (d *Debouncer[T]) Call(args T) {
	d.CallWith(nil, args)
}

// CallWith sets f as the callback, like SetFunc, and then records a call with
// the given arguments. On repeated calls, the last passed function wins.
//
// If f is nil, the callback is not modified from its current value.
func (d *Debouncer[T]) CallWith(f func(T), args T) {
	if f != nil {
		d.fn.Store(&f)
	}

	d.mux.Lock()
	if d.disposed {
		d.mux.Unlock()

		return
	}

	open := d.timer != nil
	d.stop()

	now := d.clock.Now()
	var e edge

	switch {
	case open && d.maxWait > 0 && now.Sub(d.windowStart) > d.maxWait:
		e = edgeMaxWait
		d.windowStart = now
	case !open:
		d.windowStart = now
		d.log.Debug().Dur("wait", d.wait).Msg("debounce window opened")

		if d.leading {
			e = edgeLeading
		}
	}

	d.args = args
	d.lastCall = now
	d.dirty = e == ""
	d.schedule(now)
	if e != "" {
		d.running++
	}
	d.mux.Unlock()

	if e != "" {
		d.invoke(e, args)
	}
}

// SetFunc replaces the callback. Pending invocations will call f.
func (d *Debouncer[T]) SetFunc(f func(T)) {
	d.fn.Store(&f)
}

// Pending reports whether a coalescing window is currently open.
func (d *Debouncer[T]) Pending() bool {
	d.mux.Lock()
	defer d.mux.Unlock()

	return d.timer != nil
}

// Flush immediately invokes a pending trailing invocation with the most
// recent arguments and closes the window. It reports whether the callback
// was invoked.
func (d *Debouncer[T]) Flush() bool {
	d.mux.Lock()
	if d.disposed || d.timer == nil || !d.trailing || !d.dirty {
		d.mux.Unlock()

		return false
	}

	args := d.args
	d.stop()
	d.close()
	d.running++
	d.mux.Unlock()

	d.invoke(edgeFlush, args)

	return true
}

// Cancel discards any pending invocation and closes the current window. The
// Debouncer remains usable, and the next call opens a fresh window.
func (d *Debouncer[T]) Cancel() {
	d.mux.Lock()
	defer d.mux.Unlock()

	if d.timer != nil {
		d.log.Debug().Bool("dirty", d.dirty).Msg("debounce window canceled")
	}
	d.stop()
	d.close()
}

// Dispose cancels any pending invocation and permanently disables the
// Debouncer. Subsequent calls are ignored. Dispose can be called multiple
// times.
//
// Dispose does not wait for an invocation that is already running. Use Wait
// for that.
func (d *Debouncer[T]) Dispose() {
	d.mux.Lock()
	if d.disposed {
		d.mux.Unlock()

		return
	}

	d.disposed = true
	d.stop()
	d.close()
	stopCtx := d.stopCtx
	d.stopCtx = nil
	d.mux.Unlock()

	if stopCtx != nil {
		stopCtx()
	}
	d.log.Debug().Msg("debouncer disposed")
}

// Wait blocks until every invocation of the callback that has already
// started returns. Combined with Dispose, it guarantees the callback is no
// longer running. Wait must not be called from within the callback.
func (d *Debouncer[T]) Wait() {
	d.mux.Lock()
	defer d.mux.Unlock()

	for d.running > 0 {
		d.idle.Wait()
	}
}

// schedule starts the timer for the next quiet period or max wait deadline,
// whichever comes first. It should only be called while the mutex is
// already locked.
func (d *Debouncer[T]) schedule(now time.Time) {
	delay := d.lastCall.Add(d.wait).Sub(now)
	deadline := false

	if d.maxWait > 0 {
		remaining := d.windowStart.Add(d.maxWait).Sub(now)
		if remaining < delay {
			delay = remaining
			deadline = true
		}
	}
	if delay < 0 {
		delay = 0
	}

	d.timerGen++
	gen := d.timerGen
	d.timer = d.clock.AfterFunc(delay, func() {
		d.fire(gen, deadline)
	})
}

// fire is called when the timer expires. Timers which were stopped too late
// to prevent them from running are ignored based on their generation.
func (d *Debouncer[T]) fire(gen uint64, deadline bool) {
	d.mux.Lock()
	if d.disposed || d.timer == nil || gen != d.timerGen {
		d.mux.Unlock()

		return
	}

	now := d.clock.Now()
	args := d.args
	var e edge

	if deadline {
		if d.dirty {
			e = edgeMaxWait
		}
		d.dirty = false
		d.windowStart = now
		d.schedule(now)
	} else {
		if d.trailing && d.dirty {
			e = edgeTrailing
		}
		d.timer = nil
		d.close()
	}
	if e != "" {
		d.running++
	}
	d.mux.Unlock()

	if e != "" {
		d.invoke(e, args)
	}
}

// stop stops the pending timer, if any. It should only be called while the
// mutex is already locked.
func (d *Debouncer[T]) stop() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.timerGen++
}

// close resets the window state. It should only be called while the mutex is
// already locked, and after the timer has been stopped.
func (d *Debouncer[T]) close() {
	var zero T

	d.dirty = false
	d.windowStart = time.Time{}
	d.args = zero
}

// invoke calls the callback. The caller must have counted the invocation in
// running.
func (d *Debouncer[T]) invoke(e edge, args T) {
	defer d.release()

	f := d.fn.Load()
	if f == nil || *f == nil {
		return
	}

	d.log.Debug().Str("edge", string(e)).Msg("invoking debounced function")
	(*f)(args)
}

func (d *Debouncer[T]) release() {
	d.mux.Lock()
	d.running--
	if d.running == 0 {
		d.idle.Broadcast()
	}
	d.mux.Unlock()
}
