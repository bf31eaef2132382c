package debounce

import (
	"sort"
	"sync"
	"time"
)

// fakeClock is a manually advanced Clock. Timers run synchronously on the
// goroutine calling Advance or AdvanceTo, in order of their due time.
type fakeClock struct {
	mux    sync.Mutex
	now    time.Time
	seq    int
	timers []*fakeTimer
}

type fakeTimer struct {
	clock   *fakeClock
	at      time.Time
	seq     int
	f       func()
	stopped bool
	fired   bool
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mux.Lock()
	defer c.mux.Unlock()

	return c.now
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mux.Lock()
	defer c.mux.Unlock()

	c.seq++
	t := &fakeTimer{clock: c, at: c.now.Add(d), seq: c.seq, f: f}
	c.timers = append(c.timers, t)

	return t
}

func (t *fakeTimer) Stop() bool {
	t.clock.mux.Lock()
	defer t.clock.mux.Unlock()

	if t.stopped || t.fired {
		return false
	}
	t.stopped = true

	return true
}

// Advance moves the clock forward by d, running every timer due on the way.
func (c *fakeClock) Advance(d time.Duration) {
	c.AdvanceTo(c.Now().Add(d))
}

// AdvanceTo moves the clock forward to end, running every timer due on the
// way. Timers scheduled by running timers are considered too.
func (c *fakeClock) AdvanceTo(end time.Time) {
	for {
		c.mux.Lock()
		next := c.nextDue(end)
		if next == nil {
			if end.After(c.now) {
				c.now = end
			}
			c.mux.Unlock()

			return
		}
		if next.at.After(c.now) {
			c.now = next.at
		}
		next.fired = true
		c.mux.Unlock()

		next.f()
	}
}

// Set moves the clock to t without running any timers, which simulates
// timers firing late.
func (c *fakeClock) Set(t time.Time) {
	c.mux.Lock()
	defer c.mux.Unlock()

	c.now = t
}

// Active returns the number of timers which are neither stopped nor fired.
func (c *fakeClock) Active() int {
	c.mux.Lock()
	defer c.mux.Unlock()

	n := 0
	for _, t := range c.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}

	return n
}

func (c *fakeClock) nextDue(end time.Time) *fakeTimer {
	live := c.timers[:0]
	for _, t := range c.timers {
		if !t.stopped && !t.fired {
			live = append(live, t)
		}
	}
	c.timers = live

	sort.SliceStable(c.timers, func(i, j int) bool {
		if c.timers[i].at.Equal(c.timers[j].at) {
			return c.timers[i].seq < c.timers[j].seq
		}

		return c.timers[i].at.Before(c.timers[j].at)
	})

	if len(c.timers) == 0 || c.timers[0].at.After(end) {
		return nil
	}

	return c.timers[0]
}
