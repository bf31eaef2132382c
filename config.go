package debounce

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidConfig is returned when a debouncer is constructed with an
// invalid combination of wait and options.
var ErrInvalidConfig = errors.New("debounce: invalid configuration")

// Config is a declarative form of the Leading, Trailing and MaxWait options.
type Config struct {
	Leading  bool
	Trailing bool
	MaxWait  time.Duration
}

// Options returns the options equivalent to c.
func (c *Config) Options() []Option {
	if c == nil {
		return nil
	}

	var opts []Option
	if c.Leading {
		opts = append(opts, Leading())
	}
	if c.Trailing {
		opts = append(opts, Trailing())
	}
	if c.MaxWait != 0 {
		opts = append(opts, MaxWait(c.MaxWait))
	}

	return opts
}

// Validate reports whether c can be used together with the given wait
// duration.
func (c *Config) Validate(wait time.Duration) error {
	o := newOptions(c.Options())

	return o.validate(wait)
}

// New returns a debounced function configured by c. See New.
func (c *Config) New(
	wait time.Duration,
	f func(),
	opts ...Option,
) (debounced func(), cancel func(), err error) {
	return New(wait, f, append(c.Options(), opts...)...)
}

func newOptions(opts []Option) *options {
	o := &options{}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}

	// If neither leading nor trailing is set, default to trailing.
	if !o.leading && !o.trailing {
		o.trailing = true
	}

	if o.clock == nil {
		o.clock = SystemClock()
	}

	return o
}

func (o *options) validate(wait time.Duration) error {
	if wait < 0 {
		return fmt.Errorf("%w: wait %s is negative", ErrInvalidConfig, wait)
	}
	if o.maxWait < 0 {
		return fmt.Errorf(
			"%w: maxWait %s is negative", ErrInvalidConfig, o.maxWait,
		)
	}
	if o.maxWait > 0 && o.maxWait < wait {
		return fmt.Errorf(
			"%w: maxWait %s is less than wait %s",
			ErrInvalidConfig, o.maxWait, wait,
		)
	}

	return nil
}
