package debounce

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewThrottle(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	start := clock.Now()
	var got []time.Duration

	throttled, _, err := NewThrottle(
		100*time.Millisecond,
		func() { got = append(got, clock.Now().Sub(start)) },
		WithClock(clock),
	)
	require.NoError(t, err)

	for at := 0; at <= 300; at += 20 {
		clock.AdvanceTo(start.Add(time.Duration(at) * time.Millisecond))
		throttled()
	}
	clock.Advance(time.Second)

	assert.Equal(t, []time.Duration{
		0,
		100 * time.Millisecond,
		200 * time.Millisecond,
		300 * time.Millisecond,
		400 * time.Millisecond,
	}, got)
}

func TestNewThrottle_cancel(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	var n int

	throttled, cancel, err := NewThrottle(
		100*time.Millisecond,
		func() { n++ },
		WithClock(clock),
	)
	require.NoError(t, err)

	throttled()
	throttled()
	cancel()
	clock.Advance(time.Second)

	assert.Equal(t, 1, n)
}
