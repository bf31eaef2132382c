package watch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// Environment variables set for each command run.
const (
	EnvEventPath = "DEBOUNCE_EVENT_PATH"
	EnvEventOp   = "DEBOUNCE_EVENT_OP"
)

// Command runs an external program for debounced file events. Runs never
// overlap.
type Command struct {
	mux     sync.Mutex
	queue   chan fsnotify.Event
	argv    []string
	stdout  io.Writer
	stderr  io.Writer
	log     zerolog.Logger
	limiter *rate.Limiter
}

// NewCommand returns a Command running argv. When minInterval is positive,
// consecutive runs start at least minInterval apart.
func NewCommand(
	argv []string,
	minInterval time.Duration,
	stdout, stderr io.Writer,
	log zerolog.Logger,
) (*Command, error) {
	if len(argv) == 0 {
		return nil, errors.New("watch: no command given")
	}

	c := &Command{
		queue:  make(chan fsnotify.Event, 1),
		argv:   argv,
		stdout: stdout,
		stderr: stderr,
		log:    log,
	}
	if minInterval > 0 {
		c.limiter = rate.NewLimiter(rate.Every(minInterval), 1)
	}

	return c, nil
}

// Run executes the command for ev, first waiting on the rate limit if one
// is configured.
func (c *Command) Run(ctx context.Context, ev fsnotify.Event) error {
	c.mux.Lock()
	defer c.mux.Unlock()

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("watch: rate limit: %w", err)
		}
	}

	cmd := exec.CommandContext(ctx, c.argv[0], c.argv[1:]...)
	cmd.Stdout = c.stdout
	cmd.Stderr = c.stderr
	cmd.Env = append(
		os.Environ(),
		EnvEventPath+"="+ev.Name,
		EnvEventOp+"="+ev.Op.String(),
	)

	start := time.Now()
	c.log.Info().
		Str("path", ev.Name).
		Str("op", ev.Op.String()).
		Strs("command", c.argv).
		Msg("running command")

	err := cmd.Run()
	if err != nil {
		c.log.Error().
			Err(err).
			Dur("elapsed", time.Since(start)).
			Msg("command failed")

		return fmt.Errorf("watch: run %s: %w", c.argv[0], err)
	}

	c.log.Debug().Dur("elapsed", time.Since(start)).Msg("command finished")

	return nil
}

// Enqueue schedules a run for ev without blocking. If a run is already
// queued, ev replaces its event.
func (c *Command) Enqueue(ev fsnotify.Event) {
	for {
		select {
		case c.queue <- ev:
			return
		default:
		}

		select {
		case old := <-c.queue:
			c.log.Trace().Str("path", old.Name).Msg("replacing queued run")
		default:
		}
	}
}

// Serve runs queued events one at a time until ctx is done. Failed runs are
// logged and do not stop Serve.
func (c *Command) Serve(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-c.queue:
			_ = c.Run(ctx, ev)
		}
	}
}
