package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/romdo/go-debounce/v2"
	"github.com/romdo/go-debounce/v2/internal/config"
	"github.com/romdo/go-debounce/v2/internal/logx"
	"github.com/romdo/go-debounce/v2/internal/watch"
	"github.com/rs/zerolog"
	"github.com/urfave/cli"
)

func (r *runner) watch(ctx *cli.Context) error {
	s, err := settings(ctx)
	if err != nil {
		return err
	}

	argv := []string(ctx.Args())
	if len(argv) > 0 && argv[0] == "--" {
		argv = argv[1:]
	}
	if len(argv) == 0 {
		argv = s.Watch.Command
	}
	if len(argv) == 0 {
		return errors.New("watch: no command given")
	}

	log := logx.New(r.streams.Err, s.LogLevel)

	sigCtx, stop := signal.NotifyContext(
		context.Background(), os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	return runWatch(sigCtx, s, argv, r.streams, log)
}

// runWatch runs argv for every coalesced change under the watched paths
// until ctx is done.
func runWatch(
	ctx context.Context,
	s *config.Settings,
	argv []string,
	streams Streams,
	log zerolog.Logger,
) error {
	cmd, err := watch.NewCommand(
		argv, s.Watch.MinInterval, streams.Out, streams.Err, log,
	)
	if err != nil {
		return err
	}

	w, err := watch.New(s.Watch.Paths, log)
	if err != nil {
		return err
	}
	defer w.Close()

	opts := append(
		s.Policy.Options(),
		debounce.WithLogger(log),
		debounce.WithContext(ctx),
	)
	// Leading invocations run on the event loop, so runs are handed to a
	// worker to keep fsnotify drained.
	d, err := debounce.NewDebouncer(s.Policy.Wait, cmd.Enqueue, opts...)
	if err != nil {
		return err
	}
	defer d.Dispose()

	serveCtx, stopServe := context.WithCancel(ctx)
	served := make(chan struct{})
	go func() {
		defer close(served)
		cmd.Serve(serveCtx)
	}()
	defer func() {
		stopServe()
		<-served
	}()

	log.Info().
		Strs("paths", w.Paths()).
		Dur("wait", s.Policy.Wait).
		Dur("max_wait", s.Policy.MaxWait).
		Msg("watching for changes")

	return w.Run(ctx, d)
}
