package watch

import (
	"context"
	"errors"
	"fmt"

	"github.com/fsnotify/fsnotify"
	"github.com/romdo/go-debounce/v2"
	"github.com/rs/zerolog"
)

// Relevant is the set of operations forwarded to the debouncer. Chmod is
// left out since editors and indexers touch it constantly.
const Relevant = fsnotify.Write | fsnotify.Create | fsnotify.Remove |
	fsnotify.Rename

// Watcher wraps an fsnotify watcher over a fixed set of paths.
type Watcher struct {
	w     *fsnotify.Watcher
	paths []string
	log   zerolog.Logger
}

// New creates a watcher and adds every path to it. Paths are watched
// non-recursively.
func New(paths []string, log zerolog.Logger) (*Watcher, error) {
	if len(paths) == 0 {
		return nil, errors.New("watch: no paths given")
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: init: %w", err)
	}

	for _, p := range paths {
		if err := w.Add(p); err != nil {
			_ = w.Close()

			return nil, fmt.Errorf("watch: add %s: %w", p, err)
		}
		log.Debug().Str("path", p).Msg("watching path")
	}

	return &Watcher{w: w, paths: paths, log: log}, nil
}

// Paths returns the watched paths.
func (w *Watcher) Paths() []string {
	return w.paths
}

// Run forwards relevant events to d until ctx is done or the watcher is
// closed. It returns nil when ctx is canceled.
func (w *Watcher) Run(
	ctx context.Context,
	d *debounce.Debouncer[fsnotify.Event],
) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.w.Events:
			if !ok {
				return nil
			}
			w.handleEvent(ev, d)
		case err, ok := <-w.w.Errors:
			if !ok {
				return nil
			}
			w.handleError(err, d)
		}
	}
}

func (w *Watcher) handleEvent(
	ev fsnotify.Event,
	d *debounce.Debouncer[fsnotify.Event],
) {
	if ev.Op&Relevant == 0 {
		return
	}
	w.log.Trace().
		Str("path", ev.Name).
		Str("op", ev.Op.String()).
		Msg("file event")
	d.Call(ev)
}

func (w *Watcher) handleError(
	err error,
	d *debounce.Debouncer[fsnotify.Event],
) {
	if errors.Is(err, fsnotify.ErrEventOverflow) {
		// Events were lost, so treat it as a change of every path.
		w.log.Warn().Err(err).Msg("watch queue overflow")
		d.Call(fsnotify.Event{Op: fsnotify.Write})

		return
	}
	w.log.Error().Err(err).Msg("watch error")
}

// Close stops the underlying fsnotify watcher.
func (w *Watcher) Close() error {
	return w.w.Close()
}
