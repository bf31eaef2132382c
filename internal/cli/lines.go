package cli

import (
	"bufio"
	"fmt"
	"io"
	"sync"

	"github.com/romdo/go-debounce/v2"
	"github.com/romdo/go-debounce/v2/internal/config"
	"github.com/romdo/go-debounce/v2/internal/logx"
	"github.com/rs/zerolog"
	"github.com/urfave/cli"
)

const maxLineSize = 1 << 20

func (r *runner) lines(ctx *cli.Context) error {
	s, err := settings(ctx)
	if err != nil {
		return err
	}

	log := logx.New(r.streams.Err, s.LogLevel)

	return coalesceLines(r.streams.In, r.streams.Out, s.Policy, log)
}

// coalesceLines treats every line read from in as one call and writes the
// lines that get invoked to out. A pending trailing line is written at EOF.
func coalesceLines(
	in io.Reader,
	out io.Writer,
	policy config.Policy,
	log zerolog.Logger,
) error {
	var (
		mux  sync.Mutex
		werr error
	)
	emit := func(line string) {
		mux.Lock()
		defer mux.Unlock()

		if werr == nil {
			_, werr = io.WriteString(out, line+"\n")
		}
	}

	opts := append(policy.Options(), debounce.WithLogger(log))
	d, err := debounce.NewDebouncer(policy.Wait, emit, opts...)
	if err != nil {
		return err
	}
	defer d.Dispose()

	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for sc.Scan() {
		d.Call(sc.Text())
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	if d.Flush() {
		log.Debug().Msg("flushed pending line at end of input")
	}
	// A trailing timer may have fired just before the flush.
	d.Dispose()
	d.Wait()

	mux.Lock()
	defer mux.Unlock()

	return werr
}
