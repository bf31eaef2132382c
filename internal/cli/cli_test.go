package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/romdo/go-debounce/v2"
	"github.com/romdo/go-debounce/v2/internal/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type syncBuffer struct {
	mux sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mux.Lock()
	defer b.mux.Unlock()

	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mux.Lock()
	defer b.mux.Unlock()

	return b.buf.String()
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	err := Execute(
		append([]string{"debounce"}, args...),
		Streams{In: strings.NewReader(stdin), Out: &out, Err: &errOut},
		BuildArgs{Version: "1.2.3", Commit: "abc", Date: "today"},
	)

	return out.String(), err
}

func TestExecute_lines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "default command is trailing",
			args: []string{"--wait", "1h"},
			want: "c\n",
		},
		{
			name: "lines command",
			args: []string{"lines", "--wait", "1h"},
			want: "c\n",
		},
		{
			name: "leading and trailing",
			args: []string{"lines", "--wait", "1h", "--leading", "--trailing"},
			want: "a\nc\n",
		},
		{
			name: "leading only",
			args: []string{"lines", "--wait", "1h", "--leading"},
			want: "a\n",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := run(t, "a\nb\nc\n", tt.args...)
			require.NoError(t, err)

			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExecute_lines_emptyInput(t *testing.T) {
	t.Parallel()

	got, err := run(t, "", "lines")
	require.NoError(t, err)

	assert.Empty(t, got)
}

func TestExecute_lines_config(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "policy.yaml")
	err := os.WriteFile(
		path,
		[]byte("wait: 1h\nleading: true\ntrailing: true\nlog_level: off\n"),
		0o600,
	)
	require.NoError(t, err)

	got, err := run(t, "a\nb\nc\n", "lines", "--config", path)
	require.NoError(t, err)
	assert.Equal(t, "a\nc\n", got)

	got, err = run(
		t, "a\nb\nc\n", "lines", "--config", path, "--trailing=false",
	)
	require.NoError(t, err)
	assert.Equal(t, "a\n", got)
}

func TestExecute_lines_invalidConfig(t *testing.T) {
	t.Parallel()

	_, err := run(t, "a\n", "lines", "--wait", "1s", "--max-wait", "10ms")

	assert.ErrorIs(t, err, debounce.ErrInvalidConfig)
}

func TestExecute_version(t *testing.T) {
	t.Parallel()

	got, err := run(t, "", "version")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(got, "debounce 1.2.3 ("))
	assert.Contains(t, got, "Build: today=abc")
}

func TestExecute_watch_noCommand(t *testing.T) {
	t.Parallel()

	_, err := run(t, "", "watch", "--path", t.TempDir())

	assert.EqualError(t, err, "watch: no command given")
}

func TestCoalesceLines_maxWait(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	err := coalesceLines(
		strings.NewReader("a\nb\n"),
		&out,
		config.Policy{
			Wait:   time.Hour,
			Config: debounce.Config{MaxWait: time.Hour},
		},
		zerolog.Nop(),
	)
	require.NoError(t, err)

	assert.Equal(t, "b\n", out.String())
}

func TestCoalesceLines_zeroWait(t *testing.T) {
	t.Parallel()

	for i := 0; i < 50; i++ {
		var out syncBuffer
		err := coalesceLines(
			strings.NewReader("a\nb\nc\n"),
			&out,
			config.Policy{Wait: 0},
			zerolog.Nop(),
		)
		require.NoError(t, err)

		// Each timer may fire on its own goroutine, so only the presence
		// of the last line is fixed once coalesceLines returns.
		assert.Contains(t, out.String(), "c\n")
	}
}

func TestRunWatch(t *testing.T) {
	t.Parallel()
	if runtime.GOOS == "windows" {
		t.Skip("requires sh")
	}

	dir := t.TempDir()
	s := config.Default()
	s.Policy.Wait = 50 * time.Millisecond
	s.Watch.Paths = []string{dir}

	var out syncBuffer
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- runWatch(
			ctx,
			s,
			[]string{"sh", "-c", `echo "changed $DEBOUNCE_EVENT_PATH"`},
			Streams{Out: &out, Err: &out},
			zerolog.Nop(),
		)
	}()

	path := filepath.Join(dir, "a.txt")
	require.Eventually(t, func() bool {
		_ = os.WriteFile(path, []byte("x"), 0o600)

		return strings.Contains(out.String(), "changed "+path)
	}, 5*time.Second, 100*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("runWatch did not return after cancel")
	}
}
