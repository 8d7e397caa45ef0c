package contexlog

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// fixedClock is a zapcore.Clock frozen at a single instant so emitted
// timestamps are deterministic.
type fixedClock struct {
	at time.Time
}

func (c fixedClock) Now() time.Time {
	return c.at
}

func (c fixedClock) NewTicker(d time.Duration) *time.Ticker {
	return time.NewTicker(d)
}

// newTestLogger builds a logger writing into a buffer, without colors, at
// debug level, with a frozen clock.
func newTestLogger(t *testing.T, opts ...Option) (*Logger, *bytes.Buffer) {
	t.Helper()

	var buf bytes.Buffer

	base := []Option{
		WithOutput(&buf),
		WithColor(false),
		WithLevel(DebugLevel),
		WithClock(fixedClock{at: time.Date(2024, 1, 17, 10, 30, 45, 0, time.UTC)}),
	}

	return New("test", append(base, opts...)...), &buf
}

// TestLineFormat pins the exact output line: timestamp, level, call site,
// context segment in insertion order, then the message.
func TestLineFormat(t *testing.T) {
	t.Parallel()

	log, buf := newTestLogger(t)

	ctx := Set(context.Background(), "user_id", "123", "request_id", "abc")
	log.Info(ctx, "Processing user request")

	require.Regexp(
		t,
		`^\[2024-01-17 10:30:45\] \[INFO\] \[contexlog\.TestLineFormat:\d+\] `+
			`\[user_id=123 request_id=abc\] Processing user request\n$`,
		buf.String(),
	)
}

// TestEmptyContextOmitsSegment verifies that with no context set the line
// carries no bracketed context segment at all.
func TestEmptyContextOmitsSegment(t *testing.T) {
	t.Parallel()

	log, buf := newTestLogger(t)
	log.Info(context.Background(), "hello")

	line := buf.String()
	require.Regexp(t, `^\[2024-01-17 10:30:45\] \[INFO\] \[contexlog\.\w+:\d+\] hello\n$`, line)
	require.NotContains(t, line, "[]")
}

// TestLevelOrdering emits one record per level under a debug threshold and
// expects exactly five lines with the display tokens in order.
func TestLevelOrdering(t *testing.T) {
	t.Parallel()

	log, buf := newTestLogger(t)
	ctx := context.Background()

	log.Debug(ctx, "m")
	log.Info(ctx, "m")
	log.Warn(ctx, "m")
	log.Error(ctx, "m")
	log.Critical(ctx, "m")

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 5)

	for i, token := range []string{"DEBUG", "INFO", "WARNING", "ERROR", "CRITICAL"} {
		require.Contains(t, lines[i], "["+token+"]")
	}
}

// TestLevelColors verifies the ANSI sequence around the level token per
// level, and that the rest of the line stays uncolored.
func TestLevelColors(t *testing.T) {
	t.Parallel()

	log, buf := newTestLogger(t, WithColor(true))
	ctx := context.Background()

	log.Debug(ctx, "m")
	log.Info(ctx, "m")
	log.Warn(ctx, "m")
	log.Error(ctx, "m")
	log.Critical(ctx, "m")

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 5)

	require.Contains(t, lines[0], "[DEBUG]")
	require.NotContains(t, lines[0], "\x1b[")
	require.Contains(t, lines[1], "[\x1b[36mINFO\x1b[0m]")
	require.Contains(t, lines[2], "[\x1b[33mWARNING\x1b[0m]")
	require.Contains(t, lines[3], "[\x1b[31mERROR\x1b[0m]")
	require.Contains(t, lines[4], "[\x1b[31mCRITICAL\x1b[0m]")

	// Color starts at the level token, not at the timestamp.
	for _, line := range lines {
		require.True(t, strings.HasPrefix(line, "[2024-01-17 10:30:45] ["), line)
	}
}

// TestColorDisabledOnNonTerminal verifies that the automatic mode never
// colors output going to a plain buffer.
func TestColorDisabledOnNonTerminal(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	log := New("plain", WithOutput(&buf), WithLevel(InfoLevel))
	log.Info(context.Background(), "m")

	require.NotContains(t, buf.String(), "\x1b[")
}

// TestKVJoinsContextSegment verifies that call-site pairs join the context
// segment for that record only.
func TestKVJoinsContextSegment(t *testing.T) {
	t.Parallel()

	log, buf := newTestLogger(t)
	ctx := Set(context.Background(), "user_id", "123")

	log.InfoKV(ctx, "rows saved", "rows", 3)
	log.Info(ctx, "done")

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	require.Contains(t, lines[0], "[user_id=123 rows=3] rows saved")
	require.Contains(t, lines[1], "[user_id=123] done")
}

// TestReservedKeyCollision documents the accepted hazard: a context pair
// named "context" is overwritten by the joined string, last write wins.
func TestReservedKeyCollision(t *testing.T) {
	t.Parallel()

	log, buf := newTestLogger(t)
	ctx := Set(context.Background(), "context", "boom")

	log.Info(ctx, "m")
	require.Contains(t, buf.String(), "[context=boom] m")
}

// pickySink is a sink whose Sync always fails, the way fsync on stderr does
// when the process runs behind a pipe or terminal.
type pickySink struct {
	bytes.Buffer

	syncs int
}

func (s *pickySink) Sync() error {
	s.syncs++
	return errors.New("sync /dev/stderr: invalid argument")
}

// TestCriticalDoesNotSyncSink verifies that emitting critical records never
// syncs the sink, so a sink that cannot fsync produces no error noise and
// critical calls emit exactly their own lines. Flushing stays an explicit
// Logger.Sync call, which still reports the sink's error.
func TestCriticalDoesNotSyncSink(t *testing.T) {
	t.Parallel()

	sink := &pickySink{}
	log := New("test.sync", WithOutput(sink), WithColor(false), WithLevel(DebugLevel))

	log.Critical(context.Background(), "m")
	log.Error(context.Background(), "m")

	require.Zero(t, sink.syncs)
	require.Equal(t, 2, strings.Count(sink.String(), "\n"))

	require.Error(t, log.Sync())
	require.Equal(t, 1, sink.syncs)
}

// TestFormattedMessages covers the printf-style variants.
func TestFormattedMessages(t *testing.T) {
	t.Parallel()

	log, buf := newTestLogger(t)
	log.Infof(context.Background(), "user %s logged in %d times", "bob", 3)

	require.Contains(t, buf.String(), "] user bob logged in 3 times\n")
}
