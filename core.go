package contexlog

import (
	"fmt"
	"strings"

	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

// ANSI sequences applied to the level token. Debug keeps the terminal
// default color.
const (
	colorRed    = "\x1b[31m"
	colorYellow = "\x1b[33m"
	colorCyan   = "\x1b[36m"
	colorReset  = "\x1b[0m"
)

// timeLayout is the fixed timestamp layout of every emitted line.
const timeLayout = "2006-01-02 15:04:05"

// Reserved field names carrying the pre-joined context string. Records also
// carry each context pair as an individual field; a user pair named like a
// reserved field is overwritten by the joined string, a known hazard of
// open-ended context keys.
const (
	contextFieldKey      = "context"
	contextAliasFieldKey = "context_str"
)

//nolint:gochecknoglobals // Shared buffer pool, same as zap's own encoders.
var linePool = buffer.NewPool()

// consoleCore is a zapcore.Core rendering each entry as a single
// "[time] [LEVEL] [caller] [context] message" line. Only the joined context
// string is displayed; individual fields stay on the record for other cores.
type consoleCore struct {
	zapcore.LevelEnabler

	// out receives the finished lines; it must serialize concurrent writes.
	out zapcore.WriteSyncer
	// color toggles ANSI sequences around the level token.
	color bool
	// fields accumulates structured context added through With.
	fields []zapcore.Field
}

// newConsoleCore builds the single sink core used by every Logger.
func newConsoleCore(enab zapcore.LevelEnabler, out zapcore.WriteSyncer, color bool) zapcore.Core {
	return &consoleCore{
		LevelEnabler: enab,
		out:          out,
		color:        color,
	}
}

// With returns a child core carrying the additional fields.
//
//nolint:ireturn,nolintlint // Returning zapcore.Core is intended for zap integration.
func (c *consoleCore) With(fields []zapcore.Field) zapcore.Core {
	clone := *c
	clone.fields = make([]zapcore.Field, 0, len(c.fields)+len(fields))
	clone.fields = append(clone.fields, c.fields...)
	clone.fields = append(clone.fields, fields...)

	return &clone
}

// Check adds the core to the checked entry when the entry level is enabled.
//
//nolint:gocritic // AddCore requires ent to be passed by value.
func (c *consoleCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}

	return ce
}

// Write renders the entry to the sink. Rendering never fails: a missing
// caller falls back to the logger name and values are stringified with fmt.
// Write never syncs the sink: fsync fails on pipes and terminals, and the
// error would come back out of zap as a spurious stderr line. Callers that
// need a flush use Logger.Sync.
//
//nolint:gocritic // zapcore.Core.Write takes the entry by value.
func (c *consoleCore) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	line := linePool.Get()
	defer line.Free()

	line.AppendByte('[')
	line.AppendTime(ent.Time, timeLayout)
	line.AppendString("] [")

	if color := c.levelColor(ent.Level); color != "" {
		line.AppendString(color)
		line.AppendString(levelName(ent.Level))
		line.AppendString(colorReset)
	} else {
		line.AppendString(levelName(ent.Level))
	}

	line.AppendString("] [")
	line.AppendString(callSite(ent))
	line.AppendString("] ")

	if joined := contextString(c.fields, fields); joined != "" {
		line.AppendByte('[')
		line.AppendString(joined)
		line.AppendString("] ")
	}

	line.AppendString(ent.Message)
	line.AppendString(zapcore.DefaultLineEnding)

	_, err := c.out.Write(line.Bytes())

	return err
}

// Sync flushes the sink.
func (c *consoleCore) Sync() error {
	return c.out.Sync()
}

// levelColor returns the ANSI sequence for a level, or "" when coloring is
// off or the level renders uncolored.
func (c *consoleCore) levelColor(l zapcore.Level) string {
	if !c.color {
		return ""
	}

	switch {
	case l >= zapcore.ErrorLevel:
		return colorRed
	case l == zapcore.WarnLevel:
		return colorYellow
	case l == zapcore.InfoLevel:
		return colorCyan
	default:
		return ""
	}
}

// contextString returns the pre-joined context carried by the reserved
// "context" field. The last occurrence wins, matching the order in which
// enrichment attaches fields.
func contextString(accumulated, call []zapcore.Field) string {
	joined := ""
	for _, fs := range [][]zapcore.Field{accumulated, call} {
		for _, f := range fs {
			if f.Key == contextFieldKey && f.Type == zapcore.StringType {
				joined = f.String
			}
		}
	}

	return joined
}

// callSite formats the entry caller as package.Function:line. When the
// caller is unknown it falls back to the logger name, then to a fixed
// placeholder, so formatting cannot fail.
//
//nolint:gocritic // The entry is passed by value throughout the core.
func callSite(ent zapcore.Entry) string {
	if !ent.Caller.Defined {
		if ent.LoggerName != "" {
			return ent.LoggerName
		}

		return "unknown"
	}

	fn := ent.Caller.Function
	if fn == "" {
		return ent.Caller.TrimmedPath()
	}

	if i := strings.LastIndexByte(fn, '/'); i >= 0 {
		fn = fn[i+1:]
	}

	return fmt.Sprintf("%s:%d", fn, ent.Caller.Line)
}
