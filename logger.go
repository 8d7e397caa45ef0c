package contexlog

import (
	"context"
	"io"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// defaultLoggerName is the registry name behind the package-level logging
// functions.
const defaultLoggerName = "contexlog"

var (
	// registry memoizes logger handles by name.
	//nolint:gochecknoglobals // The factory memoizes handles for the whole process.
	registry = make(map[string]*Logger)
	// registryMu guards the check-and-create step; lookups take the read lock.
	//nolint:gochecknoglobals // Companion to registry.
	registryMu sync.RWMutex
	// defaultSink is the shared stderr sink. All registered loggers write to
	// it, so named loggers aggregate on a single stream.
	//nolint:gochecknoglobals // Shared sink keeps output of all handles on one stream.
	defaultSink = zapcore.Lock(os.Stderr)
)

// Logger is a named handle around a zap logger with exactly one console
// sink. Handles are cheap to copy around and safe for concurrent use.
type Logger struct {
	// name identifies the handle in the registry.
	name string
	// level is the adjustable threshold shared with the sink core.
	level zap.AtomicLevel
	// sugar is the underlying zap logger; enrichment wraps it per call.
	sugar *zap.SugaredLogger
}

// GetLogger returns the logger registered under name, creating and
// registering it on first use. A new logger gets a single console sink on
// stderr and its threshold from the LOG_LEVEL environment variable
// (unset or unrecognized values mean InfoLevel). Repeat calls return the
// same handle unmodified, so sinks are never duplicated.
func GetLogger(name string) *Logger {
	registryMu.RLock()
	l, ok := registry[name]
	registryMu.RUnlock()

	if ok {
		return l
	}

	registryMu.Lock()
	defer registryMu.Unlock()

	// Re-check: another goroutine may have won the create race.
	if l, ok = registry[name]; ok {
		return l
	}

	l = New(name)
	registry[name] = l

	return l
}

// Default returns the logger used by the package-level logging functions.
func Default() *Logger {
	return GetLogger(defaultLoggerName)
}

// New constructs an unregistered logger with the console core. Most callers
// should use GetLogger; New exists for embedders and tests that need a
// custom sink, level, color mode or clock.
func New(name string, opts ...Option) *Logger {
	cfg := settings{
		clock: zapcore.DefaultClock,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	if !cfg.levelSet {
		cfg.level = LevelFromEnv()
	}

	var (
		out  io.Writer           = os.Stderr
		sink zapcore.WriteSyncer = defaultSink
	)

	if cfg.out != nil {
		out = cfg.out
		sink = zapcore.Lock(zapcore.AddSync(cfg.out))
	}

	level := zap.NewAtomicLevelAt(cfg.level)
	core := newConsoleCore(level, sink, cfg.colorEnabled(out))

	base := zap.New(core,
		zap.AddCaller(),
		zap.AddCallerSkip(1),
		zap.WithClock(cfg.clock),
	)
	if name != "" {
		base = base.Named(name)
	}

	return &Logger{
		name:  name,
		level: level,
		sugar: base.Sugar(),
	}
}

// Name returns the handle's registry name.
func (l *Logger) Name() string {
	return l.name
}

// Level returns the current threshold.
func (l *Logger) Level() zapcore.Level {
	return l.level.Level()
}

// SetLevel changes the threshold; it takes effect on the next log call.
func (l *Logger) SetLevel(level zapcore.Level) {
	l.level.SetLevel(level)
}

// Sync flushes the sink. Errors from syncing stderr are the caller's to
// ignore.
func (l *Logger) Sync() error {
	return l.sugar.Sync()
}

// enrich wraps the sugared logger with the fields of the calling context
// plus any call-site key-value pairs: one field per pair and the joined
// "context"/"context_str" strings. It only reads the snapshot.
func enrich(ctx context.Context, s *zap.SugaredLogger, kvs ...any) *zap.SugaredLogger {
	snap := FromContext(ctx)
	if len(kvs) > 0 {
		snap = snap.merge(kvs)
	}

	fields := contextFields(snap)
	args := make([]any, len(fields))
	for i, f := range fields {
		args[i] = f
	}

	return s.With(args...)
}

// contextFields converts a snapshot into record fields. An empty snapshot
// yields only the empty joined strings, so formatting downstream can rely on
// the reserved fields always being present.
func contextFields(s Snapshot) []zap.Field {
	if s.Len() == 0 {
		return []zap.Field{
			zap.String(contextFieldKey, ""),
			zap.String(contextAliasFieldKey, ""),
		}
	}

	joined := s.String()

	fields := make([]zap.Field, 0, s.Len()+2)
	for _, p := range s.Pairs() {
		fields = append(fields, zap.Any(p.Key, p.Value))
	}

	// The joined strings come last so they win a name collision with a user
	// pair called "context", the documented hazard of open-ended keys.
	return append(fields,
		zap.String(contextFieldKey, joined),
		zap.String(contextAliasFieldKey, joined),
	)
}

// Debug writes a debug level message enriched with the calling context.
func (l *Logger) Debug(ctx context.Context, args ...any) {
	enrich(ctx, l.sugar).Debug(args...)
}

// Debugf writes a formatted debug level message enriched with the calling context.
func (l *Logger) Debugf(ctx context.Context, format string, args ...any) {
	enrich(ctx, l.sugar).Debugf(format, args...)
}

// DebugKV writes a debug level message; the pairs join the context segment
// and the record fields for this call only.
func (l *Logger) DebugKV(ctx context.Context, message string, kvs ...any) {
	enrich(ctx, l.sugar, kvs...).Debug(message)
}

// Info writes an information level message enriched with the calling context.
func (l *Logger) Info(ctx context.Context, args ...any) {
	enrich(ctx, l.sugar).Info(args...)
}

// Infof writes a formatted information level message enriched with the calling context.
func (l *Logger) Infof(ctx context.Context, format string, args ...any) {
	enrich(ctx, l.sugar).Infof(format, args...)
}

// InfoKV writes an information level message; the pairs join the context
// segment and the record fields for this call only.
func (l *Logger) InfoKV(ctx context.Context, message string, kvs ...any) {
	enrich(ctx, l.sugar, kvs...).Info(message)
}

// Warn writes a warning level message enriched with the calling context.
func (l *Logger) Warn(ctx context.Context, args ...any) {
	enrich(ctx, l.sugar).Warn(args...)
}

// Warnf writes a formatted warning level message enriched with the calling context.
func (l *Logger) Warnf(ctx context.Context, format string, args ...any) {
	enrich(ctx, l.sugar).Warnf(format, args...)
}

// WarnKV writes a warning level message; the pairs join the context segment
// and the record fields for this call only.
func (l *Logger) WarnKV(ctx context.Context, message string, kvs ...any) {
	enrich(ctx, l.sugar, kvs...).Warn(message)
}

// Error writes an error level message enriched with the calling context.
func (l *Logger) Error(ctx context.Context, args ...any) {
	enrich(ctx, l.sugar).Error(args...)
}

// Errorf writes a formatted error level message enriched with the calling context.
func (l *Logger) Errorf(ctx context.Context, format string, args ...any) {
	enrich(ctx, l.sugar).Errorf(format, args...)
}

// ErrorKV writes an error level message; the pairs join the context segment
// and the record fields for this call only.
func (l *Logger) ErrorKV(ctx context.Context, message string, kvs ...any) {
	enrich(ctx, l.sugar, kvs...).Error(message)
}

// Critical writes a critical level message enriched with the calling
// context. The process keeps running; critical only marks severity.
func (l *Logger) Critical(ctx context.Context, args ...any) {
	enrich(ctx, l.sugar).DPanic(args...)
}

// Criticalf writes a formatted critical level message enriched with the calling context.
func (l *Logger) Criticalf(ctx context.Context, format string, args ...any) {
	enrich(ctx, l.sugar).DPanicf(format, args...)
}

// CriticalKV writes a critical level message; the pairs join the context
// segment and the record fields for this call only.
func (l *Logger) CriticalKV(ctx context.Context, message string, kvs ...any) {
	enrich(ctx, l.sugar, kvs...).DPanic(message)
}

// Debug writes a debug level message through the default logger.
func Debug(ctx context.Context, args ...any) {
	enrich(ctx, Default().sugar).Debug(args...)
}

// Debugf writes a formatted debug level message through the default logger.
func Debugf(ctx context.Context, format string, args ...any) {
	enrich(ctx, Default().sugar).Debugf(format, args...)
}

// DebugKV writes a debug level message and key-value pairs through the default logger.
func DebugKV(ctx context.Context, message string, kvs ...any) {
	enrich(ctx, Default().sugar, kvs...).Debug(message)
}

// Info writes an information level message through the default logger.
func Info(ctx context.Context, args ...any) {
	enrich(ctx, Default().sugar).Info(args...)
}

// Infof writes a formatted information level message through the default logger.
func Infof(ctx context.Context, format string, args ...any) {
	enrich(ctx, Default().sugar).Infof(format, args...)
}

// InfoKV writes an information level message and key-value pairs through the default logger.
func InfoKV(ctx context.Context, message string, kvs ...any) {
	enrich(ctx, Default().sugar, kvs...).Info(message)
}

// Warn writes a warning level message through the default logger.
func Warn(ctx context.Context, args ...any) {
	enrich(ctx, Default().sugar).Warn(args...)
}

// Warnf writes a formatted warning level message through the default logger.
func Warnf(ctx context.Context, format string, args ...any) {
	enrich(ctx, Default().sugar).Warnf(format, args...)
}

// WarnKV writes a warning level message and key-value pairs through the default logger.
func WarnKV(ctx context.Context, message string, kvs ...any) {
	enrich(ctx, Default().sugar, kvs...).Warn(message)
}

// Error writes an error level message through the default logger.
func Error(ctx context.Context, args ...any) {
	enrich(ctx, Default().sugar).Error(args...)
}

// Errorf writes a formatted error level message through the default logger.
func Errorf(ctx context.Context, format string, args ...any) {
	enrich(ctx, Default().sugar).Errorf(format, args...)
}

// ErrorKV writes an error level message and key-value pairs through the default logger.
func ErrorKV(ctx context.Context, message string, kvs ...any) {
	enrich(ctx, Default().sugar, kvs...).Error(message)
}

// Critical writes a critical level message through the default logger.
func Critical(ctx context.Context, args ...any) {
	enrich(ctx, Default().sugar).DPanic(args...)
}

// Criticalf writes a formatted critical level message through the default logger.
func Criticalf(ctx context.Context, format string, args ...any) {
	enrich(ctx, Default().sugar).DPanicf(format, args...)
}

// CriticalKV writes a critical level message and key-value pairs through the default logger.
func CriticalKV(ctx context.Context, message string, kvs ...any) {
	enrich(ctx, Default().sugar, kvs...).DPanic(message)
}
