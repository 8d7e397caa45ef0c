package contexlog

import (
	"os"
	"strings"

	"go.uber.org/zap/zapcore"
)

// LogLevelEnvName is the environment variable consulted when a logger is
// created without an explicit level.
const LogLevelEnvName = "LOG_LEVEL"

// Level aliases map the package's five display levels onto zapcore. CRITICAL
// rides on zapcore.DPanicLevel; development mode is never enabled, so a
// critical record logs without panicking.
const (
	DebugLevel    = zapcore.DebugLevel
	InfoLevel     = zapcore.InfoLevel
	WarningLevel  = zapcore.WarnLevel
	ErrorLevel    = zapcore.ErrorLevel
	CriticalLevel = zapcore.DPanicLevel
)

// ParseLevel converts string input to a zapcore level. Matching is
// case-insensitive and ignores surrounding space; "warn" is accepted as a
// synonym for "warning". Unknown input reports ok=false and falls back to
// InfoLevel.
func ParseLevel(s string) (zapcore.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return DebugLevel, true
	case "info":
		return InfoLevel, true
	case "warning", "warn":
		return WarningLevel, true
	case "error":
		return ErrorLevel, true
	case "critical":
		return CriticalLevel, true
	default:
		return InfoLevel, false
	}
}

// LevelFromEnv reads the LOG_LEVEL environment variable. Unset or
// unrecognized values fall back to InfoLevel.
func LevelFromEnv() zapcore.Level {
	lvl, _ := ParseLevel(os.Getenv(LogLevelEnvName))
	return lvl
}

// levelName returns the display token for a level. Everything above error
// renders as CRITICAL.
func levelName(l zapcore.Level) string {
	switch {
	case l <= zapcore.DebugLevel:
		return "DEBUG"
	case l == zapcore.InfoLevel:
		return "INFO"
	case l == zapcore.WarnLevel:
		return "WARNING"
	case l == zapcore.ErrorLevel:
		return "ERROR"
	default:
		return "CRITICAL"
	}
}
