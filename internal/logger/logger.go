package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

var (
	// Log is the global logger instance
	Log zerolog.Logger
)

func init() {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	Log = New(os.Stdout, "info", "console")
}

// New builds a logger writing to w. format is "console" (human readable)
// or "json"; anything else falls back to json.
func New(w io.Writer, level, format string) zerolog.Logger {
	out := w
	if strings.EqualFold(format, "console") || strings.EqualFold(format, "pretty") {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: "2006-01-02 15:04:05"}
	}
	return zerolog.New(out).
		Level(ParseLevel(level)).
		With().
		Timestamp().
		Logger()
}

// Init replaces the global logger.
func Init(level, format string) {
	Log = New(os.Stdout, level, format)
	zerolog.SetGlobalLevel(ParseLevel(level))
}

// SetLevel sets the log level
func SetLevel(levelStr string) {
	level := ParseLevel(levelStr)
	if _, err := zerolog.ParseLevel(strings.ToLower(levelStr)); err != nil || levelStr == "" {
		Log.Warn().Str("level", levelStr).Msg("invalid log level, defaulting to info")
	}
	zerolog.SetGlobalLevel(level)
	Log = Log.Level(level)
}

// ParseLevel maps a level name to zerolog, defaulting to info.
func ParseLevel(levelStr string) zerolog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	case "disabled", "off":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}
