package app

import (
	"fmt"
	"io"
	"log/slog"
)

// Log formats accepted by Config.LogFormat.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// logLevels maps the names accepted by Config.LogLevel to slog levels.
var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// ParseLogLevel resolves a level name. The empty name is info.
func ParseLogLevel(name string) (slog.Level, error) {
	if name == "" {
		return slog.LevelInfo, nil
	}
	level, ok := logLevels[name]
	if !ok {
		return slog.LevelInfo, fmt.Errorf("unknown log level %q: must be 'debug', 'info', 'warn', or 'error'", name)
	}
	return level, nil
}

// newLogger builds the run's logger writing to w. It never touches the
// global slog logger. Names are validated by NewConfig, so an unknown level
// falls back to info here.
func newLogger(levelName, format string, w io.Writer) *slog.Logger {
	level, _ := ParseLogLevel(levelName)
	opts := &slog.HandlerOptions{Level: level}

	if format == LogFormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
