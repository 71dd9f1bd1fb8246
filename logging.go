// FILE: lixenwraith/params/logging.go
package params

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// DefaultLogLevelPath is the tree path whose resolved value sets the parser's
// log level.
const DefaultLogLevelPath = "log_level"

// LevelCritical sits above slog.LevelError for CRITICAL/FATAL settings.
const LevelCritical = slog.Level(12)

var logLevels = []struct {
	name  string
	level slog.Level
}{
	{"DEBUG", slog.LevelDebug},
	{"INFO", slog.LevelInfo},
	{"WARNING", slog.LevelWarn},
	{"ERROR", slog.LevelError},
	{"CRITICAL", LevelCritical},
}

// logLevelChoices lists the canonical level names accepted by a log level leaf.
func logLevelChoices() []any {
	out := make([]any, len(logLevels))
	for i, l := range logLevels {
		out[i] = l.name
	}
	return out
}

// ParseLogLevel maps a level name to its slog level. Matching is case
// insensitive; WARN and FATAL are accepted as aliases.
func ParseLogLevel(name string) (slog.Level, error) {
	upper := strings.ToUpper(strings.TrimSpace(name))
	switch upper {
	case "WARN":
		return slog.LevelWarn, nil
	case "FATAL":
		return LevelCritical, nil
	}
	for _, l := range logLevels {
		if l.name == upper {
			return l.level, nil
		}
	}
	return 0, fmt.Errorf("unknown log level %q", name)
}

// levelName returns the canonical name of a level from logLevels.
func levelName(level slog.Level) string {
	for _, l := range logLevels {
		if l.level == level {
			return l.name
		}
	}
	return level.String()
}

// newLogger creates a text logger on w whose level follows levelVar. It does
// not set the global logger.
func newLogger(w io.Writer, levelVar *slog.LevelVar) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}
	handlerOpts := &slog.HandlerOptions{Level: levelVar}
	return slog.New(slog.NewTextHandler(w, handlerOpts))
}

// discardLogger is used by standalone helpers called without a logger.
func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
