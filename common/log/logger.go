package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	slogmulti "github.com/samber/slog-multi"
)

// ParseLevel falls back to INFO on an empty or unknown level.
func ParseLevel(lvl string) (slog.Level, error) {
	level := slog.LevelInfo
	if len(lvl) == 0 {
		return level, nil
	}
	if err := level.UnmarshalText([]byte(lvl)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q: %w", lvl, err)
	}
	return level, nil
}

func NewHandler(w io.Writer, format string, level slog.Leveler) slog.Handler {
	opt := &slog.HandlerOptions{AddSource: false, Level: level}
	switch strings.ToLower(format) {
	case "json":
		return slog.NewJSONHandler(w, opt)
	default:
		return slog.NewTextHandler(w, opt)
	}
}

// NewLogger writes every record to all of writers, stamping the run id
// found in the record context.
func NewLogger(format string, level slog.Leveler, writers ...io.Writer) *slog.Logger {
	if len(writers) == 0 {
		writers = []io.Writer{os.Stdout}
	}
	handlers := make([]slog.Handler, 0, len(writers))
	for _, w := range writers {
		handlers = append(handlers, NewHandler(w, format, level))
	}
	var handler slog.Handler
	if len(handlers) == 1 {
		handler = handlers[0]
	} else {
		handler = slogmulti.Fanout(handlers...)
	}
	return slog.New(&ContextHandler{Handler: handler})
}

// Setup installs the default logger. When logFile is not empty, records are
// also appended to that file; the returned func closes it.
func Setup(lvl, format, logFile string) (func() error, error) {
	level, err := ParseLevel(lvl)
	if err != nil {
		fmt.Println("input invalid log level, use default log level INFO")
	}

	writers := []io.Writer{os.Stdout}
	closer := func() error { return nil }
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return closer, fmt.Errorf("open log file %s: %w", logFile, err)
		}
		writers = append(writers, f)
		closer = f.Close
	}

	slog.SetDefault(NewLogger(format, level, writers...))
	return closer, nil
}
