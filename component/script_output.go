package component

import (
	"bytes"
	"context"
	"log/slog"
	"sync"
)

// lineLogger logs every complete line written to it and keeps the whole
// output for the summary printed once the process exits.
type lineLogger struct {
	mu      sync.Mutex
	ctx     context.Context
	logger  *slog.Logger
	stream  string
	pending []byte
	all     bytes.Buffer
}

func newLineLogger(ctx context.Context, logger *slog.Logger, stream string) *lineLogger {
	return &lineLogger{ctx: ctx, logger: logger, stream: stream}
}

func (w *lineLogger) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.all.Write(p)
	w.pending = append(w.pending, p...)
	for {
		i := bytes.IndexByte(w.pending, '\n')
		if i < 0 {
			break
		}
		w.emit(w.pending[:i])
		w.pending = w.pending[i+1:]
	}
	return len(p), nil
}

// Flush logs a trailing line that has no newline.
func (w *lineLogger) Flush() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.pending) > 0 {
		w.emit(w.pending)
		w.pending = nil
	}
}

func (w *lineLogger) emit(line []byte) {
	w.logger.DebugContext(w.ctx, string(bytes.TrimRight(line, "\r")), slog.String("stream", w.stream))
}

func (w *lineLogger) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.all.Len()
}

func (w *lineLogger) String() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.all.String()
}
