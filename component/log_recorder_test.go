package component

import (
	"context"
	"log/slog"
	"strings"
	"sync"
)

type recordedLog struct {
	level slog.Level
	msg   string
}

// logRecorder collects every record logged through the logger it returns.
type logRecorder struct {
	mu      sync.Mutex
	records []recordedLog
}

func newRecordingLogger() (*slog.Logger, *logRecorder) {
	rec := &logRecorder{}
	return slog.New(&recordingHandler{rec: rec}), rec
}

func (r *logRecorder) has(level slog.Level, msg string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rl := range r.records {
		if rl.level == level && rl.msg == msg {
			return true
		}
	}
	return false
}

func (r *logRecorder) contains(level slog.Level, substr string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rl := range r.records {
		if rl.level == level && strings.Contains(rl.msg, substr) {
			return true
		}
	}
	return false
}

type recordingHandler struct {
	rec *logRecorder
}

func (h *recordingHandler) Enabled(context.Context, slog.Level) bool {
	return true
}

func (h *recordingHandler) Handle(_ context.Context, r slog.Record) error {
	h.rec.mu.Lock()
	defer h.rec.mu.Unlock()
	h.rec.records = append(h.rec.records, recordedLog{level: r.Level, msg: r.Message})
	return nil
}

func (h *recordingHandler) WithAttrs([]slog.Attr) slog.Handler {
	return h
}

func (h *recordingHandler) WithGroup(string) slog.Handler {
	return h
}
