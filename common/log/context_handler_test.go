package log

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestContextHandler_Handle(t *testing.T) {
	var buf bytes.Buffer
	jsonHandler := slog.NewJSONHandler(&buf, &slog.HandlerOptions{
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		},
	})

	h := &ContextHandler{Handler: jsonHandler}
	logger := slog.New(h).With("component", "publish")

	ctx := WithRunID(context.Background(), "run-12345")
	logger.ErrorContext(ctx, "test message")

	var result map[string]interface{}
	err := json.Unmarshal(buf.Bytes(), &result)
	require.NoError(t, err)

	require.Equal(t, "test message", result["msg"])
	require.Equal(t, "run-12345", result["run_id"])
	require.Equal(t, "publish", result["component"])

	buf.Reset()
	logger.Info("no run")
	require.NotContains(t, buf.String(), "run_id")
}

func TestNewLogger_Fanout(t *testing.T) {
	var a, b bytes.Buffer
	logger := NewLogger("text", slog.LevelInfo, &a, &b)

	logger.DebugContext(context.Background(), "hidden")
	logger.InfoContext(WithRunID(context.Background(), "r1"), "visible")

	for _, out := range []string{a.String(), b.String()} {
		require.NotContains(t, out, "hidden")
		require.Contains(t, out, "msg=visible")
		require.Contains(t, out, "run_id=r1")
	}
}

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("debug")
	require.NoError(t, err)
	require.Equal(t, slog.LevelDebug, lvl)

	lvl, err = ParseLevel("")
	require.NoError(t, err)
	require.Equal(t, slog.LevelInfo, lvl)

	lvl, err = ParseLevel("loud")
	require.Error(t, err)
	require.Equal(t, slog.LevelInfo, lvl)
}

func TestSetup_LogFile(t *testing.T) {
	old := slog.Default()
	defer slog.SetDefault(old)

	path := filepath.Join(t.TempDir(), "release.log")
	closer, err := Setup("info", "json", path)
	require.NoError(t, err)

	slog.Info("to file", slog.String("tag", "v1.0.0"))
	require.NoError(t, closer())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, strings.Contains(string(data), `"tag":"v1.0.0"`))
}
