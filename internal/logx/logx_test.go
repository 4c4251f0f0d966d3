package logx

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	out := map[string]any{}
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &out))
	return out
}

func TestRedactsSensitiveKeys(t *testing.T) {
	t.Parallel()
	for _, key := range []string{"password", "secret_key", "webhook_secret", "smtp_password", "dsn", "Token"} {
		var buf bytes.Buffer
		New("debug", "json", &buf).Info("test", key, "hunter2")
		require.Equal(t, redacted, decodeLine(t, &buf)[key], key)
	}
}

func TestPassesOtherKeys(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	New("info", "json", &buf).Info("test", "backend", "memory")
	require.Equal(t, "memory", decodeLine(t, &buf)["backend"])
}

func TestRedactsGroupsAndWithAttrs(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	logger := New("info", "json", &buf).With("dsn", "postgres://u:p@h/db")
	logger.Info("connect", slog.Group("smtp", slog.String("smtp_password", "x"), slog.String("host", "mail")))

	line := decodeLine(t, &buf)
	require.Equal(t, redacted, line["dsn"])
	group := line["smtp"].(map[string]any)
	require.Equal(t, redacted, group["smtp_password"])
	require.Equal(t, "mail", group["host"])
}

func TestLevelFiltering(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	logger := New("warn", "text", &buf)
	logger.Info("hidden")
	require.Zero(t, buf.Len())
	logger.Warn("shown")
	require.Contains(t, buf.String(), "shown")
}

func TestParseLevel(t *testing.T) {
	t.Parallel()
	require.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	require.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	require.Equal(t, slog.LevelError, ParseLevel("error"))
	require.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}
