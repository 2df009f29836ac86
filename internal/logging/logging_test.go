package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestContextRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(slog.NewJSONHandler(&buf, nil)).With("component", "test")

	ctx := IntoContext(context.Background(), l)
	require.Same(t, l, FromContext(ctx))

	FromContext(ctx).Error("kafka publish error", "topic", "user_events")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "kafka publish error", entry["msg"])
	require.Equal(t, "test", entry["component"])
	require.Equal(t, "user_events", entry["topic"])
}

func TestFromContextDefault(t *testing.T) {
	require.Same(t, slog.Default(), FromContext(context.Background()))
}

func TestNewLevels(t *testing.T) {
	require.NotNil(t, New("debug"))
	require.NotNil(t, New("warn"))
	require.NotNil(t, New("error"))
	require.NotNil(t, New(""))
}
