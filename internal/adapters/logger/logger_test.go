package logger_adapter

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"discovery-service/internal/core/port"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		out = append(out, entry)
	}
	return out
}

func TestSlogAdapter_JSONWithFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSlogAdapter(SlogConfig{Writer: &buf, IsJSON: true, Level: slog.LevelDebug})

	scoped := logger.WithFields(port.Fields{"component": "Executor"})
	scoped.Debug("Discarding stale page", port.Fields{"offset": 20})
	scoped.Error("Directory request failed", errors.New("timeout"), nil)

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 2)
	assert.Equal(t, "Executor", entries[0]["component"])
	assert.Equal(t, float64(20), entries[0]["offset"])
	assert.Equal(t, "ERROR", entries[1]["level"])
	assert.Equal(t, "timeout", entries[1]["err"])
}

func TestSlogAdapter_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSlogAdapter(SlogConfig{Writer: &buf, IsJSON: true, Level: slog.LevelWarn})

	logger.Info("hidden", nil)
	logger.Warn("shown", nil)

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "shown", entries[0]["msg"])
}

type recordingPoster struct {
	mu    sync.Mutex
	posts []struct {
		tag  string
		data map[string]any
	}
}

func (p *recordingPoster) Post(tag string, message interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.posts = append(p.posts, struct {
		tag  string
		data map[string]any
	}{tag, map[string]any(message.(port.Fields))})
	return nil
}

func (p *recordingPoster) Close() error { return nil }

func TestFluentLoggerAdapter(t *testing.T) {
	poster := &recordingPoster{}
	adapter, err := NewFluentLoggerAdapter(poster, slog.LevelInfo)
	require.NoError(t, err)

	scoped := adapter.WithFields(port.Fields{"service_name": "discovery-service"})
	scoped.Debug("dropped", nil)
	scoped.Error("failed", errors.New("boom"), port.Fields{"view_id": "v1"})

	require.Len(t, poster.posts, 1)
	post := poster.posts[0]
	assert.Equal(t, "error", post.tag)
	assert.Equal(t, "boom", post.data["error"])
	assert.Equal(t, "discovery-service", post.data["service_name"])
	assert.Equal(t, "v1", post.data["view_id"])
	assert.Equal(t, "failed", post.data["message"])

	_, err = NewFluentLoggerAdapter(nil, nil)
	assert.Error(t, err)
}

func TestMultiLogger(t *testing.T) {
	var a, b bytes.Buffer
	multi, err := NewMultiloggerAdapter(
		NewSlogAdapter(SlogConfig{Writer: &a, IsJSON: true}),
		NewSlogAdapter(SlogConfig{Writer: &b, IsJSON: true}),
	)
	require.NoError(t, err)

	multi.WithFields(port.Fields{"use_case": "OpenView"}).Info("Use case started", nil)

	for _, buf := range []*bytes.Buffer{&a, &b} {
		entries := decodeLines(t, buf)
		require.Len(t, entries, 1)
		assert.Equal(t, "OpenView", entries[0]["use_case"])
	}

	_, err = NewMultiloggerAdapter()
	assert.Error(t, err)
	_, err = NewMultiloggerAdapter(nil, nil)
	assert.Error(t, err)
}

func TestMultiLogger_SkipsDisabledSinks(t *testing.T) {
	var buf bytes.Buffer
	stdout := NewSlogAdapter(SlogConfig{Writer: &buf, IsJSON: true})

	single, err := NewMultiloggerAdapter(stdout, nil)
	require.NoError(t, err)
	assert.Same(t, stdout, single)

	single.Warn("Page cache unavailable", port.Fields{"component": "PageCache"})
	entries := decodeLines(t, &buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "PageCache", entries[0]["component"])
}
