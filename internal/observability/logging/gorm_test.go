package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Jpcostan/rise-and-move-ios/internal/observability/logging"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()

	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	logging.Setup(&buf, "debug")

	return &buf
}

func events(t *testing.T, buf *bytes.Buffer) []string {
	t.Helper()

	var out []string

	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}

		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &entry))

		if ev, ok := entry["event"].(string); ok {
			out = append(out, ev)
		}
	}

	return out
}

func TestGormLoggerTrace(t *testing.T) {
	query := func() (string, int64) {
		return "SELECT * FROM kv_slots", 1
	}

	tests := []struct {
		name     string
		level    slog.Level
		begin    time.Time
		err      error
		expected []string
	}{
		{
			name:     "query error",
			level:    slog.LevelInfo,
			begin:    time.Now(),
			err:      errors.New("disk I/O error"),
			expected: []string{"slot.db.query.fail"},
		},
		{
			name:     "record not found is not an error",
			level:    slog.LevelInfo,
			begin:    time.Now(),
			err:      gorm.ErrRecordNotFound,
			expected: nil,
		},
		{
			name:     "slow query",
			level:    slog.LevelInfo,
			begin:    time.Now().Add(-time.Second),
			expected: []string{"slot.db.query.slow"},
		},
		{
			name:     "debug traces every query",
			level:    slog.LevelDebug,
			begin:    time.Now(),
			expected: []string{"slot.db.query"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := captureLogs(t)
			l := logging.NewGormLogger(200*time.Millisecond, tt.level)

			l.Trace(context.Background(), tt.begin, query, tt.err)

			assert.Equal(t, tt.expected, events(t, buf))
		})
	}
}
