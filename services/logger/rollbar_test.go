package logsvc

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/trezcool/eduforum/core"
)

func newObservedLogger(t *testing.T) (*RollbarLogger, *observer.ObservedLogs) {
	t.Helper()
	zcore, logs := observer.New(zapcore.DebugLevel)
	logger := NewRollbarLogger(zap.New(zcore), core.NewTestConfig())
	logger.Enable(false)
	return logger, logs
}

func TestRollbarLogger_levels(t *testing.T) {
	logger, logs := newObservedLogger(t)

	logger.Debug("debugging")
	logger.Info("starting")
	logger.Warn("careful")
	logger.Error("failed")

	entries := logs.AllUntimed()
	require.Len(t, entries, 4)
	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, zapcore.InfoLevel, entries[1].Level)
	assert.Equal(t, zapcore.WarnLevel, entries[2].Level)
	assert.Equal(t, zapcore.ErrorLevel, entries[3].Level)
	assert.Equal(t, "failed", entries[3].Message)
}

func TestRollbarLogger_fields(t *testing.T) {
	logger, logs := newObservedLogger(t)

	logger.Error(
		"inserting chat turn",
		errors.New("db down"),
		map[string]interface{}{"path": "/api/chat"},
		core.Identity{UserID: "42", Username: "amani", Role: "STUDENT"},
		core.Identity{UserID: "43"}, // ignored
		7,
	)

	entries := logs.AllUntimed()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "db down", fields["error"])
	assert.Equal(t, "/api/chat", fields["path"])
	assert.Equal(t, "42", fields["user_id"])
	assert.Equal(t, "STUDENT", fields["role"])
	assert.EqualValues(t, 7, fields["extra"])
}

func TestNewNopLogger(t *testing.T) {
	logger := NewNopLogger()
	assert.NotPanics(t, func() {
		logger.Info("nothing to see", map[string]interface{}{"a": 1})
		logger.Sync()
	})
}
