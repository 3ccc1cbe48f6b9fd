package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/disaster-service/internal/database/dbtest"
	"github.com/ahmetcoskunkizilkaya/disaster-service/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMultiHandlerFansOutByLevel(t *testing.T) {
	var info, errs bytes.Buffer
	logger := slog.New(NewMultiHandler(
		slog.NewJSONHandler(&info, &slog.HandlerOptions{Level: slog.LevelInfo}),
		slog.NewJSONHandler(&errs, &slog.HandlerOptions{Level: slog.LevelError}),
	)).With("component", "test")

	logger.Info("user reconciled")
	logger.Error("identity provider down")

	assert.Contains(t, info.String(), "user reconciled")
	assert.Contains(t, info.String(), "identity provider down")
	assert.NotContains(t, errs.String(), "user reconciled")
	assert.Contains(t, errs.String(), `"component":"test"`)
}

func TestDBHandlerPersistsErrors(t *testing.T) {
	db := dbtest.New(t)
	h := NewDBHandler(db, time.Hour)
	logger := slog.New(h).With("request_id", "req-1")

	assert.False(t, h.Enabled(context.Background(), slog.LevelWarn))
	logger.Warn("ignored")
	logger.Error("reconciliation failed",
		"user", "alice",
		"action", "find_or_create",
		"error", "boom",
		"latency_ms", 12.6,
		"external_user_id", 42,
	)
	h.Stop()
	h.Stop()

	var logs []models.SystemLog
	require.NoError(t, db.Find(&logs).Error)
	require.Len(t, logs, 1)

	entry := logs[0]
	assert.Equal(t, "ERROR", entry.Level)
	assert.Equal(t, "reconciliation failed", entry.Message)
	assert.Equal(t, "req-1", entry.RequestID)
	assert.Equal(t, "alice", entry.UserName)
	assert.Equal(t, "find_or_create", entry.Action)
	assert.Equal(t, "boom", entry.Error)
	assert.Equal(t, 13, entry.LatencyMs)

	var extra map[string]any
	require.NoError(t, json.Unmarshal(entry.Extra, &extra))
	assert.EqualValues(t, 42, extra["external_user_id"])
}

func TestPurgeOlderThan(t *testing.T) {
	db := dbtest.New(t)
	now := time.Now()
	require.NoError(t, db.Create(&[]models.SystemLog{
		{ID: uuid.New(), Timestamp: now.Add(-48 * time.Hour), Level: "ERROR", Message: "old"},
		{ID: uuid.New(), Timestamp: now, Level: "ERROR", Message: "new"},
	}).Error)

	deleted, err := PurgeOlderThan(db, now.Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	var left []models.SystemLog
	require.NoError(t, db.Find(&left).Error)
	require.Len(t, left, 1)
	assert.Equal(t, "new", left[0].Message)
}
