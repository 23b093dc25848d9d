package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/community-moderation/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(&models.SystemLog{}))
	return db
}

func TestPGHandlerPersistsErrorsOnly(t *testing.T) {
	db := testDB(t)
	h := newPGHandler(db, time.Hour)
	defer h.Stop()

	log := slog.New(h).With("component", "moderation")
	log.Info("dispatched", "report_id", "r-1")
	log.Error("mutator failed",
		"report_id", "r-2",
		"moderator_id", "m-1",
		"action", "ban_user",
		"error", "user not found",
		"latency_ms", 12.6,
		"outcome", "mutator_failure",
	)
	h.Flush()

	var rows []models.SystemLog
	require.NoError(t, db.Find(&rows).Error)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, "ERROR", row.Level)
	assert.Equal(t, "moderation", row.Component)
	require.NotNil(t, row.ReportID)
	assert.Equal(t, "r-2", *row.ReportID)
	require.NotNil(t, row.ModeratorID)
	assert.Equal(t, "m-1", *row.ModeratorID)
	assert.Equal(t, "ban_user", row.Action)
	assert.Equal(t, "user not found", row.Error)
	assert.Equal(t, 13, row.LatencyMs)

	var extra map[string]any
	require.NoError(t, json.Unmarshal(row.Extra, &extra))
	assert.Equal(t, "mutator_failure", extra["outcome"])
}

func TestPGHandlerStopFlushes(t *testing.T) {
	db := testDB(t)
	h := newPGHandler(db, time.Hour)

	slog.New(h).Error("boom", "latency_ms", int64(7))
	h.Stop()
	h.Stop()

	var n int64
	require.NoError(t, db.Model(&models.SystemLog{}).Count(&n).Error)
	assert.Equal(t, int64(1), n)
}

type failingHandler struct{ slog.Handler }

func (failingHandler) Handle(context.Context, slog.Record) error { return errors.New("sink down") }

func TestMultiHandlerDeliversPastFailures(t *testing.T) {
	var buf bytes.Buffer
	failing := failingHandler{NewJSONHandler(&bytes.Buffer{})}
	m := NewMultiHandler(failing, NewJSONHandler(&buf))

	r := slog.NewRecord(time.Now(), slog.LevelWarn, "stale report", 0)
	err := m.Handle(context.Background(), r)
	assert.EqualError(t, err, "sink down")
	assert.Contains(t, buf.String(), "stale report")
}

func TestMultiHandlerEnabled(t *testing.T) {
	db := testDB(t)
	pg := newPGHandler(db, time.Hour)
	defer pg.Stop()

	m := NewMultiHandler(pg)
	assert.False(t, m.Enabled(context.Background(), slog.LevelWarn))
	assert.True(t, m.Enabled(context.Background(), slog.LevelError))
}

func TestPurgeBefore(t *testing.T) {
	db := testDB(t)
	now := time.Now()
	require.NoError(t, db.Create(&[]models.SystemLog{
		{ID: uuid.New(), Timestamp: now.Add(-40 * 24 * time.Hour), Level: "ERROR"},
		{ID: uuid.New(), Timestamp: now.Add(-time.Hour), Level: "ERROR"},
	}).Error)

	deleted := purgeBefore(db, now.Add(-30*24*time.Hour))
	assert.Equal(t, int64(1), deleted)

	var n int64
	db.Model(&models.SystemLog{}).Count(&n)
	assert.Equal(t, int64(1), n)
}
