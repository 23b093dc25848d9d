package services

import (
	"context"
	"strings"
	"testing"

	"github.com/ahmetcoskunkizilkaya/community-moderation/internal/dto"
	"github.com/ahmetcoskunkizilkaya/community-moderation/internal/models"
	"github.com/ahmetcoskunkizilkaya/community-moderation/internal/moderation"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportStoreCreateAndGet(t *testing.T) {
	ctx := context.Background()
	store := NewReportStore(testDB(t))
	reporter := uuid.New()
	topic := uuid.New()

	r, err := store.Create(ctx, reporter, &dto.CreateReportRequest{
		ContentType:    "topic",
		ContentID:      &topic,
		Reason:         "off-topic spam",
		ContentPreview: "  buy cheap watches  ",
	})
	require.NoError(t, err)
	assert.Equal(t, models.ReportPending, r.Status)
	assert.Equal(t, topic, *r.TopicID)
	assert.Equal(t, "buy cheap watches", r.ContentPreview)

	got, err := store.Get(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, r.ID, got.ID)
	assert.Equal(t, reporter, *got.ReporterID)
	assert.Equal(t, models.ContentTopic, got.ContentType)

	_, err = store.Get(ctx, uuid.New())
	assert.ErrorIs(t, err, moderation.ErrReportNotFound)
}

func TestReportStoreCreateValidation(t *testing.T) {
	store := NewReportStore(testDB(t))
	id := uuid.New()

	for name, req := range map[string]dto.CreateReportRequest{
		"bad type":     {ContentType: "user", ContentID: &id, Reason: "x"},
		"empty reason": {ContentType: "post", ContentID: &id, Reason: "   "},
		"no content":   {ContentType: "post", Reason: "x"},
		"long reason":  {ContentType: "post", ContentID: &id, Reason: strings.Repeat("ü", maxReasonLength+1)},
	} {
		_, err := store.Create(context.Background(), uuid.New(), &req)
		assert.ErrorIs(t, err, ErrInvalidReport, name)
	}

	_, err := store.Create(context.Background(), uuid.New(), &dto.CreateReportRequest{
		ContentType: "post", ContentID: &id, Reason: strings.Repeat("ü", maxReasonLength),
	})
	assert.NoError(t, err)
}

func TestReportStoreCompareAndSetStatus(t *testing.T) {
	ctx := context.Background()
	store := NewReportStore(testDB(t))
	id := uuid.New()
	r, err := store.Create(ctx, uuid.New(), &dto.CreateReportRequest{ContentType: "post", ContentID: &id, Reason: "rude"})
	require.NoError(t, err)

	ok, err := store.CompareAndSetStatus(ctx, r.ID, models.ReportPending, models.ReportResolved)
	require.NoError(t, err)
	assert.True(t, ok)

	// stale expectation loses
	ok, err = store.CompareAndSetStatus(ctx, r.ID, models.ReportPending, models.ReportRejected)
	require.NoError(t, err)
	assert.False(t, ok)

	got, err := store.Get(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ReportResolved, got.Status)
	assert.Equal(t, r.CreatedAt.Unix(), got.CreatedAt.Unix())

	ok, err = store.CompareAndSetStatus(ctx, uuid.New(), models.ReportPending, models.ReportResolved)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestReportStoreList(t *testing.T) {
	ctx := context.Background()
	store := NewReportStore(testDB(t))
	for i := 0; i < 3; i++ {
		id := uuid.New()
		_, err := store.Create(ctx, uuid.New(), &dto.CreateReportRequest{ContentType: "post", ContentID: &id, Reason: "spam"})
		require.NoError(t, err)
	}
	reports, total, err := store.List(ctx, "pending", 2, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, reports, 2)

	_, total, err = store.List(ctx, "resolved", 20, 0)
	require.NoError(t, err)
	assert.Zero(t, total)
}
