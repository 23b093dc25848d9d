package services

import (
	"context"
	"testing"

	"github.com/ahmetcoskunkizilkaya/community-moderation/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetStatusIdempotent(t *testing.T) {
	ctx := context.Background()
	db := testDB(t)
	svc := NewUserStatusService(db)
	user := seedUser(t, db, "member")
	actor := uuid.New()

	require.NoError(t, svc.SetStatus(ctx, user.ID, models.UserBanned, "spam", actor))
	require.NoError(t, svc.SetStatus(ctx, user.ID, models.UserBanned, "spam", actor))

	var got models.User
	require.NoError(t, db.First(&got, "id = ?", user.ID).Error)
	assert.Equal(t, models.UserBanned, got.Status)
	assert.Equal(t, "spam", got.StatusReason)
	require.NotNil(t, got.StatusChangedBy)
	assert.Equal(t, actor, *got.StatusChangedBy)

	history, err := svc.History(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, models.UserActive, history[0].FromStatus)
	assert.Equal(t, models.UserBanned, history[0].ToStatus)
	assert.Equal(t, actor, history[0].ActorID)

	require.NoError(t, svc.SetStatus(ctx, user.ID, models.UserActive, "appeal accepted", actor))
	history, err = svc.History(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, history, 2)
}

func TestSetStatusErrors(t *testing.T) {
	ctx := context.Background()
	db := testDB(t)
	svc := NewUserStatusService(db)

	err := svc.SetStatus(ctx, uuid.New(), models.UserBanned, "spam", uuid.New())
	assert.ErrorIs(t, err, ErrUserNotFound)

	user := seedUser(t, db, "member")
	err = svc.SetStatus(ctx, user.ID, "deleted", "spam", uuid.New())
	assert.ErrorIs(t, err, ErrInvalidUserStatus)
}
