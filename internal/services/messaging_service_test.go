package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendWarning(t *testing.T) {
	ctx := context.Background()
	db := testDB(t)
	svc := NewMessagingService(db)
	user := seedUser(t, db, "member")

	require.NoError(t, svc.Send(ctx, user.ID, "Warning from the moderation team", "keep it civil"))

	inbox, err := svc.Inbox(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, inbox, 1)
	assert.Equal(t, "keep it civil", inbox[0].Body)
	assert.Nil(t, inbox[0].SenderID)

	assert.ErrorIs(t, svc.Send(ctx, uuid.New(), "x", "y"), ErrUserNotFound)
}
