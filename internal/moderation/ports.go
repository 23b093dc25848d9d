package moderation

import (
	"context"

	"github.com/ahmetcoskunkizilkaya/community-moderation/internal/models"
	"github.com/google/uuid"
)

// ReportStore owns Report records. CompareAndSetStatus must be a single
// conditional write: it reports false, not an error, when the stored status
// no longer equals expected. Get returns ErrReportNotFound for unknown ids.
type ReportStore interface {
	Get(ctx context.Context, id uuid.UUID) (*models.Report, error)
	CompareAndSetStatus(ctx context.Context, id uuid.UUID, expected, next models.ReportStatus) (bool, error)
}

// AuditLedger is append-only.
type AuditLedger interface {
	Append(ctx context.Context, action *models.ModerationAction) error
}

// UserStatusMutator must treat a repeated identical SetStatus as a no-op success.
type UserStatusMutator interface {
	SetStatus(ctx context.Context, userID uuid.UUID, status models.UserStatus, reason string, actorID uuid.UUID) error
}

type ContentMutator interface {
	Remove(ctx context.Context, contentID uuid.UUID, contentType models.ContentType) error
	ToggleLock(ctx context.Context, topicID uuid.UUID) (locked bool, err error)
}

type MessagingSender interface {
	Send(ctx context.Context, userID uuid.UUID, subject, body string) error
}

// RemovalVerifier reports whether a removed topic has become invisible on
// the read path. It must return within a bounded time.
type RemovalVerifier interface {
	VerifyRemoved(ctx context.Context, topicID uuid.UUID) bool
}

// ContentProbe is the read path a Verifier polls.
type ContentProbe interface {
	TopicExists(ctx context.Context, topicID uuid.UUID) (bool, error)
}
