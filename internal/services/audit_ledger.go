package services

import (
	"context"
	"fmt"

	"github.com/ahmetcoskunkizilkaya/community-moderation/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuditLedger appends moderation actions. It has no update or delete path;
// the model hooks reject both.
type AuditLedger struct {
	db *gorm.DB
}

func NewAuditLedger(db *gorm.DB) *AuditLedger {
	return &AuditLedger{db: db}
}

func (l *AuditLedger) Append(ctx context.Context, action *models.ModerationAction) error {
	if err := l.db.WithContext(ctx).Create(action).Error; err != nil {
		return fmt.Errorf("failed to append moderation action: %w", err)
	}
	return nil
}

// ListForReport returns the ledger entries for one report, oldest first.
func (l *AuditLedger) ListForReport(ctx context.Context, reportID uuid.UUID) ([]models.ModerationAction, error) {
	var actions []models.ModerationAction
	err := l.db.WithContext(ctx).
		Where("report_id = ?", reportID).
		Order("created_at ASC").
		Find(&actions).Error
	if err != nil {
		return nil, err
	}
	return actions, nil
}
