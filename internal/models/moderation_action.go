package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ActionKind string

const (
	ActionDismiss       ActionKind = "dismiss"
	ActionReopen        ActionKind = "reopen"
	ActionBanUser       ActionKind = "ban_user"
	ActionWarnUser      ActionKind = "warn_user"
	ActionRemoveContent ActionKind = "remove_content"
	ActionLockTopic     ActionKind = "lock_topic"
	ActionEditContent   ActionKind = "edit_content"
	ActionMoveTopic     ActionKind = "move_topic"
)

var ErrAppendOnly = errors.New("moderation actions are append-only")

// ModerationAction is one audit ledger entry. Rows are written once and
// never updated or deleted.
type ModerationAction struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	ReportID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"report_id"`
	ActionKind  ActionKind     `gorm:"not null;size:30;index" json:"action"`
	ModeratorID uuid.UUID      `gorm:"type:uuid;not null;index" json:"moderator_id"`
	Note        string         `gorm:"type:text" json:"note"`
	Details     datatypes.JSON `json:"details,omitempty"`
	CreatedAt   time.Time      `gorm:"<-:create;index" json:"created_at"`
	Report      Report         `gorm:"foreignKey:ReportID" json:"-"`
}

func (a *ModerationAction) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

func (a *ModerationAction) BeforeUpdate(tx *gorm.DB) error {
	return ErrAppendOnly
}

func (a *ModerationAction) BeforeDelete(tx *gorm.DB) error {
	return ErrAppendOnly
}
