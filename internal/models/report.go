package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReportStatus string

const (
	ReportPending  ReportStatus = "pending"
	ReportResolved ReportStatus = "resolved"
	ReportRejected ReportStatus = "rejected"
)

func (s ReportStatus) Valid() bool {
	return s == ReportPending || s == ReportResolved || s == ReportRejected
}

type ContentType string

const (
	ContentPost  ContentType = "post"
	ContentTopic ContentType = "topic"
)

func (t ContentType) Valid() bool {
	return t == ContentPost || t == ContentTopic
}

// Report is a staff-reviewable flag raised against a forum post or topic.
// Reports are never deleted; Status is only changed through a guarded write.
type Report struct {
	ID             uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	ContentType    ContentType  `gorm:"not null;size:20" json:"content_type"`
	ContentID      *uuid.UUID   `gorm:"type:uuid;index" json:"content_id,omitempty"`
	ReportedUserID *uuid.UUID   `gorm:"type:uuid;index" json:"reported_user_id,omitempty"`
	ReporterID     *uuid.UUID   `gorm:"type:uuid;index" json:"reporter_id,omitempty"`
	TopicID        *uuid.UUID   `gorm:"type:uuid;index" json:"topic_id,omitempty"`
	Reason         string       `gorm:"not null;size:500" json:"reason"`
	ContentPreview string       `gorm:"size:500" json:"content_preview"`
	Status         ReportStatus `gorm:"not null;default:'pending';size:20;index" json:"status"`
	CreatedAt      time.Time    `gorm:"<-:create" json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

func (r *Report) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
