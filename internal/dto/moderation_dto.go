package dto

import (
	"github.com/ahmetcoskunkizilkaya/community-moderation/internal/models"
	"github.com/google/uuid"
)

type CreateReportRequest struct {
	ContentType    string     `json:"content_type"`
	ContentID      *uuid.UUID `json:"content_id"`
	ReportedUserID *uuid.UUID `json:"reported_user_id,omitempty"`
	TopicID        *uuid.UUID `json:"topic_id,omitempty"`
	Reason         string     `json:"reason"`
	ContentPreview string     `json:"content_preview,omitempty"`
}

type ActionDetails struct {
	ReportedUserID *uuid.UUID `json:"reported_user_id,omitempty"`
	ContentID      *uuid.UUID `json:"content_id,omitempty"`
	ContentType    string     `json:"content_type,omitempty"`
	TopicID        *uuid.UUID `json:"topic_id,omitempty"`
}

type DispatchRequest struct {
	Action  string        `json:"action"`
	Note    string        `json:"note"`
	Details ActionDetails `json:"details"`
}

type DispatchResponse struct {
	Report               *models.Report           `json:"report"`
	Action               *models.ModerationAction `json:"action"`
	VerificationTimedOut bool                     `json:"verification_timed_out"`
	TopicLocked          *bool                    `json:"topic_locked,omitempty"`
	Warning              string                   `json:"warning,omitempty"`
}

type ReportListResponse struct {
	Reports []models.Report `json:"reports"`
	Total   int64           `json:"total"`
	Limit   int             `json:"limit"`
	Offset  int             `json:"offset"`
}
