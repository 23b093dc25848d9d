package moderation

import (
	"context"

	"github.com/ahmetcoskunkizilkaya/community-moderation/internal/models"
	"github.com/google/uuid"
)

// Details holds the entity references an action kind may need.
type Details struct {
	ReportedUserID *uuid.UUID         `json:"reported_user_id,omitempty"`
	ContentID      *uuid.UUID         `json:"content_id,omitempty"`
	ContentType    models.ContentType `json:"content_type,omitempty"`
	TopicID        *uuid.UUID         `json:"topic_id,omitempty"`
}

type field string

const (
	fieldReportedUser field = "reported_user_id"
	fieldContentID    field = "content_id"
	fieldContentType  field = "content_type"
	fieldTopicID      field = "topic_id"
)

func (d Details) has(f field) bool {
	switch f {
	case fieldReportedUser:
		return d.ReportedUserID != nil && *d.ReportedUserID != uuid.Nil
	case fieldContentID:
		return d.ContentID != nil && *d.ContentID != uuid.Nil
	case fieldContentType:
		return d.ContentType != ""
	case fieldTopicID:
		return d.TopicID != nil && *d.TopicID != uuid.Nil
	}
	return false
}

// effect is what a side effect reports back for the result and audit entry.
type effect struct {
	topicLocked          *bool
	verificationTimedOut bool
}

type applyFunc func(ctx context.Context, d *Dispatcher, req *Request) (effect, error)

// action describes one action kind: which report states accept it, which
// details it needs, its side effect and the status it leaves the report in.
type action struct {
	from     []models.ReportStatus
	to       models.ReportStatus
	requires []field
	punitive bool
	apply    applyFunc
}

var pendingOnly = []models.ReportStatus{models.ReportPending}

var actions = map[models.ActionKind]action{
	models.ActionDismiss: {
		from: pendingOnly,
		to:   models.ReportRejected,
	},
	models.ActionReopen: {
		from: []models.ReportStatus{models.ReportResolved, models.ReportRejected},
		to:   models.ReportPending,
	},
	models.ActionBanUser: {
		from:     pendingOnly,
		to:       models.ReportResolved,
		requires: []field{fieldReportedUser},
		punitive: true,
		apply:    banUser,
	},
	models.ActionWarnUser: {
		from:     pendingOnly,
		to:       models.ReportResolved,
		requires: []field{fieldReportedUser},
		punitive: true,
		apply:    warnUser,
	},
	models.ActionRemoveContent: {
		from:     pendingOnly,
		to:       models.ReportResolved,
		requires: []field{fieldContentID, fieldContentType},
		apply:    removeContent,
	},
	models.ActionLockTopic: {
		from:     pendingOnly,
		to:       models.ReportResolved,
		requires: []field{fieldTopicID},
		apply:    lockTopic,
	},
	// Flag-only kinds: the audit entry is the whole effect.
	models.ActionEditContent: {
		from:     pendingOnly,
		to:       models.ReportResolved,
		requires: []field{fieldContentID, fieldContentType},
	},
	models.ActionMoveTopic: {
		from:     pendingOnly,
		to:       models.ReportResolved,
		requires: []field{fieldTopicID},
	},
}

func (a action) accepts(status models.ReportStatus) bool {
	for _, s := range a.from {
		if s == status {
			return true
		}
	}
	return false
}

func (a action) missing(d Details) []string {
	var out []string
	for _, f := range a.requires {
		if !d.has(f) {
			out = append(out, string(f))
		}
	}
	return out
}

const warningSubject = "Warning from the moderation team"

func banUser(ctx context.Context, d *Dispatcher, req *Request) (effect, error) {
	return effect{}, d.users.SetStatus(ctx, *req.Details.ReportedUserID, models.UserBanned, req.Note, req.ActorID)
}

func warnUser(ctx context.Context, d *Dispatcher, req *Request) (effect, error) {
	return effect{}, d.messages.Send(ctx, *req.Details.ReportedUserID, warningSubject, req.Note)
}

func removeContent(ctx context.Context, d *Dispatcher, req *Request) (effect, error) {
	id := *req.Details.ContentID
	if err := d.content.Remove(ctx, id, req.Details.ContentType); err != nil {
		return effect{}, err
	}
	// Whole-thread deletions are served from a lagging read path.
	if req.Details.ContentType != models.ContentTopic {
		return effect{}, nil
	}
	return effect{verificationTimedOut: !d.verifier.VerifyRemoved(ctx, id)}, nil
}

func lockTopic(ctx context.Context, d *Dispatcher, req *Request) (effect, error) {
	locked, err := d.content.ToggleLock(ctx, *req.Details.TopicID)
	if err != nil {
		return effect{}, err
	}
	return effect{topicLocked: &locked}, nil
}
