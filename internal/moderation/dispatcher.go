package moderation

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/community-moderation/internal/models"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Request is one moderation action against one report. The acting role is
// passed explicitly; the dispatcher never reads session state.
type Request struct {
	ReportID uuid.UUID
	Kind     models.ActionKind
	ActorID  uuid.UUID
	Role     Role
	Note     string
	Details  Details
}

type Result struct {
	Report *models.Report
	Action *models.ModerationAction
	// VerificationTimedOut is set when a removed topic was still visible on
	// the read path after every verification attempt. The dispatch itself
	// still succeeded.
	VerificationTimedOut bool
	// TopicLocked is the lock state after a lock_topic toggle.
	TopicLocked *bool
}

// Deps are the Dispatcher's collaborators. Gate defaults to DefaultPolicy;
// a nil Verifier skips removal verification.
type Deps struct {
	Gate     Gate
	Reports  ReportStore
	Ledger   AuditLedger
	Users    UserStatusMutator
	Content  ContentMutator
	Messages MessagingSender
	Verifier RemovalVerifier
	Logger   *slog.Logger
}

// Dispatcher is stateless apart from its collaborators and may be shared
// by any number of concurrent callers.
type Dispatcher struct {
	gate     Gate
	reports  ReportStore
	ledger   AuditLedger
	users    UserStatusMutator
	content  ContentMutator
	messages MessagingSender
	verifier RemovalVerifier
	logger   *slog.Logger
	now      func() time.Time
}

func NewDispatcher(deps Deps) *Dispatcher {
	d := &Dispatcher{
		gate:     deps.Gate,
		reports:  deps.Reports,
		ledger:   deps.Ledger,
		users:    deps.Users,
		content:  deps.Content,
		messages: deps.Messages,
		verifier: deps.Verifier,
		logger:   deps.Logger,
		now:      time.Now,
	}
	if d.gate == nil {
		d.gate = DefaultPolicy()
	}
	if d.verifier == nil {
		d.verifier = skipVerification{}
	}
	if d.logger == nil {
		d.logger = slog.Default()
	}
	d.logger = d.logger.With("component", "moderation")
	return d
}

type skipVerification struct{}

func (skipVerification) VerifyRemoved(context.Context, uuid.UUID) bool { return true }

// Dispatch validates req, runs the side effect for its kind, appends the
// audit entry and moves the report to its next status, in that order.
// Every failure stops before the next step; nothing is retried here.
func (d *Dispatcher) Dispatch(ctx context.Context, req Request) (*Result, error) {
	start := d.now()
	res, err := d.dispatch(ctx, &req)

	outcome := Outcome(err)
	kind := kindLabel(req.Kind)
	dispatchCount.WithLabelValues(kind, outcome).Inc()
	dispatchDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())

	attrs := []any{
		"report_id", req.ReportID.String(),
		"action", kind,
		"moderator_id", req.ActorID.String(),
		"outcome", outcome,
		"latency_ms", float64(time.Since(start).Milliseconds()),
	}
	switch {
	case err == nil:
		d.logger.Info("report dispatched", append(attrs, "status", string(res.Report.Status))...)
	case IsClientError(err):
		d.logger.Warn("report dispatch rejected", append(attrs, "error", err.Error())...)
	default:
		d.logger.Error("report dispatch failed", append(attrs, "error", err.Error())...)
	}
	return res, err
}

// kindLabel keeps caller-supplied kinds out of metric labels; only the
// kinds in the action table get their own series.
func kindLabel(kind models.ActionKind) string {
	if _, ok := actions[kind]; !ok {
		return unknownKindLabel
	}
	return string(kind)
}

func (d *Dispatcher) dispatch(ctx context.Context, req *Request) (*Result, error) {
	act, ok := actions[req.Kind]
	if !ok {
		return nil, newError(ErrValidation, req.Kind, "unknown action kind", nil)
	}
	if !d.gate.CanPerform(req.Role, req.Kind) {
		return nil, newError(ErrUnauthorized, req.Kind, fmt.Sprintf("role %q", req.Role), nil)
	}

	report, err := d.reports.Get(ctx, req.ReportID)
	if err != nil {
		if IsReportNotFound(err) {
			return nil, newError(ErrReportNotFound, req.Kind, req.ReportID.String(), nil)
		}
		return nil, fmt.Errorf("%s: load report: %w", req.Kind, err)
	}
	if !act.accepts(report.Status) {
		return nil, newError(ErrInvalidTransition, req.Kind, fmt.Sprintf("report is %s", report.Status), nil)
	}

	if missing := act.missing(req.Details); len(missing) > 0 {
		return nil, newError(ErrMissingDetail, req.Kind, strings.Join(missing, ", "), nil)
	}
	if req.Details.ContentType != "" && !req.Details.ContentType.Valid() {
		return nil, newError(ErrValidation, req.Kind, fmt.Sprintf("unknown content type %q", req.Details.ContentType), nil)
	}
	if act.punitive && strings.TrimSpace(req.Note) == "" {
		return nil, newError(ErrValidation, req.Kind, "a note is required for punitive actions", nil)
	}

	var eff effect
	if act.apply != nil {
		eff, err = act.apply(ctx, d, req)
		if err != nil {
			return nil, newError(ErrMutatorFailure, req.Kind, "", err)
		}
	}

	entry := &models.ModerationAction{
		ID:          uuid.New(),
		ReportID:    report.ID,
		ActionKind:  req.Kind,
		ModeratorID: req.ActorID,
		Note:        req.Note,
		Details:     auditDetails(req, report.Status, act.to, eff),
		CreatedAt:   d.now(),
	}
	if err := d.ledger.Append(ctx, entry); err != nil {
		return nil, newError(ErrAuditFailure, req.Kind, "", err)
	}

	swapped, err := d.reports.CompareAndSetStatus(ctx, report.ID, report.Status, act.to)
	if err != nil {
		return nil, fmt.Errorf("%s: update report status: %w", req.Kind, err)
	}
	if !swapped {
		return nil, newError(ErrAlreadyResolved, req.Kind, report.ID.String(), nil)
	}

	report.Status = act.to
	return &Result{
		Report:               report,
		Action:               entry,
		VerificationTimedOut: eff.verificationTimedOut,
		TopicLocked:          eff.topicLocked,
	}, nil
}

// IsReportNotFound matches ErrReportNotFound through any wrapping.
func IsReportNotFound(err error) bool {
	return Outcome(err) == "report_not_found"
}

type auditSnapshot struct {
	Role                 Role                `json:"role"`
	FromStatus           models.ReportStatus `json:"from_status"`
	ToStatus             models.ReportStatus `json:"to_status"`
	ReportedUserID       *uuid.UUID          `json:"reported_user_id,omitempty"`
	ContentID            *uuid.UUID          `json:"content_id,omitempty"`
	ContentType          models.ContentType  `json:"content_type,omitempty"`
	TopicID              *uuid.UUID          `json:"topic_id,omitempty"`
	TopicLocked          *bool               `json:"topic_locked,omitempty"`
	VerificationTimedOut bool                `json:"verification_timed_out,omitempty"`
}

func auditDetails(req *Request, from, to models.ReportStatus, eff effect) datatypes.JSON {
	b, err := json.Marshal(auditSnapshot{
		Role:                 req.Role,
		FromStatus:           from,
		ToStatus:             to,
		ReportedUserID:       req.Details.ReportedUserID,
		ContentID:            req.Details.ContentID,
		ContentType:          req.Details.ContentType,
		TopicID:              req.Details.TopicID,
		TopicLocked:          eff.topicLocked,
		VerificationTimedOut: eff.verificationTimedOut,
	})
	if err != nil {
		return nil
	}
	return datatypes.JSON(b)
}
