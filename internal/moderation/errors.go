package moderation

import (
	"errors"

	"github.com/ahmetcoskunkizilkaya/community-moderation/internal/models"
)

var (
	ErrUnauthorized      = errors.New("not permitted to perform this action")
	ErrInvalidTransition = errors.New("report is not in a state that accepts this action")
	ErrMissingDetail     = errors.New("missing required action detail")
	ErrValidation        = errors.New("invalid moderation request")
	ErrMutatorFailure    = errors.New("moderation side effect failed")
	ErrAlreadyResolved   = errors.New("report was already transitioned by another dispatch")
	ErrReportNotFound    = errors.New("report not found")
	ErrAuditFailure      = errors.New("failed to record moderation action")
)

// Error carries one of the sentinel kinds above together with the action
// it happened in. errors.Is matches the kind; errors.Unwrap yields the
// underlying cause (for mutator failures, the mutator's own error).
type Error struct {
	Kind   error
	Action models.ActionKind
	Detail string
	Err    error
}

func (e *Error) Error() string {
	msg := e.Kind.Error()
	if e.Action != "" {
		msg = string(e.Action) + ": " + msg
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool { return target == e.Kind }

func newError(kind error, action models.ActionKind, detail string, cause error) *Error {
	return &Error{Kind: kind, Action: action, Detail: detail, Err: cause}
}

var errorKinds = []struct {
	kind  error
	label string
}{
	{ErrUnauthorized, "unauthorized"},
	{ErrInvalidTransition, "invalid_transition"},
	{ErrMissingDetail, "missing_detail"},
	{ErrValidation, "validation"},
	{ErrMutatorFailure, "mutator_failure"},
	{ErrAlreadyResolved, "already_resolved"},
	{ErrReportNotFound, "report_not_found"},
	{ErrAuditFailure, "audit_failure"},
}

// Outcome returns a short label for err, used in metrics and logs.
func Outcome(err error) string {
	if err == nil {
		return "ok"
	}
	for _, k := range errorKinds {
		if errors.Is(err, k.kind) {
			return k.label
		}
	}
	return "internal"
}

// IsClientError reports whether err was caused by the caller's request or
// by report state rather than by a failing dependency.
func IsClientError(err error) bool {
	switch Outcome(err) {
	case "unauthorized", "invalid_transition", "missing_detail", "validation", "already_resolved", "report_not_found":
		return true
	}
	return false
}
