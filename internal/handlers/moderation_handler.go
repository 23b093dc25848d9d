package handlers

import (
	"errors"
	"strconv"

	"github.com/ahmetcoskunkizilkaya/community-moderation/internal/dto"
	"github.com/ahmetcoskunkizilkaya/community-moderation/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/community-moderation/internal/models"
	"github.com/ahmetcoskunkizilkaya/community-moderation/internal/moderation"
	"github.com/ahmetcoskunkizilkaya/community-moderation/internal/services"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const maxReportPage = 100

type ModerationHandler struct {
	reports    *services.ReportStore
	ledger     *services.AuditLedger
	dispatcher *moderation.Dispatcher
}

func NewModerationHandler(reports *services.ReportStore, ledger *services.AuditLedger, dispatcher *moderation.Dispatcher) *ModerationHandler {
	return &ModerationHandler{reports: reports, ledger: ledger, dispatcher: dispatcher}
}

func (h *ModerationHandler) CreateReport(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.CreateReportRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	report, err := h.reports.Create(c.UserContext(), userID, &req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidReport) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to create report",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(report)
}

func (h *ModerationHandler) ListReports(c *fiber.Ctx) error {
	status := c.Query("status")
	if status != "" && !models.ReportStatus(status).Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Unknown status filter",
		})
	}

	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))
	if limit <= 0 {
		limit = 20
	}
	if limit > maxReportPage {
		limit = maxReportPage
	}
	if offset < 0 {
		offset = 0
	}

	reports, total, err := h.reports.List(c.UserContext(), status, limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to list reports",
		})
	}

	return c.JSON(dto.ReportListResponse{
		Reports: reports,
		Total:   total,
		Limit:   limit,
		Offset:  offset,
	})
}

// Dispatch applies one moderation action to a report. The acting role comes
// from StaffRequired; the request body cannot choose it.
func (h *ModerationHandler) Dispatch(c *fiber.Ctx) error {
	reportID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid report ID",
		})
	}

	actorID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.DispatchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	res, err := h.dispatcher.Dispatch(c.UserContext(), moderation.Request{
		ReportID: reportID,
		Kind:     models.ActionKind(req.Action),
		ActorID:  actorID,
		Role:     middleware.GetStaffRole(c),
		Note:     req.Note,
		Details: moderation.Details{
			ReportedUserID: req.Details.ReportedUserID,
			ContentID:      req.Details.ContentID,
			ContentType:    models.ContentType(req.Details.ContentType),
			TopicID:        req.Details.TopicID,
		},
	})
	if err != nil {
		status := dispatchStatus(err)
		message := err.Error()
		if status >= fiber.StatusInternalServerError {
			if hub := sentryfiber.GetHubFromContext(c); hub != nil {
				hub.CaptureException(err)
			}
		}
		// Mutator failures (502) are surfaced verbatim so the caller can
		// decide whether to retry; storage errors stay internal.
		if status == fiber.StatusInternalServerError {
			message = "Failed to apply moderation action"
		}
		return c.Status(status).JSON(dto.ErrorResponse{
			Error: true, Message: message, Code: moderation.Outcome(err),
		})
	}

	resp := dto.DispatchResponse{
		Report:               res.Report,
		Action:               res.Action,
		VerificationTimedOut: res.VerificationTimedOut,
		TopicLocked:          res.TopicLocked,
	}
	if res.VerificationTimedOut {
		resp.Warning = "Topic removal is not yet visible; it may take a moment to disappear"
	}
	return c.JSON(resp)
}

func (h *ModerationHandler) ListActions(c *fiber.Ctx) error {
	reportID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid report ID",
		})
	}

	if _, err := h.reports.Get(c.UserContext(), reportID); err != nil {
		if moderation.IsReportNotFound(err) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Report not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load report",
		})
	}

	entries, err := h.ledger.ListForReport(c.UserContext(), reportID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load moderation history",
		})
	}
	return c.JSON(fiber.Map{"actions": entries})
}

func dispatchStatus(err error) int {
	switch {
	case errors.Is(err, moderation.ErrUnauthorized):
		return fiber.StatusForbidden
	case errors.Is(err, moderation.ErrReportNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, moderation.ErrInvalidTransition), errors.Is(err, moderation.ErrAlreadyResolved):
		return fiber.StatusConflict
	case errors.Is(err, moderation.ErrMissingDetail), errors.Is(err, moderation.ErrValidation):
		return fiber.StatusBadRequest
	case errors.Is(err, moderation.ErrMutatorFailure):
		return fiber.StatusBadGateway
	}
	return fiber.StatusInternalServerError
}
