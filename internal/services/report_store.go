package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ahmetcoskunkizilkaya/community-moderation/internal/dto"
	"github.com/ahmetcoskunkizilkaya/community-moderation/internal/models"
	"github.com/ahmetcoskunkizilkaya/community-moderation/internal/moderation"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrInvalidReport = errors.New("invalid report")

// maxReasonLength matches the reports.reason column size.
const maxReasonLength = 500

// ReportStore persists reports. Status changes only go through
// CompareAndSetStatus.
type ReportStore struct {
	db *gorm.DB
}

func NewReportStore(db *gorm.DB) *ReportStore {
	return &ReportStore{db: db}
}

// Create files a new pending report on behalf of reporterID.
func (s *ReportStore) Create(ctx context.Context, reporterID uuid.UUID, req *dto.CreateReportRequest) (*models.Report, error) {
	contentType := models.ContentType(req.ContentType)
	if !contentType.Valid() {
		return nil, fmt.Errorf("%w: content_type must be post or topic", ErrInvalidReport)
	}
	if strings.TrimSpace(req.Reason) == "" {
		return nil, fmt.Errorf("%w: reason is required", ErrInvalidReport)
	}
	if utf8.RuneCountInString(req.Reason) > maxReasonLength {
		return nil, fmt.Errorf("%w: reason must be at most %d characters", ErrInvalidReport, maxReasonLength)
	}
	if req.ContentID == nil || *req.ContentID == uuid.Nil {
		return nil, fmt.Errorf("%w: content_id is required", ErrInvalidReport)
	}

	report := models.Report{
		ID:             uuid.New(),
		ContentType:    contentType,
		ContentID:      req.ContentID,
		ReportedUserID: req.ReportedUserID,
		ReporterID:     &reporterID,
		TopicID:        req.TopicID,
		Reason:         req.Reason,
		ContentPreview: preview(req.ContentPreview, 280),
		Status:         models.ReportPending,
	}
	if contentType == models.ContentTopic && report.TopicID == nil {
		report.TopicID = req.ContentID
	}

	if err := s.db.WithContext(ctx).Create(&report).Error; err != nil {
		return nil, fmt.Errorf("failed to create report: %w", err)
	}
	return &report, nil
}

func (s *ReportStore) Get(ctx context.Context, id uuid.UUID) (*models.Report, error) {
	var report models.Report
	err := s.db.WithContext(ctx).First(&report, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, moderation.ErrReportNotFound
	}
	if err != nil {
		return nil, err
	}
	return &report, nil
}

// CompareAndSetStatus moves the report from expected to next in a single
// conditional UPDATE. It returns false when the stored status differs.
func (s *ReportStore) CompareAndSetStatus(ctx context.Context, id uuid.UUID, expected, next models.ReportStatus) (bool, error) {
	result := s.db.WithContext(ctx).
		Model(&models.Report{}).
		Where("id = ? AND status = ?", id, expected).
		Update("status", next)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (s *ReportStore) List(ctx context.Context, status string, limit, offset int) ([]models.Report, int64, error) {
	var reports []models.Report
	var total int64

	query := s.db.WithContext(ctx).Model(&models.Report{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&reports).Error; err != nil {
		return nil, 0, err
	}
	return reports, total, nil
}

func preview(s string, max int) string {
	s = strings.TrimSpace(s)
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
