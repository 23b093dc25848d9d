package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ahmetcoskunkizilkaya/community-moderation/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrInvalidUserStatus = errors.New("invalid user status")
)

// UserStatusService moves users between active, suspended and banned.
type UserStatusService struct {
	db *gorm.DB
}

func NewUserStatusService(db *gorm.DB) *UserStatusService {
	return &UserStatusService{db: db}
}

// SetStatus applies status to the user and records the change. Setting the
// status a user already has is a successful no-op and records nothing.
func (s *UserStatusService) SetStatus(ctx context.Context, userID uuid.UUID, status models.UserStatus, reason string, actorID uuid.UUID) error {
	if !status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidUserStatus, status)
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Select("id", "status").First(&user, "id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}
		if user.Status == status {
			return nil
		}

		now := time.Now()
		result := tx.Model(&models.User{}).
			Where("id = ? AND status = ?", userID, user.Status).
			Updates(map[string]interface{}{
				"status":            status,
				"status_reason":     reason,
				"status_changed_by": actorID,
				"status_changed_at": now,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			// Someone else changed the status first; fine if they landed
			// on the same value.
			var current models.User
			if err := tx.Select("id", "status").First(&current, "id = ?", userID).Error; err != nil {
				return err
			}
			if current.Status == status {
				return nil
			}
			return fmt.Errorf("user %s status changed concurrently to %s", userID, current.Status)
		}

		return tx.Create(&models.UserStatusChange{
			UserID:     userID,
			FromStatus: user.Status,
			ToStatus:   status,
			Reason:     reason,
			ActorID:    actorID,
		}).Error
	})
}

func (s *UserStatusService) History(ctx context.Context, userID uuid.UUID) ([]models.UserStatusChange, error) {
	var changes []models.UserStatusChange
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at ASC").Find(&changes).Error
	return changes, err
}
