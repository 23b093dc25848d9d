package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/ahmetcoskunkizilkaya/community-moderation/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MessagingService delivers system messages to a user's inbox.
type MessagingService struct {
	db *gorm.DB
}

func NewMessagingService(db *gorm.DB) *MessagingService {
	return &MessagingService{db: db}
}

func (s *MessagingService) Send(ctx context.Context, userID uuid.UUID, subject, body string) error {
	var recipient models.User
	if err := s.db.WithContext(ctx).Select("id").First(&recipient, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	msg := models.Message{
		RecipientID: userID,
		Subject:     subject,
		Body:        body,
	}
	if err := s.db.WithContext(ctx).Create(&msg).Error; err != nil {
		return fmt.Errorf("failed to deliver message: %w", err)
	}
	return nil
}

func (s *MessagingService) Inbox(ctx context.Context, userID uuid.UUID) ([]models.Message, error) {
	var msgs []models.Message
	err := s.db.WithContext(ctx).Where("recipient_id = ?", userID).Order("created_at DESC").Find(&msgs).Error
	return msgs, err
}
