package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/ahmetcoskunkizilkaya/community-moderation/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrContentNotFound = errors.New("content not found")

// ContentService applies moderation commands to forum posts and topics.
// Writes go to the primary; TopicExists reads from the read path, which
// may lag behind the primary.
type ContentService struct {
	db   *gorm.DB
	read *gorm.DB
}

// NewContentService uses read for existence probes; a nil read falls back to db.
func NewContentService(db, read *gorm.DB) *ContentService {
	if read == nil {
		read = db
	}
	return &ContentService{db: db, read: read}
}

// Remove deletes a post, or a topic together with all of its posts.
func (s *ContentService) Remove(ctx context.Context, contentID uuid.UUID, contentType models.ContentType) error {
	switch contentType {
	case models.ContentPost:
		result := s.db.WithContext(ctx).Where("id = ?", contentID).Delete(&models.Post{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("%w: post %s", ErrContentNotFound, contentID)
		}
		return nil
	case models.ContentTopic:
		return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("topic_id = ?", contentID).Delete(&models.Post{}).Error; err != nil {
				return err
			}
			result := tx.Where("id = ?", contentID).Delete(&models.Topic{})
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return fmt.Errorf("%w: topic %s", ErrContentNotFound, contentID)
			}
			return nil
		})
	}
	return fmt.Errorf("unsupported content type %q", contentType)
}

// ToggleLock flips a topic's lock and returns the new state.
func (s *ContentService) ToggleLock(ctx context.Context, topicID uuid.UUID) (bool, error) {
	var locked bool
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var topic models.Topic
		if err := tx.Select("id", "locked").First(&topic, "id = ?", topicID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: topic %s", ErrContentNotFound, topicID)
			}
			return err
		}

		locked = !topic.Locked
		result := tx.Model(&models.Topic{}).
			Where("id = ? AND locked = ?", topicID, topic.Locked).
			Update("locked", locked)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("topic %s lock changed concurrently", topicID)
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return locked, nil
}

func (s *ContentService) TopicExists(ctx context.Context, topicID uuid.UUID) (bool, error) {
	var n int64
	err := s.read.WithContext(ctx).Model(&models.Topic{}).Where("id = ?", topicID).Count(&n).Error
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
