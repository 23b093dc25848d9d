package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserStatus string

const (
	UserActive    UserStatus = "active"
	UserSuspended UserStatus = "suspended"
	UserBanned    UserStatus = "banned"
)

func (s UserStatus) Valid() bool {
	switch s {
	case UserActive, UserSuspended, UserBanned:
		return true
	}
	return false
}

// User is the community member record. Role holds "member" or one of the
// staff roles; Status is only changed through the user status service.
type User struct {
	ID              uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Email           string         `gorm:"not null;size:255;uniqueIndex" json:"email"`
	Username        string         `gorm:"not null;size:50;uniqueIndex" json:"username"`
	Role            string         `gorm:"size:20;default:'member'" json:"role"`
	Status          UserStatus     `gorm:"size:20;not null;default:'active';index" json:"status"`
	StatusReason    string         `gorm:"size:1000" json:"status_reason,omitempty"`
	StatusChangedBy *uuid.UUID     `gorm:"type:uuid" json:"status_changed_by,omitempty"`
	StatusChangedAt *time.Time     `json:"status_changed_at,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.Status == "" {
		u.Status = UserActive
	}
	return nil
}

// UserStatusChange records each effective status transition with its reason and actor.
type UserStatusChange struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	FromStatus UserStatus `gorm:"size:20;not null" json:"from_status"`
	ToStatus   UserStatus `gorm:"size:20;not null" json:"to_status"`
	Reason     string     `gorm:"size:1000" json:"reason"`
	ActorID    uuid.UUID  `gorm:"type:uuid;not null" json:"actor_id"`
	CreatedAt  time.Time  `json:"created_at"`
}

func (c *UserStatusChange) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
