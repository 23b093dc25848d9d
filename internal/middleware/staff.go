package middleware

import (
	"strings"

	"github.com/ahmetcoskunkizilkaya/community-moderation/internal/config"
	"github.com/ahmetcoskunkizilkaya/community-moderation/internal/dto"
	"github.com/ahmetcoskunkizilkaya/community-moderation/internal/models"
	"github.com/ahmetcoskunkizilkaya/community-moderation/internal/moderation"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// StaffRequired resolves the caller's staff role and rejects everyone else.
// Resolution order:
// 1. Config-based ADMIN_USER_IDS (always super_admin)
// 2. DB-based user Role field, for active accounts only
//
// It only decides who may reach the moderation panel. Per-action limits are
// enforced by the dispatcher's gate using the role stored here.
func StaffRequired(db *gorm.DB, cfg *config.Config) fiber.Handler {
	adminUserIDs := parseCSV(cfg.AdminUserIDs)

	return func(c *fiber.Ctx) error {
		userID, err := GetUserID(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}

		if contains(adminUserIDs, userID.String()) {
			c.Locals(staffRoleKey, moderation.RoleSuperAdmin)
			return c.Next()
		}

		var user models.User
		err = db.WithContext(c.UserContext()).
			Select("id", "role", "status").
			First(&user, "id = ?", userID).Error
		if err == nil && user.Status == models.UserActive {
			if role, ok := moderation.ParseRole(user.Role); ok {
				c.Locals(staffRoleKey, role)
				return c.Next()
			}
		}

		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Message: "Moderation staff access required",
		})
	}
}

func parseCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func contains(list []string, val string) bool {
	for _, item := range list {
		if item == val {
			return true
		}
	}
	return false
}
