package middleware

import (
	"errors"

	"github.com/ahmetcoskunkizilkaya/community-moderation/internal/moderation"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const staffRoleKey = "staff_role"

// GetUserID extracts the user ID from the JWT "sub" claim.
func GetUserID(c *fiber.Ctx) (uuid.UUID, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return uuid.Nil, errors.New("invalid token in context")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, errors.New("invalid claims")
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return uuid.Nil, errors.New("missing sub claim")
	}

	return uuid.Parse(sub)
}

// GetStaffRole returns the role resolved by StaffRequired, or "" when the
// request did not pass through it.
func GetStaffRole(c *fiber.Ctx) moderation.Role {
	role, _ := c.Locals(staffRoleKey).(moderation.Role)
	return role
}
