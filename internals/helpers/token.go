package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"coachingku_backend/internals/constants"
)

// Locals keys hydrated by the auth middleware from JWT claims.
const (
	LocUserID   = "user_id"
	LocSchoolID = "school_id"
	LocRole     = "role"
)

func uuidFromLocals(c *fiber.Ctx, key string) (uuid.UUID, error) {
	v := c.Locals(key)
	if v == nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, key+" not found in token")
	}
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, key+" is empty in token")
	}
	id, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, key+" in token is not a valid UUID")
	}
	return id, nil
}

// GetSchoolIDFromToken returns the tenant scope of the session. Every query
// and mutation must be filtered by it.
func GetSchoolIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	return uuidFromLocals(c, LocSchoolID)
}

func GetUserIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	return uuidFromLocals(c, LocUserID)
}

func GetRoleFromToken(c *fiber.Ctx) string {
	if v := c.Locals(LocRole); v != nil {
		if s, ok := v.(string); ok {
			return strings.ToLower(strings.TrimSpace(s))
		}
	}
	return ""
}

func IsAdmin(c *fiber.Ctx) bool {
	role := GetRoleFromToken(c)
	return role == constants.RoleAdmin || role == constants.RoleOwner
}

func IsCoach(c *fiber.Ctx) bool {
	return GetRoleFromToken(c) == constants.RoleCoach
}
