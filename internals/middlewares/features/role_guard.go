package features

import (
	"github.com/gofiber/fiber/v2"

	helper "coachingku_backend/internals/helpers"
)

// RequireRoles gates a route group on the session role. Runs after AuthJWT.
func RequireRoles(roles ...string) fiber.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		role := helper.GetRoleFromToken(c)
		if role == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "role not found in token")
		}
		if _, ok := allowed[role]; !ok {
			return fiber.NewError(fiber.StatusForbidden, "your role is not allowed to access this resource")
		}
		return c.Next()
	}
}

// RequireSchoolScope rejects sessions with no tenant claim before any
// controller runs.
func RequireSchoolScope() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, err := helper.GetSchoolIDFromToken(c); err != nil {
			return err
		}
		return c.Next()
	}
}
