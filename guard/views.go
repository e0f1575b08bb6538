package guard

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Julnar1/store-sentry-admin-dashboard/session"
)

// Loading is rendered while a sign-in or restore is still pending. The
// Retry-After header tells well-behaved clients to ask again shortly.
func Loading(c *fiber.Ctx) error {
	c.Set(fiber.HeaderRetryAfter, "1")
	return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
		"status":  "loading",
		"message": "Signing you in…",
	})
}

// AccessDenied renders the deny view, listing the roles that would
// have been accepted so the operator knows what to ask for.
func AccessDenied(c *fiber.Ctx, allowed []session.Role) error {
	roles := make([]string, len(allowed))
	for i, r := range allowed {
		roles[i] = string(r)
	}
	return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
		"error":          "ACCESS_DENIED",
		"message":        "You don't have permission to access this page.",
		"required_roles": roles,
	})
}
