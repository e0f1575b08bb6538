package guard

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/Julnar1/store-sentry-admin-dashboard/policy"
	"github.com/Julnar1/store-sentry-admin-dashboard/session"
)

// Paths are the route guard's redirect targets.
type Paths struct {
	Login string
	Home  string
}

// DefaultPaths returns the dashboard's login and home routes.
func DefaultPaths() Paths {
	return Paths{Login: "/login", Home: "/"}
}

// CookieReader is the slice of the persistence bridge the route guard
// is allowed to see: the cookie mirror, never the live session store.
type CookieReader interface {
	ReadCookies(c *fiber.Ctx) (token, role string)
}

// RouteGuard is the network-edge pre-filter. It runs before any page
// handler, matches the request path against the route table and decides
// from the cookie mirror alone: no token cookie on a protected prefix
// redirects to login, a role cookie outside the allowed set redirects
// home, anything else passes through. Because the mirror can be stale
// or absent during restoration, a pass-through here is a hint, not an
// authorization — the component guard and the platform API decide for
// real.
func RouteGuard(table *policy.Table, cookies CookieReader, paths Paths, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rule, ok := table.Match(c.Path())
		if !ok {
			return c.Next()
		}

		token, role := cookies.ReadCookies(c)
		if token == "" {
			log.Debug("no token cookie, redirecting to login",
				zap.String("path", c.Path()),
			)
			return c.Redirect(paths.Login, fiber.StatusSeeOther)
		}
		if role != "" && !rule.Allows(session.Role(role)) {
			log.Debug("role cookie not allowed for path",
				zap.String("role", role),
				zap.String("path", c.Path()),
			)
			return c.Redirect(paths.Home, fiber.StatusSeeOther)
		}
		return c.Next()
	}
}
