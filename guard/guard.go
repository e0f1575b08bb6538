package guard

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/Julnar1/store-sentry-admin-dashboard/policy"
	"github.com/Julnar1/store-sentry-admin-dashboard/session"
)

// Options configure a single protected handler.
type Options struct {
	// Allowed is the set of roles that may reach the handler.
	Allowed []session.Role

	// RedirectTo overrides the deny redirect target. Empty means the
	// guard's fallback path.
	RedirectTo string

	// ShowAccessDenied renders the access-denied view on deny instead
	// of redirecting.
	ShowAccessDenied bool
}

// Guard wraps handlers with per-page authorization against the live
// session. Unlike the route guard it never trusts cookies: it asks the
// session store, so it is correct even while a restore is in flight.
type Guard struct {
	store    *session.Store
	fallback string
	log      *zap.Logger
}

// New builds a Guard that redirects denied requests to fallback when
// the handler's Options don't say otherwise.
func New(store *session.Store, fallback string, log *zap.Logger) *Guard {
	if fallback == "" {
		fallback = "/"
	}
	return &Guard{store: store, fallback: fallback, log: log}
}

// Protect wraps h so it only runs for a signed-in user whose role is
// in opts.Allowed. While sign-in is pending it renders the loading
// view. On deny it either renders the access-denied view or redirects,
// per opts; a redirect that would land back on the current path renders
// access-denied instead, so a misconfigured fallback cannot loop.
func (g *Guard) Protect(opts Options, h fiber.Handler) fiber.Handler {
	return func(c *fiber.Ctx) error {
		snap := g.store.Session()
		switch policy.Evaluate(snap, opts.Allowed) {
		case policy.Allow:
			return h(c)
		case policy.Pending:
			return Loading(c)
		}

		target := opts.RedirectTo
		if target == "" {
			target = g.fallback
		}
		if opts.ShowAccessDenied || target == c.Path() {
			g.log.Info("access denied",
				zap.String("path", c.Path()),
				zap.String("role", string(snap.Role())),
			)
			return AccessDenied(c, opts.Allowed)
		}
		return c.Redirect(target, fiber.StatusSeeOther)
	}
}
