package dashboard

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Julnar1/store-sentry-admin-dashboard/guard"
	"github.com/Julnar1/store-sentry-admin-dashboard/policy"
	"github.com/Julnar1/store-sentry-admin-dashboard/session"
)

// Setup registers middleware and routes on the app. The route guard
// runs first as a cookie-level pre-filter over the whole route table;
// each page handler is additionally wrapped by the component guard,
// which checks the live session.
func Setup(app *fiber.App, h *Handlers, table *policy.Table, cookies guard.CookieReader, log *zap.Logger) {
	app.Use(requestID())
	app.Use(guard.RouteGuard(table, cookies, h.paths, log))

	g := guard.New(h.store, h.paths.Home, log)

	app.Get("/login", h.LoginPage)
	app.Post("/login", h.Login)
	app.Post("/logout", h.Logout)
	app.Get("/", h.Home)

	// Catalog pages show the access-denied view on a role mismatch so
	// the operator sees which roles would be accepted.
	managed := guard.Options{
		Allowed:          []session.Role{session.RoleAdmin, session.RoleManager},
		ShowAccessDenied: true,
	}
	adminOnly := guard.Options{
		Allowed:          []session.Role{session.RoleAdmin},
		ShowAccessDenied: true,
	}

	products := app.Group("/products")
	products.Get("/", g.Protect(managed, h.Products))
	products.Post("/", g.Protect(managed, h.CreateProduct))
	products.Get("/:id", g.Protect(managed, h.ProductDetail))
	products.Put("/:id", g.Protect(managed, h.UpdateProduct))
	products.Delete("/:id", g.Protect(managed, h.DeleteProduct))

	categories := app.Group("/categories")
	categories.Get("/", g.Protect(adminOnly, h.Categories))
	categories.Post("/", g.Protect(adminOnly, h.CreateCategory))
	categories.Put("/:id", g.Protect(adminOnly, h.UpdateCategory))
	categories.Delete("/:id", g.Protect(adminOnly, h.DeleteCategory))

	// The account list quietly bounces non-admins home instead of
	// advertising what it is.
	app.Get("/users", g.Protect(guard.Options{
		Allowed: []session.Role{session.RoleAdmin},
	}, h.Users))
}

// requestID tags every request so log lines can be correlated.
func requestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(fiber.HeaderXRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Locals("request_id", id)
		c.Set(fiber.HeaderXRequestID, id)
		return c.Next()
	}
}
