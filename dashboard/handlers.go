package dashboard

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/Julnar1/store-sentry-admin-dashboard/catalog"
	"github.com/Julnar1/store-sentry-admin-dashboard/guard"
	"github.com/Julnar1/store-sentry-admin-dashboard/session"
)

// Handlers bundle the dashboard's HTTP handlers with their shared
// dependencies. One instance serves the whole app.
type Handlers struct {
	store    *session.Store
	api      *catalog.Client
	validate *validator.Validate
	paths    guard.Paths
	log      *zap.Logger
}

// NewHandlers wires the handler set.
func NewHandlers(store *session.Store, api *catalog.Client, paths guard.Paths, log *zap.Logger) *Handlers {
	return &Handlers{
		store:    store,
		api:      api,
		validate: validator.New(),
		paths:    paths,
		log:      log,
	}
}

// landingPath is where a fresh login lands: admins get the dashboard
// home, managers go straight to the product catalog, everyone else
// falls back to home and lets the guards sort out what they may see.
func (h *Handlers) landingPath(role session.Role) string {
	switch role {
	case session.RoleAdmin:
		return h.paths.Home
	case session.RoleManager:
		return "/products"
	default:
		return h.paths.Home
	}
}

// LoginPage renders the sign-in form, or sends an already signed-in
// operator to their landing page.
func (h *Handlers) LoginPage(c *fiber.Ctx) error {
	snap := h.store.Session()
	if snap.LoggedIn() {
		return c.Redirect(h.landingPath(snap.Role()), fiber.StatusSeeOther)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(loginPageHTML)
}

// Login handles the credential exchange. On success both session
// mirrors are written and the operator is redirected by role; every
// failure is reported with the platform's own message.
func (h *Handlers) Login(c *fiber.Ctx) error {
	var creds session.Credentials
	if err := c.BodyParser(&creds); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "INVALID_REQUEST",
			"message": "Could not parse login request",
		})
	}
	if err := h.validate.Struct(creds); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "INVALID_CREDENTIALS_FORMAT",
			"message": "Email and password are required",
		})
	}

	if err := h.store.BeginLogin(c.Context(), c, creds); err != nil {
		var state *session.StateError
		if errors.As(err, &state) {
			return c.Status(state.Code).JSON(fiber.Map{
				"error":   state.Type,
				"message": state.Message,
			})
		}
		snap := h.store.Session()
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error":   "LOGIN_FAILED",
			"message": snap.LastError,
		})
	}

	snap := h.store.Session()
	return c.Redirect(h.landingPath(snap.Role()), fiber.StatusSeeOther)
}

// Logout clears the session and both mirrors, then returns to login.
func (h *Handlers) Logout(c *fiber.Ctx) error {
	if err := h.store.Logout(c.Context(), c); err != nil {
		h.log.Error("logout failed to clear mirrors", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "LOGOUT_FAILED",
			"message": "Could not clear the stored session",
		})
	}
	return c.Redirect(h.paths.Login, fiber.StatusSeeOther)
}

// Home is the dashboard landing page.
func (h *Handlers) Home(c *fiber.Ctx) error {
	snap := h.store.Session()
	out := fiber.Map{"page": "home"}
	if snap.LoggedIn() {
		out["user"] = snap.User
	}
	return c.JSON(out)
}

// apiFail translates a platform API failure into a response. Platform
// rejections keep their status and message; anything else is a bad
// gateway, since the dashboard itself did not fail.
func (h *Handlers) apiFail(c *fiber.Ctx, err error) error {
	var apiErr *catalog.APIError
	if errors.As(err, &apiErr) {
		return c.Status(apiErr.Status).JSON(fiber.Map{
			"error":   "PLATFORM_REJECTED",
			"message": apiErr.Message,
		})
	}
	h.log.Error("platform request failed", zap.Error(err))
	return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
		"error":   "PLATFORM_UNAVAILABLE",
		"message": "The platform API could not be reached",
	})
}

// token returns the live session's platform token, or "" when nobody is
// signed in. Guarded routes never see "" in practice; the platform
// rejects it anyway if they do.
func (h *Handlers) token() string {
	return h.store.Session().Token
}

const loginPageHTML = `<!doctype html>
<html>
<head><title>Store Sentry — Sign in</title></head>
<body>
<h1>Sign in</h1>
<form method="post" action="/login">
  <label>Email <input type="email" name="email" required></label>
  <label>Password <input type="password" name="password" required></label>
  <button type="submit">Sign in</button>
</form>
</body>
</html>
`
