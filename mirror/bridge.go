package mirror

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/Julnar1/store-sentry-admin-dashboard/session"
)

// Bridge synchronizes the live session's token and role to the two
// persistence channels: durable storage (token encrypted at rest) and
// the cookie pair the route guard reads. Both channels are written on
// the same call; a durable-channel failure aborts before any cookie is
// touched, so no partial write is observable.
type Bridge struct {
	store   Store
	cipher  *tokenCipher
	cookies CookieConfig
	log     *zap.Logger
}

// NewBridge builds a persistence bridge over the given durable store.
// The key seals tokens at rest and must be KeySize bytes.
func NewBridge(store Store, key []byte, cookies CookieConfig, log *zap.Logger) (*Bridge, error) {
	cipher, err := newTokenCipher(key)
	if err != nil {
		return nil, err
	}
	if cookies.Path == "" {
		cookies = DefaultCookieConfig()
	}
	return &Bridge{store: store, cipher: cipher, cookies: cookies, log: log}, nil
}

// Persist writes the token and role to durable storage and, when a
// response is in flight, to the cookie mirror.
func (b *Bridge) Persist(ctx context.Context, c *fiber.Ctx, token string, role session.Role) error {
	sealed, err := b.cipher.seal(token)
	if err != nil {
		return err
	}
	rec := Record{Token: sealed, Role: role, UpdatedAt: time.Now()}
	if err := b.store.Save(ctx, rec); err != nil {
		return err
	}
	if c != nil {
		b.WriteCookies(c, token, role)
	}
	return nil
}

// Clear removes the durable record and, when a response is in flight,
// expires both cookies. Safe to call on an already-cleared bridge.
func (b *Bridge) Clear(ctx context.Context, c *fiber.Ctx) error {
	if err := b.store.Delete(ctx); err != nil {
		return err
	}
	if c != nil {
		b.ExpireCookies(c)
	}
	return nil
}

// Restore is the read-only startup lookup. It reports ErrNoStoredSession
// when nothing was persisted; a record that no longer decrypts (rotated
// key, corrupt row) is deleted and reported the same way.
func (b *Bridge) Restore(ctx context.Context) (string, session.Role, error) {
	rec, err := b.store.Load(ctx)
	if err != nil {
		return "", "", err
	}
	token, err := b.cipher.open(rec.Token)
	if err != nil {
		b.log.Warn("discarding undecryptable session mirror", zap.Error(err))
		if derr := b.store.Delete(ctx); derr != nil {
			return "", "", fmt.Errorf("deleting undecryptable session mirror: %w", derr)
		}
		return "", "", ErrNoStoredSession
	}
	return token, rec.Role, nil
}

// WriteCookies sets the token and role cookies with the configured
// attributes. The lifetime is the configured max-age, shortened to the
// token's own expiry when it carries one.
func (b *Bridge) WriteCookies(c *fiber.Ctx, token string, role session.Role) {
	ttl := cookieTTL(token, b.cookies.MaxAge)
	expires := time.Now().Add(ttl)
	b.setCookie(c, TokenCookie, token, int(ttl.Seconds()), expires)
	b.setCookie(c, RoleCookie, string(role), int(ttl.Seconds()), expires)
}

// ExpireCookies clears both cookies by setting a past expiry on the
// matching path.
func (b *Bridge) ExpireCookies(c *fiber.Ctx) {
	expired := time.Now().Add(-time.Hour)
	b.setCookie(c, TokenCookie, "", -1, expired)
	b.setCookie(c, RoleCookie, "", -1, expired)
}

// ReadCookies returns the cookie mirror as seen on the request. Either
// value may be empty or stale; callers treat them as a hint.
func (b *Bridge) ReadCookies(c *fiber.Ctx) (token, role string) {
	return c.Cookies(TokenCookie), c.Cookies(RoleCookie)
}

func (b *Bridge) setCookie(c *fiber.Ctx, name, value string, maxAge int, expires time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    value,
		Path:     b.cookies.Path,
		MaxAge:   maxAge,
		Expires:  expires,
		SameSite: b.cookies.SameSite,
		Secure:   b.cookies.Secure,
		HTTPOnly: true,
	})
}
