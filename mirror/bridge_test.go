package mirror

import (
	"context"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/Julnar1/store-sentry-admin-dashboard/logging"
	"github.com/Julnar1/store-sentry-admin-dashboard/session"
)

func testKey() []byte {
	key := make([]byte, KeySize)
	for i := range key {
		key[i] = byte(i)
	}
	return key
}

func testBridge(t *testing.T) *Bridge {
	t.Helper()
	b, err := NewBridge(NewMemoryStore(), testKey(), DefaultCookieConfig(), logging.NewNop())
	if err != nil {
		t.Fatalf("NewBridge failed: %v", err)
	}
	return b
}

func TestNewBridgeRejectsBadKey(t *testing.T) {
	_, err := NewBridge(NewMemoryStore(), []byte("too short"), DefaultCookieConfig(), logging.NewNop())
	if err == nil {
		t.Fatal("expected NewBridge to reject a short key")
	}
}

func TestPersistRestoreRoundTrip(t *testing.T) {
	b := testBridge(t)
	ctx := context.Background()

	if err := b.Persist(ctx, nil, "tok-xyz", session.RoleManager); err != nil {
		t.Fatalf("Persist failed: %v", err)
	}

	token, role, err := b.Restore(ctx)
	if err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	if token != "tok-xyz" || role != session.RoleManager {
		t.Errorf("Restore = (%q, %s); want (tok-xyz, manager)", token, role)
	}
}

func TestRestoreEmpty(t *testing.T) {
	b := testBridge(t)
	if _, _, err := b.Restore(context.Background()); !errors.Is(err, ErrNoStoredSession) {
		t.Errorf("Restore of empty store = %v; want ErrNoStoredSession", err)
	}
}

func TestClearIsIdempotent(t *testing.T) {
	b := testBridge(t)
	ctx := context.Background()

	if err := b.Persist(ctx, nil, "tok", session.RoleAdmin); err != nil {
		t.Fatalf("Persist failed: %v", err)
	}
	for i := 0; i < 2; i++ {
		if err := b.Clear(ctx, nil); err != nil {
			t.Fatalf("Clear #%d failed: %v", i+1, err)
		}
	}
	if _, _, err := b.Restore(ctx); !errors.Is(err, ErrNoStoredSession) {
		t.Errorf("Restore after Clear = %v; want ErrNoStoredSession", err)
	}
}

func TestRestoreDiscardsUndecryptableRecord(t *testing.T) {
	store := NewMemoryStore()
	b, err := NewBridge(store, testKey(), DefaultCookieConfig(), logging.NewNop())
	if err != nil {
		t.Fatalf("NewBridge failed: %v", err)
	}
	ctx := context.Background()

	// A record sealed under a rotated key is unreadable garbage.
	if err := store.Save(ctx, Record{Token: []byte("not a sealed box"), Role: session.RoleAdmin, UpdatedAt: time.Now()}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if _, _, err := b.Restore(ctx); !errors.Is(err, ErrNoStoredSession) {
		t.Fatalf("Restore of corrupt record = %v; want ErrNoStoredSession", err)
	}
	// And the garbage must be gone.
	if _, err := store.Load(ctx); !errors.Is(err, ErrNoStoredSession) {
		t.Errorf("corrupt record was not deleted: %v", err)
	}
}

func TestTokenCipherRoundTrip(t *testing.T) {
	tc, err := newTokenCipher(testKey())
	if err != nil {
		t.Fatalf("newTokenCipher failed: %v", err)
	}

	box, err := tc.seal("the-platform-token")
	if err != nil {
		t.Fatalf("seal failed: %v", err)
	}
	plain, err := tc.open(box)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	if plain != "the-platform-token" {
		t.Errorf("open = %q; want the sealed token", plain)
	}

	// Tampering must not go unnoticed.
	box[len(box)-1] ^= 0xff
	if _, err := tc.open(box); err == nil {
		t.Error("open accepted a tampered box")
	}
}

func TestCookiesWrittenOnPersist(t *testing.T) {
	b := testBridge(t)
	app := fiber.New()
	app.Post("/login", func(c *fiber.Ctx) error {
		if err := b.Persist(c.Context(), c, "tok-abc", session.RoleAdmin); err != nil {
			return err
		}
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest("POST", "/login", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	cookies := resp.Header.Values("Set-Cookie")
	var sawToken, sawRole bool
	for _, ck := range cookies {
		if strings.HasPrefix(ck, TokenCookie+"=tok-abc") {
			sawToken = true
		}
		if strings.HasPrefix(ck, RoleCookie+"=admin") {
			sawRole = true
		}
		if !strings.Contains(ck, "path=/") && !strings.Contains(ck, "Path=/") {
			t.Errorf("cookie missing path=/: %s", ck)
		}
		if !strings.Contains(strings.ToLower(ck), "samesite=lax") {
			t.Errorf("cookie missing SameSite=Lax: %s", ck)
		}
	}
	if !sawToken || !sawRole {
		t.Errorf("expected both session cookies, got %v", cookies)
	}
}

func TestCookiesExpiredOnClear(t *testing.T) {
	b := testBridge(t)
	app := fiber.New()
	app.Post("/logout", func(c *fiber.Ctx) error {
		if err := b.Clear(c.Context(), c); err != nil {
			return err
		}
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest("POST", "/logout", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	cookies := resp.Header.Values("Set-Cookie")
	if len(cookies) < 2 {
		t.Fatalf("expected both cookies expired, got %v", cookies)
	}
	for _, ck := range cookies {
		if !strings.Contains(strings.ToLower(ck), "expires=") {
			t.Errorf("expired cookie missing Expires attribute: %s", ck)
		}
	}
}

func TestCookieTTLBoundedByTokenExpiry(t *testing.T) {
	// A token expiring in one hour must shorten the 24h default.
	claims := jwt.MapClaims{"exp": time.Now().Add(time.Hour).Unix()}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("signing test token: %v", err)
	}

	ttl := cookieTTL(token, 24*time.Hour)
	if ttl > time.Hour || ttl < 55*time.Minute {
		t.Errorf("cookieTTL = %s; want about an hour", ttl)
	}

	// A non-JWT token falls back to the configured max.
	if ttl := cookieTTL("opaque-token", 24*time.Hour); ttl != 24*time.Hour {
		t.Errorf("cookieTTL for opaque token = %s; want 24h", ttl)
	}
}
