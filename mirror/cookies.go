package mirror

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Cookie names match what the dashboard front end has always used, so
// existing browser state keeps working across deployments.
const (
	TokenCookie = "accessToken"
	RoleCookie  = "userRole"
)

// CookieConfig is the cookie channel's shape: explicit path, bounded
// max-age and a same-site policy restrictive enough to prevent
// cross-site leakage.
type CookieConfig struct {
	Path     string
	MaxAge   time.Duration
	SameSite string
	Secure   bool
}

// DefaultCookieConfig mirrors the attributes the front end historically
// set: path=/, 24h max-age, SameSite=Lax.
func DefaultCookieConfig() CookieConfig {
	return CookieConfig{
		Path:     "/",
		MaxAge:   24 * time.Hour,
		SameSite: "Lax",
	}
}

// cookieTTL bounds the cookie lifetime by the token's own expiry when
// the platform token is a JWT carrying exp. The claim is read without
// verifying the signature; nothing here trusts it for authorization,
// it only shortens how long a dead token lingers in the browser.
func cookieTTL(token string, max time.Duration) time.Duration {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return max
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return max
	}
	if until := time.Until(exp.Time); until > 0 && until < max {
		return until
	}
	return max
}
