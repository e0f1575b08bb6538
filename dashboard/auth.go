package dashboard

import (
	"context"

	"github.com/Julnar1/store-sentry-admin-dashboard/catalog"
	"github.com/Julnar1/store-sentry-admin-dashboard/session"
)

// platformAuthenticator adapts the catalog client onto the session
// store's Authenticator. Login is a two-step exchange: trade the
// credentials for a token, then resolve the profile behind it, so a
// successful login always carries both identity and role.
type platformAuthenticator struct {
	api *catalog.Client
}

// NewAuthenticator wraps the catalog client for the session store.
func NewAuthenticator(api *catalog.Client) session.Authenticator {
	return &platformAuthenticator{api: api}
}

func (a *platformAuthenticator) Login(ctx context.Context, email, password string) (string, session.User, error) {
	res, err := a.api.Login(ctx, email, password)
	if err != nil {
		return "", session.User{}, err
	}
	user, err := a.api.Profile(ctx, res.AccessToken)
	if err != nil {
		return "", session.User{}, err
	}
	return res.AccessToken, toSessionUser(user), nil
}

func (a *platformAuthenticator) Profile(ctx context.Context, token string) (session.User, error) {
	user, err := a.api.Profile(ctx, token)
	if err != nil {
		return session.User{}, err
	}
	return toSessionUser(user), nil
}

func toSessionUser(u catalog.User) session.User {
	return session.User{
		ID:     u.ID,
		Email:  u.Email,
		Name:   u.Name,
		Role:   session.Role(u.Role),
		Avatar: u.Avatar,
	}
}
