package catalog

import (
	"context"
	"net/http"
)

// User is the account shape the platform reports.
type User struct {
	ID     int    `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	Avatar string `json:"avatar"`
}

// LoginResult is the platform's reply to a credential exchange.
type LoginResult struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Login exchanges email and password for tokens. A rejected exchange is
// an *APIError carrying the platform's message.
func (c *Client) Login(ctx context.Context, email, password string) (LoginResult, error) {
	var res LoginResult
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/auth/login", "", body, &res); err != nil {
		return LoginResult{}, err
	}
	return res, nil
}

// Profile resolves the account behind a token. Used both at login and
// when restoring a persisted session.
func (c *Client) Profile(ctx context.Context, token string) (User, error) {
	var u User
	if err := c.do(ctx, http.MethodGet, "/auth/profile", token, nil, &u); err != nil {
		return User{}, err
	}
	return u, nil
}
