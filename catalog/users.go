package catalog

import (
	"context"
	"net/http"
)

// Users lists all platform accounts. The route is admin-gated in the
// dashboard, and the platform enforces it again against the token.
func (c *Client) Users(ctx context.Context, token string) ([]User, error) {
	var out []User
	if err := c.do(ctx, http.MethodGet, "/users", token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
