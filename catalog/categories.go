package catalog

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// Category groups catalog items.
type Category struct {
	ID    int    `json:"id"`
	Name  string `json:"name,omitempty"`
	Image string `json:"image,omitempty"`
}

// Categories lists all categories.
func (c *Client) Categories(ctx context.Context) ([]Category, error) {
	var out []Category
	if err := c.do(ctx, http.MethodGet, "/categories", "", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateCategory adds a category.
func (c *Client) CreateCategory(ctx context.Context, token, name, image string) (Category, error) {
	body := map[string]string{"name": name, "image": image}
	var out Category
	if err := c.do(ctx, http.MethodPost, "/categories", token, body, &out); err != nil {
		return Category{}, err
	}
	return out, nil
}

// UpdateCategory replaces a category.
func (c *Client) UpdateCategory(ctx context.Context, token string, cat Category) (Category, error) {
	var out Category
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/categories/%d", cat.ID), token, cat, &out); err != nil {
		return Category{}, err
	}
	return out, nil
}

// DeleteCategory removes a category. When the platform answers with a
// bare status and no message, the two known cases get a concrete one:
// 400 means the category still has products, 403 means the token's role
// may not delete categories.
func (c *Client) DeleteCategory(ctx context.Context, token string, id int) error {
	err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/categories/%d", id), token, nil, nil)
	if err == nil {
		return nil
	}

	var ae *APIError
	if errors.As(err, &ae) && ae.Message == http.StatusText(ae.Status) {
		switch ae.Status {
		case http.StatusBadRequest:
			ae.Message = "This category cannot be deleted because it has associated products. Remove or reassign its products first."
		case http.StatusForbidden:
			ae.Message = "Only admin users can delete categories."
		}
	}
	return err
}
