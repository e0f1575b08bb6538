package catalog

import (
	"context"
	"fmt"
	"net/http"
)

// Product is a catalog item.
type Product struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Price       float64  `json:"price"`
	Description string   `json:"description"`
	Images      []string `json:"images"`
	Category    Category `json:"category"`
}

// NewProduct is the creation payload; the category is referenced by id.
type NewProduct struct {
	Title       string   `json:"title"`
	Price       float64  `json:"price"`
	Description string   `json:"description"`
	Images      []string `json:"images"`
	CategoryID  int      `json:"categoryId"`
}

// Products lists catalog items. limit <= 0 fetches the whole catalog,
// which is the platform's historical behavior; otherwise limit/offset
// paginate.
func (c *Client) Products(ctx context.Context, limit, offset int) ([]Product, error) {
	path := "/products"
	if limit > 0 {
		path = fmt.Sprintf("/products?limit=%d&offset=%d", limit, offset)
	}
	var out []Product
	if err := c.do(ctx, http.MethodGet, path, "", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Product fetches a single catalog item by id.
func (c *Client) Product(ctx context.Context, id int) (Product, error) {
	var out Product
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/products/%d", id), "", nil, &out); err != nil {
		return Product{}, err
	}
	return out, nil
}

// CreateProduct adds a catalog item.
func (c *Client) CreateProduct(ctx context.Context, token string, p NewProduct) (Product, error) {
	var out Product
	if err := c.do(ctx, http.MethodPost, "/products", token, p, &out); err != nil {
		return Product{}, err
	}
	return out, nil
}

// UpdateProduct replaces a catalog item. The category reference is sent
// both nested and as categoryId, which is the shape the platform's
// update endpoint expects.
func (c *Client) UpdateProduct(ctx context.Context, token string, p Product) (Product, error) {
	payload := struct {
		Product
		CategoryID int `json:"categoryId"`
	}{Product: p, CategoryID: p.Category.ID}

	var out Product
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/products/%d", p.ID), token, payload, &out); err != nil {
		return Product{}, err
	}
	return out, nil
}

// DeleteProduct removes a catalog item.
func (c *Client) DeleteProduct(ctx context.Context, token string, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/products/%d", id), token, nil, nil)
}
