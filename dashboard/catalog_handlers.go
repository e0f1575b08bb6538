package dashboard

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Julnar1/store-sentry-admin-dashboard/catalog"
)

// Products lists catalog items, optionally paginated with limit/offset
// query parameters.
func (h *Handlers) Products(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 0)
	offset := c.QueryInt("offset", 0)
	products, err := h.api.Products(c.Context(), limit, offset)
	if err != nil {
		return h.apiFail(c, err)
	}
	return c.JSON(products)
}

// ProductDetail fetches a single catalog item.
func (h *Handlers) ProductDetail(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return badID(c)
	}
	product, err := h.api.Product(c.Context(), id)
	if err != nil {
		return h.apiFail(c, err)
	}
	return c.JSON(product)
}

// CreateProduct forwards a new catalog item to the platform.
func (h *Handlers) CreateProduct(c *fiber.Ctx) error {
	var p catalog.NewProduct
	if err := c.BodyParser(&p); err != nil {
		return badBody(c)
	}
	created, err := h.api.CreateProduct(c.Context(), h.token(), p)
	if err != nil {
		return h.apiFail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// UpdateProduct forwards changes to an existing catalog item.
func (h *Handlers) UpdateProduct(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return badID(c)
	}
	var p catalog.Product
	if err := c.BodyParser(&p); err != nil {
		return badBody(c)
	}
	p.ID = id
	updated, err := h.api.UpdateProduct(c.Context(), h.token(), p)
	if err != nil {
		return h.apiFail(c, err)
	}
	return c.JSON(updated)
}

// DeleteProduct removes a catalog item.
func (h *Handlers) DeleteProduct(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return badID(c)
	}
	if err := h.api.DeleteProduct(c.Context(), h.token(), id); err != nil {
		return h.apiFail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Categories lists the catalog's categories.
func (h *Handlers) Categories(c *fiber.Ctx) error {
	categories, err := h.api.Categories(c.Context())
	if err != nil {
		return h.apiFail(c, err)
	}
	return c.JSON(categories)
}

// CreateCategory forwards a new category to the platform.
func (h *Handlers) CreateCategory(c *fiber.Ctx) error {
	var cat catalog.Category
	if err := c.BodyParser(&cat); err != nil {
		return badBody(c)
	}
	created, err := h.api.CreateCategory(c.Context(), h.token(), cat.Name, cat.Image)
	if err != nil {
		return h.apiFail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// UpdateCategory forwards changes to an existing category.
func (h *Handlers) UpdateCategory(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return badID(c)
	}
	var cat catalog.Category
	if err := c.BodyParser(&cat); err != nil {
		return badBody(c)
	}
	cat.ID = id
	updated, err := h.api.UpdateCategory(c.Context(), h.token(), cat)
	if err != nil {
		return h.apiFail(c, err)
	}
	return c.JSON(updated)
}

// DeleteCategory removes a category. The platform refuses categories
// that still hold products; that message is forwarded as-is.
func (h *Handlers) DeleteCategory(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return badID(c)
	}
	if err := h.api.DeleteCategory(c.Context(), h.token(), id); err != nil {
		return h.apiFail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Users lists platform accounts.
func (h *Handlers) Users(c *fiber.Ctx) error {
	users, err := h.api.Users(c.Context(), h.token())
	if err != nil {
		return h.apiFail(c, err)
	}
	return c.JSON(users)
}

func badID(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error":   "INVALID_ID",
		"message": "The id parameter must be a number",
	})
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error":   "INVALID_REQUEST",
		"message": "Could not parse request body",
	})
}
