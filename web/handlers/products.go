package handlers

import (
	"strconv"

	"github.com/fahadhasan-x/AgriZoo/catalog"
	"github.com/gofiber/fiber/v2"
)

// CreateProduct lists a product for sale under a category
func (h *Handlers) CreateProduct(c *fiber.Ctx) error {
	price, err := strconv.ParseFloat(c.FormValue("price"), 64)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid price")
	}

	in := catalog.CreateProductInput{
		Name:         c.FormValue("name"),
		Price:        price,
		CategorySlug: c.FormValue("category"),
	}
	if description := c.FormValue("description"); description != "" {
		in.Description = &description
	}

	if fh, err := c.FormFile("image"); err == nil && fh != nil {
		upload, err := h.Store.Save(fh)
		if err != nil {
			return err
		}
		in.ImageURL = &upload.URL
	}

	product, err := h.Catalog.Create(currentUser(c), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// GetAllProducts returns every product, newest first
func (h *Handlers) GetAllProducts(c *fiber.Ctx) error {
	products, err := h.Catalog.ListByCategory(catalog.SlugAll, nil)
	if err != nil {
		return err
	}
	return c.JSON(products)
}
