package handlers

import (
	"strconv"

	"github.com/fahadhasan-x/AgriZoo/catalog"
	"github.com/gofiber/fiber/v2"
)

// GetCategories lists the children of a category, with nested subtrees.
// ?parent=all (the default) lists the top-level categories.
func (h *Handlers) GetCategories(c *fiber.Ctx) error {
	parent := c.Query("parent", catalog.SlugAll)

	nodes, err := h.Tree.ListChildren(parent)
	if err != nil {
		return err
	}
	return c.JSON(nodes)
}

// GetCategoryProducts lists products in a category subtree, optionally
// filtered to one seller via ?userId=
func (h *Handlers) GetCategoryProducts(c *fiber.Ctx) error {
	var ownerID *uint
	if raw := c.Query("userId"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid userId")
		}
		owner := uint(id)
		ownerID = &owner
	}

	products, err := h.Catalog.ListByCategory(c.Params("slug"), ownerID)
	if err != nil {
		return err
	}
	return c.JSON(products)
}
