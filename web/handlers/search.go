package handlers

import (
	"github.com/fahadhasan-x/AgriZoo/search"
	"github.com/gofiber/fiber/v2"
)

// SearchAll runs the search. type=all returns the merged envelope, a
// single type returns a flat list.
func (h *Handlers) SearchAll(c *fiber.Ctx) error {
	query := c.Query("q")
	typ := c.Query("type", search.TypeAll)

	results, err := h.Search.Search(query, typ)
	if err != nil {
		return err
	}

	switch typ {
	case search.TypeUsers:
		return c.JSON(results.Users)
	case search.TypePosts:
		return c.JSON(results.Posts)
	case search.TypeAll:
		return c.JSON(results)
	default:
		return c.JSON(results.Products)
	}
}
