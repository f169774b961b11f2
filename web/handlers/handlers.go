// Package handlers binds the HTTP routes to the services.
package handlers

import (
	"strconv"

	"github.com/fahadhasan-x/AgriZoo/auth"
	"github.com/fahadhasan-x/AgriZoo/catalog"
	"github.com/fahadhasan-x/AgriZoo/feed"
	"github.com/fahadhasan-x/AgriZoo/search"
	"github.com/fahadhasan-x/AgriZoo/storage"
	"github.com/fahadhasan-x/AgriZoo/users"
	"github.com/fahadhasan-x/AgriZoo/web/middleware"
	"github.com/gofiber/fiber/v2"
)

// Handlers holds the services the routes dispatch into.
type Handlers struct {
	Auth    *auth.Service
	Users   *users.Service
	Feed    *feed.Assembler
	Tree    *catalog.Tree
	Catalog *catalog.Catalog
	Search  *search.Aggregator
	Store   *storage.Store
}

// New creates the handler set.
func New(authSvc *auth.Service, userSvc *users.Service, assembler *feed.Assembler,
	tree *catalog.Tree, cat *catalog.Catalog, agg *search.Aggregator, store *storage.Store) *Handlers {
	return &Handlers{
		Auth:    authSvc,
		Users:   userSvc,
		Feed:    assembler,
		Tree:    tree,
		Catalog: cat,
		Search:  agg,
		Store:   store,
	}
}

// currentUser returns the authenticated user id. Only valid behind
// middleware.Required.
func currentUser(c *fiber.Ctx) uint {
	id, _ := c.Locals(middleware.UserIDKey).(uint)
	return id
}

// viewer returns the user id when the request is authenticated, nil for
// anonymous requests.
func viewer(c *fiber.Ctx) *uint {
	if id, ok := c.Locals(middleware.UserIDKey).(uint); ok {
		return &id
	}
	return nil
}

// paramID parses a numeric path parameter.
func paramID(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil || id == 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "invalid "+name)
	}
	return uint(id), nil
}
