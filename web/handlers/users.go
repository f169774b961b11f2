package handlers

import (
	"strings"

	"github.com/fahadhasan-x/AgriZoo/users"
	"github.com/gofiber/fiber/v2"
)

// GetProfile returns the authenticated user's own profile
func (h *Handlers) GetProfile(c *fiber.Ctx) error {
	user, err := h.Users.Get(currentUser(c))
	if err != nil {
		return err
	}
	return c.JSON(user)
}

// UpdateProfile edits the authenticated user's profile fields
func (h *Handlers) UpdateProfile(c *fiber.Ctx) error {
	var in users.UpdateInput
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	user, err := h.Users.Update(currentUser(c), in)
	if err != nil {
		return err
	}
	return c.JSON(user)
}

// UpdateProfilePicture replaces the profile picture with an uploaded image
func (h *Handlers) UpdateProfilePicture(c *fiber.Ctx) error {
	fh, err := c.FormFile("profile_picture")
	if err != nil || fh == nil {
		return fiber.NewError(fiber.StatusBadRequest, "no file uploaded")
	}
	if !strings.HasPrefix(fh.Header.Get("Content-Type"), "image/") {
		return fiber.NewError(fiber.StatusBadRequest, "please upload only images")
	}

	upload, err := h.Store.Save(fh)
	if err != nil {
		return err
	}

	user, err := h.Users.UpdatePicture(currentUser(c), upload.URL)
	if err != nil {
		return err
	}
	return c.JSON(user)
}

// GetUserProfile returns a user's public profile with their public posts
func (h *Handlers) GetUserProfile(c *fiber.Ctx) error {
	userID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	profile, err := h.Users.Profile(userID, viewer(c))
	if err != nil {
		return err
	}
	return c.JSON(profile)
}

// GetUserPosts returns a user's posts; owners see their private posts too
func (h *Handlers) GetUserPosts(c *fiber.Ctx) error {
	userID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	posts, err := h.Feed.UserPosts(userID, viewer(c))
	if err != nil {
		return err
	}
	return c.JSON(posts)
}

// GetUserProducts returns one seller's product listings
func (h *Handlers) GetUserProducts(c *fiber.Ctx) error {
	userID, err := paramID(c, "userId")
	if err != nil {
		return err
	}

	products, err := h.Catalog.ListByOwner(userID)
	if err != nil {
		return err
	}
	return c.JSON(products)
}
