package handlers

import (
	"github.com/gofiber/fiber/v2"
)

// GetFeed returns the posts visible to the viewer, newest first
func (h *Handlers) GetFeed(c *fiber.Ctx) error {
	posts, err := h.Feed.VisiblePosts(viewer(c))
	if err != nil {
		return err
	}
	return c.JSON(posts)
}

// CreatePost creates a post from form content and an optional media file
func (h *Handlers) CreatePost(c *fiber.Ctx) error {
	content := c.FormValue("content")

	var mediaURL, mediaMime string
	if fh, err := c.FormFile("media"); err == nil && fh != nil {
		upload, err := h.Store.Save(fh)
		if err != nil {
			return err
		}
		mediaURL = upload.URL
		mediaMime = upload.MimeType
	}

	post, err := h.Feed.CreatePost(currentUser(c), content, mediaURL, mediaMime)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// LikePost toggles the viewer's like on a post
func (h *Handlers) LikePost(c *fiber.Ctx) error {
	postID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	liked, count, err := h.Feed.ToggleLike(postID, currentUser(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"liked":     liked,
		"likeCount": count,
	})
}

// CommentOnPost adds a comment to a post
func (h *Handlers) CommentOnPost(c *fiber.Ctx) error {
	postID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var in struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	comment, err := h.Feed.AddComment(postID, currentUser(c), in.Content)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}

// UpdatePostVisibility flips a post between public and private
func (h *Handlers) UpdatePostVisibility(c *fiber.Ctx) error {
	postID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var in struct {
		Visibility string `json:"visibility"`
	}
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	post, err := h.Feed.SetVisibility(postID, currentUser(c), in.Visibility)
	if err != nil {
		return err
	}
	return c.JSON(post)
}

// UpdatePost replaces a post's text content
func (h *Handlers) UpdatePost(c *fiber.Ctx) error {
	postID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var in struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	post, err := h.Feed.UpdateContent(postID, currentUser(c), in.Content)
	if err != nil {
		return err
	}
	return c.JSON(post)
}

// DeletePost removes a post owned by the requester
func (h *Handlers) DeletePost(c *fiber.Ctx) error {
	postID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	if err := h.Feed.DeletePost(postID, currentUser(c)); err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "Post deleted successfully",
	})
}
