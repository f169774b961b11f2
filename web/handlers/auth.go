package handlers

import (
	"github.com/fahadhasan-x/AgriZoo/auth"
	"github.com/gofiber/fiber/v2"
)

// Signup registers a new account and returns it with a token
func (h *Handlers) Signup(c *fiber.Ctx) error {
	var in auth.SignupInput
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	user, token, err := h.Auth.Signup(in)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"user":  user,
		"token": token,
	})
}

// Login verifies credentials and returns the user with a token
func (h *Handlers) Login(c *fiber.Ctx) error {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	user, token, err := h.Auth.Login(in.Email, in.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"user":  user,
		"token": token,
	})
}

// ForgotPassword mails a reset link to the account
func (h *Handlers) ForgotPassword(c *fiber.Ctx) error {
	var in struct {
		Email string `json:"email"`
	}
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := h.Auth.ForgotPassword(in.Email); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Password reset link has been sent to your email",
	})
}

// ResetPassword sets a new password against a live reset token
func (h *Handlers) ResetPassword(c *fiber.Ctx) error {
	var in struct {
		Token       string `json:"token"`
		NewPassword string `json:"newPassword"`
	}
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := h.Auth.ResetPassword(in.Token, in.NewPassword); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Password has been reset successfully",
	})
}
