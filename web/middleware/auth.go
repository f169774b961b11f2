package middleware

import (
	"strings"

	"github.com/fahadhasan-x/AgriZoo/auth"
	"github.com/gofiber/fiber/v2"
)

// UserIDKey is the locals key the authenticated user id is stored under.
const UserIDKey = "userID"

// Required rejects requests without a valid bearer token and stores the
// user id in locals.
func Required(svc *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c)
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "authentication required",
			})
		}
		userID, err := svc.ParseToken(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid token",
			})
		}
		c.Locals(UserIDKey, userID)
		return c.Next()
	}
}

// Optional stores the user id when a valid bearer token is present and
// lets anonymous requests through.
func Optional(svc *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if token := bearerToken(c); token != "" {
			if userID, err := svc.ParseToken(token); err == nil {
				c.Locals(UserIDKey, userID)
			}
		}
		return c.Next()
	}
}

func bearerToken(c *fiber.Ctx) string {
	header := c.Get(fiber.HeaderAuthorization)
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}
