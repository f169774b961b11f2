package web

import (
	"errors"

	"github.com/fahadhasan-x/AgriZoo/apperr"
	"github.com/fahadhasan-x/AgriZoo/auth"
	"github.com/fahadhasan-x/AgriZoo/storage"
	"github.com/fahadhasan-x/AgriZoo/web/handlers"
	"github.com/fahadhasan-x/AgriZoo/web/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"
)

// Server represents the web server
type Server struct {
	app *fiber.App
}

// NewServer assembles the Fiber app: middleware, error translation,
// static uploads and routes.
func NewServer(log *logrus.Logger, h *handlers.Handlers, authSvc *auth.Service, store *storage.Store) *Server {
	app := fiber.New(fiber.Config{
		ErrorHandler: errorHandler(log),
	})

	// Middleware
	app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
	}))
	app.Use(cors.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path} ${error}\n",
	}))

	// Uploaded media
	app.Static("/uploads", store.Dir())

	setupRoutes(app, h, authSvc)

	return &Server{app: app}
}

// App exposes the Fiber app, mainly for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Start starts the server
func (s *Server) Start(port string) error {
	return s.app.Listen(":" + port)
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// errorHandler translates service errors into JSON responses. Expected
// outcomes (not found, forbidden, invalid, conflict, unauthorized) map to
// their statuses without being logged as failures; everything else is a
// 500 recorded for operator visibility.
func errorHandler(log *logrus.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		if kind, ok := apperr.KindOf(err); ok {
			return c.Status(statusForKind(kind)).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return c.Status(fiberErr.Code).JSON(fiber.Map{
				"error": fiberErr.Message,
			})
		}

		log.WithError(err).WithFields(logrus.Fields{
			"method": c.Method(),
			"path":   c.Path(),
		}).Error("request failed")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Something went wrong!",
		})
	}
}

func statusForKind(kind apperr.Kind) int {
	switch kind {
	case apperr.KindNotFound:
		return fiber.StatusNotFound
	case apperr.KindForbidden:
		return fiber.StatusForbidden
	case apperr.KindInvalid:
		return fiber.StatusBadRequest
	case apperr.KindConflict:
		return fiber.StatusConflict
	case apperr.KindUnauthorized:
		return fiber.StatusUnauthorized
	default:
		return fiber.StatusInternalServerError
	}
}

// setupRoutes configures all application routes
func setupRoutes(app *fiber.App, h *handlers.Handlers, authSvc *auth.Service) {
	api := app.Group("/api")

	// Auth
	api.Post("/auth/signup", h.Signup)
	api.Post("/auth/login", h.Login)
	api.Post("/auth/forgot-password", h.ForgotPassword)
	api.Post("/auth/reset-password", h.ResetPassword)

	// Posts
	api.Get("/posts", middleware.Optional(authSvc), h.GetFeed)
	api.Post("/posts", middleware.Required(authSvc), h.CreatePost)
	api.Post("/posts/:id/like", middleware.Required(authSvc), h.LikePost)
	api.Post("/posts/:id/comments", middleware.Required(authSvc), h.CommentOnPost)
	api.Patch("/posts/:id/visibility", middleware.Required(authSvc), h.UpdatePostVisibility)
	api.Put("/posts/:id", middleware.Required(authSvc), h.UpdatePost)
	api.Delete("/posts/:id", middleware.Required(authSvc), h.DeletePost)

	// Users - specific routes before /:id
	api.Get("/users/profile", middleware.Required(authSvc), h.GetProfile)
	api.Put("/users/profile", middleware.Required(authSvc), h.UpdateProfile)
	api.Put("/users/profile-picture", middleware.Required(authSvc), h.UpdateProfilePicture)
	api.Get("/users/:id/posts", middleware.Optional(authSvc), h.GetUserPosts)
	api.Get("/users/:userId/products", h.GetUserProducts)
	api.Get("/users/:id", middleware.Optional(authSvc), h.GetUserProfile)

	// Products
	api.Post("/products", middleware.Required(authSvc), h.CreateProduct)
	api.Get("/products", h.GetAllProducts)

	// Categories
	api.Get("/categories", h.GetCategories)
	api.Get("/categories/:slug/products", h.GetCategoryProducts)

	// Search
	api.Get("/search", h.SearchAll)
}
