package v1

import (
	"taskmanager/internal/api/v1/handlers"
	"taskmanager/internal/middleware"
	"taskmanager/internal/token"

	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes wires the API under /api/v1. Task and status reads are
// public; everything else requires a bearer token, and the services enforce
// ownership on top of that.
func RegisterRoutes(app *fiber.App, h *handlers.Handler, tokens *token.Service) {
	api := app.Group("/api/v1")
	auth := middleware.UseToken(tokens)

	// Auth
	api.Post("/login", h.Login)
	api.Post("/logout", auth, h.Logout)

	// User
	api.Post("/users", h.CreateUser)
	userRoutes := api.Group("/users", auth)
	userRoutes.Get("/", h.GetAllUsers)
	userRoutes.Get("/:id", h.GetUser)
	userRoutes.Put("/:id", h.UpdateUser)
	userRoutes.Delete("/:id", h.DeleteUser)

	// Task status
	api.Get("/statuses", h.GetAllStatuses)
	api.Get("/statuses/:id", h.GetStatus)
	statusRoutes := api.Group("/statuses", auth)
	statusRoutes.Post("/", h.CreateStatus)
	statusRoutes.Put("/:id", h.UpdateStatus)
	statusRoutes.Delete("/:id", h.DeleteStatus)

	// Label
	labelRoutes := api.Group("/labels", auth)
	labelRoutes.Post("/", h.CreateLabel)
	labelRoutes.Get("/", h.GetAllLabels)
	labelRoutes.Get("/:id", h.GetLabel)
	labelRoutes.Put("/:id", h.UpdateLabel)
	labelRoutes.Delete("/:id", h.DeleteLabel)

	// Task
	api.Get("/tasks", h.ListTasks)
	api.Get("/tasks/:id", h.GetTask)
	taskRoutes := api.Group("/tasks", auth)
	taskRoutes.Post("/", h.CreateTask)
	taskRoutes.Put("/:id", h.UpdateTask)
	taskRoutes.Delete("/:id", h.DeleteTask)
}
