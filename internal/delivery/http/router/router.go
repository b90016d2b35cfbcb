// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"taskboard/internal/delivery/http/middleware"
	"taskboard/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AccountHandler *handler.AccountHandler
	TaskHandler    *handler.TaskHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	accountHandler *handler.AccountHandler
	taskHandler    *handler.TaskHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		accountHandler: params.AccountHandler,
		taskHandler:    params.TaskHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
// Authentication applies everywhere; the middleware's bypass allow-list
// exempts the entry points (register, login, refresh, health, docs).
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.Use(r.authMiddleware.Authenticate)

	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Session entry points
	e.POST("/register/", r.accountHandler.Register)
	e.POST("/login/", r.accountHandler.Login)
	e.POST("/refresh/", r.accountHandler.Refresh)

	// Session-bound account routes
	e.POST("/logout/", r.accountHandler.Logout)
	e.GET("/profile/", r.accountHandler.GetProfile)

	// Task routes: reads and creation for any authenticated user, mutation
	// of existing tasks for administrators only.
	tasks := e.Group("/api/tasks")
	{
		tasks.GET("/", r.taskHandler.List)
		tasks.POST("/", r.taskHandler.Create)
		tasks.GET("/:id/", r.taskHandler.Get)
		tasks.PUT("/:id/", r.taskHandler.Update, r.authMiddleware.RequireAdmin)
		tasks.DELETE("/:id/", r.taskHandler.Delete, r.authMiddleware.RequireAdmin)
	}
}
