package http

import (
	"log/slog"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"

	middleware "todo-digest.com/todo-digest/internal/http/middlewares"
	"todo-digest.com/todo-digest/internal/ratelimit"
)

func Register(e *echo.Echo, h *TodoHandler, limiter ratelimit.Limiter, logger *slog.Logger) {
	e.HTTPErrorHandler = ErrorHandler(logger)

	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RequestLogger(logger))
	e.Use(echomiddleware.CORS())

	e.GET("/healthz", h.Health)

	todos := e.Group("/todos", middleware.RateLimiter(limiter, logger))
	todos.POST("", h.CreateTodo)
	todos.GET("", h.ListTodos)
	todos.GET("/summary", h.SummarizeTodos)
	todos.PUT("/:id", h.UpdateTodo)
	todos.DELETE("/:id", h.DeleteTodo)
	todos.PUT("/:id/complete", h.ToggleTodo)
}
