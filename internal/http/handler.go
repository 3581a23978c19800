package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	dto "todo-digest.com/todo-digest/internal/data_models"
	apperrors "todo-digest.com/todo-digest/internal/errors"
	"todo-digest.com/todo-digest/internal/http/validators"
	"todo-digest.com/todo-digest/internal/services"
)

type TodoHandler struct {
	todoService    *services.TodoService
	summaryService *services.SummaryService
	logger         *slog.Logger
}

func NewTodoHandler(
	todoService *services.TodoService,
	summaryService *services.SummaryService,
	logger *slog.Logger,
) *TodoHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &TodoHandler{
		todoService:    todoService,
		summaryService: summaryService,
		logger:         logger,
	}
}

func (h *TodoHandler) CreateTodo(c echo.Context) error {
	req, err := bindTodoRequest(c)
	if err != nil {
		return err
	}

	todo, err := h.todoService.Create(c.Request().Context(), req.Text)
	if err != nil {
		return h.fail(c, err, "Failed to add todo")
	}

	return c.JSON(http.StatusCreated, todo)
}

func (h *TodoHandler) ListTodos(c echo.Context) error {
	todos, err := h.todoService.List(c.Request().Context())
	if err != nil {
		return h.fail(c, err, "Failed to fetch todos")
	}

	return c.JSON(http.StatusOK, todos)
}

func (h *TodoHandler) UpdateTodo(c echo.Context) error {
	req, err := bindTodoRequest(c)
	if err != nil {
		return err
	}

	id, err := todoID(c)
	if err != nil {
		return err
	}

	todo, err := h.todoService.Update(c.Request().Context(), id, req.Text)
	if err != nil {
		return h.fail(c, err, "Failed to update todo")
	}

	return c.JSON(http.StatusOK, todo)
}

func (h *TodoHandler) DeleteTodo(c echo.Context) error {
	id, err := todoID(c)
	if err != nil {
		return err
	}

	if err := h.todoService.Delete(c.Request().Context(), id); err != nil {
		return h.fail(c, err, "Failed to delete todo")
	}

	return c.JSON(http.StatusOK, dto.MessageResponse{Message: "Todo deleted successfully"})
}

func (h *TodoHandler) ToggleTodo(c echo.Context) error {
	id, err := todoID(c)
	if err != nil {
		return err
	}

	todo, err := h.todoService.Toggle(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, err, "Failed to toggle completion")
	}

	return c.JSON(http.StatusOK, todo)
}

func (h *TodoHandler) SummarizeTodos(c echo.Context) error {
	summary, err := h.summaryService.Summarize(c.Request().Context())
	if err != nil {
		return h.fail(c, err, "Failed to generate AI summary")
	}

	return c.JSON(http.StatusOK, dto.SummaryResponse{Summary: summary.Text})
}

func (h *TodoHandler) Health(c echo.Context) error {
	if err := h.todoService.Ping(c.Request().Context()); err != nil {
		h.logger.Error("health check failed", slog.String("error", err.Error()))
		return c.JSON(http.StatusServiceUnavailable, dto.HealthResponse{Status: "unavailable"})
	}

	return c.JSON(http.StatusOK, dto.HealthResponse{Status: "ok"})
}

// fail passes client errors through and hides everything else behind a
// generic message after logging the detail.
func (h *TodoHandler) fail(c echo.Context, err error, message string) error {
	if apperrors.IsClientError(err) {
		return err
	}

	h.logger.Error(message,
		slog.String("method", c.Request().Method),
		slog.String("path", c.Path()),
		slog.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
		slog.String("error", err.Error()),
	)
	return echo.NewHTTPError(http.StatusInternalServerError, message)
}

func bindTodoRequest(c echo.Context) (*dto.TodoRequestData, error) {
	var req dto.TodoRequestData
	if err := (&echo.DefaultBinder{}).BindBody(c, &req); err != nil {
		return nil, apperrors.ErrInvalidJSON
	}
	if err := validators.ValidateTodoRequest(&req); err != nil {
		return nil, err
	}
	return &req, nil
}

// todoID parses the :id path parameter. A malformed id cannot name an
// existing todo, so it is reported as not found.
func todoID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, apperrors.ErrTodoNotFound
	}
	return uint(id), nil
}
