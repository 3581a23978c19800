package middleware

import (
	"log/slog"

	"github.com/labstack/echo/v4"

	apperrors "todo-digest.com/todo-digest/internal/errors"
	"todo-digest.com/todo-digest/internal/ratelimit"
)

// RateLimiter rejects clients that exceed the limiter's window. A limiter
// backend failure lets the request through.
func RateLimiter(limiter ratelimit.Limiter, logger *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			allowed, err := limiter.Allow(c.Request().Context(), c.RealIP())
			if err != nil {
				logger.Warn("rate limiter unavailable, allowing request",
					slog.String("remote_ip", c.RealIP()),
					slog.String("error", err.Error()),
				)
				return next(c)
			}

			if !allowed {
				return apperrors.ErrRateLimited
			}

			return next(c)
		}
	}
}
