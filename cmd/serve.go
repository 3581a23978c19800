package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/labstack/echo/v4"
	"github.com/redis/rueidis"
	"github.com/spf13/cobra"

	config "todo-digest.com/todo-digest/internal/configs"
	httpapi "todo-digest.com/todo-digest/internal/http"
	"todo-digest.com/todo-digest/internal/ratelimit"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  "Starts the todo HTTP API including the AI summary endpoint",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := bootstrap()
		if err != nil {
			return err
		}

		app, err := newApp(cfg, logger)
		if err != nil {
			return err
		}

		var redisClient rueidis.Client
		var limiter ratelimit.Limiter = ratelimit.NewMemoryLimiter(cfg.RateLimit, time.Minute)
		if cfg.RedisAddr != "" {
			redisClient, err = config.NewRedisClient(cfg.RedisAddr)
			if err != nil {
				return err
			}
			limiter = ratelimit.NewRedisLimiter(redisClient, cfg.RedisRateLimitPrefix, cfg.RateLimit, time.Minute)
			logger.Info("using redis rate limiter", slog.String("addr", cfg.RedisAddr))
		}

		e := echo.New()
		e.HideBanner = true
		e.HidePort = true
		httpapi.Register(e, httpapi.NewTodoHandler(app.todos, app.summaries, logger), limiter, logger)

		return runServer(e, cfg.AppURL, cfg.ShutdownTimeout(), func(ctx context.Context) error {
			shutdownErr := e.Shutdown(ctx)
			if redisClient != nil {
				redisClient.Close()
			}
			return errors.Join(shutdownErr, app.close())
		}, logger)
	},
}

// runServer serves e on addr until a shutdown signal arrives or the listener
// fails, running stop on the way out.
func runServer(e *echo.Echo, addr string, timeout time.Duration, stop gfshutdown.Operation, logger *slog.Logger) error {
	startErr := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", slog.String("addr", addr))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			startErr <- err
		}
	}()

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		timeout,
		map[string]gfshutdown.Operation{"http-server": stop},
	)

	select {
	case err := <-startErr:
		logger.Error("server stopped unexpectedly", slog.String("error", err.Error()))
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return errors.Join(fmt.Errorf("start http server: %w", err), stop(ctx))
	case code := <-wait:
		if code != 0 {
			return errors.New("shutdown did not complete cleanly")
		}
	}

	logger.Info("HTTP server shut down gracefully")
	return nil
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
