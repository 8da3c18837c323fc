package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"pos/internal/config"
	"pos/internal/repository"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// echoを組み立てる（テストからも使う）
func New(
	cfg config.Config,
	logger *zap.Logger,
	gatherer prometheus.Gatherer,
	operators repository.OperatorRepository,
	h Handlers,
) *echo.Echo {
	if logger == nil {
		logger = zap.NewNop()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(echomw.Recover())
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogURI:     true,
		LogMethod:  true,
		LogStatus:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			logger.Info("request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
			)
			return nil
		},
	}))

	RegisterRoutes(e, cfg, gatherer, operators, h)
	return e
}

// ctxが終わるまで動かし、終わったらgracefulに止める
func Start(ctx context.Context, addr string, e *echo.Echo, logger *zap.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("server started", zap.String("addr", addr))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	logger.Info("server shutting down")
	return e.Shutdown(shutdownCtx)
}
