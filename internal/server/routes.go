package server

import (
	"net/http"

	"pos/internal/config"
	"pos/internal/handler"
	"pos/internal/repository"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Handlers struct {
	Auth     *handler.AuthHandler
	Terminal *handler.TerminalHandler
	Catalog  *handler.CatalogHandler
	Sale     *handler.SaleHandler
}

func RegisterRoutes(
	e *echo.Echo,
	cfg config.Config,
	gatherer prometheus.Gatherer,
	operators repository.OperatorRepository,
	h Handlers,
) {
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	h.Auth.RegisterRoutes(e, cfg, operators)
	h.Terminal.RegisterRoutes(e, cfg, operators)
	h.Catalog.RegisterRoutes(e, cfg, operators)
	h.Sale.RegisterRoutes(e, cfg, operators)
}
