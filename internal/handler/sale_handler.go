package handler

import (
	"net/http"
	"strconv"

	"pos/internal/config"
	"pos/internal/middleware"
	"pos/internal/repository"
	"pos/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /sales と /audit-logs
type SaleHandler struct {
	uc *usecase.SaleUsecase
}

// DI
func NewSaleHandler(uc *usecase.SaleUsecase) *SaleHandler {
	return &SaleHandler{uc: uc}
}

func (h *SaleHandler) RegisterRoutes(e *echo.Echo, cfg config.Config, operators repository.OperatorRepository) {
	auth := []echo.MiddlewareFunc{middleware.AuthJWT(cfg), middleware.OperatorActiveGuard(operators)}

	e.GET("/sales/:id", h.getSale, auth...)
	e.GET("/audit-logs", h.listAuditLogs, auth...)
}

func (h *SaleHandler) getSale(c echo.Context) error {
	saleID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.uc.GetSale(c.Request().Context(), saleID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// ?terminal_id=&action=&limit=&offset=
func (h *SaleHandler) listAuditLogs(c echo.Context) error {
	operatorID, ok := getOperatorIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	limit, err := queryInt(c, "limit")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid limit"})
	}
	offset, err := queryInt(c, "offset")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid offset"})
	}

	out, err := h.uc.ListAuditLogs(c.Request().Context(), operatorID, usecase.ListAuditLogsInput{
		TerminalID: c.QueryParam("terminal_id"),
		Action:     c.QueryParam("action"),
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func queryInt(c echo.Context, key string) (int, error) {
	v := c.QueryParam(key)
	if v == "" {
		return 0, nil
	}
	return strconv.Atoi(v)
}
