package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"pos/internal/config"
	"pos/internal/middleware"
	"pos/internal/repository"
	"pos/internal/usecase"
)

// /terminalsのHTTP
type TerminalHandler struct {
	uc *usecase.TerminalUsecase
}

// DI
func NewTerminalHandler(uc *usecase.TerminalUsecase) *TerminalHandler {
	return &TerminalHandler{uc: uc}
}

type ScanRequest struct {
	Barcode  string `json:"barcode"`
	Quantity int    `json:"quantity"`
}

// 金額は "10.00" のような文字列で受ける
type CashRequest struct {
	Cash string `json:"cash"`
}

func (h *TerminalHandler) RegisterRoutes(e *echo.Echo, cfg config.Config, operators repository.OperatorRepository) {
	g := e.Group("/terminals")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.OperatorActiveGuard(operators))

	g.POST("", h.open)
	g.GET("/:id", h.get)
	g.DELETE("/:id", h.close)
	g.POST("/:id/items", h.scan)
	g.DELETE("/:id/items/:barcode", h.removeItem)
	g.DELETE("/:id/items", h.clear)
	g.POST("/:id/lock", h.lock)
	g.POST("/:id/unlock", h.unlock)
	g.POST("/:id/tender", h.tender)
	g.POST("/:id/complete", h.complete)
}

func (h *TerminalHandler) open(c echo.Context) error {
	operatorID, ok := getOperatorIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.Open(c.Request().Context(), operatorID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *TerminalHandler) get(c echo.Context) error {
	operatorID, ok := getOperatorIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.Get(c.Request().Context(), operatorID, c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *TerminalHandler) close(c echo.Context) error {
	operatorID, ok := getOperatorIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	if err := h.uc.Close(c.Request().Context(), operatorID, c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *TerminalHandler) scan(c echo.Context) error {
	operatorID, ok := getOperatorIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req ScanRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.Scan(c.Request().Context(), operatorID, c.Param("id"), usecase.ScanInput{
		Barcode:  req.Barcode,
		Quantity: req.Quantity,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// ?quantity= が無ければ1つ減らす
func (h *TerminalHandler) removeItem(c echo.Context) error {
	operatorID, ok := getOperatorIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	quantity := 1
	if v := c.QueryParam("quantity"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid quantity"})
		}
		quantity = n
	}

	out, err := h.uc.RemoveItem(c.Request().Context(), operatorID, c.Param("id"), usecase.RemoveInput{
		Barcode:  c.Param("barcode"),
		Quantity: quantity,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *TerminalHandler) clear(c echo.Context) error {
	operatorID, ok := getOperatorIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.ClearCart(c.Request().Context(), operatorID, c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *TerminalHandler) lock(c echo.Context) error {
	operatorID, ok := getOperatorIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.Lock(c.Request().Context(), operatorID, c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *TerminalHandler) unlock(c echo.Context) error {
	operatorID, ok := getOperatorIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.Unlock(c.Request().Context(), operatorID, c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *TerminalHandler) tender(c echo.Context) error {
	operatorID, ok := getOperatorIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	cash, err := bindCash(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid cash"})
	}

	out, err := h.uc.Tender(c.Request().Context(), operatorID, c.Param("id"), cash)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *TerminalHandler) complete(c echo.Context) error {
	operatorID, ok := getOperatorIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	cash, err := bindCash(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid cash"})
	}

	out, err := h.uc.Complete(c.Request().Context(), operatorID, c.Param("id"), cash)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func bindCash(c echo.Context) (decimal.Decimal, error) {
	var req CashRequest
	if err := c.Bind(&req); err != nil {
		return decimal.Zero, err
	}
	return decimal.NewFromString(req.Cash)
}
