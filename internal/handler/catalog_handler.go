package handler

import (
	"net/http"

	"pos/internal/config"
	"pos/internal/middleware"
	"pos/internal/repository"
	"pos/internal/usecase"

	"github.com/labstack/echo/v4"
)

// ProductCreateRequest は商品登録の入力です。価格は "2.50" のような文字列。
type ProductCreateRequest struct {
	Barcode     string `json:"barcode"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       string `json:"price"`
}

// /products（商品マスタ）
type CatalogHandler struct {
	uc *usecase.CatalogUsecase
}

// DI
func NewCatalogHandler(uc *usecase.CatalogUsecase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

func (h *CatalogHandler) RegisterRoutes(e *echo.Echo, cfg config.Config, operators repository.OperatorRepository) {
	g := e.Group("/products")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.OperatorActiveGuard(operators))

	g.POST("", h.create)
	g.GET("/:barcode", h.get)
}

func (h *CatalogHandler) create(c echo.Context) error {
	var req ProductCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.CreateProduct(c.Request().Context(), usecase.CreateProductInput{
		Barcode:     req.Barcode,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *CatalogHandler) get(c echo.Context) error {
	out, err := h.uc.GetProduct(c.Request().Context(), c.Param("barcode"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
