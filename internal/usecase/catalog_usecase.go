package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"pos/internal/domain/model"
	repo "pos/internal/repository"
)

// 商品マスタの登録と参照
type CatalogUsecase struct {
	products repo.ProductRepository
}

// DI
func NewCatalogUsecase(products repo.ProductRepository) *CatalogUsecase {
	return &CatalogUsecase{products: products}
}

type CreateProductInput struct {
	Barcode     string
	Name        string
	Description string
	Price       string // "2.50"
}

type ProductView struct {
	Barcode     string `json:"barcode"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       string `json:"price"`
}

func toProductView(p model.Product) ProductView {
	return ProductView{
		Barcode:     p.Barcode(),
		Name:        p.Name(),
		Description: p.Description(),
		Price:       money(p.Price()),
	}
}

func (u *CatalogUsecase) CreateProduct(ctx context.Context, in CreateProductInput) (ProductView, error) {
	barcode := strings.TrimSpace(in.Barcode)
	name := strings.TrimSpace(in.Name)
	if barcode == "" || len(barcode) > 64 {
		return ProductView{}, NewHTTPError(http.StatusBadRequest, "invalid barcode")
	}
	if name == "" {
		return ProductView{}, NewHTTPError(http.StatusBadRequest, "name required")
	}

	//価格は0以上、小数2桁まで
	price, err := decimal.NewFromString(strings.TrimSpace(in.Price))
	if err != nil || price.IsNegative() || !price.Equal(price.Round(2)) {
		return ProductView{}, NewHTTPError(http.StatusBadRequest, "invalid price")
	}

	//バーコード重複
	_, err = u.products.FindByBarcode(ctx, barcode)
	if err == nil {
		return ProductView{}, NewHTTPError(http.StatusConflict, "barcode already exists")
	}
	if !errors.Is(err, repo.ErrNotFound) {
		return ProductView{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	created, err := u.products.Create(ctx, model.ProductRecord{
		Barcode:     barcode,
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		Price:       minorUnits(price),
		IsActive:    true,
	})
	if err != nil {
		return ProductView{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return toProductView(created.ToItem()), nil
}

func (u *CatalogUsecase) GetProduct(ctx context.Context, barcode string) (ProductView, error) {
	rec, err := u.products.FindByBarcode(ctx, strings.TrimSpace(barcode))
	if errors.Is(err, repo.ErrNotFound) {
		return ProductView{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return ProductView{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return toProductView(rec.ToItem()), nil
}
