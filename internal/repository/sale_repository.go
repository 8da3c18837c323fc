package repository

import (
	"context"

	"pos/internal/domain/model"
)

type SaleRepository interface {
	Create(ctx context.Context, sale model.Sale) (int64, error)
	FindByID(ctx context.Context, saleID int64) (model.Sale, error)
}

type SaleItemRepository interface {
	CreateBulk(ctx context.Context, saleID int64, items []model.SaleItem) error
	ListBySaleID(ctx context.Context, saleID int64) ([]model.SaleItem, error)
}
