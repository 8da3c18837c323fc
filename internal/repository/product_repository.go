package repository

import (
	"context"
	"errors"

	"pos/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

// カタログ（商品マスタ）の取得と登録だけを約束。
type ProductRepository interface {
	//有効な商品をバーコードで1件取得
	FindByBarcode(ctx context.Context, barcode string) (model.ProductRecord, error)
	Create(ctx context.Context, p model.ProductRecord) (model.ProductRecord, error)
}
