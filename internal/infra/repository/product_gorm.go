package repository

import (
	"context"
	"errors"

	"pos/internal/domain/model"
	repo "pos/internal/repository"

	"gorm.io/gorm"
)

type ProductGormRepository struct {
	db *gorm.DB
}

// DI
func NewProductGormRepository(db *gorm.DB) *ProductGormRepository {
	return &ProductGormRepository{db: db}
}

// 有効（is_active=true）かつ削除されていない商品をバーコードで取得
func (r *ProductGormRepository) FindByBarcode(ctx context.Context, barcode string) (model.ProductRecord, error) {
	var p model.ProductRecord
	err := r.db.WithContext(ctx).
		Where("barcode = ? AND is_active = ?", barcode, true).
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.ProductRecord{}, repo.ErrNotFound
	}
	if err != nil {
		return model.ProductRecord{}, err
	}
	return p, nil
}

// 商品の作成
func (r *ProductGormRepository) Create(ctx context.Context, p model.ProductRecord) (model.ProductRecord, error) {
	if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
		return model.ProductRecord{}, err
	}
	return p, nil
}
