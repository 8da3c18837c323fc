package repository

import (
	"context"
	"errors"

	"pos/internal/domain/model"
	domainrepo "pos/internal/repository"

	"gorm.io/gorm"
)

type operatorGormRepository struct {
	db *gorm.DB
}

// DI
// main.goでこれをnewしてusecaseに注入します。
func NewOperatorGormRepository(db *gorm.DB) domainrepo.OperatorRepository {
	return &operatorGormRepository{db: db}
}

func (r *operatorGormRepository) Create(ctx context.Context, op *model.Operator) error {
	return r.db.WithContext(ctx).Create(op).Error
}

// IDで担当者を1件取得
func (r *operatorGormRepository) FindByID(ctx context.Context, id int64) (*model.Operator, error) {
	return r.findOne(ctx, "id = ?", id)
}

// 担当者コードで1件取得
func (r *operatorGormRepository) FindByCode(ctx context.Context, code string) (*model.Operator, error) {
	return r.findOne(ctx, "code = ?", code)
}

func (r *operatorGormRepository) Update(ctx context.Context, op *model.Operator) error {
	return r.db.WithContext(ctx).Save(op).Error
}

func (r *operatorGormRepository) findOne(ctx context.Context, query string, arg interface{}) (*model.Operator, error) {
	var op model.Operator
	err := r.db.WithContext(ctx).Where(query, arg).First(&op).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainrepo.ErrOperatorNotFound
	}
	if err != nil {
		return nil, err
	}
	return &op, nil
}
