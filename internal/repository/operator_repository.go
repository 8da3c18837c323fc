package repository

import (
	"context"
	"errors"

	"pos/internal/domain/model"
)

// 担当者が見つからない
var ErrOperatorNotFound = errors.New("operator not found")

// 担当者の保存・取得を約束
type OperatorRepository interface {
	Create(ctx context.Context, op *model.Operator) error
	FindByID(ctx context.Context, id int64) (*model.Operator, error)
	FindByCode(ctx context.Context, code string) (*model.Operator, error)
	// 最終ログインなどの更新
	Update(ctx context.Context, op *model.Operator) error
}
