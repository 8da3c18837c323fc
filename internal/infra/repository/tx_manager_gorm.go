package repository

import (
	"context"

	repo "pos/internal/repository"

	"gorm.io/gorm"
)

type txReposGorm struct {
	sales     repo.SaleRepository
	saleItems repo.SaleItemRepository
	auditLogs repo.AuditLogRepository
}

func (r *txReposGorm) Sales() repo.SaleRepository         { return r.sales }
func (r *txReposGorm) SaleItems() repo.SaleItemRepository { return r.saleItems }
func (r *txReposGorm) AuditLogs() repo.AuditLogRepository { return r.auditLogs }

type TxManagerGorm struct {
	db *gorm.DB
}

func NewTxManagerGorm(db *gorm.DB) *TxManagerGorm {
	return &TxManagerGorm{db: db}
}

func (tm *TxManagerGorm) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		//repoはtxを持ったDBで作り直す
		r := &txReposGorm{
			sales:     NewSaleGormRepository(tx),
			saleItems: NewSaleItemGormRepository(tx),
			auditLogs: NewAuditLogGormRepository(tx),
		}
		return fn(r)
	})
}
