package usecase_test

import (
	"context"
	"fmt"
	"sync"

	"pos/internal/domain/model"
	repo "pos/internal/repository"

	"github.com/stretchr/testify/mock"
)

// =====================
// Repository mocks
// =====================

type ProductRepoMock struct{ mock.Mock }

func (m *ProductRepoMock) FindByBarcode(ctx context.Context, barcode string) (model.ProductRecord, error) {
	args := m.Called(ctx, barcode)
	p, _ := args.Get(0).(model.ProductRecord)
	return p, args.Error(1)
}

func (m *ProductRepoMock) Create(ctx context.Context, p model.ProductRecord) (model.ProductRecord, error) {
	panic("not used in TerminalUsecase tests")
}

type AuditRepoMock struct{ mock.Mock }

func (m *AuditRepoMock) Create(ctx context.Context, log model.AuditLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *AuditRepoMock) List(ctx context.Context, filter repo.AuditLogFilter) ([]model.AuditLog, error) {
	panic("not used in TerminalUsecase tests")
}

type SaleRepoMock struct{ mock.Mock }

func (m *SaleRepoMock) Create(ctx context.Context, sale model.Sale) (int64, error) {
	args := m.Called(ctx, sale)
	return args.Get(0).(int64), args.Error(1)
}

func (m *SaleRepoMock) FindByID(ctx context.Context, saleID int64) (model.Sale, error) {
	panic("not used in TerminalUsecase tests")
}

type SaleItemRepoMock struct{ mock.Mock }

func (m *SaleItemRepoMock) CreateBulk(ctx context.Context, saleID int64, items []model.SaleItem) error {
	args := m.Called(ctx, saleID, items)
	return args.Error(0)
}

func (m *SaleItemRepoMock) ListBySaleID(ctx context.Context, saleID int64) ([]model.SaleItem, error) {
	panic("not used in TerminalUsecase tests")
}

// =====================
// TxManager / TxRepos mocks
// =====================

// TxManagerMock は WithinTx の中で渡す repos を固定する
type TxManagerMock struct {
	mock.Mock
	Repos repo.TxRepos
}

func (m *TxManagerMock) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	m.Called(ctx)
	return fn(m.Repos)
}

type TxReposMock struct {
	sales     repo.SaleRepository
	saleItems repo.SaleItemRepository
	auditLogs repo.AuditLogRepository
}

func (r *TxReposMock) Sales() repo.SaleRepository         { return r.sales }
func (r *TxReposMock) SaleItems() repo.SaleItemRepository { return r.saleItems }
func (r *TxReposMock) AuditLogs() repo.AuditLogRepository { return r.auditLogs }

// 連番のID
type seqIDs struct {
	mu sync.Mutex
	n  int
}

func (g *seqIDs) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("t-%d", g.n)
}
