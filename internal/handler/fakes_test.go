package handler_test

import (
	"context"
	"sync"

	"pos/internal/domain/model"
	repo "pos/internal/repository"
)

// =====================
// インメモリのrepo
// =====================

type fakeProducts struct {
	items map[string]model.ProductRecord
}

func (f *fakeProducts) FindByBarcode(ctx context.Context, barcode string) (model.ProductRecord, error) {
	p, ok := f.items[barcode]
	if !ok {
		return model.ProductRecord{}, repo.ErrNotFound
	}
	return p, nil
}

func (f *fakeProducts) Create(ctx context.Context, p model.ProductRecord) (model.ProductRecord, error) {
	f.items[p.Barcode] = p
	return p, nil
}

type fakeOperators struct {
	mu  sync.Mutex
	ops map[string]*model.Operator
}

func (f *fakeOperators) Create(ctx context.Context, op *model.Operator) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	op.ID = int64(len(f.ops) + 1)
	cp := *op
	f.ops[op.Code] = &cp
	return nil
}

func (f *fakeOperators) FindByID(ctx context.Context, id int64) (*model.Operator, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, op := range f.ops {
		if op.ID == id {
			cp := *op
			return &cp, nil
		}
	}
	return nil, repo.ErrOperatorNotFound
}

func (f *fakeOperators) FindByCode(ctx context.Context, code string) (*model.Operator, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	op, ok := f.ops[code]
	if !ok {
		return nil, repo.ErrOperatorNotFound
	}
	cp := *op
	return &cp, nil
}

func (f *fakeOperators) Update(ctx context.Context, op *model.Operator) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *op
	f.ops[op.Code] = &cp
	return nil
}

type fakeAudit struct {
	mu   sync.Mutex
	logs []model.AuditLog
}

func (f *fakeAudit) Create(ctx context.Context, log model.AuditLog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logs = append(f.logs, log)
	return nil
}

func (f *fakeAudit) List(ctx context.Context, filter repo.AuditLogFilter) ([]model.AuditLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []model.AuditLog{}
	for _, l := range f.logs {
		if filter.OperatorID != nil && l.OperatorID != *filter.OperatorID {
			continue
		}
		if filter.TerminalID != nil && l.TerminalID != *filter.TerminalID {
			continue
		}
		if filter.Action != nil && l.Action != *filter.Action {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}

type fakeSales struct {
	mu    sync.Mutex
	sales []model.Sale
	items map[int64][]model.SaleItem
}

func (f *fakeSales) Create(ctx context.Context, sale model.Sale) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	sale.ID = int64(len(f.sales) + 1)
	f.sales = append(f.sales, sale)
	return sale.ID, nil
}

func (f *fakeSales) FindByID(ctx context.Context, saleID int64) (model.Sale, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.sales {
		if s.ID == saleID {
			return s, nil
		}
	}
	return model.Sale{}, repo.ErrNotFound
}

type fakeSaleItems struct{ sales *fakeSales }

func (f *fakeSaleItems) CreateBulk(ctx context.Context, saleID int64, items []model.SaleItem) error {
	f.sales.mu.Lock()
	defer f.sales.mu.Unlock()
	f.sales.items[saleID] = append(f.sales.items[saleID], items...)
	return nil
}

func (f *fakeSaleItems) ListBySaleID(ctx context.Context, saleID int64) ([]model.SaleItem, error) {
	f.sales.mu.Lock()
	defer f.sales.mu.Unlock()
	return f.sales.items[saleID], nil
}

type fakeTx struct {
	sales *fakeSales
	audit *fakeAudit
}

func (f *fakeTx) Sales() repo.SaleRepository         { return f.sales }
func (f *fakeTx) SaleItems() repo.SaleItemRepository { return &fakeSaleItems{sales: f.sales} }
func (f *fakeTx) AuditLogs() repo.AuditLogRepository { return f.audit }

func (f *fakeTx) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return fn(f)
}

type staticIDs struct{}

func (staticIDs) NewID() string { return "term-1" }

func repoFilterAll() repo.AuditLogFilter { return repo.AuditLogFilter{} }
