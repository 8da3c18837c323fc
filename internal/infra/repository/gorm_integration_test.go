package repository_test

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"pos/internal/domain/model"
	"pos/internal/infra/db"
	infraRepo "pos/internal/infra/repository"
	repo "pos/internal/repository"
)

// TEST_DATABASE_URL が無ければスキップ（docker compose のpostgresを想定）
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL is not set")
	}

	gormDB, err := db.Connect(dsn)
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gormDB))
	return gormDB
}

func TestProductGorm_FindByBarcode(t *testing.T) {
	gormDB := openTestDB(t)
	ctx := context.Background()
	products := infraRepo.NewProductGormRepository(gormDB)

	barcode := "T-" + uuid.NewString()[:8]
	_, err := products.Create(ctx, model.ProductRecord{Barcode: barcode, Name: "Milk", Price: 250, IsActive: true})
	require.NoError(t, err)

	got, err := products.FindByBarcode(ctx, barcode)
	require.NoError(t, err)
	assert.Equal(t, "Milk", got.Name)
	assert.Equal(t, "2.5", got.ToItem().Price().String())

	_, err = products.FindByBarcode(ctx, "missing-"+barcode)
	assert.ErrorIs(t, err, repo.ErrNotFound)
}

func TestTxManagerGorm_SaleWithItems(t *testing.T) {
	gormDB := openTestDB(t)
	ctx := context.Background()
	tm := infraRepo.NewTxManagerGorm(gormDB)
	terminalID := uuid.NewString()

	var saleID int64
	err := tm.WithinTx(ctx, func(r repo.TxRepos) error {
		id, err := r.Sales().Create(ctx, model.Sale{TerminalID: terminalID, OperatorID: 1, Total: 750, Cash: 1000, Change: 250})
		if err != nil {
			return err
		}
		saleID = id
		return r.SaleItems().CreateBulk(ctx, id, []model.SaleItem{
			{Barcode: "P1", ProductNameSnapshot: "Apple", UnitPriceSnapshot: 250, Quantity: 3},
		})
	})
	require.NoError(t, err)

	items, err := infraRepo.NewSaleItemGormRepository(gormDB).ListBySaleID(ctx, saleID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, int64(3), items[0].Quantity)

	sale, err := infraRepo.NewSaleGormRepository(gormDB).FindByID(ctx, saleID)
	require.NoError(t, err)
	assert.Equal(t, terminalID, sale.TerminalID)
}

func TestAuditLogGorm_ListByTerminal(t *testing.T) {
	gormDB := openTestDB(t)
	ctx := context.Background()
	logs := infraRepo.NewAuditLogGormRepository(gormDB)
	terminalID := uuid.NewString()

	require.NoError(t, logs.Create(ctx, model.AuditLog{OperatorID: 1, TerminalID: terminalID, Action: model.AuditActionAddItem, Barcode: "P1", Quantity: 2}))
	require.NoError(t, logs.Create(ctx, model.AuditLog{OperatorID: 1, TerminalID: terminalID, Action: model.AuditActionClearCart}))

	got, err := logs.List(ctx, repo.AuditLogFilter{TerminalID: &terminalID})

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, model.AuditActionAddItem, got[0].Action)
	assert.Equal(t, model.AuditActionClearCart, got[1].Action)
}

func TestOperatorGorm_FindByCode(t *testing.T) {
	gormDB := openTestDB(t)
	ctx := context.Background()
	ops := infraRepo.NewOperatorGormRepository(gormDB)
	code := uuid.NewString()[:8]

	require.NoError(t, ops.Create(ctx, &model.Operator{Code: code, Name: "Clerk", PINHash: "x", IsActive: true}))

	got, err := ops.FindByCode(ctx, code)
	require.NoError(t, err)
	assert.Equal(t, "Clerk", got.Name)

	_, err = ops.FindByCode(ctx, "nope-"+code)
	assert.ErrorIs(t, err, repo.ErrOperatorNotFound)
}
