package usecase

import (
	"context"
	"net/http"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"pos/internal/domain/model"
	"pos/internal/pricing"
	repo "pos/internal/repository"
)

// 会計を確定する。
// 預かり金が足りなければ400で、預かり金とお釣りの表示は消す。販売・明細・監査ログは1つのTxで保存し、成功したらカートを空にする。
func (u *TerminalUsecase) Complete(ctx context.Context, operatorID int64, terminalID string, cash decimal.Decimal) (SaleOutput, error) {
	t, err := u.find(operatorID, terminalID)
	if err != nil {
		return SaleOutput{}, err
	}
	if cash.IsNegative() {
		return SaleOutput{}, NewHTTPError(http.StatusBadRequest, "invalid cash")
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	//ロック中は会計もできない
	if t.checkout.Locked() {
		return SaleOutput{}, NewHTTPError(http.StatusConflict, "cart is locked")
	}

	snap := t.checkout.Cart()
	if snap.Empty() {
		return SaleOutput{}, NewHTTPError(http.StatusBadRequest, "cart is empty")
	}

	total := pricing.Total(snap)
	t.tx.SetTotal(total)
	t.tx.SetCash(cash)
	change, err := t.tx.Settle()
	if err != nil {
		t.resetTender()
		t.refreshDisplay()
		return SaleOutput{}, mapCartError(err)
	}

	//明細は会計時点の名前と価格を保存
	items := make([]model.SaleItem, 0, snap.Len())
	for _, l := range snap.Lines() {
		items = append(items, model.SaleItem{
			Barcode:             l.Product.Barcode(),
			ProductNameSnapshot: l.Product.Name(),
			UnitPriceSnapshot:   minorUnits(l.Product.Price()),
			Quantity:            int64(l.Quantity),
		})
	}

	var saleID int64
	err = u.txm.WithinTx(ctx, func(r repo.TxRepos) error {
		id, err := r.Sales().Create(ctx, model.Sale{
			TerminalID: t.id,
			OperatorID: t.operatorID,
			Total:      minorUnits(total),
			Cash:       minorUnits(cash),
			Change:     minorUnits(change),
		})
		if err != nil {
			return err
		}
		if err := r.SaleItems().CreateBulk(ctx, id, items); err != nil {
			return err
		}
		log, err := newAuditLog(t, model.AuditActionCompleteSale, "", 0, snap)
		if err != nil {
			return err
		}
		if err := r.AuditLogs().Create(ctx, log); err != nil {
			return err
		}
		saleID = id
		return nil
	})
	if err != nil {
		u.logger.Error("complete sale failed", zap.String("terminal_id", t.id), zap.Error(err))
		return SaleOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	t.settling = true
	err = t.checkout.Clear()
	t.settling = false
	if err != nil {
		return SaleOutput{}, mapCartError(err)
	}
	t.resetTender()
	t.refreshDisplay()

	u.metrics.IncSale()
	u.logger.Info("sale completed",
		zap.Int64("sale_id", saleID),
		zap.String("terminal_id", t.id),
		zap.String("total", money(total)),
	)

	return SaleOutput{
		SaleID: saleID,
		Total:  money(total),
		Cash:   money(cash),
		Change: money(change),
	}, nil
}
