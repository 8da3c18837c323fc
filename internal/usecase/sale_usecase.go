package usecase

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"pos/internal/domain/model"
	repo "pos/internal/repository"
)

// 会計済みの販売と監査ログの参照
type SaleUsecase struct {
	sales     repo.SaleRepository
	saleItems repo.SaleItemRepository
	auditLogs repo.AuditLogRepository
}

// DI
func NewSaleUsecase(
	sales repo.SaleRepository,
	saleItems repo.SaleItemRepository,
	auditLogs repo.AuditLogRepository,
) *SaleUsecase {
	return &SaleUsecase{
		sales:     sales,
		saleItems: saleItems,
		auditLogs: auditLogs,
	}
}

type SaleItemView struct {
	Barcode   string `json:"barcode"`
	Name      string `json:"name"`
	UnitPrice string `json:"unit_price"`
	Quantity  int64  `json:"quantity"`
}

type SaleDetail struct {
	ID         int64          `json:"id"`
	TerminalID string         `json:"terminal_id"`
	OperatorID int64          `json:"operator_id"`
	Total      string         `json:"total"`
	Cash       string         `json:"cash"`
	Change     string         `json:"change"`
	Items      []SaleItemView `json:"items"`
	CreatedAt  time.Time      `json:"created_at"`
}

type ListAuditLogsInput struct {
	TerminalID string
	Action     string
	Limit      int
	Offset     int
}

// 最小単位から表示用へ
func fromMinor(v int64) string {
	return money(decimal.New(v, -2))
}

func (u *SaleUsecase) GetSale(ctx context.Context, saleID int64) (SaleDetail, error) {
	if saleID <= 0 {
		return SaleDetail{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	s, err := u.sales.FindByID(ctx, saleID)
	if errors.Is(err, repo.ErrNotFound) {
		return SaleDetail{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return SaleDetail{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	items, err := u.saleItems.ListBySaleID(ctx, saleID)
	if err != nil {
		return SaleDetail{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	out := SaleDetail{
		ID:         s.ID,
		TerminalID: s.TerminalID,
		OperatorID: s.OperatorID,
		Total:      fromMinor(s.Total),
		Cash:       fromMinor(s.Cash),
		Change:     fromMinor(s.Change),
		Items:      make([]SaleItemView, 0, len(items)),
		CreatedAt:  s.CreatedAt,
	}
	for _, it := range items {
		out.Items = append(out.Items, SaleItemView{
			Barcode:   it.Barcode,
			Name:      it.ProductNameSnapshot,
			UnitPrice: fromMinor(it.UnitPriceSnapshot),
			Quantity:  it.Quantity,
		})
	}
	return out, nil
}

// 自分の操作ログだけを返す
func (u *SaleUsecase) ListAuditLogs(ctx context.Context, operatorID int64, in ListAuditLogsInput) ([]model.AuditLog, error) {
	if in.Limit < 0 || in.Limit > 200 {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}
	if in.Offset < 0 {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid offset")
	}

	f := repo.AuditLogFilter{OperatorID: &operatorID, Limit: in.Limit, Offset: in.Offset}
	if in.TerminalID != "" {
		f.TerminalID = &in.TerminalID
	}
	if in.Action != "" {
		a := model.AuditAction(in.Action)
		switch a {
		case model.AuditActionAddItem, model.AuditActionRemoveItem, model.AuditActionClearCart, model.AuditActionCompleteSale:
		default:
			return nil, NewHTTPError(http.StatusBadRequest, "invalid action")
		}
		f.Action = &a
	}

	logs, err := u.auditLogs.List(ctx, f)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return logs, nil
}
