package usecase

import (
	"github.com/shopspring/decimal"

	"pos/internal/cart"
	"pos/internal/pricing"
)

// 金額はすべて小数2桁の文字列で返す（"7.50"）
type LineView struct {
	Barcode   string `json:"barcode"`
	Name      string `json:"name"`
	UnitPrice string `json:"unit_price"`
	Quantity  int    `json:"quantity"`
	Subtotal  string `json:"subtotal"`
}

// 最後にTransactionが表示した値。cash/changeは預かり金の入力前は空。
type DisplayView struct {
	Total  string `json:"total"`
	Cash   string `json:"cash,omitempty"`
	Change string `json:"change,omitempty"`
}

type TerminalView struct {
	ID      string      `json:"id"`
	Locked  bool        `json:"locked"`
	Items   []LineView  `json:"items"`
	Total   string      `json:"total"`
	Display DisplayView `json:"display"`
}

type SaleOutput struct {
	SaleID int64  `json:"sale_id"`
	Total  string `json:"total"`
	Cash   string `json:"cash"`
	Change string `json:"change"`
}

func money(d decimal.Decimal) string {
	return d.StringFixed(pricing.Scale)
}

// 最小単位（銭/セント）に変換
func minorUnits(d decimal.Decimal) int64 {
	return d.Round(pricing.Scale).Shift(pricing.Scale).IntPart()
}

func toLineViews(snap cart.Snapshot) []LineView {
	lines := snap.Lines()
	out := make([]LineView, 0, len(lines))
	for _, l := range lines {
		price := l.Product.Price()
		out = append(out, LineView{
			Barcode:   l.Product.Barcode(),
			Name:      l.Product.Name(),
			UnitPrice: money(price),
			Quantity:  l.Quantity,
			Subtotal:  money(price.Mul(decimal.NewFromInt(int64(l.Quantity)))),
		})
	}
	return out
}
