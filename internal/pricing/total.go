// Package pricing はカート内容から合計金額を計算する。
package pricing

import (
	"github.com/shopspring/decimal"

	"pos/internal/cart"
)

// 金額の小数桁
const Scale = 2

// 価格×数量を行の順に足し、小数2桁に四捨五入（half-up）する。
func Total(items cart.Snapshot) decimal.Decimal {
	total := decimal.Zero
	for _, line := range items.Lines() {
		total = total.Add(line.Product.Price().Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return total.Round(Scale)
}
