// Package transaction は表示用の合計・預かり金・お釣りを扱う。
//
// Run はカートを参照しない。カートが変わったら、呼び出し側が SetTotal / SetCash で
// 値を合わせてから Run を呼ぶこと。
package transaction

import (
	"errors"

	"github.com/shopspring/decimal"
)

// 預かり金が合計に足りない
var ErrInsufficientAmount = errors.New("insufficient amount")

// 表示を更新するコールバック
type Display func(decimal.Decimal)

type Transaction struct {
	total  decimal.Decimal
	cash   decimal.Decimal
	change decimal.Decimal

	totalDisplay  Display
	cashDisplay   Display
	changeDisplay Display
}

// nilのコールバックは何もしない
func New(totalDisplay, cashDisplay, changeDisplay Display) *Transaction {
	return &Transaction{
		total:         decimal.Zero,
		cash:          decimal.Zero,
		change:        decimal.Zero,
		totalDisplay:  orNop(totalDisplay),
		cashDisplay:   orNop(cashDisplay),
		changeDisplay: orNop(changeDisplay),
	}
}

// 合計を表示し、預かり金があればお釣りを計算して表示する。
// お釣りは小数2桁に切り上げ（ceiling）。合計の四捨五入とは違うので注意。
func (t *Transaction) Run() {
	t.totalDisplay(t.total)

	//預かり金の入力前はお釣りを出さない
	if t.cash.Sign() <= 0 {
		return
	}

	t.change = t.cash.Sub(t.total).RoundCeil(2)

	t.cashDisplay(t.cash)
	t.changeDisplay(t.change)
}

// Runしたうえで、預かり金が合計に届いているかを確認する。
func (t *Transaction) Settle() (decimal.Decimal, error) {
	t.Run()
	if t.cash.Sign() <= 0 || t.change.Sign() < 0 {
		return decimal.Zero, ErrInsufficientAmount
	}
	return t.change, nil
}

func (t *Transaction) Total() decimal.Decimal  { return t.total }
func (t *Transaction) Cash() decimal.Decimal   { return t.cash }
func (t *Transaction) Change() decimal.Decimal { return t.change }

func (t *Transaction) SetTotal(total decimal.Decimal)   { t.total = total }
func (t *Transaction) SetCash(cash decimal.Decimal)     { t.cash = cash }
func (t *Transaction) SetChange(change decimal.Decimal) { t.change = change }

func (t *Transaction) SetTotalFloat(total float64) {
	t.total = decimal.NewFromFloat(total)
}

func (t *Transaction) SetCashFloat(cash float64) {
	t.cash = decimal.NewFromFloat(cash)
}

func orNop(d Display) Display {
	if d == nil {
		return func(decimal.Decimal) {}
	}
	return d
}
