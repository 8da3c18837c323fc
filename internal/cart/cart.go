// Package cart はレジカートの生の保管領域（商品→数量）を提供する。
// 検証は行わない。検証とイベント通知は checkout パッケージが担当する。
package cart

import "pos/internal/domain/model"

// 商品→数量を追加順で保持する。
type Cart struct {
	counts map[model.Product]int
	order  []model.Product
}

func New() *Cart {
	return &Cart{counts: make(map[model.Product]int)}
}

// 既存数量にquantityを足す（符号チェックなし）
func (c *Cart) Add(product model.Product, quantity int) {
	c.Put(product, quantity+c.Count(product))
}

// 既存数量からquantityを引く（マイナスもそのまま保存）
func (c *Cart) Remove(product model.Product, quantity int) {
	c.Put(product, c.Count(product)-quantity)
}

func (c *Cart) InCart(product model.Product) bool {
	_, ok := c.counts[product]
	return ok
}

// 無ければ0
func (c *Cart) Count(product model.Product) int {
	return c.counts[product]
}

func (c *Cart) Len() int {
	return len(c.order)
}

func (c *Cart) Clear() {
	c.counts = make(map[model.Product]int)
	c.order = nil
}

// 数量をそのまま書き込む。既存の商品は位置を保ち、新しい商品は末尾に付く。
func (c *Cart) Put(product model.Product, quantity int) {
	if _, ok := c.counts[product]; !ok {
		c.order = append(c.order, product)
	}
	c.counts[product] = quantity
}

// 商品の行を取り除く
func (c *Cart) Delete(product model.Product) {
	if _, ok := c.counts[product]; !ok {
		return
	}
	delete(c.counts, product)
	for i, p := range c.order {
		if p == product {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// 現在の内容のコピーを返す。以後のCartの変更は反映されない。
func (c *Cart) Snapshot() Snapshot {
	lines := make([]Line, 0, len(c.order))
	counts := make(map[model.Product]int, len(c.order))
	for _, p := range c.order {
		q := c.counts[p]
		lines = append(lines, Line{Product: p, Quantity: q})
		counts[p] = q
	}
	return Snapshot{lines: lines, counts: counts}
}
