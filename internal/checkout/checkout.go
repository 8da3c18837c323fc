// Package checkout はカートに検証とイベント通知を加える。
//
// 追加・削除は検証のあとでリスナーに通知し、それから Put で確定する。
// Put は数量0以下の行を自動で取り除き、OnAction リスナーに確定後の内容を渡す。
// Checkout は並行利用に対応しない。呼び出し側で直列化すること。
package checkout

import (
	"fmt"
	"math"

	"pos/internal/cart"
	"pos/internal/domain/model"
	"pos/internal/event"
)

const (
	TopicAdd    = "add"
	TopicRemove = "remove"
	TopicClear  = "clear"
	TopicAction = "action"
)

// 追加・削除リスナーに渡す内容
type ItemEvent struct {
	Product  model.Product
	Quantity int
}

type Checkout struct {
	cart   *cart.Cart
	locked bool

	adds    *event.Dispatcher[ItemEvent]
	removes *event.Dispatcher[ItemEvent]
	clears  *event.Dispatcher[cart.Snapshot]
	actions *event.Dispatcher[cart.Snapshot]
}

// reporterはリスナーの失敗を受け取る（nilなら捨てる）
func New(reporter event.Reporter) *Checkout {
	return &Checkout{
		cart:    cart.New(),
		adds:    event.NewDispatcher[ItemEvent](TopicAdd, reporter),
		removes: event.NewDispatcher[ItemEvent](TopicRemove, reporter),
		clears:  event.NewDispatcher[cart.Snapshot](TopicClear, reporter),
		actions: event.NewDispatcher[cart.Snapshot](TopicAction, reporter),
	}
}

// 追加の直前（カート変更前）に呼ばれる
func (c *Checkout) OnAdd(fn func(model.Product, int) error) event.Subscription {
	return c.adds.Subscribe(func(e ItemEvent) error { return fn(e.Product, e.Quantity) })
}

// 削除の直前（検証が通ったあと、カート変更前）に呼ばれる
func (c *Checkout) OnRemove(fn func(model.Product, int) error) event.Subscription {
	return c.removes.Subscribe(func(e ItemEvent) error { return fn(e.Product, e.Quantity) })
}

// クリアの直前に、消える内容を受け取る
func (c *Checkout) OnClear(fn func(cart.Snapshot) error) event.Subscription {
	return c.clears.Subscribe(fn)
}

// すべての変更のあとに、変更後の内容を受け取る
func (c *Checkout) OnAction(fn func(cart.Snapshot) error) event.Subscription {
	return c.actions.Subscribe(fn)
}

func (c *Checkout) Add(product model.Product, quantity int) error {
	if c.locked {
		return ErrCartLocked
	}
	if quantity <= 0 {
		return fmt.Errorf("add %d: %w", quantity, ErrZeroOrNegativeQuantity)
	}
	if have := c.cart.Count(product); have > 0 && quantity > math.MaxInt-have {
		return fmt.Errorf("add %d to %q, have %d: %w", quantity, barcodeOf(product), have, ErrQuantityOverflow)
	}

	c.adds.Fire(ItemEvent{Product: product, Quantity: quantity})

	return c.Put(product, quantity+c.cart.Count(product))
}

func (c *Checkout) Remove(product model.Product, quantity int) error {
	if c.locked {
		return ErrCartLocked
	}
	if quantity <= 0 {
		return fmt.Errorf("remove %d: %w", quantity, ErrZeroOrNegativeQuantity)
	}
	if !c.cart.InCart(product) {
		return fmt.Errorf("remove %q: %w", barcodeOf(product), ErrProductNotInCart)
	}
	if have := c.cart.Count(product); have < quantity {
		return fmt.Errorf("remove %d of %q, have %d: %w", quantity, barcodeOf(product), have, ErrInsufficientQuantity)
	}

	c.removes.Fire(ItemEvent{Product: product, Quantity: quantity})

	return c.Put(product, c.cart.Count(product)-quantity)
}

// 数量を検証せずに書き込む唯一の確定経路。0以下になった行は取り除く。
func (c *Checkout) Put(product model.Product, quantity int) error {
	if c.locked {
		return ErrCartLocked
	}

	c.cart.Put(product, quantity)
	if c.cart.Count(product) <= 0 {
		c.cart.Delete(product)
	}

	c.actions.Fire(c.cart.Snapshot())
	return nil
}

// 空のカートでもOnClearとOnActionは呼ばれる
func (c *Checkout) Clear() error {
	if c.locked {
		return ErrCartLocked
	}

	c.clears.Fire(c.cart.Snapshot())
	c.cart.Clear()
	c.actions.Fire(c.cart.Snapshot())
	return nil
}

func (c *Checkout) InCart(product model.Product) bool {
	return c.cart.InCart(product)
}

func (c *Checkout) Count(product model.Product) int {
	return c.cart.Count(product)
}

// 現在の内容のコピー
func (c *Checkout) Cart() cart.Snapshot {
	return c.cart.Snapshot()
}

func barcodeOf(product model.Product) string {
	if product == nil {
		return ""
	}
	return product.Barcode()
}
