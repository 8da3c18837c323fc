package checkout_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/cucumber/godog"
	"github.com/shopspring/decimal"

	"pos/internal/cart"
	"pos/internal/checkout"
	"pos/internal/domain/model"
	"pos/internal/pricing"
)

type checkoutTestContext struct {
	products map[string]model.Product
	co       *checkout.Checkout
	err      error
	events   []string
}

func (c *checkoutTestContext) reset() {
	c.products = map[string]model.Product{}
	c.co = nil
	c.err = nil
	c.events = nil
}

func (c *checkoutTestContext) aProductPriced(barcode, price string) error {
	d, err := decimal.NewFromString(price)
	if err != nil {
		return err
	}
	c.products[barcode] = model.NewItem(barcode, barcode, "", d)
	return nil
}

func (c *checkoutTestContext) anEmptyCheckout() error {
	c.co = checkout.New(nil)
	return nil
}

func (c *checkoutTestContext) product(barcode string) (model.Product, error) {
	p, ok := c.products[barcode]
	if !ok {
		return nil, fmt.Errorf("unknown product %q", barcode)
	}
	return p, nil
}

func (c *checkoutTestContext) theCartHoldsAlready(qty int, barcode string) error {
	p, err := c.product(barcode)
	if err != nil {
		return err
	}
	return c.co.Add(p, qty)
}

func (c *checkoutTestContext) iAdd(qty int, barcode string) error {
	p, err := c.product(barcode)
	if err != nil {
		return err
	}
	c.err = c.co.Add(p, qty)
	return nil
}

func (c *checkoutTestContext) iRemove(qty int, barcode string) error {
	p, err := c.product(barcode)
	if err != nil {
		return err
	}
	c.err = c.co.Remove(p, qty)
	return nil
}

func (c *checkoutTestContext) iClearTheCart() error {
	c.err = c.co.Clear()
	return nil
}

func (c *checkoutTestContext) theCartIsLocked() error {
	c.co.Lock()
	return nil
}

func (c *checkoutTestContext) aListenerRecordingClearAndAction() error {
	c.co.OnClear(func(s cart.Snapshot) error {
		c.events = append(c.events, fmt.Sprintf("clear:%d", s.Len()))
		return nil
	})
	c.co.OnAction(func(s cart.Snapshot) error {
		c.events = append(c.events, fmt.Sprintf("action:%d", s.Len()))
		return nil
	})
	return nil
}

func (c *checkoutTestContext) addListeners(a, b string) error {
	for _, name := range []string{a, b} {
		name := name
		c.co.OnAdd(func(model.Product, int) error {
			c.events = append(c.events, name)
			return nil
		})
	}
	return nil
}

func (c *checkoutTestContext) theCartHolds(qty int, barcode string) error {
	p, err := c.product(barcode)
	if err != nil {
		return err
	}
	if got := c.co.Count(p); got != qty {
		return fmt.Errorf("expected %d of %s, got %d", qty, barcode, got)
	}
	return nil
}

func (c *checkoutTestContext) isNotInTheCart(barcode string) error {
	p, err := c.product(barcode)
	if err != nil {
		return err
	}
	if c.co.InCart(p) {
		return fmt.Errorf("expected %s not to be in the cart", barcode)
	}
	return nil
}

func (c *checkoutTestContext) theCartTotalIs(expected string) error {
	want, err := decimal.NewFromString(expected)
	if err != nil {
		return err
	}
	if got := pricing.Total(c.co.Cart()); !got.Equal(want) {
		return fmt.Errorf("expected total %s, got %s", want.StringFixed(2), got.StringFixed(2))
	}
	return nil
}

func (c *checkoutTestContext) theOperationFailsWith(msg string) error {
	if c.err == nil {
		return fmt.Errorf("expected error containing %q, got nil", msg)
	}
	if !strings.Contains(c.err.Error(), msg) {
		return fmt.Errorf("expected error containing %q, got %q", msg, c.err.Error())
	}
	return nil
}

func (c *checkoutTestContext) theRecordedEventsAre(expected string) error {
	if got := strings.Join(c.events, ","); got != expected {
		return fmt.Errorf("expected events %q, got %q", expected, got)
	}
	return nil
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := &checkoutTestContext{}

	ctx.Before(func(gctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc.reset()
		return gctx, nil
	})

	// Given steps
	ctx.Step(`^a product "([^"]*)" priced ([0-9.]+)$`, tc.aProductPriced)
	ctx.Step(`^an empty checkout$`, tc.anEmptyCheckout)
	ctx.Step(`^the cart holds (\d+) of "([^"]*)" already$`, tc.theCartHoldsAlready)
	ctx.Step(`^the cart is locked$`, tc.theCartIsLocked)
	ctx.Step(`^a listener recording clear and action events$`, tc.aListenerRecordingClearAndAction)
	ctx.Step(`^add listeners "([^"]*)" and "([^"]*)"$`, tc.addListeners)

	// When steps
	ctx.Step(`^I add (-?\d+) of "([^"]*)"$`, tc.iAdd)
	ctx.Step(`^I remove (-?\d+) of "([^"]*)"$`, tc.iRemove)
	ctx.Step(`^I clear the cart$`, tc.iClearTheCart)

	// Then steps
	ctx.Step(`^the cart holds (\d+) of "([^"]*)"$`, tc.theCartHolds)
	ctx.Step(`^"([^"]*)" is not in the cart$`, tc.isNotInTheCart)
	ctx.Step(`^the cart total is ([0-9.]+)$`, tc.theCartTotalIs)
	ctx.Step(`^the operation fails with "([^"]*)"$`, tc.theOperationFailsWith)
	ctx.Step(`^the recorded events are "([^"]*)"$`, tc.theRecordedEventsAre)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features/checkout.feature"},
			Strict:   true,
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
