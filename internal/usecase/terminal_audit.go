package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"pos/internal/cart"
	"pos/internal/domain/model"
	"pos/internal/event"
)

const auditTimeout = 3 * time.Second

type auditLine struct {
	Barcode  string `json:"barcode"`
	Name     string `json:"name"`
	Price    string `json:"price"`
	Quantity int    `json:"quantity"`
}

// 端末のカートにリスナーを登録する。
// リスナーは変更前に呼ばれるので、Cart()は変更前の内容を返す。
func (u *TerminalUsecase) subscribe(t *terminal) []event.Subscription {
	return []event.Subscription{
		t.checkout.OnAdd(func(p model.Product, q int) error {
			u.metrics.IncMutation("add")
			return u.audit(t, model.AuditActionAddItem, p.Barcode(), q, t.checkout.Cart())
		}),
		t.checkout.OnRemove(func(p model.Product, q int) error {
			u.metrics.IncMutation("remove")
			return u.audit(t, model.AuditActionRemoveItem, p.Barcode(), q, t.checkout.Cart())
		}),
		t.checkout.OnClear(func(before cart.Snapshot) error {
			if t.settling {
				return nil
			}
			u.metrics.IncMutation("clear")
			return u.audit(t, model.AuditActionClearCart, "", 0, before)
		}),
	}
}

func (u *TerminalUsecase) audit(t *terminal, action model.AuditAction, barcode string, quantity int, snap cart.Snapshot) error {
	if u.auditLogs == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), auditTimeout)
	defer cancel()

	log, err := newAuditLog(t, action, barcode, quantity, snap)
	if err != nil {
		return err
	}
	return u.auditLogs.Create(ctx, log)
}

func newAuditLog(t *terminal, action model.AuditAction, barcode string, quantity int, snap cart.Snapshot) (model.AuditLog, error) {
	cj, err := cartJSON(snap)
	if err != nil {
		return model.AuditLog{}, err
	}
	return model.AuditLog{
		OperatorID: t.operatorID,
		TerminalID: t.id,
		Action:     action,
		Barcode:    barcode,
		Quantity:   int64(quantity),
		CartJSON:   cj,
	}, nil
}

func cartJSON(snap cart.Snapshot) (string, error) {
	lines := snap.Lines()
	out := make([]auditLine, 0, len(lines))
	for _, l := range lines {
		out = append(out, auditLine{
			Barcode:  l.Product.Barcode(),
			Name:     l.Product.Name(),
			Price:    money(l.Product.Price()),
			Quantity: l.Quantity,
		})
	}

	b, err := json.Marshal(out)
	if err != nil {
		return "", fmt.Errorf("marshal cart: %w", err)
	}
	return string(b), nil
}
