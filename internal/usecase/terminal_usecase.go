package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"pos/internal/checkout"
	"pos/internal/domain/model"
	"pos/internal/event"
	"pos/internal/metrics"
	"pos/internal/pricing"
	repo "pos/internal/repository"
	"pos/internal/transaction"
)

// 1回のスキャンで追加できる上限
const maxScanQuantity = 9999

// UUID 等のIDを作る約束
type IDGenerator interface {
	NewID() string
}

// 1台のレジ端末。Checkoutは並行利用できないので、muで直列化する。
type terminal struct {
	mu         sync.Mutex
	id         string
	operatorID int64
	checkout   *checkout.Checkout
	tx         *transaction.Transaction
	display    DisplayView
	subs       []event.Subscription

	// 会計完了後のClearは監査ログに残さない
	settling bool
}

// TerminalUsecase は /terminals の業務ロジックです。
// カートはメモリ上だけに持ち、会計が完了した販売と操作ログだけをDBに残す。
type TerminalUsecase struct {
	products  repo.ProductRepository
	auditLogs repo.AuditLogRepository
	txm       repo.TransactionManager
	idGen     IDGenerator
	logger    *zap.Logger
	metrics   *metrics.Metrics

	mu        sync.RWMutex
	terminals map[string]*terminal
}

// DI
func NewTerminalUsecase(
	products repo.ProductRepository,
	auditLogs repo.AuditLogRepository,
	txm repo.TransactionManager,
	idGen IDGenerator,
	logger *zap.Logger,
	m *metrics.Metrics,
) *TerminalUsecase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TerminalUsecase{
		products:  products,
		auditLogs: auditLogs,
		txm:       txm,
		idGen:     idGen,
		logger:    logger,
		metrics:   m,
		terminals: make(map[string]*terminal),
	}
}

type ScanInput struct {
	Barcode  string
	Quantity int
}

type RemoveInput struct {
	Barcode  string
	Quantity int
}

// 端末セッションを開く（空のカート）
func (u *TerminalUsecase) Open(ctx context.Context, operatorID int64) (TerminalView, error) {
	if operatorID <= 0 {
		return TerminalView{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	t := &terminal{id: u.idGen.NewID(), operatorID: operatorID}
	log := u.logger.With(zap.String("terminal_id", t.id), zap.Int64("operator_id", operatorID))

	t.checkout = checkout.New(event.MultiReporter(event.LogReporter(log), u.metrics))
	t.tx = transaction.New(
		func(v decimal.Decimal) { t.display.Total = money(v) },
		func(v decimal.Decimal) { t.display.Cash = money(v) },
		func(v decimal.Decimal) { t.display.Change = money(v) },
	)
	t.subs = u.subscribe(t)
	t.refreshDisplay()

	u.mu.Lock()
	u.terminals[t.id] = t
	u.mu.Unlock()
	u.metrics.TerminalOpened()

	log.Info("terminal opened")
	return t.view(), nil
}

func (u *TerminalUsecase) Get(ctx context.Context, operatorID int64, terminalID string) (TerminalView, error) {
	t, err := u.find(operatorID, terminalID)
	if err != nil {
		return TerminalView{}, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	return t.view(), nil
}

// バーコードの商品をカートに追加（同一商品は数量加算）
func (u *TerminalUsecase) Scan(ctx context.Context, operatorID int64, terminalID string, in ScanInput) (TerminalView, error) {
	t, err := u.find(operatorID, terminalID)
	if err != nil {
		return TerminalView{}, err
	}

	barcode := strings.TrimSpace(in.Barcode)
	if barcode == "" {
		return TerminalView{}, NewHTTPError(http.StatusBadRequest, "barcode required")
	}
	if in.Quantity > maxScanQuantity {
		return TerminalView{}, NewHTTPError(http.StatusBadRequest, "quantity too large")
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	p, err := u.lookup(ctx, barcode)
	if err != nil {
		return TerminalView{}, err
	}
	if err := t.checkout.Add(p, in.Quantity); err != nil {
		return TerminalView{}, mapCartError(err)
	}

	t.refreshDisplay()
	return t.view(), nil
}

// 数量を減らす。0になった行はカートから消える。
func (u *TerminalUsecase) RemoveItem(ctx context.Context, operatorID int64, terminalID string, in RemoveInput) (TerminalView, error) {
	t, err := u.find(operatorID, terminalID)
	if err != nil {
		return TerminalView{}, err
	}

	barcode := strings.TrimSpace(in.Barcode)
	if barcode == "" {
		return TerminalView{}, NewHTTPError(http.StatusBadRequest, "barcode required")
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	//カートにある商品を優先（カタログの価格が変わっていても同じ行を減らせる）
	p := t.findInCart(barcode)
	if p == nil {
		p, err = u.lookup(ctx, barcode)
		if err != nil {
			return TerminalView{}, err
		}
	}
	if err := t.checkout.Remove(p, in.Quantity); err != nil {
		return TerminalView{}, mapCartError(err)
	}

	t.refreshDisplay()
	return t.view(), nil
}

func (u *TerminalUsecase) ClearCart(ctx context.Context, operatorID int64, terminalID string) (TerminalView, error) {
	t, err := u.find(operatorID, terminalID)
	if err != nil {
		return TerminalView{}, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.checkout.Clear(); err != nil {
		return TerminalView{}, mapCartError(err)
	}
	t.resetTender()
	t.refreshDisplay()
	return t.view(), nil
}

func (u *TerminalUsecase) Lock(ctx context.Context, operatorID int64, terminalID string) (TerminalView, error) {
	return u.setLocked(operatorID, terminalID, true)
}

func (u *TerminalUsecase) Unlock(ctx context.Context, operatorID int64, terminalID string) (TerminalView, error) {
	return u.setLocked(operatorID, terminalID, false)
}

// 預かり金を入力して、合計・預かり金・お釣りを表示する（会計は確定しない）
func (u *TerminalUsecase) Tender(ctx context.Context, operatorID int64, terminalID string, cash decimal.Decimal) (TerminalView, error) {
	t, err := u.find(operatorID, terminalID)
	if err != nil {
		return TerminalView{}, err
	}
	if cash.IsNegative() {
		return TerminalView{}, NewHTTPError(http.StatusBadRequest, "invalid cash")
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	//0なら預かり金の取り消し。前回のお釣り表示も消す
	if cash.Sign() <= 0 {
		t.resetTender()
	}
	t.tx.SetTotal(pricing.Total(t.checkout.Cart()))
	t.tx.SetCash(cash)
	t.tx.Run()
	return t.view(), nil
}

// 端末セッションを閉じる。カートの内容は捨てる。
func (u *TerminalUsecase) Close(ctx context.Context, operatorID int64, terminalID string) error {
	t, err := u.find(operatorID, terminalID)
	if err != nil {
		return err
	}

	//同時にCloseされたら後の方は404
	u.mu.Lock()
	if cur, ok := u.terminals[terminalID]; !ok || cur != t {
		u.mu.Unlock()
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	delete(u.terminals, terminalID)
	u.mu.Unlock()

	t.mu.Lock()
	for _, s := range t.subs {
		s.Unsubscribe()
	}
	t.subs = nil
	t.mu.Unlock()

	u.metrics.TerminalClosed()
	u.logger.Info("terminal closed", zap.String("terminal_id", terminalID), zap.Int64("operator_id", operatorID))
	return nil
}

func (u *TerminalUsecase) setLocked(operatorID int64, terminalID string, locked bool) (TerminalView, error) {
	t, err := u.find(operatorID, terminalID)
	if err != nil {
		return TerminalView{}, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if locked {
		t.checkout.Lock()
	} else {
		t.checkout.Unlock()
	}
	return t.view(), nil
}

// 他の担当者の端末は存在しないものとして扱う
func (u *TerminalUsecase) find(operatorID int64, terminalID string) (*terminal, error) {
	if operatorID <= 0 {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	u.mu.RLock()
	t, ok := u.terminals[terminalID]
	u.mu.RUnlock()

	if !ok || t.operatorID != operatorID {
		return nil, NewHTTPError(http.StatusNotFound, "not found")
	}
	return t, nil
}

// カタログから商品を引く
func (u *TerminalUsecase) lookup(ctx context.Context, barcode string) (model.Product, error) {
	rec, err := u.products.FindByBarcode(ctx, barcode)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, NewHTTPError(http.StatusBadRequest, "unknown product")
	}
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return rec.ToItem(), nil
}

func (t *terminal) findInCart(barcode string) model.Product {
	for _, l := range t.checkout.Cart().Lines() {
		if l.Product.Barcode() == barcode {
			return l.Product
		}
	}
	return nil
}

// 預かり金とお釣りの表示を消す
func (t *terminal) resetTender() {
	t.tx.SetCash(decimal.Zero)
	t.tx.SetChange(decimal.Zero)
	t.display = DisplayView{}
}

// カートが変わったら合計を合わせて表示し直す
func (t *terminal) refreshDisplay() {
	t.tx.SetTotal(pricing.Total(t.checkout.Cart()))
	t.tx.Run()
}

func (t *terminal) view() TerminalView {
	snap := t.checkout.Cart()
	return TerminalView{
		ID:      t.id,
		Locked:  t.checkout.Locked(),
		Items:   toLineViews(snap),
		Total:   money(pricing.Total(snap)),
		Display: t.display,
	}
}
