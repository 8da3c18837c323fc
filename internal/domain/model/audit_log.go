package model

import "time"

// カート操作の種類
type AuditAction string

const (
	//商品を追加した操作。
	AuditActionAddItem AuditAction = "ADD_ITEM"
	//商品を減らした操作。
	AuditActionRemoveItem AuditAction = "REMOVE_ITEM"
	//カートを空にした操作。
	AuditActionClearCart AuditAction = "CLEAR_CART"
	//会計を完了した操作。
	AuditActionCompleteSale AuditAction = "COMPLETE_SALE"
)

// 監査ログ（レジ操作ログ）。
// 「誰が」「どの端末で」「何を」「どう変えたか」を残す。
type AuditLog struct {
	ID int64 `gorm:"primaryKey;autoIncrement" json:"id"`

	//操作した担当者のID。
	OperatorID int64 `gorm:"not null;index" json:"operator_id"`

	//操作した端末（セッション）のID。
	TerminalID string `gorm:"type:varchar(36);not null;index" json:"terminal_id"`

	Action AuditAction `gorm:"type:varchar(50);not null;index" json:"action"`

	//対象商品（CLEAR_CARTでは空）。
	Barcode  string `gorm:"type:varchar(64);index" json:"barcode"`
	Quantity int64  `gorm:"not null;default:0" json:"quantity"`

	//操作前のカート内容をJSON文字列で保存する。
	CartJSON string `gorm:"type:text" json:"cart_json"`

	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
}
