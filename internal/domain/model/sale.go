package model

import "time"

// 会計済みの販売。金額は最小単位。
type Sale struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	TerminalID string    `gorm:"type:varchar(36);not null;index" json:"terminal_id"`
	OperatorID int64     `gorm:"not null;index" json:"operator_id"`
	Total      int64     `gorm:"not null" json:"total"`
	Cash       int64     `gorm:"not null" json:"cash"`
	Change     int64     `gorm:"not null" json:"change"`
	CreatedAt  time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}

// 販売の明細（会計時点の名前と価格を保存）
type SaleItem struct {
	ID                  int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	SaleID              int64     `gorm:"not null;index" json:"sale_id"`
	Barcode             string    `gorm:"type:varchar(64);not null;index" json:"barcode"`
	ProductNameSnapshot string    `gorm:"type:varchar(255);not null" json:"product_name_snapshot"`
	UnitPriceSnapshot   int64     `gorm:"not null" json:"unit_price_snapshot"`
	Quantity            int64     `gorm:"not null" json:"quantity"`
	CreatedAt           time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
