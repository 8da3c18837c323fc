package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// カートに入れられる商品の約束。
// カートはProductをそのままmapのキーに使うので、実装は比較可能な型にすること。
type Product interface {
	Name() string
	Description() string
	Barcode() string
	Price() decimal.Decimal
}

// Itemはカタログから渡される商品の値。
// 価格は最小単位（銭/セント）で持つので、同じ内容のItemは==で等しくなる。
type Item struct {
	barcode     string
	name        string
	description string
	priceMinor  int64
}

// 価格は小数2桁に丸めて保持する
func NewItem(barcode, name, description string, price decimal.Decimal) Item {
	return Item{
		barcode:     barcode,
		name:        name,
		description: description,
		priceMinor:  price.Shift(2).Round(0).IntPart(),
	}
}

func (i Item) Name() string        { return i.name }
func (i Item) Description() string { return i.description }
func (i Item) Barcode() string     { return i.barcode }

func (i Item) Price() decimal.Decimal {
	return decimal.New(i.priceMinor, -2)
}

// カタログの商品テーブル。価格は最小単位。
type ProductRecord struct {
	ID          int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	Barcode     string         `gorm:"type:varchar(64);not null;uniqueIndex" json:"barcode"`
	Name        string         `gorm:"type:varchar(255);not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	Price       int64          `gorm:"not null" json:"price"`
	IsActive    bool           `gorm:"not null;default:true" json:"is_active"`
	CreatedAt   time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null;autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (ProductRecord) TableName() string { return "products" }

// カートで使うItemに変換
func (r ProductRecord) ToItem() Item {
	return Item{
		barcode:     r.Barcode,
		name:        r.Name,
		description: r.Description,
		priceMinor:  r.Price,
	}
}
