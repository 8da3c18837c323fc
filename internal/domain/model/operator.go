package model

import "time"

// レジ担当者。PINはbcryptハッシュで保存する。
type Operator struct {
	ID          int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	Code        string     `gorm:"type:varchar(32);uniqueIndex;not null" json:"code"`
	Name        string     `gorm:"type:varchar(255);not null" json:"name"`
	PINHash     string     `gorm:"column:pin_hash;not null" json:"-"`
	IsActive    bool       `gorm:"not null;default:true" json:"is_active"`
	LastLoginAt *time.Time `json:"last_login_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
