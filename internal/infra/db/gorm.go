package db

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"pos/internal/domain/model"
)

// Connect はDBに接続して *gorm.DB を返す。
func Connect(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
}

// テーブルを作成・更新する（カート自体は保存しない）
func Migrate(gormDB *gorm.DB) error {
	return gormDB.AutoMigrate(
		&model.ProductRecord{},
		&model.Operator{},
		&model.Sale{},
		&model.SaleItem{},
		&model.AuditLog{},
	)
}
