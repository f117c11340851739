// Package modeltest 提供基于内存 SQLite 的测试数据库
package modeltest

import (
	"context"
	"fmt"
	"testing"

	"activity-signup/app/signup/model"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB 创建一个已建表、未写种子的内存数据库
//
// 每个测试独享一个命名内存库；连接数限制为 1，事务天然串行
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=1", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("Failed to connect to SQLite test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := model.Migrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	return db
}

// NewSeededDB 创建一个已写入种子活动目录的内存数据库
func NewSeededDB(t *testing.T) *gorm.DB {
	t.Helper()

	db := NewDB(t)
	if err := model.Bootstrap(context.Background(), db); err != nil {
		t.Fatalf("Failed to bootstrap test database: %v", err)
	}
	return db
}
