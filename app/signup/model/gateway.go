package model

import (
	"context"

	"gorm.io/gorm"
)

// Gateway 存储网关
//
// 每个请求通过 WithSession 拿到一个短事务：
//   - fn 返回 nil 时提交
//   - fn 返回错误或 panic 时回滚（panic 继续向上抛）
//   - ctx 取消时事务由 database/sql 中止，不会提交部分数据
//
// 事务不可嵌套，fn 内只能使用传入的 tx。
type Gateway struct {
	db *gorm.DB
}

func NewGateway(db *gorm.DB) *Gateway {
	return &Gateway{db: db}
}

// WithSession 在一个事务内执行 fn
func (g *Gateway) WithSession(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return g.db.WithContext(ctx).Transaction(fn)
}

// Ping 检查存储是否可达
func (g *Gateway) Ping(ctx context.Context) error {
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
