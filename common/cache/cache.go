// Package cache 提供通用缓存工具
//
// 设计原则：
//   - Key 命名规范：{业务}:{模块}:{标识}，如 signup:catalogue:list
//   - 随机 TTL 防止缓存雪崩
package cache

import (
	"time"

	"github.com/zeromicro/go-zero/core/mathx"
)

// ==================== 默认配置 ====================

const (
	// LongTTL 长缓存过期时间（30 分钟，适用于几乎不变的数据如活动目录）
	LongTTL = 30 * time.Minute

	// DefaultJitter 默认 TTL 抖动系数（±10%）
	DefaultJitter = 0.1
)

// unstable 随机数生成器，用于 TTL 抖动
var unstable = mathx.NewUnstable(DefaultJitter)

// ==================== TTL 工具函数 ====================

// RandomTTL 生成带抖动的 TTL，防止缓存雪崩
//
// 示例：
//
//	RandomTTL(30 * time.Minute) => 27min ~ 33min
func RandomTTL(base time.Duration) time.Duration {
	return unstable.AroundDuration(base)
}

// RandomTTLSeconds 返回带抖动的 TTL（秒数），用于 Redis SETEX
func RandomTTLSeconds(base time.Duration) int {
	return int(RandomTTL(base).Seconds())
}

// ==================== Key 生成函数 ====================

// CatalogueListKey 活动目录缓存 Key
//
// 格式：signup:catalogue:list
// TTL：30min（目录在种子数据写入后不再变化）
// 用途：缓存全部活动的静态字段（不含报名名单）
func CatalogueListKey() string {
	return "signup:catalogue:list"
}
