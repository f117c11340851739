package config

import (
	"activity-signup/common/messaging"

	"github.com/zeromicro/go-zero/core/stores/redis"
	"github.com/zeromicro/go-zero/rest"
)

type Config struct {
	rest.RestConf // go-zero REST 服务配置（含 Log、DevServer 等）

	// 数据存储
	Database DatabaseConfig

	// 目录缓存（可选，Host 为空时不启用）
	CacheRedis redis.RedisConf `json:",optional"`

	// 报名事件发布（可选，Redis.Addr 为空时不启用）
	Messaging messaging.Config `json:",optional"`

	// 熔断配置
	Breaker BreakerConfig

	// 静态页面目录
	StaticDir string `json:",default=static"`
}

// 数据库驱动
const (
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"
)

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Driver string `json:",default=sqlite,options=sqlite|mysql"`

	// SQLite
	Path string `json:",default=database.db"`

	// MySQL
	Host     string `json:",default=127.0.0.1"`
	Port     int    `json:",default=3306"`
	Username string `json:",optional"`
	Password string `json:",optional"`
	Database string `json:",default=activity_signup"`

	MaxOpenConns    int  `json:",default=100"`  // 最大打开连接数
	MaxIdleConns    int  `json:",default=10"`   // 最大空闲连接数
	ConnMaxLifetime int  `json:",default=3600"` // 连接生命周期（秒）
	Debug           bool `json:",optional"`     // 打印 SQL
}

// BreakerConfig 熔断器配置
type BreakerConfig struct {
	Name string `json:",default=signup-enrollment"` // 熔断器名称
}

// CacheEnabled 是否启用目录缓存
func (c Config) CacheEnabled() bool {
	return c.CacheRedis.Host != ""
}
