package messaging

import "time"

// Config 消息中间件配置
//
// Redis.Addr 为空表示不启用消息发布
type Config struct {
	Redis RedisConfig `json:",optional"`

	// ServiceName 写入消息元数据，便于消费者区分来源
	ServiceName string `json:",default=signup-api"`

	// MaxStreamEntries 单个 stream 保留的最大消息数（XADD MAXLEN ~），0 表示不裁剪
	MaxStreamEntries int64 `json:",default=10000"`

	// PublishTimeout 单条消息发布超时
	PublishTimeout time.Duration `json:",default=3s"`
}

// RedisConfig Redis 连接配置
type RedisConfig struct {
	Addr     string `json:",optional"`
	Password string `json:",optional"`
	DB       int    `json:",optional"`
}

// Enabled 是否配置了消息发布
func (c Config) Enabled() bool {
	return c.Redis.Addr != ""
}

// DefaultConfig 返回默认配置
func DefaultConfig() Config {
	return Config{
		Redis: RedisConfig{
			Addr: "localhost:6379",
		},
		ServiceName:      "signup-api",
		MaxStreamEntries: 10000,
		PublishTimeout:   3 * time.Second,
	}
}
