package messaging

import (
	"context"
	"fmt"
	"time"

	"activity-signup/common/ctxdata"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/redis/go-redis/v9"
)

// 消息元数据 Key
const (
	MetadataTraceID = "trace_id"
	MetadataService = "service"
)

// Client Watermill 消息客户端（仅发布）
type Client struct {
	Publisher   message.Publisher
	config      Config
	redisClient *redis.Client // 使用外部 Publisher 时为 nil
}

// NewClient 创建 Redis Stream 消息客户端
func NewClient(config Config) (*Client, error) {
	if !config.Enabled() {
		return nil, ErrNotConfigured
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     config.Redis.Addr,
		Password: config.Redis.Password,
		DB:       config.Redis.DB,
	})

	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		_ = redisClient.Close()
		return nil, fmt.Errorf("%w: %v", ErrConnectionFailed, err)
	}

	publisher, err := redisstream.NewPublisher(
		redisstream.PublisherConfig{
			Client:  redisClient,
			Maxlens: streamMaxlens(config.MaxStreamEntries),
		},
		newWatermillLogger(config.ServiceName),
	)
	if err != nil {
		_ = redisClient.Close()
		return nil, fmt.Errorf("failed to create publisher: %w", err)
	}

	return &Client{
		Publisher:   publisher,
		config:      config,
		redisClient: redisClient,
	}, nil
}

// streamMaxlens 按 topic 设置 stream 长度上限
func streamMaxlens(maxEntries int64) map[string]int64 {
	if maxEntries <= 0 {
		return nil
	}
	return map[string]int64{
		TopicActivityMemberJoined: maxEntries,
		TopicActivityMemberLeft:   maxEntries,
	}
}

// NewClientWithPublisher 使用已有的 Publisher 创建客户端（如 gochannel）
func NewClientWithPublisher(publisher message.Publisher, config Config) *Client {
	return &Client{
		Publisher: publisher,
		config:    config,
	}
}

// Publish 发布消息，trace_id 从 ctx 注入元数据
func (c *Client) Publish(ctx context.Context, topic string, payload []byte) error {
	if topic == "" {
		return ErrInvalidTopic
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.SetContext(ctx)
	if traceID := ctxdata.GetTraceIDFromCtx(ctx); traceID != "" {
		msg.Metadata.Set(MetadataTraceID, traceID)
	}
	if c.config.ServiceName != "" {
		msg.Metadata.Set(MetadataService, c.config.ServiceName)
	}

	return c.Publisher.Publish(topic, msg)
}

// PublishTimeout 单条消息发布超时
func (c *Client) PublishTimeout() time.Duration {
	if c.config.PublishTimeout <= 0 {
		return DefaultConfig().PublishTimeout
	}
	return c.config.PublishTimeout
}

// Close 关闭客户端
func (c *Client) Close() error {
	if err := c.Publisher.Close(); err != nil {
		return fmt.Errorf("failed to close publisher: %w", err)
	}
	if c.redisClient != nil {
		if err := c.redisClient.Close(); err != nil {
			return fmt.Errorf("failed to close redis client: %w", err)
		}
	}
	return nil
}
