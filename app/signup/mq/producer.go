package mq

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"activity-signup/app/signup/model"
	"activity-signup/common/ctxdata"
	"activity-signup/common/messaging"

	"github.com/zeromicro/go-zero/core/logx"
)

// Producer 报名事件发布器
// nil 安全：Producer 或 Client 为 nil 时所有方法静默返回
type Producer struct {
	client *messaging.Client
	wg     sync.WaitGroup
}

// NewProducer 创建消息发布器
func NewProducer(client *messaging.Client) *Producer {
	if client == nil {
		return nil
	}
	return &Producer{client: client}
}

// publishAsync 异步发布事件
// - 开新 goroutine，不阻塞调用方
// - defer recover 防 panic 传播
// - 发布超时防 goroutine 泄漏
// - 发布失败只记日志，不影响主业务
func (p *Producer) publishAsync(ctx context.Context, topic string, payload interface{}) {
	if p == nil || p.client == nil {
		return
	}

	// 请求结束后 ctx 会被取消，只保留 trace_id
	traceID := ctxdata.GetTraceIDFromCtx(ctx)

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				logx.Errorf("[MQ-Producer] panic recovered: topic=%s, err=%v", topic, r)
			}
		}()

		data, err := json.Marshal(payload)
		if err != nil {
			logx.Errorf("[MQ-Producer] 序列化失败: topic=%s, err=%v", topic, err)
			return
		}

		pubCtx, cancel := context.WithTimeout(ctxdata.WithTraceID(context.Background(), traceID), p.client.PublishTimeout())
		defer cancel()

		if err := p.client.Publish(pubCtx, topic, data); err != nil {
			logx.Errorf("[MQ-Producer] 发布失败: topic=%s, trace_id=%s, err=%v", topic, traceID, err)
			return
		}

		logx.Infof("[MQ-Producer] 发布成功: topic=%s, size=%d", topic, len(data))
	}()
}

// ==================== 报名事件 ====================

// PublishMemberJoined 发布报名成功事件
func (p *Producer) PublishMemberJoined(ctx context.Context, activity *model.Activity, member *model.Member, joinedAt time.Time) {
	p.publishAsync(ctx, messaging.TopicActivityMemberJoined, messaging.ActivityMemberJoinedEvent{
		ActivityID:   activity.ID,
		ActivityName: activity.Name,
		MemberID:     member.ID,
		Email:        member.Email,
		JoinedAt:     joinedAt,
	})
}

// PublishMemberLeft 发布退出报名事件
func (p *Producer) PublishMemberLeft(ctx context.Context, activity *model.Activity, member *model.Member, leftAt time.Time) {
	p.publishAsync(ctx, messaging.TopicActivityMemberLeft, messaging.ActivityMemberLeftEvent{
		ActivityID:   activity.ID,
		ActivityName: activity.Name,
		MemberID:     member.ID,
		Email:        member.Email,
		LeftAt:       leftAt,
	})
}

// Close 等待在途消息发布完成后关闭底层客户端
func (p *Producer) Close() error {
	if p == nil || p.client == nil {
		return nil
	}
	p.wg.Wait()
	return p.client.Close()
}
