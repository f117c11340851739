package mq

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"activity-signup/app/signup/model"
	"activity-signup/common/ctxdata"
	"activity-signup/common/messaging"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProducer_NilSafe(t *testing.T) {
	var p *Producer
	activity := &model.Activity{ID: 1, Name: "Chess Club"}
	member := &model.Member{ID: 2, Email: "alice@school.edu"}

	assert.Nil(t, NewProducer(nil))
	assert.NotPanics(t, func() {
		p.PublishMemberJoined(context.Background(), activity, member, time.Now())
		p.PublishMemberLeft(context.Background(), activity, member, time.Now())
	})
	assert.NoError(t, p.Close())
}

func TestProducer_PublishesEvents(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	joined, err := pubSub.Subscribe(context.Background(), messaging.TopicActivityMemberJoined)
	require.NoError(t, err)
	left, err := pubSub.Subscribe(context.Background(), messaging.TopicActivityMemberLeft)
	require.NoError(t, err)

	p := NewProducer(messaging.NewClientWithPublisher(pubSub, messaging.Config{ServiceName: "signup-api"}))
	activity := &model.Activity{ID: 1, Name: "Chess Club"}
	member := &model.Member{ID: 2, Email: "alice@school.edu"}
	at := time.Date(2026, 9, 1, 15, 30, 0, 0, time.UTC)

	// 请求 ctx 已取消也不影响发布
	ctx, cancel := context.WithCancel(ctxdata.WithTraceID(context.Background(), "trace-abc"))
	cancel()

	p.PublishMemberJoined(ctx, activity, member, at)
	select {
	case msg := <-joined:
		var event messaging.ActivityMemberJoinedEvent
		require.NoError(t, json.Unmarshal(msg.Payload, &event))
		assert.Equal(t, uint64(1), event.ActivityID)
		assert.Equal(t, "Chess Club", event.ActivityName)
		assert.Equal(t, uint64(2), event.MemberID)
		assert.Equal(t, "alice@school.edu", event.Email)
		assert.True(t, at.Equal(event.JoinedAt))
		assert.Equal(t, "trace-abc", msg.Metadata.Get(messaging.MetadataTraceID))
		msg.Ack()
	case <-time.After(time.Second):
		t.Fatal("joined event not delivered")
	}

	p.PublishMemberLeft(context.Background(), activity, member, at)
	select {
	case msg := <-left:
		var event messaging.ActivityMemberLeftEvent
		require.NoError(t, json.Unmarshal(msg.Payload, &event))
		assert.Equal(t, "alice@school.edu", event.Email)
		msg.Ack()
	case <-time.After(time.Second):
		t.Fatal("left event not delivered")
	}

	assert.NoError(t, p.Close())
}
