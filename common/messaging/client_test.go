package messaging

import (
	"context"
	"testing"
	"time"

	"activity-signup/common/ctxdata"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_PublishInjectsMetadata(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	client := NewClientWithPublisher(pubSub, Config{ServiceName: "signup-api"})
	defer client.Close()

	messages, err := pubSub.Subscribe(context.Background(), TopicActivityMemberJoined)
	require.NoError(t, err)

	ctx := ctxdata.WithTraceID(context.Background(), "trace-123")
	require.NoError(t, client.Publish(ctx, TopicActivityMemberJoined, []byte(`{"activity_id":1}`)))

	select {
	case msg := <-messages:
		assert.Equal(t, `{"activity_id":1}`, string(msg.Payload))
		assert.Equal(t, "trace-123", msg.Metadata.Get(MetadataTraceID))
		assert.Equal(t, "signup-api", msg.Metadata.Get(MetadataService))
		msg.Ack()
	case <-time.After(time.Second):
		t.Fatal("message not delivered")
	}
}

func TestClient_PublishRejectsEmptyTopic(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	client := NewClientWithPublisher(pubSub, Config{})
	defer client.Close()

	assert.ErrorIs(t, client.Publish(context.Background(), "", nil), ErrInvalidTopic)
}

func TestNewClient_NotConfigured(t *testing.T) {
	client, err := NewClient(Config{})
	assert.Nil(t, client)
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestConfig(t *testing.T) {
	assert.False(t, Config{}.Enabled())
	assert.True(t, DefaultConfig().Enabled())

	assert.Nil(t, streamMaxlens(0))
	assert.Equal(t, int64(100), streamMaxlens(100)[TopicActivityMemberLeft])

	client := NewClientWithPublisher(nil, Config{})
	assert.Equal(t, 3*time.Second, client.PublishTimeout())
}

func TestWatermillLogger_With(t *testing.T) {
	base := newWatermillLogger("signup-api")
	child := base.With(watermill.LogFields{"topic": TopicActivityMemberLeft})

	assert.Len(t, base.(*watermillLogger).fields, 1)
	assert.Len(t, child.(*watermillLogger).fields, 2)
	assert.NotPanics(t, func() {
		child.Info("published", watermill.LogFields{"uuid": "1"})
		child.Error("publish failed", ErrConnectionFailed, nil)
	})
}
