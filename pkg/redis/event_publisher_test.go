package redis

import (
	"context"
	"testing"
	"time"

	"phone-book/internal/event"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func TestEventPublisher_NilClient(t *testing.T) {
	p := NewEventPublisher(nil, "phonebook:events:message_sent")
	err := p.Handle(context.Background(), event.MessageSent{Name: event.NameMessageSent})
	require.Error(t, err)
}

func TestEventPublisher_UnreachableServer(t *testing.T) {
	c := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		MaxRetries:  -1,
		DialTimeout: 100 * time.Millisecond,
	})
	defer c.Close()

	p := NewEventPublisher(c, "phonebook:events:message_sent")
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	err := p.Handle(ctx, event.MessageSent{Name: event.NameMessageSent, MessageID: 1})
	require.ErrorContains(t, err, "发布事件失败")
}

func TestHealthCheck_Uninitialized(t *testing.T) {
	client = nil
	require.Error(t, HealthCheck(context.Background()))
}
