package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"phone-book/internal/event"

	"github.com/redis/go-redis/v9"
)

// EventPublisher 把"消息已发送"事件发布到Redis频道，供其他服务订阅
type EventPublisher struct {
	client  *redis.Client
	channel string
}

func NewEventPublisher(client *redis.Client, channel string) *EventPublisher {
	return &EventPublisher{client: client, channel: channel}
}

// Handle 实现 event.Handler
func (p *EventPublisher) Handle(ctx context.Context, evt event.MessageSent) error {
	if p.client == nil {
		return fmt.Errorf("redis客户端未初始化")
	}

	payload, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("序列化事件失败: %w", err)
	}

	if err := p.client.Publish(ctx, p.channel, payload).Err(); err != nil {
		return fmt.Errorf("发布事件失败: %w", err)
	}
	return nil
}

// Subscribe 订阅事件频道，每收到一条事件调用一次 fn，直到 ctx 结束
func (p *EventPublisher) Subscribe(ctx context.Context, fn func(event.MessageSent)) error {
	sub := p.client.Subscribe(ctx, p.channel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("订阅事件频道失败: %w", err)
	}

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			var evt event.MessageSent
			if err := json.Unmarshal([]byte(msg.Payload), &evt); err != nil {
				continue
			}
			fn(evt)
		}
	}
}
