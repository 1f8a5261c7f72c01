package event

import (
	"context"
	"sync"
	"time"

	"phone-book/internal/model"

	"go.uber.org/zap"
)

// Bus 同步分发"消息已发送"事件，实现 model.Notifier。
// 订阅者的错误只记录日志，不影响调用方。
type Bus struct {
	log      *zap.Logger
	timeout  time.Duration
	mu       sync.RWMutex
	handlers map[string]Handler
}

// NewBus 创建事件总线，timeout 为单个订阅者的处理上限
func NewBus(log *zap.Logger, timeout time.Duration) *Bus {
	if log == nil {
		log = zap.NewNop()
	}
	return &Bus{
		log:      log,
		timeout:  timeout,
		handlers: make(map[string]Handler),
	}
}

// Subscribe 注册订阅者，同名订阅者会被替换
func (b *Bus) Subscribe(name string, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[name] = h
}

// MessageSent 实现 model.Notifier
func (b *Bus) MessageSent(m *model.Message) {
	b.Publish(context.Background(), NewMessageSent(m))
}

// Publish 把事件依次交给所有订阅者
func (b *Bus) Publish(ctx context.Context, evt MessageSent) {
	b.mu.RLock()
	handlers := make(map[string]Handler, len(b.handlers))
	for name, h := range b.handlers {
		handlers[name] = h
	}
	b.mu.RUnlock()

	for name, h := range handlers {
		hctx := ctx
		cancel := func() {}
		if b.timeout > 0 {
			hctx, cancel = context.WithTimeout(ctx, b.timeout)
		}
		if err := h.Handle(hctx, evt); err != nil {
			b.log.Warn("事件处理失败",
				zap.String("handler", name),
				zap.String("event", evt.Name),
				zap.String("event_id", evt.EventID),
				zap.Uint("message_id", evt.MessageID),
				zap.Error(err),
			)
		}
		cancel()
	}
}
