package event

import (
	"context"
	"time"

	"phone-book/internal/model"

	"github.com/google/uuid"
)

// NameMessageSent "消息已发送"事件名
const NameMessageSent = "message_sent"

// MessageSent 消息状态被设置为 SENT 时发布的事件
type MessageSent struct {
	EventID    string     `json:"event_id"`
	Name       string     `json:"event"`
	MessageID  uint       `json:"message_id"`
	UserID     *uint      `json:"user_id"`
	ContactID  uint       `json:"contact_id"`
	Type       string     `json:"type"`
	Status     string     `json:"status"`
	SentAt     *time.Time `json:"sent_at"`
	OccurredAt time.Time  `json:"occurred_at"`
}

// NewMessageSent 根据消息记录构建事件
func NewMessageSent(m *model.Message) MessageSent {
	return MessageSent{
		EventID:    uuid.NewString(),
		Name:       NameMessageSent,
		MessageID:  m.ID,
		UserID:     m.UserID,
		ContactID:  m.ContactID,
		Type:       m.Type,
		Status:     m.Status,
		SentAt:     m.SentAt,
		OccurredAt: time.Now(),
	}
}

// Handler 事件订阅者
type Handler interface {
	Handle(ctx context.Context, evt MessageSent) error
}

// HandlerFunc 函数形式的订阅者
type HandlerFunc func(ctx context.Context, evt MessageSent) error

func (f HandlerFunc) Handle(ctx context.Context, evt MessageSent) error {
	return f(ctx, evt)
}
