package model

import (
	"strings"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"
)

// 消息类型
const (
	TypeEmail = "EMAIL"
	TypeText  = "TEXT"
)

// 消息状态：QUEUED -> SENT -> DELIVERED -> READ，或 FAILED
// 状态之间不做迁移校验，任意状态都可以被设置
const (
	StatusQueued    = "QUEUED"
	StatusSent      = "SENT"
	StatusFailed    = "FAILED"
	StatusDelivered = "DELIVERED"
	StatusRead      = "READ"
)

var messageTypes = []string{TypeEmail, TypeText}

// Message 用户发给联系人的消息（邮件或短信）
type Message struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Type        string     `gorm:"type:varchar(16);not null;default:'TEXT';comment:消息类型(EMAIL/TEXT)" json:"type"`
	Body        string     `gorm:"type:text;comment:消息内容" json:"body"`
	Status      string     `gorm:"type:varchar(32);not null;default:'QUEUED';index;comment:消息状态" json:"status"`
	UserID      *uint      `gorm:"index;comment:所属用户ID" json:"user_id"`
	ContactID   uint       `gorm:"not null;index;comment:联系人ID" json:"contact_id"`
	SentAt      *time.Time `gorm:"comment:发送时间" json:"sent_at"`
	DeliveredAt *time.Time `gorm:"comment:送达时间" json:"delivered_at"`
	ReadAt      *time.Time `gorm:"comment:已读时间" json:"read_at"`
	CreatedAt   time.Time  `gorm:"comment:创建时间" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"comment:更新时间" json:"updated_at"`

	// 关联关系由仓储层按外键解析，消息本身不负责加载
	User    *User    `gorm:"foreignKey:UserID" json:"-"`
	Contact *Contact `gorm:"foreignKey:ContactID" json:"-"`
}

func (Message) TableName() string { return "message" }

// Notifier 接收"消息已发送"通知
type Notifier interface {
	MessageSent(m *Message)
}

// Hooks 状态赋值时用到的外部协作者
type Hooks struct {
	Notifier Notifier
	Logger   *zap.Logger
	Now      func() time.Time
}

func (h Hooks) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

func (h Hooks) logger() *zap.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return zap.NewNop()
}

// Attributes 可批量赋值的字段，nil 表示调用方未提供
type Attributes struct {
	Type        *string    `json:"type"`
	Body        *string    `json:"body"`
	Status      *string    `json:"status"`
	UserID      *uint      `json:"user_id"`
	ContactID   *uint      `json:"contact_id"`
	SentAt      *time.Time `json:"sent_at"`
	DeliveredAt *time.Time `json:"delivered_at"`
	ReadAt      *time.Time `json:"read_at"`
}

// SetUserID 设置所属用户。存在当前认证用户时总是使用认证用户ID，
// 否则使用调用方提供的值（可能为空）
func (m *Message) SetUserID(actorID, value *uint) {
	switch {
	case actorID != nil:
		id := *actorID
		m.UserID = &id
	case value != nil:
		id := *value
		m.UserID = &id
	default:
		m.UserID = nil
	}
}

// SetType 设置消息类型，大小写不敏感，无法识别的值一律记为 TEXT
func (m *Message) SetType(value string) {
	upper := strings.ToUpper(value)
	if lo.Contains(messageTypes, upper) {
		m.Type = upper
		return
	}
	m.Type = TypeText
}

// SetStatus 设置消息状态并处理副作用：
// SENT 记录发送时间并发出通知，DELIVERED/READ 记录对应时间。
// 重复设置同一状态会再次记录时间（SENT 也会再次通知）。
// 未知状态只做大写转换后原样保存。
func (m *Message) SetStatus(value string, hooks Hooks) {
	m.Status = strings.ToUpper(value)

	switch m.Status {
	case StatusSent:
		now := hooks.now()
		m.SentAt = &now
		if hooks.Notifier != nil {
			hooks.Notifier.MessageSent(m)
		}
	case StatusDelivered:
		now := hooks.now()
		m.DeliveredAt = &now
	case StatusRead:
		now := hooks.now()
		m.ReadAt = &now
	}

	hooks.logger().Info("Message status updated to: "+m.Status, zap.Uint("message_id", m.ID))
}

// Fill 批量赋值。状态放在最后处理，保证状态带来的时间戳覆盖显式传入的值。
// 新记录（ID 为 0）未提供类型时记为 TEXT，并总是按认证用户确定所属用户。
func (m *Message) Fill(attrs Attributes, actorID *uint, hooks Hooks) {
	if attrs.Type != nil {
		m.SetType(*attrs.Type)
	} else if m.ID == 0 {
		m.SetType("")
	}
	if attrs.Body != nil {
		m.Body = *attrs.Body
	}
	if attrs.UserID != nil || m.ID == 0 {
		m.SetUserID(actorID, attrs.UserID)
	}
	if attrs.ContactID != nil {
		m.ContactID = *attrs.ContactID
	}
	if attrs.SentAt != nil {
		m.SentAt = attrs.SentAt
	}
	if attrs.DeliveredAt != nil {
		m.DeliveredAt = attrs.DeliveredAt
	}
	if attrs.ReadAt != nil {
		m.ReadAt = attrs.ReadAt
	}
	if attrs.Status != nil {
		m.SetStatus(*attrs.Status, hooks)
	}
}
