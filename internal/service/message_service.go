package service

import (
	"errors"
	"fmt"
	"time"

	"phone-book/internal/model"
	"phone-book/internal/repository"

	"go.uber.org/zap"
)

// MessageService 消息服务
type MessageService struct {
	messages MessageStore
	contacts ContactStore
	notifier model.Notifier
	log      *zap.Logger
	now      func() time.Time
}

// NewMessageService 创建MessageService实例
func NewMessageService(messages MessageStore, contacts ContactStore, notifier model.Notifier, log *zap.Logger) *MessageService {
	if log == nil {
		log = zap.NewNop()
	}
	return &MessageService{
		messages: messages,
		contacts: contacts,
		notifier: notifier,
		log:      log,
		now:      time.Now,
	}
}

// deferredNotifier 暂存赋值过程中产生的通知，持久化成功后再转发
type deferredNotifier struct {
	pending []*model.Message
}

func (d *deferredNotifier) MessageSent(m *model.Message) {
	d.pending = append(d.pending, m)
}

func (d *deferredNotifier) flush(target model.Notifier) {
	if target == nil {
		return
	}
	for _, m := range d.pending {
		target.MessageSent(m)
	}
	d.pending = nil
}

func (s *MessageService) hooks(n model.Notifier) model.Hooks {
	return model.Hooks{Notifier: n, Logger: s.log, Now: s.now}
}

// Create 创建消息。所属用户优先取认证用户，联系人必须存在且属于该用户
func (s *MessageService) Create(actorID *uint, attrs model.Attributes) (*model.Message, error) {
	if attrs.ContactID == nil || *attrs.ContactID == 0 {
		return nil, ErrContactRequired
	}

	pending := &deferredNotifier{}
	message := &model.Message{}
	message.Fill(attrs, actorID, s.hooks(pending))
	// 未提供状态时按列默认值处理，不走 SetStatus，因此不写状态变更日志
	if message.Status == "" {
		message.Status = model.StatusQueued
	}

	if err := s.checkContact(message); err != nil {
		return nil, err
	}

	if err := s.messages.Create(message); err != nil {
		return nil, fmt.Errorf("create message: %w", err)
	}
	pending.flush(s.notifier)

	return message, nil
}

// Update 更新消息的可赋值字段
func (s *MessageService) Update(actorID *uint, id uint, attrs model.Attributes) (*model.Message, error) {
	message, err := s.load(actorID, id)
	if err != nil {
		return nil, err
	}

	pending := &deferredNotifier{}
	message.Fill(attrs, actorID, s.hooks(pending))

	if attrs.ContactID != nil {
		if err := s.checkContact(message); err != nil {
			return nil, err
		}
	}

	if err := s.messages.Update(message); err != nil {
		return nil, fmt.Errorf("update message: %w", err)
	}
	pending.flush(s.notifier)

	return message, nil
}

// UpdateStatus 更新消息状态（例如处理送达/已读回执）
func (s *MessageService) UpdateStatus(actorID *uint, id uint, status string) (*model.Message, error) {
	return s.Update(actorID, id, model.Attributes{Status: &status})
}

// Get 获取单条消息
func (s *MessageService) Get(actorID *uint, id uint) (*model.Message, error) {
	return s.load(actorID, id)
}

// ListByUser 获取当前用户的消息
func (s *MessageService) ListByUser(userID uint, page, pageSize int) ([]*model.Message, error) {
	limit, offset := pageBounds(page, pageSize)
	return s.messages.ListByUser(userID, limit, offset)
}

// ListByContact 获取发给某联系人的消息，联系人必须属于当前用户
func (s *MessageService) ListByContact(actorID *uint, contactID uint, page, pageSize int) ([]*model.Message, error) {
	contact, err := s.contacts.GetByID(contactID)
	if err != nil {
		return nil, mapNotFound(err)
	}
	if actorID != nil && contact.UserID != *actorID {
		return nil, ErrPermissionDenied
	}

	limit, offset := pageBounds(page, pageSize)
	return s.messages.ListByContact(contactID, limit, offset)
}

// Stats 统计当前用户各状态的消息数量
func (s *MessageService) Stats(userID uint) (map[string]int64, error) {
	return s.messages.CountByStatus(userID)
}

// Delete 删除消息
func (s *MessageService) Delete(actorID *uint, id uint) error {
	if _, err := s.load(actorID, id); err != nil {
		return err
	}
	return mapNotFound(s.messages.Delete(id))
}

// Owner 获取消息所属用户
func (s *MessageService) Owner(actorID *uint, id uint) (*model.User, error) {
	message, err := s.load(actorID, id)
	if err != nil {
		return nil, err
	}
	user, err := s.messages.User(message)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return user, nil
}

// Recipient 获取消息的联系人
func (s *MessageService) Recipient(actorID *uint, id uint) (*model.Contact, error) {
	message, err := s.load(actorID, id)
	if err != nil {
		return nil, err
	}
	contact, err := s.messages.Contact(message)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return contact, nil
}

// load 加载消息并校验归属：认证用户只能访问自己的消息
func (s *MessageService) load(actorID *uint, id uint) (*model.Message, error) {
	message, err := s.messages.GetByID(id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	if actorID != nil && (message.UserID == nil || *message.UserID != *actorID) {
		return nil, ErrPermissionDenied
	}
	return message, nil
}

func (s *MessageService) checkContact(message *model.Message) error {
	contact, err := s.contacts.GetByID(message.ContactID)
	if err != nil {
		return mapNotFound(err)
	}
	if message.UserID != nil && contact.UserID != *message.UserID {
		return ErrPermissionDenied
	}
	return nil
}

// mapNotFound 把仓储层的未找到错误转换为服务层错误
func mapNotFound(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrMessageNotFound):
		return ErrMessageNotFound
	case errors.Is(err, repository.ErrContactNotFound):
		return ErrContactNotFound
	case errors.Is(err, repository.ErrUserNotFound):
		return ErrUserNotFound
	default:
		return err
	}
}
