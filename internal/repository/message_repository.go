package repository

import (
	"errors"

	"phone-book/internal/model"

	"gorm.io/gorm"
)

// MessageRepository 消息数据仓储
type MessageRepository struct {
	db *gorm.DB
}

// NewMessageRepository 创建MessageRepository实例
func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

// Create 创建消息
func (r *MessageRepository) Create(message *model.Message) error {
	return r.db.Omit("User", "Contact").Create(message).Error
}

// Update 保存消息的全部字段
func (r *MessageRepository) Update(message *model.Message) error {
	return r.db.Omit("User", "Contact").Save(message).Error
}

// GetByID 根据ID获取消息
func (r *MessageRepository) GetByID(id uint) (*model.Message, error) {
	var message model.Message
	err := r.db.First(&message, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMessageNotFound
		}
		return nil, err
	}
	return &message, nil
}

// ListByUser 获取用户的消息，按创建时间倒序
func (r *MessageRepository) ListByUser(userID uint, limit, offset int) ([]*model.Message, error) {
	var messages []*model.Message

	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&messages).Error

	return messages, err
}

// ListByContact 获取发给某个联系人的消息，按创建时间倒序
func (r *MessageRepository) ListByContact(contactID uint, limit, offset int) ([]*model.Message, error) {
	var messages []*model.Message

	err := r.db.Where("contact_id = ?", contactID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&messages).Error

	return messages, err
}

// CountByStatus 统计用户各状态的消息数量
func (r *MessageRepository) CountByStatus(userID uint) (map[string]int64, error) {
	type row struct {
		Status string
		Total  int64
	}
	var rows []row
	err := r.db.Model(&model.Message{}).
		Select("status, COUNT(*) AS total").
		Where("user_id = ?", userID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.Total
	}
	return counts, nil
}

// Delete 删除消息
func (r *MessageRepository) Delete(id uint) error {
	result := r.db.Delete(&model.Message{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMessageNotFound
	}
	return nil
}

// User 按外键加载消息所属用户
func (r *MessageRepository) User(message *model.Message) (*model.User, error) {
	if message.UserID == nil {
		return nil, ErrUserNotFound
	}
	var user model.User
	if err := r.db.First(&user, *message.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// Contact 按外键加载消息的联系人
func (r *MessageRepository) Contact(message *model.Message) (*model.Contact, error) {
	var contact model.Contact
	if err := r.db.First(&contact, message.ContactID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContactNotFound
		}
		return nil, err
	}
	return &contact, nil
}
