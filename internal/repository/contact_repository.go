package repository

import (
	"errors"

	"phone-book/internal/model"

	"gorm.io/gorm"
)

// ContactRepository 联系人数据仓储
type ContactRepository struct {
	db *gorm.DB
}

func NewContactRepository(db *gorm.DB) *ContactRepository {
	return &ContactRepository{db: db}
}

func (r *ContactRepository) Create(contact *model.Contact) error {
	return r.db.Omit("User").Create(contact).Error
}

func (r *ContactRepository) Update(contact *model.Contact) error {
	return r.db.Omit("User").Save(contact).Error
}

func (r *ContactRepository) GetByID(id uint) (*model.Contact, error) {
	var c model.Contact
	if err := r.db.First(&c, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContactNotFound
		}
		return nil, err
	}
	return &c, nil
}

// ListByUser 获取用户的联系人，按姓名排序
func (r *ContactRepository) ListByUser(userID uint, limit, offset int) ([]*model.Contact, error) {
	var contacts []*model.Contact
	err := r.db.Where("user_id = ?", userID).
		Order("name ASC").
		Limit(limit).
		Offset(offset).
		Find(&contacts).Error
	return contacts, err
}

// Delete 删除联系人及其消息
func (r *ContactRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("contact_id = ?", id).Delete(&model.Message{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&model.Contact{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrContactNotFound
		}
		return nil
	})
}
