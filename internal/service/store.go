package service

import "phone-book/internal/model"

// MessageStore 消息持久化接口，由 repository.MessageRepository 实现
type MessageStore interface {
	Create(message *model.Message) error
	Update(message *model.Message) error
	GetByID(id uint) (*model.Message, error)
	ListByUser(userID uint, limit, offset int) ([]*model.Message, error)
	ListByContact(contactID uint, limit, offset int) ([]*model.Message, error)
	CountByStatus(userID uint) (map[string]int64, error)
	Delete(id uint) error
	User(message *model.Message) (*model.User, error)
	Contact(message *model.Message) (*model.Contact, error)
}

// ContactStore 联系人持久化接口
type ContactStore interface {
	Create(contact *model.Contact) error
	Update(contact *model.Contact) error
	GetByID(id uint) (*model.Contact, error)
	ListByUser(userID uint, limit, offset int) ([]*model.Contact, error)
	Delete(id uint) error
}

// UserStore 用户持久化接口
type UserStore interface {
	Create(user *model.User) error
	GetByID(id uint) (*model.User, error)
	GetByUsernameOrEmail(identifier string) (*model.User, error)
}

// pageBounds 计算分页参数，页码从1开始，默认每页20条，最多100条
func pageBounds(page, pageSize int) (limit, offset int) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	return pageSize, (page - 1) * pageSize
}
