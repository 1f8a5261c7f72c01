package service

import (
	"fmt"
	"strings"

	"phone-book/internal/model"

	"github.com/go-playground/validator/v10"
)

// ContactInput 创建/更新联系人的输入
type ContactInput struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Notes string `json:"notes"`
}

// ContactService 联系人服务
type ContactService struct {
	contacts ContactStore
	validate *validator.Validate
}

func NewContactService(contacts ContactStore) *ContactService {
	return &ContactService{
		contacts: contacts,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Create 为当前用户创建联系人
func (s *ContactService) Create(userID uint, in ContactInput) (*model.Contact, error) {
	contact := &model.Contact{UserID: userID}
	applyContactInput(contact, in)

	if err := s.check(contact); err != nil {
		return nil, err
	}
	if err := s.contacts.Create(contact); err != nil {
		return nil, fmt.Errorf("create contact: %w", err)
	}
	return contact, nil
}

// Update 更新联系人
func (s *ContactService) Update(userID, id uint, in ContactInput) (*model.Contact, error) {
	contact, err := s.Get(userID, id)
	if err != nil {
		return nil, err
	}
	applyContactInput(contact, in)

	if err := s.check(contact); err != nil {
		return nil, err
	}
	if err := s.contacts.Update(contact); err != nil {
		return nil, fmt.Errorf("update contact: %w", err)
	}
	return contact, nil
}

// Get 获取联系人，只能访问自己的联系人
func (s *ContactService) Get(userID, id uint) (*model.Contact, error) {
	contact, err := s.contacts.GetByID(id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	if contact.UserID != userID {
		return nil, ErrPermissionDenied
	}
	return contact, nil
}

// List 分页获取当前用户的联系人
func (s *ContactService) List(userID uint, page, pageSize int) ([]*model.Contact, error) {
	limit, offset := pageBounds(page, pageSize)
	return s.contacts.ListByUser(userID, limit, offset)
}

// Delete 删除联系人及其消息
func (s *ContactService) Delete(userID, id uint) error {
	if _, err := s.Get(userID, id); err != nil {
		return err
	}
	return mapNotFound(s.contacts.Delete(id))
}

func (s *ContactService) check(contact *model.Contact) error {
	if err := s.validate.Struct(contact); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidInput, err.Error())
	}
	return nil
}

func applyContactInput(contact *model.Contact, in ContactInput) {
	contact.Name = strings.TrimSpace(in.Name)
	contact.Email = strings.TrimSpace(in.Email)
	contact.Phone = strings.TrimSpace(in.Phone)
	contact.Notes = in.Notes
}
