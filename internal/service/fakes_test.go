package service

import (
	"errors"
	"sort"
	"time"

	"phone-book/internal/model"
	"phone-book/internal/repository"
)

// 内存版仓储，仅用于测试

type memMessages struct {
	rows      map[uint]*model.Message
	users     map[uint]*model.User
	contacts  *memContacts
	nextID    uint
	failWrite error
	creates   int
	updates   int
}

func newMemMessages(contacts *memContacts) *memMessages {
	return &memMessages{rows: map[uint]*model.Message{}, users: map[uint]*model.User{}, contacts: contacts}
}

func (s *memMessages) Create(m *model.Message) error {
	if s.failWrite != nil {
		return s.failWrite
	}
	s.nextID++
	m.ID = s.nextID
	m.CreatedAt = time.Now()
	m.UpdatedAt = m.CreatedAt
	cp := *m
	s.rows[m.ID] = &cp
	s.creates++
	return nil
}

func (s *memMessages) Update(m *model.Message) error {
	if s.failWrite != nil {
		return s.failWrite
	}
	if _, ok := s.rows[m.ID]; !ok {
		return repository.ErrMessageNotFound
	}
	cp := *m
	s.rows[m.ID] = &cp
	s.updates++
	return nil
}

func (s *memMessages) GetByID(id uint) (*model.Message, error) {
	m, ok := s.rows[id]
	if !ok {
		return nil, repository.ErrMessageNotFound
	}
	cp := *m
	return &cp, nil
}

func (s *memMessages) list(match func(*model.Message) bool, limit, offset int) []*model.Message {
	var out []*model.Message
	for _, m := range s.rows {
		if match(m) {
			cp := *m
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if offset >= len(out) {
		return nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func (s *memMessages) ListByUser(userID uint, limit, offset int) ([]*model.Message, error) {
	return s.list(func(m *model.Message) bool { return m.UserID != nil && *m.UserID == userID }, limit, offset), nil
}

func (s *memMessages) ListByContact(contactID uint, limit, offset int) ([]*model.Message, error) {
	return s.list(func(m *model.Message) bool { return m.ContactID == contactID }, limit, offset), nil
}

func (s *memMessages) CountByStatus(userID uint) (map[string]int64, error) {
	counts := map[string]int64{}
	for _, m := range s.rows {
		if m.UserID != nil && *m.UserID == userID {
			counts[m.Status]++
		}
	}
	return counts, nil
}

func (s *memMessages) Delete(id uint) error {
	if _, ok := s.rows[id]; !ok {
		return repository.ErrMessageNotFound
	}
	delete(s.rows, id)
	return nil
}

func (s *memMessages) User(m *model.Message) (*model.User, error) {
	if m.UserID == nil {
		return nil, repository.ErrUserNotFound
	}
	u, ok := s.users[*m.UserID]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return u, nil
}

func (s *memMessages) Contact(m *model.Message) (*model.Contact, error) {
	return s.contacts.GetByID(m.ContactID)
}

type memContacts struct {
	rows   map[uint]*model.Contact
	nextID uint
}

func newMemContacts() *memContacts {
	return &memContacts{rows: map[uint]*model.Contact{}}
}

func (s *memContacts) add(userID uint, name string) *model.Contact {
	c := &model.Contact{UserID: userID, Name: name, Phone: "555-0100"}
	_ = s.Create(c)
	return c
}

func (s *memContacts) Create(c *model.Contact) error {
	s.nextID++
	c.ID = s.nextID
	cp := *c
	s.rows[c.ID] = &cp
	return nil
}

func (s *memContacts) Update(c *model.Contact) error {
	if _, ok := s.rows[c.ID]; !ok {
		return repository.ErrContactNotFound
	}
	cp := *c
	s.rows[c.ID] = &cp
	return nil
}

func (s *memContacts) GetByID(id uint) (*model.Contact, error) {
	c, ok := s.rows[id]
	if !ok {
		return nil, repository.ErrContactNotFound
	}
	cp := *c
	return &cp, nil
}

func (s *memContacts) ListByUser(userID uint, limit, offset int) ([]*model.Contact, error) {
	var out []*model.Contact
	for _, c := range s.rows {
		if c.UserID == userID {
			cp := *c
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *memContacts) Delete(id uint) error {
	if _, ok := s.rows[id]; !ok {
		return repository.ErrContactNotFound
	}
	delete(s.rows, id)
	return nil
}

type memUsers struct {
	rows   map[uint]*model.User
	nextID uint
}

func newMemUsers() *memUsers {
	return &memUsers{rows: map[uint]*model.User{}}
}

func (s *memUsers) Create(u *model.User) error {
	for _, existing := range s.rows {
		if existing.Username == u.Username {
			return errors.New("duplicate username")
		}
	}
	s.nextID++
	u.ID = s.nextID
	cp := *u
	s.rows[u.ID] = &cp
	return nil
}

func (s *memUsers) GetByID(id uint) (*model.User, error) {
	u, ok := s.rows[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *memUsers) GetByUsernameOrEmail(identifier string) (*model.User, error) {
	for _, u := range s.rows {
		if u.Username == identifier || (u.Email != "" && u.Email == identifier) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrUserNotFound
}
