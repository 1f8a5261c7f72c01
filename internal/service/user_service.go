package service

import (
	"errors"
	"fmt"
	"strings"

	"phone-book/internal/model"
	"phone-book/pkg/jwt"
	"phone-book/pkg/password"
)

type UserService struct {
	repo       UserStore
	jwtService *jwt.JWTService
}

func NewUserService(repo UserStore, jwtService *jwt.JWTService) *UserService {
	return &UserService{repo: repo, jwtService: jwtService}
}

// Register 注册
func (s *UserService) Register(username, email, name, plainPassword string) (*model.User, string, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || plainPassword == "" {
		return nil, "", fmt.Errorf("%w: username and password are required", ErrInvalidInput)
	}
	// 密码哈希
	hash, err := password.Hash(plainPassword)
	if errors.Is(err, password.ErrTooLong) {
		return nil, "", fmt.Errorf("%w: password longer than 72 bytes", ErrInvalidInput)
	}
	if err != nil {
		return nil, "", err
	}
	user := &model.User{
		Username:     username,
		Email:        email,
		Name:         strings.TrimSpace(name),
		PasswordHash: hash,
	}
	if err := s.repo.Create(user); err != nil {
		return nil, "", err
	}
	token, err := s.issueToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login 登录
func (s *UserService) Login(identifier, plainPassword string) (*model.User, string, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || plainPassword == "" {
		return nil, "", fmt.Errorf("%w: identifier and password are required", ErrInvalidInput)
	}
	u, err := s.repo.GetByUsernameOrEmail(identifier)
	if err != nil {
		if errors.Is(mapNotFound(err), ErrUserNotFound) {
			return nil, "", ErrInvalidLogin
		}
		return nil, "", err
	}
	if !password.Verify(plainPassword, u.PasswordHash) {
		return nil, "", ErrInvalidLogin
	}
	token, err := s.issueToken(u)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// Profile 获取用户资料
func (s *UserService) Profile(userID uint) (*model.User, error) {
	u, err := s.repo.GetByID(userID)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return u, nil
}

func (s *UserService) issueToken(u *model.User) (string, error) {
	return s.jwtService.GenerateToken(u.ID, u.Username)
}
