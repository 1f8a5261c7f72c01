package service

import "errors"

var (
	ErrMessageNotFound  = errors.New("message not found")
	ErrContactNotFound  = errors.New("contact not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrContactRequired  = errors.New("contact_id is required")
	ErrPermissionDenied = errors.New("permission denied")
	ErrInvalidInput     = errors.New("invalid input")
	ErrInvalidLogin     = errors.New("invalid credentials")
)
