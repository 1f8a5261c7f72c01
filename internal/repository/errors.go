package repository

import "errors"

var (
	ErrMessageNotFound = errors.New("message not found")
	ErrContactNotFound = errors.New("contact not found")
	ErrUserNotFound    = errors.New("user not found")
)
