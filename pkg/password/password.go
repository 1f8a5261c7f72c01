package password

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrEmptyPassword 密码为空
var ErrEmptyPassword = errors.New("password is empty")

// ErrTooLong bcrypt 只接受不超过72字节的密码
var ErrTooLong = bcrypt.ErrPasswordTooLong

// Hash 生成密码哈希
func Hash(plain string) (string, error) {
	if plain == "" {
		return "", ErrEmptyPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify 校验密码，空密码或空哈希一律不通过
func Verify(plain, hash string) bool {
	if plain == "" || hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
