package jwt

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"phone-book/config"

	jwtv5 "github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidSubject 令牌中的用户ID缺失或不是正整数
	ErrInvalidSubject = errors.New("invalid token subject")
	// ErrEmptyToken 令牌为空
	ErrEmptyToken = errors.New("token is empty")
)

// JWTService 签发和校验通讯录用户的访问令牌（HS256）。
// Subject 存放用户ID的十进制字符串，用户名放在 Username 中。
type JWTService struct {
	secretKey   []byte
	issuer      string
	expireAfter time.Duration
}

// CustomClaims 令牌载荷
type CustomClaims struct {
	Username string `json:"username,omitempty"`
	jwtv5.RegisteredClaims
}

// UserID 解析 Subject 中的用户ID
func (c *CustomClaims) UserID() (uint, error) {
	id, err := strconv.ParseUint(c.Subject, 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidSubject, c.Subject)
	}
	return uint(id), nil
}

func NewJWTService(cfg config.JWTConfig) *JWTService {
	return &JWTService{
		secretKey:   []byte(cfg.Secret),
		issuer:      cfg.Issuer,
		expireAfter: cfg.ExpireTime,
	}
}

// GenerateToken 为用户签发访问令牌
func (s *JWTService) GenerateToken(userID uint, username string) (string, error) {
	if userID == 0 {
		return "", fmt.Errorf("%w: user id is required", ErrInvalidSubject)
	}

	now := time.Now()
	claims := &CustomClaims{
		Username: username,
		RegisteredClaims: jwtv5.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   strconv.FormatUint(uint64(userID), 10),
			IssuedAt:  jwtv5.NewNumericDate(now),
			NotBefore: jwtv5.NewNumericDate(now),
			ExpiresAt: jwtv5.NewNumericDate(now.Add(s.expireAfter)),
		},
	}

	signed, err := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, claims).SignedString(s.secretKey)
	if err != nil {
		return "", fmt.Errorf("sign token failed: %w", err)
	}
	return signed, nil
}

// ValidateToken 校验签名、签发者和有效期，并确认 Subject 是合法的用户ID
func (s *JWTService) ValidateToken(tokenString string) (*CustomClaims, error) {
	if tokenString == "" {
		return nil, ErrEmptyToken
	}

	claims := &CustomClaims{}
	_, err := jwtv5.ParseWithClaims(tokenString, claims,
		func(token *jwtv5.Token) (interface{}, error) {
			return s.secretKey, nil
		},
		jwtv5.WithValidMethods([]string{jwtv5.SigningMethodHS256.Alg()}),
		jwtv5.WithIssuer(s.issuer),
	)
	if err != nil {
		return nil, fmt.Errorf("parse token failed: %w", err)
	}
	if _, err := claims.UserID(); err != nil {
		return nil, err
	}
	return claims, nil
}
