package response

import (
	"net/http"
	"time"

	"phone-book/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
)

// Response 统一响应结构
type Response struct {
	Code    int         `json:"code"`            // 状态码：0表示成功，其他表示错误
	Message string      `json:"message"`         // 响应消息
	Data    interface{} `json:"data,omitempty"`  // 响应数据
	Error   string      `json:"error,omitempty"` // 错误详情（仅在开发环境显示）
}

// Success 成功响应
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// SuccessWithMessage 带自定义消息的成功响应
func SuccessWithMessage(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: message,
		Data:    data,
	})
}

// Error 错误响应
func Error(c *gin.Context, code int, message string) {
	c.JSON(http.StatusOK, Response{
		Code:    code,
		Message: message,
	})
}

// ErrorWithDetails 带错误详情的错误响应
func ErrorWithDetails(c *gin.Context, code int, message string, err error) {
	response := Response{
		Code:    code,
		Message: message,
	}

	// 在开发环境下显示错误详情
	if gin.Mode() == gin.DebugMode && err != nil {
		response.Error = err.Error()
	}

	c.JSON(http.StatusOK, response)
}

// BadRequest 400错误
func BadRequest(c *gin.Context, message string) {
	Error(c, 400, message)
}

// Unauthorized 401错误
func Unauthorized(c *gin.Context, message string) {
	Error(c, 401, message)
}

// Forbidden 403错误
func Forbidden(c *gin.Context, message string) {
	Error(c, 403, message)
}

// NotFound 404错误
func NotFound(c *gin.Context, message string) {
	Error(c, 404, message)
}

const timeLayout = "2006-01-02 15:04:05"

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(timeLayout)
}

// UserInfo 用户信息（隐藏敏感字段）
type UserInfo struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
}

// FilterUserInfo 过滤用户信息，隐藏敏感字段
func FilterUserInfo(user *model.User) *UserInfo {
	if user == nil {
		return nil
	}

	return &UserInfo{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Name:      user.Name,
		CreatedAt: user.CreatedAt.Format(timeLayout),
	}
}

// LoginResponse 登录/注册响应
type LoginResponse struct {
	User        *UserInfo `json:"user"`
	AccessToken string    `json:"access_token"`
}

// ContactResponse 联系人响应
type ContactResponse struct {
	ID        uint   `json:"id"`
	UserID    uint   `json:"user_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Notes     string `json:"notes"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// FilterContactInfo 转换联系人
func FilterContactInfo(contact *model.Contact) *ContactResponse {
	if contact == nil {
		return nil
	}

	return &ContactResponse{
		ID:        contact.ID,
		UserID:    contact.UserID,
		Name:      contact.Name,
		Email:     contact.Email,
		Phone:     contact.Phone,
		Notes:     contact.Notes,
		CreatedAt: contact.CreatedAt.Format(timeLayout),
		UpdatedAt: contact.UpdatedAt.Format(timeLayout),
	}
}

// FilterContactList 转换联系人列表
func FilterContactList(contacts []*model.Contact) []*ContactResponse {
	return lo.Map(contacts, func(c *model.Contact, _ int) *ContactResponse {
		return FilterContactInfo(c)
	})
}

// MessageResponse 消息响应
type MessageResponse struct {
	ID          uint   `json:"id"`
	Type        string `json:"type"`
	Body        string `json:"body"`
	Status      string `json:"status"`
	UserID      *uint  `json:"user_id"`
	ContactID   uint   `json:"contact_id"`
	SentAt      string `json:"sent_at,omitempty"`
	DeliveredAt string `json:"delivered_at,omitempty"`
	ReadAt      string `json:"read_at,omitempty"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// FilterMessageInfo 转换消息
func FilterMessageInfo(message *model.Message) *MessageResponse {
	if message == nil {
		return nil
	}

	return &MessageResponse{
		ID:          message.ID,
		Type:        message.Type,
		Body:        message.Body,
		Status:      message.Status,
		UserID:      message.UserID,
		ContactID:   message.ContactID,
		SentAt:      formatTime(message.SentAt),
		DeliveredAt: formatTime(message.DeliveredAt),
		ReadAt:      formatTime(message.ReadAt),
		CreatedAt:   message.CreatedAt.Format(timeLayout),
		UpdatedAt:   message.UpdatedAt.Format(timeLayout),
	}
}

// FilterMessageList 转换消息列表
func FilterMessageList(messages []*model.Message) []*MessageResponse {
	return lo.Map(messages, func(m *model.Message, _ int) *MessageResponse {
		return FilterMessageInfo(m)
	})
}
