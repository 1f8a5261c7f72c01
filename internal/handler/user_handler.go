package handler

import (
	"phone-book/internal/service"
	"phone-book/pkg/response"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	service *service.UserService
}

func NewUserHandler(s *service.UserService) *UserHandler {
	return &UserHandler{service: s}
}

// Register 用户注册
func (h *UserHandler) Register(c *gin.Context) {
	type req struct {
		Username string `json:"username" binding:"required"`
		Email    string `json:"email" binding:"omitempty,email"`
		Name     string `json:"name"`
		Password string `json:"password" binding:"required,min=6"`
	}
	var r req
	if err := c.ShouldBindJSON(&r); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	user, token, err := h.service.Register(r.Username, r.Email, r.Name, r.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	response.SuccessWithMessage(c, "注册成功", &response.LoginResponse{
		User:        response.FilterUserInfo(user),
		AccessToken: token,
	})
}

// Login 用户登录
func (h *UserHandler) Login(c *gin.Context) {
	type req struct {
		UsernameOrEmail string `json:"usernameOrEmail" binding:"required"`
		Password        string `json:"password" binding:"required"`
	}
	var r req
	if err := c.ShouldBindJSON(&r); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	user, token, err := h.service.Login(r.UsernameOrEmail, r.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	response.SuccessWithMessage(c, "登录成功", &response.LoginResponse{
		User:        response.FilterUserInfo(user),
		AccessToken: token,
	})
}

// GetProfile 获取用户资料（需要JWT认证）
func (h *UserHandler) GetProfile(c *gin.Context) {
	userID, ok := actor(c)
	if !ok {
		return
	}

	user, err := h.service.Profile(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	response.SuccessWithMessage(c, "获取用户资料成功", response.FilterUserInfo(user))
}
