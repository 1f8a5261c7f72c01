package handler

import (
	"phone-book/pkg/jwt"

	"github.com/gin-gonic/gin"
)

// Handlers 全部业务处理器
type Handlers struct {
	User    *UserHandler
	Contact *ContactHandler
	Message *MessageHandler
}

// RegisterRoutes 绑定 /api/v1 下的业务路由
func RegisterRoutes(router *gin.Engine, jwtSvc *jwt.JWTService, h Handlers) {
	v1 := router.Group("/api/v1")

	users := v1.Group("/users")
	{
		// 公开接口（无需认证）
		users.POST("/register", h.User.Register)
		users.POST("/login", h.User.Login)

		// 需要认证的接口
		users.GET("/profile", jwtSvc.AuthMiddleware(), h.User.GetProfile)
	}

	// 联系人路由（需要认证）
	contacts := v1.Group("/contacts")
	contacts.Use(jwtSvc.AuthMiddleware())
	{
		contacts.GET("", h.Contact.ListContacts)
		contacts.POST("", h.Contact.CreateContact)
		contacts.GET("/:contact_id", h.Contact.GetContact)
		contacts.PUT("/:contact_id", h.Contact.UpdateContact)
		contacts.DELETE("/:contact_id", h.Contact.DeleteContact)
		contacts.GET("/:contact_id/messages", h.Message.ListContactMessages)
	}

	// 消息路由（需要认证）
	messages := v1.Group("/messages")
	messages.Use(jwtSvc.AuthMiddleware())
	{
		messages.GET("", h.Message.ListMessages)
		messages.POST("", h.Message.CreateMessage)
		messages.GET("/stats", h.Message.Stats)
		messages.GET("/:message_id", h.Message.GetMessage)
		messages.PUT("/:message_id", h.Message.UpdateMessage)
		messages.PUT("/:message_id/status", h.Message.UpdateStatus)
		messages.DELETE("/:message_id", h.Message.DeleteMessage)
		messages.GET("/:message_id/user", h.Message.GetMessageUser)
		messages.GET("/:message_id/contact", h.Message.GetMessageContact)
	}
}
