package handler

import (
	"phone-book/internal/model"
	"phone-book/internal/service"
	"phone-book/pkg/jwt"
	"phone-book/pkg/response"

	"github.com/gin-gonic/gin"
)

// MessageHandler 消息处理器
type MessageHandler struct {
	service *service.MessageService
}

// NewMessageHandler 创建MessageHandler实例
func NewMessageHandler(s *service.MessageService) *MessageHandler {
	return &MessageHandler{service: s}
}

// CreateMessage 创建消息
func (h *MessageHandler) CreateMessage(c *gin.Context) {
	var attrs model.Attributes
	if err := c.ShouldBindJSON(&attrs); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	message, err := h.service.Create(jwt.ActorID(c), attrs)
	if err != nil {
		respondError(c, err)
		return
	}

	response.SuccessWithMessage(c, "消息创建成功", response.FilterMessageInfo(message))
}

// UpdateMessage 更新消息
func (h *MessageHandler) UpdateMessage(c *gin.Context) {
	id, ok := paramID(c, "message_id")
	if !ok {
		return
	}

	var attrs model.Attributes
	if err := c.ShouldBindJSON(&attrs); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	message, err := h.service.Update(jwt.ActorID(c), id, attrs)
	if err != nil {
		respondError(c, err)
		return
	}

	response.SuccessWithMessage(c, "消息更新成功", response.FilterMessageInfo(message))
}

// UpdateStatus 更新消息状态
func (h *MessageHandler) UpdateStatus(c *gin.Context) {
	id, ok := paramID(c, "message_id")
	if !ok {
		return
	}

	type req struct {
		Status string `json:"status" binding:"required"`
	}
	var r req
	if err := c.ShouldBindJSON(&r); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	message, err := h.service.UpdateStatus(jwt.ActorID(c), id, r.Status)
	if err != nil {
		respondError(c, err)
		return
	}

	response.SuccessWithMessage(c, "消息状态已更新", response.FilterMessageInfo(message))
}

// GetMessage 获取单条消息
func (h *MessageHandler) GetMessage(c *gin.Context) {
	id, ok := paramID(c, "message_id")
	if !ok {
		return
	}

	message, err := h.service.Get(jwt.ActorID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, response.FilterMessageInfo(message))
}

// ListMessages 获取当前用户的消息
func (h *MessageHandler) ListMessages(c *gin.Context) {
	actor := jwt.ActorID(c)
	if actor == nil {
		response.Unauthorized(c, "用户未认证")
		return
	}

	page, pageSize := pageQuery(c)
	messages, err := h.service.ListByUser(*actor, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, response.FilterMessageList(messages))
}

// ListContactMessages 获取发给某联系人的消息
func (h *MessageHandler) ListContactMessages(c *gin.Context) {
	contactID, ok := paramID(c, "contact_id")
	if !ok {
		return
	}

	page, pageSize := pageQuery(c)
	messages, err := h.service.ListByContact(jwt.ActorID(c), contactID, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, response.FilterMessageList(messages))
}

// Stats 各状态消息数量
func (h *MessageHandler) Stats(c *gin.Context) {
	actor := jwt.ActorID(c)
	if actor == nil {
		response.Unauthorized(c, "用户未认证")
		return
	}

	stats, err := h.service.Stats(*actor)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, stats)
}

// DeleteMessage 删除消息
func (h *MessageHandler) DeleteMessage(c *gin.Context) {
	id, ok := paramID(c, "message_id")
	if !ok {
		return
	}

	if err := h.service.Delete(jwt.ActorID(c), id); err != nil {
		respondError(c, err)
		return
	}

	response.SuccessWithMessage(c, "消息删除成功", nil)
}

// GetMessageUser 获取消息所属用户
func (h *MessageHandler) GetMessageUser(c *gin.Context) {
	id, ok := paramID(c, "message_id")
	if !ok {
		return
	}

	user, err := h.service.Owner(jwt.ActorID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, response.FilterUserInfo(user))
}

// GetMessageContact 获取消息的联系人
func (h *MessageHandler) GetMessageContact(c *gin.Context) {
	id, ok := paramID(c, "message_id")
	if !ok {
		return
	}

	contact, err := h.service.Recipient(jwt.ActorID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, response.FilterContactInfo(contact))
}
