package handler

import (
	"phone-book/internal/service"
	"phone-book/pkg/jwt"
	"phone-book/pkg/response"

	"github.com/gin-gonic/gin"
)

// ContactHandler 联系人处理器
type ContactHandler struct {
	service *service.ContactService
}

func NewContactHandler(s *service.ContactService) *ContactHandler {
	return &ContactHandler{service: s}
}

// actor 联系人接口都要求已认证
func actor(c *gin.Context) (uint, bool) {
	id := jwt.ActorID(c)
	if id == nil {
		response.Unauthorized(c, "用户未认证")
		return 0, false
	}
	return *id, true
}

// CreateContact 创建联系人
func (h *ContactHandler) CreateContact(c *gin.Context) {
	userID, ok := actor(c)
	if !ok {
		return
	}
	var in service.ContactInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	contact, err := h.service.Create(userID, in)
	if err != nil {
		respondError(c, err)
		return
	}
	response.SuccessWithMessage(c, "联系人创建成功", response.FilterContactInfo(contact))
}

// UpdateContact 更新联系人
func (h *ContactHandler) UpdateContact(c *gin.Context) {
	userID, ok := actor(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "contact_id")
	if !ok {
		return
	}
	var in service.ContactInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	contact, err := h.service.Update(userID, id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	response.SuccessWithMessage(c, "联系人更新成功", response.FilterContactInfo(contact))
}

// GetContact 获取联系人
func (h *ContactHandler) GetContact(c *gin.Context) {
	userID, ok := actor(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "contact_id")
	if !ok {
		return
	}

	contact, err := h.service.Get(userID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, response.FilterContactInfo(contact))
}

// ListContacts 获取联系人列表
func (h *ContactHandler) ListContacts(c *gin.Context) {
	userID, ok := actor(c)
	if !ok {
		return
	}
	page, pageSize := pageQuery(c)

	contacts, err := h.service.List(userID, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, response.FilterContactList(contacts))
}

// DeleteContact 删除联系人
func (h *ContactHandler) DeleteContact(c *gin.Context) {
	userID, ok := actor(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "contact_id")
	if !ok {
		return
	}

	if err := h.service.Delete(userID, id); err != nil {
		respondError(c, err)
		return
	}
	response.SuccessWithMessage(c, "联系人删除成功", nil)
}
