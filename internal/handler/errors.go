package handler

import (
	"errors"
	"strconv"

	"phone-book/internal/service"
	"phone-book/pkg/logger"
	"phone-book/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError 把服务层错误映射到统一响应
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrMessageNotFound),
		errors.Is(err, service.ErrContactNotFound),
		errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrPermissionDenied):
		response.Forbidden(c, err.Error())
	case errors.Is(err, service.ErrInvalidLogin):
		response.Unauthorized(c, err.Error())
	case errors.Is(err, service.ErrContactRequired),
		errors.Is(err, service.ErrInvalidInput):
		response.BadRequest(c, err.Error())
	default:
		logger.Error("请求处理失败",
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
		response.ErrorWithDetails(c, 500, "服务器内部错误", err)
	}
}

// paramID 解析路径中的ID参数
func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		response.BadRequest(c, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}

// pageQuery 读取分页参数
func pageQuery(c *gin.Context) (page, pageSize int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	pageSize, err = strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if err != nil || pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}
