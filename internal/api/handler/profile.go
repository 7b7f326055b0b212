package handler

import (
	"errors"
	"net/http"

	"renrakuban/internal/constants"
	"renrakuban/internal/service"
	"renrakuban/internal/types"
	"renrakuban/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ProfileHandler 个人资料处理器
type ProfileHandler struct {
	profileService *service.ProfileService
	logger         *logger.Logger
}

// NewProfileHandler 创建个人资料处理器实例
func NewProfileHandler(profileService *service.ProfileService, logger *logger.Logger) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		logger:         logger,
	}
}

// Get 获取当前用户的个人资料
func (h *ProfileHandler) Get(c *gin.Context) {
	userID := c.GetInt64("user_id")

	ctx := c.Request.Context()
	profile, err := h.profileService.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			c.JSON(http.StatusOK, gin.H{"code": 404, "msg": err.Error()})
			return
		}
		h.logger.Error("获取个人资料失败", "user_id", userID, "error", err)
		c.JSON(http.StatusOK, gin.H{"code": 500, "msg": constants.ErrInternalServer})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": 200, "msg": constants.SuccessGet, "data": profile})
}

// Update 更新当前用户的个人资料
// 资料ID即请求用户ID，无法更新他人资料
func (h *ProfileHandler) Update(c *gin.Context) {
	var req types.ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{"code": 400, "msg": constants.ErrInvalidParams})
		return
	}

	userID := c.GetInt64("user_id")

	ctx := c.Request.Context()
	if err := h.profileService.Update(ctx, userID, req.Name, req.Introduce, req.Base64Image); err != nil {
		code := 500
		switch {
		case errors.Is(err, service.ErrProfileNotFound):
			code = 404
		case errors.Is(err, service.ErrInvalidImage):
			code = 400
		}
		c.JSON(http.StatusOK, gin.H{"code": code, "msg": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": 200, "msg": constants.SuccessUpdate})
}
