package handler

import (
	"errors"
	"net/http"
	"strconv"

	"renrakuban/internal/constants"
	"renrakuban/internal/service"
	"renrakuban/internal/types"
	"renrakuban/pkg/logger"

	"github.com/gin-gonic/gin"
)

// AnnouncementHandler 公告处理器
type AnnouncementHandler struct {
	announcementService *service.AnnouncementService
	logger              *logger.Logger
}

// NewAnnouncementHandler 创建公告处理器实例
func NewAnnouncementHandler(announcementService *service.AnnouncementService, logger *logger.Logger) *AnnouncementHandler {
	return &AnnouncementHandler{
		announcementService: announcementService,
		logger:              logger,
	}
}

// List 获取公告列表
// @Summary 获取公告列表
// @Description 获取公告列表，支持分页，附带作者资料
// @Tags 公告
// @Accept json
// @Produce json
// @Param page query int false "页码，默认1"
// @Param limit query int false "每页条数，默认10"
// @Success 200 {object} map[string]interface{} "成功"
// @Router /api/v1/announcements [get]
func (h *AnnouncementHandler) List(c *gin.Context) {
	pageStr := c.DefaultQuery("page", "1")
	limitStr := c.DefaultQuery("limit", "10")

	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		page = 1
	}

	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit < 1 || limit > 50 {
		limit = 10
	}

	ctx := c.Request.Context()
	paginatedAnnouncements, err := h.announcementService.List(ctx, page, limit)
	if err != nil {
		h.logger.Error("获取公告列表失败", "error", err)
		c.JSON(http.StatusOK, gin.H{"code": 500, "msg": "获取公告列表失败"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": 200, "msg": "success", "data": paginatedAnnouncements})
}

// GetByID 获取公告详情
// @Summary 获取公告详情
// @Description 根据ID获取公告详情，附带作者资料
// @Tags 公告
// @Accept json
// @Produce json
// @Param id path int true "公告ID"
// @Success 200 {object} map[string]interface{} "成功"
// @Router /api/v1/announcements/{id} [get]
func (h *AnnouncementHandler) GetByID(c *gin.Context) {
	idStr := c.Param("id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"code": 400, "msg": "无效的公告ID"})
		return
	}

	ctx := c.Request.Context()
	announcement, err := h.announcementService.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrAnnouncementNotFound) {
			c.JSON(http.StatusOK, gin.H{"code": 404, "msg": err.Error()})
			return
		}
		h.logger.Error("获取公告详情失败", "id", id, "error", err)
		c.JSON(http.StatusOK, gin.H{"code": 500, "msg": "公告不存在或获取失败"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": 200, "msg": "success", "data": announcement})
}

// Create 发布公告
func (h *AnnouncementHandler) Create(c *gin.Context) {
	var req types.AnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{"code": 400, "msg": constants.ErrInvalidParams})
		return
	}

	userID := c.GetInt64("user_id")

	ctx := c.Request.Context()
	if err := h.announcementService.Create(ctx, userID, req.Title, req.Content, req.Base64Image); err != nil {
		c.JSON(http.StatusOK, gin.H{"code": announcementErrorCode(err), "msg": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": 200, "msg": constants.SuccessCreate})
}

// Update 编辑公告
func (h *AnnouncementHandler) Update(c *gin.Context) {
	idStr := c.Param("id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"code": 400, "msg": "无效的公告ID"})
		return
	}

	var req types.AnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{"code": 400, "msg": constants.ErrInvalidParams})
		return
	}

	userID := c.GetInt64("user_id")

	ctx := c.Request.Context()
	if err := h.announcementService.Edit(ctx, userID, id, req.Title, req.Content, req.Base64Image); err != nil {
		c.JSON(http.StatusOK, gin.H{"code": announcementErrorCode(err), "msg": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": 200, "msg": constants.SuccessUpdate})
}

// Delete 删除公告
func (h *AnnouncementHandler) Delete(c *gin.Context) {
	idStr := c.Param("id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"code": 400, "msg": "无效的公告ID"})
		return
	}

	userID := c.GetInt64("user_id")

	ctx := c.Request.Context()
	if err := h.announcementService.Delete(ctx, userID, id); err != nil {
		c.JSON(http.StatusOK, gin.H{"code": announcementErrorCode(err), "msg": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": 200, "msg": constants.SuccessDelete})
}

// announcementErrorCode 将服务层错误映射为响应码
func announcementErrorCode(err error) int {
	switch {
	case errors.Is(err, service.ErrAnnouncementNotFound):
		return 404
	case errors.Is(err, service.ErrNoPermission):
		return 403
	case errors.Is(err, service.ErrInvalidImage):
		return 400
	default:
		return 500
	}
}
