package handler

import (
	"errors"
	"net/http"
	"strconv"

	"renrakuban/internal/constants"
	"renrakuban/internal/model"
	"renrakuban/internal/service"
	"renrakuban/internal/types"
	"renrakuban/pkg/logger"

	"github.com/gin-gonic/gin"
)

// EventHandler 日程处理器
type EventHandler struct {
	eventService *service.EventService
	logger       *logger.Logger
}

// NewEventHandler 创建日程处理器实例
func NewEventHandler(eventService *service.EventService, logger *logger.Logger) *EventHandler {
	return &EventHandler{
		eventService: eventService,
		logger:       logger,
	}
}

// List 获取日程列表
func (h *EventHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	events, err := h.eventService.List(ctx)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"code": 500, "msg": constants.ErrInternalServer})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": 200, "msg": constants.SuccessGet, "data": events})
}

// Create 创建日程
func (h *EventHandler) Create(c *gin.Context) {
	var req types.EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{"code": 400, "msg": constants.ErrInvalidParams})
		return
	}

	event := &model.Event{
		Title:   req.Title,
		StartAt: req.Start,
		EndAt:   req.End,
		AllDay:  req.AllDay,
	}

	ctx := c.Request.Context()
	if err := h.eventService.Create(ctx, event); err != nil {
		c.JSON(http.StatusOK, gin.H{"code": 500, "msg": constants.ErrInternalServer})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": 200, "msg": constants.SuccessCreate, "data": event})
}

// Update 更新日程
func (h *EventHandler) Update(c *gin.Context) {
	idStr := c.Param("id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"code": 400, "msg": "无效的日程ID"})
		return
	}

	var req types.EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{"code": 400, "msg": constants.ErrInvalidParams})
		return
	}

	event := &model.Event{
		ID:      id,
		Title:   req.Title,
		StartAt: req.Start,
		EndAt:   req.End,
		AllDay:  req.AllDay,
	}

	ctx := c.Request.Context()
	if err := h.eventService.Update(ctx, event); err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			c.JSON(http.StatusOK, gin.H{"code": 404, "msg": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"code": 500, "msg": constants.ErrInternalServer})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": 200, "msg": constants.SuccessUpdate})
}

// Delete 删除日程
func (h *EventHandler) Delete(c *gin.Context) {
	idStr := c.Param("id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"code": 400, "msg": "无效的日程ID"})
		return
	}

	ctx := c.Request.Context()
	if err := h.eventService.Delete(ctx, id); err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			c.JSON(http.StatusOK, gin.H{"code": 404, "msg": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"code": 500, "msg": constants.ErrInternalServer})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": 200, "msg": constants.SuccessDelete})
}
