package service

import (
	"context"

	"renrakuban/internal/model"
	"renrakuban/internal/repository"
	"renrakuban/pkg/logger"
)

// EventService 日程服务
// 日历组件直接对日程做CRUD，这里只做薄封装
type EventService struct {
	eventRepo repository.EventRepository
	logger    *logger.Logger
}

// NewEventService 创建日程服务实例
func NewEventService(eventRepo repository.EventRepository, logger *logger.Logger) *EventService {
	return &EventService{
		eventRepo: eventRepo,
		logger:    logger,
	}
}

// List 获取全部日程
func (s *EventService) List(ctx context.Context) ([]model.Event, error) {
	events, err := s.eventRepo.List(ctx)
	if err != nil {
		s.logger.Error("获取日程列表失败", "error", err)
		return nil, err
	}
	return events, nil
}

// Create 创建日程
func (s *EventService) Create(ctx context.Context, event *model.Event) error {
	if err := s.eventRepo.Create(ctx, event); err != nil {
		s.logger.Error("创建日程失败", "error", err)
		return err
	}
	return nil
}

// Update 更新日程
func (s *EventService) Update(ctx context.Context, event *model.Event) error {
	affected, err := s.eventRepo.Update(ctx, event)
	if err != nil {
		s.logger.Error("更新日程失败", "id", event.ID, "error", err)
		return err
	}
	if affected == 0 {
		return ErrEventNotFound
	}
	return nil
}

// Delete 删除日程
func (s *EventService) Delete(ctx context.Context, id int64) error {
	affected, err := s.eventRepo.Delete(ctx, id)
	if err != nil {
		s.logger.Error("删除日程失败", "id", id, "error", err)
		return err
	}
	if affected == 0 {
		return ErrEventNotFound
	}
	return nil
}
