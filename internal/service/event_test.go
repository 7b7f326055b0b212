package service

import (
	"context"
	"testing"
	"time"

	"renrakuban/internal/model"
	"renrakuban/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// mockEventRepo 日程仓库的Mock实现
type mockEventRepo struct {
	mock.Mock
}

func (m *mockEventRepo) List(ctx context.Context) ([]model.Event, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Event), args.Error(1)
}

func (m *mockEventRepo) Create(ctx context.Context, e *model.Event) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *mockEventRepo) Update(ctx context.Context, e *model.Event) (int64, error) {
	args := m.Called(ctx, e)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockEventRepo) Delete(ctx context.Context, id int64) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func TestEventService_Create(t *testing.T) {
	repo := new(mockEventRepo)
	svc := NewEventService(repo, logger.NewLogger("error"))

	start := time.Date(2025, 4, 1, 10, 0, 0, 0, time.UTC)
	event := &model.Event{Title: "例会", StartAt: start, AllDay: false}
	repo.On("Create", mock.Anything, event).Return(nil)

	err := svc.Create(context.Background(), event)
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestEventService_UpdateNotFound(t *testing.T) {
	repo := new(mockEventRepo)
	svc := NewEventService(repo, logger.NewLogger("error"))

	event := &model.Event{ID: 42, Title: "例会"}
	repo.On("Update", mock.Anything, event).Return(int64(0), nil)

	err := svc.Update(context.Background(), event)
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestEventService_DeleteNotFound(t *testing.T) {
	repo := new(mockEventRepo)
	svc := NewEventService(repo, logger.NewLogger("error"))

	repo.On("Delete", mock.Anything, int64(42)).Return(int64(0), nil)

	err := svc.Delete(context.Background(), int64(42))
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestEventService_Delete(t *testing.T) {
	repo := new(mockEventRepo)
	svc := NewEventService(repo, logger.NewLogger("error"))

	repo.On("Delete", mock.Anything, int64(42)).Return(int64(1), nil)

	err := svc.Delete(context.Background(), int64(42))
	assert.NoError(t, err)
}
