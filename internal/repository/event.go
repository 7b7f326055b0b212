package repository

import (
	"context"
	"renrakuban/internal/model"

	"github.com/jmoiron/sqlx"
)

// EventRepository 日程仓库接口
type EventRepository interface {
	List(ctx context.Context) ([]model.Event, error)
	Create(ctx context.Context, e *model.Event) error
	Update(ctx context.Context, e *model.Event) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

// eventRepository 日程仓库实现
type eventRepository struct {
	db *sqlx.DB
}

// NewEventRepository 创建日程仓库实例
func NewEventRepository(db *sqlx.DB) EventRepository {
	return &eventRepository{db: db}
}

// List 获取全部日程（按开始时间升序）
func (r *eventRepository) List(ctx context.Context) ([]model.Event, error) {
	var events []model.Event
	query := `SELECT * FROM events ORDER BY start_at ASC`
	if err := r.db.SelectContext(ctx, &events, query); err != nil {
		return nil, err
	}
	return events, nil
}

// Create 创建日程
func (r *eventRepository) Create(ctx context.Context, e *model.Event) error {
	query := `INSERT INTO events (title, start_at, end_at, all_day) VALUES (?, ?, ?, ?)`
	result, err := r.db.ExecContext(ctx, query, e.Title, e.StartAt, e.EndAt, e.AllDay)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	e.ID = id
	return nil
}

// Update 更新日程，返回受影响的行数
func (r *eventRepository) Update(ctx context.Context, e *model.Event) (int64, error) {
	query := `UPDATE events SET title = ?, start_at = ?, end_at = ?, all_day = ? WHERE id = ?`
	result, err := r.db.ExecContext(ctx, query, e.Title, e.StartAt, e.EndAt, e.AllDay, e.ID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// Delete 删除日程，返回受影响的行数
func (r *eventRepository) Delete(ctx context.Context, id int64) (int64, error) {
	query := `DELETE FROM events WHERE id = ?`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
