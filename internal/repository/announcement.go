package repository

import (
	"context"
	"renrakuban/internal/model"

	"github.com/jmoiron/sqlx"
)

// AnnouncementRepository 公告仓库接口
type AnnouncementRepository interface {
	Create(ctx context.Context, a *model.Announcement) error
	GetByID(ctx context.Context, id int64) (*model.Announcement, error)
	GetDetailByID(ctx context.Context, id int64) (*model.AnnouncementWithAuthor, error)
	List(ctx context.Context, offset, limit int) ([]model.AnnouncementWithAuthor, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, a *model.Announcement) error
	Delete(ctx context.Context, id int64) (int64, error)
}

// announcementRepository 公告仓库实现
type announcementRepository struct {
	db *sqlx.DB
}

// NewAnnouncementRepository 创建公告仓库实例
func NewAnnouncementRepository(db *sqlx.DB) AnnouncementRepository {
	return &announcementRepository{db: db}
}

// Create 创建公告
func (r *announcementRepository) Create(ctx context.Context, a *model.Announcement) error {
	query := `INSERT INTO announcements (title, content, image_url, user_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`
	result, err := r.db.ExecContext(ctx, query, a.Title, a.Content, a.ImageURL, a.UserID)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	a.ID = id
	return nil
}

// GetByID 根据ID获取公告
func (r *announcementRepository) GetByID(ctx context.Context, id int64) (*model.Announcement, error) {
	var a model.Announcement
	query := `SELECT * FROM announcements WHERE id = ?`
	if err := r.db.GetContext(ctx, &a, query, id); err != nil {
		return nil, err
	}
	return &a, nil
}

// GetDetailByID 根据ID获取公告详情，读时关联作者资料
func (r *announcementRepository) GetDetailByID(ctx context.Context, id int64) (*model.AnnouncementWithAuthor, error) {
	var a model.AnnouncementWithAuthor
	query := `
		SELECT a.*, p.name AS author_name, p.avatar_url AS author_avatar_url, p.introduce AS author_introduce
		FROM announcements a
		LEFT JOIN profiles p ON p.id = a.user_id
		WHERE a.id = ?
	`
	if err := r.db.GetContext(ctx, &a, query, id); err != nil {
		return nil, err
	}
	return &a, nil
}

// List 获取公告列表（分页，按更新时间倒序）
func (r *announcementRepository) List(ctx context.Context, offset, limit int) ([]model.AnnouncementWithAuthor, error) {
	var announcements []model.AnnouncementWithAuthor
	query := `
		SELECT a.*, p.name AS author_name, p.avatar_url AS author_avatar_url, p.introduce AS author_introduce
		FROM announcements a
		LEFT JOIN profiles p ON p.id = a.user_id
		ORDER BY a.updated_at DESC
		LIMIT ? OFFSET ?
	`
	if err := r.db.SelectContext(ctx, &announcements, query, limit, offset); err != nil {
		return nil, err
	}
	return announcements, nil
}

// Count 获取公告总数
func (r *announcementRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM announcements`
	if err := r.db.GetContext(ctx, &count, query); err != nil {
		return 0, err
	}
	return count, nil
}

// Update 更新公告的标题、正文和图片引用
// 单条UPDATE语句按ID整行覆盖，并发编辑时最终结果必为某一次提交的完整内容
func (r *announcementRepository) Update(ctx context.Context, a *model.Announcement) error {
	query := `UPDATE announcements SET title = ?, content = ?, image_url = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, a.Title, a.Content, a.ImageURL, a.ID)
	return err
}

// Delete 删除公告，返回受影响的行数
// 返回0行表示公告已不存在，调用方据此区分重复删除
func (r *announcementRepository) Delete(ctx context.Context, id int64) (int64, error) {
	query := `DELETE FROM announcements WHERE id = ?`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
