package repository

import (
	"context"
	"renrakuban/internal/model"

	"github.com/jmoiron/sqlx"
)

// ProfileRepository 个人资料仓库接口
type ProfileRepository interface {
	Create(ctx context.Context, p *model.Profile) error
	GetByID(ctx context.Context, id int64) (*model.Profile, error)
	Update(ctx context.Context, p *model.Profile) error
}

// profileRepository 个人资料仓库实现
type profileRepository struct {
	db *sqlx.DB
}

// NewProfileRepository 创建个人资料仓库实例
func NewProfileRepository(db *sqlx.DB) ProfileRepository {
	return &profileRepository{db: db}
}

// Create 创建个人资料，ID与用户ID一致
func (r *profileRepository) Create(ctx context.Context, p *model.Profile) error {
	query := `INSERT INTO profiles (id, name, introduce, avatar_url) VALUES (?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, p.ID, p.Name, p.Introduce, p.AvatarURL)
	return err
}

// GetByID 根据用户ID获取个人资料
func (r *profileRepository) GetByID(ctx context.Context, id int64) (*model.Profile, error) {
	var p model.Profile
	query := `SELECT * FROM profiles WHERE id = ?`
	if err := r.db.GetContext(ctx, &p, query, id); err != nil {
		return nil, err
	}
	return &p, nil
}

// Update 更新个人资料的名称、简介和头像引用
func (r *profileRepository) Update(ctx context.Context, p *model.Profile) error {
	query := `UPDATE profiles SET name = ?, introduce = ?, avatar_url = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, p.Name, p.Introduce, p.AvatarURL, p.ID)
	return err
}
