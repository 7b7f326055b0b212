package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
)

// User 用户模型
type User struct {
	ID        int64     `db:"id"`
	Email     string    `db:"email"`
	Password  string    `db:"password"`
	Token     string    `db:"token"`
	Status    int       `db:"status"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// UserRepository 用户仓库接口
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByToken(ctx context.Context, token string) (*User, error)
	Update(ctx context.Context, user *User) error
}

// userRepository 用户仓库实现
type userRepository struct {
	db *sqlx.DB
}

// NewUserRepository 创建用户仓库实例
func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

// Create 创建用户
func (r *userRepository) Create(ctx context.Context, user *User) error {
	query := `INSERT INTO users (email, password, token, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`
	result, err := r.db.ExecContext(ctx, query, user.Email, user.Password, user.Token, user.Status)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	user.ID = id
	return nil
}

// GetByID 根据ID获取用户
func (r *userRepository) GetByID(ctx context.Context, id int64) (*User, error) {
	user := &User{}
	query := `SELECT * FROM users WHERE id = ?`
	if err := r.db.GetContext(ctx, user, query, id); err != nil {
		return nil, err
	}
	return user, nil
}

// GetByEmail 根据邮箱获取用户
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	user := &User{}
	query := `SELECT * FROM users WHERE email = ?`
	if err := r.db.GetContext(ctx, user, query, email); err != nil {
		return nil, err
	}
	return user, nil
}

// GetByToken 根据Token获取用户
func (r *userRepository) GetByToken(ctx context.Context, token string) (*User, error) {
	user := &User{}
	query := `SELECT * FROM users WHERE token = ?`
	if err := r.db.GetContext(ctx, user, query, token); err != nil {
		return nil, err
	}
	return user, nil
}

// Update 更新用户信息
func (r *userRepository) Update(ctx context.Context, user *User) error {
	query := `UPDATE users SET email = ?, password = ?, token = ?, status = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, user.Email, user.Password, user.Token, user.Status, user.ID)
	return err
}
