package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"renrakuban/internal/model"
	"renrakuban/internal/repository"
	"renrakuban/pkg/async"
	"renrakuban/pkg/logger"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"k8s.io/apimachinery/pkg/util/rand"
)

// EmailSender 邮件发送接口，由pkg/email的服务实现
type EmailSender interface {
	SendVerificationCode(to, code string, expireMinutes int) error
	SendEmailChangeLink(to, verifyURL string) error
	SendWelcomeEmail(to, userName string) error
}

// UserService 用户服务接口
type UserService interface {
	Create(ctx context.Context, user *repository.User) error
	GetByID(ctx context.Context, id int64) (*repository.User, error)
	GetByEmail(ctx context.Context, email string) (*repository.User, error)
	GetByToken(ctx context.Context, token string) (*repository.User, error)
	SendVerifyCode(ctx context.Context, email string) error
	Login(ctx context.Context, email, password string) (*repository.User, error)
	Logout(ctx context.Context, user *repository.User) error
	RequestEmailChange(ctx context.Context, user *repository.User, newEmail string) error
	VerifyEmailChange(ctx context.Context, token string) error
	UpdatePassword(ctx context.Context, user *repository.User, password string) error
}

// emailChange 待验证的邮箱变更请求，序列化后暂存于Redis
type emailChange struct {
	UserID   int64  `json:"user_id"`
	NewEmail string `json:"new_email"`
}

// userService 用户服务实现
type userService struct {
	userRepo    repository.UserRepository
	profileRepo repository.ProfileRepository
	redisClient *redis.Client
	worker      *async.Worker
	emailSvc    EmailSender
	logger      *logger.Logger
	appURL      string
}

// NewUserService 创建用户服务实例
func NewUserService(
	userRepo repository.UserRepository,
	profileRepo repository.ProfileRepository,
	redisClient *redis.Client,
	worker *async.Worker,
	emailSvc EmailSender,
	logger *logger.Logger,
	appURL string,
) UserService {
	return &userService{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		redisClient: redisClient,
		worker:      worker,
		emailSvc:    emailSvc,
		logger:      logger,
		appURL:      appURL,
	}
}

// Create 创建用户，同时隐式创建同ID的个人资料
func (s *userService) Create(ctx context.Context, user *repository.User) error {
	// 检查邮箱是否已存在
	existUser, err := s.userRepo.GetByEmail(ctx, user.Email)
	if err == nil && existUser != nil {
		return ErrEmailExists
	}

	// 创建用户
	if err := s.userRepo.Create(ctx, user); err != nil {
		return err
	}

	// 隐式创建个人资料，默认名称取邮箱@前的部分
	profile := &model.Profile{
		ID:   user.ID,
		Name: strings.SplitN(user.Email, "@", 2)[0],
	}
	if err := s.profileRepo.Create(ctx, profile); err != nil {
		s.logger.Error("创建个人资料失败", "user_id", user.ID, "error", err)
		return err
	}

	// 异步发送欢迎邮件
	to, name := user.Email, profile.Name
	s.worker.AddNamedTask("welcome_email", func(ctx context.Context) error {
		return s.emailSvc.SendWelcomeEmail(to, name)
	})

	return nil
}

// GetByID 根据ID获取用户
func (s *userService) GetByID(ctx context.Context, id int64) (*repository.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// GetByEmail 根据邮箱获取用户
func (s *userService) GetByEmail(ctx context.Context, email string) (*repository.User, error) {
	return s.userRepo.GetByEmail(ctx, email)
}

// GetByToken 根据Token获取用户
func (s *userService) GetByToken(ctx context.Context, token string) (*repository.User, error) {
	return s.userRepo.GetByToken(ctx, token)
}

// SendVerifyCode 发送注册验证码
func (s *userService) SendVerifyCode(ctx context.Context, address string) error {
	// 生成6位随机验证码
	code := fmt.Sprintf("%06d", rand.Intn(1000000))

	if err := s.emailSvc.SendVerificationCode(address, code, 5); err != nil {
		s.logger.Error("发送验证码邮件失败", "email", address, "error", err)
		return err
	}

	// 将验证码保存到Redis，设置5分钟过期
	key := "email_verify:" + address
	if err := s.redisClient.Set(ctx, key, code, 5*time.Minute).Err(); err != nil {
		s.logger.Error("保存验证码失败", "email", address, "error", err)
		return err
	}

	return nil
}

// Login 用户登录
func (s *userService) Login(ctx context.Context, address, password string) (*repository.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, address)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	// 验证密码
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrPasswordIncorrect
	}

	// 只有在用户没有token时才生成新的token
	if user.Token == "" {
		user.Token = rand.String(32)
		if err := s.userRepo.Update(ctx, user); err != nil {
			return nil, err
		}
	}

	return user, nil
}

// Logout 注销登录，轮换Token使现有会话失效
func (s *userService) Logout(ctx context.Context, user *repository.User) error {
	user.Token = rand.String(32)
	return s.userRepo.Update(ctx, user)
}

// RequestEmailChange 发起邮箱变更
// 向新地址发送验证链接，随后立即轮换Token：新地址验证通过前不信任，
// 旧地址下的会话也不允许继续存活
func (s *userService) RequestEmailChange(ctx context.Context, user *repository.User, newEmail string) error {
	// 检查新邮箱是否已被占用
	existUser, err := s.userRepo.GetByEmail(ctx, newEmail)
	if err == nil && existUser != nil {
		return ErrEmailExists
	}

	// 生成验证令牌并暂存变更请求，24小时内有效
	token := rand.String(32)
	change, err := json.Marshal(emailChange{UserID: user.ID, NewEmail: newEmail})
	if err != nil {
		return err
	}
	key := "email_change:" + token
	if err := s.redisClient.Set(ctx, key, change, 24*time.Hour).Err(); err != nil {
		s.logger.Error("保存邮箱变更请求失败", "user_id", user.ID, "error", err)
		return err
	}

	// 向新地址发送验证链接
	verifyURL := fmt.Sprintf("%s/api/v1/email/verify?token=%s", s.appURL, token)
	if err := s.emailSvc.SendEmailChangeLink(newEmail, verifyURL); err != nil {
		s.logger.Error("发送邮箱变更邮件失败", "user_id", user.ID, "error", err)
		return err
	}

	// 使当前会话失效，强制重新登录
	user.Token = rand.String(32)
	if err := s.userRepo.Update(ctx, user); err != nil {
		s.logger.Error("轮换Token失败", "user_id", user.ID, "error", err)
		return err
	}

	return nil
}

// VerifyEmailChange 完成邮箱变更
func (s *userService) VerifyEmailChange(ctx context.Context, token string) error {
	key := "email_change:" + token
	data, err := s.redisClient.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return ErrVerifyLinkInvalid
	}
	if err != nil {
		return err
	}

	var change emailChange
	if err := json.Unmarshal(data, &change); err != nil {
		return ErrVerifyLinkInvalid
	}

	// 令牌24小时有效，期间新地址可能已被其他账号注册，消费时需重查
	existUser, err := s.userRepo.GetByEmail(ctx, change.NewEmail)
	if err == nil && existUser != nil {
		s.redisClient.Del(ctx, key)
		return ErrEmailExists
	}

	user, err := s.userRepo.GetByID(ctx, change.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrUserNotFound
		}
		return err
	}

	user.Email = change.NewEmail
	if err := s.userRepo.Update(ctx, user); err != nil {
		s.logger.Error("更新邮箱失败", "user_id", user.ID, "error", err)
		return err
	}

	// 删除已消费的变更请求
	s.redisClient.Del(ctx, key)

	return nil
}

// UpdatePassword 设置新密码
// 密码与确认密码的一致性由调用方在参数绑定时校验
func (s *userService) UpdatePassword(ctx context.Context, user *repository.User, password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user.Password = string(hashedPassword)
	if err := s.userRepo.Update(ctx, user); err != nil {
		s.logger.Error("更新密码失败", "user_id", user.ID, "error", err)
		return err
	}

	return nil
}
