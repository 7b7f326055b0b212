package handler

import (
	"context"
	"errors"
	"net/http"
	"regexp"
	"time"

	"renrakuban/internal/constants"
	"renrakuban/internal/repository"
	"renrakuban/internal/service"
	"renrakuban/internal/types"
	"renrakuban/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"k8s.io/apimachinery/pkg/util/rand"
)

var (
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	// 密码必须同时包含英文与数字，长度6位以上
	passwordPattern = regexp.MustCompile(`^[A-Za-z0-9]{6,}$`)
	letterPattern   = regexp.MustCompile(`[A-Za-z]`)
	digitPattern    = regexp.MustCompile(`[0-9]`)
)

// UserHandler 用户处理器
type UserHandler struct {
	userService    service.UserService
	profileService *service.ProfileService
	redisClient    *redis.Client
	logger         *logger.Logger
}

// NewUserHandler 创建用户处理器实例
func NewUserHandler(userService service.UserService, profileService *service.ProfileService, redisClient *redis.Client, logger *logger.Logger) *UserHandler {
	return &UserHandler{
		userService:    userService,
		profileService: profileService,
		redisClient:    redisClient,
		logger:         logger,
	}
}

// validPassword 校验密码格式
func validPassword(password string) bool {
	return passwordPattern.MatchString(password) &&
		letterPattern.MatchString(password) &&
		digitPattern.MatchString(password)
}

// Register 用户注册
func (h *UserHandler) Register(c *gin.Context) {
	var req types.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{"code": 400, "msg": constants.ErrInvalidParams})
		return
	}

	// 验证邮箱格式
	if !emailPattern.MatchString(req.Email) {
		c.JSON(http.StatusOK, gin.H{"code": 400, "msg": "邮箱格式不正确"})
		return
	}

	// 验证密码格式
	if !validPassword(req.Password) {
		c.JSON(http.StatusOK, gin.H{"code": 400, "msg": "密码必须为英文加数字长度在6位以上的密码"})
		return
	}

	// 验证邮箱验证码
	codeKey := "email_verify:" + req.Email
	code, err := h.redisClient.Get(context.Background(), codeKey).Result()
	if err == redis.Nil || code != req.Code {
		c.JSON(http.StatusOK, gin.H{"code": 400, "msg": constants.ErrCodeIncorrect})
		return
	}

	// 使用分布式锁控制并发
	lockKey := "user_register:" + req.Email
	lock := h.redisClient.SetNX(context.Background(), lockKey, "1", 10*time.Second)
	if !lock.Val() {
		c.JSON(http.StatusOK, gin.H{"code": 429, "msg": constants.ErrOperationTooFrequent})
		return
	}
	defer h.redisClient.Del(context.Background(), lockKey)

	// 密码加密
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"code": 500, "msg": constants.ErrInternalServer})
		return
	}

	// 创建用户
	user := &repository.User{
		Email:    req.Email,
		Password: string(hashedPassword),
		Status:   1,               // 正常状态
		Token:    rand.String(32), // 生成随机Token
	}

	if err := h.userService.Create(context.Background(), user); err != nil {
		if errors.Is(err, service.ErrEmailExists) {
			c.JSON(http.StatusOK, gin.H{"code": 409, "msg": err.Error()})
			return
		}
		h.logger.Error("创建用户失败", "email", req.Email, "error", err)
		c.JSON(http.StatusOK, gin.H{"code": 500, "msg": constants.ErrInternalServer})
		return
	}

	// 删除验证码
	h.redisClient.Del(context.Background(), codeKey)

	c.JSON(http.StatusOK, gin.H{"code": 200, "msg": constants.SuccessRegister})
}

// SendCode 发送注册验证码
func (h *UserHandler) SendCode(c *gin.Context) {
	var req types.SendCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{"code": 400, "msg": constants.ErrInvalidParams})
		return
	}

	// 验证邮箱格式
	if !emailPattern.MatchString(req.Email) {
		c.JSON(http.StatusOK, gin.H{"code": 400, "msg": "邮箱格式不正确"})
		return
	}

	// 使用分布式锁控制发送频率
	lockKey := "send_code:" + req.Email
	lock := h.redisClient.SetNX(context.Background(), lockKey, "1", time.Minute)
	if !lock.Val() {
		c.JSON(http.StatusOK, gin.H{"code": 429, "msg": "发送过于频繁，请稍后重试"})
		return
	}

	if err := h.userService.SendVerifyCode(context.Background(), req.Email); err != nil {
		c.JSON(http.StatusOK, gin.H{"code": 500, "msg": "发送验证码失败"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": 200, "msg": "验证码已发送"})
}

// Login 用户登录
func (h *UserHandler) Login(c *gin.Context) {
	var req types.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{"code": 400, "msg": constants.ErrInvalidParams})
		return
	}

	user, err := h.userService.Login(context.Background(), req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"code": 401, "msg": err.Error()})
		return
	}

	// 只返回token
	c.JSON(http.StatusOK, gin.H{
		"code": 200,
		"msg":  constants.SuccessLogin,
		"data": gin.H{
			"token": user.Token,
		},
	})
}

// Logout 注销登录
func (h *UserHandler) Logout(c *gin.Context) {
	user := c.MustGet("user").(*repository.User)

	if err := h.userService.Logout(context.Background(), user); err != nil {
		h.logger.Error("注销失败", "user_id", user.ID, "error", err)
		c.JSON(http.StatusOK, gin.H{"code": 500, "msg": constants.ErrInternalServer})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": 200, "msg": "已注销登录"})
}

// GetUserInfo 获取用户信息
func (h *UserHandler) GetUserInfo(c *gin.Context) {
	user := c.MustGet("user").(*repository.User)

	userInfo := gin.H{
		"ID":           user.ID,
		"Email":        user.Email,
		"RegisterTime": user.CreatedAt.Format("2006-01-02 15:04:05"),
	}

	// 附带个人资料
	profile, err := h.profileService.Get(c.Request.Context(), user.ID)
	if err == nil {
		userInfo["Name"] = profile.Name
		userInfo["Introduce"] = profile.Introduce
		userInfo["AvatarURL"] = profile.AvatarURL
	}

	c.JSON(http.StatusOK, gin.H{"code": 200, "msg": constants.SuccessGet, "data": userInfo})
}

// UpdateEmail 发起邮箱变更
// 成功后当前会话立即失效，需在新邮箱完成验证后重新登录
func (h *UserHandler) UpdateEmail(c *gin.Context) {
	var req types.UpdateEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{"code": 400, "msg": constants.ErrInvalidParams})
		return
	}

	// 验证邮箱格式
	if !emailPattern.MatchString(req.Email) {
		c.JSON(http.StatusOK, gin.H{"code": 400, "msg": "邮箱格式不正确"})
		return
	}

	user := c.MustGet("user").(*repository.User)

	if err := h.userService.RequestEmailChange(context.Background(), user, req.Email); err != nil {
		if errors.Is(err, service.ErrEmailExists) {
			c.JSON(http.StatusOK, gin.H{"code": 409, "msg": err.Error()})
			return
		}
		h.logger.Error("发起邮箱变更失败", "user_id", user.ID, "error", err)
		c.JSON(http.StatusOK, gin.H{"code": 500, "msg": constants.ErrInternalServer})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": 200, "msg": "验证邮件已发送，请在新邮箱中完成验证"})
}

// VerifyEmail 完成邮箱变更（验证邮件中的链接）
func (h *UserHandler) VerifyEmail(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusOK, gin.H{"code": 400, "msg": constants.ErrVerifyLinkInvalid})
		return
	}

	if err := h.userService.VerifyEmailChange(context.Background(), token); err != nil {
		if errors.Is(err, service.ErrVerifyLinkInvalid) || errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusOK, gin.H{"code": 400, "msg": err.Error()})
			return
		}
		if errors.Is(err, service.ErrEmailExists) {
			c.JSON(http.StatusOK, gin.H{"code": 409, "msg": err.Error()})
			return
		}
		h.logger.Error("邮箱变更验证失败", "error", err)
		c.JSON(http.StatusOK, gin.H{"code": 500, "msg": constants.ErrInternalServer})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": 200, "msg": "邮箱变更成功，请使用新邮箱重新登录"})
}

// UpdatePassword 设置新密码
// 两次输入的一致性由参数绑定校验（eqfield）
func (h *UserHandler) UpdatePassword(c *gin.Context) {
	var req types.UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{"code": 400, "msg": constants.ErrPasswordMismatch})
		return
	}

	// 验证密码格式
	if !validPassword(req.Password) {
		c.JSON(http.StatusOK, gin.H{"code": 400, "msg": "密码必须为英文加数字长度在6位以上的密码"})
		return
	}

	user := c.MustGet("user").(*repository.User)

	if err := h.userService.UpdatePassword(context.Background(), user, req.Password); err != nil {
		h.logger.Error("更新密码失败", "user_id", user.ID, "error", err)
		c.JSON(http.StatusOK, gin.H{"code": 500, "msg": constants.ErrInternalServer})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": 200, "msg": "密码设置成功"})
}
