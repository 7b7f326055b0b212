package types

import "time"

// RegisterRequest 注册请求
type RegisterRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Code     string `json:"code" binding:"required"`
}

// SendCodeRequest 发送注册验证码请求
type SendCodeRequest struct {
	Email string `json:"email" binding:"required"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AnnouncementRequest 公告创建/编辑请求
// Base64Image为空表示本次未提交附件
type AnnouncementRequest struct {
	Title       string `json:"title" binding:"required"`
	Content     string `json:"content" binding:"required"`
	Base64Image string `json:"base64_image"`
}

// ProfileRequest 个人资料更新请求
type ProfileRequest struct {
	Name        string  `json:"name" binding:"required"`
	Introduce   *string `json:"introduce"`
	Base64Image string  `json:"base64_image"`
}

// UpdateEmailRequest 邮箱变更请求
type UpdateEmailRequest struct {
	Email string `json:"email" binding:"required"`
}

// UpdatePasswordRequest 设置密码请求
// 两次输入的一致性在绑定层校验，服务层不再重复检查
type UpdatePasswordRequest struct {
	Password        string `json:"password" binding:"required"`
	PasswordConfirm string `json:"password_confirm" binding:"required,eqfield=Password"`
}

// EventRequest 日程创建/更新请求
type EventRequest struct {
	Title  string     `json:"title" binding:"required"`
	Start  time.Time  `json:"start" binding:"required"`
	End    *time.Time `json:"end"`
	AllDay bool       `json:"allDay"`
}
