package constants

// 通用错误消息
const (
	// 认证相关错误
	ErrUnauthorized    = "未授权，请先登录"
	ErrInvalidToken    = "无效的Token"
	ErrNoPermission    = "无权操作该资源"
	ErrAccountDisabled = "账号已被禁用"

	// 用户相关错误
	ErrUserNotFound      = "用户不存在"
	ErrPasswordIncorrect = "密码错误"
	ErrEmailExists       = "该邮箱已被注册"
	ErrCodeIncorrect     = "验证码错误或已过期"
	ErrVerifyLinkInvalid = "验证链接无效或已过期"
	ErrPasswordMismatch  = "两次输入的密码不一致"

	// 公告相关错误
	ErrAnnouncementNotFound = "公告不存在"
	ErrProfileNotFound      = "个人资料不存在"
	ErrEventNotFound        = "日程不存在"

	// 附件相关错误
	ErrInvalidImage = "无效的图片数据"

	// 参数相关错误
	ErrInvalidParams = "参数错误"

	// 系统错误
	ErrInternalServer       = "服务器内部错误"
	ErrOperationTooFrequent = "请求过于频繁，请稍后重试"
)

// 成功消息
const (
	SuccessLogin    = "登录成功"
	SuccessRegister = "注册成功"
	SuccessCreate   = "创建成功"
	SuccessUpdate   = "更新成功"
	SuccessDelete   = "删除成功"
	SuccessGet      = "获取成功"
)
