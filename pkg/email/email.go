package email

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"html/template"
	"net/smtp"
	"time"

	"renrakuban/pkg/logger"
)

// Config 邮件配置
type Config struct {
	Host     string // SMTP服务器地址
	Port     int    // SMTP服务器端口
	Username string // 邮箱账号
	Password string // 邮箱密码
	From     string // 发件人
	FromName string // 发件人名称
}

// EmailType 邮件类型
type EmailType string

const (
	// TypeRegister 注册验证码邮件
	TypeRegister EmailType = "register"
	// TypeEmailChange 邮箱变更验证邮件
	TypeEmailChange EmailType = "email_change"
	// TypeWelcome 欢迎邮件
	TypeWelcome EmailType = "register_success"
)

// EmailData 邮件数据
type EmailData struct {
	To          string    // 收件人
	Subject     string    // 邮件主题
	VerifyCode  string    // 验证码
	VerifyURL   string    // 验证链接
	ExpireTime  time.Time // 过期时间
	ProductName string    // 产品名称
	UserName    string    // 用户名
}

// Service 邮件服务
type Service struct {
	config Config
	logger *logger.Logger
}

// NewService 创建邮件服务
func NewService(config Config, logger *logger.Logger) *Service {
	return &Service{
		config: config,
		logger: logger,
	}
}

// 邮件模板，按邮件类型索引
var templates = map[EmailType]*template.Template{
	TypeRegister: template.Must(template.New("register").Parse(`
<div style="max-width:600px;margin:0 auto;font-family:sans-serif">
  <h2>{{.ProductName}}</h2>
  <p>您好，感谢注册{{.ProductName}}。</p>
  <p>您的验证码为：<b style="font-size:24px">{{.VerifyCode}}</b></p>
  <p>验证码将于 {{.ExpireTime.Format "15:04"}} 过期，请尽快完成验证。</p>
</div>`)),
	TypeEmailChange: template.Must(template.New("email_change").Parse(`
<div style="max-width:600px;margin:0 auto;font-family:sans-serif">
  <h2>{{.ProductName}}</h2>
  <p>我们收到了将您的账号邮箱变更为本地址的请求。</p>
  <p>请点击下方链接完成验证：</p>
  <p><a href="{{.VerifyURL}}">{{.VerifyURL}}</a></p>
  <p>如果这不是您本人的操作，请忽略此邮件。</p>
</div>`)),
	TypeWelcome: template.Must(template.New("register_success").Parse(`
<div style="max-width:600px;margin:0 auto;font-family:sans-serif">
  <h2>{{.ProductName}}</h2>
  <p>{{.UserName}}，欢迎加入{{.ProductName}}！</p>
  <p>您现在可以发布公告、查看日历并完善个人资料了。</p>
</div>`)),
}

// SendEmail 发送邮件
func (s *Service) SendEmail(emailType EmailType, data EmailData) error {
	// 设置默认产品名称
	if data.ProductName == "" {
		data.ProductName = "Renraku公告板"
	}

	// 根据邮件类型设置主题
	if data.Subject == "" {
		switch emailType {
		case TypeRegister:
			data.Subject = fmt.Sprintf("%s - 注册验证码", data.ProductName)
		case TypeEmailChange:
			data.Subject = fmt.Sprintf("%s - 邮箱变更验证", data.ProductName)
		case TypeWelcome:
			data.Subject = fmt.Sprintf("欢迎加入%s", data.ProductName)
		}
	}

	// 渲染邮件内容
	content, err := s.renderTemplate(emailType, data)
	if err != nil {
		return fmt.Errorf("渲染邮件模板失败: %w", err)
	}

	// 发送邮件
	return s.send(data.To, data.Subject, content)
}

// SendVerificationCode 发送注册验证码邮件
func (s *Service) SendVerificationCode(to, code string, expireMinutes int) error {
	return s.SendEmail(TypeRegister, EmailData{
		To:         to,
		VerifyCode: code,
		ExpireTime: time.Now().Add(time.Duration(expireMinutes) * time.Minute),
	})
}

// SendEmailChangeLink 发送邮箱变更验证链接邮件
func (s *Service) SendEmailChangeLink(to, verifyURL string) error {
	return s.SendEmail(TypeEmailChange, EmailData{
		To:        to,
		VerifyURL: verifyURL,
	})
}

// SendWelcomeEmail 发送欢迎邮件
func (s *Service) SendWelcomeEmail(to, userName string) error {
	return s.SendEmail(TypeWelcome, EmailData{
		To:       to,
		UserName: userName,
	})
}

// renderTemplate 渲染邮件模板
func (s *Service) renderTemplate(emailType EmailType, data EmailData) (string, error) {
	tmpl, ok := templates[emailType]
	if !ok {
		return "", fmt.Errorf("未知的邮件类型: %s", emailType)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// send 通过SMTP发送邮件
func (s *Service) send(to, subject, body string) error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	auth := smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.Host)

	// 构建邮件内容
	msg := []byte(fmt.Sprintf(
		"From: %s <%s>\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n%s",
		s.config.FromName, s.config.From, to, subject, body))

	// 465端口使用TLS直连，其余端口走STARTTLS
	if s.config.Port == 465 {
		return s.sendWithTLS(addr, auth, to, msg)
	}

	if err := smtp.SendMail(addr, auth, s.config.From, []string{to}, msg); err != nil {
		s.logger.Error("发送邮件失败", "to", to, "error", err)
		return err
	}

	s.logger.Info("邮件发送成功", "to", to, "subject", subject)
	return nil
}

// sendWithTLS 通过TLS连接发送邮件
func (s *Service) sendWithTLS(addr string, auth smtp.Auth, to string, msg []byte) error {
	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: s.config.Host})
	if err != nil {
		return err
	}

	client, err := smtp.NewClient(conn, s.config.Host)
	if err != nil {
		conn.Close()
		return err
	}
	defer client.Close()

	if err := client.Auth(auth); err != nil {
		return err
	}
	if err := client.Mail(s.config.From); err != nil {
		return err
	}
	if err := client.Rcpt(to); err != nil {
		return err
	}

	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}

	return client.Quit()
}
