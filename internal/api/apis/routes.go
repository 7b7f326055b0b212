package apis

import (
	"renrakuban/internal/api/handler"

	"github.com/gin-gonic/gin"
)

// RegisterPublicRoutes 注册不需要认证的路由
func RegisterPublicRoutes(router *gin.RouterGroup, userHandler *handler.UserHandler, announcementHandler *handler.AnnouncementHandler) {
	// 用户相关路由
	users := router.Group("/users")
	{
		users.POST("/register", userHandler.Register)
		users.POST("/sendcode", userHandler.SendCode)
		users.POST("/login", userHandler.Login)
	}

	// 邮箱变更验证链接
	router.GET("/email/verify", userHandler.VerifyEmail)

	// 公告浏览
	router.GET("/announcements", announcementHandler.List)
	router.GET("/announcements/:id", announcementHandler.GetByID)
}

// RegisterAuthRoutes 注册需要认证的路由
func RegisterAuthRoutes(
	router *gin.RouterGroup,
	userHandler *handler.UserHandler,
	announcementHandler *handler.AnnouncementHandler,
	profileHandler *handler.ProfileHandler,
	eventHandler *handler.EventHandler,
) {
	// 用户相关路由
	users := router.Group("/users")
	{
		users.GET("/info", userHandler.GetUserInfo)
		users.POST("/logout", userHandler.Logout)
		users.PUT("/email", userHandler.UpdateEmail)
		users.PUT("/password", userHandler.UpdatePassword)
	}

	// 公告发布与维护
	router.POST("/announcements", announcementHandler.Create)
	router.PUT("/announcements/:id", announcementHandler.Update)
	router.DELETE("/announcements/:id", announcementHandler.Delete)

	// 个人资料
	router.GET("/profile", profileHandler.Get)
	router.PUT("/profile", profileHandler.Update)

	// 日历日程
	events := router.Group("/events")
	{
		events.GET("", eventHandler.List)
		events.POST("", eventHandler.Create)
		events.PUT("/:id", eventHandler.Update)
		events.DELETE("/:id", eventHandler.Delete)
	}
}
