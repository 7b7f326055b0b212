package api

import (
	"renrakuban/config"
	"renrakuban/internal/api/apis"
	"renrakuban/internal/api/handler"
	"renrakuban/internal/middleware"
	"renrakuban/internal/repository"
	"renrakuban/internal/service"
	"renrakuban/pkg/async"
	"renrakuban/pkg/email"
	"renrakuban/pkg/logger"
	"renrakuban/pkg/storage"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
)

// SetupRouter 设置API路由
// 返回的工作器由调用方在服务器关闭后Stop，保证排队的清理任务执行完毕
func SetupRouter(cfg *config.Config, logger *logger.Logger, db *sqlx.DB, redisClient *redis.Client, storageClient *storage.Client) (*gin.Engine, *async.Worker) {
	// 创建Gin引擎
	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// 使用中间件
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.CORS())

	// 创建异步工作器，承载尽力而为的清理与邮件发送
	worker := async.NewWorker(100, logger)
	worker.Start(5) // 启动5个工作协程

	// 初始化存储库
	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	announcementRepo := repository.NewAnnouncementRepository(db)
	eventRepo := repository.NewEventRepository(db)

	// 初始化邮件服务
	emailService := email.NewService(email.Config{
		Host:     cfg.Email.Host,
		Port:     cfg.Email.Port,
		Username: cfg.Email.Username,
		Password: cfg.Email.Password,
		From:     cfg.Email.From,
		FromName: cfg.Email.FromName,
	}, logger)

	// 初始化服务
	userService := service.NewUserService(userRepo, profileRepo, redisClient, worker, emailService, logger, cfg.AppURL)
	announcementService := service.NewAnnouncementService(announcementRepo, storageClient, redisClient, worker, logger)
	profileService := service.NewProfileService(profileRepo, storageClient, logger)
	eventService := service.NewEventService(eventRepo, logger)

	// 初始化处理器
	userHandler := handler.NewUserHandler(userService, profileService, redisClient, logger)
	announcementHandler := handler.NewAnnouncementHandler(announcementService, logger)
	profileHandler := handler.NewProfileHandler(profileService, logger)
	eventHandler := handler.NewEventHandler(eventService, logger)

	// 健康检查
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API版本v1
	v1 := router.Group("/api/v1")

	// 创建需要认证的API路由组
	authRouter := v1.Group("")
	// 为需要认证的API路由添加UserAuth中间件
	authRouter.Use(middleware.UserAuth(userService))

	// 注册不需要认证的路由（如登录、注册、公告浏览等）
	apis.RegisterPublicRoutes(v1, userHandler, announcementHandler)

	// 注册需要认证的API路由
	apis.RegisterAuthRoutes(authRouter, userHandler, announcementHandler, profileHandler, eventHandler)

	return router, worker
}
