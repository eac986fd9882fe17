package main

import (
	"fmt"
	"log"

	"go-favor-exchange/internal/api"
	"go-favor-exchange/internal/middleware"
	"go-favor-exchange/internal/repository"
	"go-favor-exchange/internal/service"
	"go-favor-exchange/pkg/config"
	"go-favor-exchange/pkg/db"
	"go-favor-exchange/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// 初始化配置
	if err := config.Init(); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 初始化日志
	if err := logger.InitLogger(config.GlobalConfig.Log.Level, config.GlobalConfig.Log.Production); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// 初始化数据库连接
	conn, err := db.InitDB()
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// repository层
	userRepo := repository.NewUserRepository(conn)
	favorRepo := repository.NewFavorRepository(conn)
	groupRepo := repository.NewGroupRepository(conn)
	memberRepo := repository.NewGroupMemberRepository(conn)
	notificationRepo := repository.NewNotificationRepository(conn)

	// service层
	authService := service.NewAuthService(userRepo)
	userService := service.NewUserService(userRepo)
	ledgerService := service.NewLedgerService(conn, userRepo, favorRepo, notificationRepo)
	favorService := service.NewFavorService(conn, ledgerService, favorRepo, userRepo, notificationRepo)
	groupService := service.NewGroupService(conn, groupRepo, memberRepo, userRepo, notificationRepo)
	notificationService := service.NewNotificationService(notificationRepo, userRepo)

	// handler层
	authHandler := api.NewAuthHandler(authService)
	userHandler := api.NewUserHandler(userService, ledgerService)
	favorHandler := api.NewFavorHandler(favorService, ledgerService)
	groupHandler := api.NewGroupHandler(groupService)
	notificationHandler := api.NewNotificationHandler(notificationService)

	if config.GlobalConfig.Server.Mode != "" {
		gin.SetMode(config.GlobalConfig.Server.Mode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.GinZapLogger())

	// Prometheus指标
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 公开路由
	r.POST("/api/auth/register", authHandler.Register)
	r.POST("/api/auth/login", authHandler.Login)

	// 受保护的路由
	protected := r.Group("/api")
	protected.Use(middleware.AuthMiddleware(userRepo))
	{
		protected.GET("/user/:id", userHandler.GetUser)
		protected.GET("/user/email/:email", userHandler.GetUserByEmail)
		protected.POST("/user", userHandler.CreateUser)
		protected.PATCH("/user/:id/credits", userHandler.UpdateCredits)

		protected.GET("/favors", favorHandler.ListFavors)
		protected.GET("/favors/user/:userId", favorHandler.ListUserFavors)
		protected.POST("/favors", favorHandler.CreateFavor)
		protected.PATCH("/favors/:id/accept", favorHandler.AcceptFavor)
		protected.PATCH("/favors/:id/complete", favorHandler.CompleteFavor)

		protected.GET("/groups", groupHandler.ListGroups)
		protected.GET("/groups/user/:userId", groupHandler.ListUserGroups)
		protected.POST("/groups", groupHandler.CreateGroup)
		protected.GET("/groups/:id/members", groupHandler.ListGroupMembers)
		protected.POST("/groups/:id/join", groupHandler.JoinGroup)
		protected.DELETE("/groups/:id/members/:userId", groupHandler.RemoveGroupMember)

		protected.GET("/notifications/user/:userId", notificationHandler.ListUserNotifications)
		protected.POST("/notifications", notificationHandler.CreateNotification)
		protected.PATCH("/notifications/:id", notificationHandler.UpdateNotificationStatus)
	}

	// 启动服务器
	addr := fmt.Sprintf(":%d", config.GlobalConfig.Server.Port)
	if err := r.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
