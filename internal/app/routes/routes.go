package routes

import (
	"time"

	_ "aicp-http-service/docs"
	"aicp-http-service/internal/app/controllers"
	"aicp-http-service/internal/app/middleware"
	"aicp-http-service/internal/domain/services"
	"aicp-http-service/internal/domain/services/container"
	"aicp-http-service/internal/error/code"
	"aicp-http-service/internal/error/response"
	"aicp-http-service/internal/infrastructure/config"
	"aicp-http-service/internal/infrastructure/metrics"
	Logger "aicp-http-service/pkg/logger"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// SetupRouter 初始化并返回配置好的路由，redisClient 可以为空
func SetupRouter(db *gorm.DB, cfg *config.Config, redisClient *redis.Client) *gin.Engine {
	// 初始化 Gin
	r := gin.New()
	r.Use(ginzap.Ginzap(Logger.L(), time.RFC3339, true))
	r.Use(ginzap.RecoveryWithZap(Logger.L(), true))

	// 添加 CORS 中间件
	r.Use(cors.New(corsConfig(cfg)))
	r.Use(metrics.Middleware())

	// 创建服务容器
	serviceContainer := container.NewServiceContainer(db, cfg, redisClient)
	r.Use(middleware.Identify(serviceContainer.GetService("jwt").(services.InterfaceJWTService)))

	// 添加 Swagger 文档和监控路由
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/", controllers.HandleHealthFunc(serviceContainer, "index"))

	// 注册路由
	registerRoutes(r, serviceContainer)

	r.NoRoute(func(c *gin.Context) {
		response.Fail(c, code.ErrRouteNotFound, nil)
	})
	return r
}

// corsConfig 允许配置中的前端来源
func corsConfig(cfg *config.Config) cors.Config {
	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Content-Length", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	for _, origin := range cfg.CORSOrigins {
		if origin == "*" {
			corsCfg.AllowAllOrigins = true
			corsCfg.AllowCredentials = false
			return corsCfg
		}
	}
	corsCfg.AllowOrigins = cfg.CORSOrigins
	if len(corsCfg.AllowOrigins) == 0 {
		corsCfg.AllowOrigins = []string{"http://localhost:4200"}
	}
	return corsCfg
}

// registerRoutes 配置所有API路由
func registerRoutes(
	r *gin.Engine,
	container *container.ServiceContainer,
) {
	// API 路由根路径
	api := r.Group("/api")

	// 健康检查路由
	api.GET("/ping", controllers.HandleHealthFunc(container, "ping"))
	api.GET("/health", controllers.HandleHealthFunc(container, "health"))

	registerAuthRoutes(api, container)
	registerVisitorRoutes(api, container)
	registerRegistrationRoutes(api, container)
	registerIncidentRoutes(api, container)
	registerContentRoutes(api, container)
	registerResidentRoutes(api, container)
}

// registerAuthRoutes 认证和档案路由
func registerAuthRoutes(api *gin.RouterGroup, container *container.ServiceContainer) {
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/login", controllers.HandleAuthFunc(container, "login"))
		authGroup.POST("/logout", controllers.HandleAuthFunc(container, "logout"))
		authGroup.GET("/profile", controllers.HandleAuthFunc(container, "getProfile"))
		authGroup.POST("/forgot-password", controllers.HandleAuthFunc(container, "forgotPassword"))
	}

	profileGroup := api.Group("/profiles")
	{
		profileGroup.GET("", controllers.HandleProfileFunc(container, "getProfiles"))
		profileGroup.GET("/:id", controllers.HandleProfileFunc(container, "getProfile"))
		profileGroup.PUT("/:id", controllers.HandleProfileFunc(container, "updateProfile"))
	}
}

// registerVisitorRoutes 访客和二维码路由
func registerVisitorRoutes(api *gin.RouterGroup, container *container.ServiceContainer) {
	visitorGroup := api.Group("/visitors")
	{
		visitorGroup.GET("", controllers.HandleVisitorFunc(container, "getVisitors"))
		visitorGroup.GET("/stats", controllers.HandleVisitorFunc(container, "getVisitorStats"))
		visitorGroup.POST("", controllers.HandleVisitorFunc(container, "createVisitor"))
		visitorGroup.POST("/decode-qr", controllers.HandleVisitorFunc(container, "decodeQR"))
		visitorGroup.GET("/:id", controllers.HandleVisitorFunc(container, "getVisitor"))
		visitorGroup.PUT("/:id", controllers.HandleVisitorFunc(container, "updateVisitor"))
		visitorGroup.DELETE("/:id", controllers.HandleVisitorFunc(container, "deleteVisitor"))
		visitorGroup.POST("/:id/generate-qr", controllers.HandleVisitorFunc(container, "generateQR"))
		visitorGroup.POST("/:id/entry", controllers.HandleVisitorFunc(container, "registerEntry"))
		visitorGroup.POST("/:id/exit", controllers.HandleVisitorFunc(container, "registerExit"))
	}

	api.GET("/history", controllers.HandleHistoryFunc(container, "getHistory"))
}

// registerRegistrationRoutes 住户注册申请路由
func registerRegistrationRoutes(api *gin.RouterGroup, container *container.ServiceContainer) {
	registrationGroup := api.Group("/registrations")
	{
		registrationGroup.GET("", controllers.HandleRegistrationFunc(container, "getPendingRegistrations"))
		registrationGroup.GET("/stats", controllers.HandleRegistrationFunc(container, "getRegistrationStats"))
		registrationGroup.POST("", controllers.HandleRegistrationFunc(container, "createRegistration"))
		registrationGroup.GET("/:id", controllers.HandleRegistrationFunc(container, "getRegistration"))
		registrationGroup.PUT("/:id/approve", controllers.HandleRegistrationFunc(container, "approveRegistration"))
		registrationGroup.PUT("/:id/reject", controllers.HandleRegistrationFunc(container, "rejectRegistration"))
	}
}

// registerIncidentRoutes 安全事件路由
func registerIncidentRoutes(api *gin.RouterGroup, container *container.ServiceContainer) {
	incidentGroup := api.Group("/incidents")
	{
		incidentGroup.GET("", controllers.HandleIncidentFunc(container, "getIncidents"))
		incidentGroup.POST("", controllers.HandleIncidentFunc(container, "createIncident"))
		incidentGroup.GET("/stats", controllers.HandleIncidentFunc(container, "getIncidentStats"))
		incidentGroup.GET("/stats/by-type", controllers.HandleIncidentFunc(container, "getIncidentsByType"))
		incidentGroup.GET("/:id", controllers.HandleIncidentFunc(container, "getIncident"))
		incidentGroup.PUT("/:id", controllers.HandleIncidentFunc(container, "updateIncident"))
		incidentGroup.DELETE("/:id", controllers.HandleIncidentFunc(container, "deleteIncident"))
	}
}

// registerContentRoutes 横幅、通知和聊天路由
func registerContentRoutes(api *gin.RouterGroup, container *container.ServiceContainer) {
	bannerGroup := api.Group("/banners")
	{
		bannerGroup.GET("", controllers.HandleBannerFunc(container, "getBanners"))
		bannerGroup.GET("/active", controllers.HandleBannerFunc(container, "getActiveBanners"))
		bannerGroup.POST("", controllers.HandleBannerFunc(container, "createBanner"))
		bannerGroup.GET("/:id", controllers.HandleBannerFunc(container, "getBanner"))
		bannerGroup.PUT("/:id", controllers.HandleBannerFunc(container, "updateBanner"))
		bannerGroup.PUT("/:id/status", controllers.HandleBannerFunc(container, "setBannerStatus"))
		bannerGroup.DELETE("/:id", controllers.HandleBannerFunc(container, "deleteBanner"))
	}

	notificationGroup := api.Group("/notifications")
	{
		notificationGroup.GET("", controllers.HandleNotificationFunc(container, "getNotifications"))
		notificationGroup.POST("", controllers.HandleNotificationFunc(container, "createNotification"))
		notificationGroup.PUT("/mark-all-read", controllers.HandleNotificationFunc(container, "markAllAsRead"))
		notificationGroup.PUT("/:id/read", controllers.HandleNotificationFunc(container, "markAsRead"))
		notificationGroup.DELETE("/:id", controllers.HandleNotificationFunc(container, "deleteNotification"))
	}

	chatGroup := api.Group("/chat")
	{
		chatGroup.GET("/messages", controllers.HandleChatFunc(container, "getMessages"))
		chatGroup.POST("/messages", controllers.HandleChatFunc(container, "sendMessage"))
	}
}

// registerResidentRoutes 住户偏好路由
func registerResidentRoutes(api *gin.RouterGroup, container *container.ServiceContainer) {
	preferenceGroup := api.Group("/resident-preferences")
	{
		preferenceGroup.GET("", controllers.HandlePreferenceFunc(container, "getPreference"))
		preferenceGroup.POST("", controllers.HandlePreferenceFunc(container, "savePreference"))
		preferenceGroup.PUT("/visitors", controllers.HandlePreferenceFunc(container, "setAcceptsVisitors"))
		preferenceGroup.PUT("/personnel", controllers.HandlePreferenceFunc(container, "setAcceptsPersonnel"))
	}
}
