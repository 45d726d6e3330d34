package container

import (
	"sync"

	"aicp-http-service/internal/domain/services"
	"aicp-http-service/internal/infrastructure/config"
	Logger "aicp-http-service/pkg/logger"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

// ServiceContainer 管理所有服务的依赖注入
type ServiceContainer struct {
	db     *gorm.DB
	config *config.Config
	redis  *redis.Client

	// 基础服务
	jwtService   services.InterfaceJWTService
	redisService services.InterfaceRedisService
	passLedger   services.InterfacePassLedger
	qrService    services.InterfaceQRService

	// 业务服务
	authService         services.InterfaceAuthService
	profileService      services.InterfaceProfileService
	visitorService      services.InterfaceVisitorService
	registrationService services.InterfaceRegistrationService
	incidentService     services.InterfaceIncidentService
	bannerService       services.InterfaceBannerService
	notificationService services.InterfaceNotificationService
	chatService         services.InterfaceChatService
	historyService      services.InterfaceHistoryService
	preferenceService   services.InterfacePreferenceService

	mu sync.RWMutex
}

// NewServiceContainer 创建新的服务容器，redisClient 为空时一次性通行证记录使用数据库
func NewServiceContainer(db *gorm.DB, cfg *config.Config, redisClient *redis.Client) *ServiceContainer {
	if db == nil {
		panic("数据库连接为空")
	}

	if cfg == nil {
		panic("配置为空")
	}

	container := &ServiceContainer{
		db:     db,
		config: cfg,
		redis:  redisClient,
	}
	container.initializeServices()
	return container
}

// initializeServices 初始化所有服务
func (c *ServiceContainer) initializeServices() {
	c.mu.Lock()
	defer c.mu.Unlock()

	// 初始化基础服务
	c.jwtService = services.NewJWTService(c.config)
	c.qrService = services.NewQRService(c.config)

	// Redis 可用时用 SETNX 记录一次性通行证
	c.passLedger = services.NewDBPassLedger(c.db)
	if c.redis != nil {
		c.redisService = services.NewRedisServiceWithClient(c.redis)
		if err := c.redisService.Ping(); err != nil {
			Logger.Warning("Redis连接测试失败: %v，一次性通行证将使用数据库记录", err)
			c.redisService = nil
		} else {
			c.passLedger = services.NewRedisPassLedger(c.redisService)
		}
	}

	// 初始化业务服务
	c.authService = services.NewAuthService(c.db, c.config, c.jwtService)
	c.profileService = services.NewProfileService(c.db, c.config)
	c.visitorService = services.NewVisitorService(c.db, c.config, c.qrService, c.passLedger)
	c.registrationService = services.NewRegistrationService(c.db, c.config)
	c.incidentService = services.NewIncidentService(c.db, c.config)
	c.bannerService = services.NewBannerService(c.db, c.config)
	c.notificationService = services.NewNotificationService(c.db, c.config)
	c.chatService = services.NewChatService(c.db, c.config)
	c.preferenceService = services.NewPreferenceService(c.db, c.config)

	historyService, err := services.NewHistoryService(c.db, c.config)
	if err != nil {
		Logger.Warning("%v，访问历史将使用本地数据库", err)
		historyService = &services.HistoryService{DB: c.db, Config: c.config}
	}
	c.historyService = historyService
	Logger.Info("访问历史数据来源: %s", c.historyService.Backend())
}

// GetService 获取指定名称的服务
func (c *ServiceContainer) GetService(name string) interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	switch name {
	case "config":
		return c.config
	case "db":
		return c.db
	case "jwt":
		return c.jwtService
	case "redis":
		return c.redisService
	case "qr":
		return c.qrService
	case "auth":
		return c.authService
	case "profile":
		return c.profileService
	case "visitor":
		return c.visitorService
	case "registration":
		return c.registrationService
	case "incident":
		return c.incidentService
	case "banner":
		return c.bannerService
	case "notification":
		return c.notificationService
	case "chat":
		return c.chatService
	case "history":
		return c.historyService
	case "preference":
		return c.preferenceService
	default:
		return nil
	}
}

// GetDB 获取数据库连接
func (c *ServiceContainer) GetDB() *gorm.DB {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.db
}

// GetConfig 获取配置
func (c *ServiceContainer) GetConfig() *config.Config {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.config
}
