// @title           AICP HTTP Service API
// @version         1.0
// @description     Access-control admin API for residential communities: visitors, QR passes, resident registrations, incidents, banners, notifications and chat

// @contact.name   API Support

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:5000
// @BasePath  /api
package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"runtime"

	"aicp-http-service/internal/app/routes"
	"aicp-http-service/internal/domain/models"
	"aicp-http-service/internal/domain/services"
	"aicp-http-service/internal/infrastructure/config"
	"aicp-http-service/internal/infrastructure/database"
	Logger "aicp-http-service/pkg/logger"
	"aicp-http-service/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	// 设置最大处理器数量，提高并发性能
	runtime.GOMAXPROCS(runtime.NumCPU())

	// 加载.env文件
	envErr := godotenv.Load()

	// 获取配置，日志级别由配置决定
	cfg := config.GetConfig()

	// 初始化日志配置
	if err := Logger.SetupLogger(cfg.LogLevel); err != nil {
		fmt.Printf("初始化日志配置失败: %v\n", err)
		os.Exit(1)
	}
	defer Logger.Sync()

	if envErr != nil {
		Logger.Warning("无法加载.env文件: %v", envErr)
		// 即使加载失败也继续执行，可能环境变量已经通过其他方式设置
	} else {
		Logger.Info("成功加载.env文件")
	}
	Logger.Info("日志级别: %s", cfg.LogLevel)

	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	// 创建数据库连接池
	pool, err := database.NewConnectionPool(cfg)
	if err != nil {
		log.Fatalf("无法创建数据库连接池: %v", err)
	}
	defer pool.Close()
	db := pool.GetDB()

	// 根据配置执行迁移，drop 模式会删除并重建所有表
	if cfg.DBMigrationMode == "drop" {
		log.Println("警告: 在drop模式下运行，将删除并重建所有表")
	}
	if err := database.Migrate(db, cfg.DBMigrationMode); err != nil {
		log.Fatalf("数据库迁移失败: %v", err)
	}

	// 配置了默认管理员时确保其存在
	if err := ensureAdminExists(db, cfg); err != nil {
		log.Fatalf("创建默认管理员失败: %v", err)
	}

	// Redis 只用于记录一次性通行证
	var redisClient *redis.Client
	if cfg.RedisEnabled {
		redisClient = services.NewRedisClient(cfg)
		defer redisClient.Close()
	}

	// 初始化路由
	r := routes.SetupRouter(db, cfg, redisClient)

	// 打印系统信息
	printSystemInfo(pool)

	// 启动服务器，监听所有接口
	port := cfg.ServerPort
	Logger.Info("服务器启动在: http://0.0.0.0:%s", port)
	if err := r.Run("0.0.0.0:" + port); err != nil {
		Logger.Error("启动服务器失败: %v", err)
		os.Exit(1)
	}
}

// ensureAdminExists 按配置创建默认管理员档案，密码以 bcrypt 保存
func ensureAdminExists(db *gorm.DB, cfg *config.Config) error {
	if cfg.DefaultAdminEmail == "" || cfg.DefaultAdminPassword == "" {
		return nil
	}

	var existing models.Profile
	err := db.Where("email = ?", cfg.DefaultAdminEmail).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashedPassword, err := utils.HashPassword(cfg.DefaultAdminPassword)
	if err != nil {
		return fmt.Errorf("生成密码哈希失败: %w", err)
	}

	admin := models.Profile{
		Name:     "Administrador",
		UserName: "admin",
		Email:    cfg.DefaultAdminEmail,
		Password: hashedPassword,
		Role:     string(models.RoleAdmin),
		Status:   "active",
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	Logger.Info("已创建默认管理员账户: %s", admin.Email)
	return nil
}

// printSystemInfo 打印系统信息
func printSystemInfo(pool *database.ConnectionPool) {
	// 打印数据库连接池信息
	stats, err := pool.Stats()
	if err == nil {
		Logger.Info("数据库连接池状态: %+v", stats)
	}

	// 打印系统资源信息
	Logger.Info("系统CPU核心数: %d", runtime.NumCPU())
	Logger.Info("当前Go协程数: %d", runtime.NumGoroutine())

	// 打印内存信息
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	Logger.Info("系统内存使用: Alloc=%v MiB, TotalAlloc=%v MiB, Sys=%v MiB",
		m.Alloc/1024/1024, m.TotalAlloc/1024/1024, m.Sys/1024/1024)
}
