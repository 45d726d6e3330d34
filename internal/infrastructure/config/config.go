package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

var (
	config     *Config
	configOnce sync.Once
)

// Config stores all configuration of the application
type Config struct {
	// Environment type
	EnvType string

	// Database
	DBDriver        string // 数据库驱动: "mysql"(默认), "postgres", "sqlite"
	DBHost          string
	DBUser          string
	DBPassword      string
	DBName          string
	DBPort          string
	DBMigrationMode string // 数据库迁移模式: "auto"(默认), "drop"(删除重建)

	// Server
	ServerPort  string
	GinMode     string
	LogLevel    string
	CORSOrigins []string

	// Redis（一次性通行证使用记录）
	RedisEnabled  bool
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	// Supabase（访问历史）
	SupabaseURL string
	SupabaseKey string

	// QR
	QRAPIBaseURL   string
	QRSize         string
	OneTimePassTTL time.Duration

	// JWT
	JWTSecretKey string

	// 默认管理员，两项都配置时启动时创建
	DefaultAdminEmail    string
	DefaultAdminPassword string
}

// LoadConfig loads config from environment variables based on ENV_TYPE
func LoadConfig() *Config {
	envType := strings.ToUpper(getEnv("ENV_TYPE", "LOCAL"))
	prefix := ""

	if envType == "LOCAL" {
		prefix = "LOCAL_"
	} else if envType == "SERVER" {
		prefix = "SERVER_"
	} else {
		fmt.Printf("Warning: Unknown ENV_TYPE '%s', defaulting to LOCAL environment\n", envType)
		prefix = "LOCAL_"
		envType = "LOCAL"
	}

	// 本地环境使用开发默认值，服务器环境必须显式配置数据库
	dbVar := func(key, localDefault string) string {
		if envType == "SERVER" {
			return getEnvRequired(prefix + key)
		}
		return getEnv(prefix+key, getEnv(key, localDefault))
	}

	driver := strings.ToLower(getEnv(prefix+"DB_DRIVER", getEnv("DB_DRIVER", "mysql")))
	dbPassword := getEnv(prefix+"DB_PASSWORD", getEnv("DB_PASSWORD", ""))
	dbHost, dbUser, dbPort := "", "", ""
	if driver == "sqlite" {
		// sqlite 只需要文件名（DB_NAME）
		dbHost = getEnv(prefix+"DB_HOST", "")
		dbUser = getEnv(prefix+"DB_USER", "")
		dbPort = getEnv(prefix+"DB_PORT", "")
	} else {
		dbHost = dbVar("DB_HOST", "localhost")
		dbUser = dbVar("DB_USER", "root")
		dbPort = dbVar("DB_PORT", defaultPort(driver))
		if envType == "SERVER" {
			dbPassword = getEnvRequired(prefix + "DB_PASSWORD")
		}
	}

	return &Config{
		EnvType: envType,

		DBDriver:        driver,
		DBHost:          dbHost,
		DBUser:          dbUser,
		DBPassword:      dbPassword,
		DBName:          dbVar("DB_NAME", "aicp_db"),
		DBPort:          dbPort,
		DBMigrationMode: getEnv(prefix+"DB_MIGRATION_MODE", getEnv("DB_MIGRATION_MODE", "auto")),

		ServerPort:  getEnv(prefix+"SERVER_PORT", getEnv("SERVER_PORT", "5000")),
		GinMode:     getEnv("GIN_MODE", ""),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		CORSOrigins: getEnvAsList("CORS_ORIGINS", []string{"http://localhost:4200"}),

		RedisEnabled:  getEnvAsBool("REDIS_ENABLED", false),
		RedisHost:     getEnv(prefix+"REDIS_HOST", getEnv("REDIS_HOST", "localhost")),
		RedisPort:     getEnv(prefix+"REDIS_PORT", getEnv("REDIS_PORT", "6379")),
		RedisPassword: getEnv(prefix+"REDIS_PASSWORD", getEnv("REDIS_PASSWORD", "")),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),

		SupabaseURL: getEnv("SUPABASE_URL", ""),
		SupabaseKey: getEnv("SUPABASE_KEY", ""),

		QRAPIBaseURL:   getEnv("QR_API_BASE_URL", "https://api.qrserver.com/v1/create-qr-code/"),
		QRSize:         getEnv("QR_SIZE", "250x250"),
		OneTimePassTTL: getEnvAsDuration("ONE_TIME_PASS_TTL", 24*time.Hour),

		JWTSecretKey: getEnv("JWT_SECRET_KEY", "aicp-secret-key-change-in-production"),

		DefaultAdminEmail:    getEnv("DEFAULT_ADMIN_EMAIL", ""),
		DefaultAdminPassword: getEnv("DEFAULT_ADMIN_PASSWORD", ""),
	}
}

// GetConfig returns the application configuration as a singleton
func GetConfig() *Config {
	configOnce.Do(func() {
		config = LoadConfig()
	})
	return config
}

// GetDSN returns the database connection string for the configured driver
func (c *Config) GetDSN() string {
	switch c.DBDriver {
	case "postgres":
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
			c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort)
	case "sqlite":
		return c.DBName
	default:
		return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + c.DBPort + ")/" + c.DBName + "?charset=utf8mb4&parseTime=True&loc=Local&allowNativePasswords=true"
	}
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return c.RedisHost + ":" + c.RedisPort
}

// SupabaseEnabled reports whether the Supabase history backend is configured
func (c *Config) SupabaseEnabled() bool {
	return c.SupabaseURL != "" && c.SupabaseKey != ""
}

func defaultPort(driver string) string {
	if driver == "postgres" {
		return "5432"
	}
	return "3306"
}

// Helper function to get environment variable with default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// Helper function to get environment variable as integer with default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// Helper function to get environment variable as boolean with default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// 解析时长，如 "24h"、"90m"
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if value, err := time.ParseDuration(valueStr); err == nil && value > 0 {
		return value
	}
	return defaultValue
}

// 逗号分隔的列表
func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	var out []string
	for _, item := range strings.Split(valueStr, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}

// 要求必须提供环境变量的辅助函数
func getEnvRequired(key string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	panic(fmt.Sprintf("Required environment variable %s is not set", key))
}
