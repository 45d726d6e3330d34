package services

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"aicp-http-service/internal/domain/models"
	"aicp-http-service/internal/infrastructure/config"
	"aicp-http-service/internal/infrastructure/database"
)

// newTestDB 每个测试使用独立的内存数据库
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_", "#", "_").Replace(t.Name())
	pool, err := database.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), logger.Silent)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pool.Close() })
	require.NoError(t, database.Migrate(pool.GetDB(), "drop"))
	return pool.GetDB()
}

func testConfig() *config.Config {
	return &config.Config{
		QRAPIBaseURL:   "https://api.qrserver.com/v1/create-qr-code/",
		QRSize:         "250x250",
		OneTimePassTTL: 24 * time.Hour,
		JWTSecretKey:   "test-secret",
	}
}

func strPtr(s string) *string { return &s }

func createProfile(t *testing.T, db *gorm.DB, p models.Profile) models.Profile {
	t.Helper()
	require.NoError(t, db.Create(&p).Error)
	return p
}
