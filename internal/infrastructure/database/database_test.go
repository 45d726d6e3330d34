package database

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm/logger"

	"aicp-http-service/internal/domain/models"
	"aicp-http-service/internal/infrastructure/config"
)

func TestDialectorSelection(t *testing.T) {
	for _, driver := range []string{"", "mysql", "postgres", "sqlite"} {
		d, err := Dialector(&config.Config{DBDriver: driver, DBName: "x.db"})
		require.NoError(t, err, driver)
		assert.NotNil(t, d)
	}

	_, err := Dialector(&config.Config{DBDriver: "oracle"})
	assert.Error(t, err)
}

func TestOpenAndMigrateSQLite(t *testing.T) {
	pool, err := Open(sqlite.Open("file:migrate_test?mode=memory&cache=shared"), logger.Silent)
	require.NoError(t, err)
	defer func() { _ = pool.Close() }()

	require.NoError(t, Migrate(pool.GetDB(), "auto"))
	assert.True(t, pool.GetDB().Migrator().HasTable(&models.Visitor{}))
	assert.True(t, pool.GetDB().Migrator().HasTable("house_access"))

	require.NoError(t, pool.GetDB().Create(&models.Banner{Title: "Aviso"}).Error)
	require.NoError(t, Migrate(pool.GetDB(), "drop"))

	var count int64
	pool.GetDB().Model(&models.Banner{}).Count(&count)
	assert.Zero(t, count)

	assert.NoError(t, pool.HealthCheck())
	stats, err := pool.Stats()
	require.NoError(t, err)
	assert.Contains(t, stats, "open_connections")
}

// gaugeValue 从默认注册表读取指标值
func gaugeValue(t *testing.T, name, dbName string) (float64, bool) {
	t.Helper()
	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)
	for _, family := range families {
		if family.GetName() != name {
			continue
		}
		for _, metric := range family.GetMetric() {
			for _, label := range metric.GetLabel() {
				if label.GetName() == "db_name" && label.GetValue() == dbName {
					return metric.GetGauge().GetValue(), true
				}
			}
		}
	}
	return 0, false
}

func TestPoolStatsExportedOnScrape(t *testing.T) {
	pool, err := Open(sqlite.Open("file:stats_test?mode=memory&cache=shared"), logger.Silent)
	require.NoError(t, err)
	defer func() { _ = pool.Close() }()

	maxOpen, ok := gaugeValue(t, "go_sql_max_open_connections", "sqlite")
	require.True(t, ok)
	assert.Equal(t, float64(1), maxOpen)

	// 不调用 Stats 也能读到当前值
	require.NoError(t, pool.GetDB().Exec("SELECT 1").Error)
	open, ok := gaugeValue(t, "go_sql_open_connections", "sqlite")
	require.True(t, ok)
	assert.Equal(t, float64(1), open)

	// 新连接池替换旧的采集器
	other, err := Open(sqlite.Open("file:stats_test_other?mode=memory&cache=shared"), logger.Silent)
	require.NoError(t, err)
	defer func() { _ = other.Close() }()
	_, ok = gaugeValue(t, "go_sql_max_open_connections", "sqlite")
	assert.True(t, ok)
}
