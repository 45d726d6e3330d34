package database

import (
	"fmt"

	"aicp-http-service/internal/domain/models"
	Logger "aicp-http-service/pkg/logger"

	"gorm.io/gorm"
)

// AllModels 需要迁移的全部模型
func AllModels() []interface{} {
	return []interface{}{
		&models.Profile{},
		&models.PendingRegistration{},
		&models.Visitor{},
		&models.Banner{},
		&models.Notification{},
		&models.ChatMessage{},
		&models.Incident{},
		&models.HouseAccess{},
		&models.ResidentPreference{},
	}
}

// Migrate 按迁移模式执行数据库迁移
// "drop" 删除并重建所有表，其他值只添加新列和新表
func Migrate(db *gorm.DB, mode string) error {
	if mode == "drop" {
		Logger.Warning("在drop模式下运行，将删除并重建所有表")
		if err := db.Migrator().DropTable(AllModels()...); err != nil {
			return fmt.Errorf("删除表失败: %w", err)
		}
	}

	if err := db.AutoMigrate(AllModels()...); err != nil {
		return fmt.Errorf("自动迁移失败: %w", err)
	}

	Logger.Info("数据库迁移完成 (mode=%s)", mode)
	return nil
}
