package services

import (
	"fmt"
	"time"

	"aicp-http-service/internal/domain/models"

	"gorm.io/gorm"
)

// InterfacePassLedger 记录一次性通行证是否已被使用
type InterfacePassLedger interface {
	// MarkUsed 标记通行证已使用；返回 false 表示之前已使用过
	MarkUsed(visitorID uint, ttl time.Duration) (bool, error)
	// Release 入场记录写入失败时撤销标记
	Release(visitorID uint) error
}

// RedisPassLedger 使用 Redis SETNX 保证单次使用
type RedisPassLedger struct {
	redis InterfaceRedisService
}

// NewRedisPassLedger 创建基于 Redis 的通行证记录
func NewRedisPassLedger(redis InterfaceRedisService) InterfacePassLedger {
	return &RedisPassLedger{redis: redis}
}

// MarkUsed 键在通行证过期后自动删除
func (l *RedisPassLedger) MarkUsed(visitorID uint, ttl time.Duration) (bool, error) {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return l.redis.SetNX(passKey(visitorID), time.Now().UTC(), ttl)
}

// Release 删除标记，通行证可以再次使用
func (l *RedisPassLedger) Release(visitorID uint) error {
	return l.redis.Delete(passKey(visitorID))
}

func passKey(visitorID uint) string {
	return fmt.Sprintf("one_time_pass:%d", visitorID)
}

// DBPassLedger 未启用 Redis 时，通过进出记录判断是否已使用
type DBPassLedger struct {
	DB *gorm.DB
}

// NewDBPassLedger 创建基于数据库的通行证记录
func NewDBPassLedger(db *gorm.DB) InterfacePassLedger {
	return &DBPassLedger{DB: db}
}

// MarkUsed 已有入场记录即视为已使用，入场记录本身由访客服务写入
func (l *DBPassLedger) MarkUsed(visitorID uint, ttl time.Duration) (bool, error) {
	var count int64
	err := l.DB.Model(&models.HouseAccess{}).
		Where("visitor_id = ? AND access_type = ?", visitorID, models.AccessTypeEntry).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count == 0, nil
}

// Release 入场记录与访客状态在同一事务中回滚，无需处理
func (l *DBPassLedger) Release(visitorID uint) error {
	return nil
}
