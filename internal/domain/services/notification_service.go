package services

import (
	"strings"
	"time"

	"aicp-http-service/internal/domain/models"
	"aicp-http-service/internal/infrastructure/config"

	"gorm.io/gorm"
)

// InterfaceNotificationService defines the notification service interface
type InterfaceNotificationService interface {
	GetNotificationsByUser(userID string) ([]models.Notification, error)
	CreateNotification(notification *models.Notification) error
	MarkAsRead(id uint) error
	MarkAllAsRead(userID string) (int64, error)
	DeleteNotification(id uint) error
}

// NotificationService 提供通知相关的服务
type NotificationService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewNotificationService 创建一个新的通知服务
func NewNotificationService(db *gorm.DB, cfg *config.Config) InterfaceNotificationService {
	return &NotificationService{
		DB:     db,
		Config: cfg,
	}
}

// 1 GetNotificationsByUser 获取用户的通知，最新的在前
func (s *NotificationService) GetNotificationsByUser(userID string) ([]models.Notification, error) {
	notifications := []models.Notification{}
	err := s.DB.Where("user_id = ?", userID).
		Order("created_at DESC").Order("id DESC").
		Find(&notifications).Error
	if err != nil {
		return nil, err
	}
	return notifications, nil
}

// 2 CreateNotification 创建通知
func (s *NotificationService) CreateNotification(notification *models.Notification) error {
	if strings.TrimSpace(notification.UserID) == "" || strings.TrimSpace(notification.Title) == "" {
		return ErrMissingField
	}
	if notification.Type == "" {
		notification.Type = "info"
	}
	notification.ID = 0
	notification.Read = false
	return s.DB.Create(notification).Error
}

// 3 MarkAsRead 标记单条通知为已读
func (s *NotificationService) MarkAsRead(id uint) error {
	result := s.DB.Model(&models.Notification{}).Where("id = ?", id).
		Updates(map[string]interface{}{"read": true, "updated_at": time.Now()})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

// 4 MarkAllAsRead 标记用户的全部未读通知为已读，返回更新条数
func (s *NotificationService) MarkAllAsRead(userID string) (int64, error) {
	result := s.DB.Model(&models.Notification{}).
		Where(map[string]interface{}{"user_id": userID, "read": false}).
		Updates(map[string]interface{}{"read": true, "updated_at": time.Now()})
	return result.RowsAffected, result.Error
}

// 5 DeleteNotification 删除通知
func (s *NotificationService) DeleteNotification(id uint) error {
	result := s.DB.Delete(&models.Notification{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}
