package services

import (
	"errors"
	"time"

	"aicp-http-service/internal/domain/models"
	"aicp-http-service/internal/infrastructure/config"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// InterfacePreferenceService defines the resident preference service interface
type InterfacePreferenceService interface {
	GetPreference(userID string) (*models.ResidentPreference, error)
	SavePreference(userID string, acceptsVisitors, acceptsPersonnel bool) (*models.ResidentPreference, error)
	SetAcceptsVisitors(userID string, accepts bool) (*models.ResidentPreference, error)
	SetAcceptsPersonnel(userID string, accepts bool) (*models.ResidentPreference, error)
}

// PreferenceService 提供住户偏好相关的服务
type PreferenceService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewPreferenceService 创建一个新的住户偏好服务
func NewPreferenceService(db *gorm.DB, cfg *config.Config) InterfacePreferenceService {
	return &PreferenceService{
		DB:     db,
		Config: cfg,
	}
}

// 1 GetPreference 获取住户偏好，没有记录时默认全部接受
func (s *PreferenceService) GetPreference(userID string) (*models.ResidentPreference, error) {
	var preference models.ResidentPreference
	err := s.DB.Where("user_id = ?", userID).First(&preference).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &models.ResidentPreference{UserID: userID, AcceptsVisitors: true, AcceptsPersonnel: true}, nil
	}
	if err != nil {
		return nil, err
	}
	return &preference, nil
}

// 2 SavePreference 插入或更新两个开关
func (s *PreferenceService) SavePreference(userID string, acceptsVisitors, acceptsPersonnel bool) (*models.ResidentPreference, error) {
	if userID == "" {
		return nil, ErrMissingField
	}
	preference := models.ResidentPreference{
		UserID:           userID,
		AcceptsVisitors:  acceptsVisitors,
		AcceptsPersonnel: acceptsPersonnel,
		UpdatedAt:        time.Now(),
	}
	err := s.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"accepts_visitors", "accepts_personnel", "updated_at"}),
	}).Create(&preference).Error
	if err != nil {
		return nil, err
	}
	return &preference, nil
}

// 3 SetAcceptsVisitors 只修改是否接受访客
func (s *PreferenceService) SetAcceptsVisitors(userID string, accepts bool) (*models.ResidentPreference, error) {
	current, err := s.GetPreference(userID)
	if err != nil {
		return nil, err
	}
	return s.SavePreference(userID, accepts, current.AcceptsPersonnel)
}

// 4 SetAcceptsPersonnel 只修改是否接受服务人员
func (s *PreferenceService) SetAcceptsPersonnel(userID string, accepts bool) (*models.ResidentPreference, error) {
	current, err := s.GetPreference(userID)
	if err != nil {
		return nil, err
	}
	return s.SavePreference(userID, current.AcceptsVisitors, accepts)
}
