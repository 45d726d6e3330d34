package services

import (
	"errors"
	"time"

	"aicp-http-service/internal/domain/models"
	"aicp-http-service/internal/infrastructure/config"

	"gorm.io/gorm"
)

// InterfaceProfileService defines the profile service interface
type InterfaceProfileService interface {
	GetProfiles(role, fraccionamientoID string) ([]models.Profile, error)
	GetProfileByID(id string) (*models.Profile, error)
	UpdateProfile(id string, updates map[string]interface{}) (*models.Profile, error)
}

// 允许通过接口更新的档案字段
var profileUpdatableColumns = map[string]bool{
	"name":               true,
	"user_name":          true,
	"phone":              true,
	"street":             true,
	"house_number":       true,
	"status":             true,
	"fraccionamiento_id": true,
	"role":               true,
	"password":           true,
}

// ProfileService 提供档案相关的服务
type ProfileService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewProfileService 创建一个新的档案服务
func NewProfileService(db *gorm.DB, cfg *config.Config) InterfaceProfileService {
	return &ProfileService{
		DB:     db,
		Config: cfg,
	}
}

// 1 GetProfiles 获取档案列表，可按角色和小区过滤
func (s *ProfileService) GetProfiles(role, fraccionamientoID string) ([]models.Profile, error) {
	query := s.DB.Model(&models.Profile{})
	if role != "" {
		query = query.Where("role = ?", role)
	}
	if fraccionamientoID != "" {
		query = query.Where("fraccionamiento_id = ?", fraccionamientoID)
	}

	profiles := []models.Profile{}
	if err := query.Order("created_at DESC").Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

// 2 GetProfileByID 根据ID获取档案
func (s *ProfileService) GetProfileByID(id string) (*models.Profile, error) {
	var profile models.Profile
	if err := s.DB.Where("id = ?", id).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// 3 UpdateProfile 只更新白名单中的字段
func (s *ProfileService) UpdateProfile(id string, updates map[string]interface{}) (*models.Profile, error) {
	columns := FilterColumns(updates, profileUpdatableColumns)
	if len(columns) == 0 {
		return nil, ErrNothingToUpdate
	}
	if role, ok := columns["role"]; ok {
		if r, isString := role.(string); !isString || !models.ValidRole(r) {
			return nil, ErrInvalidRole
		}
	}

	if _, err := s.GetProfileByID(id); err != nil {
		return nil, err
	}

	columns["updated_at"] = time.Now()
	if err := s.DB.Model(&models.Profile{}).Where("id = ?", id).Updates(columns).Error; err != nil {
		return nil, err
	}
	return s.GetProfileByID(id)
}
