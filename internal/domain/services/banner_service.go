package services

import (
	"errors"
	"strings"
	"time"

	"aicp-http-service/internal/domain/models"
	"aicp-http-service/internal/infrastructure/config"

	"gorm.io/gorm"
)

// InterfaceBannerService defines the banner service interface
type InterfaceBannerService interface {
	GetAllBanners() ([]models.Banner, error)
	GetActiveBanners(fraccionamientoID string) ([]models.Banner, error)
	GetBannerByID(id uint) (*models.Banner, error)
	CreateBanner(banner *models.Banner) error
	UpdateBanner(id uint, updates map[string]interface{}) (*models.Banner, error)
	SetBannerStatus(id uint, active bool) (*models.Banner, error)
	DeleteBanner(id uint) error
}

// 允许通过接口更新的横幅字段，请求中的 order 对应 display_order 列
var bannerUpdatableColumns = map[string]bool{
	"title":              true,
	"description":        true,
	"cta_text":           true,
	"cta_url":            true,
	"icon":               true,
	"is_active":          true,
	"order":              true,
	"fraccionamiento_id": true,
}

// BannerService 提供横幅相关的服务
type BannerService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewBannerService 创建一个新的横幅服务
func NewBannerService(db *gorm.DB, cfg *config.Config) InterfaceBannerService {
	return &BannerService{
		DB:     db,
		Config: cfg,
	}
}

// 1 GetAllBanners 获取全部横幅（管理端）
func (s *BannerService) GetAllBanners() ([]models.Banner, error) {
	banners := []models.Banner{}
	if err := s.DB.Order("display_order ASC").Order("id ASC").Find(&banners).Error; err != nil {
		return nil, err
	}
	return banners, nil
}

// 2 GetActiveBanners 获取启用的横幅，可按小区过滤
func (s *BannerService) GetActiveBanners(fraccionamientoID string) ([]models.Banner, error) {
	query := s.DB.Where("is_active = ?", true)
	if fraccionamientoID != "" {
		query = query.Where("fraccionamiento_id = ?", fraccionamientoID)
	}

	banners := []models.Banner{}
	if err := query.Order("display_order ASC").Order("id ASC").Find(&banners).Error; err != nil {
		return nil, err
	}
	return banners, nil
}

// 3 GetBannerByID 根据ID获取横幅
func (s *BannerService) GetBannerByID(id uint) (*models.Banner, error) {
	var banner models.Banner
	if err := s.DB.First(&banner, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBannerNotFound
		}
		return nil, err
	}
	return &banner, nil
}

// 4 CreateBanner 创建横幅
func (s *BannerService) CreateBanner(banner *models.Banner) error {
	banner.Title = strings.TrimSpace(banner.Title)
	if banner.Title == "" {
		return ErrMissingField
	}
	banner.ID = 0
	return s.DB.Create(banner).Error
}

// 5 UpdateBanner 只更新白名单中的字段
func (s *BannerService) UpdateBanner(id uint, updates map[string]interface{}) (*models.Banner, error) {
	columns := FilterColumns(updates, bannerUpdatableColumns)
	if len(columns) == 0 {
		return nil, ErrNothingToUpdate
	}
	if order, ok := columns["order"]; ok {
		delete(columns, "order")
		columns["display_order"] = order
	}

	if _, err := s.GetBannerByID(id); err != nil {
		return nil, err
	}

	columns["updated_at"] = time.Now()
	if err := s.DB.Model(&models.Banner{}).Where("id = ?", id).Updates(columns).Error; err != nil {
		return nil, err
	}
	return s.GetBannerByID(id)
}

// 6 SetBannerStatus 启用或停用横幅
func (s *BannerService) SetBannerStatus(id uint, active bool) (*models.Banner, error) {
	return s.UpdateBanner(id, map[string]interface{}{"is_active": active})
}

// 7 DeleteBanner 删除横幅
func (s *BannerService) DeleteBanner(id uint) error {
	result := s.DB.Delete(&models.Banner{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrBannerNotFound
	}
	return nil
}
