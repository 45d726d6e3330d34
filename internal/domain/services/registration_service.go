package services

import (
	"errors"
	"strings"
	"time"

	"aicp-http-service/internal/domain/models"
	"aicp-http-service/internal/infrastructure/config"
	"aicp-http-service/internal/infrastructure/metrics"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// InterfaceRegistrationService defines the registration service interface
type InterfaceRegistrationService interface {
	GetPendingRegistrations() ([]models.PendingRegistration, error)
	GetStats() (*RegistrationStats, error)
	GetRegistrationByID(id string) (*models.PendingRegistration, error)
	CreateRegistration(registration *models.PendingRegistration) error
	ApproveRegistration(id string) (*ApprovalResult, error)
	RejectRegistration(id, reason string) (*models.PendingRegistration, error)
}

// RegistrationStats 注册申请统计
type RegistrationStats struct {
	Total    int64 `json:"total"`
	Pending  int64 `json:"pending"`
	Approved int64 `json:"approved"`
	Rejected int64 `json:"rejected"`
}

// ApprovalResult 审批通过后的注册申请和新建档案
type ApprovalResult struct {
	Registration *models.PendingRegistration `json:"registration"`
	Profile      *models.Profile             `json:"profile"`
}

// RegistrationService 提供注册申请相关的服务
type RegistrationService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewRegistrationService 创建一个新的注册申请服务
func NewRegistrationService(db *gorm.DB, cfg *config.Config) InterfaceRegistrationService {
	return &RegistrationService{
		DB:     db,
		Config: cfg,
	}
}

// 1 GetPendingRegistrations 获取所有待审批的注册申请
func (s *RegistrationService) GetPendingRegistrations() ([]models.PendingRegistration, error) {
	registrations := []models.PendingRegistration{}
	err := s.DB.Where("status = ?", models.RegistrationPending).
		Order("created_at DESC").
		Find(&registrations).Error
	if err != nil {
		return nil, err
	}
	return registrations, nil
}

// 2 GetStats 按状态统计注册申请
func (s *RegistrationService) GetStats() (*RegistrationStats, error) {
	var groups []groupCount
	err := s.DB.Model(&models.PendingRegistration{}).
		Select("status AS label, COUNT(*) AS total").
		Group("status").
		Scan(&groups).Error
	if err != nil {
		return nil, err
	}

	stats := &RegistrationStats{}
	for _, g := range groups {
		stats.Total += g.Total
		switch models.RegistrationStatus(g.Label) {
		case models.RegistrationPending:
			stats.Pending += g.Total
		case models.RegistrationApproved:
			stats.Approved += g.Total
		case models.RegistrationRejected:
			stats.Rejected += g.Total
		}
	}
	return stats, nil
}

// 3 GetRegistrationByID 根据ID获取注册申请
func (s *RegistrationService) GetRegistrationByID(id string) (*models.PendingRegistration, error) {
	var registration models.PendingRegistration
	if err := s.DB.Where("id = ?", id).First(&registration).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRegistrationNotFound
		}
		return nil, err
	}
	return &registration, nil
}

// 4 CreateRegistration 创建注册申请
func (s *RegistrationService) CreateRegistration(registration *models.PendingRegistration) error {
	registration.FullName = strings.TrimSpace(registration.FullName)
	registration.Email = strings.TrimSpace(registration.Email)
	if registration.FullName == "" || registration.Email == "" || registration.Password == "" {
		return ErrMissingField
	}

	if registration.Role == "" {
		registration.Role = string(models.RoleResident)
	}
	if !models.ValidRole(registration.Role) {
		return ErrInvalidRole
	}
	if registration.Status == "" {
		registration.Status = string(models.RegistrationPending)
	}
	if !models.ValidRegistrationStatus(registration.Status) {
		return ErrInvalidStatus
	}

	var count int64
	if err := s.DB.Model(&models.PendingRegistration{}).Where("email = ?", registration.Email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrRegistrationExists
	}

	registration.ID = ""
	return s.DB.Create(registration).Error
}

// 5 ApproveRegistration 在一个事务中创建档案并将申请标记为已批准
func (s *RegistrationService) ApproveRegistration(id string) (*ApprovalResult, error) {
	var result ApprovalResult
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var registration models.PendingRegistration
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND status = ?", id, models.RegistrationPending).
			First(&registration).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRegistrationNotFound
			}
			return err
		}

		var count int64
		if err := tx.Model(&models.Profile{}).Where("email = ?", registration.Email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrEmailTaken
		}

		role := registration.Role
		if role == "" {
			role = string(models.RoleResident)
		}
		profile := models.Profile{
			Name:              registration.FullName,
			UserName:          registration.UserName,
			Email:             registration.Email,
			Password:          registration.Password,
			Phone:             registration.Phone,
			Role:              role,
			FraccionamientoID: registration.FraccionamientoID,
			Street:            registration.Street,
			HouseNumber:       registration.HouseNumber,
			Status:            "active",
		}
		if err := tx.Create(&profile).Error; err != nil {
			return err
		}

		now := time.Now()
		if err := tx.Model(&models.PendingRegistration{}).Where("id = ?", id).
			Updates(map[string]interface{}{"status": string(models.RegistrationApproved), "updated_at": now}).Error; err != nil {
			return err
		}
		registration.Status = string(models.RegistrationApproved)
		registration.UpdatedAt = now

		result.Registration = &registration
		result.Profile = &profile
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.RegistrationsProcessed.WithLabelValues("approved").Inc()
	return &result, nil
}

// 6 RejectRegistration 拒绝待审批的注册申请
func (s *RegistrationService) RejectRegistration(id, reason string) (*models.PendingRegistration, error) {
	columns := map[string]interface{}{
		"status":     string(models.RegistrationRejected),
		"updated_at": time.Now(),
	}
	if reason = strings.TrimSpace(reason); reason != "" {
		columns["rejection_reason"] = reason
	}

	result := s.DB.Model(&models.PendingRegistration{}).
		Where("id = ? AND status = ?", id, models.RegistrationPending).
		Updates(columns)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrRegistrationNotFound
	}

	metrics.RegistrationsProcessed.WithLabelValues("rejected").Inc()
	return s.GetRegistrationByID(id)
}
