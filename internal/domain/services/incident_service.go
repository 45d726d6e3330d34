package services

import (
	"errors"
	"strings"
	"time"

	"aicp-http-service/internal/domain/models"
	"aicp-http-service/internal/infrastructure/config"
	"aicp-http-service/pkg/utils"

	"gorm.io/gorm"
)

// InterfaceIncidentService defines the incident service interface
type InterfaceIncidentService interface {
	GetIncidents(filter IncidentFilter) ([]models.Incident, error)
	GetIncidentByID(id string) (*models.Incident, error)
	CreateIncident(incident *models.Incident) error
	UpdateIncident(id string, updates map[string]interface{}) (*models.Incident, error)
	DeleteIncident(id string) error
	CountByType(filter IncidentFilter) ([]IncidentTypeCount, error)
	GetStats(fraccionamientoID string) (*IncidentStats, error)
}

// IncidentFilter 事件查询条件
type IncidentFilter struct {
	Status            string
	IncidentType      string
	Severity          string
	FraccionamientoID string
	StartDate         string
	EndDate           string
}

// IncidentTypeCount 按类型统计的事件数量
type IncidentTypeCount struct {
	IncidentType string `json:"incident_type"`
	Count        int64  `json:"count"`
}

// IncidentStats 事件统计
type IncidentStats struct {
	Total      int64            `json:"total"`
	ByStatus   map[string]int64 `json:"by_status"`
	BySeverity map[string]int64 `json:"by_severity"`
	ByType     map[string]int64 `json:"by_type"`
}

// 允许通过接口更新的事件字段
var incidentUpdatableColumns = map[string]bool{
	"incident_type":    true,
	"description":      true,
	"location":         true,
	"severity":         true,
	"status":           true,
	"resolved_at":      true,
	"resolution_notes": true,
}

// IncidentService 提供事件相关的服务
type IncidentService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewIncidentService 创建一个新的事件服务
func NewIncidentService(db *gorm.DB, cfg *config.Config) InterfaceIncidentService {
	return &IncidentService{
		DB:     db,
		Config: cfg,
	}
}

// applyIncidentFilter 拼接公共过滤条件，日期支持 RFC3339 和 YYYY-MM-DD
func applyIncidentFilter(query *gorm.DB, filter IncidentFilter) (*gorm.DB, error) {
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.IncidentType != "" {
		query = query.Where("incident_type = ?", filter.IncidentType)
	}
	if filter.Severity != "" {
		query = query.Where("severity = ?", filter.Severity)
	}
	if filter.FraccionamientoID != "" {
		query = query.Where("fraccionamiento_id = ?", filter.FraccionamientoID)
	}
	if filter.StartDate != "" {
		start, err := utils.ParseDate(filter.StartDate)
		if err != nil {
			return nil, ErrInvalidDate
		}
		query = query.Where("reported_at >= ?", start)
	}
	if filter.EndDate != "" {
		end, err := utils.ParseDate(filter.EndDate)
		if err != nil {
			return nil, ErrInvalidDate
		}
		query = query.Where("reported_at <= ?", utils.EndOfDay(filter.EndDate, end))
	}
	return query, nil
}

// 1 GetIncidents 获取事件列表，按上报时间倒序
func (s *IncidentService) GetIncidents(filter IncidentFilter) ([]models.Incident, error) {
	query, err := applyIncidentFilter(s.DB.Model(&models.Incident{}), filter)
	if err != nil {
		return nil, err
	}

	incidents := []models.Incident{}
	if err := query.Order("reported_at DESC").Find(&incidents).Error; err != nil {
		return nil, err
	}
	return incidents, nil
}

// 2 GetIncidentByID 根据ID获取事件
func (s *IncidentService) GetIncidentByID(id string) (*models.Incident, error) {
	var incident models.Incident
	if err := s.DB.Where("id = ?", id).First(&incident).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIncidentNotFound
		}
		return nil, err
	}
	return &incident, nil
}

// 3 CreateIncident 创建事件
func (s *IncidentService) CreateIncident(incident *models.Incident) error {
	incident.IncidentType = strings.TrimSpace(incident.IncidentType)
	if incident.IncidentType == "" {
		return ErrMissingField
	}
	if incident.Severity == "" {
		incident.Severity = string(models.SeverityMedium)
	}
	if !models.ValidSeverity(incident.Severity) {
		return ErrInvalidSeverity
	}
	if incident.Status == "" {
		incident.Status = string(models.IncidentReported)
	}
	if !models.ValidIncidentStatus(incident.Status) {
		return ErrInvalidStatus
	}

	incident.ID = ""
	return s.DB.Create(incident).Error
}

// 4 UpdateIncident 只更新白名单中的字段
func (s *IncidentService) UpdateIncident(id string, updates map[string]interface{}) (*models.Incident, error) {
	columns := FilterColumns(updates, incidentUpdatableColumns)
	if len(columns) == 0 {
		return nil, ErrNothingToUpdate
	}

	if v, ok := columns["severity"]; ok {
		if sev, isString := v.(string); !isString || !models.ValidSeverity(sev) {
			return nil, ErrInvalidSeverity
		}
	}
	if v, ok := columns["status"]; ok {
		if st, isString := v.(string); !isString || !models.ValidIncidentStatus(st) {
			return nil, ErrInvalidStatus
		}
	}
	if v, ok := columns["resolved_at"]; ok {
		switch raw := v.(type) {
		case nil:
		case string:
			if raw == "" {
				columns["resolved_at"] = nil
				break
			}
			resolvedAt, err := utils.ParseDate(raw)
			if err != nil {
				return nil, ErrInvalidDate
			}
			columns["resolved_at"] = resolvedAt
		default:
			return nil, ErrInvalidDate
		}
	}

	if _, err := s.GetIncidentByID(id); err != nil {
		return nil, err
	}

	columns["updated_at"] = time.Now()
	if err := s.DB.Model(&models.Incident{}).Where("id = ?", id).Updates(columns).Error; err != nil {
		return nil, err
	}
	return s.GetIncidentByID(id)
}

// 5 DeleteIncident 删除事件
func (s *IncidentService) DeleteIncident(id string) error {
	result := s.DB.Where("id = ?", id).Delete(&models.Incident{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrIncidentNotFound
	}
	return nil
}

// 6 CountByType 按事件类型分组计数，数量多的在前
func (s *IncidentService) CountByType(filter IncidentFilter) ([]IncidentTypeCount, error) {
	scoped := IncidentFilter{
		FraccionamientoID: filter.FraccionamientoID,
		StartDate:         filter.StartDate,
		EndDate:           filter.EndDate,
	}
	query, err := applyIncidentFilter(s.DB.Model(&models.Incident{}), scoped)
	if err != nil {
		return nil, err
	}

	counts := []IncidentTypeCount{}
	err = query.Select("incident_type, COUNT(*) AS count").
		Group("incident_type").
		Order("count DESC").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	return counts, nil
}

// 7 GetStats 按状态、严重程度和类型统计事件
func (s *IncidentService) GetStats(fraccionamientoID string) (*IncidentStats, error) {
	query := s.DB.Model(&models.Incident{})
	if fraccionamientoID != "" {
		query = query.Where("fraccionamiento_id = ?", fraccionamientoID)
	}

	var rows []models.Incident
	if err := query.Select("status", "severity", "incident_type").Find(&rows).Error; err != nil {
		return nil, err
	}

	stats := &IncidentStats{
		Total:      int64(len(rows)),
		ByStatus:   map[string]int64{},
		BySeverity: map[string]int64{},
		ByType:     map[string]int64{},
	}
	for _, row := range rows {
		stats.ByStatus[row.Status]++
		stats.BySeverity[row.Severity]++
		stats.ByType[row.IncidentType]++
	}
	return stats, nil
}
