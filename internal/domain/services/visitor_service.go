package services

import (
	"errors"
	"strings"
	"time"

	"aicp-http-service/internal/domain/models"
	"aicp-http-service/internal/infrastructure/config"
	"aicp-http-service/internal/infrastructure/metrics"
	Logger "aicp-http-service/pkg/logger"
	"aicp-http-service/pkg/utils"

	"gorm.io/gorm"
)

// InterfaceVisitorService defines the visitor service interface
type InterfaceVisitorService interface {
	GetVisitors(filter VisitorFilter) ([]VisitorView, error)
	GetStats() (*VisitorStats, error)
	GetVisitorByID(id uint) (*models.Visitor, error)
	CreateVisitor(visitor *models.Visitor) (*models.Visitor, *QRResult, error)
	UpdateVisitor(id uint, updates map[string]interface{}) (*models.Visitor, error)
	DeleteVisitor(id uint) error
	GenerateQR(id uint) (*QRResult, error)
	DecodeQR(raw string) (*DecodedQR, error)
	RegisterEntry(id uint, guardID string) (*models.Visitor, error)
	RegisterExit(id uint, guardID string) (*models.Visitor, error)
}

// VisitorFilter 访客列表过滤条件，多个条件同时生效
type VisitorFilter struct {
	UserID string
	Status string
	Type   string
	Search string
}

// VisitorView 访客列表行，附带登记住户和地址
type VisitorView struct {
	models.Visitor
	ResidentEmail *string `json:"resident_email"`
	ResidentName  *string `json:"resident_name"`
	Address       *string `gorm:"-" json:"address"`
	Street        *string `gorm:"-" json:"street"`
	HouseNumber   *string `gorm:"-" json:"house_number"`
}

// VisitorStats 访客统计
type VisitorStats struct {
	Total    int64            `json:"total"`
	ByStatus map[string]int64 `json:"by_status"`
	ByType   map[string]int64 `json:"by_type"`
}

// QRResult 生成二维码的结果，Data 为编码进二维码的 JSON 字符串
type QRResult struct {
	Visitor *models.Visitor `json:"visitor"`
	URL     string          `json:"qr_code_url"`
	Data    string          `json:"qr_data"`
	Payload QRPayload       `json:"-"`
}

// 允许通过接口更新的访客字段
var visitorUpdatableColumns = map[string]bool{
	"name":             true,
	"email":            true,
	"phone":            true,
	"type":             true,
	"status":           true,
	"codigo_qr":        true,
	"entry_date":       true,
	"event_date":       true,
	"event_time":       true,
	"number_of_guests": true,
	"service_date":     true,
}

// VisitorService 提供访客相关的服务
type VisitorService struct {
	DB        *gorm.DB
	Config    *config.Config
	QRService InterfaceQRService
	Ledger    InterfacePassLedger
	now       func() time.Time
}

// NewVisitorService 创建一个新的访客服务
func NewVisitorService(db *gorm.DB, cfg *config.Config, qrService InterfaceQRService, ledger InterfacePassLedger) InterfaceVisitorService {
	if ledger == nil {
		ledger = NewDBPassLedger(db)
	}
	return &VisitorService{
		DB:        db,
		Config:    cfg,
		QRService: qrService,
		Ledger:    ledger,
		now:       time.Now,
	}
}

// 1 GetVisitors 获取访客列表，按创建时间倒序
func (s *VisitorService) GetVisitors(filter VisitorFilter) ([]VisitorView, error) {
	query := s.DB.Table("visitors").
		Select("visitors.*, profiles.email AS resident_email, profiles.name AS resident_name").
		Joins("LEFT JOIN profiles ON profiles.id = visitors.created_by")

	if filter.UserID != "" {
		query = query.Where("visitors.created_by = ?", filter.UserID)
	}
	if filter.Status != "" {
		query = query.Where("visitors.status = ?", filter.Status)
	}
	if filter.Type != "" {
		query = query.Where("visitors.type = ?", filter.Type)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		query = query.Where("LOWER(visitors.name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}

	rows := []VisitorView{}
	if err := query.Order("visitors.created_at DESC").Scan(&rows).Error; err != nil {
		return nil, err
	}

	resolver := NewAddressResolver(s.DB)
	for i := range rows {
		if rows[i].ResidentEmail == nil {
			continue
		}
		address, err := resolver.Resolve(*rows[i].ResidentEmail)
		if err != nil {
			return nil, err
		}
		rows[i].Address = address.Address
		rows[i].Street = optionalString(address.Street)
		rows[i].HouseNumber = optionalString(address.HouseNumber)
	}
	return rows, nil
}

// 2 GetStats 按状态和类型统计访客
func (s *VisitorService) GetStats() (*VisitorStats, error) {
	stats := &VisitorStats{
		ByStatus: map[string]int64{},
		ByType:   map[string]int64{},
	}

	if err := s.DB.Model(&models.Visitor{}).Count(&stats.Total).Error; err != nil {
		return nil, err
	}

	var groups []groupCount
	if err := s.DB.Model(&models.Visitor{}).Select("status AS label, COUNT(*) AS total").Group("status").Scan(&groups).Error; err != nil {
		return nil, err
	}
	for _, g := range groups {
		stats.ByStatus[unknownIfEmpty(g.Label)] += g.Total
	}

	groups = nil
	if err := s.DB.Model(&models.Visitor{}).Select("type AS label, COUNT(*) AS total").Group("type").Scan(&groups).Error; err != nil {
		return nil, err
	}
	for _, g := range groups {
		stats.ByType[unknownIfEmpty(g.Label)] += g.Total
	}
	return stats, nil
}

// 3 GetVisitorByID 根据ID获取访客
func (s *VisitorService) GetVisitorByID(id uint) (*models.Visitor, error) {
	var visitor models.Visitor
	if err := s.DB.First(&visitor, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVisitorNotFound
		}
		return nil, err
	}
	return &visitor, nil
}

// 4 CreateVisitor 创建访客，一次性访客立即生成二维码
func (s *VisitorService) CreateVisitor(visitor *models.Visitor) (*models.Visitor, *QRResult, error) {
	if strings.TrimSpace(visitor.Name) == "" {
		return nil, nil, ErrMissingField
	}
	visitor.ID = 0
	if visitor.Type == "" {
		visitor.Type = string(models.VisitorTypeVisitor)
	}
	if visitor.Status == "" {
		visitor.Status = string(models.VisitorStatusActive)
	}

	if err := s.DB.Create(visitor).Error; err != nil {
		return nil, nil, err
	}

	if models.VisitorType(visitor.Type) != models.VisitorTypeOneTime {
		return visitor, nil, nil
	}

	// 二维码生成失败不影响访客创建
	qr, err := s.GenerateQR(visitor.ID)
	if err != nil {
		Logger.Error("为一次性访客 %d 生成二维码失败: %v", visitor.ID, err)
		return visitor, nil, nil
	}
	return qr.Visitor, qr, nil
}

// 5 UpdateVisitor 只更新白名单中的字段
func (s *VisitorService) UpdateVisitor(id uint, updates map[string]interface{}) (*models.Visitor, error) {
	columns := FilterColumns(updates, visitorUpdatableColumns)
	if len(columns) == 0 {
		return nil, ErrNothingToUpdate
	}
	if raw, ok := columns["entry_date"].(string); ok {
		if raw == "" {
			columns["entry_date"] = nil
		} else {
			entryDate, err := utils.ParseDate(raw)
			if err != nil {
				return nil, ErrInvalidDate
			}
			columns["entry_date"] = entryDate
		}
	}

	if _, err := s.GetVisitorByID(id); err != nil {
		return nil, err
	}

	columns["updated_at"] = s.now()
	if err := s.DB.Model(&models.Visitor{}).Where("id = ?", id).Updates(columns).Error; err != nil {
		return nil, err
	}
	return s.GetVisitorByID(id)
}

// 6 DeleteVisitor 删除访客
func (s *VisitorService) DeleteVisitor(id uint) error {
	result := s.DB.Delete(&models.Visitor{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrVisitorNotFound
	}
	return nil
}

// 7 GenerateQR 生成二维码地址并保存到 codigo_qr
func (s *VisitorService) GenerateQR(id uint) (*QRResult, error) {
	visitor, err := s.GetVisitorByID(id)
	if err != nil {
		return nil, err
	}
	if !models.VisitorType(visitor.Type).SupportsQR() {
		return nil, ErrVisitorTypeNoQR
	}

	var residentName string
	var address ResidentAddress
	if visitor.CreatedBy != nil && *visitor.CreatedBy != "" {
		var resident models.Profile
		err := s.DB.Where("id = ?", *visitor.CreatedBy).First(&resident).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if err == nil {
			residentName = resident.Name
			address, err = NewAddressResolver(s.DB).Resolve(resident.Email)
			if err != nil {
				return nil, err
			}
		}
	}

	payload := s.QRService.BuildPayload(visitor, residentName, address, s.now())
	data, err := s.QRService.Encode(payload)
	if err != nil {
		return nil, err
	}
	qrURL := s.QRService.BuildURL(data)

	if err := s.DB.Model(&models.Visitor{}).Where("id = ?", id).
		Updates(map[string]interface{}{"codigo_qr": qrURL, "updated_at": s.now()}).Error; err != nil {
		return nil, err
	}
	visitor.CodigoQR = &qrURL
	metrics.QRCodesGenerated.WithLabelValues(visitor.Type).Inc()

	return &QRResult{Visitor: visitor, URL: qrURL, Data: data, Payload: payload}, nil
}

// 8 DecodeQR 解析二维码内容，并附带访客当前状态
func (s *VisitorService) DecodeQR(raw string) (*DecodedQR, error) {
	decoded, err := s.QRService.Decode(raw, s.now())
	if err != nil {
		return nil, err
	}
	id, ok := VisitorIDFromQR(decoded.Data)
	if !ok {
		return decoded, nil
	}
	var visitor models.Visitor
	err = s.DB.Select("id", "status").Where("id = ?", id).First(&visitor).Error
	if err == nil {
		decoded.VisitorInfo.Status = visitor.Status
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return decoded, nil
}

// 9 RegisterEntry 门卫登记访客入场；一次性通行证只能使用一次且在有效期内
func (s *VisitorService) RegisterEntry(id uint, guardID string) (*models.Visitor, error) {
	visitor, err := s.GetVisitorByID(id)
	if err != nil {
		return nil, err
	}

	if models.VisitorType(visitor.Type) == models.VisitorTypeOneTime {
		expiresAt := visitor.CreatedAt.Add(s.Config.OneTimePassTTL)
		remaining := expiresAt.Sub(s.now())
		if remaining <= 0 {
			metrics.VisitorAccess.WithLabelValues(string(models.AccessTypeEntry), "expired").Inc()
			return nil, ErrPassExpired
		}
		fresh, err := s.Ledger.MarkUsed(visitor.ID, remaining)
		if err != nil {
			return nil, err
		}
		if !fresh {
			metrics.VisitorAccess.WithLabelValues(string(models.AccessTypeEntry), "reused").Inc()
			return nil, ErrPassAlreadyUsed
		}
	}

	entryDate := s.now()
	err = s.recordAccess(visitor, models.AccessTypeEntry, guardID, map[string]interface{}{
		"status":     string(models.VisitorStatusInside),
		"entry_date": entryDate,
		"updated_at": entryDate,
	})
	if err != nil {
		if models.VisitorType(visitor.Type) == models.VisitorTypeOneTime {
			if releaseErr := s.Ledger.Release(visitor.ID); releaseErr != nil {
				Logger.Error("释放一次性通行证 %d 失败: %v", visitor.ID, releaseErr)
			}
		}
		return nil, err
	}
	metrics.VisitorAccess.WithLabelValues(string(models.AccessTypeEntry), "ok").Inc()
	return s.GetVisitorByID(id)
}

// 10 RegisterExit 门卫登记访客离场
func (s *VisitorService) RegisterExit(id uint, guardID string) (*models.Visitor, error) {
	visitor, err := s.GetVisitorByID(id)
	if err != nil {
		return nil, err
	}

	err = s.recordAccess(visitor, models.AccessTypeExit, guardID, map[string]interface{}{
		"status":     string(models.VisitorStatusLeft),
		"updated_at": s.now(),
	})
	if err != nil {
		return nil, err
	}
	metrics.VisitorAccess.WithLabelValues(string(models.AccessTypeExit), "ok").Inc()
	return s.GetVisitorByID(id)
}

// recordAccess 在同一事务中更新访客状态并写入进出记录
func (s *VisitorService) recordAccess(visitor *models.Visitor, accessType models.AccessType, guardID string, columns map[string]interface{}) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		access := models.HouseAccess{
			UserID:      visitor.CreatedBy,
			VisitorID:   visitor.ID,
			VisitorName: visitor.Name,
			VisitorType: visitor.Type,
			AccessType:  string(accessType),
			GuardID:     optionalString(guardID),
		}
		if visitor.CreatedBy != nil {
			var resident models.Profile
			err := tx.Select("id", "fraccionamiento_id").Where("id = ?", *visitor.CreatedBy).First(&resident).Error
			if err == nil {
				access.FraccionamientoID = resident.FraccionamientoID
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
		}

		if err := tx.Model(&models.Visitor{}).Where("id = ?", visitor.ID).Updates(columns).Error; err != nil {
			return err
		}
		return tx.Create(&access).Error
	})
}

// groupCount GROUP BY 统计行
type groupCount struct {
	Label string
	Total int64
}

func unknownIfEmpty(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
