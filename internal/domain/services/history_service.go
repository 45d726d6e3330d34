package services

import (
	"fmt"

	"aicp-http-service/internal/domain/models"
	"aicp-http-service/internal/infrastructure/config"

	"github.com/supabase-community/postgrest-go"
	"github.com/supabase-community/supabase-go"
	"gorm.io/gorm"
)

// InterfaceHistoryService defines the access history service interface
type InterfaceHistoryService interface {
	// GetHistory 按住户或小区过滤，两者都为空时返回全部，最新的在前
	GetHistory(userID, fraccionamientoID string) ([]models.HouseAccess, error)
	Backend() string
}

// HistoryService 从本地数据库读取进出记录
type HistoryService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewHistoryService 根据配置选择 Supabase 或本地数据库
func NewHistoryService(db *gorm.DB, cfg *config.Config) (InterfaceHistoryService, error) {
	if cfg.SupabaseEnabled() {
		client, err := supabase.NewClient(cfg.SupabaseURL, cfg.SupabaseKey, &supabase.ClientOptions{})
		if err != nil {
			return nil, fmt.Errorf("初始化Supabase客户端失败: %w", err)
		}
		return NewSupabaseHistoryService(client), nil
	}
	return &HistoryService{DB: db, Config: cfg}, nil
}

// 1 GetHistory 查询 house_access 表
func (s *HistoryService) GetHistory(userID, fraccionamientoID string) ([]models.HouseAccess, error) {
	query := s.DB.Model(&models.HouseAccess{})
	if userID != "" {
		query = query.Where("user_id = ?", userID)
	} else if fraccionamientoID != "" {
		query = query.Where("fraccionamiento_id = ?", fraccionamientoID)
	}

	rows := []models.HouseAccess{}
	if err := query.Order("created_at DESC").Order("id DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// 2 Backend 返回数据来源
func (s *HistoryService) Backend() string {
	return "database"
}

// SupabaseHistoryService 通过 Supabase REST 接口读取 house_access 表
type SupabaseHistoryService struct {
	client *supabase.Client
}

// NewSupabaseHistoryService 创建基于 Supabase 的历史服务
func NewSupabaseHistoryService(client *supabase.Client) InterfaceHistoryService {
	return &SupabaseHistoryService{client: client}
}

// 1 GetHistory 查询 house_access 表
func (s *SupabaseHistoryService) GetHistory(userID, fraccionamientoID string) ([]models.HouseAccess, error) {
	query := s.client.From(models.HouseAccess{}.TableName()).Select("*", "", false)
	if userID != "" {
		query = query.Eq("user_id", userID)
	} else if fraccionamientoID != "" {
		query = query.Eq("fraccionamiento_id", fraccionamientoID)
	}

	rows := []models.HouseAccess{}
	if _, err := query.Order("created_at", &postgrest.OrderOpts{Ascending: false}).ExecuteTo(&rows); err != nil {
		return nil, fmt.Errorf("查询Supabase访问历史失败: %w", err)
	}
	return rows, nil
}

// 2 Backend 返回数据来源
func (s *SupabaseHistoryService) Backend() string {
	return "supabase"
}
