package services

import (
	"errors"

	"aicp-http-service/internal/domain/models"
	"aicp-http-service/internal/infrastructure/config"
	Logger "aicp-http-service/pkg/logger"
	"aicp-http-service/pkg/utils"

	"gorm.io/gorm"
)

// InterfaceAuthService 定义认证服务接口
type InterfaceAuthService interface {
	Login(email, password string) (*LoginResult, error)
	GetProfile(userID string) (*models.Profile, error)
	RequestPasswordReset(email string) error
}

// LoginUser 登录返回的用户标识
type LoginUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// LoginResult 表示登录结果
type LoginResult struct {
	User    LoginUser       `json:"user"`
	Profile *models.Profile `json:"profile"`
	Token   string          `json:"token,omitempty"`
}

// AuthService 提供登录相关的服务
type AuthService struct {
	DB         *gorm.DB
	Config     *config.Config
	JWTService InterfaceJWTService
}

// NewAuthService 创建一个新的认证服务
func NewAuthService(db *gorm.DB, cfg *config.Config, jwtService InterfaceJWTService) InterfaceAuthService {
	return &AuthService{
		DB:         db,
		Config:     cfg,
		JWTService: jwtService,
	}
}

// 1 Login 使用邮箱和密码登录
func (s *AuthService) Login(email, password string) (*LoginResult, error) {
	var profile models.Profile
	if err := s.DB.Where("email = ?", email).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLoginUserNotFound
		}
		return nil, err
	}

	if !utils.CheckPassword(password, profile.Password) {
		return nil, ErrWrongPassword
	}

	result := &LoginResult{
		User:    LoginUser{ID: profile.ID, Email: profile.Email},
		Profile: &profile,
	}

	// 令牌生成失败不影响登录
	if s.JWTService != nil {
		token, err := s.JWTService.GenerateToken(&profile)
		if err != nil {
			Logger.Warning("生成登录令牌失败: %v", err)
		} else {
			result.Token = token
		}
	}
	return result, nil
}

// 2 GetProfile 根据用户ID获取档案
func (s *AuthService) GetProfile(userID string) (*models.Profile, error) {
	var profile models.Profile
	if err := s.DB.Where("id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// 3 RequestPasswordReset 检查邮箱是否存在，不发送邮件
func (s *AuthService) RequestPasswordReset(email string) error {
	var count int64
	if err := s.DB.Model(&models.Profile{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrLoginUserNotFound
	}
	Logger.Info("收到密码重置请求: %s", email)
	return nil
}
