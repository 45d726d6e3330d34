package services

import (
	"errors"
	"fmt"
	"time"

	"aicp-http-service/internal/domain/models"
	"aicp-http-service/internal/infrastructure/config"

	"github.com/golang-jwt/jwt/v4"
)

// InterfaceJWTService 定义JWT服务接口
type InterfaceJWTService interface {
	GenerateToken(profile *models.Profile) (string, error)
	ValidateToken(tokenString string) (*jwt.Token, error)
	ExtractClaims(tokenString string) (*JWTClaims, error)
}

// JWTService 提供JWT相关服务
// 令牌只作为登录结果返回给前端，路由不依赖它做鉴权
type JWTService struct {
	secretKey string
	issuer    string
	ttl       time.Duration
}

// JWTClaims 定义JWT令牌的声明结构
type JWTClaims struct {
	UserID            string  `json:"user_id"`
	Email             string  `json:"email"`
	Role              string  `json:"role"`
	FraccionamientoID *string `json:"fraccionamiento_id,omitempty"`
	jwt.RegisteredClaims
}

// NewJWTService 创建一个新的JWT服务
func NewJWTService(cfg *config.Config) InterfaceJWTService {
	return &JWTService{
		secretKey: cfg.JWTSecretKey,
		issuer:    "aicp-http-service",
		ttl:       24 * time.Hour,
	}
}

// 1 GenerateToken 生成JWT令牌
func (s *JWTService) GenerateToken(profile *models.Profile) (string, error) {
	now := time.Now()
	claims := &JWTClaims{
		UserID:            profile.ID,
		Email:             profile.Email,
		Role:              profile.Role,
		FraccionamientoID: profile.FraccionamientoID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   profile.ID,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    s.issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.secretKey))
}

// 2 ValidateToken 验证JWT令牌
func (s *JWTService) ValidateToken(tokenString string) (*jwt.Token, error) {
	return jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		// 验证签名算法
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.secretKey), nil
	})
}

// 3 ExtractClaims 从令牌中提取声明
func (s *JWTService) ExtractClaims(tokenString string) (*JWTClaims, error) {
	token, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*JWTClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}
