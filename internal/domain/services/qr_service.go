package services

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"aicp-http-service/internal/domain/models"
	"aicp-http-service/internal/infrastructure/config"
)

// QRPayload 二维码中编码的内容，字段顺序即 JSON 输出顺序
type QRPayload struct {
	Type                string  `json:"type"`
	VisitorID           uint    `json:"visitor_id"`
	VisitorName         string  `json:"visitor_name"`
	ResidentName        string  `json:"resident_name"`
	ResidentAddress     string  `json:"resident_address"`
	ResidentStreet      string  `json:"resident_street"`
	ResidentHouseNumber string  `json:"resident_house_number"`
	Timestamp           string  `json:"timestamp"`  // 生成时间
	CreatedAt           string  `json:"created_at"` // 访客登记时间
	ExpiresAt           *string `json:"expires_at"`
}

// VisitorInfo 扫码后返回给门卫的访客信息
type VisitorInfo struct {
	VisitorID           interface{} `json:"visitor_id"`
	VisitorName         interface{} `json:"visitor_name"`
	ResidentName        interface{} `json:"resident_name"`
	ResidentAddress     interface{} `json:"resident_address"`
	ResidentStreet      interface{} `json:"resident_street"`
	ResidentHouseNumber interface{} `json:"resident_house_number"`
	Type                string      `json:"type"`
	Timestamp           interface{} `json:"timestamp"`
	CreatedAt           interface{} `json:"created_at"`
	ExpiresAt           interface{} `json:"expires_at,omitempty"`
	Expired             *bool       `json:"expired,omitempty"`
	Status              string      `json:"status,omitempty"` // 访客当前状态，数据库中不存在时为空
}

// DecodedQR 解码结果
type DecodedQR struct {
	Data        map[string]interface{}
	VisitorInfo VisitorInfo
}

// InterfaceQRService defines the QR service interface
type InterfaceQRService interface {
	BuildPayload(visitor *models.Visitor, residentName string, address ResidentAddress, now time.Time) QRPayload
	Encode(payload QRPayload) (string, error)
	BuildURL(data string) string
	Decode(raw string, now time.Time) (*DecodedQR, error)
}

// QRService 构造二维码图片地址，图片本身由外部 API 生成
type QRService struct {
	baseURL string
	size    string
	ttl     time.Duration
}

// NewQRService 创建一个新的二维码服务
func NewQRService(cfg *config.Config) InterfaceQRService {
	ttl := cfg.OneTimePassTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	baseURL := cfg.QRAPIBaseURL
	if baseURL == "" {
		baseURL = "https://api.qrserver.com/v1/create-qr-code/"
	}
	size := cfg.QRSize
	if size == "" {
		size = "250x250"
	}
	return &QRService{baseURL: baseURL, size: size, ttl: ttl}
}

// 1 BuildPayload 构造二维码内容；created_at 和 expires_at 取访客登记时间，
// 重新生成二维码不会延长一次性通行证
func (s *QRService) BuildPayload(visitor *models.Visitor, residentName string, address ResidentAddress, now time.Time) QRPayload {
	now = now.UTC()
	created := visitor.CreatedAt.UTC()
	if visitor.CreatedAt.IsZero() {
		created = now
	}
	payload := QRPayload{
		Type:                visitor.Type,
		VisitorID:           visitor.ID,
		VisitorName:         visitor.Name,
		ResidentName:        residentName,
		ResidentStreet:      address.Street,
		ResidentHouseNumber: address.HouseNumber,
		Timestamp:           now.Format(time.RFC3339),
		CreatedAt:           created.Format(time.RFC3339),
	}
	if address.Address != nil {
		payload.ResidentAddress = *address.Address
	}
	if models.VisitorType(visitor.Type) == models.VisitorTypeOneTime {
		expires := created.Add(s.ttl).Format(time.RFC3339)
		payload.ExpiresAt = &expires
	}
	return payload
}

// 2 Encode 序列化二维码内容，返回给客户端的 qr_data 与图片中编码的内容一致
func (s *QRService) Encode(payload QRPayload) (string, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// 3 BuildURL 生成外部二维码 API 的图片地址
func (s *QRService) BuildURL(data string) string {
	encoded := strings.ReplaceAll(url.QueryEscape(data), "+", "%20")
	return fmt.Sprintf("%s?size=%s&data=%s", s.baseURL, s.size, encoded)
}

// 4 Decode 解析扫描得到的二维码内容
func (s *QRService) Decode(raw string, now time.Time) (*DecodedQR, error) {
	var data map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &data); err != nil || data == nil {
		return nil, ErrInvalidQRData
	}

	qrType, _ := data["type"].(string)
	if !models.VisitorType(qrType).SupportsQR() {
		return nil, ErrUnsupportedQRType
	}

	info := VisitorInfo{
		VisitorID:           data["visitor_id"],
		VisitorName:         data["visitor_name"],
		ResidentName:        data["resident_name"],
		ResidentAddress:     data["resident_address"],
		ResidentStreet:      data["resident_street"],
		ResidentHouseNumber: data["resident_house_number"],
		Type:                qrType,
		Timestamp:           data["timestamp"],
		CreatedAt:           data["created_at"],
	}

	if models.VisitorType(qrType) == models.VisitorTypeOneTime {
		info.ExpiresAt = data["expires_at"]
		expired := s.expired(data, now)
		info.Expired = &expired
	}

	return &DecodedQR{Data: data, VisitorInfo: info}, nil
}

// expired 优先使用 expires_at，缺失时按 created_at 加有效期计算
func (s *QRService) expired(data map[string]interface{}, now time.Time) bool {
	if raw, ok := data["expires_at"].(string); ok && raw != "" {
		if expiresAt, err := time.Parse(time.RFC3339, raw); err == nil {
			return now.After(expiresAt)
		}
	}
	if raw, ok := data["created_at"].(string); ok && raw != "" {
		if createdAt, err := time.Parse(time.RFC3339, raw); err == nil {
			return now.After(createdAt.Add(s.ttl))
		}
	}
	return false
}

// VisitorIDFromQR 取出二维码中的访客ID，兼容数字和字符串
func VisitorIDFromQR(data map[string]interface{}) (uint, bool) {
	switch v := data["visitor_id"].(type) {
	case float64:
		if v > 0 {
			return uint(v), true
		}
	case string:
		if id, err := strconv.ParseUint(v, 10, 64); err == nil && id > 0 {
			return uint(id), true
		}
	}
	return 0, false
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
