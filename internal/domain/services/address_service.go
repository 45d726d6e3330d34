package services

import (
	"errors"
	"strings"

	"aicp-http-service/internal/domain/models"

	"gorm.io/gorm"
)

// ResidentAddress 住户地址
type ResidentAddress struct {
	Address     *string `json:"address"`
	Street      string  `json:"street"`
	HouseNumber string  `json:"house_number"`
}

// FormatAddress 拼接街道和门牌号，两者都为空时返回 nil
func FormatAddress(street, houseNumber string) *string {
	parts := make([]string, 0, 2)
	if s := strings.TrimSpace(street); s != "" {
		parts = append(parts, s)
	}
	if h := strings.TrimSpace(houseNumber); h != "" {
		parts = append(parts, h)
	}
	if len(parts) == 0 {
		return nil
	}
	address := strings.Join(parts, ", ")
	return &address
}

// AddressResolver 按住户邮箱查找地址，结果只在单个请求内缓存
type AddressResolver struct {
	db    *gorm.DB
	cache map[string]ResidentAddress
}

// NewAddressResolver 为一次请求创建地址解析器
func NewAddressResolver(db *gorm.DB) *AddressResolver {
	return &AddressResolver{
		db:    db,
		cache: make(map[string]ResidentAddress),
	}
}

// Resolve 依次尝试：最新的已批准注册、最新的任意状态注册、住户档案本身
func (r *AddressResolver) Resolve(email string) (ResidentAddress, error) {
	if email == "" {
		return ResidentAddress{}, nil
	}
	if cached, ok := r.cache[email]; ok {
		return cached, nil
	}

	address, err := r.lookup(email)
	if err != nil {
		return ResidentAddress{}, err
	}
	r.cache[email] = address
	return address, nil
}

func (r *AddressResolver) lookup(email string) (ResidentAddress, error) {
	var registration models.PendingRegistration
	err := r.db.Where("email = ? AND status = ?", email, models.RegistrationApproved).
		Order("created_at DESC").First(&registration).Error
	if err == nil {
		return newResidentAddress(registration.Street, registration.HouseNumber), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return ResidentAddress{}, err
	}

	err = r.db.Where("email = ?", email).Order("created_at DESC").First(&registration).Error
	if err == nil {
		return newResidentAddress(registration.Street, registration.HouseNumber), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return ResidentAddress{}, err
	}

	var profile models.Profile
	err = r.db.Where("email = ?", email).First(&profile).Error
	if err == nil {
		return newResidentAddress(profile.Street, profile.HouseNumber), nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ResidentAddress{}, nil
	}
	return ResidentAddress{}, err
}

func newResidentAddress(street, houseNumber string) ResidentAddress {
	return ResidentAddress{
		Address:     FormatAddress(street, houseNumber),
		Street:      street,
		HouseNumber: houseNumber,
	}
}
