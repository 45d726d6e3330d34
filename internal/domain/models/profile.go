package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role 用户角色
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleGuard    Role = "guard"
	RoleResident Role = "resident"
	RoleVisitor  Role = "visitor"
)

// ValidRole 判断角色是否合法
func ValidRole(role string) bool {
	switch Role(role) {
	case RoleAdmin, RoleGuard, RoleResident, RoleVisitor:
		return true
	}
	return false
}

// Profile 用户档案（住户、门卫、管理员）
type Profile struct {
	ID                string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Name              string    `gorm:"type:varchar(255)" json:"name"`
	UserName          string    `gorm:"type:varchar(100)" json:"user_name"`
	Email             string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password          string    `gorm:"type:varchar(255)" json:"-"`
	Phone             string    `gorm:"type:varchar(50)" json:"phone"`
	Role              string    `gorm:"type:varchar(20);default:'resident'" json:"role"`
	FraccionamientoID *string   `gorm:"type:varchar(64);index" json:"fraccionamiento_id"`
	Street            string    `gorm:"type:varchar(255)" json:"street"`
	HouseNumber       string    `gorm:"type:varchar(50)" json:"house_number"`
	Status            string    `gorm:"type:varchar(20);default:'active'" json:"status"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// BeforeCreate 生成 UUID 主键
func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
