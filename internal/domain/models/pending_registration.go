package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RegistrationStatus 注册申请状态
type RegistrationStatus string

const (
	RegistrationPending  RegistrationStatus = "pending"
	RegistrationApproved RegistrationStatus = "approved"
	RegistrationRejected RegistrationStatus = "rejected"
)

// ValidRegistrationStatus 判断注册状态是否合法
func ValidRegistrationStatus(status string) bool {
	switch RegistrationStatus(status) {
	case RegistrationPending, RegistrationApproved, RegistrationRejected:
		return true
	}
	return false
}

// PendingRegistration 待审批的住户注册申请
type PendingRegistration struct {
	ID                string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	FullName          string    `gorm:"type:varchar(255);not null" json:"full_name"`
	UserName          string    `gorm:"type:varchar(100)" json:"user_name"`
	Email             string    `gorm:"type:varchar(255);index;not null" json:"email"`
	Password          string    `gorm:"type:varchar(255)" json:"-"`
	Phone             string    `gorm:"type:varchar(50)" json:"phone"`
	Role              string    `gorm:"type:varchar(20);default:'resident'" json:"role"`
	FraccionamientoID *string   `gorm:"type:varchar(64)" json:"fraccionamiento_id"`
	Street            string    `gorm:"type:varchar(255)" json:"street"`
	HouseNumber       string    `gorm:"type:varchar(50)" json:"house_number"`
	Status            string    `gorm:"type:varchar(20);default:'pending';index" json:"status"`
	RejectionReason   *string   `gorm:"type:text" json:"rejection_reason"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// BeforeCreate 生成 UUID 主键
func (r *PendingRegistration) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
