package models

import "time"

// AccessType 进出类型
type AccessType string

const (
	AccessTypeEntry AccessType = "entry"
	AccessTypeExit  AccessType = "exit"
)

// HouseAccess 访客进出记录，访问历史页面读取该表
type HouseAccess struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	UserID            *string   `gorm:"type:varchar(36);index" json:"user_id"` // 被访住户
	VisitorID         uint      `gorm:"index" json:"visitor_id"`
	VisitorName       string    `gorm:"type:varchar(255)" json:"visitor_name"`
	VisitorType       string    `gorm:"type:varchar(20)" json:"visitor_type"`
	AccessType        string    `gorm:"type:varchar(10);not null" json:"access_type"`
	GuardID           *string   `gorm:"type:varchar(36)" json:"guard_id"`
	FraccionamientoID *string   `gorm:"type:varchar(64);index" json:"fraccionamiento_id"`
	CreatedAt         time.Time `gorm:"index" json:"created_at"`
}

// TableName 与历史数据表名保持一致
func (HouseAccess) TableName() string {
	return "house_access"
}
