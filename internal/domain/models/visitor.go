package models

import "time"

// VisitorType 访客类型
type VisitorType string

const (
	VisitorTypeVisitor  VisitorType = "visitor"
	VisitorTypeOneTime  VisitorType = "one-time"
	VisitorTypeEvent    VisitorType = "event"
	VisitorTypeProvider VisitorType = "provider"
)

// VisitorStatus 访客状态
type VisitorStatus string

const (
	VisitorStatusActive   VisitorStatus = "active"
	VisitorStatusInside   VisitorStatus = "dentro"
	VisitorStatusLeft     VisitorStatus = "salio"
	VisitorStatusInactive VisitorStatus = "inactive"
)

// SupportsQR 只有普通访客和一次性访客生成二维码
func (t VisitorType) SupportsQR() bool {
	return t == VisitorTypeVisitor || t == VisitorTypeOneTime
}

// Visitor 住户登记的访客
type Visitor struct {
	BaseModel
	Name           string     `gorm:"type:varchar(255);not null" json:"name"`
	Email          string     `gorm:"type:varchar(255)" json:"email"`
	Phone          string     `gorm:"type:varchar(50)" json:"phone"`
	Type           string     `gorm:"type:varchar(20);default:'visitor';index" json:"type"`
	Status         string     `gorm:"type:varchar(20);default:'active';index" json:"status"`
	CreatedBy      *string    `gorm:"type:varchar(36);index" json:"created_by"` // 登记该访客的住户档案ID
	CodigoQR       *string    `gorm:"type:text" json:"codigo_qr"`
	EntryDate      *time.Time `json:"entry_date"`
	EventDate      *string    `gorm:"type:varchar(20)" json:"event_date"`
	EventTime      *string    `gorm:"type:varchar(20)" json:"event_time"`
	NumberOfGuests *int       `json:"number_of_guests"`
	ServiceDate    *string    `gorm:"type:varchar(20)" json:"service_date"`
}
