package models

import "time"

// ResidentPreference 住户是否接受访客/服务人员
type ResidentPreference struct {
	UserID           string    `gorm:"primaryKey;type:varchar(36)" json:"user_id"`
	AcceptsVisitors  bool      `gorm:"not null" json:"accepts_visitors"`
	AcceptsPersonnel bool      `gorm:"not null" json:"accepts_personnel"`
	UpdatedAt        time.Time `json:"updated_at"`
}
