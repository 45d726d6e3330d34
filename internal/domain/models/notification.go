package models

// Notification 用户通知
type Notification struct {
	BaseModel
	UserID  string `gorm:"type:varchar(36);index;not null" json:"user_id"`
	Title   string `gorm:"type:varchar(255);not null" json:"title"`
	Message string `gorm:"type:text" json:"message"`
	Type    string `gorm:"type:varchar(50);default:'info'" json:"type"`
	Read    bool   `gorm:"default:false" json:"read"`
}
