package models

import "time"

// ChatType 旧版聊天频道
type ChatType string

const (
	ChatTypeAdministration ChatType = "administration"
	ChatTypeSecurity       ChatType = "security"
)

// ChatMessage 聊天消息，同一张表中并存两种记录格式：
// 新格式使用 sender_id/receiver_id，旧格式使用 user_id/chat_type
type ChatMessage struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	FraccionamientoID *string   `gorm:"type:varchar(64);index" json:"fraccionamiento_id"`
	SenderID          *string   `gorm:"type:varchar(36);index" json:"sender_id"`
	ReceiverID        *string   `gorm:"type:varchar(36);index" json:"receiver_id"`
	UserID            *string   `gorm:"type:varchar(36);index" json:"user_id"`
	ChatType          *string   `gorm:"type:varchar(30)" json:"chat_type"`
	Message           string    `gorm:"type:text;not null" json:"message"`
	CreatedAt         time.Time `json:"created_at"`
}
