package services

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"aicp-http-service/internal/domain/models"
	"aicp-http-service/internal/infrastructure/config"

	"gorm.io/gorm"
)

// InterfaceChatService defines the chat service interface
type InterfaceChatService interface {
	GetCommunityMessages(fraccionamientoID string) ([]models.ChatMessage, error)
	GetConversation(userID, chatType string) ([]ChatView, error)
	SendMessage(message *models.ChatMessage) error
}

// ChatView 统一两种记录格式后的聊天消息
type ChatView struct {
	ID                uint      `json:"id"`
	FraccionamientoID *string   `json:"fraccionamiento_id"`
	SenderID          *string   `json:"sender_id"`
	ReceiverID        *string   `json:"receiver_id"`
	UserID            *string   `json:"user_id"`
	ChatType          *string   `json:"chat_type"`
	Message           string    `json:"message"`
	CreatedAt         time.Time `json:"created_at"`
	Sent              bool      `json:"sent"`   // 当前用户发出的消息
	Legacy            bool      `json:"legacy"` // 来自旧格式 user_id/chat_type
}

// ChatService 提供聊天相关的服务（轮询方式，无实时推送）
type ChatService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewChatService 创建一个新的聊天服务
func NewChatService(db *gorm.DB, cfg *config.Config) InterfaceChatService {
	return &ChatService{
		DB:     db,
		Config: cfg,
	}
}

// 1 GetCommunityMessages 获取小区内的全部消息，最早的在前
func (s *ChatService) GetCommunityMessages(fraccionamientoID string) ([]models.ChatMessage, error) {
	messages := []models.ChatMessage{}
	err := s.DB.Where("fraccionamiento_id = ?", fraccionamientoID).
		Order("created_at ASC").Order("id ASC").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

// 2 GetConversation 合并新旧两种格式中与用户相关的消息
func (s *ChatService) GetConversation(userID, chatType string) ([]ChatView, error) {
	current := s.DB.Where("(sender_id = ? OR receiver_id = ?)", userID, userID)
	legacy := s.DB.Where("user_id = ?", userID)
	if chatType != "" {
		current = current.Where("chat_type = ?", chatType)
		legacy = legacy.Where("chat_type = ?", chatType)
	}

	var currentRows, legacyRows []models.ChatMessage
	if err := current.Find(&currentRows).Error; err != nil {
		return nil, err
	}
	if err := legacy.Find(&legacyRows).Error; err != nil {
		return nil, err
	}

	return MergeConversation(userID, currentRows, legacyRows), nil
}

// MergeConversation 按 ID 和（发送者, 内容, 秒级时间）去重，按时间升序排列
func MergeConversation(userID string, currentRows, legacyRows []models.ChatMessage) []ChatView {
	seenIDs := make(map[uint]bool)
	seenFingerprints := make(map[string]bool)
	merged := make([]ChatView, 0, len(currentRows)+len(legacyRows))

	add := func(row models.ChatMessage) {
		if seenIDs[row.ID] {
			return
		}
		view := normalizeChatMessage(userID, row)
		fingerprint := chatFingerprint(view)
		if seenFingerprints[fingerprint] {
			return
		}
		seenIDs[row.ID] = true
		seenFingerprints[fingerprint] = true
		merged = append(merged, view)
	}

	for _, row := range currentRows {
		add(row)
	}
	for _, row := range legacyRows {
		add(row)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		if !merged[i].CreatedAt.Equal(merged[j].CreatedAt) {
			return merged[i].CreatedAt.Before(merged[j].CreatedAt)
		}
		return merged[i].ID < merged[j].ID
	})
	return merged
}

// 旧格式记录没有 sender_id，发送者即 user_id
func normalizeChatMessage(userID string, row models.ChatMessage) ChatView {
	view := ChatView{
		ID:                row.ID,
		FraccionamientoID: row.FraccionamientoID,
		SenderID:          row.SenderID,
		ReceiverID:        row.ReceiverID,
		UserID:            row.UserID,
		ChatType:          row.ChatType,
		Message:           row.Message,
		CreatedAt:         row.CreatedAt,
	}
	if row.SenderID == nil || *row.SenderID == "" {
		view.Legacy = true
		view.SenderID = row.UserID
		view.Sent = row.UserID != nil && *row.UserID == userID
		return view
	}
	view.Sent = *row.SenderID == userID
	return view
}

func chatFingerprint(view ChatView) string {
	sender := ""
	if view.SenderID != nil {
		sender = *view.SenderID
	}
	return fmt.Sprintf("%s|%s|%d", sender, strings.TrimSpace(view.Message), view.CreatedAt.Unix())
}

// 3 SendMessage 以新格式写入消息
func (s *ChatService) SendMessage(message *models.ChatMessage) error {
	message.Message = strings.TrimSpace(message.Message)
	if message.SenderID == nil || *message.SenderID == "" || message.Message == "" {
		return ErrMissingField
	}
	message.ID = 0
	message.UserID = nil
	message.CreatedAt = time.Now().UTC()
	return s.DB.Create(message).Error
}
