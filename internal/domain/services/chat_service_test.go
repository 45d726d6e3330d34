package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aicp-http-service/internal/domain/models"
)

func TestMergeConversationNormalizesLegacyRows(t *testing.T) {
	base := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	security := "security"

	current := []models.ChatMessage{
		{ID: 3, SenderID: strPtr("guard-1"), ReceiverID: strPtr("user-1"), Message: "Hola", CreatedAt: base.Add(2 * time.Minute)},
		{ID: 1, SenderID: strPtr("user-1"), ReceiverID: strPtr("guard-1"), Message: "Buenas", CreatedAt: base},
	}
	legacy := []models.ChatMessage{
		{ID: 2, UserID: strPtr("user-1"), ChatType: &security, Message: "Mensaje viejo", CreatedAt: base.Add(time.Minute)},
		// 同一条消息在两个查询中都出现
		{ID: 1, SenderID: strPtr("user-1"), Message: "Buenas", CreatedAt: base},
	}

	merged := MergeConversation("user-1", current, legacy)
	require.Len(t, merged, 3)
	assert.Equal(t, []uint{1, 2, 3}, []uint{merged[0].ID, merged[1].ID, merged[2].ID})

	assert.True(t, merged[0].Sent)
	assert.False(t, merged[0].Legacy)

	assert.True(t, merged[1].Legacy)
	assert.True(t, merged[1].Sent)
	assert.Equal(t, "user-1", *merged[1].SenderID)

	assert.False(t, merged[2].Sent)
}

func TestMergeConversationDeduplicatesByFingerprint(t *testing.T) {
	base := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	current := []models.ChatMessage{
		{ID: 10, SenderID: strPtr("user-1"), Message: "Hola ", CreatedAt: base},
	}
	legacy := []models.ChatMessage{
		{ID: 11, UserID: strPtr("user-1"), Message: "Hola", CreatedAt: base.Add(300 * time.Millisecond)},
		{ID: 12, UserID: strPtr("user-1"), Message: "Hola", CreatedAt: base.Add(5 * time.Second)},
	}

	merged := MergeConversation("user-1", current, legacy)
	require.Len(t, merged, 2)
	assert.Equal(t, uint(10), merged[0].ID)
	assert.Equal(t, uint(12), merged[1].ID)
}

func TestMergeConversationOrdersTiesByID(t *testing.T) {
	base := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	current := []models.ChatMessage{
		{ID: 5, SenderID: strPtr("a"), Message: "uno", CreatedAt: base},
		{ID: 4, SenderID: strPtr("b"), Message: "dos", CreatedAt: base},
	}

	merged := MergeConversation("a", current, nil)
	require.Len(t, merged, 2)
	assert.Equal(t, uint(4), merged[0].ID)
	assert.Equal(t, uint(5), merged[1].ID)
}

func TestChatServiceSendAndRead(t *testing.T) {
	db := newTestDB(t)
	service := NewChatService(db, testConfig())
	fracc := "fracc-1"
	security := "security"

	assert.ErrorIs(t, service.SendMessage(&models.ChatMessage{Message: "sin remitente"}), ErrMissingField)
	assert.ErrorIs(t, service.SendMessage(&models.ChatMessage{SenderID: strPtr("user-1"), Message: "  "}), ErrMissingField)

	sent := &models.ChatMessage{SenderID: strPtr("user-1"), ReceiverID: strPtr("guard-1"), UserID: strPtr("ignorado"),
		ChatType: &security, FraccionamientoID: &fracc, Message: " Hola "}
	require.NoError(t, service.SendMessage(sent))
	assert.NotZero(t, sent.ID)
	assert.Nil(t, sent.UserID)
	assert.Equal(t, "Hola", sent.Message)

	// 旧格式记录
	require.NoError(t, db.Create(&models.ChatMessage{UserID: strPtr("user-1"), ChatType: &security,
		FraccionamientoID: &fracc, Message: "Anterior", CreatedAt: time.Now().UTC().Add(-time.Hour)}).Error)
	require.NoError(t, db.Create(&models.ChatMessage{UserID: strPtr("user-1"), ChatType: strPtr("administration"),
		Message: "Otro canal", CreatedAt: time.Now().UTC().Add(-2 * time.Hour)}).Error)

	conversation, err := service.GetConversation("user-1", "security")
	require.NoError(t, err)
	require.Len(t, conversation, 2)
	assert.Equal(t, "Anterior", conversation[0].Message)
	assert.True(t, conversation[0].Legacy)
	assert.Equal(t, "Hola", conversation[1].Message)

	everything, err := service.GetConversation("user-1", "")
	require.NoError(t, err)
	assert.Len(t, everything, 3)

	guardView, err := service.GetConversation("guard-1", "")
	require.NoError(t, err)
	require.Len(t, guardView, 1)
	assert.False(t, guardView[0].Sent)

	community, err := service.GetCommunityMessages("fracc-1")
	require.NoError(t, err)
	require.Len(t, community, 2)
	assert.Equal(t, "Anterior", community[0].Message)
}
