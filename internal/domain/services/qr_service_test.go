package services

import (
	"encoding/json"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aicp-http-service/internal/domain/models"
)

func TestBuildPayloadOnlyOneTimeExpires(t *testing.T) {
	qr := NewQRService(testConfig())
	now := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)
	address := ResidentAddress{Address: FormatAddress("Calle 1", "10"), Street: "Calle 1", HouseNumber: "10"}

	regular := qr.BuildPayload(&models.Visitor{BaseModel: models.BaseModel{ID: 7}, Name: "Juan", Type: "visitor"}, "Ana", address, now)
	assert.Nil(t, regular.ExpiresAt)
	assert.Equal(t, uint(7), regular.VisitorID)
	assert.Equal(t, "2024-03-01T12:30:00Z", regular.Timestamp)
	assert.Equal(t, "Calle 1, 10", regular.ResidentAddress)
	assert.Equal(t, "Calle 1", regular.ResidentStreet)
	assert.Equal(t, "10", regular.ResidentHouseNumber)

	oneTime := qr.BuildPayload(&models.Visitor{BaseModel: models.BaseModel{ID: 8}, Name: "Pedro", Type: "one-time"}, "", ResidentAddress{}, now)
	require.NotNil(t, oneTime.ExpiresAt)
	data, err := qr.Encode(oneTime)
	require.NoError(t, err)
	assert.Contains(t, data, `"resident_name":""`)
	assert.Contains(t, data, `"resident_address":""`)
}

func TestBuildPayloadAnchorsToVisitorCreation(t *testing.T) {
	qr := NewQRService(testConfig())
	now := time.Date(2024, 3, 2, 18, 0, 0, 0, time.UTC)
	created := now.Add(-30 * time.Hour)
	visitor := &models.Visitor{BaseModel: models.BaseModel{ID: 4, CreatedAt: created}, Name: "Pedro", Type: "one-time"}

	// 登记 30 小时后重新生成二维码，过期时间仍按登记时间计算
	payload := qr.BuildPayload(visitor, "Ana", ResidentAddress{}, now)
	assert.Equal(t, "2024-03-02T18:00:00Z", payload.Timestamp)
	assert.Equal(t, "2024-03-01T12:00:00Z", payload.CreatedAt)
	require.NotNil(t, payload.ExpiresAt)
	assert.Equal(t, "2024-03-02T12:00:00Z", *payload.ExpiresAt)

	data, err := qr.Encode(payload)
	require.NoError(t, err)
	decoded, err := qr.Decode(data, now)
	require.NoError(t, err)
	require.NotNil(t, decoded.VisitorInfo.Expired)
	assert.True(t, *decoded.VisitorInfo.Expired)
	assert.Equal(t, "2024-03-02T18:00:00Z", decoded.VisitorInfo.Timestamp)

	// 没有登记时间时使用生成时间
	fresh := qr.BuildPayload(&models.Visitor{Name: "Luis", Type: "one-time"}, "", ResidentAddress{}, now)
	assert.Equal(t, "2024-03-02T18:00:00Z", fresh.CreatedAt)
	assert.Equal(t, "2024-03-03T18:00:00Z", *fresh.ExpiresAt)
}

func TestBuildPayloadFieldOrder(t *testing.T) {
	qr := NewQRService(testConfig())
	payload := qr.BuildPayload(&models.Visitor{BaseModel: models.BaseModel{ID: 1}, Name: "Juan", Type: "visitor"}, "Ana", ResidentAddress{}, time.Unix(0, 0))

	data, err := qr.Encode(payload)
	require.NoError(t, err)

	keys := []string{"type", "visitor_id", "visitor_name", "resident_name", "resident_address",
		"resident_street", "resident_house_number", "timestamp", "created_at", "expires_at"}
	last := -1
	for _, key := range keys {
		idx := strings.Index(data, `"`+key+`"`)
		require.Greater(t, idx, last, key)
		last = idx
	}
}

func TestBuildURLEncodesPayload(t *testing.T) {
	qr := NewQRService(testConfig())
	payload := qr.BuildPayload(&models.Visitor{BaseModel: models.BaseModel{ID: 3}, Name: "José Pérez", Type: "visitor"}, "Ana María", ResidentAddress{}, time.Now())
	data, err := qr.Encode(payload)
	require.NoError(t, err)

	qrURL := qr.BuildURL(data)
	assert.True(t, strings.HasPrefix(qrURL, "https://api.qrserver.com/v1/create-qr-code/?size=250x250&data="))
	assert.NotContains(t, qrURL, "+")
	assert.Contains(t, qrURL, "%20")

	parsed, err := url.Parse(qrURL)
	require.NoError(t, err)
	assert.Equal(t, data, parsed.Query().Get("data"))
	var decoded QRPayload
	require.NoError(t, json.Unmarshal([]byte(parsed.Query().Get("data")), &decoded))
	assert.Equal(t, "José Pérez", decoded.VisitorName)
	assert.Equal(t, "Ana María", decoded.ResidentName)
}

func TestDecodeQR(t *testing.T) {
	qr := NewQRService(testConfig())
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	_, err := qr.Decode("not-json", now)
	assert.ErrorIs(t, err, ErrInvalidQRData)

	_, err = qr.Decode(`{"type":"event","visitor_id":1}`, now)
	assert.ErrorIs(t, err, ErrUnsupportedQRType)

	decoded, err := qr.Decode(`{"type":"visitor","visitor_id":5,"visitor_name":"Juan","created_at":"2024-01-01T00:00:00Z"}`, now)
	require.NoError(t, err)
	assert.Equal(t, "visitor", decoded.VisitorInfo.Type)
	assert.Nil(t, decoded.VisitorInfo.Expired)
	assert.Nil(t, decoded.VisitorInfo.ExpiresAt)
	id, ok := VisitorIDFromQR(decoded.Data)
	assert.True(t, ok)
	assert.Equal(t, uint(5), id)

	decoded, err = qr.Decode(`{"type":"one-time","visitor_id":"9","expires_at":"2024-03-01T11:00:00Z"}`, now)
	require.NoError(t, err)
	require.NotNil(t, decoded.VisitorInfo.Expired)
	assert.True(t, *decoded.VisitorInfo.Expired)
	id, ok = VisitorIDFromQR(decoded.Data)
	assert.True(t, ok)
	assert.Equal(t, uint(9), id)

	// 没有 expires_at 时按 created_at 计算
	decoded, err = qr.Decode(`{"type":"one-time","visitor_id":2,"created_at":"2024-03-01T00:00:00Z"}`, now)
	require.NoError(t, err)
	assert.False(t, *decoded.VisitorInfo.Expired)
}

func TestVisitorIDFromQRRejectsInvalid(t *testing.T) {
	_, ok := VisitorIDFromQR(map[string]interface{}{"visitor_id": "abc"})
	assert.False(t, ok)
	_, ok = VisitorIDFromQR(map[string]interface{}{"visitor_id": float64(0)})
	assert.False(t, ok)
	_, ok = VisitorIDFromQR(map[string]interface{}{})
	assert.False(t, ok)
}
