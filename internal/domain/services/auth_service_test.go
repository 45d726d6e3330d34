package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aicp-http-service/internal/domain/models"
	"aicp-http-service/pkg/utils"
)

func TestLogin(t *testing.T) {
	db := newTestDB(t)
	cfg := testConfig()
	jwtService := NewJWTService(cfg)
	service := NewAuthService(db, cfg, jwtService)

	plain := createProfile(t, db, models.Profile{Name: "Ana", Email: "ana@test.mx", Password: "secreto", Role: "resident"})
	hashed, err := utils.HashPassword("clave")
	require.NoError(t, err)
	createProfile(t, db, models.Profile{Name: "Luis", Email: "luis@test.mx", Password: hashed, Role: "guard"})

	result, err := service.Login("ana@test.mx", "secreto")
	require.NoError(t, err)
	assert.Equal(t, plain.ID, result.User.ID)
	assert.Equal(t, "ana@test.mx", result.User.Email)
	assert.Equal(t, "resident", result.Profile.Role)
	require.NotEmpty(t, result.Token)

	claims, err := jwtService.ExtractClaims(result.Token)
	require.NoError(t, err)
	assert.Equal(t, plain.ID, claims.UserID)
	assert.Equal(t, "aicp-http-service", claims.Issuer)

	_, err = service.Login("luis@test.mx", "clave")
	assert.NoError(t, err)

	_, err = service.Login("ana@test.mx", "otra")
	assert.ErrorIs(t, err, ErrWrongPassword)

	_, err = service.Login("nadie@test.mx", "secreto")
	assert.ErrorIs(t, err, ErrLoginUserNotFound)
}

func TestLoginWithoutTokenService(t *testing.T) {
	db := newTestDB(t)
	service := NewAuthService(db, testConfig(), nil)
	createProfile(t, db, models.Profile{Name: "Ana", Email: "ana@test.mx", Password: "secreto"})

	result, err := service.Login("ana@test.mx", "secreto")
	require.NoError(t, err)
	assert.Empty(t, result.Token)
}

func TestGetProfileAndPasswordReset(t *testing.T) {
	db := newTestDB(t)
	service := NewAuthService(db, testConfig(), nil)
	profile := createProfile(t, db, models.Profile{Name: "Ana", Email: "ana@test.mx"})

	found, err := service.GetProfile(profile.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana", found.Name)

	_, err = service.GetProfile("no-existe")
	assert.ErrorIs(t, err, ErrProfileNotFound)

	assert.NoError(t, service.RequestPasswordReset("ana@test.mx"))
	assert.ErrorIs(t, service.RequestPasswordReset("nadie@test.mx"), ErrLoginUserNotFound)
}

func TestJWTRejectsForeignSecret(t *testing.T) {
	issuer := NewJWTService(testConfig())
	token, err := issuer.GenerateToken(&models.Profile{ID: "user-1", Email: "a@test.mx", Role: "admin"})
	require.NoError(t, err)

	cfg := testConfig()
	cfg.JWTSecretKey = "otra"
	_, err = NewJWTService(cfg).ExtractClaims(token)
	assert.Error(t, err)
}
