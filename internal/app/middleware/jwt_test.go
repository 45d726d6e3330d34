package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"aicp-http-service/internal/domain/models"
	"aicp-http-service/internal/domain/services"
	"aicp-http-service/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newIdentifiedRouter(jwtService services.InterfaceJWTService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Identify(jwtService))
	r.GET("/whoami", func(c *gin.Context) {
		userID, ok := CurrentUserID(c)
		c.JSON(http.StatusOK, gin.H{"user_id": userID, "identified": ok})
	})
	return r
}

func TestIdentifySetsClaims(t *testing.T) {
	jwtService := services.NewJWTService(&config.Config{JWTSecretKey: "secret"})
	token, err := jwtService.GenerateToken(&models.Profile{ID: "user-1", Email: "a@test.mx", Role: "guard"})
	require.NoError(t, err)

	r := newIdentifiedRouter(jwtService)
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id":"user-1","identified":true}`, w.Body.String())
}

func TestIdentifyNeverRejects(t *testing.T) {
	r := newIdentifiedRouter(services.NewJWTService(&config.Config{JWTSecretKey: "secret"}))

	for _, header := range []string{"", "Bearer basura", "basura"} {
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code, header)
		assert.JSONEq(t, `{"user_id":"","identified":false}`, w.Body.String(), header)
	}
}

func TestExtractToken(t *testing.T) {
	assert.Equal(t, "abc", extractToken("Bearer abc"))
	assert.Equal(t, "abc", extractToken("abc"))
}
