package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aicp-http-service/internal/error/code"
)

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestSuccessEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	SuccessWithPayload(c, http.StatusCreated, "Creado", gin.H{"id": 1}, gin.H{"visitor": gin.H{"id": 1}})

	assert.Equal(t, http.StatusCreated, w.Code)
	body := decode(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, true, body["exito"])
	assert.Equal(t, "Creado", body["mensaje"])
	assert.NotNil(t, body["data"])
	assert.NotNil(t, body["visitor"])
}

func TestFailEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Fail(c, code.ErrLoginUserNotFound, nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	body := decode(t, w)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, false, body["exito"])
	assert.Equal(t, "Usuario no encontrado", body["mensaje"])
	assert.Equal(t, float64(code.ErrLoginUserNotFound), body["code"])
	_, hasData := body["data"]
	assert.False(t, hasData)
}

func TestParamErrorKeepsMessage(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	ParamError(c, "user_id es requerido")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "user_id es requerido", decode(t, w)["mensaje"])
}
