package code

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEveryCodeHasMessageAndStatus(t *testing.T) {
	for c := range codeMessageMap {
		_, ok := codeStatusMap[c]
		assert.True(t, ok, "code %d has a message but no status", c)
	}
	for c := range codeStatusMap {
		_, ok := codeMessageMap[c]
		assert.True(t, ok, "code %d has a status but no message", c)
	}
}

func TestLookups(t *testing.T) {
	assert.Equal(t, StatusUnauthorized, GetStatus(ErrLoginUserNotFound))
	assert.Equal(t, "Usuario no encontrado", GetMessage(ErrLoginUserNotFound))
	assert.Equal(t, StatusUnauthorized, GetStatus(ErrUserPasswordIncorrect))
	assert.Equal(t, "Contraseña incorrecta", GetMessage(ErrUserPasswordIncorrect))
	assert.Equal(t, StatusNotFound, GetStatus(ErrRegistrationNotFound))
	assert.Equal(t, StatusInternalServerError, GetStatus(-1))
	assert.Equal(t, "Error desconocido", GetMessage(-1))
}
