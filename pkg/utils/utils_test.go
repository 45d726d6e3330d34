package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckPassword(t *testing.T) {
	assert.True(t, CheckPassword("secret", "secret"))
	assert.False(t, CheckPassword("secret", "Secret"))
	assert.False(t, CheckPassword("", ""))
	assert.False(t, CheckPassword("secret", ""))

	hash, err := HashPassword("secret")
	require.NoError(t, err)
	assert.True(t, IsBcryptHash(hash))
	assert.True(t, CheckPassword("secret", hash))
	assert.False(t, CheckPassword("other", hash))
	assert.False(t, CheckPassword(hash, hash))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-03-05")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), d)
	assert.Equal(t, time.Date(2024, 3, 5, 23, 59, 59, 999999999, time.UTC), EndOfDay("2024-03-05", d))

	d, err = ParseDate("2024-03-05T10:30:00Z")
	require.NoError(t, err)
	assert.Equal(t, 10, d.Hour())
	assert.Equal(t, d, EndOfDay("2024-03-05T10:30:00Z", d))

	_, err = ParseDate("05/03/2024")
	assert.Error(t, err)
}
