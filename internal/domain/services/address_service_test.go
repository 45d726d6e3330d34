package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aicp-http-service/internal/domain/models"
)

func TestFormatAddress(t *testing.T) {
	assert.Equal(t, "Av. Siempre Viva, 742", *FormatAddress("Av. Siempre Viva", "742"))
	assert.Equal(t, "742", *FormatAddress("", "742"))
	assert.Equal(t, "Av. Siempre Viva", *FormatAddress(" Av. Siempre Viva ", " "))
	assert.Nil(t, FormatAddress("", ""))
}

func TestAddressResolverPrefersLatestApproved(t *testing.T) {
	db := newTestDB(t)
	base := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	regs := []models.PendingRegistration{
		{FullName: "Ana", Email: "ana@test.mx", Password: "x", Status: "approved", Street: "Calle Vieja", HouseNumber: "1", CreatedAt: base},
		{FullName: "Ana", Email: "ana@test.mx", Password: "x", Status: "approved", Street: "Calle Nueva", HouseNumber: "2", CreatedAt: base.Add(time.Hour)},
		{FullName: "Ana", Email: "ana@test.mx", Password: "x", Status: "rejected", Street: "Calle Rechazada", HouseNumber: "3", CreatedAt: base.Add(2 * time.Hour)},
	}
	for i := range regs {
		require.NoError(t, db.Create(&regs[i]).Error)
	}

	address, err := NewAddressResolver(db).Resolve("ana@test.mx")
	require.NoError(t, err)
	require.NotNil(t, address.Address)
	assert.Equal(t, "Calle Nueva, 2", *address.Address)
	assert.Equal(t, "Calle Nueva", address.Street)
	assert.Equal(t, "2", address.HouseNumber)
}

func TestAddressResolverFallbacks(t *testing.T) {
	db := newTestDB(t)
	base := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	// 只有非批准状态的注册
	require.NoError(t, db.Create(&models.PendingRegistration{
		FullName: "Luis", Email: "luis@test.mx", Password: "x", Status: "pending",
		Street: "Calle Pendiente", HouseNumber: "9", CreatedAt: base,
	}).Error)
	// 没有注册，使用档案地址
	createProfile(t, db, models.Profile{Name: "Eva", Email: "eva@test.mx", Street: "Calle Perfil", HouseNumber: "5"})

	resolver := NewAddressResolver(db)

	address, err := resolver.Resolve("luis@test.mx")
	require.NoError(t, err)
	assert.Equal(t, "Calle Pendiente, 9", *address.Address)

	address, err = resolver.Resolve("eva@test.mx")
	require.NoError(t, err)
	assert.Equal(t, "Calle Perfil, 5", *address.Address)

	address, err = resolver.Resolve("nadie@test.mx")
	require.NoError(t, err)
	assert.Nil(t, address.Address)
	assert.Empty(t, address.Street)
}

func TestAddressResolverMemoizesPerInstance(t *testing.T) {
	db := newTestDB(t)
	createProfile(t, db, models.Profile{Name: "Eva", Email: "eva@test.mx", Street: "Calle Perfil", HouseNumber: "5"})

	resolver := NewAddressResolver(db)
	first, err := resolver.Resolve("eva@test.mx")
	require.NoError(t, err)

	require.NoError(t, db.Model(&models.Profile{}).Where("email = ?", "eva@test.mx").Update("street", "Otra").Error)

	cached, err := resolver.Resolve("eva@test.mx")
	require.NoError(t, err)
	assert.Equal(t, *first.Address, *cached.Address)

	fresh, err := NewAddressResolver(db).Resolve("eva@test.mx")
	require.NoError(t, err)
	assert.Equal(t, "Otra, 5", *fresh.Address)
}
