package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aicp-http-service/internal/domain/models"
)

func newRegistration(email string) *models.PendingRegistration {
	fracc := "fracc-1"
	return &models.PendingRegistration{
		FullName: "Ana López", Email: email, Password: "secreto",
		Phone: "555", FraccionamientoID: &fracc, Street: "Calle Roble", HouseNumber: "12",
	}
}

func TestCreateRegistrationValidation(t *testing.T) {
	service := NewRegistrationService(newTestDB(t), testConfig())

	assert.ErrorIs(t, service.CreateRegistration(&models.PendingRegistration{Email: "a@test.mx"}), ErrMissingField)

	bad := newRegistration("rol@test.mx")
	bad.Role = "superuser"
	assert.ErrorIs(t, service.CreateRegistration(bad), ErrInvalidRole)

	registration := newRegistration("ana@test.mx")
	require.NoError(t, service.CreateRegistration(registration))
	assert.NotEmpty(t, registration.ID)
	assert.Equal(t, "resident", registration.Role)
	assert.Equal(t, "pending", registration.Status)

	assert.ErrorIs(t, service.CreateRegistration(newRegistration("ana@test.mx")), ErrRegistrationExists)
}

func TestApproveRegistrationCreatesProfile(t *testing.T) {
	db := newTestDB(t)
	service := NewRegistrationService(db, testConfig())

	registration := newRegistration("ana@test.mx")
	require.NoError(t, service.CreateRegistration(registration))

	result, err := service.ApproveRegistration(registration.ID)
	require.NoError(t, err)
	assert.Equal(t, "approved", result.Registration.Status)
	assert.Equal(t, "ana@test.mx", result.Profile.Email)
	assert.Equal(t, "Ana López", result.Profile.Name)
	assert.Equal(t, "resident", result.Profile.Role)
	assert.Equal(t, "Calle Roble", result.Profile.Street)

	var profile models.Profile
	require.NoError(t, db.Where("email = ?", "ana@test.mx").First(&profile).Error)
	assert.Equal(t, "secreto", profile.Password)

	// 已处理的申请不能再次审批
	_, err = service.ApproveRegistration(registration.ID)
	assert.ErrorIs(t, err, ErrRegistrationNotFound)

	pending, err := service.GetPendingRegistrations()
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestApproveRegistrationEmailTakenRollsBack(t *testing.T) {
	db := newTestDB(t)
	service := NewRegistrationService(db, testConfig())
	createProfile(t, db, models.Profile{Name: "Existente", Email: "ana@test.mx"})

	registration := newRegistration("ana@test.mx")
	require.NoError(t, service.CreateRegistration(registration))

	_, err := service.ApproveRegistration(registration.ID)
	assert.ErrorIs(t, err, ErrEmailTaken)

	stored, err := service.GetRegistrationByID(registration.ID)
	require.NoError(t, err)
	assert.Equal(t, "pending", stored.Status)
}

func TestRejectRegistration(t *testing.T) {
	service := NewRegistrationService(newTestDB(t), testConfig())

	registration := newRegistration("ana@test.mx")
	require.NoError(t, service.CreateRegistration(registration))

	rejected, err := service.RejectRegistration(registration.ID, " Documentos incompletos ")
	require.NoError(t, err)
	assert.Equal(t, "rejected", rejected.Status)
	require.NotNil(t, rejected.RejectionReason)
	assert.Equal(t, "Documentos incompletos", *rejected.RejectionReason)

	_, err = service.RejectRegistration(registration.ID, "")
	assert.ErrorIs(t, err, ErrRegistrationNotFound)

	_, err = service.RejectRegistration("no-existe", "")
	assert.ErrorIs(t, err, ErrRegistrationNotFound)
}

func TestRegistrationStats(t *testing.T) {
	service := NewRegistrationService(newTestDB(t), testConfig())

	first := newRegistration("a@test.mx")
	second := newRegistration("b@test.mx")
	third := newRegistration("c@test.mx")
	for _, r := range []*models.PendingRegistration{first, second, third} {
		require.NoError(t, service.CreateRegistration(r))
	}
	_, err := service.ApproveRegistration(first.ID)
	require.NoError(t, err)
	_, err = service.RejectRegistration(second.ID, "")
	require.NoError(t, err)

	stats, err := service.GetStats()
	require.NoError(t, err)
	assert.Equal(t, &RegistrationStats{Total: 3, Pending: 1, Approved: 1, Rejected: 1}, stats)
}
