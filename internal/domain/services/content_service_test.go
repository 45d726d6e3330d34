package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aicp-http-service/internal/domain/models"
)

func TestBannerService(t *testing.T) {
	service := NewBannerService(newTestDB(t), testConfig())
	fracc := "fracc-1"

	assert.ErrorIs(t, service.CreateBanner(&models.Banner{Title: " "}), ErrMissingField)

	second := &models.Banner{Title: "Segundo", IsActive: true, DisplayOrder: 2, FraccionamientoID: &fracc}
	first := &models.Banner{Title: "Primero", IsActive: true, DisplayOrder: 1}
	hidden := &models.Banner{Title: "Oculto", IsActive: false, DisplayOrder: 0}
	for _, b := range []*models.Banner{second, first, hidden} {
		require.NoError(t, service.CreateBanner(b))
	}

	all, err := service.GetAllBanners()
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Oculto", all[0].Title)

	active, err := service.GetActiveBanners("")
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, "Primero", active[0].Title)

	scoped, err := service.GetActiveBanners("fracc-1")
	require.NoError(t, err)
	require.Len(t, scoped, 1)
	assert.Equal(t, "Segundo", scoped[0].Title)

	updated, err := service.UpdateBanner(hidden.ID, map[string]interface{}{"order": 5, "title": "Visible", "id": 100})
	require.NoError(t, err)
	assert.Equal(t, 5, updated.DisplayOrder)
	assert.Equal(t, "Visible", updated.Title)
	assert.Equal(t, hidden.ID, updated.ID)

	toggled, err := service.SetBannerStatus(hidden.ID, true)
	require.NoError(t, err)
	assert.True(t, toggled.IsActive)

	toggled, err = service.SetBannerStatus(first.ID, false)
	require.NoError(t, err)
	assert.False(t, toggled.IsActive)

	_, err = service.UpdateBanner(first.ID, map[string]interface{}{"created_at": "x"})
	assert.ErrorIs(t, err, ErrNothingToUpdate)

	require.NoError(t, service.DeleteBanner(first.ID))
	assert.ErrorIs(t, service.DeleteBanner(first.ID), ErrBannerNotFound)
	_, err = service.GetBannerByID(first.ID)
	assert.ErrorIs(t, err, ErrBannerNotFound)
}

func TestNotificationService(t *testing.T) {
	service := NewNotificationService(newTestDB(t), testConfig())

	assert.ErrorIs(t, service.CreateNotification(&models.Notification{Title: "Sin usuario"}), ErrMissingField)

	first := &models.Notification{UserID: "user-1", Title: "Bienvenida"}
	second := &models.Notification{UserID: "user-1", Title: "Visita", Type: "visitor"}
	other := &models.Notification{UserID: "user-2", Title: "Otro"}
	for _, n := range []*models.Notification{first, second, other} {
		require.NoError(t, service.CreateNotification(n))
	}
	assert.Equal(t, "info", first.Type)

	list, err := service.GetNotificationsByUser("user-1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)

	require.NoError(t, service.MarkAsRead(first.ID))
	assert.ErrorIs(t, service.MarkAsRead(999), ErrNotificationNotFound)

	updated, err := service.MarkAllAsRead("user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), updated)

	list, err = service.GetNotificationsByUser("user-1")
	require.NoError(t, err)
	for _, n := range list {
		assert.True(t, n.Read)
	}

	otherList, err := service.GetNotificationsByUser("user-2")
	require.NoError(t, err)
	require.Len(t, otherList, 1)
	assert.False(t, otherList[0].Read)

	require.NoError(t, service.DeleteNotification(other.ID))
	assert.ErrorIs(t, service.DeleteNotification(other.ID), ErrNotificationNotFound)
}

func TestPreferenceService(t *testing.T) {
	service := NewPreferenceService(newTestDB(t), testConfig())

	preference, err := service.GetPreference("user-1")
	require.NoError(t, err)
	assert.True(t, preference.AcceptsVisitors)
	assert.True(t, preference.AcceptsPersonnel)

	_, err = service.SavePreference("", true, true)
	assert.ErrorIs(t, err, ErrMissingField)

	_, err = service.SetAcceptsVisitors("user-1", false)
	require.NoError(t, err)
	preference, err = service.GetPreference("user-1")
	require.NoError(t, err)
	assert.False(t, preference.AcceptsVisitors)
	assert.True(t, preference.AcceptsPersonnel)

	_, err = service.SetAcceptsPersonnel("user-1", false)
	require.NoError(t, err)
	preference, err = service.GetPreference("user-1")
	require.NoError(t, err)
	assert.False(t, preference.AcceptsVisitors)
	assert.False(t, preference.AcceptsPersonnel)

	_, err = service.SavePreference("user-1", true, true)
	require.NoError(t, err)
	preference, err = service.GetPreference("user-1")
	require.NoError(t, err)
	assert.True(t, preference.AcceptsVisitors)
	assert.True(t, preference.AcceptsPersonnel)
}

func TestProfileService(t *testing.T) {
	db := newTestDB(t)
	service := NewProfileService(db, testConfig())
	fracc := "fracc-1"
	ana := createProfile(t, db, models.Profile{Name: "Ana", Email: "ana@test.mx", Role: "resident", FraccionamientoID: &fracc})
	createProfile(t, db, models.Profile{Name: "Luis", Email: "luis@test.mx", Role: "guard", FraccionamientoID: &fracc})
	createProfile(t, db, models.Profile{Name: "Eva", Email: "eva@test.mx", Role: "resident"})

	residents, err := service.GetProfiles("resident", "")
	require.NoError(t, err)
	assert.Len(t, residents, 2)

	scoped, err := service.GetProfiles("", "fracc-1")
	require.NoError(t, err)
	assert.Len(t, scoped, 2)

	_, err = service.UpdateProfile(ana.ID, map[string]interface{}{"email": "nuevo@test.mx"})
	assert.ErrorIs(t, err, ErrNothingToUpdate)
	_, err = service.UpdateProfile(ana.ID, map[string]interface{}{"role": "root"})
	assert.ErrorIs(t, err, ErrInvalidRole)

	updated, err := service.UpdateProfile(ana.ID, map[string]interface{}{"phone": "555", "role": "admin", "email": "x@test.mx"})
	require.NoError(t, err)
	assert.Equal(t, "555", updated.Phone)
	assert.Equal(t, "admin", updated.Role)
	assert.Equal(t, "ana@test.mx", updated.Email)

	_, err = service.GetProfileByID("no-existe")
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestHistoryServiceFromDatabase(t *testing.T) {
	db := newTestDB(t)
	history, err := NewHistoryService(db, testConfig())
	require.NoError(t, err)
	assert.Equal(t, "database", history.Backend())

	fracc := "fracc-1"
	rows := []models.HouseAccess{
		{UserID: strPtr("user-1"), VisitorID: 1, AccessType: "entry", FraccionamientoID: &fracc},
		{UserID: strPtr("user-1"), VisitorID: 1, AccessType: "exit", FraccionamientoID: &fracc},
		{UserID: strPtr("user-2"), VisitorID: 2, AccessType: "entry"},
	}
	for i := range rows {
		require.NoError(t, db.Create(&rows[i]).Error)
	}

	mine, err := history.GetHistory("user-1", "")
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, "exit", mine[0].AccessType)

	scoped, err := history.GetHistory("", "fracc-1")
	require.NoError(t, err)
	assert.Len(t, scoped, 2)

	all, err := history.GetHistory("", "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestDBPassLedger(t *testing.T) {
	db := newTestDB(t)
	ledger := NewDBPassLedger(db)

	fresh, err := ledger.MarkUsed(1, 0)
	require.NoError(t, err)
	assert.True(t, fresh)

	require.NoError(t, db.Create(&models.HouseAccess{VisitorID: 1, AccessType: "exit"}).Error)
	fresh, err = ledger.MarkUsed(1, 0)
	require.NoError(t, err)
	assert.True(t, fresh)

	require.NoError(t, db.Create(&models.HouseAccess{VisitorID: 1, AccessType: "entry"}).Error)
	fresh, err = ledger.MarkUsed(1, 0)
	require.NoError(t, err)
	assert.False(t, fresh)
}

func TestFilterColumns(t *testing.T) {
	columns := FilterColumns(map[string]interface{}{"id": 1, "name": "a", "secret": "b"}, map[string]bool{"name": true, "id": true})
	assert.Equal(t, map[string]interface{}{"name": "a"}, columns)
}
