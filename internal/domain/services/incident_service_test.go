package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"aicp-http-service/internal/domain/models"
)

func seedIncidents(t *testing.T, db *gorm.DB) {
	t.Helper()
	fracc := "fracc-1"
	incidents := []models.Incident{
		{IncidentType: "robo", Severity: "high", Status: "reported", FraccionamientoID: &fracc,
			ReportedAt: time.Date(2024, 1, 10, 8, 0, 0, 0, time.UTC)},
		{IncidentType: "ruido", Severity: "low", Status: "resolved", FraccionamientoID: &fracc,
			ReportedAt: time.Date(2024, 1, 15, 23, 0, 0, 0, time.UTC)},
		{IncidentType: "robo", Severity: "critical", Status: "in_progress",
			ReportedAt: time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC)},
	}
	for i := range incidents {
		require.NoError(t, db.Create(&incidents[i]).Error)
	}
}

func TestCreateIncidentDefaultsAndValidation(t *testing.T) {
	service := NewIncidentService(newTestDB(t), testConfig())

	assert.ErrorIs(t, service.CreateIncident(&models.Incident{}), ErrMissingField)
	assert.ErrorIs(t, service.CreateIncident(&models.Incident{IncidentType: "robo", Severity: "extreme"}), ErrInvalidSeverity)
	assert.ErrorIs(t, service.CreateIncident(&models.Incident{IncidentType: "robo", Status: "open"}), ErrInvalidStatus)

	incident := &models.Incident{IncidentType: " robo "}
	require.NoError(t, service.CreateIncident(incident))
	assert.NotEmpty(t, incident.ID)
	assert.Equal(t, "robo", incident.IncidentType)
	assert.Equal(t, "medium", incident.Severity)
	assert.Equal(t, "reported", incident.Status)
	assert.False(t, incident.ReportedAt.IsZero())
}

func TestGetIncidentsFilters(t *testing.T) {
	db := newTestDB(t)
	seedIncidents(t, db)
	service := NewIncidentService(db, testConfig())

	all, err := service.GetIncidents(IncidentFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "critical", all[0].Severity)

	robos, err := service.GetIncidents(IncidentFilter{IncidentType: "robo"})
	require.NoError(t, err)
	assert.Len(t, robos, 2)

	fracc, err := service.GetIncidents(IncidentFilter{FraccionamientoID: "fracc-1", Severity: "low"})
	require.NoError(t, err)
	require.Len(t, fracc, 1)
	assert.Equal(t, "ruido", fracc[0].IncidentType)

	// 只有日期的结束时间包含当天
	january, err := service.GetIncidents(IncidentFilter{StartDate: "2024-01-01", EndDate: "2024-01-15"})
	require.NoError(t, err)
	assert.Len(t, january, 2)

	_, err = service.GetIncidents(IncidentFilter{StartDate: "01/01/2024"})
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestUpdateIncident(t *testing.T) {
	service := NewIncidentService(newTestDB(t), testConfig())
	incident := &models.Incident{IncidentType: "robo"}
	require.NoError(t, service.CreateIncident(incident))

	_, err := service.UpdateIncident(incident.ID, map[string]interface{}{"reported_by": "x"})
	assert.ErrorIs(t, err, ErrNothingToUpdate)
	_, err = service.UpdateIncident(incident.ID, map[string]interface{}{"severity": "extreme"})
	assert.ErrorIs(t, err, ErrInvalidSeverity)
	_, err = service.UpdateIncident(incident.ID, map[string]interface{}{"status": "done"})
	assert.ErrorIs(t, err, ErrInvalidStatus)
	_, err = service.UpdateIncident(incident.ID, map[string]interface{}{"resolved_at": "mañana"})
	assert.ErrorIs(t, err, ErrInvalidDate)

	updated, err := service.UpdateIncident(incident.ID, map[string]interface{}{
		"status": "resolved", "resolved_at": "2024-02-01T10:00:00Z", "resolution_notes": "Recuperado",
	})
	require.NoError(t, err)
	assert.Equal(t, "resolved", updated.Status)
	require.NotNil(t, updated.ResolvedAt)
	assert.True(t, updated.ResolvedAt.Equal(time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC)))
	assert.Equal(t, "Recuperado", *updated.ResolutionNotes)

	_, err = service.UpdateIncident("no-existe", map[string]interface{}{"status": "closed"})
	assert.ErrorIs(t, err, ErrIncidentNotFound)
}

func TestDeleteIncident(t *testing.T) {
	service := NewIncidentService(newTestDB(t), testConfig())
	incident := &models.Incident{IncidentType: "robo"}
	require.NoError(t, service.CreateIncident(incident))

	require.NoError(t, service.DeleteIncident(incident.ID))
	assert.ErrorIs(t, service.DeleteIncident(incident.ID), ErrIncidentNotFound)
	_, err := service.GetIncidentByID(incident.ID)
	assert.ErrorIs(t, err, ErrIncidentNotFound)
}

func TestCountByTypeAndStats(t *testing.T) {
	db := newTestDB(t)
	seedIncidents(t, db)
	service := NewIncidentService(db, testConfig())

	counts, err := service.CountByType(IncidentFilter{Status: "reported"})
	require.NoError(t, err)
	require.Len(t, counts, 2)
	assert.Equal(t, IncidentTypeCount{IncidentType: "robo", Count: 2}, counts[0])
	assert.Equal(t, IncidentTypeCount{IncidentType: "ruido", Count: 1}, counts[1])

	scoped, err := service.CountByType(IncidentFilter{FraccionamientoID: "fracc-1"})
	require.NoError(t, err)
	assert.Len(t, scoped, 2)

	stats, err := service.GetStats("")
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.Total)
	assert.Equal(t, int64(2), stats.ByType["robo"])
	assert.Equal(t, int64(1), stats.BySeverity["critical"])
	assert.Equal(t, int64(1), stats.ByStatus["resolved"])

	stats, err = service.GetStats("fracc-1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.Total)
}
