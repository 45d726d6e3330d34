package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"aicp-http-service/internal/domain/models"
)

type VisitorServiceTestSuite struct {
	suite.Suite
	db       *gorm.DB
	service  *VisitorService
	resident models.Profile
}

func (suite *VisitorServiceTestSuite) SetupTest() {
	suite.db = newTestDB(suite.T())
	suite.service = NewVisitorService(suite.db, testConfig(), NewQRService(testConfig()), nil).(*VisitorService)

	fracc := "fracc-1"
	suite.resident = createProfile(suite.T(), suite.db, models.Profile{
		Name: "Ana López", Email: "ana@test.mx", Role: "resident",
		FraccionamientoID: &fracc, Street: "Calle Roble", HouseNumber: "12",
	})
}

func (suite *VisitorServiceTestSuite) createVisitor(name, visitorType string) *models.Visitor {
	visitor := &models.Visitor{Name: name, Type: visitorType, CreatedBy: &suite.resident.ID}
	created, _, err := suite.service.CreateVisitor(visitor)
	require.NoError(suite.T(), err)
	return created
}

func (suite *VisitorServiceTestSuite) TestCreateVisitorDefaults() {
	_, _, err := suite.service.CreateVisitor(&models.Visitor{Name: "  "})
	assert.ErrorIs(suite.T(), err, ErrMissingField)

	visitor := suite.createVisitor("Juan", "")
	assert.NotZero(suite.T(), visitor.ID)
	assert.Equal(suite.T(), "visitor", visitor.Type)
	assert.Equal(suite.T(), "active", visitor.Status)
	assert.Nil(suite.T(), visitor.CodigoQR)
}

func (suite *VisitorServiceTestSuite) TestCreateOneTimeVisitorGeneratesQR() {
	visitor := &models.Visitor{Name: "Pedro", Type: "one-time", CreatedBy: &suite.resident.ID}
	created, qr, err := suite.service.CreateVisitor(visitor)
	require.NoError(suite.T(), err)
	require.NotNil(suite.T(), qr)
	require.NotNil(suite.T(), created.CodigoQR)
	assert.Equal(suite.T(), qr.URL, *created.CodigoQR)
	require.NotNil(suite.T(), qr.Payload.ExpiresAt)
	assert.Equal(suite.T(), "Ana López", qr.Payload.ResidentName)
	assert.Equal(suite.T(), "Calle Roble, 12", qr.Payload.ResidentAddress)
	assert.Contains(suite.T(), qr.Data, `"visitor_name":"Pedro"`)

	stored, err := suite.service.GetVisitorByID(created.ID)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), qr.URL, *stored.CodigoQR)
}

func (suite *VisitorServiceTestSuite) TestGenerateQRRejectsUnsupportedTypes() {
	event := suite.createVisitor("Fiesta", "event")
	_, err := suite.service.GenerateQR(event.ID)
	assert.ErrorIs(suite.T(), err, ErrVisitorTypeNoQR)

	_, err = suite.service.GenerateQR(9999)
	assert.ErrorIs(suite.T(), err, ErrVisitorNotFound)
}

func (suite *VisitorServiceTestSuite) TestGetVisitorsFiltersAndAddress() {
	suite.createVisitor("Juan Pérez", "visitor")
	suite.createVisitor("Plomero", "provider")
	other := createProfile(suite.T(), suite.db, models.Profile{Name: "Otro", Email: "otro@test.mx"})
	_, _, err := suite.service.CreateVisitor(&models.Visitor{Name: "Juana", CreatedBy: &other.ID})
	require.NoError(suite.T(), err)

	all, err := suite.service.GetVisitors(VisitorFilter{})
	require.NoError(suite.T(), err)
	assert.Len(suite.T(), all, 3)

	mine, err := suite.service.GetVisitors(VisitorFilter{UserID: suite.resident.ID})
	require.NoError(suite.T(), err)
	require.Len(suite.T(), mine, 2)
	for _, row := range mine {
		require.NotNil(suite.T(), row.ResidentEmail)
		assert.Equal(suite.T(), "ana@test.mx", *row.ResidentEmail)
		assert.Equal(suite.T(), "Ana López", *row.ResidentName)
		assert.Equal(suite.T(), "Calle Roble, 12", *row.Address)
		assert.Equal(suite.T(), "Calle Roble", *row.Street)
	}

	search, err := suite.service.GetVisitors(VisitorFilter{Search: "JUAN"})
	require.NoError(suite.T(), err)
	assert.Len(suite.T(), search, 2)

	providers, err := suite.service.GetVisitors(VisitorFilter{Type: "provider", UserID: suite.resident.ID})
	require.NoError(suite.T(), err)
	require.Len(suite.T(), providers, 1)
	assert.Equal(suite.T(), "Plomero", providers[0].Name)
}

func (suite *VisitorServiceTestSuite) TestGetStats() {
	suite.createVisitor("A", "visitor")
	suite.createVisitor("B", "visitor")
	suite.createVisitor("C", "event")

	stats, err := suite.service.GetStats()
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(3), stats.Total)
	assert.Equal(suite.T(), int64(2), stats.ByType["visitor"])
	assert.Equal(suite.T(), int64(1), stats.ByType["event"])
	assert.Equal(suite.T(), int64(3), stats.ByStatus["active"])
}

func (suite *VisitorServiceTestSuite) TestUpdateVisitorWhitelist() {
	visitor := suite.createVisitor("Juan", "visitor")

	_, err := suite.service.UpdateVisitor(visitor.ID, map[string]interface{}{"id": 99, "created_by": "x"})
	assert.ErrorIs(suite.T(), err, ErrNothingToUpdate)

	_, err = suite.service.UpdateVisitor(visitor.ID, map[string]interface{}{"entry_date": "ayer"})
	assert.ErrorIs(suite.T(), err, ErrInvalidDate)

	updated, err := suite.service.UpdateVisitor(visitor.ID, map[string]interface{}{
		"name": "Juan Carlos", "phone": "555", "created_by": "otro", "entry_date": "2024-05-01",
	})
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Juan Carlos", updated.Name)
	assert.Equal(suite.T(), "555", updated.Phone)
	assert.Equal(suite.T(), suite.resident.ID, *updated.CreatedBy)
	require.NotNil(suite.T(), updated.EntryDate)
	assert.Equal(suite.T(), 2024, updated.EntryDate.Year())

	_, err = suite.service.UpdateVisitor(9999, map[string]interface{}{"name": "x"})
	assert.ErrorIs(suite.T(), err, ErrVisitorNotFound)
}

func (suite *VisitorServiceTestSuite) TestDeleteVisitor() {
	visitor := suite.createVisitor("Juan", "visitor")
	require.NoError(suite.T(), suite.service.DeleteVisitor(visitor.ID))
	assert.ErrorIs(suite.T(), suite.service.DeleteVisitor(visitor.ID), ErrVisitorNotFound)
}

func (suite *VisitorServiceTestSuite) TestEntryAndExitRecordHistory() {
	visitor := suite.createVisitor("Juan", "visitor")

	entered, err := suite.service.RegisterEntry(visitor.ID, "guard-1")
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "dentro", entered.Status)
	assert.NotNil(suite.T(), entered.EntryDate)

	left, err := suite.service.RegisterExit(visitor.ID, "guard-1")
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "salio", left.Status)

	var rows []models.HouseAccess
	require.NoError(suite.T(), suite.db.Order("id ASC").Find(&rows).Error)
	require.Len(suite.T(), rows, 2)
	assert.Equal(suite.T(), "entry", rows[0].AccessType)
	assert.Equal(suite.T(), "exit", rows[1].AccessType)
	assert.Equal(suite.T(), suite.resident.ID, *rows[0].UserID)
	assert.Equal(suite.T(), "fracc-1", *rows[0].FraccionamientoID)
	assert.Equal(suite.T(), "guard-1", *rows[0].GuardID)

	// 普通访客可以多次入场
	_, err = suite.service.RegisterEntry(visitor.ID, "")
	assert.NoError(suite.T(), err)
}

func (suite *VisitorServiceTestSuite) TestOneTimePassSingleUse() {
	visitor := suite.createVisitor("Pedro", "one-time")

	_, err := suite.service.RegisterEntry(visitor.ID, "guard-1")
	require.NoError(suite.T(), err)

	_, err = suite.service.RegisterEntry(visitor.ID, "guard-1")
	assert.ErrorIs(suite.T(), err, ErrPassAlreadyUsed)
}

func (suite *VisitorServiceTestSuite) TestOneTimePassExpires() {
	visitor := suite.createVisitor("Pedro", "one-time")

	suite.service.now = func() time.Time { return time.Now().Add(25 * time.Hour) }
	_, err := suite.service.RegisterEntry(visitor.ID, "guard-1")
	assert.ErrorIs(suite.T(), err, ErrPassExpired)

	var count int64
	require.NoError(suite.T(), suite.db.Model(&models.HouseAccess{}).Count(&count).Error)
	assert.Zero(suite.T(), count)
}

func (suite *VisitorServiceTestSuite) TestRegeneratedQRKeepsCreationExpiry() {
	visitor := suite.createVisitor("Pedro", "one-time")
	created := time.Now().Add(-30 * time.Hour)
	require.NoError(suite.T(), suite.db.Model(&models.Visitor{}).Where("id = ?", visitor.ID).
		Update("created_at", created).Error)
	stored, err := suite.service.GetVisitorByID(visitor.ID)
	require.NoError(suite.T(), err)

	qr, err := suite.service.GenerateQR(visitor.ID)
	require.NoError(suite.T(), err)
	require.NotNil(suite.T(), qr.Payload.ExpiresAt)
	assert.Equal(suite.T(), stored.CreatedAt.UTC().Add(24*time.Hour).Format(time.RFC3339), *qr.Payload.ExpiresAt)
	assert.Equal(suite.T(), stored.CreatedAt.UTC().Format(time.RFC3339), qr.Payload.CreatedAt)

	// 扫码结果与入场校验一致
	decoded, err := suite.service.DecodeQR(qr.Data)
	require.NoError(suite.T(), err)
	require.NotNil(suite.T(), decoded.VisitorInfo.Expired)
	assert.True(suite.T(), *decoded.VisitorInfo.Expired)

	_, err = suite.service.RegisterEntry(visitor.ID, "guard-1")
	assert.ErrorIs(suite.T(), err, ErrPassExpired)
}

func (suite *VisitorServiceTestSuite) TestDecodeQRAttachesVisitorStatus() {
	visitor := suite.createVisitor("Juan", "visitor")
	qr, err := suite.service.GenerateQR(visitor.ID)
	require.NoError(suite.T(), err)

	decoded, err := suite.service.DecodeQR(qr.Data)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "active", decoded.VisitorInfo.Status)

	_, err = suite.service.RegisterEntry(visitor.ID, "guard-1")
	require.NoError(suite.T(), err)
	decoded, err = suite.service.DecodeQR(qr.Data)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "dentro", decoded.VisitorInfo.Status)

	// 访客已删除时仍返回二维码内容
	require.NoError(suite.T(), suite.service.DeleteVisitor(visitor.ID))
	decoded, err = suite.service.DecodeQR(qr.Data)
	require.NoError(suite.T(), err)
	assert.Empty(suite.T(), decoded.VisitorInfo.Status)
	assert.Equal(suite.T(), "Juan", decoded.VisitorInfo.VisitorName)
}

func (suite *VisitorServiceTestSuite) TestFailedEntryReleasesRedisPass() {
	store := newMemoryRedis()
	suite.service.Ledger = NewRedisPassLedger(store)
	visitor := suite.createVisitor("Pedro", "one-time")
	key := fmt.Sprintf("one_time_pass:%d", visitor.ID)

	require.NoError(suite.T(), suite.db.Migrator().DropTable(&models.HouseAccess{}))
	_, err := suite.service.RegisterEntry(visitor.ID, "guard-1")
	require.Error(suite.T(), err)
	assert.NotContains(suite.T(), store.keys, key)

	stored, err := suite.service.GetVisitorByID(visitor.ID)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "active", stored.Status)

	require.NoError(suite.T(), suite.db.AutoMigrate(&models.HouseAccess{}))
	_, err = suite.service.RegisterEntry(visitor.ID, "guard-1")
	require.NoError(suite.T(), err)
	assert.Contains(suite.T(), store.keys, key)

	_, err = suite.service.RegisterEntry(visitor.ID, "guard-1")
	assert.ErrorIs(suite.T(), err, ErrPassAlreadyUsed)
}

func TestVisitorServiceTestSuite(t *testing.T) {
	suite.Run(t, new(VisitorServiceTestSuite))
}
