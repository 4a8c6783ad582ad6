package access

import (
	"context"
	"testing"

	"anilhas-backend/internal/constants"
	"anilhas-backend/internal/domain"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupGateTest(t *testing.T) (*Gate, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Profile{}))
	return &Gate{DB: db}, db
}

func TestResolveUserID_NoProfile(t *testing.T) {
	gate, _ := setupGateTest(t)
	_, err := gate.ResolveUserID(context.Background(), uuid.New())
	assert.Equal(t, ErrNoProfile, err)
}

func TestResolveUserID_InactiveProfile(t *testing.T) {
	gate, db := setupGateTest(t)
	userID := uuid.New()
	require.NoError(t, db.Create(&domain.Profile{
		UserID: userID, Email: "x@example.com", Role: constants.Admin, IsActive: false,
	}).Error)

	_, err := gate.ResolveUserID(context.Background(), userID)
	assert.Equal(t, ErrProfileInactive, err)
}

// A PRODUCER profile with no producer binding fails closed.
func TestResolveUserID_ProducerWithoutScope(t *testing.T) {
	gate, db := setupGateTest(t)
	userID := uuid.New()
	require.NoError(t, db.Create(&domain.Profile{
		UserID: userID, Email: "p@example.com", Role: constants.Producer, IsActive: true,
	}).Error)

	_, err := gate.ResolveUserID(context.Background(), userID)
	assert.Equal(t, ErrNoProducerScope, err)
}

func TestResolveUserID_AdminGetsGlobalScope(t *testing.T) {
	gate, db := setupGateTest(t)
	userID := uuid.New()
	name := "Admin"
	require.NoError(t, db.Create(&domain.Profile{
		UserID: userID, Email: "admin@example.com", Role: constants.Admin, IsActive: true, Name: &name,
	}).Error)

	actor, err := gate.ResolveUserID(context.Background(), userID)
	require.NoError(t, err)
	assert.True(t, actor.IsAdmin())
	assert.True(t, actor.Scope().Global)
	assert.Equal(t, "Admin", actor.Name)
}

func TestResolveUserID_ProducerScope(t *testing.T) {
	gate, db := setupGateTest(t)
	userID := uuid.New()
	producerID := uuid.New()
	require.NoError(t, db.Create(&domain.Profile{
		UserID: userID, Email: "p@example.com", Role: constants.Producer, IsActive: true, ProducerID: &producerID,
	}).Error)

	actor, err := gate.ResolveUserID(context.Background(), userID)
	require.NoError(t, err)
	scope := actor.Scope()
	assert.False(t, scope.Global)
	assert.Equal(t, producerID, scope.ProducerID)
}

// Deactivation takes effect on the next resolution: the gate re-reads the
// profile row every time.
func TestResolveUserID_DeactivationIsImmediate(t *testing.T) {
	gate, db := setupGateTest(t)
	userID := uuid.New()
	require.NoError(t, db.Create(&domain.Profile{
		UserID: userID, Email: "x@example.com", Role: constants.Admin, IsActive: true,
	}).Error)

	_, err := gate.ResolveUserID(context.Background(), userID)
	require.NoError(t, err)

	require.NoError(t, db.Model(&domain.Profile{}).
		Where("user_id = ?", userID).
		Update("is_active", false).Error)

	_, err = gate.ResolveUserID(context.Background(), userID)
	assert.Equal(t, ErrProfileInactive, err)
}
