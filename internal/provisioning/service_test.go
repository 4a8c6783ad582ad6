package provisioning

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"anilhas-backend/internal/audit"
	"anilhas-backend/internal/constants"
	"anilhas-backend/internal/domain"
	"anilhas-backend/internal/producers"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// failingIdentityStore wraps the real store and fails selected steps.
type failingIdentityStore struct {
	inner         IdentityStore
	failCreate    bool
	deletedIDs    []uuid.UUID
	createdUserID uuid.UUID
}

func (f *failingIdentityStore) CreateIdentity(ctx context.Context, email, password string) (uuid.UUID, error) {
	if f.failCreate {
		return uuid.Nil, errors.New("identity backend unavailable")
	}
	id, err := f.inner.CreateIdentity(ctx, email, password)
	f.createdUserID = id
	return id, err
}

func (f *failingIdentityStore) UpdatePassword(ctx context.Context, userID uuid.UUID, password string) error {
	return f.inner.UpdatePassword(ctx, userID, password)
}

func (f *failingIdentityStore) DeleteIdentity(ctx context.Context, userID uuid.UUID) error {
	f.deletedIDs = append(f.deletedIDs, userID)
	return f.inner.DeleteIdentity(ctx, userID)
}

func setupProvisioningTest(t *testing.T) (*Service, *failingIdentityStore, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&domain.Producer{},
		&domain.User{},
		&domain.Profile{},
		&domain.AuditEvent{},
	))
	store := &failingIdentityStore{inner: &GormIdentityStore{DB: db}}
	svc := &Service{
		DB:        db,
		Identity:  store,
		Producers: &producers.Service{DB: db},
		Audit:     &audit.Service{DB: db},
	}
	return svc, store, db
}

var tempPasswordRe = regexp.MustCompile(`^Galo-[a-z0-9]{4}-[a-z0-9]{4}!$`)

func TestGenerateTempPassword_Format(t *testing.T) {
	pw, err := GenerateTempPassword()
	require.NoError(t, err)
	assert.Regexp(t, tempPasswordRe, pw)
}

func TestCreateProducerAccount_HappyPath(t *testing.T) {
	svc, _, db := setupProvisioningTest(t)

	pw, profile, err := svc.CreateProducerAccount(context.Background(), uuid.New(), CreateUserInput{
		Name:  "João Silva",
		Email: "Joao@Example.com",
		Role:  constants.Producer,
	})
	require.NoError(t, err)
	assert.Regexp(t, tempPasswordRe, pw)

	// Email normalized to lowercase.
	assert.Equal(t, "joao@example.com", profile.Email)
	assert.Equal(t, constants.Producer, profile.Role)
	assert.True(t, profile.IsActive)
	require.NotNil(t, profile.ProducerID)

	// Producer auto-created from the name.
	var p domain.Producer
	require.NoError(t, db.First(&p, "id = ?", *profile.ProducerID).Error)
	assert.Equal(t, "João Silva", p.Name)
	assert.True(t, p.IsActive)

	// Identity stores the bcrypt hash, never the plaintext.
	var u domain.User
	require.NoError(t, db.First(&u, "user_id = ?", profile.UserID).Error)
	assert.NotEqual(t, pw, u.PasswordHash)
	assert.NotEmpty(t, u.PasswordHash)

	// Audit trail recorded.
	var n int64
	require.NoError(t, db.Model(&domain.AuditEvent{}).Count(&n).Error)
	assert.Equal(t, int64(1), n)
}

func TestCreateProducerAccount_AdminHasNoProducer(t *testing.T) {
	svc, _, db := setupProvisioningTest(t)

	_, profile, err := svc.CreateProducerAccount(context.Background(), uuid.New(), CreateUserInput{
		Name:  "Admin Two",
		Email: "admin2@example.com",
		Role:  constants.Admin,
	})
	require.NoError(t, err)
	assert.Nil(t, profile.ProducerID)

	var n int64
	require.NoError(t, db.Model(&domain.Producer{}).Count(&n).Error)
	assert.Equal(t, int64(0), n)
}

func TestCreateProducerAccount_Validation(t *testing.T) {
	svc, _, _ := setupProvisioningTest(t)
	ctx := context.Background()
	actor := uuid.New()

	_, _, err := svc.CreateProducerAccount(ctx, actor, CreateUserInput{Email: "a@b.com", Role: constants.Producer})
	assert.Equal(t, ErrNameRequired, err)

	_, _, err = svc.CreateProducerAccount(ctx, actor, CreateUserInput{Name: "X", Email: "not-an-email", Role: constants.Producer})
	assert.Equal(t, ErrInvalidEmail, err)

	_, _, err = svc.CreateProducerAccount(ctx, actor, CreateUserInput{Name: "X", Email: "a@b.com", Role: "SUPERUSER"})
	assert.Equal(t, ErrInvalidRole, err)

	bad := "12345"
	_, _, err = svc.CreateProducerAccount(ctx, actor, CreateUserInput{Name: "X", Email: "a@b.com", Role: constants.Producer, NIF: &bad})
	assert.Equal(t, ErrInvalidNIF, err)
}

func TestCreateProducerAccount_EmailTaken(t *testing.T) {
	svc, _, _ := setupProvisioningTest(t)
	ctx := context.Background()
	actor := uuid.New()

	_, _, err := svc.CreateProducerAccount(ctx, actor, CreateUserInput{
		Name: "First", Email: "dup@example.com", Role: constants.Producer,
	})
	require.NoError(t, err)

	_, _, err = svc.CreateProducerAccount(ctx, actor, CreateUserInput{
		Name: "Second", Email: "DUP@example.com", Role: constants.Producer,
	})
	assert.Equal(t, ErrEmailTaken, err)
}

// When identity creation fails, the auto-created producer is rolled back.
func TestCreateProducerAccount_RollbackOnIdentityFailure(t *testing.T) {
	svc, store, db := setupProvisioningTest(t)
	store.failCreate = true

	_, _, err := svc.CreateProducerAccount(context.Background(), uuid.New(), CreateUserInput{
		Name: "Rolled Back", Email: "rb@example.com", Role: constants.Producer,
	})
	require.Error(t, err)

	var n int64
	require.NoError(t, db.Model(&domain.Producer{}).Count(&n).Error)
	assert.Equal(t, int64(0), n)
	require.NoError(t, db.Model(&domain.User{}).Count(&n).Error)
	assert.Equal(t, int64(0), n)
	require.NoError(t, db.Model(&domain.Profile{}).Count(&n).Error)
	assert.Equal(t, int64(0), n)
}

// A pre-existing producer passed by id must not be deleted on failure.
func TestCreateProducerAccount_ExistingProducerSurvivesFailure(t *testing.T) {
	svc, store, db := setupProvisioningTest(t)

	p, err := svc.Producers.Create(context.Background(), "Quinta Existente")
	require.NoError(t, err)
	store.failCreate = true

	idStr := p.ID.String()
	_, _, err = svc.CreateProducerAccount(context.Background(), uuid.New(), CreateUserInput{
		Name: "X", Email: "x@example.com", Role: constants.Producer, ProducerID: &idStr,
	})
	require.Error(t, err)

	var survivor domain.Producer
	assert.NoError(t, db.First(&survivor, "id = ?", p.ID).Error)
}

func TestResetPassword_ChangesHash(t *testing.T) {
	svc, _, db := setupProvisioningTest(t)
	ctx := context.Background()

	_, profile, err := svc.CreateProducerAccount(ctx, uuid.New(), CreateUserInput{
		Name: "Reset Me", Email: "reset@example.com", Role: constants.Producer,
	})
	require.NoError(t, err)

	var before domain.User
	require.NoError(t, db.First(&before, "user_id = ?", profile.UserID).Error)

	pw, err := svc.ResetPassword(ctx, uuid.New(), profile.UserID)
	require.NoError(t, err)
	assert.Regexp(t, tempPasswordRe, pw)

	var after domain.User
	require.NoError(t, db.First(&after, "user_id = ?", profile.UserID).Error)
	assert.NotEqual(t, before.PasswordHash, after.PasswordHash)
}

func TestToggleActive(t *testing.T) {
	svc, _, db := setupProvisioningTest(t)
	ctx := context.Background()

	_, profile, err := svc.CreateProducerAccount(ctx, uuid.New(), CreateUserInput{
		Name: "Toggle Me", Email: "toggle@example.com", Role: constants.Producer,
	})
	require.NoError(t, err)

	active, err := svc.ToggleActive(ctx, uuid.New(), profile.UserID, false)
	require.NoError(t, err)
	assert.False(t, active)

	var p domain.Profile
	require.NoError(t, db.First(&p, "user_id = ?", profile.UserID).Error)
	assert.False(t, p.IsActive)

	_, err = svc.ToggleActive(ctx, uuid.New(), uuid.New(), true)
	assert.Equal(t, ErrUserNotFound, err)
}
