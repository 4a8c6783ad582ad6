package provisioning

import (
	"context"

	"anilhas-backend/internal/domain"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// IdentityStore abstracts the authentication identity writes. It is the
// second privilege domain of the provisioning saga: the service compensates
// across it and the data tables manually, so each write must be individually
// reversible.
type IdentityStore interface {
	CreateIdentity(ctx context.Context, email, password string) (uuid.UUID, error)
	UpdatePassword(ctx context.Context, userID uuid.UUID, password string) error
	DeleteIdentity(ctx context.Context, userID uuid.UUID) error
}

// GormIdentityStore keeps identities in the users table with bcrypt hashes.
type GormIdentityStore struct {
	DB *gorm.DB
}

func (g *GormIdentityStore) CreateIdentity(ctx context.Context, email, password string) (uuid.UUID, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	if err != nil {
		return uuid.Nil, err
	}
	u := &domain.User{Email: email, PasswordHash: string(hash)}
	if err := g.DB.WithContext(ctx).Create(u).Error; err != nil {
		return uuid.Nil, err
	}
	return u.UserID, nil
}

func (g *GormIdentityStore) UpdatePassword(ctx context.Context, userID uuid.UUID, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	if err != nil {
		return err
	}
	res := g.DB.WithContext(ctx).Model(&domain.User{}).
		Where("user_id = ?", userID).
		Update("password_hash", string(hash))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (g *GormIdentityStore) DeleteIdentity(ctx context.Context, userID uuid.UUID) error {
	return g.DB.WithContext(ctx).Delete(&domain.User{}, "user_id = ?", userID).Error
}
