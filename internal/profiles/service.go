package profiles

import (
	"context"
	"errors"
	"strings"

	"anilhas-backend/internal/domain"
	"anilhas-backend/internal/pkg/validation"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrProfileNotFound = errors.New("Profile not found")
	ErrInvalidNIF      = errors.New("Invalid NIF (must be 9 digits)")
)

// Service reads and updates the caller's own profile row. Role, active flag
// and producer binding are admin-managed and never touched here.
type Service struct {
	DB *gorm.DB
}

func (s *Service) Get(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	var profile domain.Profile
	if err := s.DB.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// UpdateInput carries the self-editable contact fields. A nil field is left
// untouched; a blank string clears the column.
type UpdateInput struct {
	Name    *string
	Phone   *string
	Address *string
	NIF     *string
}

func (s *Service) Update(ctx context.Context, userID uuid.UUID, in UpdateInput) (*domain.Profile, error) {
	columns := map[string]interface{}{}
	if in.Name != nil {
		columns["name"] = trimmedOrNull(*in.Name)
	}
	if in.Phone != nil {
		columns["phone"] = trimmedOrNull(*in.Phone)
	}
	if in.Address != nil {
		columns["address"] = trimmedOrNull(*in.Address)
	}
	if in.NIF != nil {
		nif, ok := validation.NormalizeNIF(*in.NIF)
		if !ok {
			return nil, ErrInvalidNIF
		}
		if nif == "" {
			columns["nif"] = nil
		} else {
			columns["nif"] = nif
		}
	}

	if len(columns) > 0 {
		res := s.DB.WithContext(ctx).Model(&domain.Profile{}).
			Where("user_id = ?", userID).
			Updates(columns)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, ErrProfileNotFound
		}
	}
	return s.Get(ctx, userID)
}

func trimmedOrNull(s string) interface{} {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil
	}
	return trimmed
}
