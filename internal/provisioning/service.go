package provisioning

import (
	"context"
	"strings"

	"anilhas-backend/internal/audit"
	"anilhas-backend/internal/constants"
	"anilhas-backend/internal/domain"
	"anilhas-backend/internal/pkg/validation"
	"anilhas-backend/internal/producers"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service implements the admin-only provisioning saga. The three writes
// (producer, identity, profile) span two privilege domains and cannot share
// a transaction, so failures are compensated with explicit deletes.
type Service struct {
	DB        *gorm.DB
	Identity  IdentityStore
	Producers *producers.Service
	Audit     *audit.Service
}

// CreateUserInput is the admin create-user request.
type CreateUserInput struct {
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Phone      *string `json:"phone"`
	Address    *string `json:"address"`
	NIF        *string `json:"nif"`
	Role       string  `json:"role"`
	ProducerID *string `json:"producer_id"`
}

// CreateProducerAccount creates producer + identity + profile as one logical
// unit. Canonical policy: when role=PRODUCER and no producer_id is supplied,
// a Producer is auto-created from the name; a supplied producer_id must
// reference an existing active producer. All validation happens before any
// write. Returns the one-time temp password and the created profile.
func (s *Service) CreateProducerAccount(ctx context.Context, actorUserID uuid.UUID, in CreateUserInput) (string, *domain.Profile, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return "", nil, ErrNameRequired
	}
	email := strings.TrimSpace(strings.ToLower(in.Email))
	if !validation.IsValidEmail(email) {
		return "", nil, ErrInvalidEmail
	}
	if !constants.IsValidRole(in.Role) {
		return "", nil, ErrInvalidRole
	}
	var nif *string
	if in.NIF != nil && strings.TrimSpace(*in.NIF) != "" {
		normalized, ok := validation.NormalizeNIF(*in.NIF)
		if !ok {
			return "", nil, ErrInvalidNIF
		}
		if normalized != "" {
			nif = &normalized
		}
	}

	var existing domain.User
	if err := s.DB.WithContext(ctx).Where("email = ?", email).First(&existing).Error; err == nil {
		return "", nil, ErrEmailTaken
	} else if err != gorm.ErrRecordNotFound {
		return "", nil, err
	}

	// Step 1: resolve or create the producer.
	var producerID *uuid.UUID
	producerCreated := false
	if in.Role == constants.Producer {
		if in.ProducerID != nil && *in.ProducerID != "" {
			id, err := uuid.Parse(*in.ProducerID)
			if err != nil {
				return "", nil, ErrProducerNotFound
			}
			var p domain.Producer
			if err := s.DB.WithContext(ctx).Where("id = ? AND is_active = ?", id, true).First(&p).Error; err != nil {
				if err == gorm.ErrRecordNotFound {
					return "", nil, ErrProducerNotFound
				}
				return "", nil, err
			}
			producerID = &p.ID
		} else {
			p, err := s.Producers.Create(ctx, name)
			if err != nil {
				return "", nil, err
			}
			producerID = &p.ID
			producerCreated = true
		}
	}

	tempPassword, err := GenerateTempPassword()
	if err != nil {
		s.rollbackProducer(ctx, producerCreated, producerID)
		return "", nil, err
	}

	// Step 2: authentication identity. On failure, roll back step 1.
	userID, err := s.Identity.CreateIdentity(ctx, email, tempPassword)
	if err != nil {
		s.rollbackProducer(ctx, producerCreated, producerID)
		return "", nil, err
	}

	// Step 3: profile. On failure, roll back steps 1 and 2.
	profile := &domain.Profile{
		UserID:     userID,
		Email:      email,
		Role:       in.Role,
		IsActive:   true,
		ProducerID: producerID,
		Name:       &name,
		Phone:      in.Phone,
		Address:    in.Address,
		NIF:        nif,
	}
	if err := s.DB.WithContext(ctx).Create(profile).Error; err != nil {
		_ = s.Identity.DeleteIdentity(ctx, userID)
		s.rollbackProducer(ctx, producerCreated, producerID)
		return "", nil, err
	}

	s.Audit.Record(ctx, actorUserID, audit.ActionUserCreated, map[string]interface{}{
		"user_id":          userID.String(),
		"email":            email,
		"role":             in.Role,
		"producer_id":      uuidStr(producerID),
		"producer_created": producerCreated,
	})

	return tempPassword, profile, nil
}

func (s *Service) rollbackProducer(ctx context.Context, created bool, id *uuid.UUID) {
	if created && id != nil {
		_ = s.Producers.Delete(ctx, *id)
	}
}

// ResetPassword sets a fresh one-time temp password on an existing identity.
func (s *Service) ResetPassword(ctx context.Context, actorUserID, targetUserID uuid.UUID) (string, error) {
	tempPassword, err := GenerateTempPassword()
	if err != nil {
		return "", err
	}
	if err := s.Identity.UpdatePassword(ctx, targetUserID, tempPassword); err != nil {
		return "", err
	}
	s.Audit.Record(ctx, actorUserID, audit.ActionPasswordReset, map[string]interface{}{
		"user_id": targetUserID.String(),
	})
	return tempPassword, nil
}

// ToggleActive flips a profile's is_active flag. A deactivated profile loses
// access on its next request (the gate re-reads profiles every resolution).
func (s *Service) ToggleActive(ctx context.Context, actorUserID, targetUserID uuid.UUID, isActive bool) (bool, error) {
	res := s.DB.WithContext(ctx).Model(&domain.Profile{}).
		Where("user_id = ?", targetUserID).
		Update("is_active", isActive)
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		return false, ErrUserNotFound
	}
	s.Audit.Record(ctx, actorUserID, audit.ActionActiveToggled, map[string]interface{}{
		"user_id":   targetUserID.String(),
		"is_active": isActive,
	})
	return isActive, nil
}

// ListUsers returns all profiles, newest first.
func (s *Service) ListUsers(ctx context.Context) ([]domain.Profile, error) {
	var rows []domain.Profile
	err := s.DB.WithContext(ctx).Order("created_at desc").Find(&rows).Error
	return rows, err
}

func uuidStr(id *uuid.UUID) interface{} {
	if id == nil {
		return nil
	}
	return id.String()
}
