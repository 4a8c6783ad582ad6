package audit

import (
	"context"
	"encoding/json"

	"anilhas-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Actions recorded by provisioning.
const (
	ActionUserCreated   = "user_created"
	ActionPasswordReset = "password_reset"
	ActionActiveToggled = "active_toggled"
)

// Service appends admin-action audit events. Payloads must never contain
// passwords.
type Service struct {
	DB *gorm.DB
}

// Record appends one audit event. A failed audit write is logged but does not
// fail the admin action that triggered it.
func (s *Service) Record(ctx context.Context, actorUserID uuid.UUID, action string, payload map[string]interface{}) {
	b, err := json.Marshal(payload)
	if err != nil {
		log.Warn().Err(err).Str("action", action).Msg("audit: could not marshal payload")
		return
	}
	event := &domain.AuditEvent{
		ActorUserID: actorUserID,
		Action:      action,
		EventData:   datatypes.JSON(b),
	}
	if err := s.DB.WithContext(ctx).Create(event).Error; err != nil {
		log.Warn().Err(err).Str("action", action).Msg("audit: could not write event")
	}
}

// List returns recent audit events, newest first.
func (s *Service) List(ctx context.Context, limit int) ([]domain.AuditEvent, error) {
	if limit <= 0 {
		limit = 100
	}
	var rows []domain.AuditEvent
	err := s.DB.WithContext(ctx).Order("created_at desc").Limit(limit).Find(&rows).Error
	return rows, err
}
