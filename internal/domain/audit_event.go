package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AuditEvent records an admin action (user created, password reset, active
// toggled) with a JSON payload. Payloads never contain passwords.
type AuditEvent struct {
	ID          uuid.UUID      `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	ActorUserID uuid.UUID      `gorm:"column:actor_user_id;type:uuid;not null;index" json:"actor_user_id"`
	Action      string         `gorm:"column:action;not null;index" json:"action"`
	EventData   datatypes.JSON `gorm:"column:event_data" json:"event_data"`
	CreatedAt   time.Time      `gorm:"column:created_at" json:"created_at"`
}

func (AuditEvent) TableName() string {
	return "audit_events"
}

func (e *AuditEvent) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
