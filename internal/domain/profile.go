package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Profile binds an identity to a role and (for PRODUCER) a producer scope.
// Created once per user at provisioning time; IsActive is toggled by an
// admin and checked on every request — never hard-deleted.
type Profile struct {
	ID         uuid.UUID  `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	UserID     uuid.UUID  `gorm:"column:user_id;type:uuid;not null;uniqueIndex" json:"user_id"`
	Email      string     `gorm:"column:email;not null" json:"email"`
	Role       string     `gorm:"column:role;not null" json:"role"`
	IsActive   bool       `gorm:"column:is_active;not null;default:true" json:"is_active"`
	ProducerID *uuid.UUID `gorm:"column:producer_id;type:uuid;index" json:"producer_id"`
	Name       *string    `gorm:"column:name" json:"name"`
	Phone      *string    `gorm:"column:phone" json:"phone"`
	Address    *string    `gorm:"column:address" json:"address"`
	NIF        *string    `gorm:"column:nif" json:"nif"`
	CreatedAt  time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt  time.Time  `gorm:"column:updated_at" json:"updated_at"`
}

func (Profile) TableName() string {
	return "profiles"
}

func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
