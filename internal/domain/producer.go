package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Producer is a tenant entity that owns rings. Referenced by roosters and
// movements via id; never deleted in observed flows.
type Producer struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"column:name;not null" json:"name"`
	IsActive  bool      `gorm:"column:is_active;not null;default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Producer) TableName() string {
	return "producers"
}

func (p *Producer) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
