package domain

import (
	"time"

	"github.com/google/uuid"
)

// Rooster is the live tracked unit, keyed by ring number (1:1 with a
// RingPoolEntry once assigned). The registry row is a denormalized cache over
// the movement ledger: status and current producer must always match the
// result of replaying the ring's movements in date order.
//
// CurrentProducerID is retained as last-known owner after an OUT movement;
// ACTIVE-ness is carried solely by Status.
type Rooster struct {
	RingNumber        string     `gorm:"column:ring_number;primaryKey" json:"ring_number"`
	Status            string     `gorm:"column:status;not null;default:ACTIVE;index" json:"status"`
	CurrentProducerID *uuid.UUID `gorm:"column:current_producer_id;type:uuid;index" json:"current_producer_id"`
	CreatedAt         time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt         time.Time  `gorm:"column:updated_at" json:"updated_at"`
}

func (Rooster) TableName() string {
	return "roosters"
}
