package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Movement is one append-only ledger record. Rows are immutable once written:
// no update or delete path exists anywhere in the codebase. For IN only
// ToProducerID is set; for OUT only FromProducerID; for TRANSFER both are set
// and differ.
type Movement struct {
	ID             uuid.UUID        `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Type           string           `gorm:"column:type;not null;index" json:"type"`
	RingNumber     string           `gorm:"column:ring_number;not null;index" json:"ring_number"`
	Date           time.Time        `gorm:"column:date;not null;index" json:"date"`
	FromProducerID *uuid.UUID       `gorm:"column:from_producer_id;type:uuid;index" json:"from_producer_id"`
	ToProducerID   *uuid.UUID       `gorm:"column:to_producer_id;type:uuid;index" json:"to_producer_id"`
	OutReason      *string          `gorm:"column:out_reason" json:"out_reason"`
	TransferReason *string          `gorm:"column:transfer_reason" json:"transfer_reason"`
	WeightKg       *decimal.Decimal `gorm:"column:weight_kg;type:decimal(10,2)" json:"weight_kg"`
	Notes          *string          `gorm:"column:notes" json:"notes"`
	CreatedAt      time.Time        `gorm:"column:created_at" json:"created_at"`
}

func (Movement) TableName() string {
	return "movements"
}

func (m *Movement) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.Date.IsZero() {
		m.Date = time.Now().UTC()
	}
	return nil
}
