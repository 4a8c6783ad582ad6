package domain

import (
	"time"
)

// RingPoolEntry is one generated ring identifier. Created in bulk with status
// AVAILABLE; flips to USED exactly once when assigned. Never deleted — it is
// the immutable audit record of issuance.
type RingPoolEntry struct {
	RingNumber string    `gorm:"column:ring_number;primaryKey" json:"ring_number"`
	BatchYear  int       `gorm:"column:batch_year;not null;index:idx_ring_pool_batch" json:"batch_year"`
	BatchMonth int       `gorm:"column:batch_month;not null;index:idx_ring_pool_batch" json:"batch_month"`
	Seq        int       `gorm:"column:seq;not null" json:"seq"`
	Status     string    `gorm:"column:status;not null;default:AVAILABLE" json:"status"`
	CreatedAt  time.Time `gorm:"column:created_at" json:"created_at"`
}

func (RingPoolEntry) TableName() string {
	return "ring_pool"
}
