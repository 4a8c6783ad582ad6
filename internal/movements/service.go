package movements

import (
	"context"
	"time"

	"anilhas-backend/internal/access"
	"anilhas-backend/internal/constants"
	"anilhas-backend/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const defaultLimit = 100
const maxLimit = 1000

// Append writes one ledger record inside the caller's transaction. It is the
// only write path to the movements table; no update or delete exists. The
// shape invariant is checked before the insert: IN sets only to, OUT sets
// only from, TRANSFER sets both and they must differ.
func Append(tx *gorm.DB, m *domain.Movement) error {
	switch m.Type {
	case constants.MovementIn:
		if m.ToProducerID == nil || m.FromProducerID != nil {
			return ErrMalformedMovement
		}
	case constants.MovementOut:
		if m.FromProducerID == nil || m.ToProducerID != nil {
			return ErrMalformedMovement
		}
	case constants.MovementTransfer:
		if m.FromProducerID == nil || m.ToProducerID == nil || *m.FromProducerID == *m.ToProducerID {
			return ErrMalformedMovement
		}
	default:
		return ErrMalformedMovement
	}
	return tx.Create(m).Error
}

// Filters narrows a ledger query. Zero values mean "no filter".
type Filters struct {
	Type       string
	ProducerID *uuid.UUID
	From       *time.Time
	To         *time.Time
	OutReason  string
	Limit      int
}

// Service is the ledger read side.
type Service struct {
	DB *gorm.DB
}

// Query returns movements ordered by date descending, visibility-filtered by
// scope. Producer scope sees only rows where its producer appears as origin
// or destination.
func (s *Service) Query(ctx context.Context, scope access.Scope, f Filters) ([]domain.Movement, error) {
	q := s.DB.WithContext(ctx).Model(&domain.Movement{})

	if !scope.Global {
		q = q.Where("from_producer_id = ? OR to_producer_id = ?", scope.ProducerID, scope.ProducerID)
	}
	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}
	if f.ProducerID != nil {
		q = q.Where("from_producer_id = ? OR to_producer_id = ?", *f.ProducerID, *f.ProducerID)
	}
	if f.From != nil {
		q = q.Where("date >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("date <= ?", *f.To)
	}
	if f.OutReason != "" {
		if !constants.IsValidOutReason(f.OutReason) {
			return nil, ErrInvalidReason
		}
		q = q.Where("out_reason = ?", f.OutReason)
	}

	limit := f.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	var rows []domain.Movement
	err := q.Order("date desc").Limit(limit).Find(&rows).Error
	return rows, err
}

// ForRing returns the full movement history of one ring in date order, the
// replay order that reconstructs registry state.
func (s *Service) ForRing(ctx context.Context, ringNumber string) ([]domain.Movement, error) {
	var rows []domain.Movement
	err := s.DB.WithContext(ctx).
		Where("ring_number = ?", ringNumber).
		Order("date asc").
		Find(&rows).Error
	return rows, err
}
