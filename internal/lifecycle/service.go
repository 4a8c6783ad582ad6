package lifecycle

import (
	"context"
	"time"

	"anilhas-backend/internal/access"
	"anilhas-backend/internal/constants"
	"anilhas-backend/internal/domain"
	"anilhas-backend/internal/movements"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Service orchestrates the ring lifecycle state machine:
//
//	AVAILABLE → ACTIVE → EXITED, with ACTIVE→ACTIVE owner changes on TRANSFER.
//
// Every transition commits pool/registry/ledger rows in one transaction per
// ring, guarded by conditional updates so concurrent calls on the same ring
// cannot both succeed. EXITED is terminal.
type Service struct {
	DB *gorm.DB
}

// AssignInput is the admin entry/assign request: any AVAILABLE pool ring.
type AssignInput struct {
	Rings      []string
	ProducerID uuid.UUID
	WeightKg   *decimal.Decimal
	Notes      *string
}

// AssignRings assigns AVAILABLE rings to a producer (admin path). Rings that
// are not AVAILABLE fail individually and are skipped; the returned count is
// the number of rings processed.
func (s *Service) AssignRings(ctx context.Context, in AssignInput) (int, error) {
	if len(in.Rings) == 0 {
		return 0, ErrNoRings
	}
	if in.WeightKg != nil && !in.WeightKg.IsPositive() {
		return 0, ErrInvalidWeight
	}
	if err := s.requireActiveProducer(ctx, in.ProducerID); err != nil {
		return 0, err
	}

	count := 0
	for _, ring := range in.Rings {
		err := s.assignOne(ctx, ring, in.ProducerID, in.WeightKg, in.Notes, 0, 0)
		if err == nil {
			count++
			continue
		}
		if IsStateConflict(err) {
			continue
		}
		return count, err
	}
	return count, nil
}

// AssignRingsCurrentMonth is the producer self-service entry path: rings must
// belong to the current calendar month's batch and are assigned to the
// caller's own producer. A ring outside the current month is an authorization
// failure and aborts the call.
func (s *Service) AssignRingsCurrentMonth(ctx context.Context, actor *access.Actor, ringList []string) (int, error) {
	scope := actor.Scope()
	if scope.Global || actor.ProducerID == nil {
		return 0, ErrMissingProducerScope
	}
	if len(ringList) == 0 {
		return 0, ErrNoRings
	}

	now := time.Now().UTC()
	year, month := now.Year(), int(now.Month())

	count := 0
	for _, ring := range ringList {
		err := s.assignOne(ctx, ring, *actor.ProducerID, nil, nil, year, month)
		if err == nil {
			count++
			continue
		}
		if err == ErrOutsideCurrentMonth {
			return count, err
		}
		if IsStateConflict(err) {
			continue
		}
		return count, err
	}
	return count, nil
}

// assignOne performs the AVAILABLE→ACTIVE transition for one ring atomically.
// When requireYear/requireMonth are non-zero the ring must belong to that
// batch (producer self-service scope).
func (s *Service) assignOne(ctx context.Context, ring string, producerID uuid.UUID, weight *decimal.Decimal, notes *string, requireYear, requireMonth int) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if requireYear != 0 {
			var entry domain.RingPoolEntry
			if err := tx.Where("ring_number = ?", ring).First(&entry).Error; err != nil {
				if err == gorm.ErrRecordNotFound {
					return ErrRingNotAvailable
				}
				return err
			}
			if entry.BatchYear != requireYear || entry.BatchMonth != requireMonth {
				return ErrOutsideCurrentMonth
			}
		}

		// Conditional flip AVAILABLE→USED; RowsAffected 0 means the ring was
		// missing or already used.
		res := tx.Model(&domain.RingPoolEntry{}).
			Where("ring_number = ? AND status = ?", ring, constants.PoolAvailable).
			Update("status", constants.PoolUsed)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrRingNotAvailable
		}

		pid := producerID
		if err := tx.Create(&domain.Rooster{
			RingNumber:        ring,
			Status:            constants.RoosterActive,
			CurrentProducerID: &pid,
		}).Error; err != nil {
			return err
		}

		return movements.Append(tx, &domain.Movement{
			Type:         constants.MovementIn,
			RingNumber:   ring,
			ToProducerID: &pid,
			WeightKg:     weight,
			Notes:        notes,
		})
	})
}

// ExitRooster performs the ACTIVE→EXITED transition for one ring (single
// shape: fails fast). Weight is optional here; when present it must be
// positive.
func (s *Service) ExitRooster(ctx context.Context, actor *access.Actor, ring, reason string, weight *decimal.Decimal, notes *string) error {
	if !constants.IsValidOutReason(reason) {
		return ErrInvalidReason
	}
	if weight != nil && !weight.IsPositive() {
		return ErrInvalidWeight
	}
	return s.exitOne(ctx, actor.Scope(), ring, reason, weight, notes)
}

// ExitItem is one ring of a detailed bulk exit. Weight is required.
type ExitItem struct {
	RingNumber string           `json:"ring_number"`
	Reason     string           `json:"reason"`
	WeightKg   *decimal.Decimal `json:"weight_kg"`
}

// ExitRoostersDetailed validates every item before any write (the whole batch
// is rejected on a validation error), then commits per ring: a state conflict
// on one ring never aborts the siblings. Returns the count of rings exited.
func (s *Service) ExitRoostersDetailed(ctx context.Context, actor *access.Actor, items []ExitItem, notes *string) (int, error) {
	if len(items) == 0 {
		return 0, ErrNoRings
	}
	for _, it := range items {
		if it.RingNumber == "" {
			return 0, ErrNoRings
		}
		if !constants.IsValidOutReason(it.Reason) {
			return 0, ErrInvalidReason
		}
		if it.WeightKg == nil || !it.WeightKg.IsPositive() {
			return 0, ErrInvalidWeight
		}
	}

	scope := actor.Scope()
	count := 0
	for _, it := range items {
		err := s.exitOne(ctx, scope, it.RingNumber, it.Reason, it.WeightKg, notes)
		if err == nil {
			count++
			continue
		}
		if IsStateConflict(err) {
			continue
		}
		return count, err
	}
	return count, nil
}

func (s *Service) exitOne(ctx context.Context, scope access.Scope, ring, reason string, weight *decimal.Decimal, notes *string) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rooster domain.Rooster
		if err := tx.Where("ring_number = ?", ring).First(&rooster).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrRingNotFound
			}
			return err
		}
		if rooster.CurrentProducerID == nil {
			return ErrNotOwned
		}
		if !scope.Global && *rooster.CurrentProducerID != scope.ProducerID {
			return ErrNotOwned
		}

		// Conditional ACTIVE→EXITED; the loser of a concurrent exit sees 0
		// rows here. CurrentProducerID is retained as last-known owner.
		res := tx.Model(&domain.Rooster{}).
			Where("ring_number = ? AND status = ?", ring, constants.RoosterActive).
			Update("status", constants.RoosterExited)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrAlreadyExited
		}

		from := *rooster.CurrentProducerID
		r := reason
		return movements.Append(tx, &domain.Movement{
			Type:           constants.MovementOut,
			RingNumber:     ring,
			FromProducerID: &from,
			OutReason:      &r,
			WeightKg:       weight,
			Notes:          notes,
		})
	})
}

// TransferRooster performs the ACTIVE→ACTIVE owner change for one ring
// (single shape: fails fast).
func (s *Service) TransferRooster(ctx context.Context, actor *access.Actor, ring string, toProducerID uuid.UUID, reason string, weight *decimal.Decimal, notes *string) error {
	if !constants.IsValidTransferReason(reason) {
		return ErrInvalidReason
	}
	if weight != nil && !weight.IsPositive() {
		return ErrInvalidWeight
	}
	return s.transferOne(ctx, actor.Scope(), ring, toProducerID, reason, weight, notes)
}

// TransferItem is one ring of a detailed bulk transfer.
type TransferItem struct {
	RingNumber   string           `json:"ring_number"`
	ToProducerID uuid.UUID        `json:"to_producer_id"`
	Reason       string           `json:"reason"`
	WeightKg     *decimal.Decimal `json:"weight_kg"`
}

// TransferRoostersDetailed validates every item's reason and weight before
// any write, then processes each ring independently and reports per-item
// success or failure.
func (s *Service) TransferRoostersDetailed(ctx context.Context, actor *access.Actor, items []TransferItem, notes *string) (*BulkReport, error) {
	if len(items) == 0 {
		return nil, ErrNoRings
	}
	for _, it := range items {
		if it.RingNumber == "" {
			return nil, ErrNoRings
		}
		if !constants.IsValidTransferReason(it.Reason) {
			return nil, ErrInvalidReason
		}
		if it.WeightKg != nil && !it.WeightKg.IsPositive() {
			return nil, ErrInvalidWeight
		}
	}

	scope := actor.Scope()
	report := &BulkReport{Items: make([]ItemResult, 0, len(items))}
	for _, it := range items {
		err := s.transferOne(ctx, scope, it.RingNumber, it.ToProducerID, it.Reason, it.WeightKg, notes)
		if err != nil && !IsStateConflict(err) {
			return report, err
		}
		report.add(it.RingNumber, err)
	}
	return report, nil
}

func (s *Service) transferOne(ctx context.Context, scope access.Scope, ring string, toProducerID uuid.UUID, reason string, weight *decimal.Decimal, notes *string) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rooster domain.Rooster
		if err := tx.Where("ring_number = ?", ring).First(&rooster).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrRingNotFound
			}
			return err
		}
		if rooster.Status != constants.RoosterActive {
			return ErrAlreadyExited
		}
		if rooster.CurrentProducerID == nil {
			return ErrNotOwned
		}
		if !scope.Global && *rooster.CurrentProducerID != scope.ProducerID {
			return ErrNotOwned
		}
		if *rooster.CurrentProducerID == toProducerID {
			return ErrSameProducer
		}

		var dest domain.Producer
		if err := tx.Where("id = ? AND is_active = ?", toProducerID, true).First(&dest).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrProducerNotFound
			}
			return err
		}

		from := *rooster.CurrentProducerID

		// Conditional owner swap: status must still be ACTIVE and the owner
		// unchanged since the read above.
		res := tx.Model(&domain.Rooster{}).
			Where("ring_number = ? AND status = ? AND current_producer_id = ?", ring, constants.RoosterActive, from).
			Update("current_producer_id", toProducerID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrAlreadyExited
		}

		to := toProducerID
		r := reason
		return movements.Append(tx, &domain.Movement{
			Type:           constants.MovementTransfer,
			RingNumber:     ring,
			FromProducerID: &from,
			ToProducerID:   &to,
			TransferReason: &r,
			WeightKg:       weight,
			Notes:          notes,
		})
	})
}

func (s *Service) requireActiveProducer(ctx context.Context, id uuid.UUID) error {
	var p domain.Producer
	if err := s.DB.WithContext(ctx).Where("id = ? AND is_active = ?", id, true).First(&p).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return ErrProducerNotFound
		}
		return err
	}
	return nil
}
