package rings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"anilhas-backend/internal/constants"
	"anilhas-backend/internal/domain"

	"gorm.io/gorm"
)

// Service is the ring pool manager: batch generation and pool listing.
type Service struct {
	DB *gorm.DB
}

// FormatRingNumber formats a ring identifier as {year}.{month}.{seq:04d},
// e.g. "2026.1.0001". Month is not zero-padded; seq is padded to at least 4.
func FormatRingNumber(year, month, seq int) string {
	return fmt.Sprintf("%d.%d.%04d", year, month, seq)
}

// GenerateBatch creates count new AVAILABLE pool entries for (year, month),
// continuing the batch's sequence from its current maximum. Sequence numbers
// are never reused; the unique ring_number key makes the loser of a
// concurrent generation fail instead of duplicating. The loser re-reads the
// sequence and retries once, so two admins generating at the same time both
// get a batch; a collision that survives the retry surfaces as
// ErrBatchConflict.
func (s *Service) GenerateBatch(ctx context.Context, year, month, count int) ([]string, error) {
	if year < 2000 || year > 2100 {
		return nil, ErrInvalidYear
	}
	if month < 1 || month > 12 {
		return nil, ErrInvalidMonth
	}
	if count < 1 || count > 5000 {
		return nil, ErrInvalidCount
	}

	ringNumbers, err := s.generateOnce(ctx, year, month, count)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		ringNumbers, err = s.generateOnce(ctx, year, month, count)
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, ErrBatchConflict
	}
	if err != nil {
		return nil, err
	}
	return ringNumbers, nil
}

func (s *Service) generateOnce(ctx context.Context, year, month, count int) ([]string, error) {
	var ringNumbers []string
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var maxSeq int
		if err := tx.Model(&domain.RingPoolEntry{}).
			Where("batch_year = ? AND batch_month = ?", year, month).
			Select("COALESCE(MAX(seq), 0)").
			Scan(&maxSeq).Error; err != nil {
			return err
		}

		now := time.Now().UTC()
		entries := make([]domain.RingPoolEntry, 0, count)
		ringNumbers = make([]string, 0, count)
		for i := 1; i <= count; i++ {
			seq := maxSeq + i
			rn := FormatRingNumber(year, month, seq)
			entries = append(entries, domain.RingPoolEntry{
				RingNumber: rn,
				BatchYear:  year,
				BatchMonth: month,
				Seq:        seq,
				Status:     constants.PoolAvailable,
				CreatedAt:  now,
			})
			ringNumbers = append(ringNumbers, rn)
		}
		return tx.Create(&entries).Error
	})
	if err != nil {
		return nil, err
	}
	return ringNumbers, nil
}

// ListPool returns the pool entries of a (year, month) batch ordered by
// sequence ascending. Callers filter for AVAILABLE client-side.
func (s *Service) ListPool(ctx context.Context, year, month int) ([]domain.RingPoolEntry, error) {
	if year < 2000 || year > 2100 {
		return nil, ErrInvalidYear
	}
	if month < 1 || month > 12 {
		return nil, ErrInvalidMonth
	}
	var rows []domain.RingPoolEntry
	err := s.DB.WithContext(ctx).
		Where("batch_year = ? AND batch_month = ?", year, month).
		Order("seq asc").
		Find(&rows).Error
	return rows, err
}
