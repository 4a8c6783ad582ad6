package roosters

import (
	"context"

	"anilhas-backend/internal/access"
	"anilhas-backend/internal/constants"
	"anilhas-backend/internal/domain"

	"gorm.io/gorm"
)

// Service is the registry read side: current-state lookups over the rooster
// cache plus the per-ring movement timeline.
type Service struct {
	DB *gorm.DB
}

// ListActive returns ACTIVE roosters visible to the scope, ordered by ring
// number.
func (s *Service) ListActive(ctx context.Context, scope access.Scope) ([]domain.Rooster, error) {
	q := s.DB.WithContext(ctx).Where("status = ?", constants.RoosterActive)
	if !scope.Global {
		q = q.Where("current_producer_id = ?", scope.ProducerID)
	}
	var rows []domain.Rooster
	err := q.Order("ring_number asc").Find(&rows).Error
	return rows, err
}

// GetTimeline returns a rooster and its movements in date order. Producer
// scope requires the ring to be currently or historically linked to the
// producer: current owner, or origin/destination of some movement.
func (s *Service) GetTimeline(ctx context.Context, scope access.Scope, ringNumber string) (*domain.Rooster, []domain.Movement, error) {
	var rooster domain.Rooster
	if err := s.DB.WithContext(ctx).Where("ring_number = ?", ringNumber).First(&rooster).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil, ErrRingNotFound
		}
		return nil, nil, err
	}

	if !scope.Global {
		linked := rooster.CurrentProducerID != nil && *rooster.CurrentProducerID == scope.ProducerID
		if !linked {
			var n int64
			if err := s.DB.WithContext(ctx).Model(&domain.Movement{}).
				Where("ring_number = ? AND (from_producer_id = ? OR to_producer_id = ?)", ringNumber, scope.ProducerID, scope.ProducerID).
				Count(&n).Error; err != nil {
				return nil, nil, err
			}
			linked = n > 0
		}
		if !linked {
			return nil, nil, ErrNotLinked
		}
	}

	var history []domain.Movement
	if err := s.DB.WithContext(ctx).
		Where("ring_number = ?", ringNumber).
		Order("date asc").
		Find(&history).Error; err != nil {
		return nil, nil, err
	}
	return &rooster, history, nil
}
