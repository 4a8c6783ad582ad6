package producers

import (
	"context"
	"errors"
	"strings"

	"anilhas-backend/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrNameRequired = errors.New("Producer name is required")

// Service manages producer rows.
type Service struct {
	DB *gorm.DB
}

// ActiveProducer is the reduced shape used by transfer destination pickers.
type ActiveProducer struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// ListActive returns active producers ordered by name.
func (s *Service) ListActive(ctx context.Context) ([]ActiveProducer, error) {
	var rows []domain.Producer
	if err := s.DB.WithContext(ctx).
		Where("is_active = ?", true).
		Order("name asc").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]ActiveProducer, 0, len(rows))
	for _, p := range rows {
		out = append(out, ActiveProducer{ID: p.ID, Name: p.Name})
	}
	return out, nil
}

// Create inserts a new active producer.
func (s *Service) Create(ctx context.Context, name string) (*domain.Producer, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}
	p := &domain.Producer{Name: name, IsActive: true}
	if err := s.DB.WithContext(ctx).Create(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

// Delete removes a producer row. Only used by provisioning's compensating
// rollback before the producer is referenced anywhere.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.DB.WithContext(ctx).Delete(&domain.Producer{}, "id = ?", id).Error
}
