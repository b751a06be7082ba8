package repository

import (
	"context"

	"github.com/jhoicas/CRM-api/internal/domain/entity"
)

// SegmentRepository define el puerto de persistencia para SavedSegment.
type SegmentRepository interface {
	// List ordena por creado_en descendente.
	List(ctx context.Context) ([]entity.SavedSegment, error)
	GetByID(ctx context.Context, id string) (*entity.SavedSegment, error)
	Create(ctx context.Context, s *entity.SavedSegment) error
	Update(ctx context.Context, s *entity.SavedSegment) error
	Delete(ctx context.Context, id string) error
}
