package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/CRM-api/internal/application/dto"
	"github.com/jhoicas/CRM-api/internal/domain"
	"github.com/jhoicas/CRM-api/internal/domain/entity"
	"github.com/jhoicas/CRM-api/internal/domain/repository"
)

// SegmentUseCase casos de uso CRUD para segmentos guardados.
type SegmentUseCase struct {
	repo repository.SegmentRepository
	now  func() time.Time
}

// NewSegmentUseCase construye el caso de uso.
func NewSegmentUseCase(repo repository.SegmentRepository) *SegmentUseCase {
	return &SegmentUseCase{repo: repo, now: time.Now}
}

// List lista los segmentos, el más reciente primero.
func (uc *SegmentUseCase) List(ctx context.Context) ([]dto.SegmentResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SegmentResponse, 0, len(list))
	for i := range list {
		items = append(items, *toSegmentResponse(&list[i]))
	}
	return items, nil
}

// Create guarda un segmento.
func (uc *SegmentUseCase) Create(ctx context.Context, in dto.CreateSegmentRequest) (*dto.SegmentResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Invalid("nombre", "Nombre requerido")
	}
	now := uc.now().UTC()
	seg := &entity.SavedSegment{ID: uuid.New().String(), Name: name, CreatedAt: now, UpdatedAt: now}
	if in.Filters != nil {
		seg.Filters = *in.Filters
	}
	if err := uc.repo.Create(ctx, seg); err != nil {
		return nil, err
	}
	return toSegmentResponse(seg), nil
}

// Update cambia nombre o filtros.
func (uc *SegmentUseCase) Update(ctx context.Context, id string, in dto.UpdateSegmentRequest) (*dto.SegmentResponse, error) {
	seg, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if seg == nil {
		return nil, domain.NotFound("segmento")
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.Invalid("nombre", "Nombre requerido")
		}
		seg.Name = name
	}
	if in.Filters != nil {
		seg.Filters = *in.Filters
	}
	seg.UpdatedAt = uc.now().UTC()
	if err := uc.repo.Update(ctx, seg); err != nil {
		return nil, err
	}
	return toSegmentResponse(seg), nil
}

// Delete elimina un segmento.
func (uc *SegmentUseCase) Delete(ctx context.Context, id string) error {
	seg, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if seg == nil {
		return domain.NotFound("segmento")
	}
	return uc.repo.Delete(ctx, id)
}

func toSegmentResponse(s *entity.SavedSegment) *dto.SegmentResponse {
	if s == nil {
		return nil
	}
	return &dto.SegmentResponse{
		ID:        s.ID,
		Name:      s.Name,
		Filters:   s.Filters,
		CreatedAt: s.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: s.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
