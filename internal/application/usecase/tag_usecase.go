package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	appcrm "github.com/jhoicas/CRM-api/internal/application/crm"
	"github.com/jhoicas/CRM-api/internal/application/dto"
	"github.com/jhoicas/CRM-api/internal/application/ports"
	"github.com/jhoicas/CRM-api/internal/domain"
	"github.com/jhoicas/CRM-api/internal/domain/entity"
	"github.com/jhoicas/CRM-api/internal/domain/repository"
)

// TagUseCase casos de uso CRUD para etiquetas.
type TagUseCase struct {
	repo repository.TagRepository
	tx   ports.TxRunner
	now  func() time.Time
}

// NewTagUseCase construye el caso de uso.
func NewTagUseCase(repo repository.TagRepository, tx ports.TxRunner) *TagUseCase {
	return &TagUseCase{repo: repo, tx: tx, now: time.Now}
}

// List lista las etiquetas por nombre.
func (uc *TagUseCase) List(ctx context.Context) ([]dto.TagResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return appcrm.ToTagResponses(list), nil
}

// Create crea una etiqueta.
func (uc *TagUseCase) Create(ctx context.Context, in dto.CreateTagRequest) (*dto.TagResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Invalid("nombre", "Nombre requerido")
	}
	color := strings.TrimSpace(in.Color)
	if color == "" {
		color = entity.DefaultTagColor
	}
	now := uc.now().UTC()
	tag := entity.Tag{ID: uuid.New().String(), Name: name, Color: color, CreatedAt: now, UpdatedAt: now}
	if err := uc.repo.Create(ctx, &tag); err != nil {
		return nil, err
	}
	return &appcrm.ToTagResponses([]entity.Tag{tag})[0], nil
}

// Update renombra o cambia el color.
func (uc *TagUseCase) Update(ctx context.Context, id string, in dto.UpdateTagRequest) (*dto.TagResponse, error) {
	tag, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tag == nil {
		return nil, domain.NotFound("etiqueta")
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.Invalid("nombre", "Nombre requerido")
		}
		tag.Name = name
	}
	if in.Color != nil {
		tag.Color = strings.TrimSpace(*in.Color)
	}
	tag.UpdatedAt = uc.now().UTC()
	if err := uc.repo.Update(ctx, tag); err != nil {
		return nil, err
	}
	return &appcrm.ToTagResponses([]entity.Tag{*tag})[0], nil
}

// Delete quita la etiqueta de todos los leads y la elimina.
func (uc *TagUseCase) Delete(ctx context.Context, id string) error {
	return uc.tx.Run(ctx, func(tx ports.Repos) error {
		tag, err := tx.Tags.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if tag == nil {
			return domain.NotFound("etiqueta")
		}
		if err := tx.Tags.DeleteTagLinks(ctx, id); err != nil {
			return err
		}
		return tx.Tags.Delete(ctx, id)
	})
}
