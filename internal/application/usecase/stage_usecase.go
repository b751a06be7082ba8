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
	"github.com/jhoicas/CRM-api/pkg/logger"
)

// StageUseCase casos de uso de las etapas del pipeline.
type StageUseCase struct {
	repo repository.StageRepository
	tx   ports.TxRunner
	log  *logger.Logger
	now  func() time.Time
}

// NewStageUseCase construye el caso de uso.
func NewStageUseCase(repo repository.StageRepository, tx ports.TxRunner, log *logger.Logger) *StageUseCase {
	return &StageUseCase{repo: repo, tx: tx, log: log.Component("stages"), now: time.Now}
}

// List devuelve las etapas por orden ascendente.
func (uc *StageUseCase) List(ctx context.Context) ([]dto.StageResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StageResponse, 0, len(list))
	for i := range list {
		items = append(items, *appcrm.ToStageResponse(&list[i]))
	}
	return items, nil
}

// Create agrega una etapa. Sin orden explícito queda al final.
func (uc *StageUseCase) Create(ctx context.Context, in dto.CreateStageRequest) (*dto.StageResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Invalid("nombre", "Nombre requerido")
	}
	order := 0
	if in.Order != nil {
		order = *in.Order
	} else {
		last, err := uc.repo.MaxOrder(ctx)
		if err != nil {
			return nil, err
		}
		order = last + 1
	}
	color := strings.TrimSpace(in.Color)
	if color == "" {
		color = entity.DefaultStageColor
	}

	now := uc.now().UTC()
	stage := &entity.PipelineStage{
		ID:        uuid.New().String(),
		Key:       strings.ToUpper(strings.TrimSpace(in.Key)),
		Name:      name,
		Color:     color,
		Order:     order,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, stage); err != nil {
		return nil, err
	}
	return appcrm.ToStageResponse(stage), nil
}

// Update modifica nombre, color u orden.
func (uc *StageUseCase) Update(ctx context.Context, id string, in dto.UpdateStageRequest) (*dto.StageResponse, error) {
	stage, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if stage == nil {
		return nil, domain.NotFound("etapa")
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.Invalid("nombre", "Nombre requerido")
		}
		stage.Name = name
	}
	if in.Color != nil {
		stage.Color = strings.TrimSpace(*in.Color)
	}
	if in.Order != nil {
		stage.Order = *in.Order
	}
	stage.UpdatedAt = uc.now().UTC()
	if err := uc.repo.Update(ctx, stage); err != nil {
		return nil, err
	}
	return appcrm.ToStageResponse(stage), nil
}

// Delete elimina la etapa. Si tiene leads exige moveToStageId y los reubica en la misma
// transacción.
func (uc *StageUseCase) Delete(ctx context.Context, id string, in dto.DeleteStageRequest) error {
	target := strings.TrimSpace(in.MoveToStageID)
	if target == id {
		return domain.Invalid("moveToStageId", "La etapa destino debe ser distinta")
	}
	return uc.tx.Run(ctx, func(tx ports.Repos) error {
		stage, err := tx.Stages.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if stage == nil {
			return domain.NotFound("etapa")
		}
		count, err := tx.Leads.CountByStage(ctx, id)
		if err != nil {
			return err
		}
		if count > 0 {
			if target == "" {
				return domain.Conflict("La etapa tiene leads; indique moveToStageId")
			}
			dst, err := tx.Stages.GetByID(ctx, target)
			if err != nil {
				return err
			}
			if dst == nil {
				return domain.NotFound("etapa destino")
			}
			// GANADO exige deal por lead; un traslado masivo no lo garantiza.
			if dst.IsWon() {
				return domain.Conflict("No se pueden mover leads a GANADO sin deal")
			}
			moved, err := tx.Leads.MoveStage(ctx, id, target)
			if err != nil {
				return err
			}
			uc.log.Info().Str("from", id).Str("to", target).Int64("moved", moved).Msg("leads reubicados")
		}
		return tx.Stages.Delete(ctx, id)
	})
}

// SeedDefaults siembra las etapas por defecto si la tabla está vacía. Se llama al arrancar.
func (uc *StageUseCase) SeedDefaults(ctx context.Context) (int, error) {
	now := uc.now().UTC()
	stages := make([]entity.PipelineStage, len(entity.DefaultStages))
	for i, s := range entity.DefaultStages {
		s.ID = uuid.New().String()
		s.CreatedAt = now
		s.UpdatedAt = now
		stages[i] = s
	}

	var inserted int
	err := uc.tx.Run(ctx, func(tx ports.Repos) error {
		n, err := tx.Stages.SeedDefaults(ctx, stages)
		inserted = n
		return err
	})
	if err != nil {
		return 0, err
	}
	if inserted > 0 {
		uc.log.Info().Int("inserted", inserted).Msg("etapas por defecto sembradas")
	}
	return inserted, nil
}
