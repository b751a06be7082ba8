package repository

import (
	"context"

	"github.com/jhoicas/CRM-api/internal/domain/entity"
)

// StageRepository define el puerto de persistencia para PipelineStage.
type StageRepository interface {
	// List ordena por orden ascendente.
	List(ctx context.Context) ([]entity.PipelineStage, error)
	GetByID(ctx context.Context, id string) (*entity.PipelineStage, error)
	GetByIDs(ctx context.Context, ids []string) ([]entity.PipelineStage, error)
	GetByKey(ctx context.Context, key string) (*entity.PipelineStage, error)
	// First devuelve la etapa de menor orden (etapa por defecto) o nil si no hay etapas.
	First(ctx context.Context) (*entity.PipelineStage, error)
	MaxOrder(ctx context.Context) (int, error)
	Create(ctx context.Context, stage *entity.PipelineStage) error
	Update(ctx context.Context, stage *entity.PipelineStage) error
	Delete(ctx context.Context, id string) error
	// SeedDefaults inserta las etapas solo si la tabla está vacía. Debe ejecutarse dentro de una
	// transacción: toma un advisory lock para que dos procesos no siembren a la vez.
	SeedDefaults(ctx context.Context, stages []entity.PipelineStage) (int, error)
}
