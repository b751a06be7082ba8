package repository

import (
	"context"

	"github.com/jhoicas/CRM-api/internal/domain/entity"
)

// LeadRepository define el puerto de persistencia para Lead.
// Los Get devuelven nil, nil cuando el lead no existe.
type LeadRepository interface {
	Create(ctx context.Context, lead *entity.Lead) error
	// CreateMany inserta el lote completo en una sola operación; se espera dentro de una transacción.
	CreateMany(ctx context.Context, leads []*entity.Lead) (int64, error)
	GetByID(ctx context.Context, id string) (*entity.Lead, error)
	// GetByIDs devuelve los leads encontrados, sin orden garantizado.
	GetByIDs(ctx context.Context, ids []string) ([]*entity.Lead, error)
	// List ordena por actualizado_en descendente.
	List(ctx context.Context) ([]*entity.Lead, error)
	// ListForExport ordena por creado_en ascendente.
	ListForExport(ctx context.Context) ([]*entity.Lead, error)
	// ListSummaries devuelve la proyección de identidad ordenada por creado_en ascendente.
	ListSummaries(ctx context.Context) ([]entity.LeadSummary, error)
	Update(ctx context.Context, lead *entity.Lead) error
	Delete(ctx context.Context, id string) error
	DeleteMany(ctx context.Context, ids []string) error
	CountByStage(ctx context.Context, stageID string) (int, error)
	// MoveStage reubica todos los leads de una etapa en otra.
	MoveStage(ctx context.Context, fromStageID, toStageID string) (int64, error)
}
