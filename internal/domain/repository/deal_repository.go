package repository

import (
	"context"

	"github.com/jhoicas/CRM-api/internal/domain/entity"
)

// DealRepository define el puerto de persistencia para Deal (uno por lead).
type DealRepository interface {
	GetByLeadID(ctx context.Context, leadID string) (*entity.Deal, error)
	// GetByLeadIDs indexa por lead_id.
	GetByLeadIDs(ctx context.Context, leadIDs []string) (map[string]*entity.Deal, error)
	// Upsert crea o reemplaza el deal del lead (clave única lead_id) y completa ID y timestamps.
	Upsert(ctx context.Context, deal *entity.Deal) error
	DeleteByLeadID(ctx context.Context, leadID string) error
	DeleteByLeadIDs(ctx context.Context, leadIDs []string) error
}
