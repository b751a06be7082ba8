package repository

import (
	"context"

	"github.com/jhoicas/CRM-api/internal/domain/entity"
)

// InteractionRepository define el puerto de persistencia para Interaction (solo inserción).
type InteractionRepository interface {
	Create(ctx context.Context, in *entity.Interaction) error
	// ListByLead ordena por fecha descendente.
	ListByLead(ctx context.Context, leadID string) ([]entity.Interaction, error)
	// Reassign mueve las interacciones de fromLeadIDs a toLeadID.
	Reassign(ctx context.Context, fromLeadIDs []string, toLeadID string) (int64, error)
}

// LeadChangeRepository define el puerto de persistencia para el historial de cambios.
type LeadChangeRepository interface {
	CreateMany(ctx context.Context, changes []*entity.LeadChange) error
	// ListByLead ordena por creado_en descendente.
	ListByLead(ctx context.Context, leadID string) ([]entity.LeadChange, error)
	Reassign(ctx context.Context, fromLeadIDs []string, toLeadID string) (int64, error)
}
