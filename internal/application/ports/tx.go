package ports

import (
	"context"

	"github.com/jhoicas/CRM-api/internal/domain/repository"
)

// Repos repositorios del CRM. Fuera de una transacción van atados al pool; TxRunner entrega
// una instancia atada a la transacción en curso.
type Repos struct {
	Leads        repository.LeadRepository
	Stages       repository.StageRepository
	Tags         repository.TagRepository
	Deals        repository.DealRepository
	Interactions repository.InteractionRepository
	Changes      repository.LeadChangeRepository
}

// TxRunner ejecuta fn dentro de una transacción: si fn devuelve error se hace rollback,
// si no, commit.
type TxRunner interface {
	Run(ctx context.Context, fn func(tx Repos) error) error
}
