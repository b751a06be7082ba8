package repository

import (
	"context"

	"github.com/jhoicas/CRM-api/internal/domain/entity"
)

// TagRepository define el puerto de persistencia para Tag y la relación lead_tags.
type TagRepository interface {
	// List ordena por nombre.
	List(ctx context.Context) ([]entity.Tag, error)
	GetByID(ctx context.Context, id string) (*entity.Tag, error)
	GetByIDs(ctx context.Context, ids []string) ([]entity.Tag, error)
	Create(ctx context.Context, tag *entity.Tag) error
	Update(ctx context.Context, tag *entity.Tag) error
	Delete(ctx context.Context, id string) error

	ListByLead(ctx context.Context, leadID string) ([]entity.Tag, error)
	// ListByLeads agrupa las etiquetas por lead_id.
	ListByLeads(ctx context.Context, leadIDs []string) (map[string][]entity.Tag, error)
	// ReplaceLeadTags deja al lead exactamente con tagIDs.
	ReplaceLeadTags(ctx context.Context, leadID string, tagIDs []string) error
	DeleteLeadLinks(ctx context.Context, leadIDs []string) error
	DeleteTagLinks(ctx context.Context, tagID string) error
}
