package crm

import (
	"context"

	"github.com/jhoicas/CRM-api/internal/application/dto"
	domaincrm "github.com/jhoicas/CRM-api/internal/domain/crm"
	"github.com/jhoicas/CRM-api/internal/domain/repository"
)

// DuplicatesUseCase detecta grupos de leads duplicados. Solo lectura.
type DuplicatesUseCase struct {
	leads repository.LeadRepository
}

// NewDuplicatesUseCase construye el caso de uso.
func NewDuplicatesUseCase(leads repository.LeadRepository) *DuplicatesUseCase {
	return &DuplicatesUseCase{leads: leads}
}

// Find agrupa los leads por cada clave de identidad (teléfono, WhatsApp, Instagram, web y
// nombre+empresa).
func (uc *DuplicatesUseCase) Find(ctx context.Context) ([]dto.DuplicateGroupDTO, error) {
	summaries, err := uc.leads.ListSummaries(ctx)
	if err != nil {
		return nil, err
	}
	groups := domaincrm.FindDuplicateGroups(summaries)

	out := make([]dto.DuplicateGroupDTO, 0, len(groups))
	for _, g := range groups {
		leads := make([]dto.DuplicateLeadDTO, 0, len(g.Leads))
		for _, l := range g.Leads {
			leads = append(leads, toDuplicateLead(l))
		}
		out = append(out, dto.DuplicateGroupDTO{Type: g.Type, Value: g.Value, Leads: leads})
	}
	return out, nil
}
