package crm

import (
	"context"
	"fmt"

	"github.com/jhoicas/CRM-api/internal/application/ports"
	"github.com/jhoicas/CRM-api/internal/domain/entity"
)

// assemble arma los agregados leyendo etapas, etiquetas y deals en tres consultas por lote.
// Conserva el orden de leads.
func assemble(ctx context.Context, r ports.Repos, leads []*entity.Lead) ([]entity.LeadAggregate, error) {
	if len(leads) == 0 {
		return []entity.LeadAggregate{}, nil
	}
	ids := make([]string, 0, len(leads))
	stageIDs := make([]string, 0, len(leads))
	seenStage := make(map[string]struct{})
	for _, l := range leads {
		ids = append(ids, l.ID)
		if l.StageID == "" {
			continue
		}
		if _, ok := seenStage[l.StageID]; !ok {
			seenStage[l.StageID] = struct{}{}
			stageIDs = append(stageIDs, l.StageID)
		}
	}

	stages := make(map[string]entity.PipelineStage)
	if len(stageIDs) > 0 {
		list, err := r.Stages.GetByIDs(ctx, stageIDs)
		if err != nil {
			return nil, fmt.Errorf("cargar etapas: %w", err)
		}
		for _, s := range list {
			stages[s.ID] = s
		}
	}
	tags, err := r.Tags.ListByLeads(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("cargar etiquetas: %w", err)
	}
	deals, err := r.Deals.GetByLeadIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("cargar deals: %w", err)
	}

	out := make([]entity.LeadAggregate, 0, len(leads))
	for _, l := range leads {
		agg := entity.LeadAggregate{Lead: l, Tags: tags[l.ID], Deal: deals[l.ID]}
		if s, ok := stages[l.StageID]; ok {
			st := s
			agg.Stage = &st
		}
		out = append(out, agg)
	}
	return out, nil
}

// assembleOne arma un solo agregado.
func assembleOne(ctx context.Context, r ports.Repos, lead *entity.Lead) (entity.LeadAggregate, error) {
	list, err := assemble(ctx, r, []*entity.Lead{lead})
	if err != nil {
		return entity.LeadAggregate{}, err
	}
	return list[0], nil
}
