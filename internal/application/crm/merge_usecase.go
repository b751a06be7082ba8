package crm

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/CRM-api/internal/application/dto"
	"github.com/jhoicas/CRM-api/internal/application/ports"
	"github.com/jhoicas/CRM-api/internal/domain"
	domaincrm "github.com/jhoicas/CRM-api/internal/domain/crm"
	"github.com/jhoicas/CRM-api/internal/domain/entity"
	"github.com/jhoicas/CRM-api/pkg/logger"
)

// MergeUseCase fusiona leads duplicados en un lead principal.
type MergeUseCase struct {
	tx  ports.TxRunner
	log *logger.Logger
	now func() time.Time
}

// NewMergeUseCase construye el caso de uso.
func NewMergeUseCase(tx ports.TxRunner, log *logger.Logger) *MergeUseCase {
	return &MergeUseCase{tx: tx, log: log.Component("merge"), now: time.Now}
}

// Merge completa el principal con los datos de los otros leads (en el orden de MergeIDs),
// le traspasa interacciones e historial y elimina los otros. Todo o nada.
func (uc *MergeUseCase) Merge(ctx context.Context, in dto.MergeLeadsRequest) (*dto.MergeLeadsResponse, error) {
	primaryID := strings.TrimSpace(in.PrimaryID)
	if primaryID == "" {
		return nil, domain.Invalid("primaryId", "primaryId requerido")
	}
	mergeIDs := make([]string, 0, len(in.MergeIDs))
	seen := make(map[string]struct{}, len(in.MergeIDs))
	for _, id := range in.MergeIDs {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if id == primaryID {
			return nil, domain.Invalid("mergeIds", "El lead principal no puede estar en mergeIds")
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		mergeIDs = append(mergeIDs, id)
	}
	if len(mergeIDs) == 0 {
		return nil, domain.Invalid("mergeIds", "mergeIds requerido")
	}

	var (
		result entity.LeadAggregate
		merged int
	)
	err := uc.tx.Run(ctx, func(tx ports.Repos) error {
		primary, err := tx.Leads.GetByID(ctx, primaryID)
		if err != nil {
			return err
		}
		if primary == nil {
			return domain.NotFound("lead principal")
		}
		found, err := tx.Leads.GetByIDs(ctx, mergeIDs)
		if err != nil {
			return err
		}
		byID := make(map[string]*entity.Lead, len(found))
		for _, l := range found {
			byID[l.ID] = l
		}
		leads := []*entity.Lead{primary}
		for _, id := range mergeIDs {
			if l, ok := byID[id]; ok {
				leads = append(leads, l)
			}
		}

		aggs, err := assemble(ctx, tx, leads)
		if err != nil {
			return err
		}
		plan := domaincrm.PlanMerge(aggs[0], aggs[1:])
		now := uc.now().UTC()

		plan.Lead.UpdatedAt = now
		if err := tx.Leads.Update(ctx, plan.Lead); err != nil {
			return err
		}
		if err := tx.Tags.ReplaceLeadTags(ctx, primaryID, plan.TagIDs); err != nil {
			return err
		}
		deal := aggs[0].Deal
		if plan.Deal != nil {
			plan.Deal.ID = uuid.New().String()
			plan.Deal.CreatedAt = now
			plan.Deal.UpdatedAt = now
			if err := tx.Deals.Upsert(ctx, plan.Deal); err != nil {
				return err
			}
			deal = plan.Deal
		}

		if len(plan.OtherIDs) > 0 {
			if _, err := tx.Interactions.Reassign(ctx, plan.OtherIDs, primaryID); err != nil {
				return err
			}
			if _, err := tx.Changes.Reassign(ctx, plan.OtherIDs, primaryID); err != nil {
				return err
			}
			if err := tx.Tags.DeleteLeadLinks(ctx, plan.OtherIDs); err != nil {
				return err
			}
			if err := tx.Deals.DeleteByLeadIDs(ctx, plan.OtherIDs); err != nil {
				return err
			}
			if err := tx.Leads.DeleteMany(ctx, plan.OtherIDs); err != nil {
				return err
			}
		}

		stage, tags := mergedStageAndTags(aggs, plan)
		before := domaincrm.NewSnapshot(primary, aggs[0].Stage, aggs[0].Tags)
		after := domaincrm.NewSnapshot(plan.Lead, stage, tags)
		if err := recordChanges(ctx, tx, primaryID, before, after, now); err != nil {
			return err
		}

		result = entity.LeadAggregate{Lead: plan.Lead, Stage: stage, Tags: tags, Deal: deal}
		merged = len(plan.OtherIDs)
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("primary_id", primaryID).
		Int("requested", len(mergeIDs)).
		Int("merged", merged).
		Msg("leads fusionados")

	return &dto.MergeLeadsResponse{OK: true, Merged: merged, Lead: toLeadResponse(result)}, nil
}

// mergedStageAndTags resuelve la etapa y las etiquetas finales a partir de los agregados ya
// cargados, sin volver a consultar.
func mergedStageAndTags(aggs []entity.LeadAggregate, plan domaincrm.MergePlan) (*entity.PipelineStage, []entity.Tag) {
	var stage *entity.PipelineStage
	tagByID := make(map[string]entity.Tag)
	for _, a := range aggs {
		if stage == nil && a.Stage != nil && a.Stage.ID == plan.Lead.StageID {
			stage = a.Stage
		}
		for _, t := range a.Tags {
			tagByID[t.ID] = t
		}
	}
	tags := make([]entity.Tag, 0, len(plan.TagIDs))
	for _, id := range plan.TagIDs {
		tags = append(tags, tagByID[id])
	}
	return stage, tags
}
