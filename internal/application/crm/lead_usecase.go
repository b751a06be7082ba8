// Package crm contiene los casos de uso del pipeline comercial: ciclo de vida de leads,
// acciones rápidas, cierre, importación y exportación, duplicados y fusión.
package crm

import (
	"context"
	"fmt"
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

// Acciones rápidas sobre un lead.
const (
	ActionContacted = "contactado"
	ActionFollowUp  = "followup"
	ActionReplied   = "respondio"
)

// LeadUseCase casos de uso de leads. Toda mutación registra el historial de cambios en la
// misma transacción que la escritura.
type LeadUseCase struct {
	repos ports.Repos
	tx    ports.TxRunner
	log   *logger.Logger
	now   func() time.Time
}

// NewLeadUseCase construye el caso de uso.
func NewLeadUseCase(repos ports.Repos, tx ports.TxRunner, log *logger.Logger) *LeadUseCase {
	return &LeadUseCase{repos: repos, tx: tx, log: log.Component("leads"), now: time.Now}
}

// List devuelve todos los leads (actualizado desc) con etapa, etiquetas y deal.
func (uc *LeadUseCase) List(ctx context.Context) ([]*dto.LeadResponse, error) {
	leads, err := uc.repos.Leads.List(ctx)
	if err != nil {
		return nil, err
	}
	aggs, err := assemble(ctx, uc.repos, leads)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.LeadResponse, 0, len(aggs))
	for _, a := range aggs {
		out = append(out, toLeadResponse(a))
	}
	return out, nil
}

// Get devuelve el detalle del lead con interacciones y cambios.
func (uc *LeadUseCase) Get(ctx context.Context, id string) (*dto.LeadDetailResponse, error) {
	lead, err := uc.repos.Leads.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if lead == nil {
		return nil, domain.NotFound("lead")
	}
	agg, err := assembleOne(ctx, uc.repos, lead)
	if err != nil {
		return nil, err
	}
	interactions, err := uc.repos.Interactions.ListByLead(ctx, id)
	if err != nil {
		return nil, err
	}
	changes, err := uc.repos.Changes.ListByLead(ctx, id)
	if err != nil {
		return nil, err
	}

	out := &dto.LeadDetailResponse{
		LeadResponse: *toLeadResponse(agg),
		Interactions: make([]dto.InteractionResponse, 0, len(interactions)),
		Changes:      make([]dto.LeadChangeResponse, 0, len(changes)),
	}
	for i := range interactions {
		out.Interactions = append(out.Interactions, toInteractionResponse(&interactions[i]))
	}
	for _, c := range changes {
		out.Changes = append(out.Changes, dto.LeadChangeResponse{
			ID:        c.ID,
			LeadID:    c.LeadID,
			Field:     c.Field,
			Before:    c.Before,
			After:     c.After,
			CreatedAt: formatTime(c.CreatedAt),
		})
	}
	return out, nil
}

// Create crea un lead. No se puede crear directamente en GANADO porque aún no tiene deal.
func (uc *LeadUseCase) Create(ctx context.Context, in dto.CreateLeadRequest) (*dto.LeadResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Invalid("nombre", "Nombre es obligatorio")
	}
	priority, err := parsePriority(in.Priority)
	if err != nil {
		return nil, err
	}
	lastContacted, err := parseOptionalDate("ultimoContacto", in.LastContactedAt)
	if err != nil {
		return nil, err
	}
	nextFollowUp, err := parseOptionalDate("proximoSeguimiento", in.NextFollowUpAt)
	if err != nil {
		return nil, err
	}

	now := uc.now().UTC()
	lead := &entity.Lead{
		ID:              uuid.New().String(),
		Name:            name,
		Company:         strings.TrimSpace(in.Company),
		Industry:        strings.TrimSpace(in.Industry),
		City:            strings.TrimSpace(in.City),
		Phone:           strings.TrimSpace(in.Phone),
		WhatsApp:        strings.TrimSpace(in.WhatsApp),
		Instagram:       strings.TrimSpace(in.Instagram),
		Website:         strings.TrimSpace(in.Website),
		Priority:        priority,
		Source:          strings.TrimSpace(in.Source),
		Note:            strings.TrimSpace(in.Note),
		LastContactedAt: lastContacted,
		NextFollowUpAt:  nextFollowUp,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	var agg entity.LeadAggregate
	err = uc.tx.Run(ctx, func(tx ports.Repos) error {
		var stage *entity.PipelineStage
		if in.StageID != "" {
			st, err := tx.Stages.GetByID(ctx, in.StageID)
			if err != nil {
				return err
			}
			if st == nil {
				return domain.NotFound("etapa")
			}
			if st.IsWon() {
				return domain.Conflict("Debe registrar un deal para cerrar GANADO")
			}
			stage = st
		} else {
			st, err := tx.Stages.First(ctx)
			if err != nil {
				return err
			}
			stage = st
		}
		if stage != nil {
			lead.StageID = stage.ID
		}

		tags, err := resolveTags(ctx, tx, in.TagIDs)
		if err != nil {
			return err
		}
		if err := tx.Leads.Create(ctx, lead); err != nil {
			return err
		}
		if len(tags) > 0 {
			if err := tx.Tags.ReplaceLeadTags(ctx, lead.ID, tagIDs(tags)); err != nil {
				return err
			}
		}
		agg = entity.LeadAggregate{Lead: lead, Stage: stage, Tags: tags}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toLeadResponse(agg), nil
}

// Update aplica una actualización parcial. Mover el lead a GANADO exige un deal válido; si la
// validación falla el lead queda intacto.
func (uc *LeadUseCase) Update(ctx context.Context, id string, in dto.UpdateLeadRequest) (*dto.LeadResponse, error) {
	var result entity.LeadAggregate
	err := uc.tx.Run(ctx, func(tx ports.Repos) error {
		lead, err := tx.Leads.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if lead == nil {
			return domain.NotFound("lead")
		}
		current, err := assembleOne(ctx, tx, lead)
		if err != nil {
			return err
		}
		before := domaincrm.NewSnapshot(lead, current.Stage, current.Tags)

		updated := *lead
		if err := applyLeadPatch(&updated, in); err != nil {
			return err
		}

		stage := current.Stage
		if in.StageID != nil && *in.StageID != lead.StageID {
			stage = nil
			if *in.StageID != "" {
				st, err := tx.Stages.GetByID(ctx, *in.StageID)
				if err != nil {
					return err
				}
				if st == nil {
					return domain.NotFound("etapa")
				}
				if st.IsWon() && !current.Deal.QualifiesForWon() {
					if current.Deal == nil {
						return domain.Conflict("Debe registrar un deal antes de marcar GANADO")
					}
					return domain.Conflict("Deal invalido para GANADO")
				}
				stage = st
			}
		}

		tags := current.Tags
		if in.TagIDs != nil {
			tags, err = resolveTags(ctx, tx, *in.TagIDs)
			if err != nil {
				return err
			}
			if err := tx.Tags.ReplaceLeadTags(ctx, id, tagIDs(tags)); err != nil {
				return err
			}
		}

		now := uc.now().UTC()
		updated.UpdatedAt = now
		if err := tx.Leads.Update(ctx, &updated); err != nil {
			return err
		}
		after := domaincrm.NewSnapshot(&updated, stage, tags)
		if err := recordChanges(ctx, tx, id, before, after, now); err != nil {
			return err
		}
		result = entity.LeadAggregate{Lead: &updated, Stage: stage, Tags: tags, Deal: current.Deal}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toLeadResponse(result), nil
}

// Delete elimina el lead; etiquetas, deal, interacciones y cambios se borran en cascada.
func (uc *LeadUseCase) Delete(ctx context.Context, id string) error {
	lead, err := uc.repos.Leads.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if lead == nil {
		return domain.NotFound("lead")
	}
	if err := uc.repos.Leads.Delete(ctx, id); err != nil {
		return err
	}
	uc.log.Info().Str("lead_id", id).Msg("lead eliminado")
	return nil
}

// Close registra el deal, mueve el lead a GANADO y agrega la interacción de cierre, todo en
// una transacción.
func (uc *LeadUseCase) Close(ctx context.Context, id string, in dto.CloseLeadRequest) (*dto.CloseLeadResponse, error) {
	currency := strings.TrimSpace(in.Currency)
	if currency == "" {
		return nil, domain.Invalid("currency", "Moneda requerida")
	}
	if in.MonthlyPriceCents <= 0 {
		return nil, domain.Invalid("monthlyPriceCents", "MRR debe ser mayor a 0")
	}
	if in.SetupPriceCents < 0 {
		return nil, domain.Invalid("setupPriceCents", "Setup invalido")
	}
	now := uc.now().UTC()
	closedAt := now
	if in.ClosedAt != "" {
		t := domaincrm.ParseDate(in.ClosedAt)
		if t == nil {
			return nil, domain.Invalid("closedAt", "Fecha de cierre invalida")
		}
		closedAt = t.UTC()
	}

	var result entity.LeadAggregate
	err := uc.tx.Run(ctx, func(tx ports.Repos) error {
		won, err := tx.Stages.GetByKey(ctx, entity.StageKeyWon)
		if err != nil {
			return err
		}
		if won == nil {
			return domain.Conflict("Etapa GANADO no existe")
		}
		lead, err := tx.Leads.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if lead == nil {
			return domain.NotFound("lead")
		}
		current, err := assembleOne(ctx, tx, lead)
		if err != nil {
			return err
		}
		before := domaincrm.NewSnapshot(lead, current.Stage, current.Tags)

		deal := &entity.Deal{
			LeadID:            id,
			Currency:          currency,
			MonthlyPriceCents: in.MonthlyPriceCents,
			SetupPriceCents:   in.SetupPriceCents,
			ClosedAt:          closedAt,
			Notes:             strings.TrimSpace(in.Notes),
			CreatedAt:         now,
			UpdatedAt:         now,
		}
		if current.Deal != nil {
			deal.ID = current.Deal.ID
			deal.CreatedAt = current.Deal.CreatedAt
		} else {
			deal.ID = uuid.New().String()
		}
		if err := tx.Deals.Upsert(ctx, deal); err != nil {
			return err
		}

		updated := *lead
		updated.StageID = won.ID
		updated.UpdatedAt = now
		if err := tx.Leads.Update(ctx, &updated); err != nil {
			return err
		}
		if err := tx.Interactions.Create(ctx, &entity.Interaction{
			ID:        uuid.New().String(),
			LeadID:    id,
			Channel:   entity.ChannelOther,
			Type:      entity.InteractionClose,
			Content:   fmt.Sprintf("Cerrado: MRR %d, Setup %d, Moneda %s", in.MonthlyPriceCents, in.SetupPriceCents, currency),
			Date:      closedAt,
			CreatedAt: now,
		}); err != nil {
			return err
		}
		after := domaincrm.NewSnapshot(&updated, won, current.Tags)
		if err := recordChanges(ctx, tx, id, before, after, now); err != nil {
			return err
		}
		result = entity.LeadAggregate{Lead: &updated, Stage: won, Tags: current.Tags, Deal: deal}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("lead_id", id).
		Int64("mrr_cents", in.MonthlyPriceCents).
		Str("currency", currency).
		Msg("lead cerrado como ganado")

	return &dto.CloseLeadResponse{OK: true, Lead: toLeadResponse(result), Deal: toDealResponse(result.Deal)}, nil
}

// DeleteDeal elimina el deal del lead. Si el lead estaba en GANADO vuelve a la etapa por
// defecto en la misma transacción.
func (uc *LeadUseCase) DeleteDeal(ctx context.Context, id string) error {
	return uc.tx.Run(ctx, func(tx ports.Repos) error {
		lead, err := tx.Leads.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if lead == nil {
			return domain.NotFound("lead")
		}
		deal, err := tx.Deals.GetByLeadID(ctx, id)
		if err != nil {
			return err
		}
		if deal == nil {
			return domain.NotFound("deal")
		}
		if err := tx.Deals.DeleteByLeadID(ctx, id); err != nil {
			return err
		}
		if lead.StageID == "" {
			return nil
		}
		stage, err := tx.Stages.GetByID(ctx, lead.StageID)
		if err != nil {
			return err
		}
		if !stage.IsWon() {
			return nil
		}

		def, err := tx.Stages.First(ctx)
		if err != nil {
			return err
		}
		updated := *lead
		updated.StageID = ""
		if def != nil && !def.IsWon() {
			updated.StageID = def.ID
		} else {
			def = nil
		}
		now := uc.now().UTC()
		updated.UpdatedAt = now
		if err := tx.Leads.Update(ctx, &updated); err != nil {
			return err
		}
		return recordChanges(ctx, tx, id,
			domaincrm.NewSnapshot(lead, stage, nil),
			domaincrm.NewSnapshot(&updated, def, nil),
			now)
	})
}

// AddInteraction registra una interacción manual.
func (uc *LeadUseCase) AddInteraction(ctx context.Context, leadID string, in dto.CreateInteractionRequest) (*dto.InteractionResponse, error) {
	if in.Channel == "" || in.Type == "" {
		return nil, domain.Invalid("", "Canal y tipo son obligatorios")
	}
	if !entity.IsValidChannel(in.Channel) {
		return nil, domain.Invalid("canal", "Canal no soportado")
	}
	if !entity.IsValidInteractionType(in.Type) {
		return nil, domain.Invalid("tipo", "Tipo no soportado")
	}
	now := uc.now().UTC()
	date := now
	if in.Date != "" {
		t := domaincrm.ParseDate(in.Date)
		if t == nil {
			return nil, domain.Invalid("fecha", "Fecha invalida")
		}
		date = t.UTC()
	}

	lead, err := uc.repos.Leads.GetByID(ctx, leadID)
	if err != nil {
		return nil, err
	}
	if lead == nil {
		return nil, domain.NotFound("lead")
	}
	interaction := &entity.Interaction{
		ID:        uuid.New().String(),
		LeadID:    leadID,
		Channel:   in.Channel,
		Type:      in.Type,
		Content:   strings.TrimSpace(in.Content),
		Date:      date,
		CreatedAt: now,
	}
	if err := uc.repos.Interactions.Create(ctx, interaction); err != nil {
		return nil, err
	}
	out := toInteractionResponse(interaction)
	return &out, nil
}

// ApplyAction ejecuta una acción rápida: actualiza fechas y etapa, agrega la interacción
// correspondiente y registra el historial.
func (uc *LeadUseCase) ApplyAction(ctx context.Context, id string, in dto.LeadActionRequest) error {
	if in.Action == "" {
		return domain.Invalid("action", "Accion requerida")
	}
	channel := entity.ChannelOther
	if in.Channel != "" {
		if !entity.IsValidChannel(in.Channel) {
			return domain.Invalid("canal", "Canal no soportado")
		}
		channel = in.Channel
	}
	now := uc.now().UTC()

	var (
		stageKey        string
		interactionType string
		interactionDate = now
		setContacted    bool
		nextFollowUp    *time.Time
	)
	switch in.Action {
	case ActionContacted:
		stageKey, interactionType, setContacted = entity.StageKeyContacted, entity.InteractionFirstContact, true
		if in.NextFollowUpAt != "" {
			t := domaincrm.ParseDate(in.NextFollowUpAt)
			if t == nil {
				return domain.Invalid("proximoSeguimiento", "Fecha de seguimiento invalida")
			}
			nextFollowUp = t
		}
	case ActionFollowUp:
		if in.NextFollowUpAt == "" {
			return domain.Invalid("proximoSeguimiento", "Fecha de seguimiento requerida")
		}
		t := domaincrm.ParseDate(in.NextFollowUpAt)
		if t == nil {
			return domain.Invalid("proximoSeguimiento", "Fecha de seguimiento invalida")
		}
		nextFollowUp = t
		stageKey, interactionType, interactionDate = entity.StageKeyFollowUp, entity.InteractionFollowUp, t.UTC()
	case ActionReplied:
		stageKey, interactionType, setContacted = entity.StageKeyReplied, entity.InteractionReply, true
	default:
		return domain.Invalid("action", "Accion no soportada")
	}

	return uc.tx.Run(ctx, func(tx ports.Repos) error {
		lead, err := tx.Leads.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if lead == nil {
			return domain.NotFound("lead")
		}
		current, err := assembleOne(ctx, tx, lead)
		if err != nil {
			return err
		}
		before := domaincrm.NewSnapshot(lead, current.Stage, current.Tags)

		updated := *lead
		stage := current.Stage
		st, err := tx.Stages.GetByKey(ctx, stageKey)
		if err != nil {
			return err
		}
		if st != nil {
			updated.StageID = st.ID
			stage = st
		}
		if setContacted {
			t := now
			updated.LastContactedAt = &t
		}
		if nextFollowUp != nil {
			updated.NextFollowUpAt = nextFollowUp
		}
		updated.UpdatedAt = now
		if err := tx.Leads.Update(ctx, &updated); err != nil {
			return err
		}
		if err := tx.Interactions.Create(ctx, &entity.Interaction{
			ID:        uuid.New().String(),
			LeadID:    id,
			Channel:   channel,
			Type:      interactionType,
			Content:   strings.TrimSpace(in.Content),
			Date:      interactionDate,
			CreatedAt: now,
		}); err != nil {
			return err
		}
		return recordChanges(ctx, tx, id, before, domaincrm.NewSnapshot(&updated, stage, current.Tags), now)
	})
}

func applyLeadPatch(l *entity.Lead, in dto.UpdateLeadRequest) error {
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return domain.Invalid("nombre", "Nombre es obligatorio")
		}
		l.Name = name
	}
	if in.Priority != nil {
		p, err := parsePriority(*in.Priority)
		if err != nil {
			return err
		}
		l.Priority = p
	}
	for _, f := range []struct {
		src *string
		dst *string
	}{
		{in.Company, &l.Company},
		{in.Industry, &l.Industry},
		{in.City, &l.City},
		{in.Phone, &l.Phone},
		{in.WhatsApp, &l.WhatsApp},
		{in.Instagram, &l.Instagram},
		{in.Website, &l.Website},
		{in.Source, &l.Source},
		{in.Note, &l.Note},
		{in.StageID, &l.StageID},
	} {
		if f.src != nil {
			*f.dst = strings.TrimSpace(*f.src)
		}
	}
	var err error
	if l.LastContactedAt, err = patchDate("ultimoContacto", l.LastContactedAt, in.LastContactedAt); err != nil {
		return err
	}
	if l.NextFollowUpAt, err = patchDate("proximoSeguimiento", l.NextFollowUpAt, in.NextFollowUpAt); err != nil {
		return err
	}
	return nil
}

func patchDate(field string, current *time.Time, in dto.NullableString) (*time.Time, error) {
	if !in.Set {
		return current, nil
	}
	if in.Value == nil {
		return nil, nil
	}
	return parseOptionalDate(field, *in.Value)
}

func parseOptionalDate(field, value string) (*time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	t := domaincrm.ParseDate(value)
	if t == nil {
		return nil, domain.Invalid(field, "Fecha invalida")
	}
	return t, nil
}

func parsePriority(value string) (string, error) {
	p := strings.ToUpper(strings.TrimSpace(value))
	if p == "" {
		return entity.PriorityMedium, nil
	}
	if !entity.IsValidPriority(p) {
		return "", domain.Invalid("prioridad", "Prioridad invalida")
	}
	return p, nil
}

// resolveTags carga las etiquetas pedidas (sin repetir); si alguna no existe devuelve ErrNotFound.
func resolveTags(ctx context.Context, r ports.Repos, ids []string) ([]entity.Tag, error) {
	unique := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok || id == "" {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	if len(unique) == 0 {
		return []entity.Tag{}, nil
	}
	tags, err := r.Tags.GetByIDs(ctx, unique)
	if err != nil {
		return nil, err
	}
	if len(tags) != len(unique) {
		return nil, domain.NotFound("etiqueta")
	}
	return tags, nil
}

func tagIDs(tags []entity.Tag) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		out = append(out, t.ID)
	}
	return out
}

func recordChanges(ctx context.Context, tx ports.Repos, leadID string, before, after domaincrm.Snapshot, now time.Time) error {
	entries := domaincrm.DiffLead(before, after)
	if len(entries) == 0 {
		return nil
	}
	changes := domaincrm.ToLeadChanges(leadID, entries, now)
	for _, c := range changes {
		c.ID = uuid.New().String()
	}
	return tx.Changes.CreateMany(ctx, changes)
}
