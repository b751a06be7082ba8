package crm

import (
	"time"

	"github.com/jhoicas/CRM-api/internal/domain/entity"
)

// MergePlan resultado de reconciliar un lead principal con sus duplicados.
// Lead es una copia del principal con los campos ya completados; nunca se modifica la entrada.
type MergePlan struct {
	Lead     *entity.Lead
	TagIDs   []string
	Deal     *entity.Deal // deal adoptado de otro lead; nil si el principal conserva el suyo o no hay
	OtherIDs []string
}

// PlanMerge calcula el registro fusionado. others se recorre en el orden recibido:
// para cada campo vacío del principal gana el primer valor no vacío, por eso el
// resultado depende del orden cuando dos duplicados difieren en el mismo campo.
func PlanMerge(primary entity.LeadAggregate, others []entity.LeadAggregate) MergePlan {
	merged := *primary.Lead

	fields := []struct {
		dst *string
		get func(*entity.Lead) string
	}{
		{&merged.Company, func(l *entity.Lead) string { return l.Company }},
		{&merged.Industry, func(l *entity.Lead) string { return l.Industry }},
		{&merged.City, func(l *entity.Lead) string { return l.City }},
		{&merged.Phone, func(l *entity.Lead) string { return l.Phone }},
		{&merged.WhatsApp, func(l *entity.Lead) string { return l.WhatsApp }},
		{&merged.Instagram, func(l *entity.Lead) string { return l.Instagram }},
		{&merged.Website, func(l *entity.Lead) string { return l.Website }},
		{&merged.Source, func(l *entity.Lead) string { return l.Source }},
		{&merged.Note, func(l *entity.Lead) string { return l.Note }},
	}

	tagIDs := make([]string, 0, len(primary.Tags))
	seenTags := make(map[string]struct{})
	addTag := func(id string) {
		if _, ok := seenTags[id]; ok {
			return
		}
		seenTags[id] = struct{}{}
		tagIDs = append(tagIDs, id)
	}
	for _, t := range primary.Tags {
		addTag(t.ID)
	}

	var adopted *entity.Deal
	otherIDs := make([]string, 0, len(others))

	for _, other := range others {
		o := other.Lead
		otherIDs = append(otherIDs, o.ID)

		for _, f := range fields {
			if Normalize(*f.dst) == "" && Normalize(f.get(o)) != "" {
				*f.dst = f.get(o)
			}
		}
		if merged.StageID == "" && o.StageID != "" {
			merged.StageID = o.StageID
		}
		if entity.PriorityRank(o.Priority) > entity.PriorityRank(merged.Priority) {
			merged.Priority = o.Priority
		}
		merged.LastContactedAt = latest(merged.LastContactedAt, o.LastContactedAt)
		merged.NextFollowUpAt = latest(merged.NextFollowUpAt, o.NextFollowUpAt)

		for _, t := range other.Tags {
			addTag(t.ID)
		}
		if primary.Deal == nil && adopted == nil && other.Deal != nil {
			d := *other.Deal
			d.ID = ""
			d.LeadID = merged.ID
			adopted = &d
		}
	}

	return MergePlan{Lead: &merged, TagIDs: tagIDs, Deal: adopted, OtherIDs: otherIDs}
}

func latest(a, b *time.Time) *time.Time {
	if b == nil {
		return a
	}
	if a == nil || b.After(*a) {
		t := *b
		return &t
	}
	return a
}
