package crm

import (
	"time"

	"github.com/jhoicas/CRM-api/internal/application/dto"
	"github.com/jhoicas/CRM-api/internal/domain/entity"
)

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := formatTime(*t)
	return &s
}

// ToStageResponse convierte una etapa a su representación HTTP.
func ToStageResponse(s *entity.PipelineStage) *dto.StageResponse {
	if s == nil {
		return nil
	}
	return &dto.StageResponse{
		ID:        s.ID,
		Key:       s.Key,
		Name:      s.Name,
		Color:     s.Color,
		Order:     s.Order,
		CreatedAt: formatTime(s.CreatedAt),
		UpdatedAt: formatTime(s.UpdatedAt),
	}
}

// ToTagResponses convierte etiquetas; nunca devuelve nil.
func ToTagResponses(tags []entity.Tag) []dto.TagResponse {
	out := make([]dto.TagResponse, 0, len(tags))
	for _, t := range tags {
		out = append(out, dto.TagResponse{
			ID:        t.ID,
			Name:      t.Name,
			Color:     t.Color,
			CreatedAt: formatTime(t.CreatedAt),
			UpdatedAt: formatTime(t.UpdatedAt),
		})
	}
	return out
}

func toDealResponse(d *entity.Deal) *dto.DealResponse {
	if d == nil {
		return nil
	}
	return &dto.DealResponse{
		ID:                d.ID,
		LeadID:            d.LeadID,
		Currency:          d.Currency,
		MonthlyPriceCents: d.MonthlyPriceCents,
		SetupPriceCents:   d.SetupPriceCents,
		ClosedAt:          formatTime(d.ClosedAt),
		Notes:             d.Notes,
		CreatedAt:         formatTime(d.CreatedAt),
		UpdatedAt:         formatTime(d.UpdatedAt),
	}
}

func toInteractionResponse(in *entity.Interaction) dto.InteractionResponse {
	return dto.InteractionResponse{
		ID:        in.ID,
		LeadID:    in.LeadID,
		Channel:   in.Channel,
		Type:      in.Type,
		Content:   in.Content,
		Date:      formatTime(in.Date),
		CreatedAt: formatTime(in.CreatedAt),
	}
}

func toLeadResponse(agg entity.LeadAggregate) *dto.LeadResponse {
	l := agg.Lead
	return &dto.LeadResponse{
		ID:              l.ID,
		Name:            l.Name,
		Company:         l.Company,
		Industry:        l.Industry,
		City:            l.City,
		Phone:           l.Phone,
		WhatsApp:        l.WhatsApp,
		Instagram:       l.Instagram,
		Website:         l.Website,
		StageID:         l.StageID,
		Priority:        l.Priority,
		Source:          l.Source,
		Note:            l.Note,
		LastContactedAt: formatTimePtr(l.LastContactedAt),
		NextFollowUpAt:  formatTimePtr(l.NextFollowUpAt),
		CreatedAt:       formatTime(l.CreatedAt),
		UpdatedAt:       formatTime(l.UpdatedAt),
		Stage:           ToStageResponse(agg.Stage),
		Tags:            ToTagResponses(agg.Tags),
		Deal:            toDealResponse(agg.Deal),
	}
}

func toDuplicateLead(s entity.LeadSummary) dto.DuplicateLeadDTO {
	return dto.DuplicateLeadDTO{
		ID:        s.ID,
		Name:      s.Name,
		Company:   s.Company,
		Phone:     s.Phone,
		WhatsApp:  s.WhatsApp,
		Instagram: s.Instagram,
		Website:   s.Website,
		CreatedAt: formatTime(s.CreatedAt),
	}
}
