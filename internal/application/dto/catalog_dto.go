package dto

import "github.com/jhoicas/CRM-api/internal/domain/entity"

// CreateStageRequest body para POST /api/stages.
type CreateStageRequest struct {
	Name  string `json:"nombre"`
	Color string `json:"color,omitempty"`
	Order *int   `json:"orden,omitempty"`
	Key   string `json:"key,omitempty"`
}

// UpdateStageRequest body para PATCH /api/stages/:id.
type UpdateStageRequest struct {
	Name  *string `json:"nombre"`
	Color *string `json:"color"`
	Order *int    `json:"orden"`
}

// DeleteStageRequest body opcional para DELETE /api/stages/:id.
type DeleteStageRequest struct {
	MoveToStageID string `json:"moveToStageId,omitempty"`
}

// CreateTagRequest body para POST /api/tags.
type CreateTagRequest struct {
	Name  string `json:"nombre"`
	Color string `json:"color,omitempty"`
}

// UpdateTagRequest body para PATCH /api/tags/:id.
type UpdateTagRequest struct {
	Name  *string `json:"nombre"`
	Color *string `json:"color"`
}

// CreateSegmentRequest body para POST /api/segments.
type CreateSegmentRequest struct {
	Name    string                 `json:"nombre"`
	Filters *entity.SegmentFilters `json:"filtros,omitempty"`
}

// UpdateSegmentRequest body para PATCH /api/segments/:id.
type UpdateSegmentRequest struct {
	Name    *string                `json:"nombre"`
	Filters *entity.SegmentFilters `json:"filtros"`
}

// SegmentResponse segmento guardado.
type SegmentResponse struct {
	ID        string                `json:"id"`
	Name      string                `json:"nombre"`
	Filters   entity.SegmentFilters `json:"filtros"`
	CreatedAt string                `json:"creadoEn"`
	UpdatedAt string                `json:"actualizadoEn"`
}
