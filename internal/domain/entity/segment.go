package entity

import "time"

// SegmentFilters filtros guardados de la vista de leads.
type SegmentFilters struct {
	Search   string `json:"search"`
	StageID  string `json:"stageId"`
	Priority string `json:"prioridad"`
	Industry string `json:"rubro"`
	City     string `json:"ciudad"`
	Source   string `json:"fuente"`
}

// SavedSegment filtro con nombre guardado por el operador.
type SavedSegment struct {
	ID        string
	Name      string
	Filters   SegmentFilters
	CreatedAt time.Time
	UpdatedAt time.Time
}
