package entity

import "time"

// Prioridades de un lead (orden total BAJA < MEDIA < ALTA).
const (
	PriorityHigh   = "ALTA"
	PriorityMedium = "MEDIA"
	PriorityLow    = "BAJA"
)

// Priorities lista las prioridades válidas.
var Priorities = []string{PriorityHigh, PriorityMedium, PriorityLow}

// PriorityRank devuelve el rango de la prioridad (0 si no es válida).
func PriorityRank(p string) int {
	switch p {
	case PriorityLow:
		return 1
	case PriorityMedium:
		return 2
	case PriorityHigh:
		return 3
	}
	return 0
}

// IsValidPriority indica si p es una prioridad conocida.
func IsValidPriority(p string) bool {
	return PriorityRank(p) > 0
}

// Lead representa un cliente potencial en el pipeline comercial.
// Los campos opcionales de texto usan "" como ausencia de valor (NULL en la base de datos).
type Lead struct {
	ID              string
	Name            string // obligatorio
	Company         string
	Industry        string // rubro
	City            string
	Phone           string
	WhatsApp        string
	Instagram       string
	Website         string
	StageID         string
	Priority        string
	Source          string
	Note            string
	LastContactedAt *time.Time
	NextFollowUpAt  *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// LeadSummary proyección mínima usada por la detección de duplicados e importación.
type LeadSummary struct {
	ID        string
	Name      string
	Company   string
	Phone     string
	WhatsApp  string
	Instagram string
	Website   string
	CreatedAt time.Time
}

// LeadAggregate lead con sus relaciones ya ensambladas (etapa, etiquetas y deal).
type LeadAggregate struct {
	Lead  *Lead
	Stage *PipelineStage
	Tags  []Tag
	Deal  *Deal
}
