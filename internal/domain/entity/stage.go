package entity

import "time"

// Claves conocidas de etapas del pipeline.
const (
	StageKeyNew        = "NUEVO"
	StageKeyContacted  = "CONTACTADO"
	StageKeyReplied    = "RESPONDIO"
	StageKeyFollowUp   = "SEGUIMIENTO"
	StageKeyMeeting    = "REUNION"
	StageKeyWon        = "GANADO"
	StageKeyLost       = "PERDIDO"
	StageKeyNotQualify = "NO_CALIFICA"
)

// DefaultStageColor color neutral para etapas nuevas.
const DefaultStageColor = "bg-slate-100 text-slate-700 border-slate-200"

// PipelineStage columna ordenada del pipeline. Key es opcional y única cuando existe.
type PipelineStage struct {
	ID        string
	Key       string
	Name      string
	Color     string
	Order     int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsWon indica si la etapa es la de cierre ganado.
func (s *PipelineStage) IsWon() bool {
	return s != nil && s.Key == StageKeyWon
}

// DefaultStages etapas sembradas al arrancar cuando la tabla está vacía.
var DefaultStages = []PipelineStage{
	{Key: StageKeyNew, Name: "Nuevo", Color: "bg-slate-100 text-slate-700 border-slate-200", Order: 1},
	{Key: StageKeyContacted, Name: "Contactado", Color: "bg-blue-100 text-blue-700 border-blue-200", Order: 2},
	{Key: StageKeyReplied, Name: "Respondio", Color: "bg-emerald-100 text-emerald-700 border-emerald-200", Order: 3},
	{Key: StageKeyFollowUp, Name: "Seguimiento", Color: "bg-amber-100 text-amber-700 border-amber-200", Order: 4},
	{Key: StageKeyMeeting, Name: "Reunion", Color: "bg-indigo-100 text-indigo-700 border-indigo-200", Order: 5},
	{Key: StageKeyWon, Name: "Ganado", Color: "bg-emerald-200 text-emerald-800 border-emerald-300", Order: 6},
	{Key: StageKeyLost, Name: "Perdido", Color: "bg-rose-100 text-rose-700 border-rose-200", Order: 7},
	{Key: StageKeyNotQualify, Name: "No califica", Color: "bg-zinc-100 text-zinc-700 border-zinc-200", Order: 8},
}
