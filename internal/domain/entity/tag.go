package entity

import "time"

// DefaultTagColor color por defecto de una etiqueta.
const DefaultTagColor = "bg-slate-100 text-slate-700 border-slate-200"

// Tag etiqueta con color, relación muchos a muchos con Lead.
type Tag struct {
	ID        string
	Name      string
	Color     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
