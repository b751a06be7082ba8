package crm

import (
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/jhoicas/CRM-api/internal/domain/entity"
)

// Etiquetas de los campos no escalares del historial.
const (
	LabelStage = "Etapa"
	LabelTags  = "Etiquetas"
)

// Snapshot valores rastreables de un lead en un instante.
type Snapshot struct {
	Lead  entity.Lead
	Stage *entity.PipelineStage
	Tags  []entity.Tag
}

// ChangeEntry cambio de un campo: etiqueta, valor anterior y posterior ya convertidos a texto.
type ChangeEntry struct {
	Field  string
	Before string
	After  string
}

// NewSnapshot copia el lead para que mutaciones posteriores no alteren la foto.
func NewSnapshot(lead *entity.Lead, stage *entity.PipelineStage, tags []entity.Tag) Snapshot {
	s := Snapshot{Lead: *lead, Tags: append([]entity.Tag(nil), tags...)}
	if stage != nil {
		st := *stage
		s.Stage = &st
	}
	return s
}

type scalarField struct {
	name  string
	value func(*entity.Lead) string
}

// trackedScalars sigue el orden fijo del historial; etapa y etiquetas van al final.
var trackedScalars = []scalarField{
	{"nombre", func(l *entity.Lead) string { return l.Name }},
	{"empresa", func(l *entity.Lead) string { return l.Company }},
	{"rubro", func(l *entity.Lead) string { return l.Industry }},
	{"ciudad", func(l *entity.Lead) string { return l.City }},
	{"telefono", func(l *entity.Lead) string { return l.Phone }},
	{"whatsapp", func(l *entity.Lead) string { return l.WhatsApp }},
	{"instagram", func(l *entity.Lead) string { return l.Instagram }},
	{"web", func(l *entity.Lead) string { return l.Website }},
	{"prioridad", func(l *entity.Lead) string { return l.Priority }},
	{"fuente", func(l *entity.Lead) string { return l.Source }},
	{"nota", func(l *entity.Lead) string { return l.Note }},
	{"ultimoContacto", func(l *entity.Lead) string { return formatTime(l.LastContactedAt) }},
	{"proximoSeguimiento", func(l *entity.Lead) string { return formatTime(l.NextFollowUpAt) }},
}

// DiffLead compara dos fotos y devuelve solo los campos que cambiaron, en orden fijo.
// Las etiquetas se comparan por la lista ordenada de nombres: reordenar no es un cambio y
// dos conjuntos distintos con los mismos nombres se consideran iguales.
func DiffLead(before, after Snapshot) []ChangeEntry {
	var out []ChangeEntry
	for _, f := range trackedScalars {
		b, a := f.value(&before.Lead), f.value(&after.Lead)
		if b != a {
			out = append(out, ChangeEntry{Field: FieldLabel(f.name), Before: b, After: a})
		}
	}

	if stageID(before.Stage) != stageID(after.Stage) {
		out = append(out, ChangeEntry{Field: LabelStage, Before: stageName(before.Stage), After: stageName(after.Stage)})
	}

	if b, a := joinTagNames(before.Tags), joinTagNames(after.Tags); b != a {
		out = append(out, ChangeEntry{Field: LabelTags, Before: b, After: a})
	}
	return out
}

// FieldLabel inserta un espacio antes de cada mayúscula y capitaliza la primera letra:
// "ultimoContacto" -> "Ultimo Contacto".
func FieldLabel(name string) string {
	var b strings.Builder
	for i, r := range name {
		if i > 0 && unicode.IsUpper(r) {
			b.WriteRune(' ')
		}
		if i == 0 {
			r = unicode.ToUpper(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ToLeadChanges convierte las entradas en registros de historial del lead.
func ToLeadChanges(leadID string, entries []ChangeEntry, now time.Time) []*entity.LeadChange {
	out := make([]*entity.LeadChange, 0, len(entries))
	for _, e := range entries {
		out = append(out, &entity.LeadChange{
			LeadID:    leadID,
			Field:     e.Field,
			Before:    e.Before,
			After:     e.After,
			CreatedAt: now,
		})
	}
	return out
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func stageID(s *entity.PipelineStage) string {
	if s == nil {
		return ""
	}
	return s.ID
}

func stageName(s *entity.PipelineStage) string {
	if s == nil {
		return ""
	}
	return s.Name
}

func joinTagNames(tags []entity.Tag) string {
	names := make([]string, 0, len(tags))
	for _, t := range tags {
		names = append(names, t.Name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}
