package crm

import (
	"strings"
	"time"

	"github.com/jhoicas/CRM-api/internal/domain/entity"
)

// Claves de mapeo admitidas: campo del lead -> encabezado del CSV.
const (
	MapName          = "nombre"
	MapCompany       = "empresa"
	MapIndustry      = "rubro"
	MapCity          = "ciudad"
	MapPhone         = "telefono"
	MapWhatsApp      = "whatsapp"
	MapInstagram     = "instagram"
	MapWebsite       = "web"
	MapStage         = "estado"
	MapPriority      = "prioridad"
	MapSource        = "fuente"
	MapNote          = "nota"
	MapLastContacted = "ultimoContacto"
	MapNextFollowUp  = "proximoSeguimiento"
)

// MappingKeys lista las claves de mapeo en el orden en que se documentan.
var MappingKeys = []string{
	MapName, MapCompany, MapIndustry, MapCity, MapPhone, MapWhatsApp, MapInstagram, MapWebsite,
	MapStage, MapPriority, MapSource, MapNote, MapLastContacted, MapNextFollowUp,
}

// dateLayouts formatos aceptados para fechas importadas, del más al menos específico.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
}

// ImportPlan leads listos para insertar (sin ID ni timestamps) y filas descartadas por duplicado.
type ImportPlan struct {
	Leads   []*entity.Lead
	Skipped int
}

// PlanImport transforma filas del CSV en leads. Las filas sin nombre se descartan sin contarse;
// las que repiten alguna clave de identidad (contra los existentes o contra filas ya aceptadas
// en el mismo lote) se cuentan en Skipped.
func PlanImport(rows []map[string]string, mapping map[string]string, existing []entity.LeadSummary, stages []entity.PipelineStage) ImportPlan {
	seen := newKeySets()
	for _, l := range existing {
		seen.add(KeysFor(l.Name, l.Company, l.Phone, l.WhatsApp, l.Instagram, l.Website))
	}

	defaultStage := firstStage(stages)
	plan := ImportPlan{Leads: []*entity.Lead{}}

	for _, row := range rows {
		get := func(key string) string {
			header, ok := mapping[key]
			if !ok || header == "" {
				return ""
			}
			return strings.TrimSpace(row[header])
		}

		name := get(MapName)
		if name == "" {
			continue
		}

		lead := &entity.Lead{
			Name:      name,
			Company:   get(MapCompany),
			Industry:  get(MapIndustry),
			City:      get(MapCity),
			Phone:     get(MapPhone),
			WhatsApp:  get(MapWhatsApp),
			Instagram: get(MapInstagram),
			Website:   get(MapWebsite),
			Source:    get(MapSource),
			Note:      get(MapNote),
		}

		keys := KeysFor(lead.Name, lead.Company, lead.Phone, lead.WhatsApp, lead.Instagram, lead.Website)
		if seen.contains(keys) {
			plan.Skipped++
			continue
		}
		seen.add(keys)

		if st := resolveStage(get(MapStage), stages, defaultStage); st != nil {
			lead.StageID = st.ID
		}
		lead.Priority = resolvePriority(get(MapPriority))
		lead.LastContactedAt = ParseDate(get(MapLastContacted))
		lead.NextFollowUpAt = ParseDate(get(MapNextFollowUp))

		plan.Leads = append(plan.Leads, lead)
	}
	return plan
}

// ParseDate intenta los formatos conocidos; un valor vacío o ilegible devuelve nil.
func ParseDate(value string) *time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return &t
		}
	}
	return nil
}

func resolvePriority(value string) string {
	p := strings.ToUpper(strings.TrimSpace(value))
	if entity.IsValidPriority(p) {
		return p
	}
	return entity.PriorityMedium
}

// resolveStage busca por nombre o clave sin distinguir mayúsculas. Sin coincidencia se usa la
// etapa por defecto; una coincidencia con GANADO también cae a la etapa por defecto porque el
// lead importado no tiene deal.
func resolveStage(value string, stages []entity.PipelineStage, def *entity.PipelineStage) *entity.PipelineStage {
	if v := Normalize(value); v != "" {
		for i := range stages {
			st := &stages[i]
			if Normalize(st.Name) == v || Normalize(st.Key) == v {
				if st.IsWon() {
					break
				}
				return st
			}
		}
	}
	if def != nil && def.IsWon() {
		return nil
	}
	return def
}

func firstStage(stages []entity.PipelineStage) *entity.PipelineStage {
	var first *entity.PipelineStage
	for i := range stages {
		if first == nil || stages[i].Order < first.Order {
			first = &stages[i]
		}
	}
	return first
}

type keySets struct {
	phone, whatsapp, instagram, website, nameCompany map[string]struct{}
}

func newKeySets() *keySets {
	return &keySets{
		phone:       map[string]struct{}{},
		whatsapp:    map[string]struct{}{},
		instagram:   map[string]struct{}{},
		website:     map[string]struct{}{},
		nameCompany: map[string]struct{}{},
	}
}

func (s *keySets) pairs(k IdentityKeys) []struct {
	set map[string]struct{}
	key string
} {
	return []struct {
		set map[string]struct{}
		key string
	}{
		{s.phone, k.Phone},
		{s.whatsapp, k.WhatsApp},
		{s.instagram, k.Instagram},
		{s.website, k.Website},
		{s.nameCompany, k.NameCompany},
	}
}

func (s *keySets) contains(k IdentityKeys) bool {
	for _, p := range s.pairs(k) {
		if p.key == "" {
			continue
		}
		if _, ok := p.set[p.key]; ok {
			return true
		}
	}
	return false
}

func (s *keySets) add(k IdentityKeys) {
	for _, p := range s.pairs(k) {
		if p.key != "" {
			p.set[p.key] = struct{}{}
		}
	}
}
