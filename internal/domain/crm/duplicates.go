package crm

import "github.com/jhoicas/CRM-api/internal/domain/entity"

// Tipos de clave de un grupo de duplicados, en el orden en que se emiten.
const (
	KeyTypePhone       = "Telefono"
	KeyTypeWhatsApp    = "WhatsApp"
	KeyTypeInstagram   = "Instagram"
	KeyTypeWebsite     = "Web"
	KeyTypeNameCompany = "Nombre + Empresa"
)

// DuplicateGroup leads que comparten el mismo valor de una clave de identidad.
// Leads conserva el orden de entrada (el más antiguo primero).
type DuplicateGroup struct {
	Type  string
	Value string
	Leads []entity.LeadSummary
}

type keyFunc struct {
	label string
	key   func(IdentityKeys) string
}

var duplicateKeys = []keyFunc{
	{KeyTypePhone, func(k IdentityKeys) string { return k.Phone }},
	{KeyTypeWhatsApp, func(k IdentityKeys) string { return k.WhatsApp }},
	{KeyTypeInstagram, func(k IdentityKeys) string { return k.Instagram }},
	{KeyTypeWebsite, func(k IdentityKeys) string { return k.Website }},
	{KeyTypeNameCompany, func(k IdentityKeys) string { return k.NameCompany }},
}

// FindDuplicateGroups agrupa los leads por cada clave de identidad de forma independiente.
// Se espera la entrada ordenada por fecha de creación ascendente. Se descartan claves vacías
// y grupos de un solo miembro; un lead puede aparecer en grupos de distinto tipo.
func FindDuplicateGroups(leads []entity.LeadSummary) []DuplicateGroup {
	keys := make([]IdentityKeys, len(leads))
	for i, l := range leads {
		keys[i] = KeysFor(l.Name, l.Company, l.Phone, l.WhatsApp, l.Instagram, l.Website)
	}

	groups := make([]DuplicateGroup, 0)
	for _, kf := range duplicateKeys {
		byKey := make(map[string][]entity.LeadSummary)
		var order []string
		for i, l := range leads {
			k := kf.key(keys[i])
			if k == "" {
				continue
			}
			if _, seen := byKey[k]; !seen {
				order = append(order, k)
			}
			byKey[k] = append(byKey[k], l)
		}
		for _, k := range order {
			if members := byKey[k]; len(members) > 1 {
				groups = append(groups, DuplicateGroup{Type: kf.label, Value: k, Leads: members})
			}
		}
	}
	return groups
}
