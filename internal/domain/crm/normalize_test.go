package crm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/CRM-api/internal/domain/crm"
	"github.com/jhoicas/CRM-api/internal/domain/entity"
)

func TestNormalize(t *testing.T) {
	cases := map[string]string{
		"":               "",
		"   ":            "",
		"  ACME Corp ":   "acme corp",
		"\t+54 11 555\n": "+54 11 555",
		"Ñandú":          "ñandú",
	}
	for in, want := range cases {
		assert.Equal(t, want, crm.Normalize(in), "Normalize(%q)", in)
	}
}

func TestNormalize_Idempotente(t *testing.T) {
	for _, v := range []string{" Hola ", "MUNDO", "", "a b"} {
		once := crm.Normalize(v)
		assert.Equal(t, once, crm.Normalize(once))
	}
}

func TestKeysFor_NombreEmpresa(t *testing.T) {
	k := crm.KeysFor(" Juan ", "", "", "", "", "")
	assert.Equal(t, "juan", k.NameCompany, "sin empresa no debe quedar el separador final")

	k = crm.KeysFor("Juan", " ACME ", "", "", "", "")
	assert.Equal(t, "juan|acme", k.NameCompany)

	k = crm.KeysFor("", "", "", "", "", "")
	assert.Empty(t, k.NameCompany)
}

func TestKeysFor_Contactos(t *testing.T) {
	k := crm.KeysFor("x", "", " 555-1 ", "WA", "@Insta", "HTTP://Web.com ")
	assert.Equal(t, crm.IdentityKeys{
		Phone:       "555-1",
		WhatsApp:    "wa",
		Instagram:   "@insta",
		Website:     "http://web.com",
		NameCompany: "x",
	}, k)
}

// ──────────────────────────────────────────────────────────────────────────────
// Duplicados
// ──────────────────────────────────────────────────────────────────────────────

func TestFindDuplicateGroups_TelefonoYNombre(t *testing.T) {
	leads := []entity.LeadSummary{
		{ID: "A", Name: "Ana", Phone: "555"},
		{ID: "B", Name: "ana ", Phone: " 555"},
		{ID: "C", Name: "Carlos"},
	}

	groups := crm.FindDuplicateGroups(leads)

	assert.Len(t, groups, 2)
	assert.Equal(t, crm.KeyTypePhone, groups[0].Type)
	assert.Equal(t, "555", groups[0].Value)
	assert.Equal(t, []string{"A", "B"}, ids(groups[0].Leads))
	assert.Equal(t, crm.KeyTypeNameCompany, groups[1].Type)
	assert.Equal(t, "ana", groups[1].Value)
	assert.Equal(t, []string{"A", "B"}, ids(groups[1].Leads))
}

func TestFindDuplicateGroups_SinDuplicados(t *testing.T) {
	leads := []entity.LeadSummary{
		{ID: "A", Name: "Ana", Phone: "1"},
		{ID: "B", Name: "Beto", Phone: "2"},
	}
	groups := crm.FindDuplicateGroups(leads)
	assert.NotNil(t, groups)
	assert.Empty(t, groups)
	assert.Empty(t, crm.FindDuplicateGroups(nil))
}

func TestFindDuplicateGroups_ClavesVaciasNoAgrupan(t *testing.T) {
	leads := []entity.LeadSummary{
		{ID: "A", Name: "Ana", Phone: "  "},
		{ID: "B", Name: "Beto", Phone: ""},
	}
	assert.Empty(t, crm.FindDuplicateGroups(leads))
}

func TestFindDuplicateGroups_OrdenDeterminista(t *testing.T) {
	leads := []entity.LeadSummary{
		{ID: "1", Name: "a", Instagram: "@z"},
		{ID: "2", Name: "b", Instagram: "@y"},
		{ID: "3", Name: "c", Instagram: "@y"},
		{ID: "4", Name: "d", Instagram: "@z", Website: "w"},
		{ID: "5", Name: "e", Website: "W "},
	}

	groups := crm.FindDuplicateGroups(leads)

	assert.Len(t, groups, 3)
	assert.Equal(t, "@z", groups[0].Value, "los grupos siguen el orden de primera aparición")
	assert.Equal(t, []string{"1", "4"}, ids(groups[0].Leads))
	assert.Equal(t, "@y", groups[1].Value)
	assert.Equal(t, crm.KeyTypeWebsite, groups[2].Type)
	assert.Equal(t, []string{"4", "5"}, ids(groups[2].Leads))

	for i := 0; i < 5; i++ {
		assert.Equal(t, groups, crm.FindDuplicateGroups(leads))
	}
}

func ids(leads []entity.LeadSummary) []string {
	out := make([]string, 0, len(leads))
	for _, l := range leads {
		out = append(out, l.ID)
	}
	return out
}
