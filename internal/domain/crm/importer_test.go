package crm_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/CRM-api/internal/domain/crm"
	"github.com/jhoicas/CRM-api/internal/domain/entity"
)

var testStages = []entity.PipelineStage{
	{ID: "s-contactado", Key: entity.StageKeyContacted, Name: "Contactado", Order: 2},
	{ID: "s-nuevo", Key: entity.StageKeyNew, Name: "Nuevo", Order: 1},
	{ID: "s-ganado", Key: entity.StageKeyWon, Name: "Ganado", Order: 6},
}

var testMapping = map[string]string{
	crm.MapName:          "Nombre",
	crm.MapCompany:       "Empresa",
	crm.MapPhone:         "Tel",
	crm.MapStage:         "Estado",
	crm.MapPriority:      "Prioridad",
	crm.MapLastContacted: "Contacto",
}

func TestPlanImport_FilasValidasYDuplicadas(t *testing.T) {
	existing := []entity.LeadSummary{{ID: "E1", Name: "Viejo", Phone: "111"}}
	rows := []map[string]string{
		{"Nombre": "Ana", "Tel": "222"},
		{"Nombre": "", "Tel": "333"},          // sin nombre: se descarta sin contar
		{"Nombre": "Beto", "Tel": " 111 "},    // choca con existente
		{"Nombre": "ana", "Tel": "444"},       // choca con nombre de fila aceptada
		{"Nombre": "Carla", "Empresa": "ACME"}, // válida
	}

	plan := crm.PlanImport(rows, testMapping, existing, testStages)

	require.Len(t, plan.Leads, 2)
	assert.Equal(t, 2, plan.Skipped)
	assert.Equal(t, "Ana", plan.Leads[0].Name)
	assert.Equal(t, "Carla", plan.Leads[1].Name)
	assert.Equal(t, "ACME", plan.Leads[1].Company)
}

func TestPlanImport_MismoTelefonoEnElLote(t *testing.T) {
	rows := []map[string]string{
		{"Nombre": "Ana", "Tel": "555"},
		{"Nombre": "Beto", "Tel": "555"},
	}
	plan := crm.PlanImport(rows, testMapping, nil, testStages)
	assert.Len(t, plan.Leads, 1)
	assert.Equal(t, 1, plan.Skipped)
}

func TestPlanImport_EtapaYPrioridad(t *testing.T) {
	rows := []map[string]string{
		{"Nombre": "a", "Estado": "contactado"},
		{"Nombre": "b", "Estado": "CONTACTADO"},
		{"Nombre": "c", "Estado": "desconocido"},
		{"Nombre": "d", "Estado": "Ganado"},
		{"Nombre": "e", "Prioridad": "alta"},
		{"Nombre": "f", "Prioridad": "urgente"},
	}

	plan := crm.PlanImport(rows, testMapping, nil, testStages)

	require.Len(t, plan.Leads, 6)
	assert.Equal(t, "s-contactado", plan.Leads[0].StageID, "coincide por nombre")
	assert.Equal(t, "s-contactado", plan.Leads[1].StageID, "coincide por clave")
	assert.Equal(t, "s-nuevo", plan.Leads[2].StageID, "sin coincidencia usa la primera etapa por orden")
	assert.Equal(t, "s-nuevo", plan.Leads[3].StageID, "GANADO sin deal cae a la etapa por defecto")
	assert.Equal(t, entity.PriorityHigh, plan.Leads[4].Priority)
	assert.Equal(t, entity.PriorityMedium, plan.Leads[5].Priority)
}

func TestPlanImport_SinEtapas(t *testing.T) {
	plan := crm.PlanImport([]map[string]string{{"Nombre": "a", "Estado": "x"}}, testMapping, nil, nil)
	require.Len(t, plan.Leads, 1)
	assert.Empty(t, plan.Leads[0].StageID)
}

func TestPlanImport_Fechas(t *testing.T) {
	rows := []map[string]string{
		{"Nombre": "a", "Contacto": "2024-03-05"},
		{"Nombre": "b", "Contacto": "ayer"},
	}
	plan := crm.PlanImport(rows, testMapping, nil, testStages)

	require.NotNil(t, plan.Leads[0].LastContactedAt)
	assert.True(t, plan.Leads[0].LastContactedAt.Equal(time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)))
	assert.Nil(t, plan.Leads[1].LastContactedAt, "fecha ilegible queda vacía")
}

func TestParseDate(t *testing.T) {
	for _, v := range []string{"2024-01-02T03:04:05Z", "2024-01-02T03:04:05.123Z", "2024-01-02 03:04:05", "2024/01/02"} {
		assert.NotNil(t, crm.ParseDate(v), v)
	}
	assert.Nil(t, crm.ParseDate(""))
	assert.Nil(t, crm.ParseDate("02-01-2024x"))
}
