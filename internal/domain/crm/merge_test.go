package crm_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/CRM-api/internal/domain/crm"
	"github.com/jhoicas/CRM-api/internal/domain/entity"
)

func ts(s string) *time.Time {
	t, _ := time.Parse(time.RFC3339, s)
	return &t
}

func TestPlanMerge_CompletaCamposVacios(t *testing.T) {
	primary := entity.LeadAggregate{Lead: &entity.Lead{ID: "P", Name: "Ana", Company: "  ", Phone: "111", Priority: entity.PriorityLow}}
	others := []entity.LeadAggregate{
		{Lead: &entity.Lead{ID: "O1", Name: "Ana", Company: "", City: "Rosario", Phone: "222", Priority: entity.PriorityHigh}},
		{Lead: &entity.Lead{ID: "O2", Name: "Ana", Company: "ACME", City: "Córdoba", Priority: entity.PriorityMedium}},
	}

	plan := crm.PlanMerge(primary, others)

	require.NotNil(t, plan.Lead)
	assert.Equal(t, "ACME", plan.Lead.Company, "empresa con solo espacios se considera vacía")
	assert.Equal(t, "Rosario", plan.Lead.City, "gana el primer valor no vacío en el orden recibido")
	assert.Equal(t, "111", plan.Lead.Phone, "el valor del principal no se pisa")
	assert.Equal(t, entity.PriorityHigh, plan.Lead.Priority)
	assert.Equal(t, []string{"O1", "O2"}, plan.OtherIDs)
	assert.Equal(t, "  ", primary.Lead.Company, "la entrada no se modifica")
}

func TestPlanMerge_EtapaYFechas(t *testing.T) {
	primary := entity.LeadAggregate{Lead: &entity.Lead{
		ID: "P", Name: "x", Priority: entity.PriorityHigh,
		LastContactedAt: ts("2024-01-10T00:00:00Z"),
	}}
	others := []entity.LeadAggregate{
		{Lead: &entity.Lead{ID: "O1", StageID: "s-2", Priority: entity.PriorityLow,
			LastContactedAt: ts("2024-02-01T00:00:00Z"), NextFollowUpAt: ts("2024-03-01T00:00:00Z")}},
		{Lead: &entity.Lead{ID: "O2", StageID: "s-3", LastContactedAt: ts("2023-12-01T00:00:00Z")}},
	}

	plan := crm.PlanMerge(primary, others)

	assert.Equal(t, "s-2", plan.Lead.StageID)
	assert.Equal(t, entity.PriorityHigh, plan.Lead.Priority, "la prioridad nunca baja")
	assert.True(t, plan.Lead.LastContactedAt.Equal(*ts("2024-02-01T00:00:00Z")))
	assert.True(t, plan.Lead.NextFollowUpAt.Equal(*ts("2024-03-01T00:00:00Z")))
}

func TestPlanMerge_UnionDeEtiquetas(t *testing.T) {
	primary := entity.LeadAggregate{
		Lead: &entity.Lead{ID: "P"},
		Tags: []entity.Tag{{ID: "t1"}, {ID: "t2"}},
	}
	others := []entity.LeadAggregate{
		{Lead: &entity.Lead{ID: "O1"}, Tags: []entity.Tag{{ID: "t2"}, {ID: "t3"}}},
		{Lead: &entity.Lead{ID: "O2"}, Tags: []entity.Tag{{ID: "t1"}, {ID: "t4"}}},
	}

	plan := crm.PlanMerge(primary, others)

	assert.Equal(t, []string{"t1", "t2", "t3", "t4"}, plan.TagIDs)
}

func TestPlanMerge_Deal(t *testing.T) {
	own := &entity.Deal{ID: "d-p", LeadID: "P", Currency: "USD", MonthlyPriceCents: 100}
	other := &entity.Deal{ID: "d-o", LeadID: "O1", Currency: "ARS", MonthlyPriceCents: 900, SetupPriceCents: 50}

	t.Run("el principal conserva su deal", func(t *testing.T) {
		plan := crm.PlanMerge(
			entity.LeadAggregate{Lead: &entity.Lead{ID: "P"}, Deal: own},
			[]entity.LeadAggregate{{Lead: &entity.Lead{ID: "O1"}, Deal: other}},
		)
		assert.Nil(t, plan.Deal)
	})

	t.Run("adopta el primer deal de los otros", func(t *testing.T) {
		plan := crm.PlanMerge(
			entity.LeadAggregate{Lead: &entity.Lead{ID: "P"}},
			[]entity.LeadAggregate{
				{Lead: &entity.Lead{ID: "O0"}},
				{Lead: &entity.Lead{ID: "O1"}, Deal: other},
				{Lead: &entity.Lead{ID: "O2"}, Deal: &entity.Deal{ID: "d-2", Currency: "EUR", MonthlyPriceCents: 1}},
			},
		)
		require.NotNil(t, plan.Deal)
		assert.Equal(t, "P", plan.Deal.LeadID)
		assert.Equal(t, "ARS", plan.Deal.Currency)
		assert.Equal(t, int64(900), plan.Deal.MonthlyPriceCents)
		assert.Equal(t, int64(50), plan.Deal.SetupPriceCents)
		assert.Equal(t, "O1", other.LeadID, "el deal original no se modifica")
	})
}

func TestPlanMerge_OrdenDeterminaValores(t *testing.T) {
	primary := entity.LeadAggregate{Lead: &entity.Lead{ID: "P", Name: "Ana"}}
	o1 := entity.LeadAggregate{Lead: &entity.Lead{ID: "O1", City: "Rosario", Note: "primero"}}
	o2 := entity.LeadAggregate{Lead: &entity.Lead{ID: "O2", City: "Córdoba", Note: "segundo"}}

	a := crm.PlanMerge(primary, []entity.LeadAggregate{o1, o2})
	b := crm.PlanMerge(primary, []entity.LeadAggregate{o2, o1})

	assert.Equal(t, "Rosario", a.Lead.City)
	assert.Equal(t, "Córdoba", b.Lead.City)
	assert.NotEqual(t, a.Lead.City, b.Lead.City)
	assert.NotEqual(t, a.Lead.Note, b.Lead.Note)
	assert.Empty(t, primary.Lead.City)
}

func TestPlanMerge_OtroVacioNoCambiaNada(t *testing.T) {
	primary := entity.LeadAggregate{
		Lead: &entity.Lead{
			ID: "P", Name: "Ana", Company: "ACME", City: "Rosario", Phone: "111",
			StageID: "s-1", Priority: entity.PriorityMedium,
			LastContactedAt: ts("2024-01-10T00:00:00Z"),
		},
		Tags: []entity.Tag{{ID: "t1"}, {ID: "t2"}},
	}
	empty := entity.LeadAggregate{Lead: &entity.Lead{ID: "O1"}}

	plan := crm.PlanMerge(primary, []entity.LeadAggregate{empty})

	require.NotNil(t, plan.Lead)
	assert.Equal(t, *primary.Lead, *plan.Lead)
	assert.Equal(t, []string{"t1", "t2"}, plan.TagIDs)
	assert.Nil(t, plan.Deal)
	assert.Equal(t, []string{"O1"}, plan.OtherIDs)
}
