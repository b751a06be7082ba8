package pdf

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/CRM-api/internal/application/dto"
)

func TestGenerateDashboardReport(t *testing.T) {
	data := &dto.DashboardReportData{
		Title:       "Reporte comercial - Mayo 2024",
		GeneratedAt: "10/05/2024 15:30",
		Currency:    "USD",
		Metrics:     dto.DashboardMetricsDTO{New: 5, TotalLeads: 9, Won: 3, Conversion: 33},
		MRRLabel:    "USD 1,500.00",
		SetupLabel:  "USD 200.00",
		Stages:      []dto.StageReportRow{{Name: "Nuevo", Count: 5}, {Name: "Ganado", Count: 3}, {Name: "Sin etapa", Count: 1}},
		Trend:       []dto.TrendPointDTO{{Date: "2024-05-04", Count: 2}, {Date: "2024-05-05", Count: 0}},
	}

	b, err := NewMarotoReportGenerator().GenerateDashboardReport(data)

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, []byte("%PDF")), "debe ser un documento PDF")
}

func TestGenerateDashboardReport_Nil(t *testing.T) {
	_, err := NewMarotoReportGenerator().GenerateDashboardReport(nil)
	assert.Error(t, err)
}

func TestHelpers(t *testing.T) {
	assert.Equal(t, "0.0%", percent(3, 0))
	assert.Equal(t, "33.3%", percent(1, 3))
	assert.Equal(t, "", bar(0, 10))
	assert.Len(t, bar(10, 10), trendBarWidth)
	assert.Len(t, bar(1, 1000), 1)
}
