package analytics

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/CRM-api/internal/application/dto"
	"github.com/jhoicas/CRM-api/internal/domain/entity"
	"github.com/jhoicas/CRM-api/internal/domain/repository"
	"github.com/jhoicas/CRM-api/internal/domain/repository/mocks"
	"github.com/jhoicas/CRM-api/pkg/money"
)

var (
	fixedNow   = time.Date(2024, 5, 10, 15, 30, 0, 0, time.UTC)
	todayStart = time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
	first      = &entity.PipelineStage{ID: "st-nuevo", Key: entity.StageKeyNew, Name: "Nuevo", Order: 1}
	won        = &entity.PipelineStage{ID: "st-ganado", Key: entity.StageKeyWon, Name: "Ganado", Order: 6}
)

func newDashboard(repo *mocks.DashboardRepository, stages *mocks.StageRepository) *DashboardUseCase {
	uc := NewDashboardUseCase(repo, stages, time.UTC)
	uc.now = func() time.Time { return fixedNow }
	return uc
}

func expectMetrics(repo *mocks.DashboardRepository) {
	repo.On("CountInStage", mock.Anything, first.ID).Return(5, nil)
	repo.On("CountInStage", mock.Anything, won.ID).Return(3, nil)
	repo.On("CountContactedSince", mock.Anything, todayStart).Return(2, nil)
	repo.On("CountFollowUpsBefore", mock.Anything, todayStart).Return(4, nil)
	repo.On("CountInteractionsSince", mock.Anything, entity.InteractionReply, todayStart.AddDate(0, 0, -7)).Return(6, nil)
	repo.On("CountLeads", mock.Anything).Return(9, nil)
	repo.On("CountByStage", mock.Anything).Return([]repository.StageCount{
		{StageID: first.ID, Count: 5}, {StageID: won.ID, Count: 3}, {StageID: "", Count: 1},
	}, nil)
	repo.On("CreatedPerDay", mock.Anything, todayStart.AddDate(0, 0, -6), time.UTC).Return([]repository.DayCount{
		{Date: "2024-05-04", Count: 2}, {Date: "2024-05-10", Count: 1},
	}, nil)
	repo.On("RevenueInStage", mock.Anything, won.ID).Return(repository.RevenueTotals{
		MonthlyCents: decimal.NewFromInt(150000),
		SetupCents:   decimal.NewFromInt(20000),
	}, nil)
}

func TestDashboardGet(t *testing.T) {
	repo := &mocks.DashboardRepository{}
	stages := &mocks.StageRepository{}
	stages.On("First", mock.Anything).Return(first, nil)
	stages.On("GetByKey", mock.Anything, entity.StageKeyWon).Return(won, nil)
	expectMetrics(repo)

	out, err := newDashboard(repo, stages).Get(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 5, out.Metrics.New)
	assert.Equal(t, 2, out.Metrics.ContactedToday)
	assert.Equal(t, 4, out.Metrics.PendingFollowUps)
	assert.Equal(t, 6, out.Metrics.RepliedThisWeek)
	assert.Equal(t, 9, out.Metrics.TotalLeads)
	assert.Equal(t, 3, out.Metrics.Won)
	assert.Equal(t, 33, out.Metrics.Conversion)
	assert.Equal(t, int64(150000), out.Metrics.MRRTotalCents)
	assert.Equal(t, int64(20000), out.Metrics.SetupTotalCents)

	require.Len(t, out.Stages, 3)
	assert.Nil(t, out.Stages[2].StageID)
	assert.Equal(t, won.ID, *out.Stages[1].StageID)

	require.Len(t, out.Trend, 7)
	assert.Equal(t, dto.TrendPointDTO{Date: "2024-05-04", Count: 2}, out.Trend[0])
	assert.Equal(t, dto.TrendPointDTO{Date: "2024-05-07", Count: 0}, out.Trend[3])
	assert.Equal(t, dto.TrendPointDTO{Date: "2024-05-10", Count: 1}, out.Trend[6])
	repo.AssertExpectations(t)
}

func TestDashboardGet_MontosComoNumeroJSON(t *testing.T) {
	repo := &mocks.DashboardRepository{}
	stages := &mocks.StageRepository{}
	stages.On("First", mock.Anything).Return(first, nil)
	stages.On("GetByKey", mock.Anything, entity.StageKeyWon).Return(won, nil)
	expectMetrics(repo)

	out, err := newDashboard(repo, stages).Get(context.Background())
	require.NoError(t, err)

	raw, err := json.Marshal(out.Metrics)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"mrrTotalCents":150000`)
	assert.Contains(t, string(raw), `"setupTotalCents":20000`)
}

func TestDashboardGet_SinEtapas(t *testing.T) {
	repo := &mocks.DashboardRepository{}
	stages := &mocks.StageRepository{}
	stages.On("First", mock.Anything).Return(nil, nil)
	stages.On("GetByKey", mock.Anything, entity.StageKeyWon).Return(nil, nil)
	repo.On("CountContactedSince", mock.Anything, mock.Anything).Return(0, nil)
	repo.On("CountFollowUpsBefore", mock.Anything, mock.Anything).Return(0, nil)
	repo.On("CountInteractionsSince", mock.Anything, mock.Anything, mock.Anything).Return(0, nil)
	repo.On("CountLeads", mock.Anything).Return(0, nil)
	repo.On("CountByStage", mock.Anything).Return([]repository.StageCount{}, nil)
	repo.On("CreatedPerDay", mock.Anything, mock.Anything, mock.Anything).Return(nil, nil)

	out, err := newDashboard(repo, stages).Get(context.Background())

	require.NoError(t, err)
	assert.Zero(t, out.Metrics.Conversion)
	assert.Zero(t, out.Metrics.MRRTotalCents)
	assert.Len(t, out.Trend, 7)
	repo.AssertNotCalled(t, "CountInStage", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "RevenueInStage", mock.Anything, mock.Anything)
}

func TestDashboardGet_ErrorDeConsulta(t *testing.T) {
	repo := &mocks.DashboardRepository{}
	stages := &mocks.StageRepository{}
	boom := errors.New("conexión perdida")
	stages.On("First", mock.Anything).Return(nil, nil)
	stages.On("GetByKey", mock.Anything, entity.StageKeyWon).Return(nil, nil)
	repo.On("CountContactedSince", mock.Anything, mock.Anything).Return(0, nil)
	repo.On("CountFollowUpsBefore", mock.Anything, mock.Anything).Return(0, nil)
	repo.On("CountInteractionsSince", mock.Anything, mock.Anything, mock.Anything).Return(0, nil)
	repo.On("CountLeads", mock.Anything).Return(0, boom)
	repo.On("CountByStage", mock.Anything).Return(nil, nil)
	repo.On("CreatedPerDay", mock.Anything, mock.Anything, mock.Anything).Return(nil, nil)

	_, err := newDashboard(repo, stages).Get(context.Background())

	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "total leads")
}

func TestConversion(t *testing.T) {
	assert.Equal(t, 0, conversion(0, 0))
	assert.Equal(t, 50, conversion(1, 2))
	assert.Equal(t, 67, conversion(2, 3))
	assert.Equal(t, 100, conversion(4, 4))
}

// ──────────────────────────────────────────────────────────────────────────────
// Reporte PDF
// ──────────────────────────────────────────────────────────────────────────────

type capturePDF struct {
	data *dto.DashboardReportData
}

func (c *capturePDF) GenerateDashboardReport(data *dto.DashboardReportData) ([]byte, error) {
	c.data = data
	return []byte("%PDF"), nil
}

func TestReportGenerate(t *testing.T) {
	repo := &mocks.DashboardRepository{}
	stages := &mocks.StageRepository{}
	stages.On("First", mock.Anything).Return(first, nil)
	stages.On("GetByKey", mock.Anything, entity.StageKeyWon).Return(won, nil)
	stages.On("List", mock.Anything).Return([]entity.PipelineStage{*first, *won}, nil)
	expectMetrics(repo)
	pdf := &capturePDF{}

	uc := NewReportUseCase(newDashboard(repo, stages), stages, pdf, money.NewFormatter("en"), "USD")
	b, err := uc.Generate(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF"), b)
	require.NotNil(t, pdf.data)
	assert.Equal(t, "Reporte comercial - Mayo 2024", pdf.data.Title)
	assert.Equal(t, "10/05/2024 15:30", pdf.data.GeneratedAt)
	assert.Equal(t, []dto.StageReportRow{{Name: "Nuevo", Count: 5}, {Name: "Ganado", Count: 3}, {Name: "Sin etapa", Count: 1}}, pdf.data.Stages)
	assert.Contains(t, pdf.data.MRRLabel, "USD")
	assert.Contains(t, pdf.data.MRRLabel, "1,500.00")
}
