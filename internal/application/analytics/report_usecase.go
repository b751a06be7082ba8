package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/CRM-api/internal/application/dto"
	"github.com/jhoicas/CRM-api/internal/application/ports"
	"github.com/jhoicas/CRM-api/internal/domain/repository"
	"github.com/jhoicas/CRM-api/pkg/money"
)

// ReportUseCase genera el PDF del dashboard comercial.
type ReportUseCase struct {
	dashboard *DashboardUseCase
	stages    repository.StageRepository
	pdf       ports.ReportPDFGenerator
	money     *money.Formatter
	currency  string
}

// NewReportUseCase construye el caso de uso. currency es el código ISO con el que se
// rotulan los totales de MRR y setup.
func NewReportUseCase(
	dashboard *DashboardUseCase,
	stages repository.StageRepository,
	pdf ports.ReportPDFGenerator,
	formatter *money.Formatter,
	currency string,
) *ReportUseCase {
	return &ReportUseCase{dashboard: dashboard, stages: stages, pdf: pdf, money: formatter, currency: currency}
}

// Generate devuelve el PDF con métricas, desglose por etapa y tendencia de 7 días.
func (uc *ReportUseCase) Generate(ctx context.Context) ([]byte, error) {
	d, err := uc.dashboard.Get(ctx)
	if err != nil {
		return nil, err
	}
	list, err := uc.stages.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("reporte: etapas: %w", err)
	}
	names := make(map[string]string, len(list))
	for _, s := range list {
		names[s.ID] = s.Name
	}

	rows := make([]dto.StageReportRow, 0, len(d.Stages))
	for _, c := range d.Stages {
		name := "Sin etapa"
		if c.StageID != nil {
			if n, ok := names[*c.StageID]; ok {
				name = n
			} else {
				name = *c.StageID
			}
		}
		rows = append(rows, dto.StageReportRow{Name: name, Count: c.Count})
	}

	now := uc.dashboard.now().In(uc.dashboard.loc)
	data := &dto.DashboardReportData{
		Title:       "Reporte comercial - " + monthLabel(now),
		GeneratedAt: now.Format("02/01/2006 15:04"),
		Currency:    uc.currency,
		Metrics:     d.Metrics,
		MRRLabel:    uc.money.FormatCents(d.Metrics.MRRTotalCents, uc.currency),
		SetupLabel:  uc.money.FormatCents(d.Metrics.SetupTotalCents, uc.currency),
		Stages:      rows,
		Trend:       d.Trend,
	}
	b, err := uc.pdf.GenerateDashboardReport(data)
	if err != nil {
		return nil, fmt.Errorf("reporte: pdf: %w", err)
	}
	return b, nil
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Febrero 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
