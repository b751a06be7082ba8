// Package pdf genera el reporte PDF del dashboard comercial.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + fecha de generación                        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  MÉTRICAS: nuevos / contactados hoy / seguimientos / ...     │
//	│  INGRESOS: MRR total + Setup total (deals ganados)           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Etapa | Leads | %                                    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TENDENCIA: leads creados por día (últimos 7 días)           │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/CRM-api/internal/application/dto"
	"github.com/jhoicas/CRM-api/internal/application/ports"
)

var _ ports.ReportPDFGenerator = (*MarotoReportGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorBar     = &props.Color{Red: 16, Green: 185, Blue: 129}
)

// trendBarWidth ancho máximo (en caracteres) de la barra de tendencia.
const trendBarWidth = 40

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReportGenerator implementa ports.ReportPDFGenerator usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GenerateDashboardReport genera el PDF y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateDashboardReport(data *dto.DashboardReportData) ([]byte, error) {
	if data == nil {
		return nil, fmt.Errorf("pdf: datos del reporte nulos")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(12).WithRightMargin(12).
		WithTopMargin(12).WithBottomMargin(12).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(data.Title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(metricRows(data)...)
	m.AddRows(revenueRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionTitle("LEADS POR ETAPA"))
	m.AddRows(tableHeaderRow())
	m.AddRows(stageRows(data.Stages, data.Metrics.TotalLeads)...)

	m.AddRows(line.NewRow(3))
	m.AddRows(sectionTitle("ALTAS DE LOS ÚLTIMOS 7 DÍAS"))
	m.AddRows(trendRows(data.Trend)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(data *dto.DashboardReportData) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New(data.Title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+data.GeneratedAt, props.Text{
				Size: 8, Align: align.Right, Top: 3, Color: colorGray,
			}),
		),
	)
}

func sectionTitle(label string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(label, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2}),
	))
}

// metricRows dos filas de tres indicadores cada una.
func metricRows(data *dto.DashboardReportData) []core.Row {
	m := data.Metrics
	metric := func(label string, value int) core.Col {
		return col.New(4).Add(
			text.New(label, props.Text{Size: 7, Color: colorGray, Top: 1}),
			text.New(fmt.Sprintf("%d", value), props.Text{Style: fontstyle.Bold, Size: 12, Top: 5}),
		)
	}
	return []core.Row{
		row.New(14).Add(
			metric("Nuevos", m.New),
			metric("Contactados hoy", m.ContactedToday),
			metric("Seguimientos pendientes", m.PendingFollowUps),
		),
		row.New(14).Add(
			metric("Respondieron (7 días)", m.RepliedThisWeek),
			metric("Total leads", m.TotalLeads),
			col.New(4).Add(
				text.New("Ganados / conversión", props.Text{Size: 7, Color: colorGray, Top: 1}),
				text.New(fmt.Sprintf("%d  (%d%%)", m.Won, m.Conversion), props.Text{Style: fontstyle.Bold, Size: 12, Top: 5}),
			),
		),
	}
}

func revenueRow(data *dto.DashboardReportData) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: 2})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1, Top: 2})
	}
	return row.New(10).Add(
		col.New(3).Add(label("MRR total:")),
		col.New(3).Add(value(data.MRRLabel)),
		col.New(3).Add(label("Setup total:")),
		col.New(3).Add(value(data.SetupLabel)),
	)
}

// tableHeaderRow: cabecera de la tabla por etapa.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Etapa", 6, align.Left),
		h("Leads", 3, align.Right),
		h("%", 3, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func stageRows(stages []dto.StageReportRow, total int) []core.Row {
	if len(stages) == 0 {
		return []core.Row{row.New(7).Add(col.New(12).Add(
			text.New("Sin leads registrados.", props.Text{Size: 8, Color: colorGray, Top: 1}),
		))}
	}
	out := make([]core.Row, 0, len(stages))
	for _, s := range stages {
		out = append(out, row.New(7).Add(
			col.New(6).Add(text.New(s.Name, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(3).Add(text.New(fmt.Sprintf("%d", s.Count), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(3).Add(text.New(percent(s.Count, total), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return out
}

func trendRows(trend []dto.TrendPointDTO) []core.Row {
	peak := 0
	for _, p := range trend {
		if p.Count > peak {
			peak = p.Count
		}
	}
	out := make([]core.Row, 0, len(trend))
	for _, p := range trend {
		out = append(out, row.New(6).Add(
			col.New(3).Add(text.New(p.Date, props.Text{Size: 8, Top: 1})),
			col.New(1).Add(text.New(fmt.Sprintf("%d", p.Count), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 2})),
			col.New(8).Add(text.New(bar(p.Count, peak), props.Text{Size: 8, Color: colorBar, Top: 1})),
		))
	}
	return out
}

// ── helpers ───────────────────────────────────────────────────────────────────

// percent devuelve count/total con un decimal, ej: "33.3%".
func percent(count, total int) string {
	if total == 0 {
		return "0.0%"
	}
	return fmt.Sprintf("%.1f%%", float64(count)*100/float64(total))
}

// bar barra de texto proporcional a peak.
func bar(count, peak int) string {
	if peak == 0 || count == 0 {
		return ""
	}
	n := count * trendBarWidth / peak
	if n == 0 {
		n = 1
	}
	return strings.Repeat("|", n)
}
