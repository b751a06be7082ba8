package ports

import "github.com/jhoicas/CRM-api/internal/application/dto"

// SpreadsheetWriter genera un libro de cálculo con una hoja de encabezados y filas.
type SpreadsheetWriter interface {
	Write(sheet string, headers []string, rows [][]string) ([]byte, error)
}

// ReportPDFGenerator genera el reporte PDF del dashboard comercial.
type ReportPDFGenerator interface {
	GenerateDashboardReport(data *dto.DashboardReportData) ([]byte, error)
}
