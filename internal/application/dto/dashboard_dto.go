package dto

// DashboardMetricsDTO indicadores del pipeline comercial.
type DashboardMetricsDTO struct {
	New              int   `json:"nuevos"`                 // leads en la primera etapa
	ContactedToday   int   `json:"contactadosHoy"`         // ultimoContacto desde el inicio de hoy
	PendingFollowUps int   `json:"seguimientosPendientes"` // proximoSeguimiento vencido
	RepliedThisWeek  int   `json:"respondieronSemana"`     // interacciones RESPUESTA de los últimos 7 días
	TotalLeads       int   `json:"totalLeads"`
	Won              int   `json:"ganados"`
	Conversion       int   `json:"conversion"` // porcentaje redondeado ganados / total
	MRRTotalCents    int64 `json:"mrrTotalCents"`
	SetupTotalCents  int64 `json:"setupTotalCents"`
}

// StageCountDTO cantidad de leads por etapa.
type StageCountDTO struct {
	StageID *string `json:"stageId"`
	Count   int     `json:"count"`
}

// TrendPointDTO leads creados en un día.
type TrendPointDTO struct {
	Date  string `json:"date"` // YYYY-MM-DD
	Count int    `json:"count"`
}

// DashboardDTO respuesta de GET /api/dashboard.
type DashboardDTO struct {
	Metrics DashboardMetricsDTO `json:"metrics"`
	Stages  []StageCountDTO     `json:"estados"`
	Trend   []TrendPointDTO     `json:"trend"`
}

// DashboardReportData datos ya resueltos para el reporte PDF (nombres de etapa incluidos).
type DashboardReportData struct {
	Title       string
	GeneratedAt string
	Currency    string
	Metrics     DashboardMetricsDTO
	MRRLabel    string
	SetupLabel  string
	Stages      []StageReportRow
	Trend       []TrendPointDTO
}

// StageReportRow fila del desglose por etapa en el reporte.
type StageReportRow struct {
	Name  string
	Count int
}
