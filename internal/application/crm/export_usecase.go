package crm

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/CRM-api/internal/application/ports"
	"github.com/jhoicas/CRM-api/pkg/csvtext"
)

// ExportSheetName hoja del libro XLSX exportado.
const ExportSheetName = "Leads"

// ExportHeaders columnas de la exportación, en orden.
var ExportHeaders = []string{
	"id", "nombre", "empresa", "rubro", "ciudad", "telefono", "whatsapp", "instagram", "web",
	"estado", "prioridad", "etiquetas", "fuente", "nota", "ultimoContacto", "proximoSeguimiento",
	"creadoEn", "actualizadoEn",
}

// ExportUseCase exporta todos los leads (creado asc) como CSV o XLSX.
type ExportUseCase struct {
	repos ports.Repos
	xlsx  ports.SpreadsheetWriter
}

// NewExportUseCase construye el caso de uso.
func NewExportUseCase(repos ports.Repos, xlsx ports.SpreadsheetWriter) *ExportUseCase {
	return &ExportUseCase{repos: repos, xlsx: xlsx}
}

// CSV devuelve el texto CSV de la exportación.
func (uc *ExportUseCase) CSV(ctx context.Context) (string, error) {
	rows, err := uc.rows(ctx)
	if err != nil {
		return "", err
	}
	return csvtext.Write(ExportHeaders, rows), nil
}

// XLSX devuelve el libro con una hoja "Leads".
func (uc *ExportUseCase) XLSX(ctx context.Context) ([]byte, error) {
	rows, err := uc.rows(ctx)
	if err != nil {
		return nil, err
	}
	return uc.xlsx.Write(ExportSheetName, ExportHeaders, rows)
}

func (uc *ExportUseCase) rows(ctx context.Context) ([][]string, error) {
	leads, err := uc.repos.Leads.ListForExport(ctx)
	if err != nil {
		return nil, err
	}
	aggs, err := assemble(ctx, uc.repos, leads)
	if err != nil {
		return nil, err
	}

	iso := func(t *time.Time) string {
		if t == nil {
			return ""
		}
		return t.UTC().Format(time.RFC3339)
	}

	out := make([][]string, 0, len(aggs))
	for _, a := range aggs {
		l := a.Lead
		stage := ""
		if a.Stage != nil {
			stage = a.Stage.Name
		}
		names := make([]string, 0, len(a.Tags))
		for _, t := range a.Tags {
			names = append(names, t.Name)
		}
		out = append(out, []string{
			l.ID, l.Name, l.Company, l.Industry, l.City, l.Phone, l.WhatsApp, l.Instagram, l.Website,
			stage, l.Priority, strings.Join(names, "|"), l.Source, l.Note,
			iso(l.LastContactedAt), iso(l.NextFollowUpAt), iso(&l.CreatedAt), iso(&l.UpdatedAt),
		})
	}
	return out, nil
}
