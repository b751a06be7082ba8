// Package spreadsheet lee y escribe libros XLSX para la exportación e importación de leads.
package spreadsheet

import (
	"bytes"
	"fmt"

	"github.com/tealeg/xlsx/v2"

	"github.com/jhoicas/CRM-api/internal/application/ports"
)

var _ ports.SpreadsheetWriter = (*XLSXWriter)(nil)

// XLSXWriter genera libros con una sola hoja: encabezados en la primera fila y luego los datos.
type XLSXWriter struct{}

// NewXLSXWriter construye el adaptador.
func NewXLSXWriter() *XLSXWriter {
	return &XLSXWriter{}
}

// Write arma el libro en memoria. Todas las celdas se escriben como texto.
func (w *XLSXWriter) Write(sheetName string, headers []string, rows [][]string) ([]byte, error) {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("xlsx: hoja %q: %w", sheetName, err)
	}

	header := sheet.AddRow()
	for _, h := range headers {
		cell := header.AddCell()
		cell.SetString(h)
		cell.GetStyle().Font.Bold = true
	}
	for _, r := range rows {
		row := sheet.AddRow()
		for _, v := range r {
			row.AddCell().SetString(v)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("xlsx: escribir: %w", err)
	}
	return buf.Bytes(), nil
}

// ReadFirstSheet devuelve la primera hoja como filas de texto (la primera es el encabezado).
func ReadFirstSheet(data []byte) ([][]string, error) {
	f, err := xlsx.OpenBinary(data)
	if err != nil {
		return nil, fmt.Errorf("xlsx: abrir: %w", err)
	}
	if len(f.Sheets) == 0 {
		return nil, fmt.Errorf("xlsx: el libro no tiene hojas")
	}
	out := make([][]string, 0, len(f.Sheets[0].Rows))
	for _, row := range f.Sheets[0].Rows {
		cells := make([]string, len(row.Cells))
		for i, c := range row.Cells {
			cells[i] = c.String()
		}
		out = append(out, cells)
	}
	return out, nil
}
