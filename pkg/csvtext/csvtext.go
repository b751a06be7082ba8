// Package csvtext lee y escribe CSV en memoria tal como lo exportan las planillas de los
// operadores: separador coma o punto y coma (mezclables), comillas dobles con "" como escape
// y finales de línea CRLF, LF o CR solo.
package csvtext

import "strings"

const bom = "\ufeff"

// Row fila indexada por encabezado.
type Row map[string]string

// Table resultado de Parse: encabezados recortados y filas de datos.
type Table struct {
	Headers []string
	Rows    []Row
}

// Parse interpreta el texto completo. La primera fila son los encabezados; las celdas se
// recortan, las que faltan al final de una fila quedan en "" y las filas en blanco se omiten.
// Un BOM UTF-8 inicial se descarta. Nunca falla: un texto vacío devuelve una tabla vacía.
func Parse(text string) Table {
	records := split(strings.TrimPrefix(text, bom))
	if len(records) == 0 {
		return Table{Rows: []Row{}}
	}

	headers := make([]string, len(records[0]))
	for i, h := range records[0] {
		headers[i] = strings.TrimSpace(h)
	}

	rows := make([]Row, 0, len(records)-1)
	for _, rec := range records[1:] {
		if blank(rec) {
			continue
		}
		row := make(Row, len(headers))
		for i, h := range headers {
			if i < len(rec) {
				row[h] = strings.TrimSpace(rec[i])
			} else {
				row[h] = ""
			}
		}
		rows = append(rows, row)
	}
	return Table{Headers: headers, Rows: rows}
}

func split(text string) [][]string {
	var (
		records [][]string
		line    []string
		cell    strings.Builder
		quoted  bool
	)
	endCell := func() {
		line = append(line, cell.String())
		cell.Reset()
	}
	endLine := func() {
		records = append(records, line)
		line = nil
	}

	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case c == '"':
			if quoted && i+1 < len(text) && text[i+1] == '"' {
				cell.WriteByte('"')
				i++
			} else {
				quoted = !quoted
			}
		case !quoted && (c == ',' || c == ';'):
			endCell()
		case !quoted && (c == '\n' || c == '\r'):
			if c == '\r' && i+1 < len(text) && text[i+1] == '\n' {
				i++
			}
			endCell()
			endLine()
		default:
			cell.WriteByte(c)
		}
	}
	endCell()
	endLine()

	if len(records) == 1 && blank(records[0]) {
		return nil
	}
	return records
}

func blank(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// Write genera CSV separado por comas con "\n" entre filas. Las celdas con comillas,
// separadores o saltos de línea se entrecomillan para que Parse las lea igual.
func Write(headers []string, rows [][]string) string {
	var b strings.Builder
	writeLine(&b, headers)
	for _, r := range rows {
		b.WriteByte('\n')
		writeLine(&b, r)
	}
	return b.String()
}

func writeLine(b *strings.Builder, cells []string) {
	for i, c := range cells {
		if i > 0 {
			b.WriteByte(',')
		}
		if strings.ContainsAny(c, "\",;\n\r") {
			b.WriteByte('"')
			b.WriteString(strings.ReplaceAll(c, `"`, `""`))
			b.WriteByte('"')
			continue
		}
		b.WriteString(c)
	}
}
