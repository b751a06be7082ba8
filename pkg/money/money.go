// Package money formatea montos en centavos para reportes, con la convención numérica del idioma.
package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Formatter imprime montos en un idioma fijo.
type Formatter struct {
	p *message.Printer
}

// NewFormatter usa el tag de idioma indicado (ej. "es-AR"); si no se reconoce usa español.
func NewFormatter(lang string) *Formatter {
	tag, err := language.Parse(lang)
	if err != nil {
		tag = language.Spanish
	}
	return &Formatter{p: message.NewPrinter(tag)}
}

// ParseCurrency valida un código ISO 4217 y lo devuelve normalizado en mayúsculas.
func ParseCurrency(code string) (string, error) {
	unit, err := currency.ParseISO(strings.TrimSpace(code))
	if err != nil {
		return "", fmt.Errorf("moneda %q: %w", code, err)
	}
	return unit.String(), nil
}

// FromCents convierte centavos a unidades con dos decimales exactos.
func FromCents(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}

// Format imprime centavos como "USD 1.234,50" según el idioma del formatter.
// Un código no reconocido se imprime tal cual.
func (f *Formatter) Format(cents decimal.Decimal, code string) string {
	amount := cents.Shift(-2).InexactFloat64()
	label := strings.ToUpper(strings.TrimSpace(code))
	if unit, err := currency.ParseISO(label); err == nil {
		label = unit.String()
	}
	return f.p.Sprintf("%s %v", label, number.Decimal(amount, number.Scale(2)))
}

// FormatCents atajo de Format para enteros.
func (f *Formatter) FormatCents(cents int64, code string) string {
	return f.Format(decimal.NewFromInt(cents), code)
}
