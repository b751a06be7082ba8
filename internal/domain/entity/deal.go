package entity

import (
	"strings"
	"time"
)

// Deal condiciones comerciales de un lead ganado (1:1 con Lead).
// Los montos están en unidades menores de la moneda (centavos).
type Deal struct {
	ID                string
	LeadID            string
	Currency          string
	MonthlyPriceCents int64
	SetupPriceCents   int64
	ClosedAt          time.Time
	Notes             string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// QualifiesForWon indica si el deal permite dejar el lead en la etapa GANADO.
func (d *Deal) QualifiesForWon() bool {
	return d != nil && strings.TrimSpace(d.Currency) != "" && d.MonthlyPriceCents > 0
}
