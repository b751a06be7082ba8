package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// StageCount cantidad de leads por etapa; StageID vacío agrupa los leads sin etapa.
type StageCount struct {
	StageID string
	Count   int
}

// DayCount leads creados en un día (fecha YYYY-MM-DD en la zona consultada).
type DayCount struct {
	Date  string
	Count int
}

// RevenueTotals suma de montos de los deals ganados, en centavos.
type RevenueTotals struct {
	MonthlyCents decimal.Decimal
	SetupCents   decimal.Decimal
}

// DashboardRepository consultas de solo lectura para el dashboard comercial.
// Las implementaciones son read-only (no modifican datos).
type DashboardRepository interface {
	CountLeads(ctx context.Context) (int, error)
	// CountInStage cuenta leads en la etapa; stageID vacío devuelve 0.
	CountInStage(ctx context.Context, stageID string) (int, error)
	CountContactedSince(ctx context.Context, since time.Time) (int, error)
	CountFollowUpsBefore(ctx context.Context, before time.Time) (int, error)
	CountInteractionsSince(ctx context.Context, interactionType string, since time.Time) (int, error)
	CountByStage(ctx context.Context) ([]StageCount, error)
	// CreatedPerDay agrupa por día en la zona loc desde since (inclusive).
	CreatedPerDay(ctx context.Context, since time.Time, loc *time.Location) ([]DayCount, error)
	// RevenueInStage suma los deals de los leads que están en la etapa.
	RevenueInStage(ctx context.Context, stageID string) (RevenueTotals, error)
}
