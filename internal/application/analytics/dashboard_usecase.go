// Package analytics contiene los casos de uso del dashboard comercial y su reporte PDF.
package analytics

import (
	"context"
	"fmt"
	"math"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/CRM-api/internal/application/dto"
	"github.com/jhoicas/CRM-api/internal/domain/entity"
	"github.com/jhoicas/CRM-api/internal/domain/repository"
)

const trendDays = 7 // días de la serie de leads creados

// DashboardUseCase arma los indicadores del pipeline.
//
// Fuente de datos: DashboardRepository (consultas read-only) y StageRepository para resolver
// la etapa por defecto y la de GANADO.
type DashboardUseCase struct {
	repo   repository.DashboardRepository
	stages repository.StageRepository
	loc    *time.Location
	now    func() time.Time
}

// NewDashboardUseCase construye el caso de uso. loc define el "hoy" de las métricas diarias.
func NewDashboardUseCase(repo repository.DashboardRepository, stages repository.StageRepository, loc *time.Location) *DashboardUseCase {
	if loc == nil {
		loc = time.UTC
	}
	return &DashboardUseCase{repo: repo, stages: stages, loc: loc, now: time.Now}
}

// Get construye el DashboardDTO. Las consultas corren en paralelo; la primera que falla
// cancela el resto.
func (uc *DashboardUseCase) Get(ctx context.Context) (*dto.DashboardDTO, error) {
	now := uc.now().In(uc.loc)

	// ── Rangos de fecha ────────────────────────────────────────────────────────
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, uc.loc)
	weekStart := todayStart.AddDate(0, 0, -7)
	trendStart := todayStart.AddDate(0, 0, -(trendDays - 1))

	first, err := uc.stages.First(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard: etapa por defecto: %w", err)
	}
	won, err := uc.stages.GetByKey(ctx, entity.StageKeyWon)
	if err != nil {
		return nil, fmt.Errorf("dashboard: etapa ganado: %w", err)
	}

	var (
		m       dto.DashboardMetricsDTO
		counts  []repository.StageCount
		days    []repository.DayCount
		revenue repository.RevenueTotals
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		if first != nil {
			m.New, err = uc.repo.CountInStage(gctx, first.ID)
		}
		return wrap("nuevos", err)
	})
	g.Go(func() (err error) {
		m.ContactedToday, err = uc.repo.CountContactedSince(gctx, todayStart)
		return wrap("contactados hoy", err)
	})
	g.Go(func() (err error) {
		m.PendingFollowUps, err = uc.repo.CountFollowUpsBefore(gctx, todayStart)
		return wrap("seguimientos pendientes", err)
	})
	g.Go(func() (err error) {
		m.RepliedThisWeek, err = uc.repo.CountInteractionsSince(gctx, entity.InteractionReply, weekStart)
		return wrap("respuestas semana", err)
	})
	g.Go(func() (err error) {
		m.TotalLeads, err = uc.repo.CountLeads(gctx)
		return wrap("total leads", err)
	})
	g.Go(func() (err error) {
		counts, err = uc.repo.CountByStage(gctx)
		return wrap("por etapa", err)
	})
	g.Go(func() (err error) {
		days, err = uc.repo.CreatedPerDay(gctx, trendStart, uc.loc)
		return wrap("tendencia", err)
	})
	if won != nil {
		g.Go(func() (err error) {
			m.Won, err = uc.repo.CountInStage(gctx, won.ID)
			return wrap("ganados", err)
		})
		g.Go(func() (err error) {
			revenue, err = uc.repo.RevenueInStage(gctx, won.ID)
			return wrap("ingresos", err)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	m.Conversion = conversion(m.Won, m.TotalLeads)
	// las sumas de centavos son enteras; en JSON viajan como número
	m.MRRTotalCents = revenue.MonthlyCents.IntPart()
	m.SetupTotalCents = revenue.SetupCents.IntPart()

	stages := make([]dto.StageCountDTO, 0, len(counts))
	for _, c := range counts {
		row := dto.StageCountDTO{Count: c.Count}
		if c.StageID != "" {
			id := c.StageID
			row.StageID = &id
		}
		stages = append(stages, row)
	}

	return &dto.DashboardDTO{
		Metrics: m,
		Stages:  stages,
		Trend:   fillTrend(trendStart, days),
	}, nil
}

// conversion porcentaje redondeado de ganados sobre el total; 0 si no hay leads.
func conversion(won, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(won) * 100 / float64(total)))
}

// fillTrend devuelve exactamente trendDays puntos desde start, con 0 en los días sin altas.
func fillTrend(start time.Time, days []repository.DayCount) []dto.TrendPointDTO {
	byDate := make(map[string]int, len(days))
	for _, d := range days {
		byDate[d.Date] = d.Count
	}
	out := make([]dto.TrendPointDTO, 0, trendDays)
	for i := 0; i < trendDays; i++ {
		date := start.AddDate(0, 0, i).Format("2006-01-02")
		out = append(out, dto.TrendPointDTO{Date: date, Count: byDate[date]})
	}
	return out
}

func wrap(what string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("dashboard: %s: %w", what, err)
}
