package postgres

import (
	"context"
	"time"

	"github.com/jhoicas/CRM-api/internal/domain/repository"
)

var _ repository.DashboardRepository = (*DashboardRepo)(nil)

// DashboardRepo consultas de solo lectura para el dashboard comercial.
type DashboardRepo struct {
	q Querier
}

// NewDashboardRepository construye el adaptador del dashboard.
func NewDashboardRepository(q Querier) *DashboardRepo {
	return &DashboardRepo{q: q}
}

func (r *DashboardRepo) count(ctx context.Context, op, query string, args ...any) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, storeErr("dashboard."+op, err)
	}
	return n, nil
}

// CountLeads total de leads.
func (r *DashboardRepo) CountLeads(ctx context.Context) (int, error) {
	return r.count(ctx, "CountLeads", `SELECT COUNT(*) FROM leads`)
}

// CountInStage leads en la etapa.
func (r *DashboardRepo) CountInStage(ctx context.Context, stageID string) (int, error) {
	if stageID == "" {
		return 0, nil
	}
	return r.count(ctx, "CountInStage", `SELECT COUNT(*) FROM leads WHERE stage_id = $1`, stageID)
}

// CountContactedSince leads con último contacto desde since.
func (r *DashboardRepo) CountContactedSince(ctx context.Context, since time.Time) (int, error) {
	return r.count(ctx, "CountContactedSince", `SELECT COUNT(*) FROM leads WHERE last_contacted_at >= $1`, since)
}

// CountFollowUpsBefore leads con seguimiento vencido antes de before.
func (r *DashboardRepo) CountFollowUpsBefore(ctx context.Context, before time.Time) (int, error) {
	return r.count(ctx, "CountFollowUpsBefore", `SELECT COUNT(*) FROM leads WHERE next_follow_up_at < $1`, before)
}

// CountInteractionsSince interacciones de un tipo desde since.
func (r *DashboardRepo) CountInteractionsSince(ctx context.Context, interactionType string, since time.Time) (int, error) {
	return r.count(ctx, "CountInteractionsSince",
		`SELECT COUNT(*) FROM interacciones WHERE type = $1 AND date >= $2`, interactionType, since)
}

// CountByStage agrupa los leads por etapa; los leads sin etapa van con StageID vacío.
func (r *DashboardRepo) CountByStage(ctx context.Context) ([]repository.StageCount, error) {
	const query = `
	SELECT COALESCE(l.stage_id, '') AS stage_id, COUNT(*) AS total
	FROM leads l
	LEFT JOIN pipeline_stages s ON s.id = l.stage_id
	GROUP BY l.stage_id, s.sort_order
	ORDER BY s.sort_order NULLS LAST`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, storeErr("dashboard.CountByStage", err)
	}
	defer rows.Close()
	out := make([]repository.StageCount, 0)
	for rows.Next() {
		var c repository.StageCount
		if err := rows.Scan(&c.StageID, &c.Count); err != nil {
			return nil, storeErr("dashboard.CountByStage", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("dashboard.CountByStage", err)
	}
	return out, nil
}

// CreatedPerDay leads creados por día (en la zona loc) desde since.
func (r *DashboardRepo) CreatedPerDay(ctx context.Context, since time.Time, loc *time.Location) ([]repository.DayCount, error) {
	const query = `
	SELECT to_char(created_at AT TIME ZONE $2, 'YYYY-MM-DD') AS day, COUNT(*) AS total
	FROM leads
	WHERE created_at >= $1
	GROUP BY day
	ORDER BY day`

	if loc == nil {
		loc = time.UTC
	}
	rows, err := r.q.Query(ctx, query, since, loc.String())
	if err != nil {
		return nil, storeErr("dashboard.CreatedPerDay", err)
	}
	defer rows.Close()
	out := make([]repository.DayCount, 0)
	for rows.Next() {
		var d repository.DayCount
		if err := rows.Scan(&d.Date, &d.Count); err != nil {
			return nil, storeErr("dashboard.CreatedPerDay", err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("dashboard.CreatedPerDay", err)
	}
	return out, nil
}

// RevenueInStage suma MRR y setup de los deals de los leads en la etapa. La suma se hace en
// NUMERIC y se escanea con el codec de shopspring/decimal registrado en el pool.
func (r *DashboardRepo) RevenueInStage(ctx context.Context, stageID string) (repository.RevenueTotals, error) {
	const query = `
	SELECT COALESCE(SUM(d.monthly_price_cents), 0)::NUMERIC,
	       COALESCE(SUM(d.setup_price_cents), 0)::NUMERIC
	FROM deals d
	JOIN leads l ON l.id = d.lead_id
	WHERE l.stage_id = $1`

	var t repository.RevenueTotals
	if err := r.q.QueryRow(ctx, query, stageID).Scan(&t.MonthlyCents, &t.SetupCents); err != nil {
		return repository.RevenueTotals{}, storeErr("dashboard.RevenueInStage", err)
	}
	return t, nil
}
