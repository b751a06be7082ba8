package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/CRM-api/internal/domain/entity"
	"github.com/jhoicas/CRM-api/internal/domain/repository"
)

var _ repository.DealRepository = (*DealRepo)(nil)

const dealSelect = `
	SELECT id, lead_id, currency, monthly_price_cents, setup_price_cents, closed_at,
	       COALESCE(notes, ''), created_at, updated_at
	FROM deals`

// DealRepo implementación del puerto DealRepository sobre PostgreSQL (usable con pool o tx).
type DealRepo struct {
	q Querier
}

// NewDealRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDealRepository(q Querier) *DealRepo {
	return &DealRepo{q: q}
}

func scanDeal(row pgx.Row) (*entity.Deal, error) {
	var d entity.Deal
	err := row.Scan(&d.ID, &d.LeadID, &d.Currency, &d.MonthlyPriceCents, &d.SetupPriceCents,
		&d.ClosedAt, &d.Notes, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// GetByLeadID obtiene el deal de un lead.
func (r *DealRepo) GetByLeadID(ctx context.Context, leadID string) (*entity.Deal, error) {
	d, err := scanDeal(r.q.QueryRow(ctx, dealSelect+` WHERE lead_id = $1`, leadID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storeErr("get deal", err)
	}
	return d, nil
}

// GetByLeadIDs indexa por lead_id.
func (r *DealRepo) GetByLeadIDs(ctx context.Context, leadIDs []string) (map[string]*entity.Deal, error) {
	out := make(map[string]*entity.Deal, len(leadIDs))
	if len(leadIDs) == 0 {
		return out, nil
	}
	rows, err := r.q.Query(ctx, dealSelect+` WHERE lead_id = ANY($1)`, leadIDs)
	if err != nil {
		return nil, storeErr("get deals", err)
	}
	defer rows.Close()
	for rows.Next() {
		d, err := scanDeal(rows)
		if err != nil {
			return nil, storeErr("scan deal", err)
		}
		out[d.LeadID] = d
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("get deals", err)
	}
	return out, nil
}

// Upsert crea o reemplaza el deal del lead. Si ya existía conserva su id y creado_en, y los
// devuelve en deal.
func (r *DealRepo) Upsert(ctx context.Context, d *entity.Deal) error {
	query := `
		INSERT INTO deals (id, lead_id, currency, monthly_price_cents, setup_price_cents, closed_at,
		                   notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (lead_id) DO UPDATE SET
		    currency            = EXCLUDED.currency,
		    monthly_price_cents = EXCLUDED.monthly_price_cents,
		    setup_price_cents   = EXCLUDED.setup_price_cents,
		    closed_at           = EXCLUDED.closed_at,
		    notes               = EXCLUDED.notes,
		    updated_at          = EXCLUDED.updated_at
		RETURNING id, created_at`
	err := r.q.QueryRow(ctx, query,
		d.ID, d.LeadID, d.Currency, d.MonthlyPriceCents, d.SetupPriceCents, d.ClosedAt,
		nullText(d.Notes), d.CreatedAt, d.UpdatedAt,
	).Scan(&d.ID, &d.CreatedAt)
	if err != nil {
		return storeErr("upsert deal", err)
	}
	return nil
}

// DeleteByLeadID elimina el deal de un lead.
func (r *DealRepo) DeleteByLeadID(ctx context.Context, leadID string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM deals WHERE lead_id = $1`, leadID); err != nil {
		return storeErr("delete deal", err)
	}
	return nil
}

// DeleteByLeadIDs elimina los deals de varios leads.
func (r *DealRepo) DeleteByLeadIDs(ctx context.Context, leadIDs []string) error {
	if len(leadIDs) == 0 {
		return nil
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM deals WHERE lead_id = ANY($1)`, leadIDs); err != nil {
		return storeErr("delete deals", err)
	}
	return nil
}
