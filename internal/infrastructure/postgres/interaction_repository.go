package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/CRM-api/internal/domain/entity"
	"github.com/jhoicas/CRM-api/internal/domain/repository"
)

var (
	_ repository.InteractionRepository = (*InteractionRepo)(nil)
	_ repository.LeadChangeRepository  = (*LeadChangeRepo)(nil)
)

// InteractionRepo implementación del puerto InteractionRepository (solo inserción y lectura).
type InteractionRepo struct {
	q Querier
}

// NewInteractionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInteractionRepository(q Querier) *InteractionRepo {
	return &InteractionRepo{q: q}
}

// Create agrega una interacción.
func (r *InteractionRepo) Create(ctx context.Context, in *entity.Interaction) error {
	query := `
		INSERT INTO interacciones (id, lead_id, channel, type, content, date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query, in.ID, in.LeadID, in.Channel, in.Type, nullText(in.Content), in.Date, in.CreatedAt)
	if err != nil {
		return storeErr("insert interaction", err)
	}
	return nil
}

// ListByLead ordena por fecha descendente.
func (r *InteractionRepo) ListByLead(ctx context.Context, leadID string) ([]entity.Interaction, error) {
	query := `
		SELECT id, lead_id, channel, type, COALESCE(content, ''), date, created_at
		FROM interacciones WHERE lead_id = $1 ORDER BY date DESC, created_at DESC`
	rows, err := r.q.Query(ctx, query, leadID)
	if err != nil {
		return nil, storeErr("list interactions", err)
	}
	defer rows.Close()
	list := make([]entity.Interaction, 0)
	for rows.Next() {
		var i entity.Interaction
		if err := rows.Scan(&i.ID, &i.LeadID, &i.Channel, &i.Type, &i.Content, &i.Date, &i.CreatedAt); err != nil {
			return nil, storeErr("scan interaction", err)
		}
		list = append(list, i)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list interactions", err)
	}
	return list, nil
}

// Reassign mueve las interacciones de fromLeadIDs a toLeadID.
func (r *InteractionRepo) Reassign(ctx context.Context, fromLeadIDs []string, toLeadID string) (int64, error) {
	return reassign(ctx, r.q, "interacciones", fromLeadIDs, toLeadID)
}

// LeadChangeRepo implementación del puerto LeadChangeRepository.
type LeadChangeRepo struct {
	q Querier
}

// NewLeadChangeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLeadChangeRepository(q Querier) *LeadChangeRepo {
	return &LeadChangeRepo{q: q}
}

var leadChangeColumns = []string{"id", "lead_id", "field", "before_value", "after_value", "created_at"}

// CreateMany agrega las entradas con COPY.
func (r *LeadChangeRepo) CreateMany(ctx context.Context, changes []*entity.LeadChange) error {
	if len(changes) == 0 {
		return nil
	}
	rows := make([][]any, 0, len(changes))
	for _, c := range changes {
		rows = append(rows, []any{c.ID, c.LeadID, c.Field, c.Before, c.After, c.CreatedAt})
	}
	if _, err := r.q.CopyFrom(ctx, pgx.Identifier{"lead_changes"}, leadChangeColumns, pgx.CopyFromRows(rows)); err != nil {
		return storeErr("copy lead changes", err)
	}
	return nil
}

// ListByLead ordena por creado_en descendente.
func (r *LeadChangeRepo) ListByLead(ctx context.Context, leadID string) ([]entity.LeadChange, error) {
	query := `
		SELECT id, lead_id, field, before_value, after_value, created_at
		FROM lead_changes WHERE lead_id = $1 ORDER BY created_at DESC, id`
	rows, err := r.q.Query(ctx, query, leadID)
	if err != nil {
		return nil, storeErr("list lead changes", err)
	}
	defer rows.Close()
	list := make([]entity.LeadChange, 0)
	for rows.Next() {
		var c entity.LeadChange
		if err := rows.Scan(&c.ID, &c.LeadID, &c.Field, &c.Before, &c.After, &c.CreatedAt); err != nil {
			return nil, storeErr("scan lead change", err)
		}
		list = append(list, c)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list lead changes", err)
	}
	return list, nil
}

// Reassign mueve el historial de fromLeadIDs a toLeadID.
func (r *LeadChangeRepo) Reassign(ctx context.Context, fromLeadIDs []string, toLeadID string) (int64, error) {
	return reassign(ctx, r.q, "lead_changes", fromLeadIDs, toLeadID)
}

func reassign(ctx context.Context, q Querier, table string, from []string, to string) (int64, error) {
	if len(from) == 0 {
		return 0, nil
	}
	query := `UPDATE ` + pgx.Identifier{table}.Sanitize() + ` SET lead_id = $2 WHERE lead_id = ANY($1)`
	cmd, err := q.Exec(ctx, query, from, to)
	if err != nil {
		return 0, storeErr("reassign "+table, err)
	}
	return cmd.RowsAffected(), nil
}
