package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/CRM-api/internal/domain/entity"
	"github.com/jhoicas/CRM-api/internal/domain/repository"
)

var _ repository.LeadRepository = (*LeadRepo)(nil)

// leadColumns orden de columnas de COPY e INSERT.
var leadColumns = []string{
	"id", "name", "company", "industry", "city", "phone", "whatsapp", "instagram", "website",
	"stage_id", "priority", "source", "note", "last_contacted_at", "next_follow_up_at",
	"created_at", "updated_at",
}

const leadSelect = `
	SELECT id, name, COALESCE(company, ''), COALESCE(industry, ''), COALESCE(city, ''),
	       COALESCE(phone, ''), COALESCE(whatsapp, ''), COALESCE(instagram, ''), COALESCE(website, ''),
	       COALESCE(stage_id, ''), priority, COALESCE(source, ''), COALESCE(note, ''),
	       last_contacted_at, next_follow_up_at, created_at, updated_at
	FROM leads`

// LeadRepo implementación del puerto LeadRepository sobre PostgreSQL (usable con pool o tx).
type LeadRepo struct {
	q Querier
}

// NewLeadRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLeadRepository(q Querier) *LeadRepo {
	return &LeadRepo{q: q}
}

func leadValues(l *entity.Lead) []any {
	return []any{
		l.ID, l.Name, nullText(l.Company), nullText(l.Industry), nullText(l.City),
		nullText(l.Phone), nullText(l.WhatsApp), nullText(l.Instagram), nullText(l.Website),
		nullText(l.StageID), l.Priority, nullText(l.Source), nullText(l.Note),
		l.LastContactedAt, l.NextFollowUpAt, l.CreatedAt, l.UpdatedAt,
	}
}

func scanLead(row pgx.Row) (*entity.Lead, error) {
	var l entity.Lead
	err := row.Scan(
		&l.ID, &l.Name, &l.Company, &l.Industry, &l.City,
		&l.Phone, &l.WhatsApp, &l.Instagram, &l.Website,
		&l.StageID, &l.Priority, &l.Source, &l.Note,
		&l.LastContactedAt, &l.NextFollowUpAt, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *LeadRepo) list(ctx context.Context, op, query string, args ...any) ([]*entity.Lead, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, storeErr(op, err)
	}
	defer rows.Close()
	list := make([]*entity.Lead, 0)
	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, storeErr(op, err)
		}
		list = append(list, l)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr(op, err)
	}
	return list, nil
}

// Create persiste un nuevo lead.
func (r *LeadRepo) Create(ctx context.Context, l *entity.Lead) error {
	query := `
		INSERT INTO leads (id, name, company, industry, city, phone, whatsapp, instagram, website,
		                   stage_id, priority, source, note, last_contacted_at, next_follow_up_at,
		                   created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	if _, err := r.q.Exec(ctx, query, leadValues(l)...); err != nil {
		return storeErr("insert lead", err)
	}
	return nil
}

// CreateMany inserta el lote con COPY; dentro de una tx el lote entra completo o nada.
func (r *LeadRepo) CreateMany(ctx context.Context, leads []*entity.Lead) (int64, error) {
	if len(leads) == 0 {
		return 0, nil
	}
	rows := make([][]any, 0, len(leads))
	for _, l := range leads {
		rows = append(rows, leadValues(l))
	}
	n, err := r.q.CopyFrom(ctx, pgx.Identifier{"leads"}, leadColumns, pgx.CopyFromRows(rows))
	if err != nil {
		return 0, storeErr("copy leads", err)
	}
	return n, nil
}

// GetByID obtiene un lead por ID.
func (r *LeadRepo) GetByID(ctx context.Context, id string) (*entity.Lead, error) {
	l, err := scanLead(r.q.QueryRow(ctx, leadSelect+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storeErr("get lead", err)
	}
	return l, nil
}

// GetByIDs devuelve los leads existentes entre ids.
func (r *LeadRepo) GetByIDs(ctx context.Context, ids []string) ([]*entity.Lead, error) {
	if len(ids) == 0 {
		return []*entity.Lead{}, nil
	}
	return r.list(ctx, "get leads", leadSelect+` WHERE id = ANY($1)`, ids)
}

// List ordena por actualizado_en descendente.
func (r *LeadRepo) List(ctx context.Context) ([]*entity.Lead, error) {
	return r.list(ctx, "list leads", leadSelect+` ORDER BY updated_at DESC, id`)
}

// ListForExport ordena por creado_en ascendente.
func (r *LeadRepo) ListForExport(ctx context.Context) ([]*entity.Lead, error) {
	return r.list(ctx, "export leads", leadSelect+` ORDER BY created_at ASC, id`)
}

// ListSummaries proyección de identidad, creado_en ascendente.
func (r *LeadRepo) ListSummaries(ctx context.Context) ([]entity.LeadSummary, error) {
	query := `
		SELECT id, name, COALESCE(company, ''), COALESCE(phone, ''), COALESCE(whatsapp, ''),
		       COALESCE(instagram, ''), COALESCE(website, ''), created_at
		FROM leads ORDER BY created_at ASC, id`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, storeErr("list lead summaries", err)
	}
	defer rows.Close()
	list := make([]entity.LeadSummary, 0)
	for rows.Next() {
		var s entity.LeadSummary
		if err := rows.Scan(&s.ID, &s.Name, &s.Company, &s.Phone, &s.WhatsApp, &s.Instagram, &s.Website, &s.CreatedAt); err != nil {
			return nil, storeErr("scan lead summary", err)
		}
		list = append(list, s)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list lead summaries", err)
	}
	return list, nil
}

// Update reemplaza todos los campos editables del lead.
func (r *LeadRepo) Update(ctx context.Context, l *entity.Lead) error {
	query := `
		UPDATE leads SET name = $2, company = $3, industry = $4, city = $5, phone = $6,
		       whatsapp = $7, instagram = $8, website = $9, stage_id = $10, priority = $11,
		       source = $12, note = $13, last_contacted_at = $14, next_follow_up_at = $15,
		       updated_at = $16
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		l.ID, l.Name, nullText(l.Company), nullText(l.Industry), nullText(l.City),
		nullText(l.Phone), nullText(l.WhatsApp), nullText(l.Instagram), nullText(l.Website),
		nullText(l.StageID), l.Priority, nullText(l.Source), nullText(l.Note),
		l.LastContactedAt, l.NextFollowUpAt, l.UpdatedAt,
	)
	if err != nil {
		return storeErr("update lead", err)
	}
	return nil
}

// Delete elimina un lead; interacciones, cambios, deal y etiquetas caen por cascada.
func (r *LeadRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM leads WHERE id = $1`, id); err != nil {
		return storeErr("delete lead", err)
	}
	return nil
}

// DeleteMany elimina varios leads.
func (r *LeadRepo) DeleteMany(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM leads WHERE id = ANY($1)`, ids); err != nil {
		return storeErr("delete leads", err)
	}
	return nil
}

// CountByStage cuenta los leads de una etapa.
func (r *LeadRepo) CountByStage(ctx context.Context, stageID string) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM leads WHERE stage_id = $1`, stageID).Scan(&n); err != nil {
		return 0, storeErr("count leads by stage", err)
	}
	return n, nil
}

// MoveStage reubica todos los leads de una etapa en otra.
func (r *LeadRepo) MoveStage(ctx context.Context, fromStageID, toStageID string) (int64, error) {
	cmd, err := r.q.Exec(ctx, `UPDATE leads SET stage_id = $2, updated_at = now() WHERE stage_id = $1`, fromStageID, toStageID)
	if err != nil {
		return 0, storeErr("move leads", err)
	}
	return cmd.RowsAffected(), nil
}
