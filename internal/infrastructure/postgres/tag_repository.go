package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/CRM-api/internal/domain/entity"
	"github.com/jhoicas/CRM-api/internal/domain/repository"
)

var _ repository.TagRepository = (*TagRepo)(nil)

const tagSelect = `SELECT id, name, color, created_at, updated_at FROM tags`

// TagRepo implementación del puerto TagRepository sobre PostgreSQL (usable con pool o tx).
type TagRepo struct {
	q Querier
}

// NewTagRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTagRepository(q Querier) *TagRepo {
	return &TagRepo{q: q}
}

func (r *TagRepo) many(ctx context.Context, op, query string, args ...any) ([]entity.Tag, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, storeErr(op, err)
	}
	defer rows.Close()
	list := make([]entity.Tag, 0)
	for rows.Next() {
		var t entity.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.Color, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, storeErr(op, err)
		}
		list = append(list, t)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr(op, err)
	}
	return list, nil
}

// List ordena por nombre.
func (r *TagRepo) List(ctx context.Context) ([]entity.Tag, error) {
	return r.many(ctx, "list tags", tagSelect+` ORDER BY name, id`)
}

// GetByID obtiene una etiqueta por ID.
func (r *TagRepo) GetByID(ctx context.Context, id string) (*entity.Tag, error) {
	var t entity.Tag
	err := r.q.QueryRow(ctx, tagSelect+` WHERE id = $1`, id).Scan(&t.ID, &t.Name, &t.Color, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storeErr("get tag", err)
	}
	return &t, nil
}

// GetByIDs devuelve las etiquetas existentes entre ids.
func (r *TagRepo) GetByIDs(ctx context.Context, ids []string) ([]entity.Tag, error) {
	if len(ids) == 0 {
		return []entity.Tag{}, nil
	}
	return r.many(ctx, "get tags", tagSelect+` WHERE id = ANY($1) ORDER BY name`, ids)
}

// Create persiste una etiqueta.
func (r *TagRepo) Create(ctx context.Context, t *entity.Tag) error {
	query := `INSERT INTO tags (id, name, color, created_at, updated_at) VALUES ($1, $2, $3, $4, $5)`
	if _, err := r.q.Exec(ctx, query, t.ID, t.Name, t.Color, t.CreatedAt, t.UpdatedAt); err != nil {
		return storeErr("insert tag", err)
	}
	return nil
}

// Update actualiza nombre y color.
func (r *TagRepo) Update(ctx context.Context, t *entity.Tag) error {
	query := `UPDATE tags SET name = $2, color = $3, updated_at = $4 WHERE id = $1`
	if _, err := r.q.Exec(ctx, query, t.ID, t.Name, t.Color, t.UpdatedAt); err != nil {
		return storeErr("update tag", err)
	}
	return nil
}

// Delete elimina una etiqueta.
func (r *TagRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM tags WHERE id = $1`, id); err != nil {
		return storeErr("delete tag", err)
	}
	return nil
}

// ListByLead etiquetas de un lead, por nombre.
func (r *TagRepo) ListByLead(ctx context.Context, leadID string) ([]entity.Tag, error) {
	query := `
		SELECT t.id, t.name, t.color, t.created_at, t.updated_at
		FROM tags t JOIN lead_tags lt ON lt.tag_id = t.id
		WHERE lt.lead_id = $1 ORDER BY t.name`
	return r.many(ctx, "list lead tags", query, leadID)
}

// ListByLeads agrupa por lead_id las etiquetas de varios leads en una sola consulta.
func (r *TagRepo) ListByLeads(ctx context.Context, leadIDs []string) (map[string][]entity.Tag, error) {
	out := make(map[string][]entity.Tag, len(leadIDs))
	if len(leadIDs) == 0 {
		return out, nil
	}
	query := `
		SELECT lt.lead_id, t.id, t.name, t.color, t.created_at, t.updated_at
		FROM tags t JOIN lead_tags lt ON lt.tag_id = t.id
		WHERE lt.lead_id = ANY($1) ORDER BY t.name`
	rows, err := r.q.Query(ctx, query, leadIDs)
	if err != nil {
		return nil, storeErr("list tags by leads", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			leadID string
			t      entity.Tag
		)
		if err := rows.Scan(&leadID, &t.ID, &t.Name, &t.Color, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, storeErr("scan lead tag", err)
		}
		out[leadID] = append(out[leadID], t)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list tags by leads", err)
	}
	return out, nil
}

// ReplaceLeadTags deja al lead exactamente con tagIDs.
func (r *TagRepo) ReplaceLeadTags(ctx context.Context, leadID string, tagIDs []string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM lead_tags WHERE lead_id = $1`, leadID); err != nil {
		return storeErr("clear lead tags", err)
	}
	if len(tagIDs) == 0 {
		return nil
	}
	query := `
		INSERT INTO lead_tags (lead_id, tag_id)
		SELECT $1, unnest($2::text[])
		ON CONFLICT DO NOTHING`
	if _, err := r.q.Exec(ctx, query, leadID, tagIDs); err != nil {
		return storeErr("insert lead tags", err)
	}
	return nil
}

// DeleteLeadLinks quita todas las etiquetas de los leads.
func (r *TagRepo) DeleteLeadLinks(ctx context.Context, leadIDs []string) error {
	if len(leadIDs) == 0 {
		return nil
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM lead_tags WHERE lead_id = ANY($1)`, leadIDs); err != nil {
		return storeErr("delete lead links", err)
	}
	return nil
}

// DeleteTagLinks quita la etiqueta de todos los leads.
func (r *TagRepo) DeleteTagLinks(ctx context.Context, tagID string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM lead_tags WHERE tag_id = $1`, tagID); err != nil {
		return storeErr("delete tag links", err)
	}
	return nil
}
