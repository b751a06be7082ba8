package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/CRM-api/internal/domain/entity"
	"github.com/jhoicas/CRM-api/internal/domain/repository"
)

var _ repository.SegmentRepository = (*SegmentRepo)(nil)

const segmentSelect = `SELECT id, name, filters, created_at, updated_at FROM saved_segments`

// SegmentRepo implementación del puerto SegmentRepository. Los filtros se guardan en JSONB.
type SegmentRepo struct {
	q Querier
}

// NewSegmentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSegmentRepository(q Querier) *SegmentRepo {
	return &SegmentRepo{q: q}
}

func scanSegment(row pgx.Row) (*entity.SavedSegment, error) {
	var (
		s   entity.SavedSegment
		raw []byte
	)
	if err := row.Scan(&s.ID, &s.Name, &raw, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &s.Filters); err != nil {
			return nil, fmt.Errorf("filtros del segmento %s: %w", s.ID, err)
		}
	}
	return &s, nil
}

// List ordena por creado_en descendente.
func (r *SegmentRepo) List(ctx context.Context) ([]entity.SavedSegment, error) {
	rows, err := r.q.Query(ctx, segmentSelect+` ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, storeErr("list segments", err)
	}
	defer rows.Close()
	list := make([]entity.SavedSegment, 0)
	for rows.Next() {
		s, err := scanSegment(rows)
		if err != nil {
			return nil, storeErr("scan segment", err)
		}
		list = append(list, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list segments", err)
	}
	return list, nil
}

// GetByID obtiene un segmento por ID.
func (r *SegmentRepo) GetByID(ctx context.Context, id string) (*entity.SavedSegment, error) {
	s, err := scanSegment(r.q.QueryRow(ctx, segmentSelect+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storeErr("get segment", err)
	}
	return s, nil
}

// Create persiste un segmento.
func (r *SegmentRepo) Create(ctx context.Context, s *entity.SavedSegment) error {
	filters, err := json.Marshal(s.Filters)
	if err != nil {
		return fmt.Errorf("filtros del segmento: %w", err)
	}
	query := `INSERT INTO saved_segments (id, name, filters, created_at, updated_at) VALUES ($1, $2, $3, $4, $5)`
	if _, err := r.q.Exec(ctx, query, s.ID, s.Name, filters, s.CreatedAt, s.UpdatedAt); err != nil {
		return storeErr("insert segment", err)
	}
	return nil
}

// Update reemplaza nombre y filtros.
func (r *SegmentRepo) Update(ctx context.Context, s *entity.SavedSegment) error {
	filters, err := json.Marshal(s.Filters)
	if err != nil {
		return fmt.Errorf("filtros del segmento: %w", err)
	}
	query := `UPDATE saved_segments SET name = $2, filters = $3, updated_at = $4 WHERE id = $1`
	if _, err := r.q.Exec(ctx, query, s.ID, s.Name, filters, s.UpdatedAt); err != nil {
		return storeErr("update segment", err)
	}
	return nil
}

// Delete elimina un segmento.
func (r *SegmentRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM saved_segments WHERE id = $1`, id); err != nil {
		return storeErr("delete segment", err)
	}
	return nil
}
