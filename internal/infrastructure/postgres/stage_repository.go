package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/CRM-api/internal/domain"
	"github.com/jhoicas/CRM-api/internal/domain/entity"
	"github.com/jhoicas/CRM-api/internal/domain/repository"
)

var _ repository.StageRepository = (*StageRepo)(nil)

// seedLockKey clave del advisory lock de la siembra de etapas.
const seedLockKey int64 = 0x43524d5354

const stageSelect = `
	SELECT id, COALESCE(key, ''), name, color, sort_order, created_at, updated_at
	FROM pipeline_stages`

// StageRepo implementación del puerto StageRepository sobre PostgreSQL (usable con pool o tx).
type StageRepo struct {
	q Querier
}

// NewStageRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStageRepository(q Querier) *StageRepo {
	return &StageRepo{q: q}
}

func scanStage(row pgx.Row) (*entity.PipelineStage, error) {
	var s entity.PipelineStage
	if err := row.Scan(&s.ID, &s.Key, &s.Name, &s.Color, &s.Order, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *StageRepo) one(ctx context.Context, op, query string, args ...any) (*entity.PipelineStage, error) {
	s, err := scanStage(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storeErr(op, err)
	}
	return s, nil
}

func (r *StageRepo) many(ctx context.Context, op, query string, args ...any) ([]entity.PipelineStage, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, storeErr(op, err)
	}
	defer rows.Close()
	list := make([]entity.PipelineStage, 0)
	for rows.Next() {
		s, err := scanStage(rows)
		if err != nil {
			return nil, storeErr(op, err)
		}
		list = append(list, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr(op, err)
	}
	return list, nil
}

// List ordena por orden ascendente.
func (r *StageRepo) List(ctx context.Context) ([]entity.PipelineStage, error) {
	return r.many(ctx, "list stages", stageSelect+` ORDER BY sort_order, name`)
}

// GetByID obtiene una etapa por ID.
func (r *StageRepo) GetByID(ctx context.Context, id string) (*entity.PipelineStage, error) {
	return r.one(ctx, "get stage", stageSelect+` WHERE id = $1`, id)
}

// GetByIDs devuelve las etapas existentes entre ids.
func (r *StageRepo) GetByIDs(ctx context.Context, ids []string) ([]entity.PipelineStage, error) {
	if len(ids) == 0 {
		return []entity.PipelineStage{}, nil
	}
	return r.many(ctx, "get stages", stageSelect+` WHERE id = ANY($1) ORDER BY sort_order`, ids)
}

// GetByKey obtiene la etapa con la clave dada.
func (r *StageRepo) GetByKey(ctx context.Context, key string) (*entity.PipelineStage, error) {
	return r.one(ctx, "get stage by key", stageSelect+` WHERE key = $1`, key)
}

// First etapa de menor orden.
func (r *StageRepo) First(ctx context.Context) (*entity.PipelineStage, error) {
	return r.one(ctx, "first stage", stageSelect+` ORDER BY sort_order, created_at LIMIT 1`)
}

// MaxOrder mayor orden existente; 0 sin etapas.
func (r *StageRepo) MaxOrder(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COALESCE(MAX(sort_order), 0) FROM pipeline_stages`).Scan(&n); err != nil {
		return 0, storeErr("max stage order", err)
	}
	return n, nil
}

// Create persiste una etapa. Una clave repetida devuelve ErrConflict.
func (r *StageRepo) Create(ctx context.Context, s *entity.PipelineStage) error {
	query := `
		INSERT INTO pipeline_stages (id, key, name, color, sort_order, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query, s.ID, nullText(s.Key), s.Name, s.Color, s.Order, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Conflict("Ya existe una etapa con la clave " + s.Key)
		}
		return storeErr("insert stage", err)
	}
	return nil
}

// Update actualiza nombre, color y orden.
func (r *StageRepo) Update(ctx context.Context, s *entity.PipelineStage) error {
	query := `UPDATE pipeline_stages SET name = $2, color = $3, sort_order = $4, updated_at = $5 WHERE id = $1`
	if _, err := r.q.Exec(ctx, query, s.ID, s.Name, s.Color, s.Order, s.UpdatedAt); err != nil {
		return storeErr("update stage", err)
	}
	return nil
}

// Delete elimina una etapa.
func (r *StageRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM pipeline_stages WHERE id = $1`, id); err != nil {
		return storeErr("delete stage", err)
	}
	return nil
}

// SeedDefaults inserta stages solo si la tabla está vacía. Requiere una tx: el advisory lock
// se libera al terminar la transacción y ON CONFLICT cubre una clave ya presente.
func (r *StageRepo) SeedDefaults(ctx context.Context, stages []entity.PipelineStage) (int, error) {
	if _, err := r.q.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, seedLockKey); err != nil {
		return 0, storeErr("seed stages lock", err)
	}
	var count int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM pipeline_stages`).Scan(&count); err != nil {
		return 0, storeErr("seed stages count", err)
	}
	if count > 0 {
		return 0, nil
	}

	query := `
		INSERT INTO pipeline_stages (id, key, name, color, sort_order, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (key) DO NOTHING`
	inserted := 0
	for _, s := range stages {
		cmd, err := r.q.Exec(ctx, query, s.ID, nullText(s.Key), s.Name, s.Color, s.Order, s.CreatedAt, s.UpdatedAt)
		if err != nil {
			return inserted, storeErr("seed stage "+s.Key, err)
		}
		inserted += int(cmd.RowsAffected())
	}
	return inserted, nil
}
