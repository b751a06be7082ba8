package postgres_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/CRM-api/internal/application/ports"
	"github.com/jhoicas/CRM-api/internal/domain"
	"github.com/jhoicas/CRM-api/internal/domain/entity"
	"github.com/jhoicas/CRM-api/internal/infrastructure/postgres"
	"github.com/jhoicas/CRM-api/pkg/logger"
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

// ──────────────────────────────────────────────────────────────────────────────
// TxRunner
// ──────────────────────────────────────────────────────────────────────────────

func TestTxRunner_Commit(t *testing.T) {
	mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM leads WHERE id = \$1`).WithArgs("L1").WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectCommit()

	err := postgres.NewTxRunner(mock).Run(context.Background(), func(tx ports.Repos) error {
		return tx.Leads.Delete(context.Background(), "L1")
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTxRunner_RollbackOnError(t *testing.T) {
	mock := newMock(t)
	boom := domain.Conflict("regla violada")
	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM leads`).WithArgs("L1").WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectRollback()

	err := postgres.NewTxRunner(mock).Run(context.Background(), func(tx ports.Repos) error {
		if err := tx.Leads.Delete(context.Background(), "L1"); err != nil {
			return err
		}
		return boom
	})

	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTxRunner_BeginFalla(t *testing.T) {
	mock := newMock(t)
	mock.ExpectBegin().WillReturnError(errors.New("sin conexión"))

	called := false
	err := postgres.NewTxRunner(mock).Run(context.Background(), func(ports.Repos) error {
		called = true
		return nil
	})

	assert.ErrorIs(t, err, domain.ErrStore)
	assert.False(t, called)
}

func TestTxRunner_CommitFalla(t *testing.T) {
	mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectCommit().WillReturnError(errors.New("serialization failure"))

	err := postgres.NewTxRunner(mock).Run(context.Background(), func(ports.Repos) error { return nil })

	assert.ErrorIs(t, err, domain.ErrStore)
}

// ──────────────────────────────────────────────────────────────────────────────
// Siembra de etapas
// ──────────────────────────────────────────────────────────────────────────────

var seedStages = []entity.PipelineStage{
	{ID: "s1", Key: entity.StageKeyNew, Name: "Nuevo", Color: "c1", Order: 1},
	{ID: "s2", Key: entity.StageKeyWon, Name: "Ganado", Color: "c2", Order: 2},
}

func TestStageSeedDefaults_TablaVacia(t *testing.T) {
	mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectExec(`SELECT pg_advisory_xact_lock\(\$1\)`).WithArgs(pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("SELECT", 1))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM pipeline_stages`).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(0))
	for _, s := range seedStages {
		k := s.Key
		mock.ExpectExec(`ON CONFLICT \(key\) DO NOTHING`).
			WithArgs(s.ID, &k, s.Name, s.Color, s.Order, pgxmock.AnyArg(), pgxmock.AnyArg()).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
	}
	mock.ExpectCommit()

	var n int
	err := postgres.NewTxRunner(mock).Run(context.Background(), func(tx ports.Repos) (err error) {
		n, err = tx.Stages.SeedDefaults(context.Background(), seedStages)
		return err
	})

	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStageSeedDefaults_YaSembrada(t *testing.T) {
	mock := newMock(t)
	mock.ExpectExec(`SELECT pg_advisory_xact_lock`).WithArgs(pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("SELECT", 1))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM pipeline_stages`).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(8))

	n, err := postgres.NewStageRepository(mock).SeedDefaults(context.Background(), seedStages)

	require.NoError(t, err)
	assert.Zero(t, n)
	assert.NoError(t, mock.ExpectationsWereMet(), "no debe insertar nada")
}

func TestStageCreate_ClaveDuplicada(t *testing.T) {
	mock := newMock(t)
	mock.ExpectExec(`INSERT INTO pipeline_stages`).
		WillReturnError(&pgconn.PgError{Code: "23505", Message: "duplicate key"})

	err := postgres.NewStageRepository(mock).Create(context.Background(), &entity.PipelineStage{ID: "s", Key: "X", Name: "X"})

	assert.ErrorIs(t, err, domain.ErrConflict)
}

// ──────────────────────────────────────────────────────────────────────────────
// Leads
// ──────────────────────────────────────────────────────────────────────────────

func TestLeadCreateMany_UsaCopy(t *testing.T) {
	mock := newMock(t)
	cols := []string{
		"id", "name", "company", "industry", "city", "phone", "whatsapp", "instagram", "website",
		"stage_id", "priority", "source", "note", "last_contacted_at", "next_follow_up_at",
		"created_at", "updated_at",
	}
	mock.ExpectCopyFrom(pgx.Identifier{"leads"}, cols).WillReturnResult(2)

	now := time.Now()
	n, err := postgres.NewLeadRepository(mock).CreateMany(context.Background(), []*entity.Lead{
		{ID: "a", Name: "Ana", Priority: entity.PriorityMedium, CreatedAt: now, UpdatedAt: now},
		{ID: "b", Name: "Beto", Priority: entity.PriorityMedium, CreatedAt: now, UpdatedAt: now},
	})

	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeadCreateMany_LoteVacio(t *testing.T) {
	mock := newMock(t)
	n, err := postgres.NewLeadRepository(mock).CreateMany(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeadGetByID_NoExiste(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery(`FROM leads\s+WHERE id = \$1`).WithArgs("x").WillReturnError(pgx.ErrNoRows)

	l, err := postgres.NewLeadRepository(mock).GetByID(context.Background(), "x")

	require.NoError(t, err)
	assert.Nil(t, l)
}

func TestLeadDelete_ErrorDeStore(t *testing.T) {
	mock := newMock(t)
	mock.ExpectExec(`DELETE FROM leads`).WithArgs("L1").WillReturnError(errors.New("connection reset"))

	err := postgres.NewLeadRepository(mock).Delete(context.Background(), "L1")

	assert.ErrorIs(t, err, domain.ErrStore)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestLeadMoveStage(t *testing.T) {
	mock := newMock(t)
	mock.ExpectExec(`UPDATE leads SET stage_id = \$2`).WithArgs("s1", "s2").WillReturnResult(pgxmock.NewResult("UPDATE", 4))

	n, err := postgres.NewLeadRepository(mock).MoveStage(context.Background(), "s1", "s2")

	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
}

// ──────────────────────────────────────────────────────────────────────────────
// Etiquetas, deals, historial, dashboard
// ──────────────────────────────────────────────────────────────────────────────

func TestTagGetByID(t *testing.T) {
	mock := newMock(t)
	ts := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`FROM tags WHERE id = \$1`).WithArgs("t1").
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "color", "created_at", "updated_at"}).
			AddRow("t1", "vip", "c", ts, ts))

	tag, err := postgres.NewTagRepository(mock).GetByID(context.Background(), "t1")

	require.NoError(t, err)
	require.NotNil(t, tag)
	assert.Equal(t, "vip", tag.Name)
}

func TestTagReplaceLeadTags(t *testing.T) {
	mock := newMock(t)
	mock.ExpectExec(`DELETE FROM lead_tags WHERE lead_id = \$1`).WithArgs("L1").WillReturnResult(pgxmock.NewResult("DELETE", 3))
	mock.ExpectExec(`INSERT INTO lead_tags`).WithArgs("L1", []string{"t1", "t2"}).WillReturnResult(pgxmock.NewResult("INSERT", 2))

	require.NoError(t, postgres.NewTagRepository(mock).ReplaceLeadTags(context.Background(), "L1", []string{"t1", "t2"}))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDealUpsert_ConservaIDExistente(t *testing.T) {
	mock := newMock(t)
	created := time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`ON CONFLICT \(lead_id\) DO UPDATE`).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow("d-old", created))

	d := &entity.Deal{ID: "d-new", LeadID: "L1", Currency: "USD", MonthlyPriceCents: 100}
	require.NoError(t, postgres.NewDealRepository(mock).Upsert(context.Background(), d))

	assert.Equal(t, "d-old", d.ID)
	assert.Equal(t, created, d.CreatedAt)
}

func TestReassign(t *testing.T) {
	mock := newMock(t)
	mock.ExpectExec(`UPDATE "interacciones" SET lead_id = \$2 WHERE lead_id = ANY\(\$1\)`).
		WithArgs([]string{"B", "C"}, "A").WillReturnResult(pgxmock.NewResult("UPDATE", 5))

	n, err := postgres.NewInteractionRepository(mock).Reassign(context.Background(), []string{"B", "C"}, "A")
	require.NoError(t, err)
	assert.Equal(t, int64(5), n)

	n, err = postgres.NewLeadChangeRepository(mock).Reassign(context.Background(), nil, "A")
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeadChangesCreateMany(t *testing.T) {
	mock := newMock(t)
	mock.ExpectCopyFrom(pgx.Identifier{"lead_changes"}, []string{"id", "lead_id", "field", "before_value", "after_value", "created_at"}).
		WillReturnResult(1)

	err := postgres.NewLeadChangeRepository(mock).CreateMany(context.Background(), []*entity.LeadChange{
		{ID: "c1", LeadID: "L1", Field: "Nombre", Before: "a", After: "b"},
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDashboardRevenueInStage(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery(`FROM deals d`).WithArgs("won").
		WillReturnRows(pgxmock.NewRows([]string{"mrr", "setup"}).
			AddRow(decimal.NewFromInt(250000), decimal.NewFromInt(10000)))

	totals, err := postgres.NewDashboardRepository(mock).RevenueInStage(context.Background(), "won")

	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(250000).Equal(totals.MonthlyCents))
	assert.True(t, decimal.NewFromInt(10000).Equal(totals.SetupCents))
}

func TestDashboardCountInStage_SinEtapa(t *testing.T) {
	mock := newMock(t)
	n, err := postgres.NewDashboardRepository(mock).CountInStage(context.Background(), "")
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ──────────────────────────────────────────────────────────────────────────────
// Migraciones
// ──────────────────────────────────────────────────────────────────────────────

func TestMigrate_AplicaEsquema(t *testing.T) {
	mock := newMock(t)
	mock.ExpectExec(`(?s)CREATE TABLE IF NOT EXISTS pipeline_stages.*CREATE TABLE IF NOT EXISTS saved_segments`).
		WillReturnResult(pgxmock.NewResult("CREATE", 0))

	require.NoError(t, postgres.Migrate(context.Background(), mock, logger.Nop()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrate_ErrorDeStore(t *testing.T) {
	mock := newMock(t)
	mock.ExpectExec(`CREATE TABLE`).WillReturnError(errors.New("permission denied"))

	err := postgres.Migrate(context.Background(), mock, logger.Nop())
	assert.ErrorIs(t, err, domain.ErrStore)
	assert.Contains(t, err.Error(), "001_crm_schema.sql")
}
