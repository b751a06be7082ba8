package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/CRM-api/internal/application/dto"
	"github.com/jhoicas/CRM-api/internal/application/ports"
	"github.com/jhoicas/CRM-api/internal/application/usecase"
	"github.com/jhoicas/CRM-api/internal/domain"
	"github.com/jhoicas/CRM-api/internal/domain/entity"
	"github.com/jhoicas/CRM-api/internal/domain/repository/mocks"
	"github.com/jhoicas/CRM-api/pkg/logger"
)

// stubTx ejecuta fn con los repos mock y propaga su error, como haría un commit/rollback.
type stubTx struct {
	repos ports.Repos
	runs  int
}

func (s *stubTx) Run(_ context.Context, fn func(tx ports.Repos) error) error {
	s.runs++
	return fn(s.repos)
}

func ptr[T any](v T) *T { return &v }

// ──────────────────────────────────────────────────────────────────────────────
// Etapas
// ──────────────────────────────────────────────────────────────────────────────

func newStageUC() (*usecase.StageUseCase, *mocks.StageRepository, *mocks.LeadRepository, *stubTx) {
	stages := &mocks.StageRepository{}
	leads := &mocks.LeadRepository{}
	tx := &stubTx{repos: ports.Repos{Stages: stages, Leads: leads}}
	return usecase.NewStageUseCase(stages, tx, logger.Nop()), stages, leads, tx
}

func TestStageCreate_OrdenPorDefectoAlFinal(t *testing.T) {
	uc, stages, _, _ := newStageUC()
	stages.On("MaxOrder", mock.Anything).Return(8, nil)
	stages.On("Create", mock.Anything, mock.MatchedBy(func(s *entity.PipelineStage) bool {
		return s.Name == "Demo" && s.Order == 9 && s.Color == entity.DefaultStageColor && s.Key == "DEMO" && s.ID != ""
	})).Return(nil)

	out, err := uc.Create(context.Background(), dto.CreateStageRequest{Name: "  Demo ", Key: "demo"})

	require.NoError(t, err)
	assert.Equal(t, 9, out.Order)
	stages.AssertExpectations(t)
}

func TestStageCreate_Validaciones(t *testing.T) {
	uc, stages, _, _ := newStageUC()

	_, err := uc.Create(context.Background(), dto.CreateStageRequest{Name: "   "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	stages.On("Create", mock.Anything, mock.MatchedBy(func(s *entity.PipelineStage) bool { return s.Order == 3 })).Return(nil)
	_, err = uc.Create(context.Background(), dto.CreateStageRequest{Name: "X", Order: ptr(3)})
	require.NoError(t, err)
	stages.AssertNotCalled(t, "MaxOrder", mock.Anything)
}

func TestStageUpdate(t *testing.T) {
	uc, stages, _, _ := newStageUC()
	stages.On("GetByID", mock.Anything, "nope").Return(nil, nil)
	stages.On("GetByID", mock.Anything, "s1").Return(&entity.PipelineStage{ID: "s1", Name: "Viejo", Order: 1}, nil)
	stages.On("Update", mock.Anything, mock.MatchedBy(func(s *entity.PipelineStage) bool {
		return s.Name == "Nuevo nombre" && s.Order == 5
	})).Return(nil)

	_, err := uc.Update(context.Background(), "nope", dto.UpdateStageRequest{Name: ptr("x")})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	out, err := uc.Update(context.Background(), "s1", dto.UpdateStageRequest{Name: ptr("Nuevo nombre"), Order: ptr(5)})
	require.NoError(t, err)
	assert.Equal(t, "Nuevo nombre", out.Name)
}

func TestStageDelete_ConLeadsSinDestino(t *testing.T) {
	uc, stages, leads, _ := newStageUC()
	stages.On("GetByID", mock.Anything, "s1").Return(&entity.PipelineStage{ID: "s1"}, nil)
	leads.On("CountByStage", mock.Anything, "s1").Return(4, nil)

	err := uc.Delete(context.Background(), "s1", dto.DeleteStageRequest{})

	assert.ErrorIs(t, err, domain.ErrConflict)
	stages.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestStageDelete_DestinoInexistente(t *testing.T) {
	uc, stages, leads, _ := newStageUC()
	stages.On("GetByID", mock.Anything, "s1").Return(&entity.PipelineStage{ID: "s1"}, nil)
	stages.On("GetByID", mock.Anything, "s2").Return(nil, nil)
	leads.On("CountByStage", mock.Anything, "s1").Return(1, nil)

	err := uc.Delete(context.Background(), "s1", dto.DeleteStageRequest{MoveToStageID: "s2"})

	assert.ErrorIs(t, err, domain.ErrNotFound)
	leads.AssertNotCalled(t, "MoveStage", mock.Anything, mock.Anything, mock.Anything)
}

func TestStageDelete_DestinoGanadoEsConflicto(t *testing.T) {
	uc, stages, leads, _ := newStageUC()
	stages.On("GetByID", mock.Anything, "s1").Return(&entity.PipelineStage{ID: "s1"}, nil)
	stages.On("GetByID", mock.Anything, "won").Return(&entity.PipelineStage{ID: "won", Key: entity.StageKeyWon}, nil)
	leads.On("CountByStage", mock.Anything, "s1").Return(2, nil)

	err := uc.Delete(context.Background(), "s1", dto.DeleteStageRequest{MoveToStageID: "won"})

	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestStageDelete_ReubicaYElimina(t *testing.T) {
	uc, stages, leads, tx := newStageUC()
	stages.On("GetByID", mock.Anything, "s1").Return(&entity.PipelineStage{ID: "s1"}, nil)
	stages.On("GetByID", mock.Anything, "s2").Return(&entity.PipelineStage{ID: "s2"}, nil)
	leads.On("CountByStage", mock.Anything, "s1").Return(3, nil)
	leads.On("MoveStage", mock.Anything, "s1", "s2").Return(int64(3), nil)
	stages.On("Delete", mock.Anything, "s1").Return(nil)

	err := uc.Delete(context.Background(), "s1", dto.DeleteStageRequest{MoveToStageID: "s2"})

	require.NoError(t, err)
	assert.Equal(t, 1, tx.runs)
	leads.AssertExpectations(t)
	stages.AssertExpectations(t)
}

func TestStageDelete_VaciaSinDestino(t *testing.T) {
	uc, stages, leads, _ := newStageUC()
	stages.On("GetByID", mock.Anything, "s1").Return(&entity.PipelineStage{ID: "s1"}, nil)
	leads.On("CountByStage", mock.Anything, "s1").Return(0, nil)
	stages.On("Delete", mock.Anything, "s1").Return(nil)

	require.NoError(t, uc.Delete(context.Background(), "s1", dto.DeleteStageRequest{}))
}

func TestStageSeedDefaults(t *testing.T) {
	uc, stages, _, tx := newStageUC()
	stages.On("SeedDefaults", mock.Anything, mock.MatchedBy(func(list []entity.PipelineStage) bool {
		if len(list) != len(entity.DefaultStages) {
			return false
		}
		for i, s := range list {
			if s.ID == "" || s.Key != entity.DefaultStages[i].Key || s.CreatedAt.IsZero() {
				return false
			}
		}
		return true
	})).Return(8, nil).Once()

	n, err := uc.SeedDefaults(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 8, n)
	assert.Equal(t, 1, tx.runs)
	assert.Empty(t, entity.DefaultStages[0].ID, "no se muta la lista por defecto")
}

func TestStageSeedDefaults_Error(t *testing.T) {
	uc, stages, _, _ := newStageUC()
	boom := errors.New("boom")
	stages.On("SeedDefaults", mock.Anything, mock.Anything).Return(0, boom)

	_, err := uc.SeedDefaults(context.Background())
	assert.ErrorIs(t, err, boom)
}

// ──────────────────────────────────────────────────────────────────────────────
// Etiquetas
// ──────────────────────────────────────────────────────────────────────────────

func TestTagCreate(t *testing.T) {
	tags := &mocks.TagRepository{}
	uc := usecase.NewTagUseCase(tags, &stubTx{repos: ports.Repos{Tags: tags}})

	_, err := uc.Create(context.Background(), dto.CreateTagRequest{Name: " "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	tags.On("Create", mock.Anything, mock.MatchedBy(func(tg *entity.Tag) bool {
		return tg.Name == "vip" && tg.Color == entity.DefaultTagColor
	})).Return(nil)
	out, err := uc.Create(context.Background(), dto.CreateTagRequest{Name: " vip "})
	require.NoError(t, err)
	assert.Equal(t, "vip", out.Name)
	assert.NotEmpty(t, out.ID)
}

func TestTagDelete_QuitaVinculosEnLaMismaTx(t *testing.T) {
	tags := &mocks.TagRepository{}
	tx := &stubTx{repos: ports.Repos{Tags: tags}}
	uc := usecase.NewTagUseCase(tags, tx)
	tags.On("GetByID", mock.Anything, "t1").Return(&entity.Tag{ID: "t1"}, nil)
	tags.On("DeleteTagLinks", mock.Anything, "t1").Return(nil)
	tags.On("Delete", mock.Anything, "t1").Return(nil)
	tags.On("GetByID", mock.Anything, "t9").Return(nil, nil)

	require.NoError(t, uc.Delete(context.Background(), "t1"))
	assert.ErrorIs(t, uc.Delete(context.Background(), "t9"), domain.ErrNotFound)
	assert.Equal(t, 2, tx.runs)
	tags.AssertExpectations(t)
}

// ──────────────────────────────────────────────────────────────────────────────
// Segmentos
// ──────────────────────────────────────────────────────────────────────────────

func TestSegmentCRUD(t *testing.T) {
	segs := &mocks.SegmentRepository{}
	uc := usecase.NewSegmentUseCase(segs)
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CreateSegmentRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	filters := &entity.SegmentFilters{Priority: entity.PriorityHigh, City: "Bogotá"}
	segs.On("Create", mock.Anything, mock.MatchedBy(func(s *entity.SavedSegment) bool {
		return s.Name == "Alta prioridad" && s.Filters.City == "Bogotá"
	})).Return(nil)
	created, err := uc.Create(ctx, dto.CreateSegmentRequest{Name: "Alta prioridad", Filters: filters})
	require.NoError(t, err)
	assert.Equal(t, entity.PriorityHigh, created.Filters.Priority)

	segs.On("GetByID", mock.Anything, "x").Return(nil, nil)
	_, err = uc.Update(ctx, "x", dto.UpdateSegmentRequest{Name: ptr("y")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, uc.Delete(ctx, "x"), domain.ErrNotFound)

	segs.On("List", mock.Anything).Return([]entity.SavedSegment{{ID: "a", Name: "A"}, {ID: "b", Name: "B"}}, nil)
	list, err := uc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}
