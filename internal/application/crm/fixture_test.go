package crm_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/jhoicas/CRM-api/internal/application/ports"
	"github.com/jhoicas/CRM-api/internal/domain/entity"
	"github.com/jhoicas/CRM-api/internal/domain/repository/mocks"
)

// fakeTx ejecuta fn con los mismos repos mock; cuenta las transacciones abiertas.
type fakeTx struct {
	repos ports.Repos
	runs  int
}

func (f *fakeTx) Run(_ context.Context, fn func(tx ports.Repos) error) error {
	f.runs++
	return fn(f.repos)
}

type fixture struct {
	leads        *mocks.LeadRepository
	stages       *mocks.StageRepository
	tags         *mocks.TagRepository
	deals        *mocks.DealRepository
	interactions *mocks.InteractionRepository
	changes      *mocks.LeadChangeRepository
	repos        ports.Repos
	tx           *fakeTx
}

func newFixture() *fixture {
	f := &fixture{
		leads:        &mocks.LeadRepository{},
		stages:       &mocks.StageRepository{},
		tags:         &mocks.TagRepository{},
		deals:        &mocks.DealRepository{},
		interactions: &mocks.InteractionRepository{},
		changes:      &mocks.LeadChangeRepository{},
	}
	f.repos = ports.Repos{
		Leads:        f.leads,
		Stages:       f.stages,
		Tags:         f.tags,
		Deals:        f.deals,
		Interactions: f.interactions,
		Changes:      f.changes,
	}
	f.tx = &fakeTx{repos: f.repos}
	return f
}

// expectAssemble prepara las tres lecturas por lote que arman los agregados.
func (f *fixture) expectAssemble(stages []entity.PipelineStage, tags map[string][]entity.Tag, deals map[string]*entity.Deal) {
	if stages == nil {
		stages = []entity.PipelineStage{}
	}
	if tags == nil {
		tags = map[string][]entity.Tag{}
	}
	if deals == nil {
		deals = map[string]*entity.Deal{}
	}
	f.stages.On("GetByIDs", mock.Anything, mock.Anything).Return(stages, nil).Maybe()
	f.tags.On("ListByLeads", mock.Anything, mock.Anything).Return(tags, nil)
	f.deals.On("GetByLeadIDs", mock.Anything, mock.Anything).Return(deals, nil)
}

var (
	stageNuevo      = entity.PipelineStage{ID: "st-nuevo", Key: entity.StageKeyNew, Name: "Nuevo", Order: 1}
	stageContactado = entity.PipelineStage{ID: "st-contactado", Key: entity.StageKeyContacted, Name: "Contactado", Order: 2}
	stageSeguim     = entity.PipelineStage{ID: "st-seguimiento", Key: entity.StageKeyFollowUp, Name: "Seguimiento", Order: 4}
	stageGanado     = entity.PipelineStage{ID: "st-ganado", Key: entity.StageKeyWon, Name: "Ganado", Order: 6}
)

func ptr[T any](v T) *T { return &v }
