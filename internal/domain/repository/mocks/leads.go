// Package mocks implementaciones de los puertos de repositorio con testify/mock para tests de casos de uso.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/jhoicas/CRM-api/internal/domain/entity"
	"github.com/jhoicas/CRM-api/internal/domain/repository"
)

var _ repository.LeadRepository = (*LeadRepository)(nil)

// LeadRepository mock de repository.LeadRepository.
type LeadRepository struct{ mock.Mock }

func (m *LeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	return m.Called(ctx, lead).Error(0)
}

func (m *LeadRepository) CreateMany(ctx context.Context, leads []*entity.Lead) (int64, error) {
	args := m.Called(ctx, leads)
	return args.Get(0).(int64), args.Error(1)
}

func (m *LeadRepository) GetByID(ctx context.Context, id string) (*entity.Lead, error) {
	args := m.Called(ctx, id)
	lead, _ := args.Get(0).(*entity.Lead)
	return lead, args.Error(1)
}

func (m *LeadRepository) GetByIDs(ctx context.Context, ids []string) ([]*entity.Lead, error) {
	args := m.Called(ctx, ids)
	list, _ := args.Get(0).([]*entity.Lead)
	return list, args.Error(1)
}

func (m *LeadRepository) List(ctx context.Context) ([]*entity.Lead, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]*entity.Lead)
	return list, args.Error(1)
}

func (m *LeadRepository) ListForExport(ctx context.Context) ([]*entity.Lead, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]*entity.Lead)
	return list, args.Error(1)
}

func (m *LeadRepository) ListSummaries(ctx context.Context) ([]entity.LeadSummary, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]entity.LeadSummary)
	return list, args.Error(1)
}

func (m *LeadRepository) Update(ctx context.Context, lead *entity.Lead) error {
	return m.Called(ctx, lead).Error(0)
}

func (m *LeadRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *LeadRepository) DeleteMany(ctx context.Context, ids []string) error {
	return m.Called(ctx, ids).Error(0)
}

func (m *LeadRepository) CountByStage(ctx context.Context, stageID string) (int, error) {
	args := m.Called(ctx, stageID)
	return args.Int(0), args.Error(1)
}

func (m *LeadRepository) MoveStage(ctx context.Context, fromStageID, toStageID string) (int64, error) {
	args := m.Called(ctx, fromStageID, toStageID)
	return args.Get(0).(int64), args.Error(1)
}
