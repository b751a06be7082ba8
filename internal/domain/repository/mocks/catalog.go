package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/jhoicas/CRM-api/internal/domain/entity"
	"github.com/jhoicas/CRM-api/internal/domain/repository"
)

var (
	_ repository.StageRepository   = (*StageRepository)(nil)
	_ repository.TagRepository     = (*TagRepository)(nil)
	_ repository.SegmentRepository = (*SegmentRepository)(nil)
)

// StageRepository mock de repository.StageRepository.
type StageRepository struct{ mock.Mock }

func (m *StageRepository) List(ctx context.Context) ([]entity.PipelineStage, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]entity.PipelineStage)
	return list, args.Error(1)
}

func (m *StageRepository) GetByID(ctx context.Context, id string) (*entity.PipelineStage, error) {
	args := m.Called(ctx, id)
	st, _ := args.Get(0).(*entity.PipelineStage)
	return st, args.Error(1)
}

func (m *StageRepository) GetByIDs(ctx context.Context, ids []string) ([]entity.PipelineStage, error) {
	args := m.Called(ctx, ids)
	list, _ := args.Get(0).([]entity.PipelineStage)
	return list, args.Error(1)
}

func (m *StageRepository) GetByKey(ctx context.Context, key string) (*entity.PipelineStage, error) {
	args := m.Called(ctx, key)
	st, _ := args.Get(0).(*entity.PipelineStage)
	return st, args.Error(1)
}

func (m *StageRepository) First(ctx context.Context) (*entity.PipelineStage, error) {
	args := m.Called(ctx)
	st, _ := args.Get(0).(*entity.PipelineStage)
	return st, args.Error(1)
}

func (m *StageRepository) MaxOrder(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *StageRepository) Create(ctx context.Context, stage *entity.PipelineStage) error {
	return m.Called(ctx, stage).Error(0)
}

func (m *StageRepository) Update(ctx context.Context, stage *entity.PipelineStage) error {
	return m.Called(ctx, stage).Error(0)
}

func (m *StageRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *StageRepository) SeedDefaults(ctx context.Context, stages []entity.PipelineStage) (int, error) {
	args := m.Called(ctx, stages)
	return args.Int(0), args.Error(1)
}

// TagRepository mock de repository.TagRepository.
type TagRepository struct{ mock.Mock }

func (m *TagRepository) List(ctx context.Context) ([]entity.Tag, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]entity.Tag)
	return list, args.Error(1)
}

func (m *TagRepository) GetByID(ctx context.Context, id string) (*entity.Tag, error) {
	args := m.Called(ctx, id)
	t, _ := args.Get(0).(*entity.Tag)
	return t, args.Error(1)
}

func (m *TagRepository) GetByIDs(ctx context.Context, ids []string) ([]entity.Tag, error) {
	args := m.Called(ctx, ids)
	list, _ := args.Get(0).([]entity.Tag)
	return list, args.Error(1)
}

func (m *TagRepository) Create(ctx context.Context, tag *entity.Tag) error {
	return m.Called(ctx, tag).Error(0)
}

func (m *TagRepository) Update(ctx context.Context, tag *entity.Tag) error {
	return m.Called(ctx, tag).Error(0)
}

func (m *TagRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *TagRepository) ListByLead(ctx context.Context, leadID string) ([]entity.Tag, error) {
	args := m.Called(ctx, leadID)
	list, _ := args.Get(0).([]entity.Tag)
	return list, args.Error(1)
}

func (m *TagRepository) ListByLeads(ctx context.Context, leadIDs []string) (map[string][]entity.Tag, error) {
	args := m.Called(ctx, leadIDs)
	out, _ := args.Get(0).(map[string][]entity.Tag)
	return out, args.Error(1)
}

func (m *TagRepository) ReplaceLeadTags(ctx context.Context, leadID string, tagIDs []string) error {
	return m.Called(ctx, leadID, tagIDs).Error(0)
}

func (m *TagRepository) DeleteLeadLinks(ctx context.Context, leadIDs []string) error {
	return m.Called(ctx, leadIDs).Error(0)
}

func (m *TagRepository) DeleteTagLinks(ctx context.Context, tagID string) error {
	return m.Called(ctx, tagID).Error(0)
}

// SegmentRepository mock de repository.SegmentRepository.
type SegmentRepository struct{ mock.Mock }

func (m *SegmentRepository) List(ctx context.Context) ([]entity.SavedSegment, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]entity.SavedSegment)
	return list, args.Error(1)
}

func (m *SegmentRepository) GetByID(ctx context.Context, id string) (*entity.SavedSegment, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(*entity.SavedSegment)
	return s, args.Error(1)
}

func (m *SegmentRepository) Create(ctx context.Context, s *entity.SavedSegment) error {
	return m.Called(ctx, s).Error(0)
}

func (m *SegmentRepository) Update(ctx context.Context, s *entity.SavedSegment) error {
	return m.Called(ctx, s).Error(0)
}

func (m *SegmentRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}
