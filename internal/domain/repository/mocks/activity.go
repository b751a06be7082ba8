package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/jhoicas/CRM-api/internal/domain/entity"
	"github.com/jhoicas/CRM-api/internal/domain/repository"
)

var (
	_ repository.DealRepository        = (*DealRepository)(nil)
	_ repository.InteractionRepository = (*InteractionRepository)(nil)
	_ repository.LeadChangeRepository  = (*LeadChangeRepository)(nil)
	_ repository.DashboardRepository   = (*DashboardRepository)(nil)
)

// DealRepository mock de repository.DealRepository.
type DealRepository struct{ mock.Mock }

func (m *DealRepository) GetByLeadID(ctx context.Context, leadID string) (*entity.Deal, error) {
	args := m.Called(ctx, leadID)
	d, _ := args.Get(0).(*entity.Deal)
	return d, args.Error(1)
}

func (m *DealRepository) GetByLeadIDs(ctx context.Context, leadIDs []string) (map[string]*entity.Deal, error) {
	args := m.Called(ctx, leadIDs)
	out, _ := args.Get(0).(map[string]*entity.Deal)
	return out, args.Error(1)
}

func (m *DealRepository) Upsert(ctx context.Context, deal *entity.Deal) error {
	return m.Called(ctx, deal).Error(0)
}

func (m *DealRepository) DeleteByLeadID(ctx context.Context, leadID string) error {
	return m.Called(ctx, leadID).Error(0)
}

func (m *DealRepository) DeleteByLeadIDs(ctx context.Context, leadIDs []string) error {
	return m.Called(ctx, leadIDs).Error(0)
}

// InteractionRepository mock de repository.InteractionRepository.
type InteractionRepository struct{ mock.Mock }

func (m *InteractionRepository) Create(ctx context.Context, in *entity.Interaction) error {
	return m.Called(ctx, in).Error(0)
}

func (m *InteractionRepository) ListByLead(ctx context.Context, leadID string) ([]entity.Interaction, error) {
	args := m.Called(ctx, leadID)
	list, _ := args.Get(0).([]entity.Interaction)
	return list, args.Error(1)
}

func (m *InteractionRepository) Reassign(ctx context.Context, fromLeadIDs []string, toLeadID string) (int64, error) {
	args := m.Called(ctx, fromLeadIDs, toLeadID)
	return args.Get(0).(int64), args.Error(1)
}

// LeadChangeRepository mock de repository.LeadChangeRepository.
type LeadChangeRepository struct{ mock.Mock }

func (m *LeadChangeRepository) CreateMany(ctx context.Context, changes []*entity.LeadChange) error {
	return m.Called(ctx, changes).Error(0)
}

func (m *LeadChangeRepository) ListByLead(ctx context.Context, leadID string) ([]entity.LeadChange, error) {
	args := m.Called(ctx, leadID)
	list, _ := args.Get(0).([]entity.LeadChange)
	return list, args.Error(1)
}

func (m *LeadChangeRepository) Reassign(ctx context.Context, fromLeadIDs []string, toLeadID string) (int64, error) {
	args := m.Called(ctx, fromLeadIDs, toLeadID)
	return args.Get(0).(int64), args.Error(1)
}

// DashboardRepository mock de repository.DashboardRepository.
type DashboardRepository struct{ mock.Mock }

func (m *DashboardRepository) CountLeads(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *DashboardRepository) CountInStage(ctx context.Context, stageID string) (int, error) {
	args := m.Called(ctx, stageID)
	return args.Int(0), args.Error(1)
}

func (m *DashboardRepository) CountContactedSince(ctx context.Context, since time.Time) (int, error) {
	args := m.Called(ctx, since)
	return args.Int(0), args.Error(1)
}

func (m *DashboardRepository) CountFollowUpsBefore(ctx context.Context, before time.Time) (int, error) {
	args := m.Called(ctx, before)
	return args.Int(0), args.Error(1)
}

func (m *DashboardRepository) CountInteractionsSince(ctx context.Context, interactionType string, since time.Time) (int, error) {
	args := m.Called(ctx, interactionType, since)
	return args.Int(0), args.Error(1)
}

func (m *DashboardRepository) CountByStage(ctx context.Context) ([]repository.StageCount, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]repository.StageCount)
	return list, args.Error(1)
}

func (m *DashboardRepository) CreatedPerDay(ctx context.Context, since time.Time, loc *time.Location) ([]repository.DayCount, error) {
	args := m.Called(ctx, since, loc)
	list, _ := args.Get(0).([]repository.DayCount)
	return list, args.Error(1)
}

func (m *DashboardRepository) RevenueInStage(ctx context.Context, stageID string) (repository.RevenueTotals, error) {
	args := m.Called(ctx, stageID)
	return args.Get(0).(repository.RevenueTotals), args.Error(1)
}
