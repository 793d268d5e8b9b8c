package crm

import (
	"context"
	"errors"
	"testing"

	"github.com/gestor-erp/backend/internal/domain/crm"
	"github.com/gestor-erp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockOpportunityRepository is a mock implementation of crm.OpportunityRepository
type MockOpportunityRepository struct {
	mock.Mock
}

func (m *MockOpportunityRepository) FindByID(ctx context.Context, id uuid.UUID) (*crm.Opportunity, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*crm.Opportunity), args.Error(1)
}

func (m *MockOpportunityRepository) FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*crm.Opportunity, error) {
	args := m.Called(ctx, companyID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*crm.Opportunity), args.Error(1)
}

func (m *MockOpportunityRepository) FindAll(ctx context.Context, filter shared.Filter) ([]crm.Opportunity, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]crm.Opportunity), args.Error(1)
}

func (m *MockOpportunityRepository) FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]crm.Opportunity, error) {
	args := m.Called(ctx, companyID, filter)
	return args.Get(0).([]crm.Opportunity), args.Error(1)
}

func (m *MockOpportunityRepository) Save(ctx context.Context, entity *crm.Opportunity) error {
	args := m.Called(ctx, entity)
	return args.Error(0)
}

func (m *MockOpportunityRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOpportunityRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOpportunityRepository) CountForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, companyID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOpportunityRepository) DeleteForCompany(ctx context.Context, companyID, id uuid.UUID) error {
	args := m.Called(ctx, companyID, id)
	return args.Error(0)
}

func (m *MockOpportunityRepository) FindBoard(ctx context.Context, companyID uuid.UUID) ([]crm.Opportunity, error) {
	args := m.Called(ctx, companyID)
	return args.Get(0).([]crm.Opportunity), args.Error(1)
}

func (m *MockOpportunityRepository) FindByStage(ctx context.Context, companyID uuid.UUID, stage crm.OpportunityStage, filter shared.Filter) (*shared.Paginated[crm.Opportunity], error) {
	args := m.Called(ctx, companyID, stage, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[crm.Opportunity]), args.Error(1)
}

func (m *MockOpportunityRepository) CountByStage(ctx context.Context, companyID uuid.UUID) (map[crm.OpportunityStage]int64, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[crm.OpportunityStage]int64), args.Error(1)
}

func openCard(companyID uuid.UUID, title string) *crm.Opportunity {
	card, _ := crm.NewOpportunity(companyID, title)
	return card
}

func TestOpportunityMoveAdvancesStage(t *testing.T) {
	repo := new(MockOpportunityRepository)
	service := NewOpportunityService(repo)
	companyID := uuid.New()
	card := openCard(companyID, "Frota da transportadora")

	repo.On("FindByIDForCompany", mock.Anything, companyID, card.ID).Return(card, nil)
	repo.On("Save", mock.Anything, card).Return(nil)

	moved, err := service.Move(context.Background(), companyID, card.ID, MoveOpportunityRequest{
		Stage:    string(crm.StageProposal),
		Position: 3,
	})

	assert.NoError(t, err)
	assert.Equal(t, crm.StageProposal, moved.Stage)
	assert.Equal(t, 3, moved.Position)
	repo.AssertExpectations(t)
}

func TestOpportunityMoveToLostRecordsReason(t *testing.T) {
	repo := new(MockOpportunityRepository)
	service := NewOpportunityService(repo)
	companyID := uuid.New()
	card := openCard(companyID, "Frota da transportadora")

	repo.On("FindByIDForCompany", mock.Anything, companyID, card.ID).Return(card, nil)
	repo.On("Save", mock.Anything, card).Return(nil)

	moved, err := service.Move(context.Background(), companyID, card.ID, MoveOpportunityRequest{
		Stage:      string(crm.StageLost),
		LostReason: "Fechou com o concorrente",
	})

	assert.NoError(t, err)
	assert.Equal(t, crm.StageLost, moved.Stage)
	assert.Equal(t, "Fechou com o concorrente", moved.LostReason)
}

func TestOpportunityMoveRollsBackWhenSaveFails(t *testing.T) {
	repo := new(MockOpportunityRepository)
	service := NewOpportunityService(repo)
	companyID := uuid.New()
	card := openCard(companyID, "Frota da transportadora")
	card.Position = 1

	repo.On("FindByIDForCompany", mock.Anything, companyID, card.ID).Return(card, nil)
	repo.On("Save", mock.Anything, card).Return(errors.New("connection reset"))

	_, err := service.Move(context.Background(), companyID, card.ID, MoveOpportunityRequest{
		Stage:    string(crm.StageNegotiation),
		Position: 7,
	})

	assert.Error(t, err)
	assert.Equal(t, crm.StageLead, card.Stage)
	assert.Equal(t, 1, card.Position)
}

func TestOpportunityMoveRejectsReopeningClosedCard(t *testing.T) {
	repo := new(MockOpportunityRepository)
	service := NewOpportunityService(repo)
	companyID := uuid.New()
	card := openCard(companyID, "Frota da transportadora")
	assert.NoError(t, card.MoveTo(crm.StageWon))

	repo.On("FindByIDForCompany", mock.Anything, companyID, card.ID).Return(card, nil)

	_, err := service.Move(context.Background(), companyID, card.ID, MoveOpportunityRequest{
		Stage: string(crm.StageLead),
	})

	assert.Error(t, err)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	assert.Equal(t, crm.StageWon, card.Stage)
}

func TestOpportunityUpdateRejectsClosedCard(t *testing.T) {
	repo := new(MockOpportunityRepository)
	service := NewOpportunityService(repo)
	companyID := uuid.New()
	card := openCard(companyID, "Frota da transportadora")
	assert.NoError(t, card.Lose("Sem orcamento"))

	repo.On("FindByIDForCompany", mock.Anything, companyID, card.ID).Return(card, nil)

	title := "Novo titulo"
	_, err := service.Update(context.Background(), companyID, card.ID, UpdateOpportunityRequest{Title: &title})

	assert.Error(t, err)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}
