package billing

import (
	"context"
	"testing"
	"time"

	"github.com/gestor-erp/backend/internal/domain/billing"
	"github.com/gestor-erp/backend/internal/domain/finance"
	"github.com/gestor-erp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

// MockContractRepository is a mock implementation of billing.ContractRepository
type MockContractRepository struct {
	mock.Mock
}

func (m *MockContractRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Contract, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Contract), args.Error(1)
}

func (m *MockContractRepository) FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*billing.Contract, error) {
	args := m.Called(ctx, companyID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Contract), args.Error(1)
}

func (m *MockContractRepository) FindAll(ctx context.Context, filter shared.Filter) ([]billing.Contract, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]billing.Contract), args.Error(1)
}

func (m *MockContractRepository) FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]billing.Contract, error) {
	args := m.Called(ctx, companyID, filter)
	return args.Get(0).([]billing.Contract), args.Error(1)
}

func (m *MockContractRepository) Save(ctx context.Context, entity *billing.Contract) error {
	args := m.Called(ctx, entity)
	return args.Error(0)
}

func (m *MockContractRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockContractRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockContractRepository) CountForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, companyID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockContractRepository) DeleteForCompany(ctx context.Context, companyID, id uuid.UUID) error {
	args := m.Called(ctx, companyID, id)
	return args.Error(0)
}

func (m *MockContractRepository) FindActive(ctx context.Context, companyID uuid.UUID) ([]billing.Contract, error) {
	args := m.Called(ctx, companyID)
	return args.Get(0).([]billing.Contract), args.Error(1)
}

func (m *MockContractRepository) FindByClient(ctx context.Context, companyID, clientID uuid.UUID, filter shared.Filter) (*shared.Paginated[billing.Contract], error) {
	args := m.Called(ctx, companyID, clientID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[billing.Contract]), args.Error(1)
}

// MockReceivableRepository is a mock implementation of finance.ReceivableRepository
type MockReceivableRepository struct {
	mock.Mock
}

func (m *MockReceivableRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.Receivable, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.Receivable), args.Error(1)
}

func (m *MockReceivableRepository) FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*finance.Receivable, error) {
	args := m.Called(ctx, companyID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.Receivable), args.Error(1)
}

func (m *MockReceivableRepository) FindAll(ctx context.Context, filter shared.Filter) ([]finance.Receivable, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]finance.Receivable), args.Error(1)
}

func (m *MockReceivableRepository) FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]finance.Receivable, error) {
	args := m.Called(ctx, companyID, filter)
	return args.Get(0).([]finance.Receivable), args.Error(1)
}

func (m *MockReceivableRepository) Save(ctx context.Context, entity *finance.Receivable) error {
	args := m.Called(ctx, entity)
	return args.Error(0)
}

func (m *MockReceivableRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockReceivableRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReceivableRepository) CountForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, companyID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReceivableRepository) DeleteForCompany(ctx context.Context, companyID, id uuid.UUID) error {
	args := m.Called(ctx, companyID, id)
	return args.Error(0)
}

func (m *MockReceivableRepository) Settle(ctx context.Context, receivable *finance.Receivable, entry *finance.CashFlowEntry) error {
	args := m.Called(ctx, receivable, entry)
	return args.Error(0)
}

func (m *MockReceivableRepository) FindOpen(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (*shared.Paginated[finance.Receivable], error) {
	args := m.Called(ctx, companyID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[finance.Receivable]), args.Error(1)
}

func (m *MockReceivableRepository) FindOverdue(ctx context.Context, companyID uuid.UUID, asOf time.Time) ([]finance.Receivable, error) {
	args := m.Called(ctx, companyID, asOf)
	return args.Get(0).([]finance.Receivable), args.Error(1)
}

func (m *MockReceivableRepository) FindByPeriod(ctx context.Context, companyID uuid.UUID, from, to time.Time) ([]finance.Receivable, error) {
	args := m.Called(ctx, companyID, from, to)
	return args.Get(0).([]finance.Receivable), args.Error(1)
}

func (m *MockReceivableRepository) SumOpen(ctx context.Context, companyID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, companyID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockReceivableRepository) ExistsForContractCompetency(ctx context.Context, companyID, contractID uuid.UUID, competency string) (bool, error) {
	args := m.Called(ctx, companyID, contractID, competency)
	return args.Bool(0), args.Error(1)
}

func (m *MockReceivableRepository) BulkCreate(ctx context.Context, receivables []*finance.Receivable) error {
	args := m.Called(ctx, receivables)
	return args.Error(0)
}

func activeContract(companyID uuid.UUID, description string, startsAt time.Time) billing.Contract {
	contract, _ := billing.NewContract(companyID, uuid.New(), "Oficina Central", description, decimal.RequireFromString("350.00"), 10, startsAt)
	return *contract
}

func TestBillingRunIssuesReceivablesOnce(t *testing.T) {
	contracts := new(MockContractRepository)
	receivables := new(MockReceivableRepository)
	service := NewBillingRunService(contracts, receivables, zap.NewNop())
	companyID := uuid.New()

	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	first := activeContract(companyID, "Plano mensal", start)
	second := activeContract(companyID, "Suporte avancado", start)

	contracts.On("FindActive", mock.Anything, companyID).Return([]billing.Contract{first, second}, nil)
	receivables.On("ExistsForContractCompetency", mock.Anything, companyID, first.ID, "2026-08").Return(false, nil)
	receivables.On("ExistsForContractCompetency", mock.Anything, companyID, second.ID, "2026-08").Return(true, nil)
	receivables.On("BulkCreate", mock.Anything, mock.MatchedBy(func(batch []*finance.Receivable) bool {
		return len(batch) == 1 && batch[0].ContractID != nil && *batch[0].ContractID == first.ID
	})).Return(nil)

	result, err := service.Run(context.Background(), companyID, BillingRunRequest{Competency: "2026-08"})

	assert.NoError(t, err)
	assert.Equal(t, "2026-08", result.Competency)
	assert.Equal(t, 1, result.Created)
	assert.Equal(t, 1, result.Existing)
	assert.Equal(t, 0, result.OutOfRange)
	receivables.AssertExpectations(t)
}

func TestBillingRunSkipsContractsOutsideCompetency(t *testing.T) {
	contracts := new(MockContractRepository)
	receivables := new(MockReceivableRepository)
	service := NewBillingRunService(contracts, receivables, zap.NewNop())
	companyID := uuid.New()

	// starts after the requested competency, so it does not bill yet
	future := activeContract(companyID, "Plano novo", time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC))

	contracts.On("FindActive", mock.Anything, companyID).Return([]billing.Contract{future}, nil)
	receivables.On("BulkCreate", mock.Anything, mock.Anything).Return(nil)

	result, err := service.Run(context.Background(), companyID, BillingRunRequest{Competency: "2026-08"})

	assert.NoError(t, err)
	assert.Equal(t, 0, result.Created)
	assert.Equal(t, 1, result.OutOfRange)
	assert.Equal(t, 0, result.Existing)
	receivables.AssertNotCalled(t, "ExistsForContractCompetency", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestBillingRunRejectsMalformedCompetency(t *testing.T) {
	contracts := new(MockContractRepository)
	receivables := new(MockReceivableRepository)
	service := NewBillingRunService(contracts, receivables, zap.NewNop())

	_, err := service.Run(context.Background(), uuid.New(), BillingRunRequest{Competency: "agosto/26"})

	assert.Error(t, err)
	contracts.AssertNotCalled(t, "FindActive", mock.Anything, mock.Anything)
}
