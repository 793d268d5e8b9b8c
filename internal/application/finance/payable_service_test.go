package finance

import (
	"context"
	"testing"
	"time"

	"github.com/gestor-erp/backend/internal/domain/finance"
	"github.com/gestor-erp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockPayableRepository is a mock implementation of finance.PayableRepository
type MockPayableRepository struct {
	mock.Mock
}

func (m *MockPayableRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.Payable, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.Payable), args.Error(1)
}

func (m *MockPayableRepository) FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*finance.Payable, error) {
	args := m.Called(ctx, companyID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.Payable), args.Error(1)
}

func (m *MockPayableRepository) FindAll(ctx context.Context, filter shared.Filter) ([]finance.Payable, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]finance.Payable), args.Error(1)
}

func (m *MockPayableRepository) FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]finance.Payable, error) {
	args := m.Called(ctx, companyID, filter)
	return args.Get(0).([]finance.Payable), args.Error(1)
}

func (m *MockPayableRepository) Save(ctx context.Context, entity *finance.Payable) error {
	args := m.Called(ctx, entity)
	return args.Error(0)
}

func (m *MockPayableRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPayableRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPayableRepository) CountForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, companyID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPayableRepository) DeleteForCompany(ctx context.Context, companyID, id uuid.UUID) error {
	args := m.Called(ctx, companyID, id)
	return args.Error(0)
}

func (m *MockPayableRepository) Settle(ctx context.Context, payable *finance.Payable, entry *finance.CashFlowEntry) error {
	args := m.Called(ctx, payable, entry)
	return args.Error(0)
}

func (m *MockPayableRepository) FindOpen(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (*shared.Paginated[finance.Payable], error) {
	args := m.Called(ctx, companyID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[finance.Payable]), args.Error(1)
}

func (m *MockPayableRepository) FindOverdue(ctx context.Context, companyID uuid.UUID, asOf time.Time) ([]finance.Payable, error) {
	args := m.Called(ctx, companyID, asOf)
	return args.Get(0).([]finance.Payable), args.Error(1)
}

func (m *MockPayableRepository) FindByPeriod(ctx context.Context, companyID uuid.UUID, from, to time.Time) ([]finance.Payable, error) {
	args := m.Called(ctx, companyID, from, to)
	return args.Get(0).([]finance.Payable), args.Error(1)
}

func (m *MockPayableRepository) SumOpen(ctx context.Context, companyID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, companyID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// MockCashFlowRepository is a mock implementation of finance.CashFlowRepository
type MockCashFlowRepository struct {
	mock.Mock
}

func (m *MockCashFlowRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.CashFlowEntry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.CashFlowEntry), args.Error(1)
}

func (m *MockCashFlowRepository) FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*finance.CashFlowEntry, error) {
	args := m.Called(ctx, companyID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.CashFlowEntry), args.Error(1)
}

func (m *MockCashFlowRepository) FindAll(ctx context.Context, filter shared.Filter) ([]finance.CashFlowEntry, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]finance.CashFlowEntry), args.Error(1)
}

func (m *MockCashFlowRepository) FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]finance.CashFlowEntry, error) {
	args := m.Called(ctx, companyID, filter)
	return args.Get(0).([]finance.CashFlowEntry), args.Error(1)
}

func (m *MockCashFlowRepository) Save(ctx context.Context, entity *finance.CashFlowEntry) error {
	args := m.Called(ctx, entity)
	return args.Error(0)
}

func (m *MockCashFlowRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCashFlowRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCashFlowRepository) CountForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, companyID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCashFlowRepository) DeleteForCompany(ctx context.Context, companyID, id uuid.UUID) error {
	args := m.Called(ctx, companyID, id)
	return args.Error(0)
}

func (m *MockCashFlowRepository) FindByPeriod(ctx context.Context, companyID uuid.UUID, from, to time.Time, filter shared.Filter) (*shared.Paginated[finance.CashFlowEntry], error) {
	args := m.Called(ctx, companyID, from, to, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[finance.CashFlowEntry]), args.Error(1)
}

func (m *MockCashFlowRepository) BalanceAt(ctx context.Context, companyID uuid.UUID, at time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, companyID, at)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockCashFlowRepository) SumByTypeAndPeriod(ctx context.Context, companyID uuid.UUID, entryType finance.CashFlowType, from, to time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, companyID, entryType, from, to)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockCashFlowRepository) DeleteBySource(ctx context.Context, companyID uuid.UUID, sourceType string, sourceID uuid.UUID) error {
	args := m.Called(ctx, companyID, sourceType, sourceID)
	return args.Error(0)
}

func newPayableService() (*PayableService, *MockPayableRepository, *MockCashFlowRepository) {
	payables := new(MockPayableRepository)
	ledger := new(MockCashFlowRepository)
	return NewPayableService(payables, ledger), payables, ledger
}

func openPayable(companyID uuid.UUID) *finance.Payable {
	payable, _ := finance.NewPayable(companyID, "Aluguel", decimal.RequireFromString("1500.00"), time.Now().AddDate(0, 0, 10))
	return payable
}

func TestPayableSettleWritesLedgerEntry(t *testing.T) {
	service, payables, _ := newPayableService()
	companyID := uuid.New()
	payable := openPayable(companyID)

	payables.On("FindByIDForCompany", mock.Anything, companyID, payable.ID).Return(payable, nil)
	payables.On("Settle", mock.Anything, payable, mock.MatchedBy(func(entry *finance.CashFlowEntry) bool {
		return entry.Type == finance.CashFlowTypeOut &&
			entry.SourceType == finance.SourceTypePayable &&
			entry.Amount.Equal(payable.Amount)
	})).Return(nil)

	settled, err := service.Settle(context.Background(), companyID, payable.ID, SettleRequest{})

	assert.NoError(t, err)
	assert.True(t, settled.IsSettled())
	payables.AssertExpectations(t)
}

func TestPayableSettleTwiceFails(t *testing.T) {
	service, payables, _ := newPayableService()
	companyID := uuid.New()
	payable := openPayable(companyID)
	assert.NoError(t, payable.Settle(time.Now(), payable.Amount))

	payables.On("FindByIDForCompany", mock.Anything, companyID, payable.ID).Return(payable, nil)

	_, err := service.Settle(context.Background(), companyID, payable.ID, SettleRequest{})

	assert.ErrorIs(t, err, shared.ErrAlreadySettled)
	payables.AssertNotCalled(t, "Settle", mock.Anything, mock.Anything, mock.Anything)
}

func TestPayableReopenRemovesLedgerEntry(t *testing.T) {
	service, payables, ledger := newPayableService()
	companyID := uuid.New()
	payable := openPayable(companyID)
	assert.NoError(t, payable.Settle(time.Now(), payable.Amount))

	payables.On("FindByIDForCompany", mock.Anything, companyID, payable.ID).Return(payable, nil)
	payables.On("Save", mock.Anything, payable).Return(nil)
	ledger.On("DeleteBySource", mock.Anything, companyID, finance.SourceTypePayable, payable.ID).Return(nil)

	reopened, err := service.Reopen(context.Background(), companyID, payable.ID)

	assert.NoError(t, err)
	assert.False(t, reopened.IsSettled())
	ledger.AssertExpectations(t)
}

func TestPayableDeleteRejectsSettled(t *testing.T) {
	service, payables, _ := newPayableService()
	companyID := uuid.New()
	payable := openPayable(companyID)
	assert.NoError(t, payable.Settle(time.Now(), payable.Amount))

	payables.On("FindByIDForCompany", mock.Anything, companyID, payable.ID).Return(payable, nil)

	err := service.Delete(context.Background(), companyID, payable.ID)

	assert.Error(t, err)
	payables.AssertNotCalled(t, "DeleteForCompany", mock.Anything, mock.Anything, mock.Anything)
}

func TestCashFlowSummaryComputesBalances(t *testing.T) {
	ledger := new(MockCashFlowRepository)
	service := NewCashFlowService(ledger)
	companyID := uuid.New()
	from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 8, 31, 23, 59, 59, 0, time.UTC)

	ledger.On("SumByTypeAndPeriod", mock.Anything, companyID, finance.CashFlowTypeIn, from, to).Return(decimal.RequireFromString("8000.00"), nil)
	ledger.On("SumByTypeAndPeriod", mock.Anything, companyID, finance.CashFlowTypeOut, from, to).Return(decimal.RequireFromString("3000.00"), nil)
	ledger.On("BalanceAt", mock.Anything, companyID, from).Return(decimal.RequireFromString("1200.00"), nil)

	summary, err := service.Summary(context.Background(), companyID, from, to)

	assert.NoError(t, err)
	assert.True(t, summary.Net.Equal(decimal.RequireFromString("5000.00")))
	assert.True(t, summary.ClosingBalance.Equal(decimal.RequireFromString("6200.00")))
}

func TestCashFlowSummaryRejectsInvertedPeriod(t *testing.T) {
	ledger := new(MockCashFlowRepository)
	service := NewCashFlowService(ledger)

	_, err := service.Summary(context.Background(), uuid.New(), time.Now(), time.Now().AddDate(0, 0, -1))

	assert.Error(t, err)
	ledger.AssertNotCalled(t, "SumByTypeAndPeriod", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCashFlowDeleteRejectsSourcedEntry(t *testing.T) {
	ledger := new(MockCashFlowRepository)
	service := NewCashFlowService(ledger)
	companyID := uuid.New()

	entry, _ := finance.NewCashFlowEntry(companyID, finance.CashFlowTypeOut, "Pagamento Aluguel", decimal.RequireFromString("1500.00"), time.Now())
	entry.SourceType = finance.SourceTypePayable
	sourceID := uuid.New()
	entry.SourceID = &sourceID

	ledger.On("FindByIDForCompany", mock.Anything, companyID, entry.ID).Return(entry, nil)

	err := service.Delete(context.Background(), companyID, entry.ID)

	assert.Error(t, err)
	ledger.AssertNotCalled(t, "DeleteForCompany", mock.Anything, mock.Anything, mock.Anything)
}
