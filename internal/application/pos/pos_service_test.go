package pos

import (
	"context"
	"testing"
	"time"

	"github.com/gestor-erp/backend/internal/domain/catalog"
	"github.com/gestor-erp/backend/internal/domain/finance"
	"github.com/gestor-erp/backend/internal/domain/inventory"
	"github.com/gestor-erp/backend/internal/domain/partner"
	"github.com/gestor-erp/backend/internal/domain/shared"
	"github.com/gestor-erp/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockSalesOrderRepository is a mock implementation of trade.SalesOrderRepository
type MockSalesOrderRepository struct {
	mock.Mock
}

func (m *MockSalesOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.SalesOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.SalesOrder), args.Error(1)
}

func (m *MockSalesOrderRepository) FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*trade.SalesOrder, error) {
	args := m.Called(ctx, companyID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.SalesOrder), args.Error(1)
}

func (m *MockSalesOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]trade.SalesOrder, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]trade.SalesOrder), args.Error(1)
}

func (m *MockSalesOrderRepository) FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]trade.SalesOrder, error) {
	args := m.Called(ctx, companyID, filter)
	return args.Get(0).([]trade.SalesOrder), args.Error(1)
}

func (m *MockSalesOrderRepository) Save(ctx context.Context, entity *trade.SalesOrder) error {
	args := m.Called(ctx, entity)
	return args.Error(0)
}

func (m *MockSalesOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSalesOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSalesOrderRepository) CountForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, companyID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSalesOrderRepository) DeleteForCompany(ctx context.Context, companyID, id uuid.UUID) error {
	args := m.Called(ctx, companyID, id)
	return args.Error(0)
}

func (m *MockSalesOrderRepository) NextNumber(ctx context.Context, companyID uuid.UUID) (string, error) {
	args := m.Called(ctx, companyID)
	return args.String(0), args.Error(1)
}

func (m *MockSalesOrderRepository) FindByStatus(ctx context.Context, companyID uuid.UUID, status trade.SalesOrderStatus, filter shared.Filter) (*shared.Paginated[trade.SalesOrder], error) {
	args := m.Called(ctx, companyID, status, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[trade.SalesOrder]), args.Error(1)
}

func (m *MockSalesOrderRepository) FindByClient(ctx context.Context, companyID, clientID uuid.UUID, filter shared.Filter) (*shared.Paginated[trade.SalesOrder], error) {
	args := m.Called(ctx, companyID, clientID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[trade.SalesOrder]), args.Error(1)
}

// MockClientRepository is a mock implementation of partner.ClientRepository
type MockClientRepository struct {
	mock.Mock
}

func (m *MockClientRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Client), args.Error(1)
}

func (m *MockClientRepository) FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*partner.Client, error) {
	args := m.Called(ctx, companyID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Client), args.Error(1)
}

func (m *MockClientRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Client, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]partner.Client), args.Error(1)
}

func (m *MockClientRepository) FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]partner.Client, error) {
	args := m.Called(ctx, companyID, filter)
	return args.Get(0).([]partner.Client), args.Error(1)
}

func (m *MockClientRepository) Save(ctx context.Context, entity *partner.Client) error {
	args := m.Called(ctx, entity)
	return args.Error(0)
}

func (m *MockClientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockClientRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockClientRepository) CountForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, companyID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockClientRepository) DeleteForCompany(ctx context.Context, companyID, id uuid.UUID) error {
	args := m.Called(ctx, companyID, id)
	return args.Error(0)
}

func (m *MockClientRepository) SearchByName(ctx context.Context, companyID uuid.UUID, name string, supplierOnly bool, limit int) ([]partner.Client, error) {
	args := m.Called(ctx, companyID, name, supplierOnly, limit)
	return args.Get(0).([]partner.Client), args.Error(1)
}

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, companyID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, companyID, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, entity *catalog.Product) error {
	args := m.Called(ctx, entity)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) CountForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, companyID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) DeleteForCompany(ctx context.Context, companyID, id uuid.UUID) error {
	args := m.Called(ctx, companyID, id)
	return args.Error(0)
}

func (m *MockProductRepository) SearchByName(ctx context.Context, companyID uuid.UUID, name string, limit int) ([]catalog.Product, error) {
	args := m.Called(ctx, companyID, name, limit)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindBelowMinimum(ctx context.Context, companyID uuid.UUID) ([]catalog.Product, error) {
	args := m.Called(ctx, companyID)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) AdjustStock(ctx context.Context, companyID, productID uuid.UUID, delta decimal.Decimal) error {
	args := m.Called(ctx, companyID, productID, delta)
	return args.Error(0)
}

func (m *MockProductRepository) PatchForCompany(ctx context.Context, companyID, id uuid.UUID, fields map[string]any) error {
	args := m.Called(ctx, companyID, id, fields)
	return args.Error(0)
}

// MockMovementRepository is a mock implementation of inventory.MovementRepository
type MockMovementRepository struct {
	mock.Mock
}

func (m *MockMovementRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Movement, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Movement), args.Error(1)
}

func (m *MockMovementRepository) FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*inventory.Movement, error) {
	args := m.Called(ctx, companyID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Movement), args.Error(1)
}

func (m *MockMovementRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.Movement, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]inventory.Movement), args.Error(1)
}

func (m *MockMovementRepository) FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]inventory.Movement, error) {
	args := m.Called(ctx, companyID, filter)
	return args.Get(0).([]inventory.Movement), args.Error(1)
}

func (m *MockMovementRepository) Save(ctx context.Context, entity *inventory.Movement) error {
	args := m.Called(ctx, entity)
	return args.Error(0)
}

func (m *MockMovementRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockMovementRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMovementRepository) CountForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, companyID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMovementRepository) DeleteForCompany(ctx context.Context, companyID, id uuid.UUID) error {
	args := m.Called(ctx, companyID, id)
	return args.Error(0)
}

func (m *MockMovementRepository) FindByProduct(ctx context.Context, companyID, productID uuid.UUID, filter shared.Filter) (*shared.Paginated[inventory.Movement], error) {
	args := m.Called(ctx, companyID, productID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[inventory.Movement]), args.Error(1)
}

func (m *MockMovementRepository) FindByPeriod(ctx context.Context, companyID uuid.UUID, from, to time.Time, filter shared.Filter) (*shared.Paginated[inventory.Movement], error) {
	args := m.Called(ctx, companyID, from, to, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[inventory.Movement]), args.Error(1)
}

func (m *MockMovementRepository) CreateAndApply(ctx context.Context, movement *inventory.Movement) error {
	args := m.Called(ctx, movement)
	return args.Error(0)
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

func newPosService() (*PosService, *MockSalesOrderRepository, *MockClientRepository, *MockProductRepository, *MockMovementRepository, *MockCashFlowRepository) {
	orders := new(MockSalesOrderRepository)
	clients := new(MockClientRepository)
	products := new(MockProductRepository)
	movements := new(MockMovementRepository)
	ledger := new(MockCashFlowRepository)
	service := NewPosService(30*time.Minute, orders, clients, products, movements, ledger)
	return service, orders, clients, products, movements, ledger
}

func posProduct(companyID uuid.UUID, name, price string) *catalog.Product {
	product, _ := catalog.NewProduct(companyID, name, "UN", decimal.RequireFromString(price), decimal.Zero)
	return product
}

func posClient(companyID uuid.UUID, name string) *partner.Client {
	client, _ := partner.NewClient(companyID, name, partner.PersonTypeIndividual, true, false)
	return client
}

func fillCart(t *testing.T, service *PosService, companyID, operatorID uuid.UUID, clients *MockClientRepository, products *MockProductRepository) {
	t.Helper()
	client := posClient(companyID, "Consumidor Final")
	product := posProduct(companyID, "Filtro de oleo", "35.90")

	clients.On("FindByIDForCompany", mock.Anything, companyID, client.ID).Return(client, nil)
	products.On("FindByIDForCompany", mock.Anything, companyID, product.ID).Return(product, nil)

	_, err := service.AddItem(context.Background(), companyID, operatorID, AddCartItemRequest{
		ProductID: product.ID,
		Quantity:  decimal.NewFromInt(2),
	})
	assert.NoError(t, err)
	_, err = service.SetClient(context.Background(), companyID, operatorID, SetCartClientRequest{ClientID: client.ID})
	assert.NoError(t, err)
}

func TestPosAddItemMergesLines(t *testing.T) {
	service, _, _, products, _, _ := newPosService()
	companyID := uuid.New()
	operatorID := uuid.New()
	product := posProduct(companyID, "Filtro de oleo", "35.90")

	products.On("FindByIDForCompany", mock.Anything, companyID, product.ID).Return(product, nil)

	_, err := service.AddItem(context.Background(), companyID, operatorID, AddCartItemRequest{ProductID: product.ID, Quantity: decimal.NewFromInt(1)})
	assert.NoError(t, err)
	cart, err := service.AddItem(context.Background(), companyID, operatorID, AddCartItemRequest{ProductID: product.ID, Quantity: decimal.NewFromInt(2)})
	assert.NoError(t, err)

	assert.Len(t, cart.Items, 1)
	assert.True(t, cart.Items[0].Quantity.Equal(decimal.NewFromInt(3)))
}

func TestPosCheckoutRejectsEmptyCart(t *testing.T) {
	service, _, _, _, _, _ := newPosService()

	_, err := service.Checkout(context.Background(), uuid.New(), uuid.New(), CheckoutRequest{})

	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "EMPTY_CART", domainErr.Code)
}

func TestPosCheckoutRejectsCartWithoutClient(t *testing.T) {
	service, _, _, products, _, _ := newPosService()
	companyID := uuid.New()
	operatorID := uuid.New()
	product := posProduct(companyID, "Filtro de oleo", "35.90")

	products.On("FindByIDForCompany", mock.Anything, companyID, product.ID).Return(product, nil)
	_, err := service.AddItem(context.Background(), companyID, operatorID, AddCartItemRequest{ProductID: product.ID, Quantity: decimal.NewFromInt(1)})
	assert.NoError(t, err)

	_, err = service.Checkout(context.Background(), companyID, operatorID, CheckoutRequest{})

	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NO_CLIENT", domainErr.Code)
}

func TestPosCheckoutRejectsInsufficientPayment(t *testing.T) {
	service, orders, clients, products, _, _ := newPosService()
	companyID := uuid.New()
	operatorID := uuid.New()
	fillCart(t, service, companyID, operatorID, clients, products)

	orders.On("NextNumber", mock.Anything, companyID).Return("PV-2026-00050", nil)

	_, err := service.Checkout(context.Background(), companyID, operatorID, CheckoutRequest{
		Payment: decimal.RequireFromString("50.00"), // total is 71.80
	})

	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INSUFFICIENT_PAYMENT", domainErr.Code)
	orders.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestPosCheckoutInvoicesAndDropsCart(t *testing.T) {
	service, orders, clients, products, movements, ledger := newPosService()
	companyID := uuid.New()
	operatorID := uuid.New()
	fillCart(t, service, companyID, operatorID, clients, products)

	orders.On("NextNumber", mock.Anything, companyID).Return("PV-2026-00051", nil)
	orders.On("Save", mock.Anything, mock.MatchedBy(func(order *trade.SalesOrder) bool {
		return order.Status == trade.SalesOrderStatusInvoiced
	})).Return(nil)
	movements.On("CreateAndApply", mock.Anything, mock.MatchedBy(func(mv *inventory.Movement) bool {
		return mv.Type == inventory.MovementTypeOut && mv.SourceType == inventory.SourceTypePOS
	})).Return(nil)
	ledger.On("Save", mock.Anything, mock.MatchedBy(func(entry *finance.CashFlowEntry) bool {
		return entry.Type == finance.CashFlowTypeIn &&
			entry.SourceType == finance.SourceTypePOS &&
			entry.Amount.Equal(decimal.RequireFromString("71.80"))
	})).Return(nil)

	result, err := service.Checkout(context.Background(), companyID, operatorID, CheckoutRequest{
		Payment: decimal.RequireFromString("100.00"),
	})

	assert.NoError(t, err)
	assert.True(t, result.Change.Equal(decimal.RequireFromString("28.20")))
	assert.True(t, service.Cart(companyID, operatorID).IsEmpty())
	orders.AssertExpectations(t)
	ledger.AssertExpectations(t)
}

func TestPosCartExpiresAfterIdleWindow(t *testing.T) {
	service, _, _, products, _, _ := newPosService()
	companyID := uuid.New()
	operatorID := uuid.New()
	product := posProduct(companyID, "Filtro de oleo", "35.90")

	products.On("FindByIDForCompany", mock.Anything, companyID, product.ID).Return(product, nil)
	_, err := service.AddItem(context.Background(), companyID, operatorID, AddCartItemRequest{ProductID: product.ID, Quantity: decimal.NewFromInt(1)})
	assert.NoError(t, err)

	// fast-forward past the idle TTL
	service.carts.now = func() time.Time { return time.Now().Add(time.Hour) }

	assert.True(t, service.Cart(companyID, operatorID).IsEmpty())
}
