package trade

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSalesOrder(t *testing.T) *SalesOrder {
	t.Helper()
	order, err := NewSalesOrder(uuid.New(), "PV-2026-00001", uuid.New(), "Cliente Teste")
	require.NoError(t, err)
	return order
}

func TestNewSalesOrder(t *testing.T) {
	companyID := uuid.New()
	clientID := uuid.New()

	order, err := NewSalesOrder(companyID, "PV-2026-00001", clientID, "Cliente Teste")
	require.NoError(t, err)
	assert.Equal(t, SalesOrderStatusOpen, order.Status)
	assert.Equal(t, companyID, order.CompanyID)
	assert.True(t, order.Total.IsZero())
	assert.Empty(t, order.Items)
}

func TestNewSalesOrderValidation(t *testing.T) {
	_, err := NewSalesOrder(uuid.New(), "", uuid.New(), "Cliente")
	assert.Error(t, err)

	_, err = NewSalesOrder(uuid.New(), "PV-1", uuid.Nil, "Cliente")
	assert.Error(t, err)

	_, err = NewSalesOrder(uuid.New(), "PV-1", uuid.New(), "")
	assert.Error(t, err)
}

func TestSalesOrderItemLineTotal(t *testing.T) {
	item := SalesOrderItem{
		Quantity:        decimal.NewFromInt(3),
		UnitPrice:       decimal.RequireFromString("19.90"),
		DiscountPercent: decimal.NewFromInt(10),
	}

	// 3 x 19.90 = 59.70, minus 10% = 53.73
	assert.True(t, item.LineTotal().Equal(decimal.RequireFromString("53.73")))
}

func TestSalesOrderItemLineTotalNoDiscount(t *testing.T) {
	item := SalesOrderItem{
		Quantity:  decimal.RequireFromString("2.5"),
		UnitPrice: decimal.RequireFromString("10.00"),
	}

	assert.True(t, item.LineTotal().Equal(decimal.RequireFromString("25.00")))
}

func TestSalesOrderRecalculateTotals(t *testing.T) {
	order := newTestSalesOrder(t)

	_, err := order.AddItem(uuid.New(), "Produto A", decimal.NewFromInt(2), decimal.RequireFromString("50.00"), decimal.Zero, decimal.Zero)
	require.NoError(t, err)
	_, err = order.AddItem(uuid.New(), "Produto B", decimal.NewFromInt(1), decimal.RequireFromString("100.00"), decimal.NewFromInt(10), decimal.Zero)
	require.NoError(t, err)

	// 100.00 + 90.00
	assert.True(t, order.Subtotal.Equal(decimal.RequireFromString("190.00")))
	assert.True(t, order.Total.Equal(decimal.RequireFromString("190.00")))
}

func TestSalesOrderPercentDiscount(t *testing.T) {
	order := newTestSalesOrder(t)
	_, err := order.AddItem(uuid.New(), "Produto", decimal.NewFromInt(1), decimal.RequireFromString("200.00"), decimal.Zero, decimal.Zero)
	require.NoError(t, err)

	err = order.SetAdjustments("10%", decimal.Zero, decimal.Zero)
	require.NoError(t, err)

	assert.True(t, order.DiscountAmount.Equal(decimal.RequireFromString("20.00")))
	assert.True(t, order.Total.Equal(decimal.RequireFromString("180.00")))
}

func TestSalesOrderLiteralDiscount(t *testing.T) {
	order := newTestSalesOrder(t)
	_, err := order.AddItem(uuid.New(), "Produto", decimal.NewFromInt(1), decimal.RequireFromString("200.00"), decimal.Zero, decimal.Zero)
	require.NoError(t, err)

	// no percent sign: treated as an absolute amount
	err = order.SetAdjustments("50", decimal.Zero, decimal.Zero)
	require.NoError(t, err)

	assert.True(t, order.DiscountAmount.Equal(decimal.RequireFromString("50.00")))
	assert.True(t, order.Total.Equal(decimal.RequireFromString("150.00")))
}

func TestSalesOrderFreightAndExtras(t *testing.T) {
	order := newTestSalesOrder(t)
	_, err := order.AddItem(uuid.New(), "Produto", decimal.NewFromInt(1), decimal.RequireFromString("100.00"), decimal.Zero, decimal.Zero)
	require.NoError(t, err)

	err = order.SetAdjustments("", decimal.RequireFromString("15.00"), decimal.RequireFromString("5.00"))
	require.NoError(t, err)

	assert.True(t, order.Total.Equal(decimal.RequireFromString("120.00")))
}

func TestSalesOrderRemoveItemRecalculates(t *testing.T) {
	order := newTestSalesOrder(t)
	item, err := order.AddItem(uuid.New(), "Produto A", decimal.NewFromInt(1), decimal.RequireFromString("80.00"), decimal.Zero, decimal.Zero)
	require.NoError(t, err)
	_, err = order.AddItem(uuid.New(), "Produto B", decimal.NewFromInt(1), decimal.RequireFromString("20.00"), decimal.Zero, decimal.Zero)
	require.NoError(t, err)

	err = order.RemoveItem(item.ID)
	require.NoError(t, err)

	assert.Len(t, order.Items, 1)
	assert.True(t, order.Total.Equal(decimal.RequireFromString("20.00")))
}

func TestSalesOrderInvoiceRequiresItems(t *testing.T) {
	order := newTestSalesOrder(t)

	err := order.Invoice()
	assert.Error(t, err)

	_, err = order.AddItem(uuid.New(), "Produto", decimal.NewFromInt(1), decimal.RequireFromString("10.00"), decimal.Zero, decimal.Zero)
	require.NoError(t, err)

	err = order.Invoice()
	require.NoError(t, err)
	assert.Equal(t, SalesOrderStatusInvoiced, order.Status)
	assert.NotNil(t, order.InvoicedAt)
}

func TestSalesOrderTransitions(t *testing.T) {
	order := newTestSalesOrder(t)
	_, err := order.AddItem(uuid.New(), "Produto", decimal.NewFromInt(1), decimal.RequireFromString("10.00"), decimal.Zero, decimal.Zero)
	require.NoError(t, err)

	// cannot deliver before invoicing
	assert.Error(t, order.Deliver())

	require.NoError(t, order.Invoice())
	require.NoError(t, order.Deliver())
	assert.Equal(t, SalesOrderStatusDelivered, order.Status)

	// delivered orders cannot be cancelled
	assert.Error(t, order.Cancel())
}

func TestSalesOrderCancelFromOpen(t *testing.T) {
	order := newTestSalesOrder(t)

	require.NoError(t, order.Cancel())
	assert.Equal(t, SalesOrderStatusCancelled, order.Status)
	assert.NotNil(t, order.CancelledAt)

	_, err := order.AddItem(uuid.New(), "Produto", decimal.NewFromInt(1), decimal.RequireFromString("10.00"), decimal.Zero, decimal.Zero)
	assert.Error(t, err)
}

func TestSalesOrderTotalsOnlyDependOnOwnLines(t *testing.T) {
	first := newTestSalesOrder(t)
	second := newTestSalesOrder(t)

	_, err := first.AddItem(uuid.New(), "Produto", decimal.NewFromInt(1), decimal.RequireFromString("10.00"), decimal.Zero, decimal.Zero)
	require.NoError(t, err)
	before := second.Total

	_, err = first.AddItem(uuid.New(), "Produto", decimal.NewFromInt(5), decimal.RequireFromString("99.00"), decimal.Zero, decimal.Zero)
	require.NoError(t, err)

	assert.True(t, second.Total.Equal(before))
}
