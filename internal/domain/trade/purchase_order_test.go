package trade

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPurchaseOrder(t *testing.T) *PurchaseOrder {
	t.Helper()
	order, err := NewPurchaseOrder(uuid.New(), "PC-2026-00001", uuid.New(), "Fornecedor Teste")
	require.NoError(t, err)
	return order
}

func TestNewPurchaseOrder(t *testing.T) {
	order := newTestPurchaseOrder(t)
	assert.Equal(t, PurchaseOrderStatusOpen, order.Status)
	assert.True(t, order.Total.IsZero())
}

func TestPurchaseOrderItemIPI(t *testing.T) {
	item := PurchaseOrderItem{
		Quantity:   decimal.NewFromInt(10),
		UnitCost:   decimal.RequireFromString("20.00"),
		IPIPercent: decimal.NewFromInt(5),
	}

	assert.True(t, item.LineTotal().Equal(decimal.RequireFromString("200.00")))
	assert.True(t, item.LineIPI().Equal(decimal.RequireFromString("10.00")))
}

func TestPurchaseOrderIPIOverDiscountedLine(t *testing.T) {
	item := PurchaseOrderItem{
		Quantity:        decimal.NewFromInt(1),
		UnitCost:        decimal.RequireFromString("100.00"),
		DiscountPercent: decimal.NewFromInt(10),
		IPIPercent:      decimal.NewFromInt(10),
	}

	// IPI applies on the discounted total: 90.00 x 10% = 9.00
	assert.True(t, item.LineTotal().Equal(decimal.RequireFromString("90.00")))
	assert.True(t, item.LineIPI().Equal(decimal.RequireFromString("9.00")))
}

func TestPurchaseOrderTotalsIncludeIPI(t *testing.T) {
	order := newTestPurchaseOrder(t)

	_, err := order.AddItem(uuid.New(), "Insumo A", decimal.NewFromInt(2), decimal.RequireFromString("50.00"), decimal.Zero, decimal.NewFromInt(10))
	require.NoError(t, err)

	err = order.SetAdjustments("", decimal.RequireFromString("30.00"), decimal.Zero)
	require.NoError(t, err)

	// subtotal 100.00 + IPI 10.00 + freight 30.00
	assert.True(t, order.Subtotal.Equal(decimal.RequireFromString("100.00")))
	assert.True(t, order.IPITotal.Equal(decimal.RequireFromString("10.00")))
	assert.True(t, order.Total.Equal(decimal.RequireFromString("140.00")))
}

func TestPurchaseOrderHeaderDiscount(t *testing.T) {
	order := newTestPurchaseOrder(t)
	_, err := order.AddItem(uuid.New(), "Insumo", decimal.NewFromInt(1), decimal.RequireFromString("500.00"), decimal.Zero, decimal.Zero)
	require.NoError(t, err)

	err = order.SetAdjustments("20%", decimal.Zero, decimal.Zero)
	require.NoError(t, err)

	assert.True(t, order.DiscountAmount.Equal(decimal.RequireFromString("100.00")))
	assert.True(t, order.Total.Equal(decimal.RequireFromString("400.00")))
}

func TestPurchaseOrderReceive(t *testing.T) {
	order := newTestPurchaseOrder(t)

	// cannot receive without items
	assert.Error(t, order.Receive())

	_, err := order.AddItem(uuid.New(), "Insumo", decimal.NewFromInt(1), decimal.RequireFromString("10.00"), decimal.Zero, decimal.Zero)
	require.NoError(t, err)

	require.NoError(t, order.Receive())
	assert.Equal(t, PurchaseOrderStatusReceived, order.Status)
	assert.NotNil(t, order.ReceivedAt)

	// received orders are immutable
	assert.Error(t, order.Cancel())
	_, err = order.AddItem(uuid.New(), "Outro", decimal.NewFromInt(1), decimal.RequireFromString("10.00"), decimal.Zero, decimal.Zero)
	assert.Error(t, err)
}

func TestPurchaseOrderCancel(t *testing.T) {
	order := newTestPurchaseOrder(t)
	require.NoError(t, order.Cancel())
	assert.Equal(t, PurchaseOrderStatusCancelled, order.Status)
	assert.Error(t, order.Receive())
}

func TestPurchaseOrderItemValidation(t *testing.T) {
	order := newTestPurchaseOrder(t)

	_, err := order.AddItem(uuid.Nil, "Insumo", decimal.NewFromInt(1), decimal.NewFromInt(1), decimal.Zero, decimal.Zero)
	assert.Error(t, err)

	_, err = order.AddItem(uuid.New(), "Insumo", decimal.Zero, decimal.NewFromInt(1), decimal.Zero, decimal.Zero)
	assert.Error(t, err)

	_, err = order.AddItem(uuid.New(), "Insumo", decimal.NewFromInt(1), decimal.NewFromInt(-1), decimal.Zero, decimal.Zero)
	assert.Error(t, err)

	_, err = order.AddItem(uuid.New(), "Insumo", decimal.NewFromInt(1), decimal.NewFromInt(1), decimal.NewFromInt(101), decimal.Zero)
	assert.Error(t, err)

	_, err = order.AddItem(uuid.New(), "Insumo", decimal.NewFromInt(1), decimal.NewFromInt(1), decimal.Zero, decimal.NewFromInt(-1))
	assert.Error(t, err)
}
