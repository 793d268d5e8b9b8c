package trade

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServiceOrder(t *testing.T) *ServiceOrder {
	t.Helper()
	order, err := NewServiceOrder(uuid.New(), "OS-2026-00001", uuid.New(), "Cliente Teste")
	require.NoError(t, err)
	return order
}

func TestNewServiceOrder(t *testing.T) {
	order := newTestServiceOrder(t)
	assert.Equal(t, ServiceOrderStatusQuote, order.Status)
	assert.True(t, order.Total.IsZero())
}

func TestServiceOrderFreeMovementBetweenActiveColumns(t *testing.T) {
	order := newTestServiceOrder(t)

	require.NoError(t, order.MoveTo(ServiceOrderStatusInProgress))
	require.NoError(t, order.MoveTo(ServiceOrderStatusQuote))
	require.NoError(t, order.MoveTo(ServiceOrderStatusOpen))
	assert.Equal(t, ServiceOrderStatusOpen, order.Status)
}

func TestServiceOrderTerminalColumnsAreFinal(t *testing.T) {
	order := newTestServiceOrder(t)

	require.NoError(t, order.MoveTo(ServiceOrderStatusDone))
	assert.NotNil(t, order.FinishedAt)

	assert.Error(t, order.MoveTo(ServiceOrderStatusOpen))
	assert.Error(t, order.MoveTo(ServiceOrderStatusCancelled))
}

func TestServiceOrderCancel(t *testing.T) {
	order := newTestServiceOrder(t)

	require.NoError(t, order.MoveTo(ServiceOrderStatusCancelled))
	assert.NotNil(t, order.CancelledAt)
	assert.Error(t, order.MoveTo(ServiceOrderStatusOpen))
}

func TestServiceOrderMoveToSameColumn(t *testing.T) {
	order := newTestServiceOrder(t)
	assert.Error(t, order.MoveTo(ServiceOrderStatusQuote))
}

func TestServiceOrderMoveToUnknownColumn(t *testing.T) {
	order := newTestServiceOrder(t)
	assert.Error(t, order.MoveTo(ServiceOrderStatus("ARQUIVADA")))
}

func TestServiceOrderTotals(t *testing.T) {
	order := newTestServiceOrder(t)

	_, err := order.AddItem(uuid.New(), "Manutenção", decimal.NewFromInt(2), decimal.RequireFromString("150.00"), decimal.Zero)
	require.NoError(t, err)
	_, err = order.AddItem(uuid.New(), "Instalação", decimal.NewFromInt(1), decimal.RequireFromString("100.00"), decimal.NewFromInt(50))
	require.NoError(t, err)

	assert.True(t, order.Subtotal.Equal(decimal.RequireFromString("350.00")))

	require.NoError(t, order.SetDiscount("10%"))
	assert.True(t, order.DiscountAmount.Equal(decimal.RequireFromString("35.00")))
	assert.True(t, order.Total.Equal(decimal.RequireFromString("315.00")))
}

func TestServiceOrderClosedOrdersAreImmutable(t *testing.T) {
	order := newTestServiceOrder(t)
	require.NoError(t, order.MoveTo(ServiceOrderStatusDone))

	_, err := order.AddItem(uuid.New(), "Serviço", decimal.NewFromInt(1), decimal.NewFromInt(10), decimal.Zero)
	assert.Error(t, err)
	assert.Error(t, order.SetDiscount("10%"))
	assert.Error(t, order.ReplaceItems(nil))
}

func TestServiceOrderReplaceItems(t *testing.T) {
	order := newTestServiceOrder(t)
	_, err := order.AddItem(uuid.New(), "Serviço A", decimal.NewFromInt(1), decimal.NewFromInt(10), decimal.Zero)
	require.NoError(t, err)

	err = order.ReplaceItems([]ServiceOrderItem{
		{ServiceID: uuid.New(), ServiceName: "Serviço B", Quantity: decimal.NewFromInt(3), UnitPrice: decimal.RequireFromString("20.00")},
	})
	require.NoError(t, err)

	assert.Len(t, order.Items, 1)
	assert.NotEqual(t, uuid.Nil, order.Items[0].ID)
	assert.Equal(t, order.ID, order.Items[0].OrderID)
	assert.True(t, order.Total.Equal(decimal.RequireFromString("60.00")))
}
