package finance

import (
	"testing"
	"time"

	"github.com/gestor-erp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPayable(t *testing.T) {
	due := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	p, err := NewPayable(uuid.New(), "Aluguel", decimal.RequireFromString("1500.00"), due)
	require.NoError(t, err)
	assert.Equal(t, PayableStatusOpen, p.Status)
	assert.False(t, p.IsSettled())
}

func TestNewPayableValidation(t *testing.T) {
	due := time.Now()

	_, err := NewPayable(uuid.New(), "", decimal.NewFromInt(10), due)
	assert.Error(t, err)

	_, err = NewPayable(uuid.New(), "Aluguel", decimal.Zero, due)
	assert.Error(t, err)

	_, err = NewPayable(uuid.New(), "Aluguel", decimal.NewFromInt(10), time.Time{})
	assert.Error(t, err)
}

func TestPayableSettleOnce(t *testing.T) {
	p, err := NewPayable(uuid.New(), "Energia", decimal.RequireFromString("320.50"), time.Now())
	require.NoError(t, err)

	paidAt := time.Date(2026, 8, 20, 14, 0, 0, 0, time.UTC)
	require.NoError(t, p.Settle(paidAt, decimal.RequireFromString("320.50")))
	assert.Equal(t, PayableStatusPaid, p.Status)
	require.NotNil(t, p.PaidAt)
	assert.True(t, p.PaidAt.Equal(paidAt))

	// second settlement must fail without changing state
	err = p.Settle(time.Now(), decimal.RequireFromString("320.50"))
	assert.ErrorIs(t, err, shared.ErrAlreadySettled)
	assert.True(t, p.PaidAt.Equal(paidAt))
}

func TestPayableReopen(t *testing.T) {
	p, err := NewPayable(uuid.New(), "Energia", decimal.NewFromInt(100), time.Now())
	require.NoError(t, err)

	assert.Error(t, p.Reopen())

	require.NoError(t, p.Settle(time.Now(), decimal.NewFromInt(100)))
	require.NoError(t, p.Reopen())
	assert.Equal(t, PayableStatusOpen, p.Status)
	assert.Nil(t, p.PaidAt)
	assert.True(t, p.PaidAmount.IsZero())
}

func TestPayableOverdueIsDerived(t *testing.T) {
	now := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)

	past, err := NewPayable(uuid.New(), "Atrasada", decimal.NewFromInt(10), now.AddDate(0, 0, -3))
	require.NoError(t, err)
	assert.True(t, past.IsOverdue(now))

	// due today is not overdue
	today, err := NewPayable(uuid.New(), "Hoje", decimal.NewFromInt(10), now)
	require.NoError(t, err)
	assert.False(t, today.IsOverdue(now))

	// settled payables are never overdue
	require.NoError(t, past.Settle(now, decimal.NewFromInt(10)))
	assert.False(t, past.IsOverdue(now))
}

func TestReceivableSettleOnce(t *testing.T) {
	r, err := NewReceivable(uuid.New(), "Mensalidade", decimal.RequireFromString("99.90"), time.Now())
	require.NoError(t, err)

	require.NoError(t, r.Settle(time.Now(), decimal.RequireFromString("99.90")))
	assert.True(t, r.IsSettled())

	err = r.Settle(time.Now(), decimal.RequireFromString("99.90"))
	assert.ErrorIs(t, err, shared.ErrAlreadySettled)
}

func TestNewContractReceivable(t *testing.T) {
	companyID := uuid.New()
	contractID := uuid.New()
	clientID := uuid.New()
	due := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)

	r, err := NewContractReceivable(companyID, contractID, clientID, "Contrato mensal", decimal.RequireFromString("250.00"), due, "2026-08")
	require.NoError(t, err)
	require.NotNil(t, r.ContractID)
	assert.Equal(t, contractID, *r.ContractID)
	assert.Equal(t, "2026-08", r.Competency)
	assert.Equal(t, SourceTypeContract, r.SourceType)

	_, err = NewContractReceivable(companyID, uuid.Nil, clientID, "Contrato", decimal.NewFromInt(1), due, "2026-08")
	assert.Error(t, err)

	_, err = NewContractReceivable(companyID, contractID, clientID, "Contrato", decimal.NewFromInt(1), due, "")
	assert.Error(t, err)
}

func TestEntryFromPayableSettlement(t *testing.T) {
	p, err := NewPayable(uuid.New(), "Fornecedor", decimal.RequireFromString("400.00"), time.Now())
	require.NoError(t, err)
	p.Category = "COMPRAS"

	// unsettled payables produce no entry
	_, err = EntryFromPayableSettlement(p)
	assert.Error(t, err)

	paidAt := time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC)
	require.NoError(t, p.Settle(paidAt, decimal.RequireFromString("400.00")))

	entry, err := EntryFromPayableSettlement(p)
	require.NoError(t, err)
	assert.Equal(t, CashFlowTypeOut, entry.Type)
	assert.Equal(t, p.CompanyID, entry.CompanyID)
	assert.True(t, entry.Amount.Equal(decimal.RequireFromString("400.00")))
	assert.True(t, entry.Date.Equal(paidAt))
	assert.Equal(t, SourceTypePayable, entry.SourceType)
	require.NotNil(t, entry.SourceID)
	assert.Equal(t, p.ID, *entry.SourceID)
	assert.Equal(t, "COMPRAS", entry.Category)
}

func TestEntryFromReceivableSettlement(t *testing.T) {
	r, err := NewReceivable(uuid.New(), "Cliente", decimal.RequireFromString("150.00"), time.Now())
	require.NoError(t, err)
	require.NoError(t, r.Settle(time.Now(), decimal.RequireFromString("150.00")))

	entry, err := EntryFromReceivableSettlement(r)
	require.NoError(t, err)
	assert.Equal(t, CashFlowTypeIn, entry.Type)
	assert.Equal(t, SourceTypeReceivable, entry.SourceType)
	require.NotNil(t, entry.SourceID)
	assert.Equal(t, r.ID, *entry.SourceID)
}

func TestCashFlowEntrySignedAmount(t *testing.T) {
	in, err := NewCashFlowEntry(uuid.New(), CashFlowTypeIn, "Venda", decimal.NewFromInt(100), time.Now())
	require.NoError(t, err)
	out, err := NewCashFlowEntry(uuid.New(), CashFlowTypeOut, "Compra", decimal.NewFromInt(40), time.Now())
	require.NoError(t, err)

	assert.True(t, in.SignedAmount().Equal(decimal.NewFromInt(100)))
	assert.True(t, out.SignedAmount().Equal(decimal.NewFromInt(-40)))
}

func TestNewCashFlowEntryValidation(t *testing.T) {
	_, err := NewCashFlowEntry(uuid.New(), CashFlowType("TRANSFERENCIA"), "x", decimal.NewFromInt(1), time.Now())
	assert.Error(t, err)

	_, err = NewCashFlowEntry(uuid.New(), CashFlowTypeIn, "", decimal.NewFromInt(1), time.Now())
	assert.Error(t, err)

	_, err = NewCashFlowEntry(uuid.New(), CashFlowTypeIn, "x", decimal.Zero, time.Now())
	assert.Error(t, err)
}
