package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gestor-erp/backend/internal/domain/finance"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormPayableRepository_Settle(t *testing.T) {
	db, mock, mockDB := newMockDB(t)
	defer mockDB.Close()
	repo := NewGormPayableRepository(db)

	companyID := uuid.New()
	payable, err := finance.NewPayable(companyID, "Aluguel agosto", decimal.NewFromFloat(2500), time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.NoError(t, payable.Settle(time.Date(2026, 8, 9, 0, 0, 0, 0, time.UTC), payable.Amount))

	entry, err := finance.EntryFromPayableSettlement(payable)
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "payables" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO "cash_flow_entries"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err = repo.Settle(context.Background(), payable, entry)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormPayableRepository_Settle_RollsBackOnLedgerFailure(t *testing.T) {
	db, mock, mockDB := newMockDB(t)
	defer mockDB.Close()
	repo := NewGormPayableRepository(db)

	companyID := uuid.New()
	payable, err := finance.NewPayable(companyID, "Energia", decimal.NewFromFloat(430.55), time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.NoError(t, payable.Settle(time.Now(), payable.Amount))

	entry, err := finance.EntryFromPayableSettlement(payable)
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "payables" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO "cash_flow_entries"`).
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	err = repo.Settle(context.Background(), payable, entry)

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormPayableRepository_SumOpen(t *testing.T) {
	db, mock, mockDB := newMockDB(t)
	defer mockDB.Close()
	repo := NewGormPayableRepository(db)

	companyID := uuid.New()
	mock.ExpectQuery(`SELECT COALESCE\(SUM\(amount\), 0\) AS total FROM "payables"`).
		WithArgs(companyID, string(finance.PayableStatusOpen)).
		WillReturnRows(sqlmock.NewRows([]string{"total"}).AddRow("3120.45"))

	total, err := repo.SumOpen(context.Background(), companyID)

	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.NewFromFloat(3120.45)))
	assert.NoError(t, mock.ExpectationsWereMet())
}
