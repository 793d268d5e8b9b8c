package persistence

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormSalesOrderRepository_NextNumber(t *testing.T) {
	year := time.Now().Year()

	t.Run("continues the sequence", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormSalesOrderRepository(db)

		companyID := uuid.New()
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT number FROM "sales_orders"`).
			WillReturnRows(sqlmock.NewRows([]string{"number"}).
				AddRow(fmt.Sprintf("PV-%d-00041", year)))
		mock.ExpectCommit()

		number, err := repo.NextNumber(context.Background(), companyID)

		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("PV-%d-00042", year), number)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("starts at one for a fresh year", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormSalesOrderRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT number FROM "sales_orders"`).
			WillReturnRows(sqlmock.NewRows([]string{"number"}))
		mock.ExpectCommit()

		number, err := repo.NextNumber(context.Background(), uuid.New())

		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("PV-%d-00001", year), number)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
