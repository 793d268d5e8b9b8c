package billing

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCompetency(t *testing.T) {
	c, err := ParseCompetency("2026-08")
	require.NoError(t, err)
	assert.Equal(t, 2026, c.Year)
	assert.Equal(t, time.August, c.Month)
	assert.Equal(t, "2026-08", c.String())
}

func TestParseCompetencyInvalid(t *testing.T) {
	for _, value := range []string{"", "2026", "2026-13", "08-2026", "2026/08"} {
		_, err := ParseCompetency(value)
		assert.Error(t, err, "value %q", value)
	}
}

func TestCompetencyNext(t *testing.T) {
	c := Competency{Year: 2026, Month: time.December}
	next := c.Next()
	assert.Equal(t, 2027, next.Year)
	assert.Equal(t, time.January, next.Month)
}

func TestCompetencyDueDateClampsToMonthEnd(t *testing.T) {
	feb := Competency{Year: 2026, Month: time.February}
	assert.Equal(t, time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC), feb.DueDate(31))

	leapFeb := Competency{Year: 2028, Month: time.February}
	assert.Equal(t, time.Date(2028, 2, 29, 0, 0, 0, 0, time.UTC), leapFeb.DueDate(31))

	apr := Competency{Year: 2026, Month: time.April}
	assert.Equal(t, time.Date(2026, 4, 30, 0, 0, 0, 0, time.UTC), apr.DueDate(31))
	assert.Equal(t, time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC), apr.DueDate(10))
}

func newTestContract(t *testing.T) *Contract {
	t.Helper()
	contract, err := NewContract(uuid.New(), uuid.New(), "Cliente", "Mensalidade",
		decimal.RequireFromString("199.90"), 10, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return contract
}

func TestNewContractValidation(t *testing.T) {
	companyID := uuid.New()
	clientID := uuid.New()
	start := time.Now()

	_, err := NewContract(companyID, uuid.Nil, "Cliente", "Desc", decimal.NewFromInt(10), 10, start)
	assert.Error(t, err)

	_, err = NewContract(companyID, clientID, "Cliente", "Desc", decimal.Zero, 10, start)
	assert.Error(t, err)

	_, err = NewContract(companyID, clientID, "Cliente", "Desc", decimal.NewFromInt(10), 0, start)
	assert.Error(t, err)

	_, err = NewContract(companyID, clientID, "Cliente", "Desc", decimal.NewFromInt(10), 32, start)
	assert.Error(t, err)
}

func TestContractBillsIn(t *testing.T) {
	contract := newTestContract(t)

	assert.True(t, contract.BillsIn(Competency{Year: 2026, Month: time.August}))
	// before the start month
	assert.False(t, contract.BillsIn(Competency{Year: 2025, Month: time.December}))

	require.NoError(t, contract.Terminate(time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)))
	assert.False(t, contract.BillsIn(Competency{Year: 2026, Month: time.August}))
}

func TestContractTerminate(t *testing.T) {
	contract := newTestContract(t)

	assert.Error(t, contract.Terminate(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)))

	require.NoError(t, contract.Terminate(time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)))
	assert.False(t, contract.Active)
	assert.Error(t, contract.Terminate(time.Now()))

	contract.Reactivate()
	assert.True(t, contract.Active)
	assert.Nil(t, contract.EndsAt)
}

func TestContractDueDateFor(t *testing.T) {
	contract := newTestContract(t)
	require.NoError(t, contract.SetDueDay(31))

	due := contract.DueDateFor(Competency{Year: 2026, Month: time.February})
	assert.Equal(t, time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC), due)
}
