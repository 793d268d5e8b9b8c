package inventory

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMovement(t *testing.T) {
	mv, err := NewMovement(uuid.New(), uuid.New(), "Produto", MovementTypeIn, decimal.NewFromInt(5), time.Now())
	require.NoError(t, err)
	assert.True(t, mv.StockDelta().Equal(decimal.NewFromInt(5)))
}

func TestMovementStockDelta(t *testing.T) {
	out, err := NewMovement(uuid.New(), uuid.New(), "Produto", MovementTypeOut, decimal.NewFromInt(3), time.Now())
	require.NoError(t, err)
	assert.True(t, out.StockDelta().Equal(decimal.NewFromInt(-3)))

	// adjustments may be negative and keep their sign
	adj, err := NewMovement(uuid.New(), uuid.New(), "Produto", MovementTypeAdjustment, decimal.NewFromInt(-2), time.Now())
	require.NoError(t, err)
	assert.True(t, adj.StockDelta().Equal(decimal.NewFromInt(-2)))
}

func TestNewMovementValidation(t *testing.T) {
	companyID := uuid.New()

	_, err := NewMovement(companyID, uuid.Nil, "P", MovementTypeIn, decimal.NewFromInt(1), time.Now())
	assert.Error(t, err)

	_, err = NewMovement(companyID, uuid.New(), "P", MovementType("TROCA"), decimal.NewFromInt(1), time.Now())
	assert.Error(t, err)

	_, err = NewMovement(companyID, uuid.New(), "P", MovementTypeIn, decimal.Zero, time.Now())
	assert.Error(t, err)

	// exits must be stated as positive quantities
	_, err = NewMovement(companyID, uuid.New(), "P", MovementTypeOut, decimal.NewFromInt(-1), time.Now())
	assert.Error(t, err)
}

func newTestNote(t *testing.T) *IncomingNote {
	t.Helper()
	note, err := NewIncomingNote(uuid.New(), "NF-123", time.Now())
	require.NoError(t, err)
	return note
}

func TestIncomingNotePost(t *testing.T) {
	note := newTestNote(t)
	productA := uuid.New()
	productB := uuid.New()

	require.NoError(t, note.AddItem(productA, "Produto A", decimal.NewFromInt(10), decimal.RequireFromString("4.50")))
	require.NoError(t, note.AddItem(productB, "Produto B", decimal.NewFromInt(2), decimal.RequireFromString("30.00")))

	movements, err := note.Post()
	require.NoError(t, err)
	require.Len(t, movements, 2)

	assert.Equal(t, IncomingNoteStatusPosted, note.Status)
	assert.NotNil(t, note.PostedAt)
	assert.Equal(t, productA, movements[0].ProductID)
	assert.Equal(t, MovementTypeIn, movements[0].Type)
	assert.Equal(t, SourceTypeIncomingNote, movements[0].SourceType)
	require.NotNil(t, movements[0].SourceID)
	assert.Equal(t, note.ID, *movements[0].SourceID)
}

func TestIncomingNotePostTwice(t *testing.T) {
	note := newTestNote(t)
	require.NoError(t, note.AddItem(uuid.New(), "Produto", decimal.NewFromInt(1), decimal.NewFromInt(1)))

	_, err := note.Post()
	require.NoError(t, err)

	_, err = note.Post()
	assert.Error(t, err)
}

func TestIncomingNotePostRequiresItems(t *testing.T) {
	note := newTestNote(t)
	_, err := note.Post()
	assert.Error(t, err)
}

func TestIncomingNotePostedIsImmutable(t *testing.T) {
	note := newTestNote(t)
	require.NoError(t, note.AddItem(uuid.New(), "Produto", decimal.NewFromInt(1), decimal.NewFromInt(1)))
	_, err := note.Post()
	require.NoError(t, err)

	err = note.AddItem(uuid.New(), "Outro", decimal.NewFromInt(1), decimal.NewFromInt(1))
	assert.Error(t, err)
}

func TestIncomingNoteTotalCost(t *testing.T) {
	note := newTestNote(t)
	require.NoError(t, note.AddItem(uuid.New(), "A", decimal.NewFromInt(10), decimal.RequireFromString("4.50")))
	require.NoError(t, note.AddItem(uuid.New(), "B", decimal.NewFromInt(2), decimal.RequireFromString("30.00")))

	assert.True(t, note.TotalCost().Equal(decimal.RequireFromString("105.00")))
}
