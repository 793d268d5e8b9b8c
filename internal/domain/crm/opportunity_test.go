package crm

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOpportunity(t *testing.T) *Opportunity {
	t.Helper()
	opp, err := NewOpportunity(uuid.New(), "Projeto ERP")
	require.NoError(t, err)
	return opp
}

func TestNewOpportunity(t *testing.T) {
	opp := newTestOpportunity(t)
	assert.Equal(t, StageLead, opp.Stage)
	assert.True(t, opp.IsOpen())

	_, err := NewOpportunity(uuid.New(), "")
	assert.Error(t, err)
}

func TestOpportunityMovesFreelyBetweenOpenStages(t *testing.T) {
	opp := newTestOpportunity(t)

	require.NoError(t, opp.MoveTo(StageNegotiation))
	require.NoError(t, opp.MoveTo(StageContact))
	require.NoError(t, opp.MoveTo(StageProposal))
	assert.Equal(t, StageProposal, opp.Stage)
	assert.Nil(t, opp.ClosedAt)
}

func TestOpportunityWonIsFinal(t *testing.T) {
	opp := newTestOpportunity(t)

	require.NoError(t, opp.MoveTo(StageWon))
	assert.NotNil(t, opp.ClosedAt)
	assert.False(t, opp.IsOpen())

	assert.Error(t, opp.MoveTo(StageLead))
	assert.Error(t, opp.MoveTo(StageLost))
}

func TestOpportunityLose(t *testing.T) {
	opp := newTestOpportunity(t)

	require.NoError(t, opp.Lose("Preço"))
	assert.Equal(t, StageLost, opp.Stage)
	assert.Equal(t, "Preço", opp.LostReason)
	assert.NotNil(t, opp.ClosedAt)

	assert.Error(t, opp.Lose("De novo"))
}

func TestOpportunityMoveToSameStageIsNoop(t *testing.T) {
	opp := newTestOpportunity(t)
	assert.NoError(t, opp.MoveTo(StageLead))
	assert.Equal(t, StageLead, opp.Stage)
}

func TestOpportunityMoveToUnknownStage(t *testing.T) {
	opp := newTestOpportunity(t)
	assert.Error(t, opp.MoveTo(OpportunityStage("ARQUIVO")))
}

func TestOpportunitySetExpectedValue(t *testing.T) {
	opp := newTestOpportunity(t)

	require.NoError(t, opp.SetExpectedValue(decimal.RequireFromString("12000.00")))
	assert.True(t, opp.ExpectedValue.Equal(decimal.RequireFromString("12000.00")))

	assert.Error(t, opp.SetExpectedValue(decimal.NewFromInt(-1)))
}
