package shared

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCompanyEntity(t *testing.T) {
	companyID := uuid.New()
	entity := NewCompanyEntity(companyID)

	assert.NotEqual(t, uuid.Nil, entity.ID)
	assert.Equal(t, companyID, entity.CompanyID)
	assert.False(t, entity.CreatedAt.IsZero())
}

func TestBaseEntityTouch(t *testing.T) {
	entity := NewBaseEntity()
	before := entity.UpdatedAt
	entity.Touch()
	assert.False(t, entity.UpdatedAt.Before(before))
}

func TestDomainErrorIs(t *testing.T) {
	err := NewDomainError("NOT_FOUND", "thing missing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrForbidden)
}

func TestFilterNormalize(t *testing.T) {
	f := Filter{}.Normalize()
	assert.Equal(t, 1, f.Page)
	assert.Equal(t, 20, f.PageSize)
	assert.Equal(t, "created_at", f.OrderBy)
	assert.Equal(t, "desc", f.OrderDir)
	assert.NotNil(t, f.Filters)

	custom := Filter{Page: 3, PageSize: 50, OrderBy: "name", OrderDir: "asc"}.Normalize()
	assert.Equal(t, 3, custom.Page)
	assert.Equal(t, 50, custom.PageSize)
	assert.Equal(t, "name", custom.OrderBy)
}

func TestNewPaginated(t *testing.T) {
	p := NewPaginated([]string{"a", "b"}, 41, 2, 20)
	assert.Equal(t, int64(41), p.Total)
	assert.Equal(t, 3, p.TotalPages)

	exact := NewPaginated([]string{}, 40, 1, 20)
	assert.Equal(t, 2, exact.TotalPages)
}

func TestOptimisticUpdateConfirmed(t *testing.T) {
	state := "ABERTA"
	update := OptimisticUpdate[string]{
		Snapshot: func() string { return state },
		Apply:    func() { state = "EM_ANDAMENTO" },
		Commit:   func(ctx context.Context) error { return nil },
		Restore:  func(snapshot string) { state = snapshot },
	}

	outcome, err := update.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, OutcomeConfirmed, outcome)
	assert.Equal(t, "EM_ANDAMENTO", state)
}

func TestOptimisticUpdateRollsBackOnCommitFailure(t *testing.T) {
	state := "ABERTA"
	commitErr := errors.New("permission denied")
	update := OptimisticUpdate[string]{
		Snapshot: func() string { return state },
		Apply:    func() { state = "EM_ANDAMENTO" },
		Commit:   func(ctx context.Context) error { return commitErr },
		Restore:  func(snapshot string) { state = snapshot },
	}

	outcome, err := update.Run(context.Background())
	assert.ErrorIs(t, err, commitErr)
	assert.Equal(t, OutcomeRolledBack, outcome)
	assert.Equal(t, "ABERTA", state)
}

func TestOptimisticUpdateSnapshotTakenBeforeApply(t *testing.T) {
	type board struct{ columns map[string][]string }
	state := board{columns: map[string][]string{
		"ABERTA":       {"os-1"},
		"EM_ANDAMENTO": {},
	}}

	update := OptimisticUpdate[board]{
		Snapshot: func() board {
			cloned := board{columns: make(map[string][]string, len(state.columns))}
			for k, v := range state.columns {
				cloned.columns[k] = append([]string(nil), v...)
			}
			return cloned
		},
		Apply: func() {
			state.columns["ABERTA"] = nil
			state.columns["EM_ANDAMENTO"] = append(state.columns["EM_ANDAMENTO"], "os-1")
		},
		Commit:  func(ctx context.Context) error { return errors.New("boom") },
		Restore: func(snapshot board) { state = snapshot },
	}

	_, err := update.Run(context.Background())
	require.Error(t, err)
	assert.Equal(t, []string{"os-1"}, state.columns["ABERTA"])
	assert.Empty(t, state.columns["EM_ANDAMENTO"])
}
