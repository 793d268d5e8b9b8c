package shared

import "context"

// OptimisticOutcome describes how an optimistic update ended
type OptimisticOutcome string

const (
	OutcomePredicted  OptimisticOutcome = "PREDICTED"   // local state updated, remote write in flight
	OutcomeConfirmed  OptimisticOutcome = "CONFIRMED"   // remote write succeeded
	OutcomeRolledBack OptimisticOutcome = "ROLLED_BACK" // remote write failed, snapshot restored
)

// OptimisticUpdate applies a predicted change locally, runs the remote write,
// and restores the pre-update snapshot when the write fails. The board
// components (service order and opportunity kanbans) drive their drag moves
// through this so the rollback path is uniform.
//
// snapshot is taken before apply runs; on failure restore receives it along
// with the original error.
type OptimisticUpdate[S any] struct {
	Snapshot func() S
	Apply    func()
	Commit   func(ctx context.Context) error
	Restore  func(snapshot S)
}

// Run executes the optimistic update and reports the outcome. The returned
// error is the commit error when the update rolled back, nil otherwise.
func (u OptimisticUpdate[S]) Run(ctx context.Context) (OptimisticOutcome, error) {
	snapshot := u.Snapshot()
	u.Apply()
	if err := u.Commit(ctx); err != nil {
		u.Restore(snapshot)
		return OutcomeRolledBack, err
	}
	return OutcomeConfirmed, nil
}
