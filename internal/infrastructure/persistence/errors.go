package persistence

import (
	"errors"
	"fmt"

	"github.com/gestor-erp/backend/internal/domain/shared"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Postgres error codes surfaced by the hosted database when row-level
// security or grants reject a statement
const (
	pgInsufficientPrivilege = "42501"
	pgUniqueViolation       = "23505"
	pgForeignKeyViolation   = "23503"
)

// RepositoryError wraps a backend error with the operation that issued it.
// Postgres diagnostics (code, message, hint) are preserved so logs keep the
// driver detail after the raw error is hidden from API clients.
type RepositoryError struct {
	Op               string
	Code             string
	Message          string
	Hint             string
	PermissionDenied bool

	err error
}

func (e *RepositoryError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s (SQLSTATE %s)", e.Op, e.Message, e.Code)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *RepositoryError) Unwrap() error {
	return e.err
}

// TranslateError maps driver and GORM errors onto domain errors so callers
// never branch on SQLSTATE strings. Record-not-found and the common
// constraint violations become domain errors; everything else is wrapped in
// a RepositoryError carrying op and the Postgres diagnostics. Permission
// failures from row-level security unwrap to ErrForbidden, which handlers
// render as a session problem rather than a generic 500.
func TranslateError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return shared.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgInsufficientPrivilege:
			return &RepositoryError{
				Op:               op,
				Code:             pgErr.Code,
				Message:          pgErr.Message,
				Hint:             pgErr.Hint,
				PermissionDenied: true,
				err:              shared.ErrForbidden,
			}
		case pgUniqueViolation:
			return shared.ErrAlreadyExists
		case pgForeignKeyViolation:
			return shared.NewDomainError("REFERENCE_VIOLATION", "Record is referenced by other data")
		}
		return &RepositoryError{
			Op:      op,
			Code:    pgErr.Code,
			Message: pgErr.Message,
			Hint:    pgErr.Hint,
			err:     err,
		}
	}
	return &RepositoryError{Op: op, Message: err.Error(), err: err}
}

// IsPermissionDenied reports whether the error came from the database
// rejecting the statement for lack of privilege
func IsPermissionDenied(err error) bool {
	var repoErr *RepositoryError
	if errors.As(err, &repoErr) {
		return repoErr.PermissionDenied
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgInsufficientPrivilege
}
