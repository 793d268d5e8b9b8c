package persistence

import (
	"errors"
	"testing"

	"github.com/gestor-erp/backend/internal/domain/shared"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestTranslateErrorNotFound(t *testing.T) {
	err := TranslateError("Crud.FindByID", gorm.ErrRecordNotFound)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestTranslateErrorPermissionDenied(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "42501", Message: "permission denied for table clients"}

	err := TranslateError("Client.Save", pgErr)

	var repoErr *RepositoryError
	require.ErrorAs(t, err, &repoErr)
	assert.True(t, repoErr.PermissionDenied)
	assert.Equal(t, "Client.Save", repoErr.Op)
	assert.Equal(t, "42501", repoErr.Code)
	assert.ErrorIs(t, err, shared.ErrForbidden)
	assert.True(t, IsPermissionDenied(err))
}

func TestTranslateErrorConstraintViolations(t *testing.T) {
	unique := TranslateError("User.Save", &pgconn.PgError{Code: "23505"})
	assert.ErrorIs(t, unique, shared.ErrAlreadyExists)

	var domainErr *shared.DomainError
	fk := TranslateError("Client.DeleteForCompany", &pgconn.PgError{Code: "23503"})
	require.ErrorAs(t, fk, &domainErr)
	assert.Equal(t, "REFERENCE_VIOLATION", domainErr.Code)
}

func TestTranslateErrorWrapsDriverDiagnostics(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:    "22P02",
		Message: "invalid input syntax for type uuid",
		Hint:    "verify the literal",
	}

	err := TranslateError("Payable.Settle", pgErr)

	var repoErr *RepositoryError
	require.ErrorAs(t, err, &repoErr)
	assert.Equal(t, "Payable.Settle", repoErr.Op)
	assert.Equal(t, "22P02", repoErr.Code)
	assert.Equal(t, "verify the literal", repoErr.Hint)
	assert.False(t, repoErr.PermissionDenied)
	assert.Contains(t, repoErr.Error(), "Payable.Settle")
	assert.Contains(t, repoErr.Error(), "SQLSTATE 22P02")
	assert.ErrorIs(t, err, pgErr)
}

func TestTranslateErrorWrapsPlainErrors(t *testing.T) {
	cause := errors.New("driver: bad connection")

	err := TranslateError("Crud.Count", cause)

	var repoErr *RepositoryError
	require.ErrorAs(t, err, &repoErr)
	assert.Equal(t, "Crud.Count", repoErr.Op)
	assert.Empty(t, repoErr.Code)
	assert.ErrorIs(t, err, cause)
	assert.False(t, IsPermissionDenied(err))
}

func TestTranslateErrorNil(t *testing.T) {
	assert.NoError(t, TranslateError("Crud.Save", nil))
}
