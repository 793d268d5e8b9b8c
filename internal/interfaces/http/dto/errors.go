package dto

import (
	"net/http"
	"strings"
)

// Codes used by the transport layer itself
const (
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeValidation   = "VALIDATION_FAILED"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeForbidden    = "FORBIDDEN"
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodePayloadSize  = "PAYLOAD_TOO_LARGE"
	ErrCodeInternal     = "INTERNAL_ERROR"
)

// statusByCode maps the domain error codes that are not covered by the
// suffix/prefix rules below
var statusByCode = map[string]int{
	ErrCodeBadRequest:      http.StatusBadRequest,
	ErrCodeValidation:      http.StatusBadRequest,
	ErrCodeUnauthorized:    http.StatusUnauthorized,
	ErrCodeForbidden:       http.StatusForbidden,
	ErrCodeNotFound:        http.StatusNotFound,
	ErrCodePayloadSize:     http.StatusRequestEntityTooLarge,
	ErrCodeInternal:        http.StatusInternalServerError,
	"INVALID_CREDENTIALS":  http.StatusUnauthorized,
	"ACCOUNT_DISABLED":     http.StatusUnauthorized,
	"OWNER_MEMBERSHIP":     http.StatusForbidden,
	"ALREADY_EXISTS":       http.StatusConflict,
	"EMAIL_TAKEN":          http.StatusConflict,
	"ALREADY_SETTLED":      http.StatusConflict,
	"SERVICE_IN_USE":       http.StatusConflict,
	"COMPANY_HAS_MEMBERS":  http.StatusConflict,
	"ENTRY_HAS_SOURCE":     http.StatusConflict,
	"INVALID_STATE":        http.StatusUnprocessableEntity,
	"INVALID_TRANSITION":   http.StatusUnprocessableEntity,
	"NOT_A_SUPPLIER":       http.StatusUnprocessableEntity,
	"EMPTY_CART":           http.StatusUnprocessableEntity,
	"NO_CLIENT":            http.StatusUnprocessableEntity,
	"NO_ITEMS":             http.StatusUnprocessableEntity,
	"INSUFFICIENT_PAYMENT": http.StatusUnprocessableEntity,
}

// GetHTTPStatus resolves a domain error code to an HTTP status. Unknown
// codes map to 400: domain errors are caller mistakes unless stated
// otherwise.
func GetHTTPStatus(code string) int {
	if status, ok := statusByCode[code]; ok {
		return status
	}
	if code == "NOT_FOUND" || strings.HasSuffix(code, "_NOT_FOUND") {
		return http.StatusNotFound
	}
	return http.StatusBadRequest
}
