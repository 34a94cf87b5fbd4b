package services

import (
	"errors"
	"fmt"
	"net/http"
)

// ValidationError covers bad input shape, enum or range. Client mistake,
// never retried.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// NotFoundError means a referenced entity is absent.
type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string { return e.Msg }

// ConflictError guards one-way transitions (already voided, already refunded).
type ConflictError struct {
	Msg string
}

func (e *ConflictError) Error() string { return e.Msg }

// ForbiddenError means the admin re-authentication failed.
type ForbiddenError struct {
	Msg string
}

func (e *ForbiddenError) Error() string { return e.Msg }

// InsufficientStockError names the material (or product) that ran short so
// the operator can restock and resubmit.
type InsufficientStockError struct {
	Name string
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("not enough %s", e.Name)
}

// InsufficientCashError rejects a cash payment below total + tip.
type InsufficientCashError struct{}

func (e *InsufficientCashError) Error() string { return "insufficient cash provided" }

// StorageError wraps an I/O failure. The only category eligible for retry.
type StorageError struct {
	Err error
}

func (e *StorageError) Error() string { return e.Err.Error() }
func (e *StorageError) Unwrap() error { return e.Err }

// StatusForError maps the error taxonomy to an HTTP status code.
func StatusForError(err error) int {
	var (
		validation *ValidationError
		notFound   *NotFoundError
		conflict   *ConflictError
		forbidden  *ForbiddenError
		noStock    *InsufficientStockError
		noCash     *InsufficientCashError
		storage    *StorageError
	)
	switch {
	case errors.As(err, &validation), errors.As(err, &noStock), errors.As(err, &noCash):
		return http.StatusBadRequest
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &conflict):
		return http.StatusConflict
	case errors.As(err, &forbidden):
		return http.StatusForbidden
	case errors.As(err, &storage):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
