package server

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrStartupNotFound indicates no record has the requested ID
type ErrStartupNotFound struct {
	ID int64
}

func (e *ErrStartupNotFound) Error() string {
	return fmt.Sprintf("startup not found: %d", e.ID)
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrSourceUnavailable indicates the record source could not be loaded
type ErrSourceUnavailable struct {
	Cause error
}

func (e *ErrSourceUnavailable) Error() string {
	return fmt.Sprintf("record source unavailable: %v", e.Cause)
}

func (e *ErrSourceUnavailable) Unwrap() error {
	return e.Cause
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		notFound    *ErrStartupNotFound
		validation  *ErrValidation
		unavailable *ErrSourceUnavailable
	)
	switch {
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.As(err, &unavailable):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
