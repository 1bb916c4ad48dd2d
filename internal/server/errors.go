package server

import (
	"fmt"
	"net/http"
	"os"

	"github.com/pkg/errors"
)

// debugEnvVar switches error wrapping to full stack traces.
const debugEnvVar = "SHEETFIT_DEBUG"

func debugEnabled() bool {
	_, ok := os.LookupEnv(debugEnvVar)
	return ok
}

// errid ties an error to the request that produced it.
type errid struct {
	reqid string
	err   error
}

func (e errid) wrap(cause error, txt string) error {
	err := errors.WithMessage(cause, txt)
	if debugEnabled() {
		err = errors.Wrap(cause, txt)
	}
	e.err = err
	return e
}

func (e errid) text(txt string) error {
	e.err = errors.WithStack(errors.New(txt))
	return e
}

func (e errid) from(err error) error {
	e.err = errors.WithStack(err)
	return e
}

func (e errid) id() string {
	return e.reqid
}

func (e errid) Error() string {
	return fmt.Sprintf("%s: %s", e.reqid, e.err.Error())
}

func (e errid) Unwrap() error {
	return e.err
}

// ErrMalformedJSON indicates a request body that is not valid JSON.
type ErrMalformedJSON struct {
	Cause error
}

func (e *ErrMalformedJSON) Error() string {
	return fmt.Sprintf("malformed json: %v", e.Cause)
}

// ErrValidation indicates a well-formed request with unusable values.
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrNotFound indicates a missing resource.
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// HTTPStatus returns the status code for an error, looking through wrapping.
func HTTPStatus(err error) int {
	var (
		malformed *ErrMalformedJSON
		invalid   *ErrValidation
		notFound  *ErrNotFound
	)
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &malformed):
		return http.StatusBadRequest
	case errors.As(err, &invalid):
		return http.StatusUnprocessableEntity
	case errors.As(err, &notFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
