// Package apierror defines the API error taxonomy for the translation
// service and its JSON response shape.
package apierror

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dbagentlabs/sqlbridge/pkg/dialect"
	"github.com/dbagentlabs/sqlbridge/pkg/schema"
	"github.com/dbagentlabs/sqlbridge/pkg/validate"
)

// Error codes, grouped by failure stage.
const (
	// Request errors (100xx)
	CodeInvalidRequest = "10001"
	CodeSchemaFormat   = "10002"

	// Translation errors (200xx)
	CodeParseError     = "20001"
	CodeOptimizeError  = "20002"
	CodeTranspileError = "20003"
	CodeStatementKind  = "20004"

	// System errors (000xx)
	CodeInternalError = "00001"
)

// HTTPStatus returns the HTTP status for an error code.
func HTTPStatus(code string) int {
	switch code {
	case CodeInvalidRequest, CodeSchemaFormat:
		return http.StatusBadRequest
	case CodeParseError, CodeOptimizeError, CodeTranspileError, CodeStatementKind:
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

// APIError is the error carried across the HTTP boundary.
type APIError struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data,omitempty"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Is checks if this error matches another error by code.
func (e *APIError) Is(target error) bool {
	var apiErr *APIError
	if errors.As(target, &apiErr) {
		return e.Code == apiErr.Code
	}
	return false
}

// WithData adds data to the error.
func (e *APIError) WithData(key string, value any) *APIError {
	if e.Data == nil {
		e.Data = make(map[string]any)
	}
	e.Data[key] = value
	return e
}

// ErrorResponse is the JSON response structure for errors. It is the unified
// error shape used by all handlers.
type ErrorResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Code    string         `json:"code"`
	Data    map[string]any `json:"data,omitempty"`
}

// ToResponse converts the APIError to an ErrorResponse.
func (e *APIError) ToResponse() *ErrorResponse {
	return &ErrorResponse{
		Success: false,
		Message: e.Message,
		Code:    e.Code,
		Data:    e.Data,
	}
}

// New creates an APIError with the given code and message.
func New(code, message string) *APIError {
	return &APIError{Code: code, Message: message}
}

// NewInvalidRequest creates a request validation error.
func NewInvalidRequest(reason string) *APIError {
	return New(CodeInvalidRequest, reason)
}

// NewInternal creates an internal error.
func NewInternal(message string) *APIError {
	return New(CodeInternalError, message)
}

// FromError classifies a pipeline error into the API taxonomy.
func FromError(err error) *APIError {
	var (
		fe *schema.FormatError
		pe *dialect.ParseError
		oe *dialect.OptimizeError
		te *dialect.TranspileError
		ce *dialect.ClassifyError
	)
	switch {
	case errors.As(err, &fe):
		return New(CodeSchemaFormat, fe.Error())
	case errors.As(err, &ce):
		return New(CodeStatementKind, ce.Error()).WithData("kind", ce.Kind.String())
	case errors.As(err, &pe):
		return New(CodeParseError, pe.Error()).WithData("dialect", string(pe.Dialect))
	case errors.As(err, &oe):
		return New(CodeOptimizeError, oe.Error()).WithData("dialect", string(oe.Dialect))
	case errors.As(err, &te):
		return New(CodeTranspileError, te.Error()).
			WithData("from", string(te.From)).
			WithData("to", string(te.To))
	}
	return NewInternal(err.Error())
}

// FromOutcome classifies a failed validation outcome. The caller must check
// Outcome.Valid first; a valid outcome yields an internal error.
func FromOutcome(o validate.Outcome) *APIError {
	if o.Valid() {
		return NewInternal("validation outcome carried no error")
	}
	return FromError(o.Err).WithData("category", o.Category())
}
