package apierr

import (
	"errors"
	"net/http"

	json "github.com/goccy/go-json"

	"github.com/taichi6930/race-schedule-api-sub006/internal/model"
	"github.com/taichi6930/race-schedule-api-sub006/internal/services/auth"
	"github.com/taichi6930/race-schedule-api-sub006/internal/services/csvio"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest    = "INVALID_REQUEST"
	CodeInvalidIdentifier = "INVALID_IDENTIFIER"
	CodeOutOfRange        = "OUT_OF_RANGE"
	CodeInvalidDate       = "INVALID_DATE"
	CodeInvalidDateRange  = "INVALID_DATE_RANGE"
	CodeUnknownRaceType   = "UNKNOWN_RACE_TYPE"
	CodeUnknownEntity     = "UNKNOWN_ENTITY"
	CodeIDMismatch        = "ID_MISMATCH"
	CodeDuplicatePosition = "DUPLICATE_POSITION"
	CodePlaceNotFound     = "PLACE_NOT_FOUND"
	CodeRaceNotFound      = "RACE_NOT_FOUND"
	CodeUnauthorized      = "UNAUTHORIZED"
	CodeWritesDisabled    = "WRITES_DISABLED"
	CodeInternalError     = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// Status returns the HTTP status WriteError would use for err
func Status(err error) int {
	return toHTTPError(err).status
}

// toHTTPError converts an error to an httpError. Client input errors keep
// their own message, which names the offending field and value.
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	badRequest := func(code string) *httpError {
		return &httpError{http.StatusBadRequest, APIError{code, err.Error()}}
	}

	switch {
	// Codec and civil time errors. Range is checked first: a range error is
	// the most specific classification.
	case errors.Is(err, model.ErrRangeViolation):
		return badRequest(CodeOutOfRange)
	case errors.Is(err, model.ErrDateParse):
		return badRequest(CodeInvalidDate)
	case errors.Is(err, model.ErrIdentifierFormat):
		return badRequest(CodeInvalidIdentifier)
	case errors.Is(err, model.ErrUnknownRaceKind):
		return badRequest(CodeUnknownRaceType)

	// Entity and query errors
	case errors.Is(err, model.ErrIDMismatch):
		return badRequest(CodeIDMismatch)
	case errors.Is(err, model.ErrDuplicatePosition):
		return badRequest(CodeDuplicatePosition)
	case errors.Is(err, model.ErrInvalidDateRange):
		return badRequest(CodeInvalidDateRange)
	case errors.Is(err, csvio.ErrUnknownEntity):
		return badRequest(CodeUnknownEntity)

	// Storage errors
	case errors.Is(err, model.ErrPlaceNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePlaceNotFound, "Place not found"}}
	case errors.Is(err, model.ErrRaceNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeRaceNotFound, "Race not found"}}

	// Map auth errors
	case errors.Is(err, auth.ErrInvalidAPIKey):
		return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Invalid API key"}}
	case errors.Is(err, auth.ErrAuthNotConfigured):
		return &httpError{http.StatusForbidden, APIError{CodeWritesDisabled, "Writes are disabled on this server"}}

	default:
		var rowErr *csvio.RowError
		if errors.As(err, &rowErr) {
			return badRequest(CodeInvalidRequest)
		}
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Authentication required"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
