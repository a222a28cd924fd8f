package model

import (
	"errors"
	"fmt"

	"github.com/taichi6930/race-schedule-api-sub006/internal/civiltime"
)

// Common errors used across the application
var (
	// Codec errors. Typed errors below match these via errors.Is.
	ErrIdentifierFormat = errors.New("malformed identifier")
	ErrRangeViolation   = errors.New("value out of range")
	ErrDateParse        = civiltime.ErrDateParse

	// Identifier shape errors, wrapped by IdentifierFormatError
	ErrUnknownRaceKind  = errors.New("unknown race kind")
	ErrNoPositionNumber = errors.New("race kind has no position numbers")

	// Entity errors
	ErrIDMismatch        = errors.New("identifier does not match entity fields")
	ErrDuplicatePosition = errors.New("position number assigned twice")

	// Query errors
	ErrInvalidDateRange = errors.New("start date is after finish date")

	// Storage errors
	ErrPlaceNotFound = errors.New("place not found")
	ErrRaceNotFound  = errors.New("race not found")
)

// Reasons carried by IdentifierFormatError
const (
	ReasonPrefixMismatch = "prefix mismatch"
	ReasonLengthMismatch = "length mismatch"
	ReasonNotNumeric     = "segment is not numeric"
	ReasonUnknownKind    = "unknown race kind"
	ReasonNoPosition     = "race kind has no position numbers"
	ReasonMissingSegment = "missing segment"
)

// IdentifierFormatError reports an identifier whose shape is wrong: a prefix
// that does not belong to the expected race kind, a total length that does
// not match the requested identifier, or a segment that is not all digits.
type IdentifierFormatError struct {
	Kind   RaceKind
	Input  string
	Field  Field // empty for prefix and length errors
	Reason string
	Err    error
}

func (e *IdentifierFormatError) Error() string {
	msg := fmt.Sprintf("identifier %q", e.Input)
	if e.Kind != "" {
		msg += fmt.Sprintf(" (%s)", e.Kind)
	}
	if e.Field != "" {
		return fmt.Sprintf("%s: %s: %s", msg, e.Field, e.Reason)
	}
	return fmt.Sprintf("%s: %s", msg, e.Reason)
}

func (e *IdentifierFormatError) Is(target error) bool {
	return target == ErrIdentifierFormat
}

func (e *IdentifierFormatError) Unwrap() error {
	return e.Err
}

// RangeViolationError reports a numeric value outside its inclusive bound.
type RangeViolationError struct {
	Kind  RaceKind // empty for kind-independent fields
	Field Field
	Value int
	Bound Bound
}

func (e *RangeViolationError) Error() string {
	if e.Kind != "" {
		return fmt.Sprintf("%s %d out of range %s for %s", e.Field, e.Value, e.Bound, e.Kind)
	}
	return fmt.Sprintf("%s %d out of range %s", e.Field, e.Value, e.Bound)
}

func (e *RangeViolationError) Is(target error) bool {
	return target == ErrRangeViolation
}

// DateParseError is the civiltime parse error, re-exported so callers of the
// codec need only this package.
type DateParseError = civiltime.DateParseError
