package model

import (
	"fmt"
)

// Field names a validated numeric field. The value appears in error messages.
type Field string

const (
	FieldDate           Field = "date"
	FieldVenueCode      Field = "venue code"
	FieldRaceNumber     Field = "race number"
	FieldPositionNumber Field = "position number"
	FieldPlayerNumber   Field = "player number"
	FieldHeldTimes      Field = "held times"
	FieldHeldDayTimes   Field = "held day times"
)

// Bound is an inclusive integer range. Max of zero means no upper limit.
type Bound struct {
	Min int
	Max int
}

// Contains reports whether v lies within b.
func (b Bound) Contains(v int) bool {
	if v < b.Min {
		return false
	}
	return b.Max == 0 || v <= b.Max
}

func (b Bound) String() string {
	if b.Max == 0 {
		return fmt.Sprintf(">=%d", b.Min)
	}
	return fmt.Sprintf("%d-%d", b.Min, b.Max)
}

var (
	venueCodeBound  = Bound{Min: 1, Max: 99}
	raceNumberBound = Bound{Min: 1, Max: 12}
	counterBound    = Bound{Min: 1}

	positionBounds = map[RaceKind]Bound{
		RaceKindKeirin:   {Min: 1, Max: 9},
		RaceKindBoatrace: {Min: 1, Max: 6},
		RaceKindAutorace: {Min: 1, Max: 8},
	}
)

// BoundFor returns the bound for field under kind. ok is false when the field
// does not exist for the kind (position numbers for horse racing) or is not a
// numeric field.
func BoundFor(kind RaceKind, field Field) (Bound, bool) {
	switch field {
	case FieldVenueCode:
		return venueCodeBound, true
	case FieldRaceNumber:
		return raceNumberBound, true
	case FieldPositionNumber:
		b, ok := positionBounds[kind]
		return b, ok
	case FieldPlayerNumber, FieldHeldTimes, FieldHeldDayTimes:
		return counterBound, true
	default:
		return Bound{}, false
	}
}

// Validate checks value against the bound for (kind, field) and returns it
// unchanged. Out-of-range values are a *RangeViolationError; they are never
// clamped.
func Validate(kind RaceKind, field Field, value int) (int, error) {
	bound, ok := BoundFor(kind, field)
	if !ok {
		if field == FieldPositionNumber {
			return 0, &IdentifierFormatError{Kind: kind, Field: field, Reason: ReasonNoPosition, Err: ErrNoPositionNumber}
		}
		return 0, fmt.Errorf("no bound defined for %s", field)
	}
	if !bound.Contains(value) {
		violation := &RangeViolationError{Field: field, Value: value, Bound: bound}
		if field == FieldPositionNumber {
			violation.Kind = kind
		}
		return 0, violation
	}
	return value, nil
}

// VenueCode is the two-digit venue number within a race kind.
type VenueCode int

func NewVenueCode(v int) (VenueCode, error) {
	n, err := Validate("", FieldVenueCode, v)
	return VenueCode(n), err
}

// RaceNumber is the race's order within its place-day.
type RaceNumber int

func NewRaceNumber(v int) (RaceNumber, error) {
	n, err := Validate("", FieldRaceNumber, v)
	return RaceNumber(n), err
}

// PositionNumber is a participant's starting position, lane or post. Its
// range depends on the race kind.
type PositionNumber int

func NewPositionNumber(kind RaceKind, v int) (PositionNumber, error) {
	n, err := Validate(kind, FieldPositionNumber, v)
	return PositionNumber(n), err
}

// PlayerNumber is a participant's registration number.
type PlayerNumber int

func NewPlayerNumber(v int) (PlayerNumber, error) {
	n, err := Validate("", FieldPlayerNumber, v)
	return PlayerNumber(n), err
}

// HeldTimes numbers the meeting within the season.
type HeldTimes int

func NewHeldTimes(v int) (HeldTimes, error) {
	n, err := Validate("", FieldHeldTimes, v)
	return HeldTimes(n), err
}

// HeldDayTimes numbers the day within a meeting.
type HeldDayTimes int

func NewHeldDayTimes(v int) (HeldDayTimes, error) {
	n, err := Validate("", FieldHeldDayTimes, v)
	return HeldDayTimes(n), err
}
