package model

import (
	"fmt"
	"strconv"

	"github.com/taichi6930/race-schedule-api-sub006/internal/civiltime"
)

// Identifier layout:
//
//	<prefix><YYYYMMDD><venue:2>[<race:2>[<position:2>]]
//
// The prefix is the only variable-length part, so decoding slices fixed-width
// segments off the tail. Persisted identifiers already use this form; it must
// not change to a delimited one.
const (
	dateWidth    = 8
	segmentWidth = 2
)

// Shape selects which identifier is being encoded or decoded.
type Shape int

const (
	ShapePlace Shape = iota
	ShapeRace
	ShapeRacePlayer
)

func (s Shape) String() string {
	switch s {
	case ShapePlace:
		return "place"
	case ShapeRace:
		return "race"
	case ShapeRacePlayer:
		return "race player"
	default:
		return fmt.Sprintf("Shape(%d)", int(s))
	}
}

// Length returns the exact encoded length of an identifier of shape s for
// kind.
func (s Shape) Length(kind RaceKind) int {
	return len(kind.Prefix()) + dateWidth + segmentWidth*(int(s)+1)
}

// Components are the decoded parts of an identifier. Race and Position are
// zero when absent.
type Components struct {
	Kind     RaceKind
	Date     civiltime.Date
	Venue    VenueCode
	Race     RaceNumber
	Position PositionNumber
}

// Shape infers the identifier shape from the optional parts present.
func (c Components) Shape() Shape {
	switch {
	case c.Position != 0:
		return ShapeRacePlayer
	case c.Race != 0:
		return ShapeRace
	default:
		return ShapePlace
	}
}

// Encode validates every present component and renders the identifier.
func Encode(c Components) (string, error) {
	if err := c.validate(); err != nil {
		return "", err
	}
	return c.format(), nil
}

func (c Components) validate() error {
	if !c.Kind.Valid() {
		return &IdentifierFormatError{Kind: c.Kind, Reason: ReasonUnknownKind, Err: ErrUnknownRaceKind}
	}
	if !c.Date.Valid() {
		return &DateParseError{Input: c.Date.String(), Reason: "not a calendar date"}
	}
	if _, err := Validate(c.Kind, FieldVenueCode, int(c.Venue)); err != nil {
		return err
	}
	if c.Position != 0 && c.Race == 0 {
		return &IdentifierFormatError{Kind: c.Kind, Field: FieldRaceNumber, Reason: ReasonMissingSegment}
	}
	if c.Race != 0 {
		if _, err := Validate(c.Kind, FieldRaceNumber, int(c.Race)); err != nil {
			return err
		}
	}
	if c.Position != 0 {
		if _, err := Validate(c.Kind, FieldPositionNumber, int(c.Position)); err != nil {
			return err
		}
	}
	return nil
}

// format renders already-validated components.
func (c Components) format() string {
	s := c.Kind.Prefix() + c.Date.Compact() + pad(int(c.Venue))
	if c.Race != 0 {
		s += pad(int(c.Race))
	}
	if c.Position != 0 {
		s += pad(int(c.Position))
	}
	return s
}

func pad(n int) string {
	return fmt.Sprintf("%0*d", segmentWidth, n)
}

// Decode parses s as an identifier of the given shape owned by kind.
//
// The prefix is checked first, then the exact length. Segments are then cut
// from the tail (position, race, venue, date) and validated in that order;
// the first failure is returned and names its field.
func Decode(kind RaceKind, shape Shape, s string) (Components, error) {
	if !kind.Valid() {
		return Components{}, &IdentifierFormatError{Kind: kind, Input: s, Reason: ReasonUnknownKind, Err: ErrUnknownRaceKind}
	}
	if shape == ShapeRacePlayer && !kind.HasPositionNumbers() {
		return Components{}, &IdentifierFormatError{Kind: kind, Input: s, Reason: ReasonNoPosition, Err: ErrNoPositionNumber}
	}
	prefix := kind.Prefix()
	if len(s) < len(prefix) || s[:len(prefix)] != prefix {
		return Components{}, &IdentifierFormatError{Kind: kind, Input: s, Reason: ReasonPrefixMismatch}
	}
	if want := shape.Length(kind); len(s) != want {
		return Components{}, &IdentifierFormatError{
			Kind:   kind,
			Input:  s,
			Reason: fmt.Sprintf("%s: want %d characters, got %d", ReasonLengthMismatch, want, len(s)),
		}
	}

	c := Components{Kind: kind}
	end := len(s)
	cut := func(width int) string {
		seg := s[end-width : end]
		end -= width
		return seg
	}

	var positionSeg, raceSeg string
	if shape == ShapeRacePlayer {
		positionSeg = cut(segmentWidth)
	}
	if shape >= ShapeRace {
		raceSeg = cut(segmentWidth)
	}
	venueSeg := cut(segmentWidth)
	dateSeg := cut(dateWidth)

	if positionSeg != "" {
		n, err := decodeSegment(kind, s, FieldPositionNumber, positionSeg)
		if err != nil {
			return Components{}, err
		}
		c.Position = PositionNumber(n)
	}
	if raceSeg != "" {
		n, err := decodeSegment(kind, s, FieldRaceNumber, raceSeg)
		if err != nil {
			return Components{}, err
		}
		c.Race = RaceNumber(n)
	}
	n, err := decodeSegment(kind, s, FieldVenueCode, venueSeg)
	if err != nil {
		return Components{}, err
	}
	c.Venue = VenueCode(n)

	if !isDigits(dateSeg) {
		return Components{}, &IdentifierFormatError{Kind: kind, Input: s, Field: FieldDate, Reason: ReasonNotNumeric}
	}
	date, err := civiltime.ParseCompactDate(dateSeg)
	if err != nil {
		return Components{}, fmt.Errorf("identifier %q: %s: %w", s, FieldDate, err)
	}
	c.Date = date

	return c, nil
}

// decodeSegment converts a fixed-width slice to an int and validates it. Only
// ASCII digits are accepted; strconv alone would admit a leading sign.
func decodeSegment(kind RaceKind, input string, field Field, seg string) (int, error) {
	if !isDigits(seg) {
		return 0, &IdentifierFormatError{Kind: kind, Input: input, Field: field, Reason: ReasonNotNumeric}
	}
	n, err := strconv.Atoi(seg)
	if err != nil {
		return 0, &IdentifierFormatError{Kind: kind, Input: input, Field: field, Reason: ReasonNotNumeric, Err: err}
	}
	return Validate(kind, field, n)
}

func isDigits(seg string) bool {
	for i := 0; i < len(seg); i++ {
		if seg[i] < '0' || seg[i] > '9' {
			return false
		}
	}
	return true
}

// ParseAnyID decodes an identifier without knowing its kind or shape up
// front. The kind comes from the longest matching prefix and the shape from
// the remaining length.
func ParseAnyID(s string) (Components, error) {
	kind, ok := kindForPrefix(s)
	if !ok {
		return Components{}, &IdentifierFormatError{Input: s, Reason: ReasonPrefixMismatch, Err: ErrUnknownRaceKind}
	}
	for _, shape := range []Shape{ShapePlace, ShapeRace, ShapeRacePlayer} {
		if len(s) == shape.Length(kind) {
			return Decode(kind, shape, s)
		}
	}
	return Components{}, &IdentifierFormatError{Kind: kind, Input: s, Reason: ReasonLengthMismatch}
}

// PlaceID identifies a venue-day: (kind, date, venue).
type PlaceID struct {
	kind  RaceKind
	date  civiltime.Date
	venue VenueCode
}

// NewPlaceID validates its parts and returns the identifier.
func NewPlaceID(kind RaceKind, date civiltime.Date, venue int) (PlaceID, error) {
	c := Components{Kind: kind, Date: date, Venue: VenueCode(venue)}
	if err := c.validate(); err != nil {
		return PlaceID{}, err
	}
	return PlaceID{kind: kind, date: date, venue: c.Venue}, nil
}

// ParsePlaceID decodes a place identifier of the expected kind.
func ParsePlaceID(kind RaceKind, s string) (PlaceID, error) {
	c, err := Decode(kind, ShapePlace, s)
	if err != nil {
		return PlaceID{}, err
	}
	return PlaceID{kind: c.Kind, date: c.Date, venue: c.Venue}, nil
}

func (id PlaceID) Kind() RaceKind       { return id.kind }
func (id PlaceID) Date() civiltime.Date { return id.date }
func (id PlaceID) Venue() VenueCode     { return id.venue }
func (id PlaceID) IsZero() bool         { return id == PlaceID{} }

// Components returns the decoded parts of id.
func (id PlaceID) Components() Components {
	return Components{Kind: id.kind, Date: id.date, Venue: id.venue}
}

func (id PlaceID) String() string {
	if id.IsZero() {
		return ""
	}
	return id.Components().format()
}

// RaceID identifies a race within a place-day.
type RaceID struct {
	place  PlaceID
	number RaceNumber
}

// NewRaceID extends a place identifier with a race number.
func NewRaceID(place PlaceID, number int) (RaceID, error) {
	if place.IsZero() {
		return RaceID{}, &IdentifierFormatError{Reason: ReasonMissingSegment, Field: FieldVenueCode}
	}
	n, err := NewRaceNumber(number)
	if err != nil {
		return RaceID{}, err
	}
	return RaceID{place: place, number: n}, nil
}

// ParseRaceID decodes a race identifier of the expected kind.
func ParseRaceID(kind RaceKind, s string) (RaceID, error) {
	c, err := Decode(kind, ShapeRace, s)
	if err != nil {
		return RaceID{}, err
	}
	return raceIDFrom(c), nil
}

func raceIDFrom(c Components) RaceID {
	return RaceID{
		place:  PlaceID{kind: c.Kind, date: c.Date, venue: c.Venue},
		number: c.Race,
	}
}

func (id RaceID) Place() PlaceID       { return id.place }
func (id RaceID) Number() RaceNumber   { return id.number }
func (id RaceID) Kind() RaceKind       { return id.place.kind }
func (id RaceID) Date() civiltime.Date { return id.place.date }
func (id RaceID) IsZero() bool         { return id == RaceID{} }

func (id RaceID) Components() Components {
	c := id.place.Components()
	c.Race = id.number
	return c
}

func (id RaceID) String() string {
	if id.IsZero() {
		return ""
	}
	return id.Components().format()
}

// RacePlayerID identifies a participant slot within a race.
type RacePlayerID struct {
	race     RaceID
	position PositionNumber
}

// NewRacePlayerID extends a race identifier with a position number, validated
// against the race kind's bound.
func NewRacePlayerID(race RaceID, position int) (RacePlayerID, error) {
	if race.IsZero() {
		return RacePlayerID{}, &IdentifierFormatError{Reason: ReasonMissingSegment, Field: FieldRaceNumber}
	}
	p, err := NewPositionNumber(race.Kind(), position)
	if err != nil {
		return RacePlayerID{}, err
	}
	return RacePlayerID{race: race, position: p}, nil
}

// ParseRacePlayerID decodes a participant identifier of the expected kind.
func ParseRacePlayerID(kind RaceKind, s string) (RacePlayerID, error) {
	c, err := Decode(kind, ShapeRacePlayer, s)
	if err != nil {
		return RacePlayerID{}, err
	}
	return RacePlayerID{race: raceIDFrom(c), position: c.Position}, nil
}

func (id RacePlayerID) Race() RaceID             { return id.race }
func (id RacePlayerID) Position() PositionNumber { return id.position }
func (id RacePlayerID) Kind() RaceKind           { return id.race.Kind() }
func (id RacePlayerID) IsZero() bool             { return id == RacePlayerID{} }

func (id RacePlayerID) Components() Components {
	c := id.race.Components()
	c.Position = id.position
	return c
}

func (id RacePlayerID) String() string {
	if id.IsZero() {
		return ""
	}
	return id.Components().format()
}
