package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPositionNumberBounds(t *testing.T) {
	tests := []struct {
		kind RaceKind
		min  int
		max  int
	}{
		{RaceKindKeirin, 1, 9},
		{RaceKindBoatrace, 1, 6},
		{RaceKindAutorace, 1, 8},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			for _, ok := range []int{tt.min, tt.max} {
				got, err := NewPositionNumber(tt.kind, ok)
				require.NoError(t, err)
				assert.Equal(t, PositionNumber(ok), got)
			}

			for _, bad := range []int{tt.min - 1, tt.max + 1} {
				_, err := NewPositionNumber(tt.kind, bad)
				require.ErrorIs(t, err, ErrRangeViolation)

				var violation *RangeViolationError
				require.True(t, errors.As(err, &violation))
				assert.Equal(t, FieldPositionNumber, violation.Field)
				assert.Equal(t, bad, violation.Value)
				assert.Equal(t, Bound{Min: tt.min, Max: tt.max}, violation.Bound)
				assert.Equal(t, tt.kind, violation.Kind)
			}
		})
	}
}

func TestPositionNumberUnsupportedForHorseRacing(t *testing.T) {
	for _, kind := range []RaceKind{RaceKindJRA, RaceKindNAR, RaceKindOverseas} {
		_, err := NewPositionNumber(kind, 1)
		assert.ErrorIs(t, err, ErrNoPositionNumber, kind)
		assert.ErrorIs(t, err, ErrIdentifierFormat, kind)
		assert.False(t, kind.HasPositionNumbers())
	}
}

func TestRaceNumberBounds(t *testing.T) {
	for _, kind := range AllRaceKinds() {
		bound, ok := BoundFor(kind, FieldRaceNumber)
		require.True(t, ok)
		assert.Equal(t, Bound{Min: 1, Max: 12}, bound, kind)
	}

	_, err := NewRaceNumber(1)
	assert.NoError(t, err)
	_, err = NewRaceNumber(12)
	assert.NoError(t, err)
	_, err = NewRaceNumber(0)
	assert.ErrorIs(t, err, ErrRangeViolation)
	_, err = NewRaceNumber(13)
	assert.ErrorIs(t, err, ErrRangeViolation)
}

func TestCounterFieldsHaveNoUpperBound(t *testing.T) {
	constructors := map[Field]func(int) error{
		FieldPlayerNumber: func(v int) error { _, err := NewPlayerNumber(v); return err },
		FieldHeldTimes:    func(v int) error { _, err := NewHeldTimes(v); return err },
		FieldHeldDayTimes: func(v int) error { _, err := NewHeldDayTimes(v); return err },
	}

	for field, construct := range constructors {
		t.Run(string(field), func(t *testing.T) {
			assert.NoError(t, construct(1))
			assert.NoError(t, construct(4321))

			err := construct(0)
			var violation *RangeViolationError
			require.True(t, errors.As(err, &violation))
			assert.Equal(t, field, violation.Field)
			assert.Equal(t, ">=1", violation.Bound.String())
		})
	}
}

func TestVenueCodeBounds(t *testing.T) {
	_, err := NewVenueCode(1)
	assert.NoError(t, err)
	_, err = NewVenueCode(99)
	assert.NoError(t, err)
	_, err = NewVenueCode(0)
	assert.ErrorIs(t, err, ErrRangeViolation)
	_, err = NewVenueCode(100)
	assert.ErrorIs(t, err, ErrRangeViolation)
}

func TestRangeViolationMessage(t *testing.T) {
	_, err := NewPositionNumber(RaceKindKeirin, 10)
	assert.EqualError(t, err, "position number 10 out of range 1-9 for keirin")
}

func TestParseRaceKind(t *testing.T) {
	for _, kind := range AllRaceKinds() {
		got, err := ParseRaceKind(string(kind))
		require.NoError(t, err)
		assert.Equal(t, kind, got)
	}

	for _, bad := range []string{"", "Keirin", "KEIRIN", "keirin ", "kei", "horse"} {
		_, err := ParseRaceKind(bad)
		assert.ErrorIs(t, err, ErrUnknownRaceKind, bad)
	}
}
