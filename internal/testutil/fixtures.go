package testutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/taichi6930/race-schedule-api-sub006/internal/civiltime"
	"github.com/taichi6930/race-schedule-api-sub006/internal/model"
)

// Date parses "YYYY-MM-DD" or fails the test.
func Date(t testing.TB, s string) civiltime.Date {
	t.Helper()
	d, err := civiltime.ParseDate(s)
	require.NoError(t, err)
	return d
}

// Time parses a JST wall-clock string ("YYYY-MM-DD HH:mm:ss") or fails the test.
func Time(t testing.TB, s string) time.Time {
	t.Helper()
	ts, err := civiltime.ParseStorage(s)
	require.NoError(t, err)
	return ts
}

// PlaceID builds a place identifier or fails the test.
func PlaceID(t testing.TB, kind model.RaceKind, date string, venue int) model.PlaceID {
	t.Helper()
	id, err := model.NewPlaceID(kind, Date(t, date), venue)
	require.NoError(t, err)
	return id
}

// Place builds a place starting at start (JST wall clock) at the venue.
func Place(t testing.TB, kind model.RaceKind, start string, venue int, location string) model.Place {
	t.Helper()
	startAt := Time(t, start)
	id := PlaceID(t, kind, civiltime.DateOf(startAt).String(), venue)
	p, err := model.NewPlace(id, startAt, location)
	require.NoError(t, err)
	return p
}

// Race builds race number n of place, starting at start (JST wall clock).
func Race(t testing.TB, place model.Place, n int, name, start string) model.Race {
	t.Helper()
	id, err := model.NewRaceID(place.ID(), n)
	require.NoError(t, err)
	r, err := model.NewRace(id, name, Time(t, start))
	require.NoError(t, err)
	return r.WithLocation(place.Location()).WithGrade(place.Grade())
}
