package model

import (
	"fmt"
	"time"

	"github.com/taichi6930/race-schedule-api-sub006/internal/civiltime"
)

// HeldDay says which meeting and which day of it a place-day belongs to.
// Build it with NewHeldDay; the zero value means the counters are unknown.
type HeldDay struct {
	times    HeldTimes
	dayTimes HeldDayTimes
}

// NewHeldDay validates both counters.
func NewHeldDay(times, dayTimes int) (HeldDay, error) {
	t, err := NewHeldTimes(times)
	if err != nil {
		return HeldDay{}, err
	}
	d, err := NewHeldDayTimes(dayTimes)
	if err != nil {
		return HeldDay{}, err
	}
	return HeldDay{times: t, dayTimes: d}, nil
}

func (h HeldDay) Times() HeldTimes       { return h.times }
func (h HeldDay) DayTimes() HeldDayTimes { return h.dayTimes }
func (h HeldDay) IsZero() bool           { return h == HeldDay{} }

// heldPtr stores h, or nothing for the zero value
func heldPtr(h HeldDay) *HeldDay {
	if h.IsZero() {
		return nil
	}
	return &h
}

// Place is a venue-day in the schedule. Values are immutable; the With
// methods return modified copies.
type Place struct {
	id        PlaceID
	startAt   time.Time
	location  string
	grade     string
	held      *HeldDay
	updatedAt time.Time
}

// NewPlace builds a place whose start falls on the identifier's JST date.
func NewPlace(id PlaceID, startAt time.Time, location string) (Place, error) {
	if id.IsZero() {
		return Place{}, fmt.Errorf("%w: empty place id", ErrIDMismatch)
	}
	if got := civiltime.DateOf(startAt); got != id.Date() {
		return Place{}, fmt.Errorf("%w: place %s starts on %s", ErrIDMismatch, id, got)
	}
	return Place{
		id:       id,
		startAt:  civiltime.Normalize(startAt),
		location: location,
	}, nil
}

func (p Place) ID() PlaceID          { return p.id }
func (p Place) Kind() RaceKind       { return p.id.kind }
func (p Place) StartAt() time.Time   { return p.startAt }
func (p Place) Location() string     { return p.location }
func (p Place) Grade() string        { return p.grade }
func (p Place) UpdatedAt() time.Time { return p.updatedAt }

// HeldDay returns the meeting counters, if known.
func (p Place) HeldDay() (HeldDay, bool) {
	if p.held == nil {
		return HeldDay{}, false
	}
	return *p.held, true
}

func (p Place) WithGrade(grade string) Place {
	p.grade = grade
	return p
}

func (p Place) WithLocation(location string) Place {
	p.location = location
	return p
}

// WithHeldDay sets the meeting counters. The zero HeldDay clears them.
func (p Place) WithHeldDay(h HeldDay) Place {
	p.held = heldPtr(h)
	return p
}

func (p Place) WithUpdatedAt(t time.Time) Place {
	p.updatedAt = civiltime.Normalize(t)
	return p
}

// Equal reports structural equality, comparing instants by Equal.
func (p Place) Equal(other Place) bool {
	ph, pok := p.HeldDay()
	oh, ook := other.HeldDay()
	return p.id == other.id &&
		p.startAt.Equal(other.startAt) &&
		p.location == other.location &&
		p.grade == other.grade &&
		pok == ook && ph == oh &&
		p.updatedAt.Equal(other.updatedAt)
}
