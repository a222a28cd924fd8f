package storage

import (
	"context"

	"github.com/taichi6930/race-schedule-api-sub006/internal/civiltime"
	"github.com/taichi6930/race-schedule-api-sub006/internal/model"
)

// PlaceFilter selects places of one race kind whose JST start date lies in
// [From, To]. Empty string fields match everything.
type PlaceFilter struct {
	Kind     model.RaceKind
	From     civiltime.Date
	To       civiltime.Date
	Location string
}

// Matches reports whether p passes the filter.
func (f PlaceFilter) Matches(p model.Place) bool {
	if p.Kind() != f.Kind {
		return false
	}
	if !p.ID().Date().InRange(f.From, f.To) {
		return false
	}
	return f.Location == "" || p.Location() == f.Location
}

// RaceFilter selects races the same way and can narrow by grade and stage.
type RaceFilter struct {
	Kind     model.RaceKind
	From     civiltime.Date
	To       civiltime.Date
	Location string
	Grade    string
	Stage    string
}

// Matches reports whether r passes the filter.
func (f RaceFilter) Matches(r model.Race) bool {
	if r.Kind() != f.Kind {
		return false
	}
	if !r.ID().Date().InRange(f.From, f.To) {
		return false
	}
	if f.Location != "" && r.Location() != f.Location {
		return false
	}
	if f.Grade != "" && r.Grade() != f.Grade {
		return false
	}
	return f.Stage == "" || r.Stage() == f.Stage
}

// Storage defines the interface for schedule persistence. Save operations
// overwrite existing entries with the same identifier.
type Storage interface {
	// Place operations
	SavePlaces(ctx context.Context, places []model.Place) error
	GetPlace(ctx context.Context, id model.PlaceID) (model.Place, error)
	SearchPlaces(ctx context.Context, filter PlaceFilter) ([]model.Place, error)
	// DeletePlace removes a place together with the given races in one
	// atomic step.
	DeletePlace(ctx context.Context, id model.PlaceID, races ...model.RaceID) error

	// Race operations
	SaveRaces(ctx context.Context, races []model.Race) error
	GetRace(ctx context.Context, id model.RaceID) (model.Race, error)
	SearchRaces(ctx context.Context, filter RaceFilter) ([]model.Race, error)
	DeleteRace(ctx context.Context, id model.RaceID) error
}
