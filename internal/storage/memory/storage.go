package memory

import (
	"context"
	"sync"

	"github.com/taichi6930/race-schedule-api-sub006/internal/model"
	"github.com/taichi6930/race-schedule-api-sub006/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	places map[model.PlaceID]model.Place
	races  map[model.RaceID]model.Race
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		places: make(map[model.PlaceID]model.Place),
		races:  make(map[model.RaceID]model.Race),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Place operations

func (s *Storage) SavePlaces(ctx context.Context, places []model.Place) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range places {
		s.places[p.ID()] = p
	}
	return nil
}

func (s *Storage) GetPlace(ctx context.Context, id model.PlaceID) (model.Place, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	place, ok := s.places[id]
	if !ok {
		return model.Place{}, model.ErrPlaceNotFound
	}
	return place, nil
}

func (s *Storage) SearchPlaces(ctx context.Context, filter storage.PlaceFilter) ([]model.Place, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := []model.Place{}
	for _, p := range s.places {
		if filter.Matches(p) {
			result = append(result, p)
		}
	}
	return result, nil
}

func (s *Storage) DeletePlace(ctx context.Context, id model.PlaceID, races ...model.RaceID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range races {
		delete(s.races, r)
	}
	delete(s.places, id)
	return nil
}

// Race operations

func (s *Storage) SaveRaces(ctx context.Context, races []model.Race) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range races {
		s.races[r.ID()] = r
	}
	return nil
}

func (s *Storage) GetRace(ctx context.Context, id model.RaceID) (model.Race, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	race, ok := s.races[id]
	if !ok {
		return model.Race{}, model.ErrRaceNotFound
	}
	return race, nil
}

func (s *Storage) SearchRaces(ctx context.Context, filter storage.RaceFilter) ([]model.Race, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := []model.Race{}
	for _, r := range s.races {
		if filter.Matches(r) {
			result = append(result, r)
		}
	}
	return result, nil
}

func (s *Storage) DeleteRace(ctx context.Context, id model.RaceID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.races, id)
	return nil
}
