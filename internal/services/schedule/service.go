package schedule

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/taichi6930/race-schedule-api-sub006/internal/civiltime"
	"github.com/taichi6930/race-schedule-api-sub006/internal/dependencies/clock"
	"github.com/taichi6930/race-schedule-api-sub006/internal/model"
	"github.com/taichi6930/race-schedule-api-sub006/internal/storage"
)

// SearchParams narrows a schedule query. Empty Kinds means every race kind;
// zero dates default to the current JST month.
type SearchParams struct {
	Kinds    []model.RaceKind
	From     civiltime.Date
	To       civiltime.Date
	Location string
	Grade    string // races only
	Stage    string // races only
}

// Service reads and writes the race schedule
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new schedule Service
func New(storage storage.Storage, clock clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		logger:  logger,
	}
}

// DefaultRange returns the first and last day of the current JST month.
func DefaultRange(c clock.Clock) (civiltime.Date, civiltime.Date) {
	return civiltime.MonthOf(clock.Today(c))
}

// resolve fills defaults and validates the date range.
func (s *Service) resolve(params SearchParams) (SearchParams, error) {
	if len(params.Kinds) == 0 {
		params.Kinds = model.AllRaceKinds()
	}
	for _, k := range params.Kinds {
		if !k.Valid() {
			return SearchParams{}, fmt.Errorf("%w: %q", model.ErrUnknownRaceKind, k)
		}
	}

	first, last := DefaultRange(s.clock)
	if params.From.IsZero() {
		params.From = first
	}
	if params.To.IsZero() {
		params.To = last
	}
	if params.From.After(params.To) {
		return SearchParams{}, fmt.Errorf("%w: %s > %s", model.ErrInvalidDateRange, params.From, params.To)
	}
	return params, nil
}

// UpsertPlaces stamps each place with the current time and saves it.
func (s *Service) UpsertPlaces(ctx context.Context, places []model.Place) ([]model.Place, error) {
	now := s.clock.Now()
	stamped := make([]model.Place, len(places))
	for i, p := range places {
		stamped[i] = p.WithUpdatedAt(now)
	}

	if err := s.storage.SavePlaces(ctx, stamped); err != nil {
		s.logger.Error("failed to save places",
			slog.Int("count", len(stamped)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	s.logger.Info("places upserted", slog.Int("count", len(stamped)))
	return stamped, nil
}

// UpsertRaces stamps each race with the current time and saves it. Every
// race's place must already exist.
func (s *Service) UpsertRaces(ctx context.Context, races []model.Race) ([]model.Race, error) {
	checked := make(map[model.PlaceID]struct{})
	for _, r := range races {
		if _, ok := checked[r.PlaceID()]; ok {
			continue
		}
		if _, err := s.storage.GetPlace(ctx, r.PlaceID()); err != nil {
			return nil, fmt.Errorf("race %s: %w", r.ID(), err)
		}
		checked[r.PlaceID()] = struct{}{}
	}

	now := s.clock.Now()
	stamped := make([]model.Race, len(races))
	for i, r := range races {
		stamped[i] = r.WithUpdatedAt(now)
	}

	if err := s.storage.SaveRaces(ctx, stamped); err != nil {
		s.logger.Error("failed to save races",
			slog.Int("count", len(stamped)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	s.logger.Info("races upserted", slog.Int("count", len(stamped)))
	return stamped, nil
}

// GetPlace retrieves a place by identifier
func (s *Service) GetPlace(ctx context.Context, id model.PlaceID) (model.Place, error) {
	return s.storage.GetPlace(ctx, id)
}

// GetRace retrieves a race by identifier
func (s *Service) GetRace(ctx context.Context, id model.RaceID) (model.Race, error) {
	return s.storage.GetRace(ctx, id)
}

// DeletePlace removes a place together with its races. It returns
// ErrPlaceNotFound when the place does not exist and the number of races
// removed otherwise.
func (s *Service) DeletePlace(ctx context.Context, id model.PlaceID) (int, error) {
	if _, err := s.storage.GetPlace(ctx, id); err != nil {
		return 0, err
	}

	day := id.Date()
	races, err := s.storage.SearchRaces(ctx, storage.RaceFilter{Kind: id.Kind(), From: day, To: day})
	if err != nil {
		return 0, fmt.Errorf("races of %s: %w", id, err)
	}
	var owned []model.RaceID
	for _, r := range races {
		if r.PlaceID() == id {
			owned = append(owned, r.ID())
		}
	}

	if err := s.storage.DeletePlace(ctx, id, owned...); err != nil {
		return 0, fmt.Errorf("delete place %s: %w", id, err)
	}
	s.logger.Info("place deleted", slog.String("id", id.String()), slog.Int("races", len(owned)))
	return len(owned), nil
}

// DeleteRace removes a race, returning ErrRaceNotFound when it is absent
func (s *Service) DeleteRace(ctx context.Context, id model.RaceID) error {
	if _, err := s.storage.GetRace(ctx, id); err != nil {
		return err
	}
	if err := s.storage.DeleteRace(ctx, id); err != nil {
		return err
	}
	s.logger.Info("race deleted", slog.String("id", id.String()))
	return nil
}

// FetchPlaces queries each requested kind concurrently and returns the
// places ordered by start time, then identifier.
func (s *Service) FetchPlaces(ctx context.Context, params SearchParams) ([]model.Place, error) {
	params, err := s.resolve(params)
	if err != nil {
		return nil, err
	}

	results := make([][]model.Place, len(params.Kinds))
	g, gctx := errgroup.WithContext(ctx)
	for i, kind := range params.Kinds {
		g.Go(func() error {
			found, err := s.storage.SearchPlaces(gctx, storage.PlaceFilter{
				Kind:     kind,
				From:     params.From,
				To:       params.To,
				Location: params.Location,
			})
			if err != nil {
				return fmt.Errorf("search %s places: %w", kind, err)
			}
			results[i] = found
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	places := slices.Concat(results...)
	slices.SortFunc(places, func(a, b model.Place) int {
		if c := a.StartAt().Compare(b.StartAt()); c != 0 {
			return c
		}
		return strings.Compare(a.ID().String(), b.ID().String())
	})
	return places, nil
}

// FetchRaces is FetchPlaces for races, additionally filtering by grade and
// stage.
func (s *Service) FetchRaces(ctx context.Context, params SearchParams) ([]model.Race, error) {
	params, err := s.resolve(params)
	if err != nil {
		return nil, err
	}

	results := make([][]model.Race, len(params.Kinds))
	g, gctx := errgroup.WithContext(ctx)
	for i, kind := range params.Kinds {
		g.Go(func() error {
			found, err := s.storage.SearchRaces(gctx, storage.RaceFilter{
				Kind:     kind,
				From:     params.From,
				To:       params.To,
				Location: params.Location,
				Grade:    params.Grade,
				Stage:    params.Stage,
			})
			if err != nil {
				return fmt.Errorf("search %s races: %w", kind, err)
			}
			results[i] = found
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	races := slices.Concat(results...)
	slices.SortFunc(races, func(a, b model.Race) int {
		if c := a.StartAt().Compare(b.StartAt()); c != 0 {
			return c
		}
		return strings.Compare(a.ID().String(), b.ID().String())
	})
	return races, nil
}
