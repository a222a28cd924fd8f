package csvio

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/taichi6930/race-schedule-api-sub006/internal/services/schedule"
)

// Service moves schedule data in and out of CSV
type Service struct {
	schedule *schedule.Service
	logger   *slog.Logger
}

// New creates a new CSV Service
func New(schedule *schedule.Service, logger *slog.Logger) *Service {
	return &Service{
		schedule: schedule,
		logger:   logger,
	}
}

// Import reads every row before saving anything, so a bad row leaves storage
// untouched. It returns the number of entities saved.
func (s *Service) Import(ctx context.Context, entity Entity, r io.Reader) (int, error) {
	var (
		count int
		err   error
	)
	switch entity {
	case EntityPlace:
		places, readErr := ReadPlaces(r)
		if readErr != nil {
			return 0, readErr
		}
		_, err = s.schedule.UpsertPlaces(ctx, places)
		count = len(places)
	case EntityRace:
		races, readErr := ReadRaces(r)
		if readErr != nil {
			return 0, readErr
		}
		_, err = s.schedule.UpsertRaces(ctx, races)
		count = len(races)
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownEntity, entity)
	}
	if err != nil {
		return 0, err
	}

	s.logger.Info("csv imported",
		slog.String("entity", string(entity)),
		slog.Int("rows", count),
	)
	return count, nil
}

// LoadFromFile imports a CSV file from disk
func (s *Service) LoadFromFile(ctx context.Context, entity Entity, path string) (int, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	return s.Import(ctx, entity, file)
}

// Export writes the entities matching params. It returns the number of rows
// written, excluding the header.
func (s *Service) Export(ctx context.Context, entity Entity, params schedule.SearchParams, w io.Writer) (int, error) {
	switch entity {
	case EntityPlace:
		places, err := s.schedule.FetchPlaces(ctx, params)
		if err != nil {
			return 0, err
		}
		return len(places), WritePlaces(w, places)
	case EntityRace:
		races, err := s.schedule.FetchRaces(ctx, params)
		if err != nil {
			return 0, err
		}
		return len(races), WriteRaces(w, races)
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownEntity, entity)
	}
}
