package redis

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taichi6930/race-schedule-api-sub006/internal/model"
	"github.com/taichi6930/race-schedule-api-sub006/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
	keys   keyspace
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
		keys:   cfg.keys(),
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
		keys:   cfg.keys(),
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Place operations

func (s *Storage) SavePlaces(ctx context.Context, places []model.Place) error {
	if len(places) == 0 {
		return nil
	}

	// Records and index entries go out in one pipeline
	pipe := s.client.Pipeline()
	for _, p := range places {
		data, err := marshalPlace(p)
		if err != nil {
			return err
		}
		id := p.ID().String()
		pipe.Set(ctx, s.keys.place(id), data, s.cfg.RecordTTL)
		pipe.ZAdd(ctx, s.keys.placeIndex(p.Kind()), redis.Z{
			Score:  float64(p.ID().Date().Ordinal()),
			Member: id,
		})
	}
	_, err := pipe.Exec(ctx)
	return err
}

func (s *Storage) GetPlace(ctx context.Context, id model.PlaceID) (model.Place, error) {
	data, err := s.client.Get(ctx, s.keys.place(id.String())).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return model.Place{}, model.ErrPlaceNotFound
		}
		return model.Place{}, err
	}
	return unmarshalPlace(data)
}

func (s *Storage) SearchPlaces(ctx context.Context, filter storage.PlaceFilter) ([]model.Place, error) {
	values, err := s.rangeRecords(ctx, s.keys.placeIndex(filter.Kind), filter.From.Ordinal(), filter.To.Ordinal(), s.keys.place)
	if err != nil {
		return nil, err
	}

	places := make([]model.Place, 0, len(values))
	for _, data := range values {
		place, err := unmarshalPlace(data)
		if err != nil {
			return nil, err
		}
		if filter.Matches(place) {
			places = append(places, place)
		}
	}
	return places, nil
}

// DeletePlace runs in MULTI/EXEC so the place and its races go together.
func (s *Storage) DeletePlace(ctx context.Context, id model.PlaceID, races ...model.RaceID) error {
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, r := range races {
			pipe.Del(ctx, s.keys.race(r.String()))
			pipe.ZRem(ctx, s.keys.raceIndex(r.Kind()), r.String())
		}
		pipe.Del(ctx, s.keys.place(id.String()))
		pipe.ZRem(ctx, s.keys.placeIndex(id.Kind()), id.String())
		return nil
	})
	return err
}

// Race operations

func (s *Storage) SaveRaces(ctx context.Context, races []model.Race) error {
	if len(races) == 0 {
		return nil
	}

	pipe := s.client.Pipeline()
	for _, r := range races {
		data, err := marshalRace(r)
		if err != nil {
			return err
		}
		id := r.ID().String()
		pipe.Set(ctx, s.keys.race(id), data, s.cfg.RecordTTL)
		pipe.ZAdd(ctx, s.keys.raceIndex(r.Kind()), redis.Z{
			Score:  float64(r.ID().Date().Ordinal()),
			Member: id,
		})
	}
	_, err := pipe.Exec(ctx)
	return err
}

func (s *Storage) GetRace(ctx context.Context, id model.RaceID) (model.Race, error) {
	data, err := s.client.Get(ctx, s.keys.race(id.String())).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return model.Race{}, model.ErrRaceNotFound
		}
		return model.Race{}, err
	}
	return unmarshalRace(data)
}

func (s *Storage) SearchRaces(ctx context.Context, filter storage.RaceFilter) ([]model.Race, error) {
	values, err := s.rangeRecords(ctx, s.keys.raceIndex(filter.Kind), filter.From.Ordinal(), filter.To.Ordinal(), s.keys.race)
	if err != nil {
		return nil, err
	}

	races := make([]model.Race, 0, len(values))
	for _, data := range values {
		race, err := unmarshalRace(data)
		if err != nil {
			return nil, err
		}
		if filter.Matches(race) {
			races = append(races, race)
		}
	}
	return races, nil
}

func (s *Storage) DeleteRace(ctx context.Context, id model.RaceID) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, s.keys.race(id.String()))
	pipe.ZRem(ctx, s.keys.raceIndex(id.Kind()), id.String())
	_, err := pipe.Exec(ctx)
	return err
}

// rangeRecords reads the ids scored in [from, to] from an index and fetches
// their records with MGET. Ids whose record has expired are skipped.
func (s *Storage) rangeRecords(ctx context.Context, indexKey string, from, to int, keyFor func(string) string) ([][]byte, error) {
	ids, err := s.client.ZRangeByScore(ctx, indexKey, &redis.ZRangeBy{
		Min: strconv.Itoa(from),
		Max: strconv.Itoa(to),
	}).Result()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = keyFor(id)
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	records := make([][]byte, 0, len(values))
	for _, val := range values {
		str, ok := val.(string)
		if !ok {
			continue // Record may have expired
		}
		records = append(records, []byte(str))
	}
	return records, nil
}
