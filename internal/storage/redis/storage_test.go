package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/taichi6930/race-schedule-api-sub006/internal/model"
	"github.com/taichi6930/race-schedule-api-sub006/internal/storage"
	"github.com/taichi6930/race-schedule-api-sub006/internal/testutil"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	s.storage = NewWithClient(client, DefaultConfig())
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

// Place tests

func (s *StorageSuite) TestSaveAndGetPlace() {
	held, err := model.NewHeldDay(2, 3)
	s.Require().NoError(err)
	place := testutil.Place(s.T(), model.RaceKindKeirin, "2024-02-01 11:00:00", 1, "Hakodate").
		WithGrade("GIII").
		WithHeldDay(held).
		WithUpdatedAt(testutil.Time(s.T(), "2024-01-20 08:15:00"))

	s.Require().NoError(s.storage.SavePlaces(s.ctx, []model.Place{place}))

	retrieved, err := s.storage.GetPlace(s.ctx, place.ID())
	s.Require().NoError(err)
	s.True(place.Equal(retrieved))
}

func (s *StorageSuite) TestKeyPrefixIsolatesDeployments() {
	cfg := DefaultConfig()
	cfg.KeyPrefix = "staging"
	other := NewWithClient(redis.NewClient(&redis.Options{Addr: s.mini.Addr()}), cfg)
	defer other.Close()

	place := testutil.Place(s.T(), model.RaceKindNAR, "2024-02-01 10:00:00", 44, "Oi")
	s.Require().NoError(other.SavePlaces(s.ctx, []model.Place{place}))

	s.True(s.mini.Exists("staging:place:nar2024020144"))
	s.False(s.mini.Exists("racesched:place:nar2024020144"))

	_, err := s.storage.GetPlace(s.ctx, place.ID())
	s.ErrorIs(err, model.ErrPlaceNotFound)
}

func (s *StorageSuite) TestPlaceRecordLayout() {
	place := testutil.Place(s.T(), model.RaceKindKeirin, "2024-02-01 11:00:00", 1, "Hakodate")
	s.Require().NoError(s.storage.SavePlaces(s.ctx, []model.Place{place}))

	raw, err := s.mini.Get("racesched:place:keirin2024020101")
	s.Require().NoError(err)
	s.JSONEq(`{"id":"keirin2024020101","raceType":"keirin","dateTime":"2024-02-01 11:00:00","location":"Hakodate"}`, raw)

	score, err := s.mini.ZScore("racesched:idx:places:keirin", "keirin2024020101")
	s.Require().NoError(err)
	s.Equal(float64(20240201), score)
}

func (s *StorageSuite) TestGetPlaceNotFound() {
	_, err := s.storage.GetPlace(s.ctx, testutil.PlaceID(s.T(), model.RaceKindJRA, "2024-02-01", 5))
	s.ErrorIs(err, model.ErrPlaceNotFound)
}

func (s *StorageSuite) TestGetPlaceRejectsCorruptIdentifier() {
	s.Require().NoError(s.mini.Set("racesched:place:keirin2024020101",
		`{"id":"keirin2024020100","raceType":"keirin","dateTime":"2024-02-01 11:00:00"}`))

	_, err := s.storage.GetPlace(s.ctx, testutil.PlaceID(s.T(), model.RaceKindKeirin, "2024-02-01", 1))
	s.ErrorIs(err, model.ErrRangeViolation)
}

func (s *StorageSuite) TestDeletePlace() {
	place := testutil.Place(s.T(), model.RaceKindNAR, "2024-02-01 15:00:00", 44, "Oi")
	_ = s.storage.SavePlaces(s.ctx, []model.Place{place})

	s.Require().NoError(s.storage.DeletePlace(s.ctx, place.ID()))

	_, err := s.storage.GetPlace(s.ctx, place.ID())
	s.ErrorIs(err, model.ErrPlaceNotFound)

	members, err := s.mini.ZMembers("racesched:idx:places:nar")
	if err == nil {
		s.Empty(members)
	}
}

func (s *StorageSuite) TestDeletePlaceWithRaces() {
	place := testutil.Place(s.T(), model.RaceKindKeirin, "2024-02-01 11:00:00", 1, "Hakodate")
	first := testutil.Race(s.T(), place, 1, "", "2024-02-01 11:00:00")
	second := testutil.Race(s.T(), place, 2, "", "2024-02-01 11:30:00")
	s.Require().NoError(s.storage.SavePlaces(s.ctx, []model.Place{place}))
	s.Require().NoError(s.storage.SaveRaces(s.ctx, []model.Race{first, second}))

	s.Require().NoError(s.storage.DeletePlace(s.ctx, place.ID(), first.ID(), second.ID()))

	s.False(s.mini.Exists("racesched:place:" + place.ID().String()))
	s.False(s.mini.Exists("racesched:race:" + first.ID().String()))
	s.False(s.mini.Exists("racesched:race:" + second.ID().String()))

	races, err := s.storage.SearchRaces(s.ctx, storage.RaceFilter{
		Kind: model.RaceKindKeirin,
		From: testutil.Date(s.T(), "2024-02-01"),
		To:   testutil.Date(s.T(), "2024-02-01"),
	})
	s.Require().NoError(err)
	s.Empty(races)
}

func (s *StorageSuite) TestSearchPlacesByDateRange() {
	places := []model.Place{
		testutil.Place(s.T(), model.RaceKindKeirin, "2024-01-31 11:00:00", 1, "Hakodate"),
		testutil.Place(s.T(), model.RaceKindKeirin, "2024-02-01 11:00:00", 1, "Hakodate"),
		testutil.Place(s.T(), model.RaceKindKeirin, "2024-02-29 11:00:00", 2, "Aomori"),
		testutil.Place(s.T(), model.RaceKindKeirin, "2024-03-01 11:00:00", 1, "Hakodate"),
		testutil.Place(s.T(), model.RaceKindBoatrace, "2024-02-10 10:00:00", 1, "Kiryu"),
	}
	s.Require().NoError(s.storage.SavePlaces(s.ctx, places))

	found, err := s.storage.SearchPlaces(s.ctx, storage.PlaceFilter{
		Kind: model.RaceKindKeirin,
		From: testutil.Date(s.T(), "2024-02-01"),
		To:   testutil.Date(s.T(), "2024-02-29"),
	})
	s.Require().NoError(err)
	s.Require().Len(found, 2)

	ids := []string{found[0].ID().String(), found[1].ID().String()}
	s.ElementsMatch([]string{"keirin2024020101", "keirin2024022902"}, ids)

	found, err = s.storage.SearchPlaces(s.ctx, storage.PlaceFilter{
		Kind:     model.RaceKindKeirin,
		From:     testutil.Date(s.T(), "2024-01-01"),
		To:       testutil.Date(s.T(), "2024-12-31"),
		Location: "Aomori",
	})
	s.Require().NoError(err)
	s.Len(found, 1)
}

func (s *StorageSuite) TestSearchPlacesSkipsExpiredRecords() {
	s.storage.cfg.RecordTTL = time.Minute
	place := testutil.Place(s.T(), model.RaceKindKeirin, "2024-02-01 11:00:00", 1, "Hakodate")
	s.Require().NoError(s.storage.SavePlaces(s.ctx, []model.Place{place}))

	s.mini.FastForward(2 * time.Minute)

	found, err := s.storage.SearchPlaces(s.ctx, storage.PlaceFilter{
		Kind: model.RaceKindKeirin,
		From: testutil.Date(s.T(), "2024-02-01"),
		To:   testutil.Date(s.T(), "2024-02-01"),
	})
	s.Require().NoError(err)
	s.Empty(found)
}

// Race tests

func (s *StorageSuite) TestSaveAndGetRaceWithPlayers() {
	place := testutil.Place(s.T(), model.RaceKindBoatrace, "2024-02-01 10:00:00", 4, "Heiwajima")
	race := testutil.Race(s.T(), place, 12, "Final", "2024-02-01 16:30:00").WithStage("final")

	var players []model.RacePlayer
	for pos := 1; pos <= 6; pos++ {
		playerID, err := model.NewRacePlayerID(race.ID(), pos)
		s.Require().NoError(err)
		player, err := model.NewRacePlayer(playerID, 4000+pos)
		s.Require().NoError(err)
		players = append(players, player)
	}
	race, err := race.WithPlayers(players...)
	s.Require().NoError(err)

	s.Require().NoError(s.storage.SaveRaces(s.ctx, []model.Race{race}))

	retrieved, err := s.storage.GetRace(s.ctx, race.ID())
	s.Require().NoError(err)
	s.True(race.Equal(retrieved))
	s.Len(retrieved.Players(), 6)
}

func (s *StorageSuite) TestGetRaceNotFound() {
	place := testutil.Place(s.T(), model.RaceKindBoatrace, "2024-02-01 10:00:00", 4, "Heiwajima")
	race := testutil.Race(s.T(), place, 1, "", "2024-02-01 10:30:00")

	_, err := s.storage.GetRace(s.ctx, race.ID())
	s.ErrorIs(err, model.ErrRaceNotFound)
}

func (s *StorageSuite) TestGetRaceRejectsNumberMismatch() {
	s.Require().NoError(s.mini.Set("racesched:race:keirin202402010112",
		`{"id":"keirin202402010112","raceType":"keirin","dateTime":"2024-02-01 16:00:00","number":11}`))

	place := testutil.Place(s.T(), model.RaceKindKeirin, "2024-02-01 11:00:00", 1, "")
	race := testutil.Race(s.T(), place, 12, "", "2024-02-01 16:00:00")

	_, err := s.storage.GetRace(s.ctx, race.ID())
	s.ErrorIs(err, model.ErrIDMismatch)
}

func (s *StorageSuite) TestSearchRaces() {
	place := testutil.Place(s.T(), model.RaceKindAutorace, "2024-02-01 10:00:00", 2, "Kawaguchi")
	races := []model.Race{
		testutil.Race(s.T(), place, 1, "", "2024-02-01 10:30:00").WithStage("heat").WithGrade("G2"),
		testutil.Race(s.T(), place, 11, "", "2024-02-01 16:00:00").WithStage("semi").WithGrade("G2"),
		testutil.Race(s.T(), place, 12, "", "2024-02-01 16:30:00").WithStage("final").WithGrade("G1"),
	}
	s.Require().NoError(s.storage.SaveRaces(s.ctx, races))

	day := testutil.Date(s.T(), "2024-02-01")
	found, err := s.storage.SearchRaces(s.ctx, storage.RaceFilter{Kind: model.RaceKindAutorace, From: day, To: day})
	s.Require().NoError(err)
	s.Len(found, 3)

	found, err = s.storage.SearchRaces(s.ctx, storage.RaceFilter{Kind: model.RaceKindAutorace, From: day, To: day, Grade: "G1"})
	s.Require().NoError(err)
	s.Require().Len(found, 1)
	s.Equal(model.RaceNumber(12), found[0].Number())

	found, err = s.storage.SearchRaces(s.ctx, storage.RaceFilter{Kind: model.RaceKindKeirin, From: day, To: day})
	s.Require().NoError(err)
	s.Empty(found)
}

func (s *StorageSuite) TestDeleteRace() {
	place := testutil.Place(s.T(), model.RaceKindJRA, "2024-05-26 10:00:00", 5, "Tokyo")
	race := testutil.Race(s.T(), place, 11, "Tokyo Yushun", "2024-05-26 15:40:00")
	_ = s.storage.SaveRaces(s.ctx, []model.Race{race})

	s.Require().NoError(s.storage.DeleteRace(s.ctx, race.ID()))

	_, err := s.storage.GetRace(s.ctx, race.ID())
	s.ErrorIs(err, model.ErrRaceNotFound)
}
