package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/taichi6930/race-schedule-api-sub006/internal/model"
	"github.com/taichi6930/race-schedule-api-sub006/internal/storage"
	"github.com/taichi6930/race-schedule-api-sub006/internal/testutil"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
}

// Place tests

func (s *StorageSuite) TestSaveAndGetPlace() {
	place := testutil.Place(s.T(), model.RaceKindKeirin, "2024-02-01 11:00:00", 1, "Hakodate")

	err := s.storage.SavePlaces(s.ctx, []model.Place{place})
	s.Require().NoError(err)

	retrieved, err := s.storage.GetPlace(s.ctx, place.ID())
	s.Require().NoError(err)
	s.True(place.Equal(retrieved))
}

func (s *StorageSuite) TestSavePlacesOverwrites() {
	place := testutil.Place(s.T(), model.RaceKindKeirin, "2024-02-01 11:00:00", 1, "Hakodate")
	s.Require().NoError(s.storage.SavePlaces(s.ctx, []model.Place{place}))
	s.Require().NoError(s.storage.SavePlaces(s.ctx, []model.Place{place.WithGrade("G1")}))

	retrieved, err := s.storage.GetPlace(s.ctx, place.ID())
	s.Require().NoError(err)
	s.Equal("G1", retrieved.Grade())
}

func (s *StorageSuite) TestGetPlaceNotFound() {
	_, err := s.storage.GetPlace(s.ctx, testutil.PlaceID(s.T(), model.RaceKindJRA, "2024-02-01", 5))
	s.ErrorIs(err, model.ErrPlaceNotFound)
}

func (s *StorageSuite) TestDeletePlace() {
	place := testutil.Place(s.T(), model.RaceKindNAR, "2024-02-01 15:00:00", 44, "Oi")
	_ = s.storage.SavePlaces(s.ctx, []model.Place{place})

	err := s.storage.DeletePlace(s.ctx, place.ID())
	s.Require().NoError(err)

	_, err = s.storage.GetPlace(s.ctx, place.ID())
	s.ErrorIs(err, model.ErrPlaceNotFound)
}

func (s *StorageSuite) TestDeletePlaceWithRaces() {
	place := testutil.Place(s.T(), model.RaceKindKeirin, "2024-02-01 11:00:00", 1, "Hakodate")
	race := testutil.Race(s.T(), place, 1, "", "2024-02-01 11:00:00")
	other := testutil.Race(s.T(), place, 2, "", "2024-02-01 11:30:00")
	s.Require().NoError(s.storage.SavePlaces(s.ctx, []model.Place{place}))
	s.Require().NoError(s.storage.SaveRaces(s.ctx, []model.Race{race, other}))

	s.Require().NoError(s.storage.DeletePlace(s.ctx, place.ID(), race.ID()))

	_, err := s.storage.GetPlace(s.ctx, place.ID())
	s.ErrorIs(err, model.ErrPlaceNotFound)
	_, err = s.storage.GetRace(s.ctx, race.ID())
	s.ErrorIs(err, model.ErrRaceNotFound)
	_, err = s.storage.GetRace(s.ctx, other.ID())
	s.NoError(err)
}

func (s *StorageSuite) TestSearchPlaces() {
	places := []model.Place{
		testutil.Place(s.T(), model.RaceKindKeirin, "2024-02-01 11:00:00", 1, "Hakodate"),
		testutil.Place(s.T(), model.RaceKindKeirin, "2024-02-03 11:00:00", 2, "Aomori"),
		testutil.Place(s.T(), model.RaceKindKeirin, "2024-03-01 11:00:00", 1, "Hakodate"),
		testutil.Place(s.T(), model.RaceKindBoatrace, "2024-02-01 10:00:00", 1, "Kiryu"),
	}
	s.Require().NoError(s.storage.SavePlaces(s.ctx, places))

	found, err := s.storage.SearchPlaces(s.ctx, storage.PlaceFilter{
		Kind: model.RaceKindKeirin,
		From: testutil.Date(s.T(), "2024-02-01"),
		To:   testutil.Date(s.T(), "2024-02-29"),
	})
	s.Require().NoError(err)
	s.Len(found, 2)

	found, err = s.storage.SearchPlaces(s.ctx, storage.PlaceFilter{
		Kind:     model.RaceKindKeirin,
		From:     testutil.Date(s.T(), "2024-01-01"),
		To:       testutil.Date(s.T(), "2024-12-31"),
		Location: "Hakodate",
	})
	s.Require().NoError(err)
	s.Len(found, 2)

	found, err = s.storage.SearchPlaces(s.ctx, storage.PlaceFilter{
		Kind: model.RaceKindAutorace,
		From: testutil.Date(s.T(), "2024-01-01"),
		To:   testutil.Date(s.T(), "2024-12-31"),
	})
	s.Require().NoError(err)
	s.NotNil(found)
	s.Empty(found)
}

// Race tests

func (s *StorageSuite) TestSaveAndGetRace() {
	place := testutil.Place(s.T(), model.RaceKindBoatrace, "2024-02-01 10:00:00", 4, "Heiwajima")
	race := testutil.Race(s.T(), place, 12, "final", "2024-02-01 16:30:00").WithStage("final")

	s.Require().NoError(s.storage.SaveRaces(s.ctx, []model.Race{race}))

	retrieved, err := s.storage.GetRace(s.ctx, race.ID())
	s.Require().NoError(err)
	s.True(race.Equal(retrieved))
}

func (s *StorageSuite) TestGetRaceNotFound() {
	place := testutil.Place(s.T(), model.RaceKindBoatrace, "2024-02-01 10:00:00", 4, "Heiwajima")
	race := testutil.Race(s.T(), place, 1, "", "2024-02-01 10:30:00")

	_, err := s.storage.GetRace(s.ctx, race.ID())
	s.ErrorIs(err, model.ErrRaceNotFound)
}

func (s *StorageSuite) TestSearchRacesByGradeAndStage() {
	place := testutil.Place(s.T(), model.RaceKindAutorace, "2024-02-01 10:00:00", 2, "Kawaguchi")
	races := []model.Race{
		testutil.Race(s.T(), place, 1, "", "2024-02-01 10:30:00").WithStage("heat").WithGrade("G2"),
		testutil.Race(s.T(), place, 11, "", "2024-02-01 16:00:00").WithStage("semi").WithGrade("G2"),
		testutil.Race(s.T(), place, 12, "", "2024-02-01 16:30:00").WithStage("final").WithGrade("G1"),
	}
	s.Require().NoError(s.storage.SaveRaces(s.ctx, races))

	day := testutil.Date(s.T(), "2024-02-01")
	found, err := s.storage.SearchRaces(s.ctx, storage.RaceFilter{Kind: model.RaceKindAutorace, From: day, To: day, Grade: "G2"})
	s.Require().NoError(err)
	s.Len(found, 2)

	found, err = s.storage.SearchRaces(s.ctx, storage.RaceFilter{Kind: model.RaceKindAutorace, From: day, To: day, Stage: "final"})
	s.Require().NoError(err)
	s.Require().Len(found, 1)
	s.Equal(model.RaceNumber(12), found[0].Number())
}

func (s *StorageSuite) TestDeleteRace() {
	place := testutil.Place(s.T(), model.RaceKindJRA, "2024-05-26 10:00:00", 5, "Tokyo")
	race := testutil.Race(s.T(), place, 11, "Tokyo Yushun", "2024-05-26 15:40:00")
	_ = s.storage.SaveRaces(s.ctx, []model.Race{race})

	s.Require().NoError(s.storage.DeleteRace(s.ctx, race.ID()))

	_, err := s.storage.GetRace(s.ctx, race.ID())
	s.ErrorIs(err, model.ErrRaceNotFound)
}
