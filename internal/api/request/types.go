package request

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/taichi6930/race-schedule-api-sub006/internal/api/apierr"
	"github.com/taichi6930/race-schedule-api-sub006/internal/civiltime"
	"github.com/taichi6930/race-schedule-api-sub006/internal/model"
	"github.com/taichi6930/race-schedule-api-sub006/internal/services/schedule"
)

// ParseSearchQuery reads search parameters from a query string. raceType may
// repeat or hold a comma separated list. Omitted dates are left zero for the
// schedule service to default.
func ParseSearchQuery(q url.Values) (schedule.SearchParams, error) {
	var params schedule.SearchParams

	for _, v := range q["raceType"] {
		for _, name := range strings.Split(v, ",") {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			kind, err := model.ParseRaceKind(name)
			if err != nil {
				return schedule.SearchParams{}, err
			}
			params.Kinds = append(params.Kinds, kind)
		}
	}

	var err error
	if params.From, err = parseDateParam(q, "startDate"); err != nil {
		return schedule.SearchParams{}, err
	}
	if params.To, err = parseDateParam(q, "finishDate"); err != nil {
		return schedule.SearchParams{}, err
	}

	params.Location = q.Get("location")
	params.Grade = q.Get("grade")
	params.Stage = q.Get("stage")
	return params, nil
}

func parseDateParam(q url.Values, name string) (civiltime.Date, error) {
	v := q.Get(name)
	if v == "" {
		return civiltime.Date{}, nil
	}
	return civiltime.ParseDate(v)
}

// PlaceInput is one element of a PUT /places body
type PlaceInput struct {
	ID           string `json:"id"`
	RaceType     string `json:"raceType"`
	DateTime     string `json:"dateTime"`
	Location     string `json:"location"`
	Grade        string `json:"grade"`
	HeldTimes    *int   `json:"heldTimes"`
	HeldDayTimes *int   `json:"heldDayTimes"`
}

// ToModel decodes the identifier and builds a place
func (in PlaceInput) ToModel() (model.Place, error) {
	kind, err := model.ParseRaceKind(in.RaceType)
	if err != nil {
		return model.Place{}, err
	}
	id, err := model.ParsePlaceID(kind, in.ID)
	if err != nil {
		return model.Place{}, err
	}
	startAt, err := civiltime.ParseAssumingCivil(in.DateTime)
	if err != nil {
		return model.Place{}, err
	}
	place, err := model.NewPlace(id, startAt, in.Location)
	if err != nil {
		return model.Place{}, err
	}
	place = place.WithGrade(in.Grade)

	held, ok, err := heldDay(in.HeldTimes, in.HeldDayTimes)
	if err != nil {
		return model.Place{}, err
	}
	if ok {
		place = place.WithHeldDay(held)
	}
	return place, nil
}

// PlayerInput assigns a player number to a position
type PlayerInput struct {
	PositionNumber int `json:"positionNumber"`
	PlayerNumber   int `json:"playerNumber"`
}

// RaceInput is one element of a PUT /races body
type RaceInput struct {
	ID           string        `json:"id"`
	RaceType     string        `json:"raceType"`
	Name         string        `json:"name"`
	Stage        string        `json:"stage"`
	DateTime     string        `json:"dateTime"`
	Location     string        `json:"location"`
	Grade        string        `json:"grade"`
	Number       int           `json:"number"`
	HeldTimes    *int          `json:"heldTimes"`
	HeldDayTimes *int          `json:"heldDayTimes"`
	Players      []PlayerInput `json:"players"`
}

// ToModel decodes the identifier and builds a race. Number must agree with
// the race number inside the identifier.
func (in RaceInput) ToModel() (model.Race, error) {
	kind, err := model.ParseRaceKind(in.RaceType)
	if err != nil {
		return model.Race{}, err
	}
	id, err := model.ParseRaceID(kind, in.ID)
	if err != nil {
		return model.Race{}, err
	}
	if in.Number != int(id.Number()) {
		return model.Race{}, fmt.Errorf("%w: %s has race number %d, body says %d", model.ErrIDMismatch, id, id.Number(), in.Number)
	}
	startAt, err := civiltime.ParseAssumingCivil(in.DateTime)
	if err != nil {
		return model.Race{}, err
	}
	race, err := model.NewRace(id, in.Name, startAt)
	if err != nil {
		return model.Race{}, err
	}
	race = race.WithStage(in.Stage).WithLocation(in.Location).WithGrade(in.Grade)

	held, ok, err := heldDay(in.HeldTimes, in.HeldDayTimes)
	if err != nil {
		return model.Race{}, err
	}
	if ok {
		race = race.WithHeldDay(held)
	}

	if len(in.Players) == 0 {
		return race, nil
	}
	players := make([]model.RacePlayer, 0, len(in.Players))
	for _, p := range in.Players {
		pid, err := model.NewRacePlayerID(id, p.PositionNumber)
		if err != nil {
			return model.Race{}, err
		}
		player, err := model.NewRacePlayer(pid, p.PlayerNumber)
		if err != nil {
			return model.Race{}, err
		}
		players = append(players, player)
	}
	return race.WithPlayers(players...)
}

func heldDay(times, dayTimes *int) (model.HeldDay, bool, error) {
	if times == nil && dayTimes == nil {
		return model.HeldDay{}, false, nil
	}
	if times == nil || dayTimes == nil {
		return model.HeldDay{}, false, apierr.NewInvalidRequestError("heldTimes and heldDayTimes must be given together")
	}
	h, err := model.NewHeldDay(*times, *dayTimes)
	if err != nil {
		return model.HeldDay{}, false, err
	}
	return h, true, nil
}

// Places converts a PUT /places body, stopping at the first bad element
func Places(in []PlaceInput) ([]model.Place, error) {
	places := make([]model.Place, 0, len(in))
	for i, p := range in {
		place, err := p.ToModel()
		if err != nil {
			return nil, fmt.Errorf("places[%d]: %w", i, err)
		}
		places = append(places, place)
	}
	return places, nil
}

// Races converts a PUT /races body, stopping at the first bad element
func Races(in []RaceInput) ([]model.Race, error) {
	races := make([]model.Race, 0, len(in))
	for i, r := range in {
		race, err := r.ToModel()
		if err != nil {
			return nil, fmt.Errorf("races[%d]: %w", i, err)
		}
		races = append(races, race)
	}
	return races, nil
}
