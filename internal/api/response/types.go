package response

import (
	"time"

	"github.com/taichi6930/race-schedule-api-sub006/internal/civiltime"
	"github.com/taichi6930/race-schedule-api-sub006/internal/model"
)

// Instants in responses are ISO-8601 with the +09:00 offset.

func isoOrEmpty(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return civiltime.FormatISO(t)
}

func heldFromModel(h model.HeldDay, ok bool) (*int, *int) {
	if !ok {
		return nil, nil
	}
	times, dayTimes := int(h.Times()), int(h.DayTimes())
	return &times, &dayTimes
}

// Place represents a place in API responses
type Place struct {
	ID           string `json:"id"`
	RaceType     string `json:"raceType"`
	DateTime     string `json:"dateTime"`
	Location     string `json:"location"`
	Grade        string `json:"grade,omitempty"`
	HeldTimes    *int   `json:"heldTimes,omitempty"`
	HeldDayTimes *int   `json:"heldDayTimes,omitempty"`
	UpdateDate   string `json:"updateDate,omitempty"`
}

// PlaceFromModel converts a model.Place to a response Place
func PlaceFromModel(p model.Place) Place {
	times, dayTimes := heldFromModel(p.HeldDay())
	return Place{
		ID:           p.ID().String(),
		RaceType:     p.Kind().String(),
		DateTime:     civiltime.FormatISO(p.StartAt()),
		Location:     p.Location(),
		Grade:        p.Grade(),
		HeldTimes:    times,
		HeldDayTimes: dayTimes,
		UpdateDate:   isoOrEmpty(p.UpdatedAt()),
	}
}

// PlaceList is the response for place searches
type PlaceList struct {
	Count  int     `json:"count"`
	Places []Place `json:"places"`
}

// PlaceListFromModel converts places, keeping an empty list as []
func PlaceListFromModel(places []model.Place) PlaceList {
	out := make([]Place, len(places))
	for i, p := range places {
		out[i] = PlaceFromModel(p)
	}
	return PlaceList{Count: len(out), Places: out}
}

// RacePlayer represents a participant in API responses
type RacePlayer struct {
	ID             string `json:"id"`
	PositionNumber int    `json:"positionNumber"`
	PlayerNumber   int    `json:"playerNumber"`
}

// Race represents a race in API responses
type Race struct {
	ID           string       `json:"id"`
	PlaceID      string       `json:"placeId"`
	RaceType     string       `json:"raceType"`
	Name         string       `json:"name"`
	Stage        string       `json:"stage,omitempty"`
	DateTime     string       `json:"dateTime"`
	Location     string       `json:"location"`
	Grade        string       `json:"grade,omitempty"`
	Number       int          `json:"number"`
	HeldTimes    *int         `json:"heldTimes,omitempty"`
	HeldDayTimes *int         `json:"heldDayTimes,omitempty"`
	Players      []RacePlayer `json:"players,omitempty"`
	UpdateDate   string       `json:"updateDate,omitempty"`
}

// RaceFromModel converts a model.Race to a response Race
func RaceFromModel(r model.Race) Race {
	times, dayTimes := heldFromModel(r.HeldDay())

	var players []RacePlayer
	for _, p := range r.Players() {
		players = append(players, RacePlayer{
			ID:             p.ID().String(),
			PositionNumber: int(p.Position()),
			PlayerNumber:   int(p.PlayerNumber()),
		})
	}

	return Race{
		ID:           r.ID().String(),
		PlaceID:      r.PlaceID().String(),
		RaceType:     r.Kind().String(),
		Name:         r.Name(),
		Stage:        r.Stage(),
		DateTime:     civiltime.FormatISO(r.StartAt()),
		Location:     r.Location(),
		Grade:        r.Grade(),
		Number:       int(r.Number()),
		HeldTimes:    times,
		HeldDayTimes: dayTimes,
		Players:      players,
		UpdateDate:   isoOrEmpty(r.UpdatedAt()),
	}
}

// RaceList is the response for race searches
type RaceList struct {
	Count int    `json:"count"`
	Races []Race `json:"races"`
}

// RaceListFromModel converts races, keeping an empty list as []
func RaceListFromModel(races []model.Race) RaceList {
	out := make([]Race, len(races))
	for i, r := range races {
		out[i] = RaceFromModel(r)
	}
	return RaceList{Count: len(out), Races: out}
}

// Identifier is a decoded identifier
type Identifier struct {
	ID             string `json:"id"`
	RaceType       string `json:"raceType"`
	Shape          string `json:"shape"`
	Date           string `json:"date"`
	VenueCode      int    `json:"venueCode"`
	RaceNumber     int    `json:"raceNumber,omitempty"`
	PositionNumber int    `json:"positionNumber,omitempty"`
}

// IdentifierFromComponents converts decoded components
func IdentifierFromComponents(id string, c model.Components) Identifier {
	return Identifier{
		ID:             id,
		RaceType:       c.Kind.String(),
		Shape:          c.Shape().String(),
		Date:           c.Date.String(),
		VenueCode:      int(c.Venue),
		RaceNumber:     int(c.Race),
		PositionNumber: int(c.Position),
	}
}

// ImportResult is the response for CSV imports
type ImportResult struct {
	Entity   string `json:"entity"`
	Imported int    `json:"imported"`
}

// WriteResult is the response for PUT endpoints
type WriteResult struct {
	Saved int `json:"saved"`
}
