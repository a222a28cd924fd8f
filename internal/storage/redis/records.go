package redis

import (
	"fmt"
	"time"

	json "github.com/goccy/go-json"

	"github.com/taichi6930/race-schedule-api-sub006/internal/civiltime"
	"github.com/taichi6930/race-schedule-api-sub006/internal/model"
)

// Records are the persisted form of the entities. Instants are stored as JST
// wall-clock strings and identifiers in their encoded form; both are parsed
// back through civiltime and the identifier codec when read.

type heldRecord struct {
	Times    int `json:"heldTimes"`
	DayTimes int `json:"heldDayTimes"`
}

type placeRecord struct {
	ID         string      `json:"id"`
	RaceType   string      `json:"raceType"`
	DateTime   string      `json:"dateTime"`
	Location   string      `json:"location,omitempty"`
	Grade      string      `json:"grade,omitempty"`
	Held       *heldRecord `json:"held,omitempty"`
	UpdateDate string      `json:"updateDate,omitempty"`
}

type playerRecord struct {
	ID           string `json:"id"`
	PlayerNumber int    `json:"playerNumber"`
}

type raceRecord struct {
	ID         string         `json:"id"`
	RaceType   string         `json:"raceType"`
	Name       string         `json:"name,omitempty"`
	Stage      string         `json:"stage,omitempty"`
	DateTime   string         `json:"dateTime"`
	Location   string         `json:"location,omitempty"`
	Grade      string         `json:"grade,omitempty"`
	Number     int            `json:"number"`
	Held       *heldRecord    `json:"held,omitempty"`
	Players    []playerRecord `json:"players,omitempty"`
	UpdateDate string         `json:"updateDate,omitempty"`
}

func heldToRecord(h model.HeldDay, ok bool) *heldRecord {
	if !ok {
		return nil
	}
	return &heldRecord{Times: int(h.Times()), DayTimes: int(h.DayTimes())}
}

func formatUpdated(p interface{ UpdatedAt() time.Time }) string {
	if p.UpdatedAt().IsZero() {
		return ""
	}
	return civiltime.FormatStorage(p.UpdatedAt())
}

func marshalPlace(p model.Place) ([]byte, error) {
	rec := placeRecord{
		ID:         p.ID().String(),
		RaceType:   p.Kind().String(),
		DateTime:   civiltime.FormatStorage(p.StartAt()),
		Location:   p.Location(),
		Grade:      p.Grade(),
		Held:       heldToRecord(p.HeldDay()),
		UpdateDate: formatUpdated(p),
	}
	return json.Marshal(rec)
}

func unmarshalPlace(data []byte) (model.Place, error) {
	var rec placeRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return model.Place{}, err
	}

	kind, err := model.ParseRaceKind(rec.RaceType)
	if err != nil {
		return model.Place{}, err
	}
	id, err := model.ParsePlaceID(kind, rec.ID)
	if err != nil {
		return model.Place{}, err
	}
	startAt, err := civiltime.ParseStorage(rec.DateTime)
	if err != nil {
		return model.Place{}, fmt.Errorf("place %s: %w", rec.ID, err)
	}

	place, err := model.NewPlace(id, startAt, rec.Location)
	if err != nil {
		return model.Place{}, err
	}
	place = place.WithGrade(rec.Grade)
	if rec.Held != nil {
		held, err := model.NewHeldDay(rec.Held.Times, rec.Held.DayTimes)
		if err != nil {
			return model.Place{}, err
		}
		place = place.WithHeldDay(held)
	}
	if rec.UpdateDate != "" {
		updated, err := civiltime.ParseStorage(rec.UpdateDate)
		if err != nil {
			return model.Place{}, fmt.Errorf("place %s: %w", rec.ID, err)
		}
		place = place.WithUpdatedAt(updated)
	}
	return place, nil
}

func marshalRace(r model.Race) ([]byte, error) {
	rec := raceRecord{
		ID:         r.ID().String(),
		RaceType:   r.Kind().String(),
		Name:       r.Name(),
		Stage:      r.Stage(),
		DateTime:   civiltime.FormatStorage(r.StartAt()),
		Location:   r.Location(),
		Grade:      r.Grade(),
		Number:     int(r.Number()),
		Held:       heldToRecord(r.HeldDay()),
		UpdateDate: formatUpdated(r),
	}
	for _, p := range r.Players() {
		rec.Players = append(rec.Players, playerRecord{ID: p.ID().String(), PlayerNumber: int(p.PlayerNumber())})
	}
	return json.Marshal(rec)
}

func unmarshalRace(data []byte) (model.Race, error) {
	var rec raceRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return model.Race{}, err
	}

	kind, err := model.ParseRaceKind(rec.RaceType)
	if err != nil {
		return model.Race{}, err
	}
	id, err := model.ParseRaceID(kind, rec.ID)
	if err != nil {
		return model.Race{}, err
	}
	if int(id.Number()) != rec.Number {
		return model.Race{}, fmt.Errorf("%w: race %s stored with number %d", model.ErrIDMismatch, rec.ID, rec.Number)
	}
	startAt, err := civiltime.ParseStorage(rec.DateTime)
	if err != nil {
		return model.Race{}, fmt.Errorf("race %s: %w", rec.ID, err)
	}

	race, err := model.NewRace(id, rec.Name, startAt)
	if err != nil {
		return model.Race{}, err
	}
	race = race.WithStage(rec.Stage).WithGrade(rec.Grade).WithLocation(rec.Location)
	if rec.Held != nil {
		held, err := model.NewHeldDay(rec.Held.Times, rec.Held.DayTimes)
		if err != nil {
			return model.Race{}, err
		}
		race = race.WithHeldDay(held)
	}

	if len(rec.Players) > 0 {
		players := make([]model.RacePlayer, 0, len(rec.Players))
		for _, pr := range rec.Players {
			playerID, err := model.ParseRacePlayerID(kind, pr.ID)
			if err != nil {
				return model.Race{}, err
			}
			player, err := model.NewRacePlayer(playerID, pr.PlayerNumber)
			if err != nil {
				return model.Race{}, err
			}
			players = append(players, player)
		}
		race, err = race.WithPlayers(players...)
		if err != nil {
			return model.Race{}, err
		}
	}

	if rec.UpdateDate != "" {
		updated, err := civiltime.ParseStorage(rec.UpdateDate)
		if err != nil {
			return model.Race{}, fmt.Errorf("race %s: %w", rec.ID, err)
		}
		race = race.WithUpdatedAt(updated)
	}
	return race, nil
}
