package model

import (
	"fmt"
	"slices"
	"time"

	"github.com/taichi6930/race-schedule-api-sub006/internal/civiltime"
)

// RacePlayer assigns a registered player to a starting position.
type RacePlayer struct {
	id     RacePlayerID
	number PlayerNumber
}

// NewRacePlayer validates the player number against its bound.
func NewRacePlayer(id RacePlayerID, playerNumber int) (RacePlayer, error) {
	if id.IsZero() {
		return RacePlayer{}, fmt.Errorf("%w: empty race player id", ErrIDMismatch)
	}
	n, err := NewPlayerNumber(playerNumber)
	if err != nil {
		return RacePlayer{}, err
	}
	return RacePlayer{id: id, number: n}, nil
}

func (p RacePlayer) ID() RacePlayerID         { return p.id }
func (p RacePlayer) Position() PositionNumber { return p.id.position }
func (p RacePlayer) PlayerNumber() PlayerNumber {
	return p.number
}

// Race is a single race on a place-day. Values are immutable; the With
// methods return modified copies.
type Race struct {
	id        RaceID
	name      string
	stage     string
	grade     string
	location  string
	startAt   time.Time
	held      *HeldDay
	players   []RacePlayer
	updatedAt time.Time
}

// NewRace builds a race whose start falls on the identifier's JST date.
func NewRace(id RaceID, name string, startAt time.Time) (Race, error) {
	if id.IsZero() {
		return Race{}, fmt.Errorf("%w: empty race id", ErrIDMismatch)
	}
	if got := civiltime.DateOf(startAt); got != id.Date() {
		return Race{}, fmt.Errorf("%w: race %s starts on %s", ErrIDMismatch, id, got)
	}
	return Race{
		id:      id,
		name:    name,
		startAt: civiltime.Normalize(startAt),
	}, nil
}

func (r Race) ID() RaceID           { return r.id }
func (r Race) PlaceID() PlaceID     { return r.id.place }
func (r Race) Kind() RaceKind       { return r.id.Kind() }
func (r Race) Number() RaceNumber   { return r.id.number }
func (r Race) Name() string         { return r.name }
func (r Race) Stage() string        { return r.stage }
func (r Race) Grade() string        { return r.grade }
func (r Race) Location() string     { return r.location }
func (r Race) StartAt() time.Time   { return r.startAt }
func (r Race) UpdatedAt() time.Time { return r.updatedAt }

func (r Race) HeldDay() (HeldDay, bool) {
	if r.held == nil {
		return HeldDay{}, false
	}
	return *r.held, true
}

// Players returns the participants ordered by position.
func (r Race) Players() []RacePlayer {
	return slices.Clone(r.players)
}

func (r Race) WithStage(stage string) Race {
	r.stage = stage
	return r
}

func (r Race) WithGrade(grade string) Race {
	r.grade = grade
	return r
}

func (r Race) WithLocation(location string) Race {
	r.location = location
	return r
}

// WithHeldDay sets the meeting counters. The zero HeldDay clears them.
func (r Race) WithHeldDay(h HeldDay) Race {
	r.held = heldPtr(h)
	return r
}

func (r Race) WithUpdatedAt(t time.Time) Race {
	r.updatedAt = civiltime.Normalize(t)
	return r
}

// WithPlayers replaces the participant list. Every player must belong to
// this race and positions must be unique.
func (r Race) WithPlayers(players ...RacePlayer) (Race, error) {
	seen := make(map[PositionNumber]struct{}, len(players))
	for _, p := range players {
		if p.id.race != r.id {
			return Race{}, fmt.Errorf("%w: player %s is not in race %s", ErrIDMismatch, p.id, r.id)
		}
		if _, dup := seen[p.id.position]; dup {
			return Race{}, fmt.Errorf("%w: %d in race %s", ErrDuplicatePosition, p.id.position, r.id)
		}
		seen[p.id.position] = struct{}{}
	}

	sorted := slices.Clone(players)
	slices.SortFunc(sorted, func(a, b RacePlayer) int {
		return int(a.id.position) - int(b.id.position)
	})
	r.players = sorted
	return r, nil
}

// Equal reports structural equality, comparing instants by Equal.
func (r Race) Equal(other Race) bool {
	rh, rok := r.HeldDay()
	oh, ook := other.HeldDay()
	return r.id == other.id &&
		r.name == other.name &&
		r.stage == other.stage &&
		r.grade == other.grade &&
		r.location == other.location &&
		r.startAt.Equal(other.startAt) &&
		rok == ook && rh == oh &&
		slices.Equal(r.players, other.players) &&
		r.updatedAt.Equal(other.updatedAt)
}
