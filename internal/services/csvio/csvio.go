package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/taichi6930/race-schedule-api-sub006/internal/civiltime"
	"github.com/taichi6930/race-schedule-api-sub006/internal/model"
)

// Entity selects which table a CSV document holds.
type Entity string

const (
	EntityPlace Entity = "place"
	EntityRace  Entity = "race"
)

// ErrUnknownEntity is returned for an entity name other than place or race.
var ErrUnknownEntity = errors.New("unknown entity")

// ParseEntity accepts "place" or "race".
func ParseEntity(s string) (Entity, error) {
	switch Entity(s) {
	case EntityPlace, EntityRace:
		return Entity(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownEntity, s)
	}
}

var (
	placeColumns = []string{"id", "raceType", "dateTime", "location", "grade", "heldTimes", "heldDayTimes", "updateDate"}
	raceColumns  = []string{"id", "raceType", "name", "stage", "dateTime", "location", "grade", "number", "heldTimes", "heldDayTimes", "updateDate"}
)

// RowError locates a failure in the input. Line is 1-based and counts the
// header.
type RowError struct {
	Line int
	Err  error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// row maps column names to the values of one record.
type row map[string]string

func (r row) int(column string) (int, error) {
	v := strings.TrimSpace(r[column])
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not a number", column, v)
	}
	return n, nil
}

func (r row) heldDay() (model.HeldDay, bool, error) {
	if r["heldTimes"] == "" && r["heldDayTimes"] == "" {
		return model.HeldDay{}, false, nil
	}
	times, err := r.int("heldTimes")
	if err != nil {
		return model.HeldDay{}, false, err
	}
	dayTimes, err := r.int("heldDayTimes")
	if err != nil {
		return model.HeldDay{}, false, err
	}
	h, err := model.NewHeldDay(times, dayTimes)
	return h, err == nil, err
}

// readRows reads a header and the records below it. Every expected column
// must be present; extra columns are ignored.
func readRows(r io.Reader, columns []string, fn func(rec row) error) error {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return &RowError{Line: 1, Err: errors.New("missing header")}
	}
	if err != nil {
		return &RowError{Line: 1, Err: err}
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimPrefix(strings.TrimSpace(name), "\ufeff")] = i
	}
	for _, c := range columns {
		if _, ok := index[c]; !ok {
			return &RowError{Line: 1, Err: fmt.Errorf("missing column %q", c)}
		}
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				return &RowError{Line: parseErr.StartLine, Err: parseErr.Err}
			}
			return err
		}
		line, _ := reader.FieldPos(0)

		rec := make(row, len(columns))
		for _, c := range columns {
			if i := index[c]; i < len(record) {
				rec[c] = record[i]
			}
		}
		if err := fn(rec); err != nil {
			return &RowError{Line: line, Err: err}
		}
	}
}

// ReadPlaces parses a place CSV. Identifiers are decoded with the codec and
// must agree with the row's raceType and dateTime.
func ReadPlaces(r io.Reader) ([]model.Place, error) {
	var places []model.Place
	err := readRows(r, placeColumns, func(rec row) error {
		kind, err := model.ParseRaceKind(rec["raceType"])
		if err != nil {
			return err
		}
		id, err := model.ParsePlaceID(kind, rec["id"])
		if err != nil {
			return err
		}
		startAt, err := civiltime.ParseAssumingCivil(rec["dateTime"])
		if err != nil {
			return err
		}

		place, err := model.NewPlace(id, startAt, rec["location"])
		if err != nil {
			return err
		}
		place = place.WithGrade(rec["grade"])

		held, ok, err := rec.heldDay()
		if err != nil {
			return err
		}
		if ok {
			place = place.WithHeldDay(held)
		}
		places = append(places, place)
		return nil
	})
	return places, err
}

// ReadRaces parses a race CSV. The number column must match the race number
// inside the identifier.
func ReadRaces(r io.Reader) ([]model.Race, error) {
	var races []model.Race
	err := readRows(r, raceColumns, func(rec row) error {
		kind, err := model.ParseRaceKind(rec["raceType"])
		if err != nil {
			return err
		}
		id, err := model.ParseRaceID(kind, rec["id"])
		if err != nil {
			return err
		}
		number, err := rec.int("number")
		if err != nil {
			return err
		}
		if number != int(id.Number()) {
			return fmt.Errorf("%w: %s has race number %d, row says %d", model.ErrIDMismatch, id, id.Number(), number)
		}
		startAt, err := civiltime.ParseAssumingCivil(rec["dateTime"])
		if err != nil {
			return err
		}

		race, err := model.NewRace(id, rec["name"], startAt)
		if err != nil {
			return err
		}
		race = race.WithStage(rec["stage"]).WithLocation(rec["location"]).WithGrade(rec["grade"])

		held, ok, err := rec.heldDay()
		if err != nil {
			return err
		}
		if ok {
			race = race.WithHeldDay(held)
		}
		races = append(races, race)
		return nil
	})
	return races, err
}

func formatHeld(h model.HeldDay, ok bool) (string, string) {
	if !ok {
		return "", ""
	}
	return strconv.Itoa(int(h.Times())), strconv.Itoa(int(h.DayTimes()))
}

func formatInstant(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return civiltime.FormatStorage(t)
}

// WritePlaces writes places with storage-format datetimes.
func WritePlaces(w io.Writer, places []model.Place) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(placeColumns); err != nil {
		return err
	}
	for _, p := range places {
		times, dayTimes := formatHeld(p.HeldDay())
		if err := writer.Write([]string{
			p.ID().String(),
			p.Kind().String(),
			civiltime.FormatStorage(p.StartAt()),
			p.Location(),
			p.Grade(),
			times,
			dayTimes,
			formatInstant(p.UpdatedAt()),
		}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteRaces writes races with storage-format datetimes.
func WriteRaces(w io.Writer, races []model.Race) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(raceColumns); err != nil {
		return err
	}
	for _, r := range races {
		times, dayTimes := formatHeld(r.HeldDay())
		if err := writer.Write([]string{
			r.ID().String(),
			r.Kind().String(),
			r.Name(),
			r.Stage(),
			civiltime.FormatStorage(r.StartAt()),
			r.Location(),
			r.Grade(),
			strconv.Itoa(int(r.Number())),
			times,
			dayTimes,
			formatInstant(r.UpdatedAt()),
		}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
