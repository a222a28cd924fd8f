package cli

import (
	"fmt"
	"io"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/taichi6930/race-schedule-api-sub006/internal/api/handler"
	"github.com/taichi6930/race-schedule-api-sub006/internal/api/response"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter writing to w
func NewOutput(format string, w io.Writer) *Output {
	return &Output{format: format, w: w}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(o.w, string(data))
	} else {
		fmt.Fprintf(o.w, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Fprintln(o.w, string(data))
	} else {
		fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case response.Place:
		o.printPlace(v)
	case response.PlaceList:
		o.printPlaceList(v)
	case response.Race:
		o.printRace(v)
	case response.RaceList:
		o.printRaceList(v)
	case response.Identifier:
		o.printIdentifier(v)
	case response.ImportResult:
		fmt.Fprintf(o.w, "Imported %d %s rows\n", v.Imported, v.Entity)
	case handler.HealthResponse:
		o.printHealth(v)
	case IDResult:
		fmt.Fprintln(o.w, v.ID)
	case TimeResult:
		fmt.Fprintln(o.w, v.Formatted)
	case DeleteResult:
		fmt.Fprintf(o.w, "Deleted %s %s\n", v.Entity, v.ID)
	case APIKeyResult:
		fmt.Fprintf(o.w, "Key:  %s\n", v.Key)
		fmt.Fprintf(o.w, "Hash: %s\n", v.Hash)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// IDResult is the output of id encode
type IDResult struct {
	ID string `json:"id"`
}

// TimeResult is the output of the time commands
type TimeResult struct {
	Input     string `json:"input"`
	Formatted string `json:"formatted"`
}

// DeleteResult is the output of places delete and races delete
type DeleteResult struct {
	Entity string `json:"entity"`
	ID     string `json:"id"`
}

// APIKeyResult is the output of apikey generate
type APIKeyResult struct {
	Key  string `json:"key"`
	Hash string `json:"hash"`
}

func held(times, dayTimes *int) string {
	if times == nil || dayTimes == nil {
		return ""
	}
	return fmt.Sprintf(" (meeting %d, day %d)", *times, *dayTimes)
}

func (o *Output) printPlace(p response.Place) {
	fmt.Fprintf(o.w, "Place: %s\n", p.ID)
	fmt.Fprintf(o.w, "Type: %s\n", p.RaceType)
	fmt.Fprintf(o.w, "Start: %s\n", p.DateTime)
	fmt.Fprintf(o.w, "Location: %s%s\n", p.Location, held(p.HeldTimes, p.HeldDayTimes))
	if p.Grade != "" {
		fmt.Fprintf(o.w, "Grade: %s\n", p.Grade)
	}
}

func (o *Output) printPlaceList(l response.PlaceList) {
	fmt.Fprintf(o.w, "Places (%d):\n", l.Count)
	for _, p := range l.Places {
		fmt.Fprintf(o.w, "  %s  %s  %s%s\n", p.DateTime, p.ID, p.Location, held(p.HeldTimes, p.HeldDayTimes))
	}
}

func (o *Output) printRace(r response.Race) {
	fmt.Fprintf(o.w, "Race: %s\n", r.ID)
	fmt.Fprintf(o.w, "Place: %s\n", r.PlaceID)
	fmt.Fprintf(o.w, "Number: %d\n", r.Number)
	if r.Name != "" {
		fmt.Fprintf(o.w, "Name: %s\n", r.Name)
	}
	if r.Stage != "" {
		fmt.Fprintf(o.w, "Stage: %s\n", r.Stage)
	}
	fmt.Fprintf(o.w, "Start: %s\n", r.DateTime)
	fmt.Fprintf(o.w, "Location: %s%s\n", r.Location, held(r.HeldTimes, r.HeldDayTimes))
	if len(r.Players) > 0 {
		fmt.Fprintf(o.w, "Players (%d):\n", len(r.Players))
		for _, p := range r.Players {
			fmt.Fprintf(o.w, "  %d: %d\n", p.PositionNumber, p.PlayerNumber)
		}
	}
}

func (o *Output) printRaceList(l response.RaceList) {
	fmt.Fprintf(o.w, "Races (%d):\n", l.Count)
	for _, r := range l.Races {
		name := strings.TrimSpace(r.Name + " " + r.Stage)
		fmt.Fprintf(o.w, "  %s  %s  R%d %s\n", r.DateTime, r.ID, r.Number, name)
	}
}

func (o *Output) printIdentifier(i response.Identifier) {
	fmt.Fprintf(o.w, "Identifier: %s\n", i.ID)
	fmt.Fprintf(o.w, "Type: %s\n", i.RaceType)
	fmt.Fprintf(o.w, "Shape: %s\n", i.Shape)
	fmt.Fprintf(o.w, "Date: %s\n", i.Date)
	fmt.Fprintf(o.w, "Venue: %d\n", i.VenueCode)
	if i.RaceNumber != 0 {
		fmt.Fprintf(o.w, "Race: %d\n", i.RaceNumber)
	}
	if i.PositionNumber != 0 {
		fmt.Fprintf(o.w, "Position: %d\n", i.PositionNumber)
	}
}

func (o *Output) printHealth(h handler.HealthResponse) {
	fmt.Fprintf(o.w, "Status: %s\n", h.Status)
	fmt.Fprintf(o.w, "Writes enabled: %t\n", h.Writes)
}
