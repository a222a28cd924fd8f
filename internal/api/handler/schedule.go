package handler

import (
	"fmt"
	"net/http"

	json "github.com/goccy/go-json"
	"github.com/gorilla/mux"

	"github.com/taichi6930/race-schedule-api-sub006/internal/api/apierr"
	"github.com/taichi6930/race-schedule-api-sub006/internal/api/request"
	"github.com/taichi6930/race-schedule-api-sub006/internal/api/response"
	"github.com/taichi6930/race-schedule-api-sub006/internal/metrics"
	"github.com/taichi6930/race-schedule-api-sub006/internal/model"
	"github.com/taichi6930/race-schedule-api-sub006/internal/services/schedule"
)

// ScheduleHandler handles place and race endpoints
type ScheduleHandler struct {
	schedule *schedule.Service
	metrics  *metrics.Metrics
	errors   errorWriter
}

// NewScheduleHandler creates a new schedule handler
func NewScheduleHandler(schedule *schedule.Service, m *metrics.Metrics) *ScheduleHandler {
	return &ScheduleHandler{
		schedule: schedule,
		metrics:  m,
		errors:   errorWriter{metrics: m},
	}
}

// idOfShape decodes the {id} path variable and requires the given shape
func idOfShape(r *http.Request, shape model.Shape) (model.Components, error) {
	id := mux.Vars(r)["id"]
	c, err := model.ParseAnyID(id)
	if err != nil {
		return model.Components{}, err
	}
	if c.Shape() != shape {
		return model.Components{}, &model.IdentifierFormatError{
			Kind:   c.Kind,
			Input:  id,
			Reason: fmt.Sprintf("is a %s identifier, want %s", c.Shape(), shape),
		}
	}
	return c, nil
}

// ListPlaces handles GET /api/v1/places
func (h *ScheduleHandler) ListPlaces(w http.ResponseWriter, r *http.Request) {
	params, err := request.ParseSearchQuery(r.URL.Query())
	if err != nil {
		h.errors.write(w, err)
		return
	}

	places, err := h.schedule.FetchPlaces(r.Context(), params)
	if err != nil {
		h.errors.write(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlaceListFromModel(places))
}

// placeIDVar decodes the {id} path variable as a place identifier
func placeIDVar(r *http.Request) (model.PlaceID, error) {
	c, err := idOfShape(r, model.ShapePlace)
	if err != nil {
		return model.PlaceID{}, err
	}
	return model.NewPlaceID(c.Kind, c.Date, int(c.Venue))
}

// raceIDVar decodes the {id} path variable as a race identifier
func raceIDVar(r *http.Request) (model.RaceID, error) {
	c, err := idOfShape(r, model.ShapeRace)
	if err != nil {
		return model.RaceID{}, err
	}
	placeID, err := model.NewPlaceID(c.Kind, c.Date, int(c.Venue))
	if err != nil {
		return model.RaceID{}, err
	}
	return model.NewRaceID(placeID, int(c.Race))
}

// GetPlace handles GET /api/v1/places/{id}
func (h *ScheduleHandler) GetPlace(w http.ResponseWriter, r *http.Request) {
	id, err := placeIDVar(r)
	if err != nil {
		h.errors.write(w, err)
		return
	}

	place, err := h.schedule.GetPlace(r.Context(), id)
	if err != nil {
		h.errors.write(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlaceFromModel(place))
}

// PutPlaces handles PUT /api/v1/places
func (h *ScheduleHandler) PutPlaces(w http.ResponseWriter, r *http.Request) {
	var body []request.PlaceInput
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.errors.write(w, apierr.NewInvalidRequestError("Invalid request body"))
		return
	}

	places, err := request.Places(body)
	if err != nil {
		h.errors.write(w, err)
		return
	}

	saved, err := h.schedule.UpsertPlaces(r.Context(), places)
	if err != nil {
		h.errors.write(w, err)
		return
	}
	h.metrics.AddRowsWritten(model.ShapePlace.String(), len(saved))

	response.JSON(w, http.StatusOK, response.WriteResult{Saved: len(saved)})
}

// ListRaces handles GET /api/v1/races
func (h *ScheduleHandler) ListRaces(w http.ResponseWriter, r *http.Request) {
	params, err := request.ParseSearchQuery(r.URL.Query())
	if err != nil {
		h.errors.write(w, err)
		return
	}

	races, err := h.schedule.FetchRaces(r.Context(), params)
	if err != nil {
		h.errors.write(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RaceListFromModel(races))
}

// GetRace handles GET /api/v1/races/{id}
func (h *ScheduleHandler) GetRace(w http.ResponseWriter, r *http.Request) {
	id, err := raceIDVar(r)
	if err != nil {
		h.errors.write(w, err)
		return
	}

	race, err := h.schedule.GetRace(r.Context(), id)
	if err != nil {
		h.errors.write(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RaceFromModel(race))
}

// PutRaces handles PUT /api/v1/races
func (h *ScheduleHandler) PutRaces(w http.ResponseWriter, r *http.Request) {
	var body []request.RaceInput
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.errors.write(w, apierr.NewInvalidRequestError("Invalid request body"))
		return
	}

	races, err := request.Races(body)
	if err != nil {
		h.errors.write(w, err)
		return
	}

	saved, err := h.schedule.UpsertRaces(r.Context(), races)
	if err != nil {
		h.errors.write(w, err)
		return
	}
	h.metrics.AddRowsWritten(model.ShapeRace.String(), len(saved))

	response.JSON(w, http.StatusOK, response.WriteResult{Saved: len(saved)})
}

// DeletePlace handles DELETE /api/v1/places/{id}. The place's races go too.
func (h *ScheduleHandler) DeletePlace(w http.ResponseWriter, r *http.Request) {
	id, err := placeIDVar(r)
	if err != nil {
		h.errors.write(w, err)
		return
	}

	if _, err := h.schedule.DeletePlace(r.Context(), id); err != nil {
		h.errors.write(w, err)
		return
	}

	response.NoContent(w)
}

// DeleteRace handles DELETE /api/v1/races/{id}
func (h *ScheduleHandler) DeleteRace(w http.ResponseWriter, r *http.Request) {
	id, err := raceIDVar(r)
	if err != nil {
		h.errors.write(w, err)
		return
	}

	if err := h.schedule.DeleteRace(r.Context(), id); err != nil {
		h.errors.write(w, err)
		return
	}

	response.NoContent(w)
}
