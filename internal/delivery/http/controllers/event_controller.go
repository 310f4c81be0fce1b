package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"eventboard/internal/delivery/http/helpers"
	"eventboard/internal/domain"
)

// maxUploadSize bounds the multipart form, image included.
const maxUploadSize = 10 << 20 // 10 MiB

// eventFormFields is the set of accepted multipart value fields for POST /events.
// Anything else in the form is rejected rather than passed through.
var eventFormFields = map[string]struct{}{
	"slug": {}, "title": {}, "description": {}, "overview": {}, "organizer": {},
	"location": {}, "mode": {}, "audience": {}, "date": {}, "time": {},
	"tags": {}, "agenda": {},
}

type EventController struct {
	Logger  *slog.Logger
	Service domain.EventService
}

func NewEventController(logger *slog.Logger, svc domain.EventService) *EventController {
	return &EventController{
		Logger:  logger,
		Service: svc,
	}
}

// EventSuccessResponse is the success response envelope for single-event endpoints.
type EventSuccessResponse struct {
	Data  *domain.Event     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// EventListSuccessResponse is the success response envelope for event list endpoints.
type EventListSuccessResponse struct {
	Data  []*domain.Event   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// CreateEvent godoc
// @Summary Create a new event
// @Description Create a new event from a multipart form. Scalar fields are plain values; tags and agenda are JSON-encoded string arrays; image is a required binary part. id, image URL, and timestamps are server-generated.
// @Tags events
// @Accept multipart/form-data
// @Produce json
// @Param slug formData string true "Unique slug (normalized to trimmed lowercase)"
// @Param title formData string true "Event title"
// @Param tags formData string false "JSON-encoded array of tags"
// @Param agenda formData string false "JSON-encoded array of agenda items"
// @Param image formData file true "Event image"
// @Success 201 {object} controllers.EventSuccessResponse "data contains the created event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (duplicate slug)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid multipart form")
		return
	}
	for field := range r.MultipartForm.Value {
		if _, ok := eventFormFields[field]; !ok {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, fmt.Sprintf("unknown field %q", field))
			return
		}
	}

	in := domain.CreateEventInput{
		Slug:        r.FormValue("slug"),
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Overview:    r.FormValue("overview"),
		Organizer:   r.FormValue("organizer"),
		Location:    r.FormValue("location"),
		Mode:        r.FormValue("mode"),
		Audience:    r.FormValue("audience"),
		Date:        r.FormValue("date"),
		Time:        r.FormValue("time"),
	}
	if raw := r.FormValue("tags"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &in.Tags); err != nil {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "tags must be a JSON-encoded array of strings")
			return
		}
	}
	if raw := r.FormValue("agenda"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &in.Agenda); err != nil {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "agenda must be a JSON-encoded array of strings")
			return
		}
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "image is required")
		return
	}
	defer file.Close()
	in.ImageData, err = io.ReadAll(file)
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "could not read image")
		return
	}

	event, err := c.Service.CreateEvent(r.Context(), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		if errors.Is(err, domain.ErrDuplicateSlug) {
			helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, "an event with this slug already exists")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "event creation failed")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, event)
}

// ListEvents godoc
// @Summary List all events
// @Description Returns all events ordered newest first.
// @Tags events
// @Produce json
// @Success 200 {object} controllers.EventListSuccessResponse
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [get]
func (c *EventController) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := c.Service.ListEvents(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "could not list events")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, events)
}

// GetEventBySlug godoc
// @Summary Get an event by slug
// @Description Returns the event with the given slug. Lookup is case- and whitespace-insensitive.
// @Tags events
// @Produce json
// @Param slug path string true "Event slug"
// @Success 200 {object} controllers.EventSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{slug} [get]
func (c *EventController) GetEventBySlug(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	event, err := c.Service.GetEventBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid or missing slug")
			return
		}
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, fmt.Sprintf("event with slug %q not found", slug))
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "could not fetch event")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// GetSimilarEvents godoc
// @Summary List events similar to the given one
// @Description Returns events sharing at least one tag with the event identified by slug, newest first, never including the source event. Always responds 200; failures degrade to an empty list.
// @Tags events
// @Produce json
// @Param slug path string true "Event slug"
// @Success 200 {object} controllers.EventListSuccessResponse
// @Router /events/{slug}/similar [get]
func (c *EventController) GetSimilarEvents(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	helpers.WriteJSONSuccess(w, http.StatusOK, c.Service.GetSimilarEvents(r.Context(), slug))
}
