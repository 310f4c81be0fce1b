package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"eventboard/internal/delivery/http/helpers"
	"eventboard/internal/domain"
)

type BookingController struct {
	Logger  *slog.Logger
	Service domain.BookingService
}

func NewBookingController(logger *slog.Logger, svc domain.BookingService) *BookingController {
	return &BookingController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateBookingRequest is the request body for POST /bookings.
type CreateBookingRequest struct {
	EventID string `json:"event_id"`
	Email   string `json:"email"`
}

// Validate implements helpers.Validator.
func (r *CreateBookingRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(r.EventID) == "" {
		errs = append(errs, "event_id is required")
	}
	if strings.TrimSpace(r.Email) == "" {
		errs = append(errs, "email is required")
	}
	return errs
}

// CreateBookingSuccessResponse is the success response envelope for POST /bookings (201).
type CreateBookingSuccessResponse struct {
	Data  *domain.Booking   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// CreateBooking godoc
// @Summary Register interest in an event
// @Description Creates a booking tying an email to an event. The email is trimmed and lowercased before validation and storage; the event must exist at write time.
// @Tags bookings
// @Accept json
// @Produce json
// @Param booking body CreateBookingRequest true "Booking data"
// @Success 201 {object} controllers.CreateBookingSuccessResponse "data contains the created booking"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (malformed body or invalid email)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (event does not exist)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /bookings [post]
func (c *BookingController) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	booking, err := c.Service.CreateBooking(r.Context(), req.EventID, req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidEmail) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid email format")
			return
		}
		if errors.Is(err, domain.ErrEventNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "booking creation failed")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, booking)
}
