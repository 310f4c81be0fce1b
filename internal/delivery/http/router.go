package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"eventboard/internal/delivery/http/controllers"
)

// NewRouter initializes the HTTP router with all application routes
func NewRouter(eventController *controllers.EventController, bookingController *controllers.BookingController, health http.Handler) *http.ServeMux {
	mux := http.NewServeMux()

	// API Routes
	mux.HandleFunc("POST /events", eventController.CreateEvent)
	mux.HandleFunc("GET /events", eventController.ListEvents)
	mux.HandleFunc("GET /events/{slug}", eventController.GetEventBySlug)
	mux.HandleFunc("GET /events/{slug}/similar", eventController.GetSimilarEvents)
	mux.HandleFunc("POST /bookings", bookingController.CreateBooking)

	// Health
	mux.Handle("GET /healthz", health)

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
