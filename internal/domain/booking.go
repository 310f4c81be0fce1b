package domain

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"
)

// Sentinel errors for booking operations.
var (
	ErrInvalidEmail  = errors.New("invalid email format")
	ErrEventNotFound = errors.New("referenced event does not exist")
)

// emailRegex matches a simple email format: non-whitespace local part and
// domain around exactly one @, with at least one dot in the domain.
var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Booking represents a registration of interest tying an email to an event.
// swagger:model Booking
type Booking struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewBooking returns a new Booking with the given fields. ID is typically set by the repository on create.
func NewBooking(eventID, email string, createdAt, updatedAt time.Time) *Booking {
	return &Booking{
		EventID:   eventID,
		Email:     email,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// NormalizeEmail returns the canonical form of an email address: surrounding
// whitespace removed and lowercased. Applied before validation and storage.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidEmail reports whether email (already normalized) has a local@domain
// shape with a dot in the domain part.
func ValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// BookingRepository defines storage operations for bookings.
type BookingRepository interface {
	Create(ctx context.Context, booking *Booking) error
}

// BookingService defines the booking-facing business operations.
type BookingService interface {
	// CreateBooking validates the email, verifies the event exists, and
	// persists the booking. The existence check strictly precedes the write.
	CreateBooking(ctx context.Context, eventID, email string) (*Booking, error)
}
