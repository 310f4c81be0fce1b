package domain

import (
	"context"
	"errors"
	"strings"
	"time"
)

// Sentinel errors for event operations.
var (
	ErrNotFound      = errors.New("not found")
	ErrInvalidInput  = errors.New("invalid input")
	ErrDuplicateSlug = errors.New("slug already in use")
)

// Event represents a listed event (hackathon, meetup, conference).
// swagger:model Event
type Event struct {
	ID          string    `json:"id"`
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Overview    string    `json:"overview"`
	Organizer   string    `json:"organizer"`
	Location    string    `json:"location"`
	Mode        string    `json:"mode"`
	Audience    string    `json:"audience"`
	Date        string    `json:"date"`
	Time        string    `json:"time"`
	Image       string    `json:"image"`
	Tags        []string  `json:"tags"`
	Agenda      []string  `json:"agenda"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NormalizeSlug returns the canonical form of a slug: surrounding whitespace
// removed and lowercased. Writes and lookups must use the same form so they agree.
func NormalizeSlug(slug string) string {
	return strings.ToLower(strings.TrimSpace(slug))
}

// EventRepository defines the interface for event storage
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	GetBySlug(ctx context.Context, slug string) (*Event, error)
	// List returns all events ordered by created_at descending (newest first).
	List(ctx context.Context) ([]*Event, error)
	// ListSimilarByTags returns events other than sourceID whose tags share at
	// least one element with tags, ordered by created_at descending.
	ListSimilarByTags(ctx context.Context, sourceID string, tags []string) ([]*Event, error)
}

// CreateEventInput carries the caller-supplied fields for a new event. The
// image arrives as raw bytes and is exchanged for a URL via the media uploader
// before the event is persisted. Unknown form fields are rejected upstream.
type CreateEventInput struct {
	Slug        string
	Title       string
	Description string
	Overview    string
	Organizer   string
	Location    string
	Mode        string
	Audience    string
	Date        string
	Time        string
	Tags        []string
	Agenda      []string
	ImageData   []byte
}

// EventService defines the event-facing business operations.
type EventService interface {
	CreateEvent(ctx context.Context, in CreateEventInput) (*Event, error)
	GetEventBySlug(ctx context.Context, slug string) (*Event, error)
	ListEvents(ctx context.Context) ([]*Event, error)
	// GetSimilarEvents is fail-soft: it never returns an error. Any failure,
	// including an unknown slug, yields an empty slice.
	GetSimilarEvents(ctx context.Context, slug string) []*Event
}
