package services

import (
	"context"
	"fmt"
	"time"

	"eventboard/internal/domain"
)

// eventImageFolder is the folder prefix for uploaded event images.
const eventImageFolder = "events"

type eventService struct {
	eventRepo      domain.EventRepository
	uploader       domain.MediaUploader
	contextTimeout time.Duration
}

func NewEventService(eventRepo domain.EventRepository,
	uploader domain.MediaUploader,
	timeout time.Duration,
) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		uploader:       uploader,
		contextTimeout: timeout,
	}
}

func (s *eventService) CreateEvent(ctx context.Context, in domain.CreateEventInput) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	slug := domain.NormalizeSlug(in.Slug)
	if slug == "" {
		return nil, fmt.Errorf("%w: slug is required", domain.ErrInvalidInput)
	}
	if in.Title == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	if len(in.ImageData) == 0 {
		return nil, fmt.Errorf("%w: image is required", domain.ErrInvalidInput)
	}

	imageURL, err := s.uploader.Upload(ctx, in.ImageData, eventImageFolder)
	if err != nil {
		return nil, fmt.Errorf("upload event image: %w", err)
	}

	now := time.Now()
	event := &domain.Event{
		Slug:        slug,
		Title:       in.Title,
		Description: in.Description,
		Overview:    in.Overview,
		Organizer:   in.Organizer,
		Location:    in.Location,
		Mode:        in.Mode,
		Audience:    in.Audience,
		Date:        in.Date,
		Time:        in.Time,
		Image:       imageURL,
		Tags:        in.Tags,
		Agenda:      in.Agenda,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		if err == domain.ErrDuplicateSlug {
			return nil, domain.ErrDuplicateSlug
		}
		return nil, fmt.Errorf("create event: %w", err)
	}
	return event, nil
}

func (s *eventService) GetEventBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if domain.NormalizeSlug(slug) == "" {
		return nil, fmt.Errorf("%w: slug is required", domain.ErrInvalidInput)
	}
	event, err := s.eventRepo.GetBySlug(ctx, slug)
	if err != nil {
		if err == domain.ErrNotFound {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event by slug: %w", err)
	}
	return event, nil
}

func (s *eventService) ListEvents(ctx context.Context) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.eventRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

// GetSimilarEvents never surfaces an error: "no similar events" is an
// acceptable degraded result, so every failure path returns an empty slice.
func (s *eventService) GetSimilarEvents(ctx context.Context, slug string) []*domain.Event {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	source, err := s.eventRepo.GetBySlug(ctx, slug)
	if err != nil {
		return []*domain.Event{}
	}
	similar, err := s.eventRepo.ListSimilarByTags(ctx, source.ID, source.Tags)
	if err != nil || similar == nil {
		return []*domain.Event{}
	}
	return similar
}
