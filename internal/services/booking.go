package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"eventboard/internal/domain"
)

type bookingService struct {
	bookingRepo    domain.BookingRepository
	eventRepo      domain.EventRepository
	emailService   domain.EmailService
	contextTimeout time.Duration
}

// NewBookingService creates a BookingService. emailService may be nil to
// disable confirmation emails.
func NewBookingService(bookingRepo domain.BookingRepository,
	eventRepo domain.EventRepository,
	emailService domain.EmailService,
	timeout time.Duration,
) domain.BookingService {
	return &bookingService{
		bookingRepo:    bookingRepo,
		eventRepo:      eventRepo,
		emailService:   emailService,
		contextTimeout: timeout,
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, eventID, email string) (*domain.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	email = domain.NormalizeEmail(email)
	if !domain.ValidEmail(email) {
		return nil, domain.ErrInvalidEmail
	}

	// The reference is not a storage-level foreign key: verify the event
	// exists, strictly before the write.
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if err == domain.ErrNotFound {
			return nil, domain.ErrEventNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	now := time.Now()
	booking := domain.NewBooking(event.ID, email, now, now)
	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}

	// Confirmation mail is best effort and never fails the booking.
	if s.emailService != nil {
		data := &domain.BookingConfirmationEmailData{
			Email:      email,
			EventTitle: event.Title,
			EventDate:  event.Date,
			EventTime:  event.Time,
			Location:   event.Location,
		}
		if err := s.emailService.SendBookingConfirmation(ctx, data); err != nil {
			log.Printf("[BOOKING] Failed to send confirmation email to %s: %v", email, err)
		}
	}

	return booking, nil
}
