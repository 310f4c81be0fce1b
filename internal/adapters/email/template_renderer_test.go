package email

import (
	"testing"

	"eventboard/internal/domain"

	"github.com/stretchr/testify/require"
)

func TestTemplateRenderer_BookingConfirmation(t *testing.T) {
	r := NewTemplateRenderer()
	data := &domain.BookingConfirmationEmailData{
		Email:      "user@example.com",
		EventTitle: "GopherCon",
		EventDate:  "2025-10-01",
		EventTime:  "09:00",
		Location:   "Berlin",
	}

	subject, html, text, err := r.Render("booking_confirmation", data)
	require.NoError(t, err)
	require.Equal(t, "You're booked for GopherCon", subject)
	require.Contains(t, html, "GopherCon")
	require.Contains(t, html, "Berlin")
	require.Contains(t, text, "2025-10-01 at 09:00")
}

func TestTemplateRenderer_UnknownTemplate(t *testing.T) {
	r := NewTemplateRenderer()
	_, _, _, err := r.Render("no_such_template", nil)
	require.Error(t, err)
}
