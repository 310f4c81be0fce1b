package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"eventboard/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func TestBookingRepository_Create(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		booking *domain.Booking
		mock    func(mock sqlmock.Sqlmock)
		wantID  string
		wantErr bool
	}{
		{
			name:    "success",
			booking: domain.NewBooking("ev-1", "user@example.com", now, now),
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO bookings \(event_id, email, created_at, updated_at\)`).
					WithArgs("ev-1", "user@example.com", now, now).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("bk-uuid-1"))
			},
			wantID:  "bk-uuid-1",
			wantErr: false,
		},
		{
			name:    "db error",
			booking: domain.NewBooking("ev-1", "user@example.com", now, now),
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO bookings`).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewBookingRepository(db)
			err = repo.Create(ctx, tt.booking)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantID, tt.booking.ID)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
