package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"testing"
	"time"

	"eventboard/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
)

const eventCols = `id, slug, title, description, overview, organizer, location, mode, audience, date, time, image, tags, agenda, created_at, updated_at`

// eventRow builds the full 16-column row for an event; tags arrive in the wire
// format lib/pq scans, e.g. `{"go","rust"}`.
func eventRow(id, slug, title string, tags string, createdAt time.Time) []driver.Value {
	return []driver.Value{
		id, slug, title, "", "", "", "", "", "", "", "", "https://img.test/" + id + ".png",
		tags, "{}", createdAt, createdAt,
	}
}

func eventTestColumns() []string {
	return []string{"id", "slug", "title", "description", "overview", "organizer", "location", "mode", "audience", "date", "time", "image", "tags", "agenda", "created_at", "updated_at"}
}

func TestEventRepository_Create(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		event       *domain.Event
		mock        func(mock sqlmock.Sqlmock)
		wantID      string
		wantErr     bool
		isDuplicate bool
	}{
		{
			name: "success",
			event: &domain.Event{
				Slug:      "go-conf-2025",
				Title:     "Go Conf 2025",
				Tags:      []string{"go", "rust"},
				Agenda:    []string{"opening keynote"},
				Image:     "https://img.test/a.png",
				CreatedAt: now,
				UpdatedAt: now,
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO events \(slug, title, description, overview, organizer, location, mode, audience, date, time, image, tags, agenda, created_at, updated_at\)`).
					WithArgs("go-conf-2025", "Go Conf 2025", "", "", "", "", "", "", "", "", "https://img.test/a.png",
						`{"go","rust"}`, `{"opening keynote"}`, now, now).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("ev-uuid-1"))
			},
			wantID:  "ev-uuid-1",
			wantErr: false,
		},
		{
			name: "duplicate slug",
			event: &domain.Event{
				Slug:      "go-conf-2025",
				Title:     "Go Conf 2025",
				CreatedAt: now,
				UpdatedAt: now,
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO events`).
					WillReturnError(&pq.Error{Code: uniqueViolation, Constraint: "events_slug_key"})
			},
			wantErr:     true,
			isDuplicate: true,
		},
		{
			name: "db error",
			event: &domain.Event{
				Slug:      "go-conf-2025",
				Title:     "Go Conf 2025",
				CreatedAt: now,
				UpdatedAt: now,
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO events`).
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
			repo := NewEventRepository(db)
			err = repo.Create(ctx, tt.event)
			if tt.wantErr {
				require.Error(t, err)
				if tt.isDuplicate {
					require.True(t, errors.Is(err, domain.ErrDuplicateSlug))
				}
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantID, tt.event.ID)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestEventRepository_GetBySlug(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		slug     string
		mock     func(mock sqlmock.Sqlmock)
		wantID   string
		wantTags []string
		wantErr  error
	}{
		{
			name: "success",
			slug: "go-conf-2025",
			mock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows(eventTestColumns())
				rows.AddRow(eventRow("ev-1", "go-conf-2025", "Go Conf", `{"go","rust"}`, now)...)
				mock.ExpectQuery(`SELECT ` + eventCols).
					WithArgs("go-conf-2025").
					WillReturnRows(rows)
			},
			wantID:   "ev-1",
			wantTags: []string{"go", "rust"},
		},
		{
			name: "normalizes case and whitespace before lookup",
			slug: "  Go-Conf-2025 ",
			mock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows(eventTestColumns())
				rows.AddRow(eventRow("ev-1", "go-conf-2025", "Go Conf", `{"go"}`, now)...)
				mock.ExpectQuery(`SELECT ` + eventCols).
					WithArgs("go-conf-2025").
					WillReturnRows(rows)
			},
			wantID:   "ev-1",
			wantTags: []string{"go"},
		},
		{
			name: "not found",
			slug: "missing",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT ` + eventCols).
					WithArgs("missing").
					WillReturnError(sql.ErrNoRows)
			},
			wantErr: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewEventRepository(db)
			got, err := repo.GetBySlug(ctx, tt.slug)
			if tt.wantErr != nil {
				require.Error(t, err)
				require.True(t, errors.Is(err, tt.wantErr))
				require.Nil(t, got)
				require.NoError(t, mock.ExpectationsWereMet())
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantID, got.ID)
			require.Equal(t, tt.wantTags, got.Tags)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestEventRepository_List(t *testing.T) {
	ctx := context.Background()

	t.Run("newest first", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		rows := sqlmock.NewRows(eventTestColumns())
		rows.AddRow(eventRow("ev-3", "third", "Third", "{}", time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC))...)
		rows.AddRow(eventRow("ev-2", "second", "Second", "{}", time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC))...)
		rows.AddRow(eventRow("ev-1", "first", "First", "{}", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))...)
		mock.ExpectQuery(`SELECT ` + eventCols).WillReturnRows(rows)

		repo := NewEventRepository(db)
		got, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, got, 3)
		require.Equal(t, "ev-3", got[0].ID)
		require.Equal(t, "ev-2", got[1].ID)
		require.Equal(t, "ev-1", got[2].ID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT ` + eventCols).
			WillReturnRows(sqlmock.NewRows(eventTestColumns()))

		repo := NewEventRepository(db)
		got, err := repo.List(ctx)
		require.NoError(t, err)
		require.Equal(t, []*domain.Event{}, got)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("db error", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT ` + eventCols).WillReturnError(sql.ErrConnDone)

		repo := NewEventRepository(db)
		got, err := repo.List(ctx)
		require.Error(t, err)
		require.Nil(t, got)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestEventRepository_ListSimilarByTags(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	t.Run("excludes source and requires overlap", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		rows := sqlmock.NewRows(eventTestColumns())
		rows.AddRow(eventRow("ev-2", "rustfest", "RustFest", `{"rust","js"}`, now)...)
		mock.ExpectQuery(`SELECT `+eventCols+`[\s\S]*WHERE id <> \$1 AND tags && \$2`).
			WithArgs("ev-1", `{"go","rust"}`).
			WillReturnRows(rows)

		repo := NewEventRepository(db)
		got, err := repo.ListSimilarByTags(ctx, "ev-1", []string{"go", "rust"})
		require.NoError(t, err)
		require.Len(t, got, 1)
		require.Equal(t, "ev-2", got[0].ID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no matches", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT ` + eventCols).
			WithArgs("ev-1", `{"python"}`).
			WillReturnRows(sqlmock.NewRows(eventTestColumns()))

		repo := NewEventRepository(db)
		got, err := repo.ListSimilarByTags(ctx, "ev-1", []string{"python"})
		require.NoError(t, err)
		require.Equal(t, []*domain.Event{}, got)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
