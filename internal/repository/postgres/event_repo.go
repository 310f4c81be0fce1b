package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"eventboard/internal/domain"
)

// uniqueViolation is the Postgres error code for a unique constraint violation.
const uniqueViolation = "23505"

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (slug, title, description, overview, organizer, location, mode, audience, date, time, image, tags, agenda, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query,
		e.Slug, e.Title, e.Description, e.Overview, e.Organizer, e.Location,
		e.Mode, e.Audience, e.Date, e.Time, e.Image,
		pq.Array(e.Tags), pq.Array(e.Agenda), e.CreatedAt, e.UpdatedAt,
	).Scan(&e.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return domain.ErrDuplicateSlug
		}
		return err
	}
	return nil
}

const eventColumns = `id, slug, title, description, overview, organizer, location, mode, audience, date, time, image, tags, agenda, created_at, updated_at`

func scanEvent(row interface{ Scan(dest ...any) error }) (*domain.Event, error) {
	e := &domain.Event{}
	err := row.Scan(
		&e.ID, &e.Slug, &e.Title, &e.Description, &e.Overview, &e.Organizer,
		&e.Location, &e.Mode, &e.Audience, &e.Date, &e.Time, &e.Image,
		pq.Array(&e.Tags), pq.Array(&e.Agenda), &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE id = $1
	`
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) GetBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE slug = $1
	`
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, domain.NormalizeSlug(slug)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) List(ctx context.Context) ([]*domain.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		ORDER BY created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	events := make([]*domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// ListSimilarByTags matches on the array-overlap operator: any shared tag
// qualifies. The source event is excluded by id. Order is created_at DESC so
// results are stable for consumers.
func (r *eventRepository) ListSimilarByTags(ctx context.Context, sourceID string, tags []string) ([]*domain.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE id <> $1 AND tags && $2
		ORDER BY created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, sourceID, pq.Array(tags))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	events := make([]*domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
