// Package meeting implements the meeting repository using PostgreSQL.
// It provides CRUD for meeting records, the calendar read queries, and the
// lifecycle status write.
package meeting

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/mockingjay-project/mockingjay/internal/adapter/postgres"
	"github.com/mockingjay-project/mockingjay/internal/domain"
)

// Repo provides meeting persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new meeting repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const meetingColumns = `
id, title, meeting_date, description, start_time, end_time,
total_duration, minutes_left, minutes_taken, location, created_by, created_at, status`

const createSQL = `
INSERT INTO meetings (
    title, meeting_date, description, start_time, end_time,
    total_duration, minutes_left, minutes_taken, location, created_by, status
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
RETURNING id, created_at`

const getByIDSQL = `
SELECT ` + meetingColumns + `
FROM meetings
WHERE id = $1`

const listUpcomingSQL = `
SELECT ` + meetingColumns + `
FROM meetings
WHERE meeting_date >= CURRENT_DATE
ORDER BY meeting_date ASC, start_time ASC`

const nearestUpcomingSQL = listUpcomingSQL + `
LIMIT 1`

const listPastSQL = `
SELECT ` + meetingColumns + `
FROM meetings
WHERE meeting_date < CURRENT_DATE
ORDER BY meeting_date DESC, start_time DESC`

const listAllSQL = `
SELECT ` + meetingColumns + `
FROM meetings
ORDER BY meeting_date ASC, start_time ASC`

const setStatusSQL = `
UPDATE meetings
SET status = $2
WHERE id = $1`

const deleteSQL = `
DELETE FROM meetings
WHERE id = $1`

// Create inserts a new meeting and returns it with the generated id and
// creation timestamp filled in.
func (r *Repo) Create(ctx context.Context, m *domain.Meeting) (*domain.Meeting, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	created := *m
	err := querier.QueryRow(ctx, createSQL,
		m.Title, m.Date, m.Description, m.StartTime, m.EndTime,
		m.TotalDuration, m.MinutesLeft, m.MinutesTaken, m.Location, m.CreatedBy, string(m.Status),
	).Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		return nil, postgres.MapError(err, "meeting", uuid.Nil)
	}

	return &created, nil
}

// GetByID returns a meeting by primary key.
// Returns domain.ErrNotFound if the meeting does not exist.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Meeting, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	m, err := scanMeeting(querier.QueryRow(ctx, getByIDSQL, id))
	if err != nil {
		return nil, postgres.MapError(err, "meeting", id)
	}

	return m, nil
}

// ListUpcoming returns meetings dated today or later, soonest first.
func (r *Repo) ListUpcoming(ctx context.Context) ([]*domain.Meeting, error) {
	return r.list(ctx, listUpcomingSQL)
}

// ListPast returns meetings dated before today, most recent first.
func (r *Repo) ListPast(ctx context.Context) ([]*domain.Meeting, error) {
	return r.list(ctx, listPastSQL)
}

// ListAll returns every meeting in calendar order.
func (r *Repo) ListAll(ctx context.Context) ([]*domain.Meeting, error) {
	return r.list(ctx, listAllSQL)
}

// GetNearestUpcoming returns the next meeting dated today or later.
// Returns domain.ErrNotFound when no upcoming meeting exists.
func (r *Repo) GetNearestUpcoming(ctx context.Context) (*domain.Meeting, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	m, err := scanMeeting(querier.QueryRow(ctx, nearestUpcomingSQL))
	if err != nil {
		return nil, postgres.MapError(err, "meeting", "upcoming")
	}

	return m, nil
}

// Update applies a partial update built from the non-nil fields of params.
// Returns the number of rows affected; 0 means the meeting does not exist.
// An empty params set is a caller bug surfaced as ErrValidation.
func (r *Repo) Update(ctx context.Context, id uuid.UUID, params domain.MeetingUpdateParams) (int64, error) {
	b := sq.Update("meetings").Where(sq.Eq{"id": id}).PlaceholderFormat(sq.Dollar)

	if params.Title != nil {
		b = b.Set("title", *params.Title)
	}
	if params.Date != nil {
		b = b.Set("meeting_date", *params.Date)
	}
	if params.Description != nil {
		b = b.Set("description", *params.Description)
	}
	if params.StartTime != nil {
		b = b.Set("start_time", *params.StartTime)
	}
	if params.EndTime != nil {
		b = b.Set("end_time", *params.EndTime)
	}
	if params.TotalDuration != nil {
		b = b.Set("total_duration", *params.TotalDuration)
	}
	if params.MinutesLeft != nil {
		b = b.Set("minutes_left", *params.MinutesLeft)
	}
	if params.MinutesTaken != nil {
		b = b.Set("minutes_taken", *params.MinutesTaken)
	}
	if params.Location != nil {
		b = b.Set("location", *params.Location)
	}

	query, args, err := b.ToSql()
	if err != nil {
		return 0, domain.NewValidationError("updates", "empty update set")
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, query, args...)
	if err != nil {
		return 0, postgres.MapError(err, "meeting", id)
	}

	return tag.RowsAffected(), nil
}

// SetStatus writes the lifecycle status. Transition legality is the service's
// concern; this is a plain column write. Returns rows affected.
func (r *Repo) SetStatus(ctx context.Context, id uuid.UUID, status domain.MeetingStatus) (int64, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, setStatusSQL, id, string(status))
	if err != nil {
		return 0, postgres.MapError(err, "meeting", id)
	}

	return tag.RowsAffected(), nil
}

// Delete removes a meeting row. Dependent items and attendance are the
// caller's responsibility. Returns rows affected.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, deleteSQL, id)
	if err != nil {
		return 0, postgres.MapError(err, "meeting", id)
	}

	return tag.RowsAffected(), nil
}

func (r *Repo) list(ctx context.Context, query string) ([]*domain.Meeting, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list meetings: %w", err)
	}
	defer rows.Close()

	var result []*domain.Meeting
	for rows.Next() {
		m, err := scanMeeting(rows)
		if err != nil {
			return nil, fmt.Errorf("list meetings: %w", err)
		}
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list meetings: %w", err)
	}

	if result == nil {
		result = []*domain.Meeting{}
	}

	return result, nil
}

// scanMeeting scans one meeting row from either pgx.Row or pgx.Rows.
func scanMeeting(row pgx.Row) (*domain.Meeting, error) {
	var (
		m      domain.Meeting
		date   time.Time
		status string
	)

	err := row.Scan(
		&m.ID, &m.Title, &date, &m.Description, &m.StartTime, &m.EndTime,
		&m.TotalDuration, &m.MinutesLeft, &m.MinutesTaken, &m.Location,
		&m.CreatedBy, &m.CreatedAt, &status,
	)
	if err != nil {
		return nil, err
	}

	m.Date = date
	m.Status = domain.MeetingStatus(status)

	return &m, nil
}
