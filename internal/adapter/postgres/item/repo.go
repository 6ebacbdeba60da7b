// Package item implements the agenda item repository using PostgreSQL,
// including the owner and additional-attendee assignment tables that join
// directory persons to items.
package item

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/mockingjay-project/mockingjay/internal/adapter/postgres"
	"github.com/mockingjay-project/mockingjay/internal/domain"
)

// Repo provides agenda item persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new item repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const itemColumns = `
id, meeting_id, title, description, purpose, tier, select_flag, duration,
item_owner, additional_attendees, status, item_order, created_by, created_at`

// purposeOrderExpr maps purposes onto their display priority. Unmapped or
// null purposes sort last.
const purposeOrderExpr = `
CASE purpose
    WHEN 'Tier 1 (For Approval)'    THEN 1
    WHEN 'Tier 1 (For Discussion)'  THEN 2
    WHEN 'Tier 2 (For Information)' THEN 3
    ELSE 4
END`

const createSQL = `
INSERT INTO items (
    meeting_id, title, description, purpose, tier, select_flag, duration,
    item_owner, additional_attendees, status, item_order, created_by
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
RETURNING id, created_at`

const getByIDSQL = `
SELECT ` + itemColumns + `
FROM items
WHERE id = $1`

const listByMeetingSQL = `
SELECT ` + itemColumns + `
FROM items
WHERE meeting_id = $1`

const sortedByMeetingSQL = listByMeetingSQL + `
ORDER BY ` + purposeOrderExpr + ` ASC, created_at ASC`

// Within a tier the presentation sequence wins: item_order ascending with
// nulls last, then purpose priority. item_order 0 still sorts before NULL
// even though the application reads 0 as "not presented".
const byMeetingAndTierSQL = `
SELECT ` + itemColumns + `
FROM items
WHERE meeting_id = $1 AND tier = $2
ORDER BY item_order ASC NULLS LAST, ` + purposeOrderExpr + ` ASC`

const totalDurationSQL = `
SELECT COALESCE(SUM(duration), 0)
FROM items
WHERE meeting_id = $1`

const deleteSQL = `
DELETE FROM items
WHERE id = $1`

const deleteByMeetingSQL = `
DELETE FROM items
WHERE meeting_id = $1`

// Create inserts a new item and returns it with the generated id and
// creation timestamp filled in.
func (r *Repo) Create(ctx context.Context, it *domain.Item) (*domain.Item, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	created := *it
	err := querier.QueryRow(ctx, createSQL,
		it.MeetingID, it.Title, it.Description, string(it.Purpose), it.Tier,
		it.Select, it.Duration, it.ItemOwner, it.AdditionalAttendees,
		string(it.Status), it.ItemOrder, it.CreatedBy,
	).Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		return nil, postgres.MapError(err, "item", uuid.Nil)
	}

	return &created, nil
}

// GetByID returns an item by primary key.
// Returns domain.ErrNotFound if the item does not exist.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Item, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	it, err := scanItem(querier.QueryRow(ctx, getByIDSQL, id))
	if err != nil {
		return nil, postgres.MapError(err, "item", id)
	}

	return it, nil
}

// ListByMeeting returns all items of a meeting in storage order.
func (r *Repo) ListByMeeting(ctx context.Context, meetingID uuid.UUID) ([]*domain.Item, error) {
	return r.list(ctx, listByMeetingSQL, meetingID)
}

// SortedByMeeting returns all items of a meeting ordered by purpose priority
// (Approval, Discussion, Information), unmapped last.
func (r *Repo) SortedByMeeting(ctx context.Context, meetingID uuid.UUID) ([]*domain.Item, error) {
	return r.list(ctx, sortedByMeetingSQL, meetingID)
}

// ByMeetingAndTier returns one tier's items in presentation order:
// item_order ascending nulls last, then purpose priority.
func (r *Repo) ByMeetingAndTier(ctx context.Context, meetingID uuid.UUID, tier int) ([]*domain.Item, error) {
	return r.list(ctx, byMeetingAndTierSQL, meetingID, tier)
}

// TotalDuration sums item durations for a meeting. A meeting with no items
// totals 0 minutes, not an error; the time-left display depends on this.
func (r *Repo) TotalDuration(ctx context.Context, meetingID uuid.UUID) (int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var total int
	if err := querier.QueryRow(ctx, totalDurationSQL, meetingID).Scan(&total); err != nil {
		return 0, fmt.Errorf("total duration for meeting %s: %w", meetingID, err)
	}

	return total, nil
}

// Update applies a partial update built from the non-nil fields of params.
// Returns rows affected; 0 means the item does not exist.
func (r *Repo) Update(ctx context.Context, id uuid.UUID, params domain.ItemUpdateParams) (int64, error) {
	b := sq.Update("items").Where(sq.Eq{"id": id}).PlaceholderFormat(sq.Dollar)

	if params.Title != nil {
		b = b.Set("title", *params.Title)
	}
	if params.Description != nil {
		b = b.Set("description", *params.Description)
	}
	if params.Purpose != nil {
		b = b.Set("purpose", string(*params.Purpose))
	}
	if params.Tier != nil {
		b = b.Set("tier", *params.Tier)
	}
	if params.Select != nil {
		b = b.Set("select_flag", *params.Select)
	}
	if params.Duration != nil {
		b = b.Set("duration", *params.Duration)
	}
	if params.ItemOwner != nil {
		b = b.Set("item_owner", *params.ItemOwner)
	}
	if params.AdditionalAttendees != nil {
		b = b.Set("additional_attendees", *params.AdditionalAttendees)
	}
	if params.Status != nil {
		b = b.Set("status", string(*params.Status))
	}
	if params.ItemOrder != nil {
		b = b.Set("item_order", *params.ItemOrder)
	}

	query, args, err := b.ToSql()
	if err != nil {
		return 0, domain.NewValidationError("updates", "empty update set")
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, query, args...)
	if err != nil {
		return 0, postgres.MapError(err, "item", id)
	}

	return tag.RowsAffected(), nil
}

// Delete removes an item row. Returns rows affected.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, deleteSQL, id)
	if err != nil {
		return 0, postgres.MapError(err, "item", id)
	}

	return tag.RowsAffected(), nil
}

// DeleteByMeeting removes all items of a meeting. Returns rows affected.
func (r *Repo) DeleteByMeeting(ctx context.Context, meetingID uuid.UUID) (int64, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, deleteByMeetingSQL, meetingID)
	if err != nil {
		return 0, postgres.MapError(err, "item", meetingID)
	}

	return tag.RowsAffected(), nil
}

func (r *Repo) list(ctx context.Context, query string, args ...any) ([]*domain.Item, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	var result []*domain.Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("list items: %w", err)
		}
		result = append(result, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}

	if result == nil {
		result = []*domain.Item{}
	}

	return result, nil
}

// scanItem scans one item row from either pgx.Row or pgx.Rows.
func scanItem(row pgx.Row) (*domain.Item, error) {
	var (
		it      domain.Item
		purpose string
		status  string
	)

	err := row.Scan(
		&it.ID, &it.MeetingID, &it.Title, &it.Description, &purpose, &it.Tier,
		&it.Select, &it.Duration, &it.ItemOwner, &it.AdditionalAttendees,
		&status, &it.ItemOrder, &it.CreatedBy, &it.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	it.Purpose = domain.Purpose(purpose)
	it.Status = domain.ItemStatus(status)

	return &it, nil
}
