package item

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/mockingjay-project/mockingjay/internal/adapter/postgres"
	"github.com/mockingjay-project/mockingjay/internal/domain"
)

// AssignmentKind selects one of the two person-to-item join tables.
type AssignmentKind string

const (
	AssignmentOwner              AssignmentKind = "item_owners"
	AssignmentAdditionalAttendee AssignmentKind = "additional_attendees"
)

func (k AssignmentKind) table() (string, error) {
	switch k {
	case AssignmentOwner, AssignmentAdditionalAttendee:
		return string(k), nil
	}
	return "", fmt.Errorf("assignment kind %q: %w", k, domain.ErrNotFound)
}

// AssignmentRepo manages the item_owners and additional_attendees join tables.
type AssignmentRepo struct {
	pool *pgxpool.Pool
}

// NewAssignmentRepo creates a new assignment repository.
func NewAssignmentRepo(pool *pgxpool.Pool) *AssignmentRepo {
	return &AssignmentRepo{pool: pool}
}

// Add inserts an assignment row. Re-adding the same (person, item) pair is
// not an error (ON CONFLICT DO NOTHING).
func (r *AssignmentRepo) Add(ctx context.Context, kind AssignmentKind, a domain.Assignment) error {
	table, err := kind.table()
	if err != nil {
		return err
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	query := fmt.Sprintf(`
		INSERT INTO %s (per_num, name, designation, meeting_id, item_id)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (per_num, item_id) DO NOTHING`, table)

	if _, err := querier.Exec(ctx, query, a.PerNum, a.Name, a.Designation, a.MeetingID, a.ItemID); err != nil {
		return postgres.MapError(err, table, a.PerNum)
	}

	return nil
}

// ListByMeeting returns all assignments of one kind scoped to a meeting,
// ordered by item then person for stable seeding.
func (r *AssignmentRepo) ListByMeeting(ctx context.Context, kind AssignmentKind, meetingID uuid.UUID) ([]domain.Assignment, error) {
	table, err := kind.table()
	if err != nil {
		return nil, err
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	query := fmt.Sprintf(`
		SELECT id, per_num, name, designation, meeting_id, item_id
		FROM %s
		WHERE meeting_id = $1
		ORDER BY item_id, per_num`, table)

	rows, err := querier.Query(ctx, query, meetingID)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", table, err)
	}
	defer rows.Close()

	return scanAssignments(rows, table)
}

// ListByItem returns all assignments of one kind for a single item.
func (r *AssignmentRepo) ListByItem(ctx context.Context, kind AssignmentKind, itemID uuid.UUID) ([]domain.Assignment, error) {
	table, err := kind.table()
	if err != nil {
		return nil, err
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	query := fmt.Sprintf(`
		SELECT id, per_num, name, designation, meeting_id, item_id
		FROM %s
		WHERE item_id = $1
		ORDER BY per_num`, table)

	rows, err := querier.Query(ctx, query, itemID)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", table, err)
	}
	defer rows.Close()

	return scanAssignments(rows, table)
}

// DeleteByItem removes all assignments of one kind for an item.
// Returns rows affected.
func (r *AssignmentRepo) DeleteByItem(ctx context.Context, kind AssignmentKind, itemID uuid.UUID) (int64, error) {
	table, err := kind.table()
	if err != nil {
		return 0, err
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	query := fmt.Sprintf(`DELETE FROM %s WHERE item_id = $1`, table)
	tag, err := querier.Exec(ctx, query, itemID)
	if err != nil {
		return 0, postgres.MapError(err, table, itemID)
	}

	return tag.RowsAffected(), nil
}

// Remove deletes a single (person, item) assignment. Returns rows affected.
func (r *AssignmentRepo) Remove(ctx context.Context, kind AssignmentKind, perNum int, itemID uuid.UUID) (int64, error) {
	table, err := kind.table()
	if err != nil {
		return 0, err
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	query := fmt.Sprintf(`DELETE FROM %s WHERE per_num = $1 AND item_id = $2`, table)
	tag, err := querier.Exec(ctx, query, perNum, itemID)
	if err != nil {
		return 0, postgres.MapError(err, table, perNum)
	}

	return tag.RowsAffected(), nil
}

func scanAssignments(rows pgx.Rows, table string) ([]domain.Assignment, error) {
	var result []domain.Assignment
	for rows.Next() {
		var a domain.Assignment
		if err := rows.Scan(&a.ID, &a.PerNum, &a.Name, &a.Designation, &a.MeetingID, &a.ItemID); err != nil {
			return nil, fmt.Errorf("scan %s: %w", table, err)
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("scan %s: %w", table, err)
	}

	if result == nil {
		result = []domain.Assignment{}
	}

	return result, nil
}
