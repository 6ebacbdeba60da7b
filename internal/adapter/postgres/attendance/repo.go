// Package attendance implements the attendance fact table using PostgreSQL.
// Rows are bulk-seeded per meeting by the roll-up engine, then only the
// attended flag and remarks ever change.
package attendance

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/mockingjay-project/mockingjay/internal/adapter/postgres"
	"github.com/mockingjay-project/mockingjay/internal/domain"
)

// Repo provides attendance persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new attendance repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const insertSQL = `
INSERT INTO attendance (per_num, name, designation, meeting_id, item_id, attended, role, remarks)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (per_num, item_id, role) DO NOTHING`

const listByMeetingSQL = `
SELECT id, per_num, name, designation, meeting_id, item_id, attended, role, remarks
FROM attendance
WHERE meeting_id = $1
ORDER BY item_id, per_num, role`

// The three array_agg columns share one ORDER BY so that index i refers to
// the same underlying row in all of them. That positional alignment is what
// the per-person editing view depends on.
const aggregateSQL = `
SELECT a.per_num,
       min(a.name) AS name,
       min(a.designation) AS designation,
       a.meeting_id,
       array_agg(a.item_id ORDER BY a.item_id, a.id) AS item_ids,
       array_agg(a.attended ORDER BY a.item_id, a.id) AS attended,
       array_agg(a.role ORDER BY a.item_id, a.id) AS roles,
       array_agg(a.remarks ORDER BY a.item_id, a.id) AS remarks
FROM attendance a
%s
WHERE a.meeting_id = $1
GROUP BY a.per_num, a.meeting_id
ORDER BY a.per_num`

const nonSelectJoin = `JOIN items i ON i.id = a.item_id AND i.select_flag = FALSE`

const updateFlagSQL = `
UPDATE attendance
SET attended = $3, remarks = $4
WHERE meeting_id = $1 AND per_num = $2 AND item_id = $5`

const deleteByMeetingSQL = `
DELETE FROM attendance
WHERE meeting_id = $1`

const deleteByItemSQL = `
DELETE FROM attendance
WHERE item_id = $1`

// BulkInsert writes seeded attendance rows in one batch. Duplicate
// (person, item, role) rows are skipped. Returns the number inserted.
func (r *Repo) BulkInsert(ctx context.Context, records []domain.AttendanceRecord) (int64, error) {
	if len(records) == 0 {
		return 0, nil
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	batch := &pgx.Batch{}
	for _, rec := range records {
		batch.Queue(insertSQL,
			rec.PerNum, rec.Name, rec.Designation, rec.MeetingID, rec.ItemID,
			rec.Attended, string(rec.Role), rec.Remarks)
	}

	results := querier.SendBatch(ctx, batch)
	defer results.Close()

	var inserted int64
	for range records {
		tag, err := results.Exec()
		if err != nil {
			return inserted, postgres.MapError(err, "attendance", "batch")
		}
		inserted += tag.RowsAffected()
	}

	return inserted, nil
}

// ListByMeeting returns the raw attendance rows of a meeting.
func (r *Repo) ListByMeeting(ctx context.Context, meetingID uuid.UUID) ([]domain.AttendanceRecord, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listByMeetingSQL, meetingID)
	if err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	defer rows.Close()

	var result []domain.AttendanceRecord
	for rows.Next() {
		var (
			rec  domain.AttendanceRecord
			role string
		)
		err := rows.Scan(&rec.ID, &rec.PerNum, &rec.Name, &rec.Designation,
			&rec.MeetingID, &rec.ItemID, &rec.Attended, &role, &rec.Remarks)
		if err != nil {
			return nil, fmt.Errorf("list attendance: %w", err)
		}
		rec.Role = domain.AttendanceRole(role)
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}

	if result == nil {
		result = []domain.AttendanceRecord{}
	}

	return result, nil
}

// AggregateByMeeting groups attendance rows per person: one output row per
// distinct per_num with aligned item/flag/remark slices. When nonSelectOnly
// is set, rows belonging to select items are excluded before grouping.
func (r *Repo) AggregateByMeeting(ctx context.Context, meetingID uuid.UUID, nonSelectOnly bool) ([]domain.PersonAttendance, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	join := ""
	if nonSelectOnly {
		join = nonSelectJoin
	}

	rows, err := querier.Query(ctx, fmt.Sprintf(aggregateSQL, join), meetingID)
	if err != nil {
		return nil, fmt.Errorf("aggregate attendance: %w", err)
	}
	defer rows.Close()

	var result []domain.PersonAttendance
	for rows.Next() {
		var (
			pa    domain.PersonAttendance
			roles []string
		)
		err := rows.Scan(&pa.PerNum, &pa.Name, &pa.Designation, &pa.MeetingID,
			&pa.ItemIDs, &pa.Attended, &roles, &pa.Remarks)
		if err != nil {
			return nil, fmt.Errorf("aggregate attendance: %w", err)
		}
		pa.Role = primaryRole(roles)
		result = append(result, pa)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("aggregate attendance: %w", err)
	}

	if result == nil {
		result = []domain.PersonAttendance{}
	}

	return result, nil
}

// UpdateFlag writes the attended flag and remarks for every row matching one
// (person, item) pair. Identity columns are never part of the SET clause.
// Returns rows affected; 0 means no such pair was ever seeded.
func (r *Repo) UpdateFlag(ctx context.Context, meetingID uuid.UUID, edit domain.AttendanceEdit) (int64, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, updateFlagSQL,
		meetingID, edit.PerNum, edit.Attended, edit.Remarks, edit.ItemID)
	if err != nil {
		return 0, postgres.MapError(err, "attendance", edit.PerNum)
	}

	return tag.RowsAffected(), nil
}

// DeleteByMeeting clears all attendance of a meeting (reset before re-seed,
// or meeting deletion). Returns rows affected.
func (r *Repo) DeleteByMeeting(ctx context.Context, meetingID uuid.UUID) (int64, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, deleteByMeetingSQL, meetingID)
	if err != nil {
		return 0, postgres.MapError(err, "attendance", meetingID)
	}

	return tag.RowsAffected(), nil
}

// DeleteByItem clears attendance rows of a single item. Returns rows affected.
func (r *Repo) DeleteByItem(ctx context.Context, itemID uuid.UUID) (int64, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, deleteByItemSQL, itemID)
	if err != nil {
		return 0, postgres.MapError(err, "attendance", itemID)
	}

	return tag.RowsAffected(), nil
}

// rolePrecedence orders roles for the aggregated single-role column: standing
// classifications beat item-specific ones.
var rolePrecedence = map[domain.AttendanceRole]int{
	domain.AttendanceRoleHOD:                  1,
	domain.AttendanceRolePermanent:            2,
	domain.AttendanceRoleSecretariat:          3,
	domain.AttendanceRoleDesignateReplacement: 4,
	domain.AttendanceRoleItemOwner:            5,
	domain.AttendanceRoleAdditionalAttendee:   6,
}

// primaryRole picks the highest-precedence role from the aggregated list.
func primaryRole(roles []string) domain.AttendanceRole {
	best := domain.AttendanceRole("")
	bestRank := 0
	for _, s := range roles {
		role := domain.AttendanceRole(s)
		rank, ok := rolePrecedence[role]
		if !ok {
			continue
		}
		if best == "" || rank < bestRank {
			best = role
			bestRank = rank
		}
	}
	return best
}
