package testhelper

import (
	"context"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mockingjay-project/mockingjay/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// uniquePerNum returns a person number unlikely to collide across parallel tests.
func uniquePerNum() int {
	return 100000 + rand.IntN(900000000)
}

// SeedPersonValue builds a unique directory person without inserting it, for
// tests that exercise the insert path themselves.
func SeedPersonValue() domain.Person {
	suffix := uniqueSuffix()
	return domain.Person{
		PerNum:         uniquePerNum(),
		Name:           "Test Person " + suffix,
		Designation:    "Designation " + suffix,
		EmploymentRole: domain.EmploymentRoleNone,
	}
}

// SeedPerson inserts a directory person with a unique person number.
func SeedPerson(t *testing.T, pool *pgxpool.Pool, role domain.EmploymentRole) domain.Person {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	p := domain.Person{
		PerNum:         uniquePerNum(),
		Name:           "Test Person " + suffix,
		Designation:    "Designation " + suffix,
		EmploymentRole: role,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO personnel (per_num, name, designation, employment_role)
		 VALUES ($1, $2, $3, $4)`,
		p.PerNum, p.Name, p.Designation, string(p.EmploymentRole),
	)
	if err != nil {
		t.Fatalf("testhelper: SeedPerson insert: %v", err)
	}

	return p
}

// SeedMember copies a seeded person into the given registry and returns the
// membership record.
func SeedMember(t *testing.T, pool *pgxpool.Pool, registry domain.Registry, role string) domain.MembershipRecord {
	t.Helper()
	ctx := context.Background()

	p := SeedPerson(t, pool, domain.EmploymentRolePermanent)
	rec := domain.MembershipRecord{
		PerNum:      p.PerNum,
		Name:        p.Name,
		Designation: p.Designation,
		Role:        role,
	}

	table := "core_members"
	if registry == domain.RegistrySecretariat {
		table = "secretariat"
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO `+table+` (per_num, name, designation, role) VALUES ($1, $2, $3, $4)`,
		rec.PerNum, rec.Name, rec.Designation, rec.Role,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedMember insert: %v", err)
	}

	return rec
}

// SeedMeeting inserts a meeting with sensible defaults and returns it.
func SeedMeeting(t *testing.T, pool *pgxpool.Pool) domain.Meeting {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	m := domain.Meeting{
		Title:         "DM " + suffix,
		Date:          time.Now().UTC().AddDate(0, 0, 7).Truncate(24 * time.Hour),
		Description:   "seeded meeting",
		StartTime:     "15:00",
		EndTime:       "17:30",
		TotalDuration: 150,
		MinutesLeft:   150,
		MinutesTaken:  0,
		Location:      "Orchard",
		CreatedBy:     "testhelper",
		Status:        domain.MeetingStatusCuration,
	}

	err := pool.QueryRow(ctx,
		`INSERT INTO meetings (title, meeting_date, description, start_time, end_time,
		                       total_duration, minutes_left, minutes_taken, location, created_by, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 RETURNING id, created_at`,
		m.Title, m.Date, m.Description, m.StartTime, m.EndTime,
		m.TotalDuration, m.MinutesLeft, m.MinutesTaken, m.Location, m.CreatedBy, string(m.Status),
	).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		t.Fatalf("testhelper: SeedMeeting insert: %v", err)
	}

	return m
}

// SeedItem inserts an agenda item for the meeting and returns it.
func SeedItem(t *testing.T, pool *pgxpool.Pool, meetingID uuid.UUID, purpose domain.Purpose, duration int) domain.Item {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	it := domain.Item{
		MeetingID:   meetingID,
		Title:       "Item " + suffix,
		Description: "seeded item",
		Purpose:     purpose,
		Tier:        purpose.Tier(),
		Duration:    domain.NormalizeDuration(purpose, duration),
		ItemOwner:   "Owner " + suffix,
		Status:      domain.ItemStatusPending,
		CreatedBy:   "testhelper",
	}

	err := pool.QueryRow(ctx,
		`INSERT INTO items (meeting_id, title, description, purpose, tier, select_flag, duration,
		                    item_owner, additional_attendees, status, item_order, created_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 RETURNING id, created_at`,
		it.MeetingID, it.Title, it.Description, string(it.Purpose), it.Tier, it.Select,
		it.Duration, it.ItemOwner, it.AdditionalAttendees, string(it.Status), it.ItemOrder, it.CreatedBy,
	).Scan(&it.ID, &it.CreatedAt)
	if err != nil {
		t.Fatalf("testhelper: SeedItem insert: %v", err)
	}

	return it
}

// SeedAssignment links a fresh directory person to an item in the given
// assignment table ("item_owners" or "additional_attendees").
func SeedAssignment(t *testing.T, pool *pgxpool.Pool, table string, meetingID, itemID uuid.UUID) domain.Assignment {
	t.Helper()
	ctx := context.Background()

	p := SeedPerson(t, pool, domain.EmploymentRoleNone)
	a := domain.Assignment{
		PerNum:      p.PerNum,
		Name:        p.Name,
		Designation: p.Designation,
		MeetingID:   meetingID,
		ItemID:      itemID,
	}

	err := pool.QueryRow(ctx,
		`INSERT INTO `+table+` (per_num, name, designation, meeting_id, item_id)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		a.PerNum, a.Name, a.Designation, a.MeetingID, a.ItemID,
	).Scan(&a.ID)
	if err != nil {
		t.Fatalf("testhelper: SeedAssignment insert into %s: %v", table, err)
	}

	return a
}
