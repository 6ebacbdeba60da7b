// Package directory implements the personnel directory repository using
// PostgreSQL. The directory is seed data: written once by the seeder command,
// read-only for everything else.
package directory

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/mockingjay-project/mockingjay/internal/adapter/postgres"
	"github.com/mockingjay-project/mockingjay/internal/domain"
)

// Repo provides personnel directory access backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new directory repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const getByPerNumSQL = `
SELECT per_num, name, designation, employment_role
FROM personnel
WHERE per_num = $1`

const listSQL = `
SELECT per_num, name, designation, employment_role
FROM personnel
ORDER BY per_num`

const listByPerNumsSQL = `
SELECT per_num, name, designation, employment_role
FROM personnel
WHERE per_num = ANY($1::int[])
ORDER BY per_num`

const insertSQL = `
INSERT INTO personnel (per_num, name, designation, employment_role)
VALUES ($1, $2, $3, $4)
ON CONFLICT (per_num) DO NOTHING`

const countSQL = `SELECT count(*) FROM personnel`

// GetByPerNum returns a person by person number.
// Returns domain.ErrNotFound if no such person exists.
func (r *Repo) GetByPerNum(ctx context.Context, perNum int) (*domain.Person, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var p domain.Person
	err := querier.QueryRow(ctx, getByPerNumSQL, perNum).
		Scan(&p.PerNum, &p.Name, &p.Designation, &p.EmploymentRole)
	if err != nil {
		return nil, postgres.MapError(err, "person", perNum)
	}

	return &p, nil
}

// List returns the full directory ordered by person number.
// Returns an empty slice (not nil) when the directory is empty.
func (r *Repo) List(ctx context.Context) ([]domain.Person, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listSQL)
	if err != nil {
		return nil, fmt.Errorf("list personnel: %w", err)
	}
	defer rows.Close()

	result, err := scanPersons(rows)
	if err != nil {
		return nil, fmt.Errorf("list personnel: %w", err)
	}

	return result, nil
}

// ListByPerNums returns the directory rows matching the given person numbers.
// Unknown numbers are silently absent from the result.
func (r *Repo) ListByPerNums(ctx context.Context, perNums []int) ([]domain.Person, error) {
	if len(perNums) == 0 {
		return []domain.Person{}, nil
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listByPerNumsSQL, perNums)
	if err != nil {
		return nil, fmt.Errorf("list personnel by per_nums: %w", err)
	}
	defer rows.Close()

	result, err := scanPersons(rows)
	if err != nil {
		return nil, fmt.Errorf("list personnel by per_nums: %w", err)
	}

	return result, nil
}

// InsertSeed inserts directory rows, skipping person numbers that already
// exist. Used only by the seeder command. Returns the number of rows inserted.
func (r *Repo) InsertSeed(ctx context.Context, persons []domain.Person) (int64, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var inserted int64
	for _, p := range persons {
		tag, err := querier.Exec(ctx, insertSQL, p.PerNum, p.Name, p.Designation, string(p.EmploymentRole))
		if err != nil {
			return inserted, postgres.MapError(err, "person", p.PerNum)
		}
		inserted += tag.RowsAffected()
	}

	return inserted, nil
}

// Count returns the number of directory rows.
func (r *Repo) Count(ctx context.Context) (int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var count int
	if err := querier.QueryRow(ctx, countSQL).Scan(&count); err != nil {
		return 0, fmt.Errorf("count personnel: %w", err)
	}

	return count, nil
}

// scanPersons scans query rows into domain.Person slices.
func scanPersons(rows pgx.Rows) ([]domain.Person, error) {
	var result []domain.Person
	for rows.Next() {
		var p domain.Person
		if err := rows.Scan(&p.PerNum, &p.Name, &p.Designation, &p.EmploymentRole); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if result == nil {
		result = []domain.Person{}
	}

	return result, nil
}
