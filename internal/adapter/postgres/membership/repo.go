// Package membership implements the two standing registries (core members,
// secretariat) using PostgreSQL. The registry is a closed set: table names are
// resolved from the domain.Registry variant here and never taken from callers.
package membership

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/mockingjay-project/mockingjay/internal/adapter/postgres"
	"github.com/mockingjay-project/mockingjay/internal/domain"
)

// Repo provides registry persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new membership repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// tableFor resolves the registry variant to its table name.
func tableFor(registry domain.Registry) (string, error) {
	switch registry {
	case domain.RegistryCoreMembers:
		return "core_members", nil
	case domain.RegistrySecretariat:
		return "secretariat", nil
	}
	return "", fmt.Errorf("registry %q: %w", registry, domain.ErrNotFound)
}

// List returns all registry rows ordered by person number.
// Returns an empty slice (not nil) when the registry is empty.
func (r *Repo) List(ctx context.Context, registry domain.Registry) ([]domain.MembershipRecord, error) {
	table, err := tableFor(registry)
	if err != nil {
		return nil, err
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	query := fmt.Sprintf(`SELECT per_num, name, designation, role FROM %s ORDER BY per_num`, table)
	rows, err := querier.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", table, err)
	}
	defer rows.Close()

	result, err := scanMembers(rows)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", table, err)
	}

	return result, nil
}

// Upsert inserts or replaces a registry row keyed by person number.
func (r *Repo) Upsert(ctx context.Context, registry domain.Registry, rec domain.MembershipRecord) error {
	table, err := tableFor(registry)
	if err != nil {
		return err
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	query := fmt.Sprintf(`
		INSERT INTO %s (per_num, name, designation, role)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (per_num) DO UPDATE
		SET name = EXCLUDED.name, designation = EXCLUDED.designation, role = EXCLUDED.role`, table)

	if _, err := querier.Exec(ctx, query, rec.PerNum, rec.Name, rec.Designation, rec.Role); err != nil {
		return postgres.MapError(err, table, rec.PerNum)
	}

	return nil
}

// Remove deletes a registry row by person number and returns the number of
// rows removed (0 or 1). Zero rows is not an error at this layer.
func (r *Repo) Remove(ctx context.Context, registry domain.Registry, perNum int) (int64, error) {
	table, err := tableFor(registry)
	if err != nil {
		return 0, err
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	query := fmt.Sprintf(`DELETE FROM %s WHERE per_num = $1`, table)
	tag, err := querier.Exec(ctx, query, perNum)
	if err != nil {
		return 0, postgres.MapError(err, table, perNum)
	}

	return tag.RowsAffected(), nil
}

// Count returns the number of rows in the registry.
func (r *Repo) Count(ctx context.Context, registry domain.Registry) (int, error) {
	table, err := tableFor(registry)
	if err != nil {
		return 0, err
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var count int
	query := fmt.Sprintf(`SELECT count(*) FROM %s`, table)
	if err := querier.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}

	return count, nil
}

// scanMembers scans query rows into membership records.
func scanMembers(rows pgx.Rows) ([]domain.MembershipRecord, error) {
	var result []domain.MembershipRecord
	for rows.Next() {
		var m domain.MembershipRecord
		if err := rows.Scan(&m.PerNum, &m.Name, &m.Designation, &m.Role); err != nil {
			return nil, err
		}
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if result == nil {
		result = []domain.MembershipRecord{}
	}

	return result, nil
}
