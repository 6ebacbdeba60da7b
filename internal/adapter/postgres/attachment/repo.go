// Package attachment implements binary attachment storage using PostgreSQL.
// Payloads live in a bytea column; listings read metadata plus octet_length
// so the bytes stay on the server.
package attachment

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/mockingjay-project/mockingjay/internal/adapter/postgres"
	"github.com/mockingjay-project/mockingjay/internal/domain"
)

// Repo provides attachment persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new attachment repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const saveSQL = `
INSERT INTO attachments (item_id, filename, file_type, file_data)
VALUES ($1, $2, $3, $4)
RETURNING id, created_at`

const getSQL = `
SELECT id, item_id, filename, file_type, file_data, created_at
FROM attachments
WHERE id = $1`

const listByItemSQL = `
SELECT id, item_id, filename, file_type, octet_length(file_data), created_at
FROM attachments
WHERE item_id = $1
ORDER BY filename`

const deleteSQL = `
DELETE FROM attachments
WHERE id = $1`

const deleteByItemSQL = `
DELETE FROM attachments
WHERE item_id = $1`

// Save inserts an attachment and returns it with the generated id and upload
// timestamp filled in. Size limits are enforced by the service before this
// call; the repository writes whatever it is handed.
func (r *Repo) Save(ctx context.Context, a *domain.Attachment) (*domain.Attachment, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	saved := *a
	err := querier.QueryRow(ctx, saveSQL, a.ItemID, a.Filename, a.FileType, a.FileData).
		Scan(&saved.ID, &saved.CreatedAt)
	if err != nil {
		return nil, postgres.MapError(err, "attachment", a.ItemID)
	}

	return &saved, nil
}

// Get returns the full attachment, payload included.
// Returns domain.ErrNotFound if the attachment does not exist.
func (r *Repo) Get(ctx context.Context, id uuid.UUID) (*domain.Attachment, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var a domain.Attachment
	err := querier.QueryRow(ctx, getSQL, id).
		Scan(&a.ID, &a.ItemID, &a.Filename, &a.FileType, &a.FileData, &a.CreatedAt)
	if err != nil {
		return nil, postgres.MapError(err, "attachment", id)
	}

	return &a, nil
}

// ListByItem returns attachment metadata for an item ordered by filename.
// Payload bytes are not loaded; only their length is reported.
func (r *Repo) ListByItem(ctx context.Context, itemID uuid.UUID) ([]domain.AttachmentInfo, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listByItemSQL, itemID)
	if err != nil {
		return nil, fmt.Errorf("list attachments: %w", err)
	}
	defer rows.Close()

	var result []domain.AttachmentInfo
	for rows.Next() {
		var info domain.AttachmentInfo
		if err := rows.Scan(&info.ID, &info.ItemID, &info.Filename, &info.FileType, &info.FileSize, &info.CreatedAt); err != nil {
			return nil, fmt.Errorf("list attachments: %w", err)
		}
		result = append(result, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list attachments: %w", err)
	}

	if result == nil {
		result = []domain.AttachmentInfo{}
	}

	return result, nil
}

// Delete removes one attachment. Returns rows affected; distinguishing
// zero matches from a storage failure is the service's job.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, deleteSQL, id)
	if err != nil {
		return 0, postgres.MapError(err, "attachment", id)
	}

	return tag.RowsAffected(), nil
}

// DeleteByItem removes every attachment of an item. Returns rows affected.
func (r *Repo) DeleteByItem(ctx context.Context, itemID uuid.UUID) (int64, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, deleteByItemSQL, itemID)
	if err != nil {
		return 0, postgres.MapError(err, "attachment", itemID)
	}

	return tag.RowsAffected(), nil
}
