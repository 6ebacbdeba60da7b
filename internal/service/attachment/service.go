// Package attachment stores files uploaded against agenda items.
package attachment

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/mockingjay-project/mockingjay/internal/config"
	"github.com/mockingjay-project/mockingjay/internal/domain"
)

type attachmentRepo interface {
	Save(ctx context.Context, a *domain.Attachment) (*domain.Attachment, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Attachment, error)
	ListByItem(ctx context.Context, itemID uuid.UUID) ([]domain.AttachmentInfo, error)
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
	DeleteByItem(ctx context.Context, itemID uuid.UUID) (int64, error)
}

// Service provides attachment storage operations.
type Service struct {
	attachments attachmentRepo
	cfg         config.AttachmentConfig
	log         *slog.Logger
}

// NewService creates a new attachment service.
func NewService(log *slog.Logger, attachments attachmentRepo, cfg config.AttachmentConfig) *Service {
	return &Service{
		attachments: attachments,
		cfg:         cfg,
		log:         log.With("service", "attachment"),
	}
}

// Save stores a file against an item. Files over the configured size cap are
// rejected before anything is written. The MIME type is stored verbatim:
// there is no allow-list, callers upload what they upload.
func (s *Service) Save(ctx context.Context, itemID uuid.UUID, filename, fileType string, data []byte) (*domain.Attachment, error) {
	if filename == "" {
		return nil, domain.NewValidationError("filename", "is required")
	}
	if int64(len(data)) > s.cfg.MaxSizeBytes {
		return nil, fmt.Errorf("attachment %q is %d bytes, cap is %d: %w",
			filename, len(data), s.cfg.MaxSizeBytes, domain.ErrSizeLimitExceeded)
	}

	a := &domain.Attachment{
		ItemID:   itemID,
		Filename: filename,
		FileType: fileType,
		FileData: data,
	}

	saved, err := s.attachments.Save(ctx, a)
	if err != nil {
		return nil, fmt.Errorf("save attachment: %w", err)
	}

	s.log.InfoContext(ctx, "attachment saved",
		slog.String("attachment_id", saved.ID.String()),
		slog.String("item_id", itemID.String()),
		slog.Int("bytes", len(data)),
	)

	return saved, nil
}

// Get returns one attachment including its bytes.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Attachment, error) {
	a, err := s.attachments.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get attachment %s: %w", id, err)
	}
	return a, nil
}

// ListByItem returns an item's attachment metadata ordered by filename.
// The file bytes are not loaded.
func (s *Service) ListByItem(ctx context.Context, itemID uuid.UUID) ([]domain.AttachmentInfo, error) {
	return s.attachments.ListByItem(ctx, itemID)
}

// Delete removes one attachment. Returns domain.ErrNotFound when the id does
// not exist; a storage failure surfaces as its own error.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	affected, err := s.attachments.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete attachment: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("attachment %s: %w", id, domain.ErrNotFound)
	}

	s.log.InfoContext(ctx, "attachment deleted", slog.String("attachment_id", id.String()))
	return nil
}

// DeleteByItem removes all of an item's attachments and returns how many
// there were. Zero is not an error.
func (s *Service) DeleteByItem(ctx context.Context, itemID uuid.UUID) (int64, error) {
	affected, err := s.attachments.DeleteByItem(ctx, itemID)
	if err != nil {
		return 0, fmt.Errorf("delete attachments for item %s: %w", itemID, err)
	}
	return affected, nil
}
