package agenda

import (
	"strings"

	"github.com/google/uuid"

	"github.com/mockingjay-project/mockingjay/internal/domain"
)

// PersonRef identifies a directory person attached to an item, either as its
// owner or as an additional attendee.
type PersonRef struct {
	PerNum      int
	Name        string
	Designation string
}

// RegisterInput carries the fields needed to register an agenda item.
// The tier is always derived from the purpose; a caller-supplied tier is ignored.
type RegisterInput struct {
	MeetingID           uuid.UUID
	Title               string
	Description         string
	Purpose             domain.Purpose
	Select              bool
	Duration            int // minutes; forced to 0 for tier-2 purposes
	Owner               PersonRef
	AdditionalAttendees []PersonRef
	CreatedBy           string
}

func (in RegisterInput) validate() error {
	var fields []domain.FieldError
	if in.MeetingID == uuid.Nil {
		fields = append(fields, domain.FieldError{Field: "meeting_id", Message: "is required"})
	}
	if in.Title == "" {
		fields = append(fields, domain.FieldError{Field: "title", Message: "is required"})
	}
	if in.Owner.Name == "" {
		fields = append(fields, domain.FieldError{Field: "item_owner", Message: "is required"})
	}
	if !in.Purpose.IsValid() {
		fields = append(fields, domain.FieldError{Field: "purpose", Message: "unknown purpose"})
	} else if in.Purpose.Tier() == 1 && (in.Duration < 0 || in.Duration > domain.MaxTier1Duration) {
		fields = append(fields, domain.FieldError{Field: "duration", Message: "must be between 0 and 30 minutes"})
	}
	if len(fields) > 0 {
		return domain.NewValidationErrors(fields)
	}
	return nil
}

// UpdateInput carries a partial item update. Nil fields stay unchanged.
// Setting Purpose re-derives the tier and re-applies the duration rules;
// setting Owner or AdditionalAttendees replaces the matching assignment rows.
type UpdateInput struct {
	Title               *string
	Description         *string
	Purpose             *domain.Purpose
	Select              *bool
	Duration            *int
	Status              *domain.ItemStatus
	ItemOrder           *int
	Owner               *PersonRef
	AdditionalAttendees *[]PersonRef
}

func (in UpdateInput) isEmpty() bool {
	return in.Title == nil && in.Description == nil && in.Purpose == nil &&
		in.Select == nil && in.Duration == nil && in.Status == nil &&
		in.ItemOrder == nil && in.Owner == nil && in.AdditionalAttendees == nil
}

// joinNames builds the denormalized comma-joined attendee copy stored on the
// item row. The assignment tables remain the source of truth.
func joinNames(refs []PersonRef) string {
	names := make([]string, 0, len(refs))
	for _, r := range refs {
		names = append(names, r.Name)
	}
	return strings.Join(names, ", ")
}
