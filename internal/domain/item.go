package domain

import (
	"time"

	"github.com/google/uuid"
)

// Purpose classifies an agenda item. The stored value is the plain label;
// any colour markup around it belongs to the presentation layer.
type Purpose string

const (
	PurposeTier1Approval   Purpose = "Tier 1 (For Approval)"
	PurposeTier1Discussion Purpose = "Tier 1 (For Discussion)"
	PurposeTier2Information Purpose = "Tier 2 (For Information)"
)

func (p Purpose) String() string { return string(p) }

func (p Purpose) IsValid() bool {
	switch p {
	case PurposeTier1Approval, PurposeTier1Discussion, PurposeTier2Information:
		return true
	}
	return false
}

// Tier derives the item tier from the purpose. Approval and Discussion items
// are tier 1 (scheduled with a duration); Information items are tier 2.
func (p Purpose) Tier() int {
	if p == PurposeTier2Information {
		return 2
	}
	return 1
}

// SortPriority orders purposes for agenda display: Approval before Discussion
// before Information. Unmapped values sort last.
func (p Purpose) SortPriority() int {
	switch p {
	case PurposeTier1Approval:
		return 1
	case PurposeTier1Discussion:
		return 2
	case PurposeTier2Information:
		return 3
	}
	return 4
}

// ItemStatus tracks an agenda item's registration state.
type ItemStatus string

const (
	ItemStatusPending    ItemStatus = "Pending"
	ItemStatusWaitlist   ItemStatus = "Waitlist"
	ItemStatusRegistered ItemStatus = "Registered"
	ItemStatusConfirmed  ItemStatus = "Confirmed"
	ItemStatusRejected   ItemStatus = "Rejected"
)

func (s ItemStatus) String() string { return string(s) }

func (s ItemStatus) IsValid() bool {
	switch s {
	case ItemStatusPending, ItemStatusWaitlist, ItemStatusRegistered,
		ItemStatusConfirmed, ItemStatusRejected:
		return true
	}
	return false
}

// MaxTier1Duration is the longest presentation slot an item may request, in minutes.
const MaxTier1Duration = 30

// Item is an agenda item registered against a meeting.
//
// ItemOrder is the presentation sequence within the meeting. 0 means "not
// presented"; a zero still sorts before NULL in the within-tier ordering.
type Item struct {
	ID                  uuid.UUID
	MeetingID           uuid.UUID
	Title               string
	Description         string
	Purpose             Purpose
	Tier                int
	Select              bool
	Duration            int // minutes; always 0 for tier 2
	ItemOwner           string
	AdditionalAttendees string // comma-joined display copy; assignments are the source of truth
	Status              ItemStatus
	ItemOrder           *int
	CreatedBy           string
	CreatedAt           time.Time
}

// Assignment links a directory person to an item, scoped by meeting. The same
// shape backs both item-owner and additional-attendee assignments.
type Assignment struct {
	ID          uuid.UUID
	PerNum      int
	Name        string
	Designation string
	MeetingID   uuid.UUID
	ItemID      uuid.UUID
}

// ItemUpdateParams carries a partial item update: nil fields stay unchanged.
// Purpose changes re-derive the tier and re-apply the duration rules in the
// service before the repository sees them.
type ItemUpdateParams struct {
	Title               *string
	Description         *string
	Purpose             *Purpose
	Tier                *int
	Select              *bool
	Duration            *int
	ItemOwner           *string
	AdditionalAttendees *string
	Status              *ItemStatus
	ItemOrder           *int
}

// IsEmpty reports whether no field is set.
func (p ItemUpdateParams) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Purpose == nil &&
		p.Tier == nil && p.Select == nil && p.Duration == nil &&
		p.ItemOwner == nil && p.AdditionalAttendees == nil &&
		p.Status == nil && p.ItemOrder == nil
}

// NormalizeDuration applies the tier duration rules: tier-2 items never hold a
// slot, tier-1 items are clamped to [0, MaxTier1Duration] by validation (not here).
func NormalizeDuration(purpose Purpose, duration int) int {
	if purpose.Tier() == 2 {
		return 0
	}
	return duration
}
