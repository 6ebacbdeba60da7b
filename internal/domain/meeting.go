package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// MeetingStatus represents a meeting's position in its lifecycle.
type MeetingStatus string

const (
	MeetingStatusCuration     MeetingStatus = "Curation"
	MeetingStatusReviewing    MeetingStatus = "Reviewing"
	MeetingStatusApprovedCOS  MeetingStatus = "Approved (COS)"
	MeetingStatusApprovedHead MeetingStatus = "Approved (Head)"
	MeetingStatusCirculated   MeetingStatus = "Circulated"
	MeetingStatusCompleted    MeetingStatus = "Completed"
	MeetingStatusRejected     MeetingStatus = "Rejected"
)

func (s MeetingStatus) String() string { return string(s) }

func (s MeetingStatus) IsValid() bool {
	switch s {
	case MeetingStatusCuration, MeetingStatusReviewing, MeetingStatusApprovedCOS,
		MeetingStatusApprovedHead, MeetingStatusCirculated, MeetingStatusCompleted,
		MeetingStatusRejected:
		return true
	}
	return false
}

// IsTerminal reports whether no further transitions are allowed from s.
func (s MeetingStatus) IsTerminal() bool {
	return s == MeetingStatusCompleted || s == MeetingStatusRejected
}

// nextStatus maps each state to its forward successor in the approval chain.
var nextStatus = map[MeetingStatus]MeetingStatus{
	MeetingStatusCuration:     MeetingStatusReviewing,
	MeetingStatusReviewing:    MeetingStatusApprovedCOS,
	MeetingStatusApprovedCOS:  MeetingStatusApprovedHead,
	MeetingStatusApprovedHead: MeetingStatusCirculated,
	MeetingStatusCirculated:   MeetingStatusCompleted,
}

// CanTransition reports whether the move from s to next is permitted.
// Allowed moves: one step forward along the approval chain, or Rejected
// from any non-terminal state.
func (s MeetingStatus) CanTransition(next MeetingStatus) bool {
	if s.IsTerminal() {
		return false
	}
	if next == MeetingStatusRejected {
		return true
	}
	return nextStatus[s] == next
}

// Meeting is a department meeting record.
type Meeting struct {
	ID            uuid.UUID
	Title         string
	Date          time.Time
	Description   string
	StartTime     string // "HH:MM"
	EndTime       string // "HH:MM"
	TotalDuration int    // minutes, end - start
	MinutesLeft   int
	MinutesTaken  int
	Location      string
	CreatedBy     string
	CreatedAt     time.Time
	Status        MeetingStatus
}

// MeetingUpdateParams carries a partial update: nil fields are left unchanged.
// Durations are recomputed by the service when a time field changes; the
// repository applies whatever it is given.
type MeetingUpdateParams struct {
	Title         *string
	Date          *time.Time
	Description   *string
	StartTime     *string
	EndTime       *string
	TotalDuration *int
	MinutesLeft   *int
	MinutesTaken  *int
	Location      *string
}

// IsEmpty reports whether no field is set.
func (p MeetingUpdateParams) IsEmpty() bool {
	return p.Title == nil && p.Date == nil && p.Description == nil &&
		p.StartTime == nil && p.EndTime == nil && p.TotalDuration == nil &&
		p.MinutesLeft == nil && p.MinutesTaken == nil && p.Location == nil
}

const timeOfDayLayout = "15:04"

// ParseTimeOfDay validates an "HH:MM" string and returns minutes since midnight.
func ParseTimeOfDay(s string) (int, error) {
	t, err := time.Parse(timeOfDayLayout, s)
	if err != nil {
		return 0, fmt.Errorf("time of day %q: %w", s, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// MeetingDuration computes end - start in minutes from "HH:MM" strings.
// The result must be positive: a meeting cannot end before it starts.
func MeetingDuration(startTime, endTime string) (int, error) {
	start, err := ParseTimeOfDay(startTime)
	if err != nil {
		return 0, NewValidationError("startTime", err.Error())
	}
	end, err := ParseTimeOfDay(endTime)
	if err != nil {
		return 0, NewValidationError("endTime", err.Error())
	}
	if end <= start {
		return 0, NewValidationError("endTime", "must be after startTime")
	}
	return end - start, nil
}
