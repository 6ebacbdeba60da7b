package domain

import (
	"github.com/google/uuid"
)

// AttendanceRole records why a person is expected at an item.
type AttendanceRole string

const (
	AttendanceRoleHOD                 AttendanceRole = "HOD"
	AttendanceRolePermanent           AttendanceRole = "Permanent"
	AttendanceRoleSecretariat         AttendanceRole = "Secretariat"
	AttendanceRoleItemOwner           AttendanceRole = "ItemOwner"
	AttendanceRoleAdditionalAttendee  AttendanceRole = "AdditionalAttendee"
	AttendanceRoleDesignateReplacement AttendanceRole = "DesignateReplacement"
)

func (r AttendanceRole) String() string { return string(r) }

func (r AttendanceRole) IsValid() bool {
	switch r {
	case AttendanceRoleHOD, AttendanceRolePermanent, AttendanceRoleSecretariat,
		AttendanceRoleItemOwner, AttendanceRoleAdditionalAttendee,
		AttendanceRoleDesignateReplacement:
		return true
	}
	return false
}

// AttendanceRecord is one expected-attendance fact: a (person, item) pair
// seeded by the roll-up. Only Attended and Remarks are mutable afterwards;
// the identity fields never change through the attendance update path.
type AttendanceRecord struct {
	ID          uuid.UUID
	PerNum      int
	Name        string
	Designation string
	MeetingID   uuid.UUID
	ItemID      uuid.UUID
	Attended    bool
	Role        AttendanceRole
	Remarks     string
}

// PersonAttendance is the aggregated per-person view across all items of a
// meeting. ItemIDs, Attended and Remarks are parallel slices: index i refers
// to the same underlying attendance row in all three.
type PersonAttendance struct {
	PerNum      int
	Name        string
	Designation string
	MeetingID   uuid.UUID
	ItemIDs     []uuid.UUID
	Attended    []bool
	Role        AttendanceRole
	Remarks     []string
}

// AttendanceEdit addresses one (person, item) row and carries the only two
// fields the editor may change.
type AttendanceEdit struct {
	PerNum   int
	ItemID   uuid.UUID
	Attended bool
	Remarks  string
}
