package domain

// Person is a row of the personnel directory. The directory is seeded once
// and read-only at runtime.
type Person struct {
	PerNum         int
	Name           string
	Designation    string
	EmploymentRole EmploymentRole
}

// Registry names one of the two standing membership tables. It is a closed
// set: callers pick a variant, never a table name.
type Registry string

const (
	RegistryCoreMembers Registry = "CORE_MEMBERS"
	RegistrySecretariat Registry = "SECRETARIAT"
)

func (r Registry) String() string { return string(r) }

func (r Registry) IsValid() bool {
	switch r {
	case RegistryCoreMembers, RegistrySecretariat:
		return true
	}
	return false
}

// EmploymentRole classifies a directory person for attendance purposes.
// The empty value means the person carries no standing classification.
type EmploymentRole string

const (
	EmploymentRoleHOD       EmploymentRole = "HOD"
	EmploymentRolePermanent EmploymentRole = "Permanent"
	EmploymentRoleNone      EmploymentRole = ""
)

func (r EmploymentRole) String() string { return string(r) }

func (r EmploymentRole) IsValid() bool {
	switch r {
	case EmploymentRoleHOD, EmploymentRolePermanent, EmploymentRoleNone:
		return true
	}
	return false
}

// MembershipRecord is a registry row. Name and designation are denormalized
// copies taken from the directory at insertion time; editing the directory
// afterwards does not update them. The registry is a snapshot, not a view.
type MembershipRecord struct {
	PerNum      int
	Name        string
	Designation string
	Role        string
}
