package user

type Role string

const (
	RoleOwner    Role = "owner"    // Company owner - full access
	RoleManager  Role = "manager"  // Approves leave, runs payroll
	RoleEmployee Role = "employee" // Regular employee
	RolePending  Role = "pending"  // Still in onboarding
)

// IsManager reports whether the role may act on other employees' data.
func (r Role) IsManager() bool {
	return r == RoleManager || r == RoleOwner
}
