package auth

// Tenant role hierarchy: owner > manager > member.
const (
	RoleMember  = "member"
	RoleManager = "manager"
	RoleOwner   = "owner"
)

// IsElevated reports whether the role is above the lowest-privilege tenant
// role. Both the API admin branch and the page admin check go through this
// one routine so the two can never diverge. Unknown role strings are not
// elevated.
func IsElevated(role string) bool {
	return role == RoleManager || role == RoleOwner
}
