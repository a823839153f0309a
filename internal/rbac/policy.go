// ABOUTME: Role hierarchy and role-to-permission tables for authorization
// ABOUTME: Policy is built once at startup and read-only afterwards

package rbac

// RoleName represents a role that can be assigned to a user
type RoleName string

const (
	RoleAdmin RoleName = "admin"
	RoleUser  RoleName = "user"
	RoleGuest RoleName = "guest"
)

// ValidRoleNames lists all roles known to the gateway
var ValidRoleNames = []RoleName{
	RoleAdmin,
	RoleUser,
	RoleGuest,
}

// Permission names granted through roles
const (
	PermissionRead        = "read"
	PermissionWrite       = "write"
	PermissionDelete      = "delete"
	PermissionManageUsers = "manage_users"
)

// Policy holds the role hierarchy and the role-to-permission tables.
// It is constructed once at process start and never mutated afterwards,
// so concurrent reads from request handlers need no synchronization.
type Policy struct {
	hierarchy   map[RoleName]int
	permissions map[RoleName][]string
	grants      map[RoleName]map[string]struct{}
}

// NewPolicy builds a Policy from a hierarchy and permission table.
// The input maps are copied; the caller may discard them afterwards.
func NewPolicy(hierarchy map[RoleName]int, permissions map[RoleName][]string) *Policy {
	p := &Policy{
		hierarchy:   make(map[RoleName]int, len(hierarchy)),
		permissions: make(map[RoleName][]string, len(permissions)),
		grants:      make(map[RoleName]map[string]struct{}, len(permissions)),
	}
	for role, rank := range hierarchy {
		p.hierarchy[role] = rank
	}
	for role, perms := range permissions {
		copied := make([]string, len(perms))
		copy(copied, perms)
		p.permissions[role] = copied

		set := make(map[string]struct{}, len(perms))
		for _, perm := range perms {
			set[perm] = struct{}{}
		}
		p.grants[role] = set
	}
	return p
}

// DefaultPolicy returns the gateway's built-in role tables:
// admin(3) > user(2) > guest(1), with admin granted
// read/write/delete/manage_users, user read/write, and guest read.
func DefaultPolicy() *Policy {
	return NewPolicy(
		map[RoleName]int{
			RoleAdmin: 3,
			RoleUser:  2,
			RoleGuest: 1,
		},
		map[RoleName][]string{
			RoleAdmin: {PermissionRead, PermissionWrite, PermissionDelete, PermissionManageUsers},
			RoleUser:  {PermissionRead, PermissionWrite},
			RoleGuest: {PermissionRead},
		},
	)
}

// Rank returns the hierarchy rank for a role. Unknown roles rank 0,
// which places them below every configured role without being an error.
func (p *Policy) Rank(role RoleName) int {
	return p.hierarchy[role]
}

// AtLeast reports whether role ranks at or above min in the hierarchy.
func (p *Policy) AtLeast(role, min RoleName) bool {
	return p.Rank(role) >= p.Rank(min)
}

// PermissionsFor returns a copy of the permission set granted to a role.
// Unknown roles get an empty set, never an error.
func (p *Policy) PermissionsFor(role RoleName) []string {
	perms := p.permissions[role]
	copied := make([]string, len(perms))
	copy(copied, perms)
	return copied
}

// HasPermissions reports whether the role's granted set contains every
// required permission. Order and duplicates in required are irrelevant.
func (p *Policy) HasPermissions(role RoleName, required []string) bool {
	granted := p.grants[role]
	for _, perm := range required {
		if _, ok := granted[perm]; !ok {
			return false
		}
	}
	return true
}
