// ABOUTME: Gate value objects that decide whether a principal may proceed
// ABOUTME: Each gate is a pure function from principal to Allow/Reject

package rbac

import (
	"github.com/secureapi/gateway/internal/auth"
)

// Decision is the outcome of evaluating a gate against a principal.
// A rejected decision carries the payload fields surfaced to the caller.
type Decision struct {
	Allowed  bool
	Message  string
	Required any    // allowed roles, required permissions, or minimum role
	Current  string // principal's actual role, when relevant
}

// Allow returns a passing decision.
func Allow() Decision {
	return Decision{Allowed: true}
}

// Reject returns a terminal decision with the given payload.
func Reject(message string, required any, current string) Decision {
	return Decision{Message: message, Required: required, Current: current}
}

// Gate is a single authorization decision point. Gates are stateless
// value objects; the same gate may be evaluated concurrently.
type Gate interface {
	Evaluate(p *auth.Principal) Decision
}

// RoleGate passes principals whose role is in a fixed allowed set.
type RoleGate struct {
	allowed map[RoleName]struct{}
	names   []string
}

// NewRoleGate creates a gate allowing exactly the given roles.
func NewRoleGate(roles ...RoleName) RoleGate {
	allowed := make(map[RoleName]struct{}, len(roles))
	names := make([]string, len(roles))
	for i, role := range roles {
		allowed[role] = struct{}{}
		names[i] = string(role)
	}
	return RoleGate{allowed: allowed, names: names}
}

// Evaluate passes iff the principal's role is in the allowed set.
// Unknown roles are never in the set, so they always fail.
func (g RoleGate) Evaluate(p *auth.Principal) Decision {
	if _, ok := g.allowed[RoleName(p.Role)]; ok {
		return Allow()
	}
	return Reject("Insufficient permissions", g.names, p.Role)
}

// PermissionGate passes principals whose role grants every required permission.
type PermissionGate struct {
	policy   *Policy
	required []string
}

// NewPermissionGate creates a gate requiring all the given permissions.
func NewPermissionGate(policy *Policy, permissions ...string) PermissionGate {
	required := make([]string, len(permissions))
	copy(required, permissions)
	return PermissionGate{policy: policy, required: required}
}

// Evaluate passes iff every required permission is granted to the
// principal's role. Unknown roles have an empty grant set and fail
// whenever at least one permission is required.
func (g PermissionGate) Evaluate(p *auth.Principal) Decision {
	if g.policy.HasPermissions(RoleName(p.Role), g.required) {
		return Allow()
	}
	return Reject("Insufficient permissions", g.required, "")
}

// MinRoleGate passes principals whose role ranks at or above a minimum.
type MinRoleGate struct {
	policy *Policy
	min    RoleName
}

// NewMinRoleGate creates a gate requiring at least the given role level.
func NewMinRoleGate(policy *Policy, min RoleName) MinRoleGate {
	return MinRoleGate{policy: policy, min: min}
}

// Evaluate passes iff rank(principal.role) >= rank(min). Unknown roles
// on either side rank 0.
func (g MinRoleGate) Evaluate(p *auth.Principal) Decision {
	if g.policy.AtLeast(RoleName(p.Role), g.min) {
		return Allow()
	}
	return Reject("Insufficient role level", string(g.min), p.Role)
}
