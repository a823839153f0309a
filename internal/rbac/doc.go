// Package rbac provides role-based access control for the gateway.
//
// # Role Model
//
// Three roles are built in, ordered by privilege:
//
//	admin (3) > user (2) > guest (1)
//
// Each role grants a fixed permission set:
//
//	admin: read, write, delete, manage_users
//	user:  read, write
//	guest: read
//
// Unknown roles are not an error: they rank 0 and grant no permissions,
// so every gate fails closed for them. The tables live in a Policy value
// built once at startup and shared read-only by all requests.
//
// # Gates
//
// A Gate evaluates an authenticated principal to an Allow or Reject
// decision:
//
//	RoleGate        principal.role must be in an allowed set
//	PermissionGate  role must grant every required permission
//	MinRoleGate     role must rank at or above a minimum role
//
// Require adapts a gate into chi-compatible middleware, terminating the
// request with 401 (no principal) or 403 (rejected) so that no later
// gate or handler runs.
package rbac
