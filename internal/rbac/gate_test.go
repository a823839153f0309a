// ABOUTME: Tests for the role, permission, and minimum-role gates
// ABOUTME: Exercises allow/reject decisions and rejection payloads

package rbac

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/secureapi/gateway/internal/auth"
)

func principalWithRole(role string) *auth.Principal {
	return &auth.Principal{
		UserID:   "user-123",
		Username: "test",
		Role:     role,
	}
}

func TestRoleGate(t *testing.T) {
	tests := []struct {
		name    string
		allowed []RoleName
		role    string
		want    bool
	}{
		{"admin in admin-only", []RoleName{RoleAdmin}, "admin", true},
		{"user not in admin-only", []RoleName{RoleAdmin}, "user", false},
		{"guest in broad set", []RoleName{RoleGuest, RoleUser, RoleAdmin}, "guest", true},
		{"user in user-or-admin", []RoleName{RoleUser, RoleAdmin}, "user", true},
		{"guest not in user-or-admin", []RoleName{RoleUser, RoleAdmin}, "guest", false},
		{"unknown role always fails", []RoleName{RoleGuest, RoleUser, RoleAdmin}, "superuser", false},
		{"empty role fails", []RoleName{RoleAdmin}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gate := NewRoleGate(tt.allowed...)
			d := gate.Evaluate(principalWithRole(tt.role))
			assert.Equal(t, tt.want, d.Allowed)
		})
	}
}

func TestRoleGate_RejectionPayload(t *testing.T) {
	gate := NewRoleGate(RoleAdmin)
	d := gate.Evaluate(principalWithRole("user"))

	assert.False(t, d.Allowed)
	assert.Equal(t, "Insufficient permissions", d.Message)
	assert.Equal(t, []string{"admin"}, d.Required)
	assert.Equal(t, "user", d.Current)
}

func TestPermissionGate(t *testing.T) {
	policy := DefaultPolicy()

	tests := []struct {
		name     string
		required []string
		role     string
		want     bool
	}{
		{"admin has manage_users", []string{"manage_users"}, "admin", true},
		{"user lacks manage_users", []string{"manage_users"}, "user", false},
		{"user has read and write", []string{"read", "write"}, "user", true},
		{"guest has read", []string{"read"}, "guest", true},
		{"guest lacks write", []string{"write"}, "guest", false},
		{"admin has delete", []string{"delete"}, "admin", true},
		{"unknown role fails", []string{"read"}, "superuser", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gate := NewPermissionGate(policy, tt.required...)
			d := gate.Evaluate(principalWithRole(tt.role))
			assert.Equal(t, tt.want, d.Allowed)
		})
	}
}

func TestPermissionGate_RejectionPayload(t *testing.T) {
	gate := NewPermissionGate(DefaultPolicy(), "manage_users")
	d := gate.Evaluate(principalWithRole("user"))

	assert.False(t, d.Allowed)
	assert.Equal(t, "Insufficient permissions", d.Message)
	assert.Equal(t, []string{"manage_users"}, d.Required)
	assert.Empty(t, d.Current)
}

func TestMinRoleGate(t *testing.T) {
	policy := DefaultPolicy()

	tests := []struct {
		name string
		min  RoleName
		role string
		want bool
	}{
		{"admin meets user minimum", RoleUser, "admin", true},
		{"user meets user minimum", RoleUser, "user", true},
		{"guest fails user minimum", RoleUser, "guest", false},
		{"guest meets guest minimum", RoleGuest, "guest", true},
		{"unknown fails guest minimum", RoleGuest, "superuser", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gate := NewMinRoleGate(policy, tt.min)
			d := gate.Evaluate(principalWithRole(tt.role))
			assert.Equal(t, tt.want, d.Allowed)
		})
	}
}

func TestMinRoleGate_RejectionPayload(t *testing.T) {
	gate := NewMinRoleGate(DefaultPolicy(), RoleUser)
	d := gate.Evaluate(principalWithRole("guest"))

	assert.False(t, d.Allowed)
	assert.Equal(t, "Insufficient role level", d.Message)
	assert.Equal(t, "user", d.Required)
	assert.Equal(t, "guest", d.Current)
}
