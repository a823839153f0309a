// ABOUTME: Principal context for tracking identity through request handlers
// ABOUTME: Provides WithPrincipal/FromContext for propagation via context

package auth

import (
	"context"
)

// Principal holds the authenticated identity attached to a request.
// It is allocated fresh per request by the authentication middleware and
// discarded at request end; it is never persisted or shared.
type Principal struct {
	UserID      string   // subject id from the token's sub claim
	Username    string   // login name
	Role        string   // role name; may be unknown to the rbac tables
	Permissions []string // token-carried permissions; empty unless the token set them
}

// principalKey is the key type for storing a Principal in context.Context.
type principalKey struct{}

// WithPrincipal returns a new context with the Principal attached.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// FromContext retrieves the Principal from the context, returning nil if
// the request was not authenticated.
func FromContext(ctx context.Context) *Principal {
	val := ctx.Value(principalKey{})
	if val == nil {
		return nil
	}
	p, ok := val.(*Principal)
	if !ok {
		return nil
	}
	return p
}

// MustFromContext retrieves the Principal from the context, panicking if
// not present. Only for handlers that are always behind Authenticate.
func MustFromContext(ctx context.Context) *Principal {
	p := FromContext(ctx)
	if p == nil {
		panic("auth: Principal not found in context")
	}
	return p
}
