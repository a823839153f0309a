// Package auth provides token-based authentication for the gateway.
//
// # Tokens
//
// Identity is carried in HS256-signed JWTs issued at login. Claims embed
// the subject id, username, role, and an optional permission list on top
// of the registered claims (iat, exp, nbf, iss, aud). Expiry is enforced
// at verification time from the token's own exp claim; tokens are never
// proactively invalidated.
//
// # Failure Taxonomy
//
// Verify distinguishes four failures, checked in order:
//
//	ErrMissingToken   no token supplied (also: wrong Authorization scheme)
//	ErrNotConfigured  signing secret absent server-side (operator fault, 500)
//	ErrExpiredToken   exp claim at or before now
//	ErrInvalidToken   bad signature, wrong algorithm, or structural problem
//
// # Middleware
//
// Authenticate wraps handlers with bearer-token verification and attaches
// a request-scoped Principal to the context via WithPrincipal/FromContext.
// Authorization gates in the rbac package consume that Principal.
package auth
