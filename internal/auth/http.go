// ABOUTME: HTTP middleware that authenticates requests via bearer tokens
// ABOUTME: Extracts the Authorization header and attaches a Principal

package auth

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/secureapi/gateway/internal/metrics"
	"github.com/secureapi/gateway/internal/respond"
)

const bearerPrefix = "Bearer "

// extractBearerToken pulls the token out of an Authorization header.
// A missing header, wrong scheme, or empty token all return "", which
// Verify reports as ErrMissingToken.
func extractBearerToken(authHeader string) string {
	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return ""
	}
	return strings.TrimPrefix(authHeader, bearerPrefix)
}

// Authenticate creates HTTP middleware that verifies the bearer token and
// attaches a Principal to the request context. Any verification failure
// terminates the request immediately; no downstream gate or handler runs.
func Authenticate(codec *Codec, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearerToken(r.Header.Get("Authorization"))

			claims, err := codec.Verify(token)
			if err != nil {
				status, category, message, reason := mapVerifyError(err)
				if status == http.StatusInternalServerError {
					logger.Error("authentication misconfigured", "error", err)
				} else {
					logger.Warn("authentication failed",
						"reason", reason,
						"remote", r.RemoteAddr,
						"path", r.URL.Path,
					)
				}
				metrics.RecordAuthFailure(reason)
				respond.Error(w, status, category, message)
				return
			}

			permissions := claims.Permissions
			if permissions == nil {
				permissions = []string{}
			}
			principal := &Principal{
				UserID:      claims.Subject,
				Username:    claims.Username,
				Role:        claims.Role,
				Permissions: permissions,
			}

			logger.Debug("authentication passed",
				"user_id", principal.UserID,
				"role", principal.Role,
			)
			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), principal)))
		})
	}
}

// mapVerifyError converts a Verify error into the response triple plus a
// short reason label for logs and metrics. A missing server-side secret
// is an operator fault and maps to 500, everything else to 401.
func mapVerifyError(err error) (status int, category, message, reason string) {
	switch {
	case errors.Is(err, ErrMissingToken):
		return http.StatusUnauthorized, "Unauthorized", "No token provided", "missing_token"
	case errors.Is(err, ErrNotConfigured):
		return http.StatusInternalServerError, "Internal Server Error", "Authentication not properly configured", "not_configured"
	case errors.Is(err, ErrExpiredToken):
		return http.StatusUnauthorized, "Unauthorized", "Token expired", "expired"
	default:
		return http.StatusUnauthorized, "Unauthorized", "Invalid token", "invalid"
	}
}
