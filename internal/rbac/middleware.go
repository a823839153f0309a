// ABOUTME: HTTP middleware adapter that enforces gate decisions per route
// ABOUTME: Maps missing principal to 401 and gate rejections to 403

package rbac

import (
	"log/slog"
	"net/http"

	"github.com/secureapi/gateway/internal/auth"
	"github.com/secureapi/gateway/internal/metrics"
	"github.com/secureapi/gateway/internal/respond"
)

// Require wraps a gate as HTTP middleware. The request must already have
// passed authentication: a missing principal terminates with 401 before
// the gate is evaluated. A rejecting gate terminates with 403 and the
// decision payload; no downstream handler runs after a rejection.
func Require(gate Gate, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal := auth.FromContext(r.Context())
			if principal == nil {
				logger.Warn("authorization check without principal",
					"path", r.URL.Path,
				)
				metrics.RecordAuthzDenied("unauthenticated")
				respond.Error(w, http.StatusUnauthorized, "Unauthorized", "Authentication required")
				return
			}

			decision := gate.Evaluate(principal)
			if !decision.Allowed {
				logger.Warn("authorization denied",
					"user_id", principal.UserID,
					"role", principal.Role,
					"path", r.URL.Path,
					"reason", decision.Message,
				)
				metrics.RecordAuthzDenied("forbidden")
				respond.JSON(w, http.StatusForbidden, respond.ErrorBody{
					Error:    "Forbidden",
					Message:  decision.Message,
					Required: decision.Required,
					Current:  decision.Current,
				})
				return
			}

			logger.Debug("authorization passed",
				"user_id", principal.UserID,
				"role", principal.Role,
				"path", r.URL.Path,
			)
			next.ServeHTTP(w, r)
		})
	}
}
