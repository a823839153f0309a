// ABOUTME: HTTP handlers for the login boundary and the protected areas
// ABOUTME: Login verifies bcrypt credentials without leaking which field was wrong

package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/secureapi/gateway/internal/auth"
	"github.com/secureapi/gateway/internal/metrics"
	"github.com/secureapi/gateway/internal/respond"
	"github.com/secureapi/gateway/internal/store"
)

// dummyHash is compared against when the username does not exist, so a
// failed lookup costs the same as a failed password check and usernames
// cannot be enumerated by timing.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// UserInfo is the public view of a user, without the password hash.
type UserInfo struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Role     string `json:"role"`
	Email    string `json:"email,omitempty"`
}

// LoginResponse is the JSON response for a successful login.
type LoginResponse struct {
	Message string   `json:"message"`
	Token   string   `json:"token"`
	User    UserInfo `json:"user"`
}

// Handler bundles the dependencies for all route handlers.
type Handler struct {
	store   store.CredentialStore
	codec   *auth.Codec
	logger  *slog.Logger
	version string
	started time.Time
}

// NewHandler creates the route handler set.
func NewHandler(credStore store.CredentialStore, codec *auth.Codec, logger *slog.Logger, version string) *Handler {
	return &Handler{
		store:   credStore,
		codec:   codec,
		logger:  logger,
		version: version,
		started: time.Now(),
	}
}

func userInfo(u *store.User) UserInfo {
	return UserInfo{
		UserID:   u.ID,
		Username: u.Username,
		Role:     u.Role,
		Email:    u.Email,
	}
}

// handleLogin processes POST /auth/login. A wrong username and a wrong
// password produce the same response; the caller cannot tell which field
// failed.
func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeBody(r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, "Bad Request", "Invalid JSON body")
		return
	}

	req.Username = sanitizeInput(req.Username)

	if fields := validateStruct(req); fields != nil {
		h.logger.Warn("login validation failed", "remote", r.RemoteAddr)
		respond.JSON(w, http.StatusBadRequest, respond.ErrorBody{
			Error:   "Validation Error",
			Message: "Invalid input data",
			Details: fields,
		})
		return
	}

	user, err := h.store.GetUserByUsername(r.Context(), req.Username)
	if err != nil {
		if !errors.Is(err, store.ErrUserNotFound) {
			h.logger.Error("credential lookup failed", "error", err)
			respond.Error(w, http.StatusInternalServerError, "Internal Server Error", "An unexpected error occurred")
			return
		}
		// Burn a bcrypt comparison so unknown usernames take as long as
		// wrong passwords.
		_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(req.Password))
		h.rejectLogin(w, r, req.Username)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		h.rejectLogin(w, r, req.Username)
		return
	}

	token, err := h.codec.Issue(user.ID, user.Username, user.Role, nil)
	if err != nil {
		if errors.Is(err, auth.ErrNotConfigured) {
			h.logger.Error("token issuance misconfigured", "error", err)
			respond.Error(w, http.StatusInternalServerError, "Internal Server Error", "Authentication not properly configured")
			return
		}
		h.logger.Error("token issuance failed", "error", err)
		respond.Error(w, http.StatusInternalServerError, "Internal Server Error", "An unexpected error occurred")
		return
	}

	metrics.RecordLogin(true)
	h.logger.Info("user logged in",
		"user_id", user.ID,
		"username", user.Username,
		"role", user.Role,
	)
	respond.JSON(w, http.StatusOK, LoginResponse{
		Message: "Login successful",
		Token:   token,
		User:    userInfo(user),
	})
}

func (h *Handler) rejectLogin(w http.ResponseWriter, r *http.Request, username string) {
	metrics.RecordLogin(false)
	h.logger.Warn("login failed", "username", username, "remote", r.RemoteAddr)
	respond.Error(w, http.StatusUnauthorized, "Unauthorized", "Invalid username or password")
}

// handleListUsers returns the known users without their secrets.
func (h *Handler) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.store.ListUsers(r.Context())
	if err != nil {
		h.logger.Error("listing users failed", "error", err)
		respond.Error(w, http.StatusInternalServerError, "Internal Server Error", "An unexpected error occurred")
		return
	}

	infos := make([]UserInfo, len(users))
	for i := range users {
		infos[i] = userInfo(&users[i])
	}
	respond.JSON(w, http.StatusOK, map[string]any{"users": infos})
}

// handleRoot describes the service.
func (h *Handler) handleRoot(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, map[string]any{
		"name":        "Secure API Gateway",
		"version":     h.version,
		"description": "JWT-based authentication with RBAC",
		"endpoints": map[string]string{
			"health":  "/health",
			"metrics": "/metrics",
			"auth":    "/auth/*",
			"api":     "/api/*",
		},
	})
}

// handleHealth reports liveness.
func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"uptime":    time.Since(h.started).String(),
		"version":   h.version,
	})
}

// handlePublic is reachable without authentication.
func (h *Handler) handlePublic(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, map[string]any{
		"message":   "This is a public endpoint",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"access":    "public",
	})
}

// handleGuestArea is behind the guest-or-better role gate.
func (h *Handler) handleGuestArea(w http.ResponseWriter, r *http.Request) {
	p := auth.MustFromContext(r.Context())
	respond.JSON(w, http.StatusOK, map[string]any{
		"message": "Welcome to the guest area",
		"user":    p.Username,
		"role":    p.Role,
		"access":  "guest",
	})
}

// handleUserArea is behind the user-or-admin role gate.
func (h *Handler) handleUserArea(w http.ResponseWriter, r *http.Request) {
	p := auth.MustFromContext(r.Context())
	respond.JSON(w, http.StatusOK, map[string]any{
		"message": "Welcome to the user area",
		"user":    p.Username,
		"role":    p.Role,
		"access":  "user",
		"data": map[string]string{
			"feature1": "User feature access",
			"feature2": "Read and write capabilities",
		},
	})
}

// handleAdminArea is behind the admin-only role gate.
func (h *Handler) handleAdminArea(w http.ResponseWriter, r *http.Request) {
	p := auth.MustFromContext(r.Context())
	respond.JSON(w, http.StatusOK, map[string]any{
		"message": "Welcome to the admin area",
		"user":    p.Username,
		"role":    p.Role,
		"access":  "admin",
		"data": map[string]any{
			"systemStatus": "All systems operational",
			"uptime":       time.Since(h.started).String(),
		},
	})
}

// handleCreateUser is behind the manage_users permission gate. User
// creation itself is out of scope; the endpoint validates its input and
// acknowledges.
func (h *Handler) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	p := auth.MustFromContext(r.Context())

	var req CreateUserRequest
	if err := decodeBody(r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, "Bad Request", "Invalid JSON body")
		return
	}
	req.Username = sanitizeInput(req.Username)
	req.Email = sanitizeInput(req.Email)

	if fields := validateStruct(req); fields != nil {
		respond.JSON(w, http.StatusBadRequest, respond.ErrorBody{
			Error:   "Validation Error",
			Message: "Invalid input data",
			Details: fields,
		})
		return
	}

	respond.JSON(w, http.StatusOK, map[string]any{
		"message":     "User creation endpoint",
		"note":        "Persistent user management is not implemented",
		"requestedBy": p.Username,
	})
}

// handleDeleteUser is behind the delete permission gate.
func (h *Handler) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	p := auth.MustFromContext(r.Context())
	respond.JSON(w, http.StatusOK, map[string]any{
		"message":     "User deletion endpoint",
		"note":        "Persistent user management is not implemented",
		"userId":      chi.URLParam(r, "id"),
		"requestedBy": p.Username,
	})
}

// handleReports is behind the minimum-role gate (user or better).
func (h *Handler) handleReports(w http.ResponseWriter, r *http.Request) {
	p := auth.MustFromContext(r.Context())
	respond.JSON(w, http.StatusOK, map[string]any{
		"message": "Usage reports",
		"user":    p.Username,
		"role":    p.Role,
	})
}

// handleProtected only requires authentication, no authorization gate.
func (h *Handler) handleProtected(w http.ResponseWriter, r *http.Request) {
	p := auth.MustFromContext(r.Context())
	respond.JSON(w, http.StatusOK, map[string]any{
		"message": "This is a protected endpoint",
		"user": UserInfo{
			UserID:   p.UserID,
			Username: p.Username,
			Role:     p.Role,
		},
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// handleNotFound is the JSON 404 fallback.
func (h *Handler) handleNotFound(w http.ResponseWriter, r *http.Request) {
	h.logger.Warn("route not found", "path", r.URL.Path, "method", r.Method)
	respond.JSON(w, http.StatusNotFound, respond.ErrorBody{
		Error:   "Not Found",
		Message: "The requested resource does not exist",
		Path:    r.URL.Path,
	})
}
