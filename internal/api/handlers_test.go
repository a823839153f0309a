// ABOUTME: End-to-end scenario tests for the full gate pipeline
// ABOUTME: Exercises login, role, permission, and min-role routes over httptest

package api

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/secureapi/gateway/internal/auth"
	"github.com/secureapi/gateway/internal/rbac"
	"github.com/secureapi/gateway/internal/store"
)

const testSecret = "test-secret-key-for-jwt-signing"

type testEnv struct {
	server *httptest.Server
	codec  *auth.Codec
}

type errorEnvelope struct {
	Error    string          `json:"error"`
	Message  string          `json:"message"`
	Required json.RawMessage `json:"required"`
	Current  string          `json:"current"`
	Details  json.RawMessage `json:"details"`
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	credStore, err := store.NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { credStore.Close() })

	codec := auth.NewCodec([]byte(testSecret), time.Hour, "secure-api-gateway", "api-clients")
	handler := NewHandler(credStore, codec, logger, "test")
	router := NewRouter(handler, codec, rbac.DefaultPolicy(), logger, RouterConfig{
		// High limits so scenario tests never trip the login throttle
		LoginPerMinute: 6000,
		LoginBurst:     1000,
	})

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &testEnv{server: server, codec: codec}
}

func (e *testEnv) login(t *testing.T, username, password string) *http.Response {
	t.Helper()

	body, err := json.Marshal(map[string]string{"username": username, "password": password})
	require.NoError(t, err)

	resp, err := http.Post(e.server.URL+"/auth/login", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	return resp
}

func (e *testEnv) get(t *testing.T, path, token string) *http.Response {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, e.server.URL+path, nil)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func (e *testEnv) tokenFor(t *testing.T, username, password string) string {
	t.Helper()

	resp := e.login(t, username, password)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var lr LoginResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&lr))
	return lr.Token
}

func decodeError(t *testing.T, resp *http.Response) errorEnvelope {
	t.Helper()
	defer resp.Body.Close()

	var env errorEnvelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return env
}

func TestLogin_Success(t *testing.T) {
	env := newTestEnv(t)

	resp := env.login(t, "admin", "Admin@123")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var lr LoginResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&lr))

	assert.Equal(t, "Login successful", lr.Message)
	assert.NotEmpty(t, lr.Token)
	assert.Equal(t, "admin", lr.User.Username)
	assert.Equal(t, "admin", lr.User.Role)
	assert.Equal(t, "admin@example.com", lr.User.Email)

	// The issued token round-trips through the verifier
	claims, err := env.codec.Verify(lr.Token)
	require.NoError(t, err)
	assert.Equal(t, lr.User.UserID, claims.Subject)
	assert.Equal(t, "admin", claims.Role)
}

func TestLogin_WrongPassword(t *testing.T) {
	env := newTestEnv(t)

	resp := env.login(t, "admin", "wrong")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	envlp := decodeError(t, resp)
	assert.Equal(t, "Unauthorized", envlp.Error)
	assert.Equal(t, "Invalid username or password", envlp.Message)
}

// Wrong username and wrong password must be indistinguishable.
func TestLogin_UnknownUser_SameResponse(t *testing.T) {
	env := newTestEnv(t)

	respUser := env.login(t, "nobody", "Admin@123")
	respPass := env.login(t, "admin", "wrong")

	assert.Equal(t, http.StatusUnauthorized, respUser.StatusCode)
	assert.Equal(t, http.StatusUnauthorized, respPass.StatusCode)

	envUser := decodeError(t, respUser)
	envPass := decodeError(t, respPass)
	assert.Equal(t, envPass, envUser)
}

func TestLogin_ValidationError(t *testing.T) {
	env := newTestEnv(t)

	resp := env.login(t, "ab", "short")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	envlp := decodeError(t, resp)
	assert.Equal(t, "Validation Error", envlp.Error)
	assert.Equal(t, "Invalid input data", envlp.Message)

	var details []FieldError
	require.NoError(t, json.Unmarshal(envlp.Details, &details))
	assert.Len(t, details, 2)
}

func TestPublicEndpoint_NoAuth(t *testing.T) {
	env := newTestEnv(t)

	resp := env.get(t, "/api/public", "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestProtected_NoToken(t *testing.T) {
	env := newTestEnv(t)

	resp := env.get(t, "/api/protected", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	envlp := decodeError(t, resp)
	assert.Equal(t, "Unauthorized", envlp.Error)
	assert.Equal(t, "No token provided", envlp.Message)
}

func TestProtected_ExpiredToken(t *testing.T) {
	env := newTestEnv(t)

	expiredCodec := auth.NewCodec([]byte(testSecret), -time.Hour, "secure-api-gateway", "api-clients")
	token, err := expiredCodec.Issue("user-123", "alice", "user", nil)
	require.NoError(t, err)

	resp := env.get(t, "/api/protected", token)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	envlp := decodeError(t, resp)
	assert.Equal(t, "Token expired", envlp.Message)
}

func TestAdminRoute_UserToken(t *testing.T) {
	env := newTestEnv(t)

	token := env.tokenFor(t, "user", "User@123")
	resp := env.get(t, "/api/admin", token)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	envlp := decodeError(t, resp)
	assert.Equal(t, "Forbidden", envlp.Error)
	assert.Equal(t, "Insufficient permissions", envlp.Message)
	assert.Equal(t, "user", envlp.Current)

	var required []string
	require.NoError(t, json.Unmarshal(envlp.Required, &required))
	assert.Equal(t, []string{"admin"}, required)
}

func TestAdminRoute_AdminToken(t *testing.T) {
	env := newTestEnv(t)

	token := env.tokenFor(t, "admin", "Admin@123")
	resp := env.get(t, "/api/admin", token)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestGuestRoute_AllRoles(t *testing.T) {
	env := newTestEnv(t)

	creds := map[string]string{
		"admin": "Admin@123",
		"user":  "User@123",
		"guest": "Guest@123",
	}
	for username, password := range creds {
		token := env.tokenFor(t, username, password)
		resp := env.get(t, "/api/guest", token)
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode, "role %s should reach the guest area", username)
	}
}

func TestUserRoute_GuestForbidden(t *testing.T) {
	env := newTestEnv(t)

	token := env.tokenFor(t, "guest", "Guest@123")
	resp := env.get(t, "/api/user", token)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()
}

func TestPermissionRoute_ManageUsers(t *testing.T) {
	env := newTestEnv(t)

	body := []byte(`{"username":"newuser","email":"new@example.com","password":"Sup3r@Secret"}`)

	// user lacks manage_users
	userToken := env.tokenFor(t, "user", "User@123")
	req, err := http.NewRequest(http.MethodPost, env.server.URL+"/api/admin/users", bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+userToken)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	envlp := decodeError(t, resp)
	var required []string
	require.NoError(t, json.Unmarshal(envlp.Required, &required))
	assert.Equal(t, []string{"manage_users"}, required)

	// admin has it
	adminToken := env.tokenFor(t, "admin", "Admin@123")
	req, err = http.NewRequest(http.MethodPost, env.server.URL+"/api/admin/users", bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestDeleteRoute_RequiresDeletePermission(t *testing.T) {
	env := newTestEnv(t)

	guestToken := env.tokenFor(t, "guest", "Guest@123")
	req, err := http.NewRequest(http.MethodDelete, env.server.URL+"/api/admin/users/some-id", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+guestToken)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	adminToken := env.tokenFor(t, "admin", "Admin@123")
	req, err = http.NewRequest(http.MethodDelete, env.server.URL+"/api/admin/users/some-id", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestReportsRoute_MinRole(t *testing.T) {
	env := newTestEnv(t)

	for _, tc := range []struct {
		username string
		password string
		want     int
	}{
		{"admin", "Admin@123", http.StatusOK},
		{"user", "User@123", http.StatusOK},
		{"guest", "Guest@123", http.StatusForbidden},
	} {
		token := env.tokenFor(t, tc.username, tc.password)
		resp := env.get(t, "/api/reports", token)
		resp.Body.Close()
		assert.Equal(t, tc.want, resp.StatusCode, "role %s", tc.username)
	}
}

func TestListUsers_NoSecrets(t *testing.T) {
	env := newTestEnv(t)

	resp := env.get(t, "/auth/users", "")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "password")
	assert.NotContains(t, string(raw), "$2a$")

	var payload struct {
		Users []UserInfo `json:"users"`
	}
	require.NoError(t, json.Unmarshal(raw, &payload))
	assert.Len(t, payload.Users, 3)
}

func TestNotFound(t *testing.T) {
	env := newTestEnv(t)

	resp := env.get(t, "/no/such/route", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	envlp := decodeError(t, resp)
	assert.Equal(t, "Not Found", envlp.Error)
	assert.Equal(t, "The requested resource does not exist", envlp.Message)
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)

	resp := env.get(t, "/health", "")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var payload map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.Equal(t, "healthy", payload["status"])
}
