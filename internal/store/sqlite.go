// ABOUTME: SQLite implementation of CredentialStore using modernc.org/sqlite
// ABOUTME: Creates the schema on open and seeds the default user set

package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements CredentialStore using SQLite
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// seedUser is a default account created on first open if absent.
type seedUser struct {
	id       string
	username string
	password string
	role     string
	email    string
}

// Development seed accounts. IDs are fixed so tokens stay valid across
// restarts; passwords are bcrypt-hashed at seed time, never stored plain.
var defaultUsers = []seedUser{
	{
		id:       "550e8400-e29b-41d4-a716-446655440000",
		username: "admin",
		password: "Admin@123",
		role:     "admin",
		email:    "admin@example.com",
	},
	{
		id:       "550e8400-e29b-41d4-a716-446655440001",
		username: "user",
		password: "User@123",
		role:     "user",
		email:    "user@example.com",
	},
	{
		id:       "550e8400-e29b-41d4-a716-446655440002",
		username: "guest",
		password: "Guest@123",
		role:     "guest",
		email:    "guest@example.com",
	},
}

// NewSQLiteStore creates a new SQLite store at the given path.
// The schema is automatically created if it doesn't exist and the default
// users are seeded. Parent directories are created if needed.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	logger := slog.Default().With("component", "store")

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Enable WAL mode for better concurrent performance
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	s := &SQLiteStore{
		db:     db,
		logger: logger,
	}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	if err := s.seedDefaultUsers(); err != nil {
		db.Close()
		return nil, fmt.Errorf("seeding default users: %w", err)
	}

	logger.Info("credential store initialized", "path", path)
	return s, nil
}

// createSchema creates the database tables if they don't exist
func (s *SQLiteStore) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			username TEXT NOT NULL UNIQUE,
			role TEXT NOT NULL,
			email TEXT NOT NULL DEFAULT '',
			password_hash TEXT NOT NULL,
			created_at DATETIME NOT NULL
		);

		CREATE UNIQUE INDEX IF NOT EXISTS idx_users_username ON users(username);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("executing schema: %w", err)
	}
	return nil
}

// seedDefaultUsers inserts the default accounts if they don't already
// exist. Seeding is idempotent: existing rows are left untouched.
func (s *SQLiteStore) seedDefaultUsers() error {
	query := `
		INSERT OR IGNORE INTO users (id, username, role, email, password_hash, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	for _, u := range defaultUsers {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hashing password for %q: %w", u.username, err)
		}

		if _, err := s.db.Exec(query,
			u.id,
			u.username,
			u.role,
			u.email,
			string(hash),
			time.Now().UTC().Format(time.RFC3339),
		); err != nil {
			return fmt.Errorf("inserting user %q: %w", u.username, err)
		}
	}

	s.logger.Debug("seeded default users", "count", len(defaultUsers))
	return nil
}

// GetUserByUsername returns the user with the given username, or
// ErrUserNotFound if no such user exists.
func (s *SQLiteStore) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	query := `
		SELECT id, username, role, email, password_hash, created_at
		FROM users WHERE username = ?
	`

	var u User
	var createdAt string
	err := s.db.QueryRowContext(ctx, query, username).Scan(
		&u.ID, &u.Username, &u.Role, &u.Email, &u.PasswordHash, &createdAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying user: %w", err)
	}

	u.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return &u, nil
}

// ListUsers returns all users ordered by username.
func (s *SQLiteStore) ListUsers(ctx context.Context) ([]User, error) {
	query := `
		SELECT id, username, role, email, password_hash, created_at
		FROM users ORDER BY username
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		var u User
		var createdAt string
		if err := rows.Scan(&u.ID, &u.Username, &u.Role, &u.Email, &u.PasswordHash, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning user: %w", err)
		}
		u.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating users: %w", err)
	}

	return users, nil
}

// Close closes the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
