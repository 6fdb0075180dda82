// Package session ties browser cookies to server-side sessions stored in SQLite.
package session

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
)

const cookieName = "museum_session"

var (
	ErrNoSession = errors.New("no session")
	ErrExpired   = errors.New("session expired")
)

// Store manages sessions in SQLite.
type Store struct {
	db     *sql.DB
	ttl    time.Duration
	secure bool
}

// NewStore creates a session store. Sessions expire ttl after creation.
func NewStore(db *sql.DB, ttl time.Duration, secure bool) *Store {
	return &Store{db: db, ttl: ttl, secure: secure}
}

// Create starts a new session and sets the cookie.
func (s *Store) Create(w http.ResponseWriter) (string, error) {
	id := uuid.NewString()
	expiresAt := time.Now().UTC().Add(s.ttl)

	if _, err := s.db.Exec(
		"INSERT INTO sessions (id, expires_at, last_seen_at) VALUES (?, ?, ?)",
		id, expiresAt, time.Now().UTC(),
	); err != nil {
		return "", fmt.Errorf("storing session: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    id,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})

	return id, nil
}

// Validate checks the session cookie and returns the session id if valid.
// An expired session is deleted and its id returned with ErrExpired so the
// caller can drop any state kept for it.
func (s *Store) Validate(r *http.Request) (string, error) {
	cookie, err := r.Cookie(cookieName)
	if err != nil {
		return "", ErrNoSession
	}
	if _, err := uuid.Parse(cookie.Value); err != nil {
		return "", ErrNoSession
	}

	var expiresAt time.Time
	err = s.db.QueryRow(
		"SELECT expires_at FROM sessions WHERE id = ?",
		cookie.Value,
	).Scan(&expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNoSession
	}
	if err != nil {
		return "", fmt.Errorf("querying session: %w", err)
	}

	if time.Now().After(expiresAt) {
		if _, delErr := s.db.Exec("DELETE FROM sessions WHERE id = ?", cookie.Value); delErr != nil {
			return "", fmt.Errorf("deleting expired session: %w", delErr)
		}
		return cookie.Value, ErrExpired
	}

	return cookie.Value, nil
}

// Touch records the session's current username and page.
func (s *Store) Touch(id, username, page string) error {
	if _, err := s.db.Exec(
		"UPDATE sessions SET username = ?, page = ?, last_seen_at = ? WHERE id = ?",
		username, page, time.Now().UTC(), id,
	); err != nil {
		return fmt.Errorf("touching session: %w", err)
	}
	return nil
}

// Info is a stored session row.
type Info struct {
	ID        string
	Username  string
	Page      string
	ExpiresAt time.Time
}

// Get returns the stored row of a session.
func (s *Store) Get(id string) (Info, error) {
	info := Info{ID: id}
	err := s.db.QueryRow(
		"SELECT username, page, expires_at FROM sessions WHERE id = ?", id,
	).Scan(&info.Username, &info.Page, &info.ExpiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Info{}, ErrNoSession
	}
	if err != nil {
		return Info{}, fmt.Errorf("querying session: %w", err)
	}
	return info, nil
}

// Count returns the number of stored sessions.
func (s *Store) Count() (int, error) {
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM sessions").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting sessions: %w", err)
	}
	return n, nil
}

// Cleanup removes expired sessions and returns their ids.
func (s *Store) Cleanup() ([]string, error) {
	now := time.Now().UTC()

	rows, err := s.db.Query("SELECT id FROM sessions WHERE expires_at < ?", now)
	if err != nil {
		return nil, fmt.Errorf("listing expired sessions: %w", err)
	}
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("scanning session: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, fmt.Errorf("iterating sessions: %w", err)
	}
	if err := rows.Close(); err != nil {
		return nil, fmt.Errorf("closing rows: %w", err)
	}

	if _, err := s.db.Exec("DELETE FROM sessions WHERE expires_at < ?", now); err != nil {
		return nil, fmt.Errorf("cleaning up sessions: %w", err)
	}
	return ids, nil
}
