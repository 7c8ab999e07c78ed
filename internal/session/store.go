// Package session persists the signed-in user's credentials between runs.
// The token is an opaque string issued elsewhere; this store never inspects,
// refreshes, or validates it.
package session

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"

	"planner-cli/internal/model"

	_ "modernc.org/sqlite"
)

const sessionDBName = "session.sqlite"

type Store struct {
	// Dir is the config directory holding session.sqlite.
	Dir string
}

func (s Store) dbPath() string {
	return filepath.Join(filepath.Clean(s.Dir), sessionDBName)
}

func (s Store) open(ctx context.Context) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Clean(s.Dir), 0o755); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", s.dbPath())
	if err != nil {
		return nil, err
	}
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		// Single-row session; id is fixed so Save is an upsert.
		`CREATE TABLE IF NOT EXISTS session (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			access_token TEXT NOT NULL,
			user_id TEXT NOT NULL,
			email TEXT NOT NULL DEFAULT ''
		);`,
		// Signup state carried between the register and OTP steps.
		`CREATE TABLE IF NOT EXISTS pending_signup (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			email TEXT NOT NULL,
			user_id TEXT NOT NULL DEFAULT ''
		);`,
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// Load returns the stored session, or a zero session when signed out.
func (s Store) Load(ctx context.Context) (model.Session, error) {
	db, err := s.open(ctx)
	if err != nil {
		return model.Session{}, err
	}
	defer db.Close()

	var sess model.Session
	row := db.QueryRowContext(ctx, `SELECT access_token, user_id, email FROM session WHERE id = 1`)
	if err := row.Scan(&sess.AccessToken, &sess.UserID, &sess.Email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Session{}, nil
		}
		return model.Session{}, err
	}
	return sess, nil
}

func (s Store) Save(ctx context.Context, sess model.Session) error {
	db, err := s.open(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	_, err = db.ExecContext(ctx, `
		INSERT INTO session (id, access_token, user_id, email) VALUES (1, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET access_token = excluded.access_token,
			user_id = excluded.user_id, email = excluded.email`,
		sess.AccessToken, sess.UserID, sess.Email)
	return err
}

// Clear signs the user out locally. The server-side token stays valid until
// it expires; revocation is not this client's concern.
func (s Store) Clear(ctx context.Context) error {
	db, err := s.open(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	_, err = db.ExecContext(ctx, `DELETE FROM session WHERE id = 1`)
	return err
}

// PendingSignup is the state between "account created" and "OTP verified".
type PendingSignup struct {
	Email  string
	UserID string
}

func (s Store) SavePendingSignup(ctx context.Context, p PendingSignup) error {
	db, err := s.open(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	_, err = db.ExecContext(ctx, `
		INSERT INTO pending_signup (id, email, user_id) VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET email = excluded.email, user_id = excluded.user_id`,
		p.Email, p.UserID)
	return err
}

func (s Store) LoadPendingSignup(ctx context.Context) (PendingSignup, error) {
	db, err := s.open(ctx)
	if err != nil {
		return PendingSignup{}, err
	}
	defer db.Close()

	var p PendingSignup
	row := db.QueryRowContext(ctx, `SELECT email, user_id FROM pending_signup WHERE id = 1`)
	if err := row.Scan(&p.Email, &p.UserID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return PendingSignup{}, nil
		}
		return PendingSignup{}, err
	}
	return p, nil
}

func (s Store) ClearPendingSignup(ctx context.Context) error {
	db, err := s.open(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	_, err = db.ExecContext(ctx, `DELETE FROM pending_signup WHERE id = 1`)
	return err
}
