package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// SessionRepo tracks the currently logged-in user. The pointer is
// persisted so a restarted client resumes the same session.
type SessionRepo interface {
	// CurrentUser returns the logged-in user, or nil when nobody is.
	CurrentUser(ctx context.Context) (*User, error)

	// SetCurrentUser records the given user as logged in.
	SetCurrentUser(ctx context.Context, userID string) error

	// ClearCurrentUser logs out.
	ClearCurrentUser(ctx context.Context) error
}

type sessionRepo struct {
	db    *sql.DB
	users *userRepo
}

func (r *sessionRepo) CurrentUser(ctx context.Context) (*User, error) {
	var userID string
	err := r.db.QueryRowContext(ctx,
		"SELECT user_id FROM active_session WHERE id = 1").Scan(&userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}
	return r.users.Get(ctx, userID)
}

func (r *sessionRepo) SetCurrentUser(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT OR REPLACE INTO active_session (id, user_id) VALUES (1, ?)", userID)
	if err != nil {
		return fmt.Errorf("set session: %w", err)
	}
	return nil
}

func (r *sessionRepo) ClearCurrentUser(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM active_session WHERE id = 1")
	if err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
