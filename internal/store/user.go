package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Role is a user's role in the platform.
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleTeacher Role = "TEACHER"
	RoleStudent Role = "STUDENT"
)

// User is one account record. Login is by username only; the platform
// has no password model.
type User struct {
	ID         string
	Username   string
	FullName   string
	Role       Role
	Email      string
	HasPaid    bool
	JoinedDate time.Time
}

// UserRepo provides CRUD access to user records.
type UserRepo interface {
	// List returns all users ordered by join date.
	List(ctx context.Context) ([]User, error)

	// FindByUsername returns the user with the given username,
	// or nil when no such user exists.
	FindByUsername(ctx context.Context, username string) (*User, error)

	// Get returns the user with the given id, or nil when absent.
	Get(ctx context.Context, id string) (*User, error)

	// Add inserts a new user. A zero ID is replaced with a fresh UUID.
	Add(ctx context.Context, u *User) error

	// Update overwrites the stored record with the same ID.
	Update(ctx context.Context, u *User) error

	// Delete removes the user with the given id.
	Delete(ctx context.Context, id string) error
}

type userRepo struct {
	db *sql.DB
}

const userColumns = "id, username, full_name, role, email, has_paid, joined_date"

func (r *userRepo) List(ctx context.Context) ([]User, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+userColumns+" FROM users ORDER BY joined_date, username")
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

func (r *userRepo) FindByUsername(ctx context.Context, username string) (*User, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE username = ?", username)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return u, err
}

func (r *userRepo) Get(ctx context.Context, id string) (*User, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id = ?", id)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return u, err
}

func (r *userRepo) Add(ctx context.Context, u *User) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	if u.JoinedDate.IsZero() {
		u.JoinedDate = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, username, full_name, role, email, has_paid, joined_date)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Username, u.FullName, string(u.Role), u.Email,
		boolToInt(u.HasPaid), u.JoinedDate.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("add user %q: %w", u.Username, err)
	}
	return nil
}

func (r *userRepo) Update(ctx context.Context, u *User) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET username = ?, full_name = ?, role = ?, email = ?, has_paid = ?
		 WHERE id = ?`,
		u.Username, u.FullName, string(u.Role), u.Email, boolToInt(u.HasPaid), u.ID)
	if err != nil {
		return fmt.Errorf("update user %s: %w", u.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("update user %s: not found", u.ID)
	}
	return nil
}

func (r *userRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM users WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete user %s: %w", id, err)
	}
	return nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanUser(s scanner) (*User, error) {
	var u User
	var role, joined string
	var hasPaid int
	if err := s.Scan(&u.ID, &u.Username, &u.FullName, &role, &u.Email, &hasPaid, &joined); err != nil {
		return nil, err
	}
	u.Role = Role(role)
	u.HasPaid = hasPaid != 0
	t, err := time.Parse(time.RFC3339, joined)
	if err != nil {
		return nil, fmt.Errorf("parse joined_date for %s: %w", u.ID, err)
	}
	u.JoinedDate = t
	return &u, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// seedUsers inserts the initial accounts if the user table is empty.
// Mirrors the accounts the platform has always shipped with.
func (s *Store) seedUsers() error {
	ctx := context.Background()

	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	repo := &userRepo{db: s.db}
	now := time.Now().UTC()
	seed := []User{
		{ID: "admin-1", Username: "admin", FullName: "System Administrator", Role: RoleAdmin, HasPaid: true, JoinedDate: now},
		{ID: "teacher-1", Username: "lehrer", FullName: "Max Mustermann", Role: RoleTeacher, HasPaid: true, JoinedDate: now},
		{ID: "student-1", Username: "schueler", FullName: "Lisa Lerner", Role: RoleStudent, HasPaid: true, JoinedDate: now},
	}
	for _, u := range seed {
		if err := repo.Add(ctx, &u); err != nil {
			return err
		}
	}
	return nil
}
