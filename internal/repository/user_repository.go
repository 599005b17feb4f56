// Package repository contains data access logic separated from HTTP
// handlers. This file defines repository methods for user CRUD and
// team-membership lookups. Users are referenced from other
// collections by email, never by id.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/octofit/octofit-tracker/internal/model"
)

// UserRepo encapsulates all database queries related to users. It
// depends on a sql.DB connection which is configured at startup.
type UserRepo struct {
	db *sql.DB // db is the underlying database connection pool
}

// NewUserRepo constructs a UserRepo with the provided DB handle. This
// allows dependency injection of the database in tests and at startup.
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

// Create inserts a new user. On success the ID and the server-set
// CreatedAt are populated on u via a follow-up SELECT so that callers
// receive a fully populated record. A duplicate email yields
// ErrConflict.
func (r *UserRepo) Create(ctx context.Context, u *model.User) error {
	const qInsert = "INSERT INTO users (name, email, team) VALUES (?, ?, ?)"
	res, err := r.db.ExecContext(ctx, qInsert, u.Name, u.Email, u.Team)
	if err != nil {
		if isDuplicateEntry(err) {
			return ErrConflict
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	u.ID = uint64(id)

	const qSelect = "SELECT created_at FROM users WHERE id = ?"
	return r.db.QueryRowContext(ctx, qSelect, u.ID).Scan(&u.CreatedAt)
}

// GetByID fetches a user by id, returning ErrUserNotFound when no row
// exists.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (*model.User, error) {
	const q = "SELECT id, name, email, team, created_at FROM users WHERE id = ?"
	var u model.User
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&u.ID, &u.Name, &u.Email, &u.Team, &u.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// GetByEmail fetches a user by its unique email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	const q = "SELECT id, name, email, team, created_at FROM users WHERE email = ?"
	var u model.User
	if err := r.db.QueryRowContext(ctx, q, email).Scan(&u.ID, &u.Name, &u.Email, &u.Team, &u.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// ListAll returns every user ordered by id.
func (r *UserRepo) ListAll(ctx context.Context) ([]*model.User, error) {
	const q = "SELECT id, name, email, team, created_at FROM users ORDER BY id"
	return r.list(ctx, q)
}

// ListByTeam returns all users whose team field equals the given team
// name. The match is an exact, case-sensitive string comparison; no
// referential integrity against the teams table is implied. An empty
// result is not an error.
func (r *UserRepo) ListByTeam(ctx context.Context, team string) ([]*model.User, error) {
	const q = "SELECT id, name, email, team, created_at FROM users WHERE team = ? ORDER BY id"
	return r.list(ctx, q, team)
}

// CountByTeam returns how many users currently reference the given
// team name.
func (r *UserRepo) CountByTeam(ctx context.Context, team string) (int, error) {
	const q = "SELECT COUNT(*) FROM users WHERE team = ?"
	var n int
	if err := r.db.QueryRowContext(ctx, q, team).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// Update rewrites the mutable fields of a user (name, email, team).
// CreatedAt is never touched. The updated record is re-read so the
// caller sees exactly what was stored; ErrUserNotFound is returned
// when the id does not exist and ErrConflict when the new email
// collides with another user.
func (r *UserRepo) Update(ctx context.Context, u *model.User) error {
	const q = "UPDATE users SET name = ?, email = ?, team = ? WHERE id = ?"
	if _, err := r.db.ExecContext(ctx, q, u.Name, u.Email, u.Team, u.ID); err != nil {
		if isDuplicateEntry(err) {
			return ErrConflict
		}
		return err
	}
	const qSelect = "SELECT name, email, team, created_at FROM users WHERE id = ?"
	if err := r.db.QueryRowContext(ctx, qSelect, u.ID).Scan(&u.Name, &u.Email, &u.Team, &u.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

// DeleteByID removes a user. ErrUserNotFound is returned when no row
// was deleted. Activities referencing the user's email are left in
// place; the reference is a plain string, not a foreign key.
func (r *UserRepo) DeleteByID(ctx context.Context, id uint64) error {
	const q = "DELETE FROM users WHERE id = ?"
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepo) list(ctx context.Context, q string, args ...any) ([]*model.User, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*model.User{}
	for rows.Next() {
		u := new(model.User)
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Team, &u.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
