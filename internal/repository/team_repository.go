package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/octofit/octofit-tracker/internal/model"
)

// TeamRepo encapsulates all database queries related to teams. Teams
// carry no membership list; membership is resolved in the user
// repository by matching users.team against the team name.
type TeamRepo struct {
	db *sql.DB // db is the underlying database connection pool
}

// NewTeamRepo constructs a TeamRepo with the provided DB handle.
func NewTeamRepo(db *sql.DB) *TeamRepo {
	return &TeamRepo{db: db}
}

// Create inserts a new team and populates ID and CreatedAt on t.
func (r *TeamRepo) Create(ctx context.Context, t *model.Team) error {
	const qInsert = "INSERT INTO teams (name, description) VALUES (?, ?)"
	res, err := r.db.ExecContext(ctx, qInsert, t.Name, t.Description)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	t.ID = uint64(id)

	const qSelect = "SELECT created_at FROM teams WHERE id = ?"
	return r.db.QueryRowContext(ctx, qSelect, t.ID).Scan(&t.CreatedAt)
}

// GetByID fetches a team by id, returning ErrTeamNotFound when no row
// exists.
func (r *TeamRepo) GetByID(ctx context.Context, id uint64) (*model.Team, error) {
	const q = "SELECT id, name, description, created_at FROM teams WHERE id = ?"
	var t model.Team
	var desc sql.NullString
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&t.ID, &t.Name, &desc, &t.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	t.Description = desc.String
	return &t, nil
}

// ListAll returns every team ordered by id.
func (r *TeamRepo) ListAll(ctx context.Context) ([]*model.Team, error) {
	const q = "SELECT id, name, description, created_at FROM teams ORDER BY id"
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*model.Team{}
	for rows.Next() {
		t := new(model.Team)
		var desc sql.NullString
		if err := rows.Scan(&t.ID, &t.Name, &desc, &t.CreatedAt); err != nil {
			return nil, err
		}
		t.Description = desc.String
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update rewrites name and description. Renaming a team does NOT
// rewrite users.team — existing member references are orphaned
// silently, matching the value-equality join semantics.
func (r *TeamRepo) Update(ctx context.Context, t *model.Team) error {
	const q = "UPDATE teams SET name = ?, description = ? WHERE id = ?"
	if _, err := r.db.ExecContext(ctx, q, t.Name, t.Description, t.ID); err != nil {
		return err
	}
	const qSelect = "SELECT name, description, created_at FROM teams WHERE id = ?"
	var desc sql.NullString
	if err := r.db.QueryRowContext(ctx, qSelect, t.ID).Scan(&t.Name, &desc, &t.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrTeamNotFound
		}
		return err
	}
	t.Description = desc.String
	return nil
}

// DeleteByID removes a team. Member users keep their now-dangling
// team string. ErrTeamNotFound is returned when no row was deleted.
func (r *TeamRepo) DeleteByID(ctx context.Context, id uint64) error {
	const q = "DELETE FROM teams WHERE id = ?"
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrTeamNotFound
	}
	return nil
}
