package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/octofit/octofit-tracker/internal/model"
)

// WorkoutRepo encapsulates database queries against the workout
// catalog. The catalog is independent of users; recommendation and
// the filter endpoints only ever read it by exact match.
type WorkoutRepo struct {
	db *sql.DB // db is the underlying database connection pool
}

// NewWorkoutRepo constructs a WorkoutRepo with the provided DB handle.
func NewWorkoutRepo(db *sql.DB) *WorkoutRepo {
	return &WorkoutRepo{db: db}
}

const workoutColumns = "id, name, description, activity_type, duration, difficulty, calories_estimate, created_at"

// Create inserts a workout and populates ID and CreatedAt on w.
func (r *WorkoutRepo) Create(ctx context.Context, w *model.Workout) error {
	const qInsert = `INSERT INTO workouts (name, description, activity_type, duration, difficulty, calories_estimate)
	                 VALUES (?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, qInsert, w.Name, w.Description, w.ActivityType, w.Duration, w.Difficulty, w.CaloriesEstimate)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	w.ID = uint64(id)

	const qSelect = "SELECT created_at FROM workouts WHERE id = ?"
	return r.db.QueryRowContext(ctx, qSelect, w.ID).Scan(&w.CreatedAt)
}

// GetByID fetches a workout by id, returning ErrWorkoutNotFound when
// no row exists.
func (r *WorkoutRepo) GetByID(ctx context.Context, id uint64) (*model.Workout, error) {
	q := "SELECT " + workoutColumns + " FROM workouts WHERE id = ?"
	var w model.Workout
	var desc sql.NullString
	if err := r.db.QueryRowContext(ctx, q, id).Scan(
		&w.ID, &w.Name, &desc, &w.ActivityType, &w.Duration, &w.Difficulty, &w.CaloriesEstimate, &w.CreatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}
	w.Description = desc.String
	return &w, nil
}

// ListAll returns the whole catalog ordered by id.
func (r *WorkoutRepo) ListAll(ctx context.Context) ([]*model.Workout, error) {
	q := "SELECT " + workoutColumns + " FROM workouts ORDER BY id"
	return r.list(ctx, q)
}

// ListByType returns workouts for one activity type. An empty result
// is not an error.
func (r *WorkoutRepo) ListByType(ctx context.Context, activityType string) ([]*model.Workout, error) {
	q := "SELECT " + workoutColumns + " FROM workouts WHERE activity_type = ? ORDER BY id"
	return r.list(ctx, q, activityType)
}

// ListByDifficulty returns workouts of one difficulty level.
func (r *WorkoutRepo) ListByDifficulty(ctx context.Context, difficulty string) ([]*model.Workout, error) {
	q := "SELECT " + workoutColumns + " FROM workouts WHERE difficulty = ? ORDER BY id"
	return r.list(ctx, q, difficulty)
}

// Update rewrites the mutable fields of a workout; CreatedAt is never
// touched. The stored record is re-read into w.
func (r *WorkoutRepo) Update(ctx context.Context, w *model.Workout) error {
	const q = `UPDATE workouts SET name = ?, description = ?, activity_type = ?, duration = ?, difficulty = ?, calories_estimate = ?
	           WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, q, w.Name, w.Description, w.ActivityType, w.Duration, w.Difficulty, w.CaloriesEstimate, w.ID); err != nil {
		return err
	}
	const qSelect = `SELECT name, description, activity_type, duration, difficulty, calories_estimate, created_at
	                 FROM workouts WHERE id = ?`
	var desc sql.NullString
	if err := r.db.QueryRowContext(ctx, qSelect, w.ID).Scan(
		&w.Name, &desc, &w.ActivityType, &w.Duration, &w.Difficulty, &w.CaloriesEstimate, &w.CreatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrWorkoutNotFound
		}
		return err
	}
	w.Description = desc.String
	return nil
}

// DeleteByID removes a workout, returning ErrWorkoutNotFound when no
// row was deleted.
func (r *WorkoutRepo) DeleteByID(ctx context.Context, id uint64) error {
	const q = "DELETE FROM workouts WHERE id = ?"
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrWorkoutNotFound
	}
	return nil
}

func (r *WorkoutRepo) list(ctx context.Context, q string, args ...any) ([]*model.Workout, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*model.Workout{}
	for rows.Next() {
		w := new(model.Workout)
		var desc sql.NullString
		if err := rows.Scan(&w.ID, &w.Name, &desc, &w.ActivityType, &w.Duration, &w.Difficulty, &w.CaloriesEstimate, &w.CreatedAt); err != nil {
			return nil, err
		}
		w.Description = desc.String
		out = append(out, w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
