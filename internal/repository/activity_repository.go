package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/octofit/octofit-tracker/internal/model"
)

// ActivityRepo encapsulates all database queries related to logged
// activities. Activities reference users by denormalized email with
// no foreign key; rows whose email matches no current user are valid
// and simply never surface in the leaderboard.
type ActivityRepo struct {
	db *sql.DB // db is the underlying database connection pool
}

// NewActivityRepo constructs an ActivityRepo with the provided DB handle.
func NewActivityRepo(db *sql.DB) *ActivityRepo {
	return &ActivityRepo{db: db}
}

// ActivityTotals aggregates one user's activity history: the number
// of logged activities and the calories summed over them.
type ActivityTotals struct {
	Count    int // number of activity rows
	Calories int // sum of calories over those rows
}

// Create inserts a new activity and populates ID and CreatedAt on a.
func (r *ActivityRepo) Create(ctx context.Context, a *model.Activity) error {
	const qInsert = `INSERT INTO activities (user_email, activity_type, duration, calories, date)
	                 VALUES (?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, qInsert, a.UserEmail, a.ActivityType, a.Duration, a.Calories, a.Date)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	a.ID = uint64(id)

	const qSelect = "SELECT created_at FROM activities WHERE id = ?"
	return r.db.QueryRowContext(ctx, qSelect, a.ID).Scan(&a.CreatedAt)
}

// GetByID fetches an activity by id, returning ErrActivityNotFound
// when no row exists.
func (r *ActivityRepo) GetByID(ctx context.Context, id uint64) (*model.Activity, error) {
	const q = `SELECT id, user_email, activity_type, duration, calories, date, created_at
	           FROM activities WHERE id = ?`
	var a model.Activity
	if err := r.db.QueryRowContext(ctx, q, id).Scan(
		&a.ID, &a.UserEmail, &a.ActivityType, &a.Duration, &a.Calories, &a.Date, &a.CreatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrActivityNotFound
		}
		return nil, err
	}
	return &a, nil
}

// ListAll returns every activity ordered by id.
func (r *ActivityRepo) ListAll(ctx context.Context) ([]*model.Activity, error) {
	const q = `SELECT id, user_email, activity_type, duration, calories, date, created_at
	           FROM activities ORDER BY id`
	return r.list(ctx, q)
}

// ListByUserEmail returns the given user's activities, most recent
// date first. An empty result is not an error.
func (r *ActivityRepo) ListByUserEmail(ctx context.Context, email string) ([]*model.Activity, error) {
	const q = `SELECT id, user_email, activity_type, duration, calories, date, created_at
	           FROM activities WHERE user_email = ? ORDER BY date DESC`
	return r.list(ctx, q, email)
}

// ListByType returns activities of one type, most recent date first.
func (r *ActivityRepo) ListByType(ctx context.Context, activityType string) ([]*model.Activity, error) {
	const q = `SELECT id, user_email, activity_type, duration, calories, date, created_at
	           FROM activities WHERE activity_type = ? ORDER BY date DESC`
	return r.list(ctx, q, activityType)
}

// AggregateByUser computes per-email activity totals in a single
// grouped pass over the table. The leaderboard refresh depends on
// this being one scan rather than one query per user.
func (r *ActivityRepo) AggregateByUser(ctx context.Context) (map[string]ActivityTotals, error) {
	const q = `SELECT user_email, COUNT(*), COALESCE(SUM(calories), 0)
	           FROM activities GROUP BY user_email`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	totals := make(map[string]ActivityTotals)
	for rows.Next() {
		var email string
		var t ActivityTotals
		if err := rows.Scan(&email, &t.Count, &t.Calories); err != nil {
			return nil, err
		}
		totals[email] = t
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return totals, nil
}

// TotalsForEmails aggregates activity count and calories over all
// activities whose user_email is in the given set. An empty email set
// short-circuits to zero totals without touching the database.
func (r *ActivityRepo) TotalsForEmails(ctx context.Context, emails []string) (ActivityTotals, error) {
	var t ActivityTotals
	if len(emails) == 0 {
		return t, nil
	}
	placeholders := strings.Repeat("?,", len(emails))
	placeholders = placeholders[:len(placeholders)-1]
	q := `SELECT COUNT(*), COALESCE(SUM(calories), 0) FROM activities WHERE user_email IN (` + placeholders + `)`
	args := make([]any, len(emails))
	for i, e := range emails {
		args[i] = e
	}
	if err := r.db.QueryRowContext(ctx, q, args...).Scan(&t.Count, &t.Calories); err != nil {
		return ActivityTotals{}, err
	}
	return t, nil
}

// Update rewrites the mutable fields of an activity; CreatedAt is
// never touched. The stored record is re-read into a.
func (r *ActivityRepo) Update(ctx context.Context, a *model.Activity) error {
	const q = `UPDATE activities SET user_email = ?, activity_type = ?, duration = ?, calories = ?, date = ?
	           WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, q, a.UserEmail, a.ActivityType, a.Duration, a.Calories, a.Date, a.ID); err != nil {
		return err
	}
	const qSelect = `SELECT user_email, activity_type, duration, calories, date, created_at
	                 FROM activities WHERE id = ?`
	if err := r.db.QueryRowContext(ctx, qSelect, a.ID).Scan(
		&a.UserEmail, &a.ActivityType, &a.Duration, &a.Calories, &a.Date, &a.CreatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrActivityNotFound
		}
		return err
	}
	return nil
}

// DeleteByID removes an activity, returning ErrActivityNotFound when
// no row was deleted.
func (r *ActivityRepo) DeleteByID(ctx context.Context, id uint64) error {
	const q = "DELETE FROM activities WHERE id = ?"
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrActivityNotFound
	}
	return nil
}

func (r *ActivityRepo) list(ctx context.Context, q string, args ...any) ([]*model.Activity, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*model.Activity{}
	for rows.Next() {
		a := new(model.Activity)
		if err := rows.Scan(&a.ID, &a.UserEmail, &a.ActivityType, &a.Duration, &a.Calories, &a.Date, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
