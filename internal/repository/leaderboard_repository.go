package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/octofit/octofit-tracker/internal/model"
)

// LeaderboardRepo encapsulates database queries against the
// materialized leaderboard snapshot. Besides row-level CRUD it offers
// the bulk DeleteAll/InsertAll pair the refresh operation is built
// from. The pair is intentionally NOT wrapped in a transaction: the
// snapshot replace is non-atomic and concurrent readers may observe
// an empty or partially written leaderboard during a refresh. That
// matches the accepted behavior of the system; see the service layer.
type LeaderboardRepo struct {
	db *sql.DB // db is the underlying database connection pool
}

// NewLeaderboardRepo constructs a LeaderboardRepo with the provided DB handle.
func NewLeaderboardRepo(db *sql.DB) *LeaderboardRepo {
	return &LeaderboardRepo{db: db}
}

const leaderboardColumns = "id, user_email, user_name, team, total_calories, total_activities, `rank`, updated_at"

// Create inserts a single entry and populates ID and UpdatedAt on e.
// Rank is taken as given; manual inserts bypass the refresh logic.
func (r *LeaderboardRepo) Create(ctx context.Context, e *model.LeaderboardEntry) error {
	const qInsert = "INSERT INTO leaderboard (user_email, user_name, team, total_calories, total_activities, `rank`) VALUES (?, ?, ?, ?, ?, ?)"
	res, err := r.db.ExecContext(ctx, qInsert, e.UserEmail, e.UserName, e.Team, e.TotalCalories, e.TotalActivities, e.Rank)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	e.ID = uint64(id)

	const qSelect = "SELECT updated_at FROM leaderboard WHERE id = ?"
	return r.db.QueryRowContext(ctx, qSelect, e.ID).Scan(&e.UpdatedAt)
}

// GetByID fetches one entry, returning ErrLeaderboardEntryNotFound
// when no row exists.
func (r *LeaderboardRepo) GetByID(ctx context.Context, id uint64) (*model.LeaderboardEntry, error) {
	q := "SELECT " + leaderboardColumns + " FROM leaderboard WHERE id = ?"
	var e model.LeaderboardEntry
	if err := r.db.QueryRowContext(ctx, q, id).Scan(
		&e.ID, &e.UserEmail, &e.UserName, &e.Team, &e.TotalCalories, &e.TotalActivities, &e.Rank, &e.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrLeaderboardEntryNotFound
		}
		return nil, err
	}
	return &e, nil
}

// ListRanked returns the whole snapshot ordered by rank ascending.
func (r *LeaderboardRepo) ListRanked(ctx context.Context) ([]*model.LeaderboardEntry, error) {
	q := "SELECT " + leaderboardColumns + " FROM leaderboard ORDER BY `rank`"
	return r.list(ctx, q)
}

// Top returns the best `limit` entries by rank ascending.
func (r *LeaderboardRepo) Top(ctx context.Context, limit int) ([]*model.LeaderboardEntry, error) {
	q := "SELECT " + leaderboardColumns + " FROM leaderboard ORDER BY `rank` LIMIT ?"
	return r.list(ctx, q, limit)
}

// ListByTeam returns the snapshot rows for one team, rank ascending.
// Ranks are global, so a team view usually shows gaps.
func (r *LeaderboardRepo) ListByTeam(ctx context.Context, team string) ([]*model.LeaderboardEntry, error) {
	q := "SELECT " + leaderboardColumns + " FROM leaderboard WHERE team = ? ORDER BY `rank`"
	return r.list(ctx, q, team)
}

// Update rewrites an entry's fields and re-reads the stored record,
// picking up the server-set updated_at.
func (r *LeaderboardRepo) Update(ctx context.Context, e *model.LeaderboardEntry) error {
	const q = "UPDATE leaderboard SET user_email = ?, user_name = ?, team = ?, total_calories = ?, total_activities = ?, `rank` = ? WHERE id = ?"
	if _, err := r.db.ExecContext(ctx, q, e.UserEmail, e.UserName, e.Team, e.TotalCalories, e.TotalActivities, e.Rank, e.ID); err != nil {
		return err
	}
	const qSelect = "SELECT user_email, user_name, team, total_calories, total_activities, `rank`, updated_at FROM leaderboard WHERE id = ?"
	if err := r.db.QueryRowContext(ctx, qSelect, e.ID).Scan(
		&e.UserEmail, &e.UserName, &e.Team, &e.TotalCalories, &e.TotalActivities, &e.Rank, &e.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrLeaderboardEntryNotFound
		}
		return err
	}
	return nil
}

// DeleteByID removes one entry, returning ErrLeaderboardEntryNotFound
// when no row was deleted.
func (r *LeaderboardRepo) DeleteByID(ctx context.Context, id uint64) error {
	const q = "DELETE FROM leaderboard WHERE id = ?"
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrLeaderboardEntryNotFound
	}
	return nil
}

// DeleteAll clears the snapshot ahead of a refresh.
func (r *LeaderboardRepo) DeleteAll(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM leaderboard")
	return err
}

// InsertAll writes a freshly ranked set of entries through a single
// prepared statement, populating ID and UpdatedAt on each entry. A
// failure part-way through leaves the rows written so far in place.
func (r *LeaderboardRepo) InsertAll(ctx context.Context, entries []*model.LeaderboardEntry) error {
	const qInsert = "INSERT INTO leaderboard (user_email, user_name, team, total_calories, total_activities, `rank`) VALUES (?, ?, ?, ?, ?, ?)"
	stmt, err := r.db.PrepareContext(ctx, qInsert)
	if err != nil {
		return err
	}
	defer stmt.Close()

	const qSelect = "SELECT updated_at FROM leaderboard WHERE id = ?"
	for _, e := range entries {
		res, err := stmt.ExecContext(ctx, e.UserEmail, e.UserName, e.Team, e.TotalCalories, e.TotalActivities, e.Rank)
		if err != nil {
			return err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		e.ID = uint64(id)
		if err := r.db.QueryRowContext(ctx, qSelect, e.ID).Scan(&e.UpdatedAt); err != nil {
			return err
		}
	}
	return nil
}

func (r *LeaderboardRepo) list(ctx context.Context, q string, args ...any) ([]*model.LeaderboardEntry, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*model.LeaderboardEntry{}
	for rows.Next() {
		e := new(model.LeaderboardEntry)
		if err := rows.Scan(&e.ID, &e.UserEmail, &e.UserName, &e.Team, &e.TotalCalories, &e.TotalActivities, &e.Rank, &e.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
