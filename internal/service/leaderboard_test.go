package service

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/octofit/octofit-tracker/internal/model"
	"github.com/octofit/octofit-tracker/internal/repository"
)

func TestBuildRankingOrdersByCaloriesDescending(t *testing.T) {
	users := []*model.User{
		{Name: "A", Email: "a@x.com", Team: "T1"},
		{Name: "B", Email: "b@x.com", Team: "T2"},
		{Name: "C", Email: "c@x.com", Team: "T1"},
	}
	totals := map[string]repository.ActivityTotals{
		"a@x.com": {Count: 2, Calories: 600},
		"b@x.com": {Count: 1, Calories: 700},
		"c@x.com": {Count: 3, Calories: 150},
	}

	entries := buildRanking(users, totals)
	require.Len(t, entries, 3)

	assert.Equal(t, "b@x.com", entries[0].UserEmail)
	assert.Equal(t, 700, entries[0].TotalCalories)
	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, "a@x.com", entries[1].UserEmail)
	assert.Equal(t, 2, entries[1].Rank)
	assert.Equal(t, "c@x.com", entries[2].UserEmail)
	assert.Equal(t, 3, entries[2].Rank)

	// Sorting property: more calories always means a better rank.
	for i := 0; i < len(entries); i++ {
		for j := i + 1; j < len(entries); j++ {
			if entries[i].TotalCalories > entries[j].TotalCalories {
				assert.Less(t, entries[i].Rank, entries[j].Rank)
			}
		}
	}
}

func TestBuildRankingDenseRanks(t *testing.T) {
	users := []*model.User{
		{Name: "A", Email: "a@x.com"},
		{Name: "B", Email: "b@x.com"},
		{Name: "C", Email: "c@x.com"},
		{Name: "D", Email: "d@x.com"},
	}
	// Two users tie, one has no activities at all.
	totals := map[string]repository.ActivityTotals{
		"a@x.com": {Count: 1, Calories: 500},
		"b@x.com": {Count: 2, Calories: 500},
		"d@x.com": {Count: 1, Calories: 900},
	}

	entries := buildRanking(users, totals)
	require.Len(t, entries, 4)

	seen := map[int]bool{}
	for i, e := range entries {
		assert.Equal(t, i+1, e.Rank, "ranks must be dense 1..N")
		assert.False(t, seen[e.Rank], "ranks must not repeat")
		seen[e.Rank] = true
	}

	// Ties break by email ascending.
	assert.Equal(t, "a@x.com", entries[1].UserEmail)
	assert.Equal(t, "b@x.com", entries[2].UserEmail)

	// Zero-activity users still get an entry with zero totals.
	last := entries[3]
	assert.Equal(t, "c@x.com", last.UserEmail)
	assert.Equal(t, 0, last.TotalCalories)
	assert.Equal(t, 0, last.TotalActivities)
}

func TestBuildRankingIdempotent(t *testing.T) {
	users := []*model.User{
		{Name: "A", Email: "a@x.com"},
		{Name: "B", Email: "b@x.com"},
		{Name: "C", Email: "c@x.com"},
	}
	totals := map[string]repository.ActivityTotals{
		"a@x.com": {Count: 1, Calories: 300},
		"b@x.com": {Count: 1, Calories: 300},
		"c@x.com": {Count: 1, Calories: 300},
	}

	first := buildRanking(users, totals)
	second := buildRanking(users, totals)
	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].UserEmail, second[i].UserEmail)
		assert.Equal(t, first[i].Rank, second[i].Rank)
	}
}

func TestBuildRankingEmpty(t *testing.T) {
	entries := buildRanking(nil, nil)
	assert.Empty(t, entries)
}

// TestRefreshReplacesSnapshot walks the full refresh against a mocked
// database: one grouped aggregation query, delete-all, then one insert
// per user. The scenario mirrors two users where the one with fewer
// activities burned more calories.
func TestRefreshReplacesSnapshot(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT id, name, email, team, created_at FROM users ORDER BY id").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "team", "created_at"}).
			AddRow(1, "Alice", "a@x.com", "T1", now).
			AddRow(2, "Bob", "b@x.com", "T2", now))

	mock.ExpectQuery("SELECT user_email, COUNT\\(\\*\\), COALESCE\\(SUM\\(calories\\), 0\\)").
		WillReturnRows(sqlmock.NewRows([]string{"user_email", "count", "calories"}).
			AddRow("a@x.com", 2, 600).
			AddRow("b@x.com", 1, 700))

	mock.ExpectExec("DELETE FROM leaderboard").
		WillReturnResult(sqlmock.NewResult(0, 2))

	mock.ExpectPrepare("INSERT INTO leaderboard")
	mock.ExpectExec("INSERT INTO leaderboard").
		WithArgs("b@x.com", "Bob", "T2", 700, 1, 1).
		WillReturnResult(sqlmock.NewResult(10, 1))
	mock.ExpectQuery("SELECT updated_at FROM leaderboard WHERE id").
		WithArgs(uint64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"updated_at"}).AddRow(now))
	mock.ExpectExec("INSERT INTO leaderboard").
		WithArgs("a@x.com", "Alice", "T1", 600, 2, 2).
		WillReturnResult(sqlmock.NewResult(11, 1))
	mock.ExpectQuery("SELECT updated_at FROM leaderboard WHERE id").
		WithArgs(uint64(11)).
		WillReturnRows(sqlmock.NewRows([]string{"updated_at"}).AddRow(now))

	svc := NewLeaderboardService(
		repository.NewUserRepo(db),
		repository.NewActivityRepo(db),
		repository.NewLeaderboardRepo(db),
	)

	entries, err := svc.Refresh(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "b@x.com", entries[0].UserEmail)
	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, 700, entries[0].TotalCalories)
	assert.Equal(t, "a@x.com", entries[1].UserEmail)
	assert.Equal(t, 2, entries[1].Rank)
	assert.Equal(t, 600, entries[1].TotalCalories)
	assert.Equal(t, uint64(10), entries[0].ID)

	assert.NoError(t, mock.ExpectationsWereMet())
}
