package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/octofit/octofit-tracker/internal/repository"
)

// newTeamFixture builds a TeamService over a mocked database.
func newTeamFixture(db *sql.DB) *TeamService {
	return NewTeamService(
		repository.NewTeamRepo(db),
		repository.NewUserRepo(db),
		repository.NewActivityRepo(db),
	)
}

// newRecommendationFixture builds a RecommendationService over a
// mocked database.
func newRecommendationFixture(db *sql.DB) *RecommendationService {
	return NewRecommendationService(
		repository.NewActivityRepo(db),
		repository.NewWorkoutRepo(db),
	)
}

func TestTeamStatsEmptyTeamIsZeroValued(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery("FROM teams WHERE id").
		WithArgs(uint64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description", "created_at"}).
			AddRow(1, "T1", "empty team", now))

	// No members: the activity aggregation must be skipped entirely.
	mock.ExpectQuery("FROM users WHERE team").
		WithArgs("T1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "team", "created_at"}))

	svc := newTeamFixture(db)
	stats, err := svc.Stats(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, "T1", stats.TeamName)
	assert.Equal(t, 0, stats.TotalMembers)
	assert.Equal(t, 0, stats.TotalActivities)
	assert.Equal(t, 0, stats.TotalCalories)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTeamStatsAggregatesMemberActivities(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery("FROM teams WHERE id").
		WithArgs(uint64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description", "created_at"}).
			AddRow(2, "T2", "", now))

	mock.ExpectQuery("FROM users WHERE team").
		WithArgs("T2").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "team", "created_at"}).
			AddRow(1, "Alice", "a@x.com", "T2", now).
			AddRow(2, "Bob", "b@x.com", "T2", now))

	mock.ExpectQuery("SELECT COUNT\\(\\*\\), COALESCE\\(SUM\\(calories\\), 0\\) FROM activities").
		WithArgs("a@x.com", "b@x.com").
		WillReturnRows(sqlmock.NewRows([]string{"count", "calories"}).AddRow(3, 1300))

	svc := newTeamFixture(db)
	stats, err := svc.Stats(context.Background(), 2)
	require.NoError(t, err)

	assert.Equal(t, 2, stats.TotalMembers)
	assert.Equal(t, 3, stats.TotalActivities)
	assert.Equal(t, 1300, stats.TotalCalories)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTeamMembersUnknownTeam(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("FROM teams WHERE id").
		WithArgs(uint64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description", "created_at"}))

	svc := newTeamFixture(db)
	_, err = svc.Members(context.Background(), 99)
	assert.ErrorIs(t, err, repository.ErrTeamNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
