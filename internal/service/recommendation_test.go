package service

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/octofit/octofit-tracker/internal/model"
)

func TestFavoriteTypePicksMostFrequent(t *testing.T) {
	activities := []*model.Activity{
		{ActivityType: "Running"},
		{ActivityType: "Cycling"},
		{ActivityType: "Running"},
	}
	assert.Equal(t, "Running", favoriteType(activities))
}

func TestFavoriteTypeTieBreaksLexicographically(t *testing.T) {
	activities := []*model.Activity{
		{ActivityType: "Swimming"},
		{ActivityType: "Cycling"},
		{ActivityType: "Swimming"},
		{ActivityType: "Cycling"},
	}
	// Equal counts resolve to the smallest type name.
	assert.Equal(t, "Cycling", favoriteType(activities))
}

func TestRecommendNoHistoryReturnsEasyWorkouts(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery("FROM activities WHERE user_email").
		WithArgs("new@x.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_email", "activity_type", "duration", "calories", "date", "created_at"}))

	mock.ExpectQuery("FROM workouts WHERE difficulty").
		WithArgs("Easy").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description", "activity_type", "duration", "difficulty", "calories_estimate", "created_at"}).
			AddRow(1, "Morning Walk", "A gentle walk", "Walking", 30, "Easy", 120, now).
			AddRow(2, "Beginner Yoga", "Basic poses", "Yoga", 20, "Easy", 80, now))

	svc := newRecommendationFixture(db)
	workouts, err := svc.Recommend(context.Background(), "new@x.com")
	require.NoError(t, err)
	require.Len(t, workouts, 2)
	for _, w := range workouts {
		assert.Equal(t, model.DifficultyEasy, w.Difficulty)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecommendMatchesFavoriteActivityType(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery("FROM activities WHERE user_email").
		WithArgs("runner@x.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_email", "activity_type", "duration", "calories", "date", "created_at"}).
			AddRow(1, "runner@x.com", "Running", 30, 300, now, now).
			AddRow(2, "runner@x.com", "Running", 45, 450, now, now).
			AddRow(3, "runner@x.com", "Cycling", 60, 700, now, now))

	mock.ExpectQuery("FROM workouts WHERE activity_type").
		WithArgs("Running").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description", "activity_type", "duration", "difficulty", "calories_estimate", "created_at"}).
			AddRow(5, "Interval Run", "Sprints and recovery", "Running", 40, "Hard", 500, now))

	svc := newRecommendationFixture(db)
	workouts, err := svc.Recommend(context.Background(), "runner@x.com")
	require.NoError(t, err)
	require.Len(t, workouts, 1)
	assert.Equal(t, "Running", workouts[0].ActivityType)
	assert.NoError(t, mock.ExpectationsWereMet())
}
