package service

import (
	"context"

	"github.com/octofit/octofit-tracker/internal/model"
	"github.com/octofit/octofit-tracker/internal/repository"
)

// RecommendationService suggests workouts based on a user's activity
// history.
type RecommendationService struct {
	activities *repository.ActivityRepo
	workouts   *repository.WorkoutRepo
}

// NewRecommendationService constructs a RecommendationService.
func NewRecommendationService(activities *repository.ActivityRepo, workouts *repository.WorkoutRepo) *RecommendationService {
	return &RecommendationService{activities: activities, workouts: workouts}
}

// Recommend returns workout suggestions for the given user email.
// With no activity history the user gets every Easy workout; otherwise
// the workouts matching the user's most frequent activity type. An
// unknown email is simply a user with no history, never an error.
func (s *RecommendationService) Recommend(ctx context.Context, email string) ([]*model.Workout, error) {
	activities, err := s.activities.ListByUserEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if len(activities) == 0 {
		return s.workouts.ListByDifficulty(ctx, model.DifficultyEasy)
	}
	return s.workouts.ListByType(ctx, favoriteType(activities))
}

// favoriteType returns the most frequent activity type in the given
// history. Equal counts resolve to the lexicographically smallest
// type so the result is deterministic.
func favoriteType(activities []*model.Activity) string {
	counts := make(map[string]int, len(activities))
	for _, a := range activities {
		counts[a.ActivityType]++
	}
	best, bestCount := "", -1
	for t, n := range counts {
		if n > bestCount || (n == bestCount && t < best) {
			best, bestCount = t, n
		}
	}
	return best
}
