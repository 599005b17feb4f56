// Package service holds the domain operations that span more than one
// repository: leaderboard recomputation, workout recommendation, team
// aggregates and event publishing.
package service

import (
	"context"
	"sort"

	"github.com/octofit/octofit-tracker/internal/model"
	"github.com/octofit/octofit-tracker/internal/repository"
)

// LeaderboardService rebuilds the materialized ranking from the users
// and activities collections.
type LeaderboardService struct {
	users       *repository.UserRepo
	activities  *repository.ActivityRepo
	leaderboard *repository.LeaderboardRepo
}

// NewLeaderboardService constructs a LeaderboardService from its repositories.
func NewLeaderboardService(users *repository.UserRepo, activities *repository.ActivityRepo, leaderboard *repository.LeaderboardRepo) *LeaderboardService {
	return &LeaderboardService{users: users, activities: activities, leaderboard: leaderboard}
}

// Refresh recomputes the whole leaderboard and replaces the stored
// snapshot, returning the newly ranked entries.
//
// Every user gets exactly one entry, including users with no logged
// activities (zero totals). Activity totals come from a single grouped
// pass over the activities table, so the cost is O(A + U log U)
// regardless of the user count. Entries are ordered by total calories
// descending; equal totals order by user email ascending so repeated
// refreshes over unchanged data produce the same ranking. Ranks are
// dense: 1..N with no gaps.
//
// The replace is delete-all then insert-all without a transaction.
// A failure after the delete leaves an empty or partial snapshot, and
// concurrent refreshes may interleave. This is accepted behavior, not
// a bug to harden away; callers re-run Refresh to converge.
func (s *LeaderboardService) Refresh(ctx context.Context) ([]*model.LeaderboardEntry, error) {
	users, err := s.users.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	totals, err := s.activities.AggregateByUser(ctx)
	if err != nil {
		return nil, err
	}

	entries := buildRanking(users, totals)

	if err := s.leaderboard.DeleteAll(ctx); err != nil {
		return nil, err
	}
	if err := s.leaderboard.InsertAll(ctx, entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// buildRanking derives one leaderboard entry per user from the
// aggregated activity totals and assigns dense 1-based ranks.
func buildRanking(users []*model.User, totals map[string]repository.ActivityTotals) []*model.LeaderboardEntry {
	entries := make([]*model.LeaderboardEntry, 0, len(users))
	for _, u := range users {
		t := totals[u.Email] // zero value when the user has no activities
		entries = append(entries, &model.LeaderboardEntry{
			UserEmail:       u.Email,
			UserName:        u.Name,
			Team:            u.Team,
			TotalCalories:   t.Calories,
			TotalActivities: t.Count,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].TotalCalories != entries[j].TotalCalories {
			return entries[i].TotalCalories > entries[j].TotalCalories
		}
		return entries[i].UserEmail < entries[j].UserEmail
	})
	for i, e := range entries {
		e.Rank = i + 1
	}
	return entries
}
