package service

import (
	"context"

	"github.com/octofit/octofit-tracker/internal/model"
	"github.com/octofit/octofit-tracker/internal/repository"
)

// TeamService answers the derived team queries: membership and
// aggregate statistics. Membership is a case-sensitive string match of
// users.team against the team's current name; members whose team field
// references a renamed or deleted team are invisible here.
type TeamService struct {
	teams      *repository.TeamRepo
	users      *repository.UserRepo
	activities *repository.ActivityRepo
}

// NewTeamService constructs a TeamService from its repositories.
func NewTeamService(teams *repository.TeamRepo, users *repository.UserRepo, activities *repository.ActivityRepo) *TeamService {
	return &TeamService{teams: teams, users: users, activities: activities}
}

// Members resolves the team's name and returns every user whose team
// field equals it. Returns repository.ErrTeamNotFound for unknown ids.
func (s *TeamService) Members(ctx context.Context, teamID uint64) ([]*model.User, error) {
	team, err := s.teams.GetByID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	return s.users.ListByTeam(ctx, team.Name)
}

// Stats aggregates activity totals over the team's current members. A
// team with no members yields zero-valued stats, not an error.
func (s *TeamService) Stats(ctx context.Context, teamID uint64) (*model.TeamStats, error) {
	team, err := s.teams.GetByID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	members, err := s.users.ListByTeam(ctx, team.Name)
	if err != nil {
		return nil, err
	}
	emails := make([]string, len(members))
	for i, m := range members {
		emails[i] = m.Email
	}
	totals, err := s.activities.TotalsForEmails(ctx, emails)
	if err != nil {
		return nil, err
	}
	return &model.TeamStats{
		TeamName:        team.Name,
		TotalMembers:    len(members),
		TotalActivities: totals.Count,
		TotalCalories:   totals.Calories,
	}, nil
}
