package model

import "time"

// Team represents a row in the `teams` table. Teams do not keep a
// membership list of their own; membership is derived by matching
// User.Team against the team name.
//
// Fields:
//  ID          – primary key identifier.
//  Name        – team name, matched against users.team.
//  Description – free-form description text.
//  CreatedAt   – timestamp of creation, set by the server.
type Team struct {
	ID          uint64    `json:"_id,string"`  // teams.id
	Name        string    `json:"name"`        // teams.name
	Description string    `json:"description"` // teams.description
	CreatedAt   time.Time `json:"created_at"`  // teams.created_at
}

// TeamWithMembers decorates a Team with the derived member count for
// API responses. The count is computed at serialization time from the
// users collection, never stored.
type TeamWithMembers struct {
	Team
	MemberCount int `json:"member_count"`
}

// TeamStats is the aggregate returned by GET /api/teams/:id/stats.
// Totals are computed over the activities of the team's current
// members; a team with no members yields all zeroes.
type TeamStats struct {
	TeamName        string `json:"team_name"`
	TotalMembers    int    `json:"total_members"`
	TotalActivities int    `json:"total_activities"`
	TotalCalories   int    `json:"total_calories"`
}
