package model

import "time"

// LeaderboardEntry is one row of the materialized ranking in the
// `leaderboard` table. The whole table is a derived snapshot: refresh
// deletes every row and regenerates the set from users and activities,
// it is never patched in place. UserEmail, UserName and Team are
// denormalized copies taken from the user at refresh time.
//
// Fields:
//  ID              – primary key identifier (new on every refresh).
//  UserEmail       – email of the ranked user.
//  UserName        – display name copied from the user.
//  Team            – team name copied from the user.
//  TotalCalories   – sum of calories over the user's activities.
//  TotalActivities – number of activities the user has logged.
//  Rank            – dense 1-based rank by TotalCalories descending.
//  UpdatedAt       – server timestamp of the write.
type LeaderboardEntry struct {
	ID              uint64    `json:"_id,string"`       // leaderboard.id
	UserEmail       string    `json:"user_email"`       // leaderboard.user_email
	UserName        string    `json:"user_name"`        // leaderboard.user_name
	Team            string    `json:"team"`             // leaderboard.team
	TotalCalories   int       `json:"total_calories"`   // leaderboard.total_calories
	TotalActivities int       `json:"total_activities"` // leaderboard.total_activities
	Rank            int       `json:"rank"`             // leaderboard.rank
	UpdatedAt       time.Time `json:"updated_at"`       // leaderboard.updated_at
}
