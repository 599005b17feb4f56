package model

import "time"

// Workout is a catalog entry in the `workouts` table describing a
// suggested workout. The catalog is static with respect to users;
// recommendation filters it by activity type or difficulty.
//
// Fields:
//  ID               – primary key identifier.
//  Name             – workout name.
//  Description      – what the workout involves.
//  ActivityType     – activity type the workout trains.
//  Duration         – expected duration in minutes.
//  Difficulty       – one of Easy, Medium, Hard.
//  CaloriesEstimate – rough calories burned by one session.
//  CreatedAt        – timestamp of creation, set by the server.
type Workout struct {
	ID               uint64    `json:"_id,string"`        // workouts.id
	Name             string    `json:"name"`              // workouts.name
	Description      string    `json:"description"`       // workouts.description
	ActivityType     string    `json:"activity_type"`     // workouts.activity_type
	Duration         int       `json:"duration"`          // workouts.duration (minutes)
	Difficulty       string    `json:"difficulty"`        // workouts.difficulty (Easy/Medium/Hard)
	CaloriesEstimate int       `json:"calories_estimate"` // workouts.calories_estimate
	CreatedAt        time.Time `json:"created_at"`        // workouts.created_at
}

// Difficulty levels accepted for workouts.
const (
	DifficultyEasy   = "Easy"
	DifficultyMedium = "Medium"
	DifficultyHard   = "Hard"
)
