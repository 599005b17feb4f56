package model

import "time"

// Activity is a single logged workout session in the `activities`
// table. UserEmail is a denormalized reference to users.email with no
// foreign key enforcement — an activity may reference an email that no
// user currently holds.
//
// Fields:
//  ID           – primary key identifier.
//  UserEmail    – email of the user who logged the activity.
//  ActivityType – kind of activity (e.g. Running, Cycling).
//  Duration     – length of the session in minutes.
//  Calories     – calories burned.
//  Date         – when the activity took place.
//  CreatedAt    – timestamp of creation, set by the server.
type Activity struct {
	ID           uint64    `json:"_id,string"`    // activities.id
	UserEmail    string    `json:"user_email"`    // activities.user_email
	ActivityType string    `json:"activity_type"` // activities.activity_type
	Duration     int       `json:"duration"`      // activities.duration (minutes)
	Calories     int       `json:"calories"`      // activities.calories
	Date         time.Time `json:"date"`          // activities.date
	CreatedAt    time.Time `json:"created_at"`    // activities.created_at
}
