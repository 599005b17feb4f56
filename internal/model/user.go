package model

import "time"

// User represents an application user record as stored in the
// `users` table. Email is unique across all users and is the value
// other collections reference; Team holds the name of the team the
// user belongs to as a plain string. There is no foreign key from
// users to teams — renaming a team orphans the reference, which
// matches how the data is actually joined (string equality).
//
// Fields:
//  ID        – primary key identifier of the user.
//  Name      – display name.
//  Email     – unique email address, referenced by activities.
//  Team      – team name the user belongs to (empty when unassigned).
//  CreatedAt – timestamp of creation, set by the server.
type User struct {
	ID        uint64    `json:"_id,string"` // users.id
	Name      string    `json:"name"`       // users.name
	Email     string    `json:"email"`      // users.email (unique)
	Team      string    `json:"team"`       // users.team (denormalized team name)
	CreatedAt time.Time `json:"created_at"` // users.created_at
}
