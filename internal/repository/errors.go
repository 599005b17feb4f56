package repository

// Error values reused across the entity repositories. These sentinels
// allow handlers to distinguish failure scenarios without inspecting
// driver errors: a not-found sentinel becomes HTTP 404, ErrConflict
// becomes HTTP 409.

import (
	"errors"
	"strings"
)

// ErrConflict is returned when an insert or update violates a unique
// constraint, such as creating a second user with an existing email.
// Handlers should translate this into an HTTP 409 response.
var ErrConflict = errors.New("conflict")

// Not-found sentinels, one per collection.
var (
	ErrUserNotFound             = errors.New("user not found")
	ErrTeamNotFound             = errors.New("team not found")
	ErrActivityNotFound         = errors.New("activity not found")
	ErrLeaderboardEntryNotFound = errors.New("leaderboard entry not found")
	ErrWorkoutNotFound          = errors.New("workout not found")
)

// isDuplicateEntry reports whether err is a MySQL duplicate-key error
// (error number 1062). The driver does not export a sentinel for it,
// so the numeric code is matched on the message.
func isDuplicateEntry(err error) bool {
	return err != nil && strings.Contains(err.Error(), "1062")
}
