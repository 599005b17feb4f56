package queue

// ActivityLoggedEvent is published after an activity is successfully
// stored. It carries enough information for downstream consumers to
// log or trigger analytics without querying the primary database.
type ActivityLoggedEvent struct {
	ActivityID   uint64 `json:"activity_id"`
	UserEmail    string `json:"user_email"`
	ActivityType string `json:"activity_type"`
	Duration     int    `json:"duration_minutes"`
	Calories     int    `json:"calories"`
	Date         string `json:"date"`
	LoggedAt     string `json:"logged_at"`
}
