package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// APIRoot handles GET / and GET /api/, returning an index of every
// endpoint the tracker exposes. Paths are relative so the document is
// valid behind any host or proxy.
func APIRoot(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"message": "Welcome to OctoFit Tracker API",
		"endpoints": map[string]string{
			"users":       "/api/users",
			"teams":       "/api/teams",
			"activities":  "/api/activities",
			"leaderboard": "/api/leaderboard",
			"workouts":    "/api/workouts",
		},
		"custom_endpoints": map[string]string{
			"users_by_team":          "/api/users/by_team?team=<team_name>",
			"team_members":           "/api/teams/<id>/members",
			"team_stats":             "/api/teams/<id>/stats",
			"activities_by_user":     "/api/activities/by_user?email=<email>",
			"activities_by_type":     "/api/activities/by_type?type=<type>",
			"leaderboard_top":        "/api/leaderboard/top?limit=<n>",
			"leaderboard_by_team":    "/api/leaderboard/by_team?team=<team_name>",
			"leaderboard_refresh":    "/api/leaderboard/refresh",
			"workouts_by_type":       "/api/workouts/by_type?type=<type>",
			"workouts_by_difficulty": "/api/workouts/by_difficulty?difficulty=<difficulty>",
			"workouts_recommended":   "/api/workouts/recommended?email=<email>",
		},
	})
}
