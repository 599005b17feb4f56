// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/octofit/octofit-tracker/internal/config"
	"github.com/octofit/octofit-tracker/internal/handler"
	"github.com/octofit/octofit-tracker/internal/middleware"
)

// Handlers bundles every handler the router mounts.
type Handlers struct {
	Users       *handler.UserHandler
	Teams       *handler.TeamHandler
	Activities  *handler.ActivityHandler
	Leaderboard *handler.LeaderboardHandler
	Workouts    *handler.WorkoutHandler
}

// Register mounts all application routes on the provided Echo
// instance. The rate limiter wraps the whole API; the response cache
// wraps only the read-heavy leaderboard and workout GETs. Static
// routes (top, by_team, ...) are registered before the parameterized
// /:id routes; Echo matches static segments first either way, this
// just keeps the file readable.
func Register(e *echo.Echo, h Handlers, rdb *redis.Client) {
	e.GET("/healthz", handler.Health)
	e.GET("/", handler.APIRoot)
	e.GET("/api", handler.APIRoot)
	e.GET("/api/", handler.APIRoot)

	api := e.Group("/api")
	api.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	cached := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	// Users
	api.GET("/users", h.Users.List)
	api.POST("/users", h.Users.Create)
	api.GET("/users/by_team", h.Users.ByTeam)
	api.GET("/users/:id", h.Users.Get)
	api.PUT("/users/:id", h.Users.Update)
	api.DELETE("/users/:id", h.Users.Delete)

	// Teams
	api.GET("/teams", h.Teams.List)
	api.POST("/teams", h.Teams.Create)
	api.GET("/teams/:id", h.Teams.Get)
	api.PUT("/teams/:id", h.Teams.Update)
	api.DELETE("/teams/:id", h.Teams.Delete)
	api.GET("/teams/:id/members", h.Teams.Members)
	api.GET("/teams/:id/stats", h.Teams.Stats)

	// Activities
	api.GET("/activities", h.Activities.List)
	api.POST("/activities", h.Activities.Create)
	api.GET("/activities/by_user", h.Activities.ByUser)
	api.GET("/activities/by_type", h.Activities.ByType)
	api.GET("/activities/:id", h.Activities.Get)
	api.PUT("/activities/:id", h.Activities.Update)
	api.DELETE("/activities/:id", h.Activities.Delete)

	// Leaderboard. The cached GETs go stale for up to one cache TTL
	// after a refresh; the snapshot itself is already a point-in-time
	// view, so short-lived staleness is acceptable.
	api.GET("/leaderboard", h.Leaderboard.List, cached)
	api.POST("/leaderboard", h.Leaderboard.Create)
	api.GET("/leaderboard/top", h.Leaderboard.Top, cached)
	api.GET("/leaderboard/by_team", h.Leaderboard.ByTeam, cached)
	api.POST("/leaderboard/refresh", h.Leaderboard.Refresh)
	api.GET("/leaderboard/:id", h.Leaderboard.Get)
	api.PUT("/leaderboard/:id", h.Leaderboard.Update)
	api.DELETE("/leaderboard/:id", h.Leaderboard.Delete)

	// Workouts
	api.GET("/workouts", h.Workouts.List, cached)
	api.POST("/workouts", h.Workouts.Create)
	api.GET("/workouts/by_type", h.Workouts.ByType, cached)
	api.GET("/workouts/by_difficulty", h.Workouts.ByDifficulty, cached)
	api.GET("/workouts/recommended", h.Workouts.Recommended)
	api.GET("/workouts/:id", h.Workouts.Get)
	api.PUT("/workouts/:id", h.Workouts.Update)
	api.DELETE("/workouts/:id", h.Workouts.Delete)
}
