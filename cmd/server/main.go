package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/octofit/octofit-tracker/internal/config"
	"github.com/octofit/octofit-tracker/internal/database"
	"github.com/octofit/octofit-tracker/internal/handler"
	"github.com/octofit/octofit-tracker/internal/queue"
	"github.com/octofit/octofit-tracker/internal/repository"
	"github.com/octofit/octofit-tracker/internal/router"
	"github.com/octofit/octofit-tracker/internal/service"
)

func main() {
	// Load .env when present; real environments set variables directly.
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.Migrate(ctx, db); err != nil {
		log.Fatalf("schema migration failed: %v", err)
	}
	cancel()

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable: response cache and rate limiting disabled")
	}

	users := repository.NewUserRepo(db)
	teams := repository.NewTeamRepo(db)
	activities := repository.NewActivityRepo(db)
	leaderboard := repository.NewLeaderboardRepo(db)
	workouts := repository.NewWorkoutRepo(db)

	teamSvc := service.NewTeamService(teams, users, activities)
	leaderboardSvc := service.NewLeaderboardService(users, activities, leaderboard)
	recommendSvc := service.NewRecommendationService(activities, workouts)

	e := echo.New()
	e.Validator = handler.NewValidator()
	router.Register(e, router.Handlers{
		Users:       handler.NewUserHandler(users),
		Teams:       handler.NewTeamHandler(teams, users, teamSvc),
		Activities:  handler.NewActivityHandler(activities),
		Leaderboard: handler.NewLeaderboardHandler(leaderboard, leaderboardSvc),
		Workouts:    handler.NewWorkoutHandler(workouts, recommendSvc),
	}, rdb)

	// Background consumer appending activity.logged events to the log
	// file. It reconnects forever on broker failures.
	go func() {
		if err := queue.StartActivityConsumer(); err != nil {
			log.Printf("activity consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
