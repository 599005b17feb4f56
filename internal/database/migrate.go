package database

import (
	"context"
	"database/sql"
)

// schema holds the idempotent DDL for every collection the tracker
// persists. There is intentionally no foreign key between activities
// and users or between users and teams: those references are plain
// strings joined by value equality, and the application tolerates
// orphaned references.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id         BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		name       VARCHAR(200) NOT NULL,
		email      VARCHAR(254) NOT NULL,
		team       VARCHAR(100) NOT NULL DEFAULT '',
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY uq_users_email (email),
		KEY idx_users_team (team)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS teams (
		id          BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		name        VARCHAR(200) NOT NULL,
		description TEXT,
		created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS activities (
		id            BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		user_email    VARCHAR(254) NOT NULL,
		activity_type VARCHAR(100) NOT NULL,
		duration      INT NOT NULL,
		calories      INT NOT NULL,
		date          DATETIME NOT NULL,
		created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		KEY idx_activities_user_email (user_email),
		KEY idx_activities_type (activity_type)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS leaderboard (
		id               BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		user_email       VARCHAR(254) NOT NULL,
		user_name        VARCHAR(200) NOT NULL,
		team             VARCHAR(100) NOT NULL DEFAULT '',
		total_calories   INT NOT NULL DEFAULT 0,
		total_activities INT NOT NULL DEFAULT 0,
		` + "`rank`" + `           INT NOT NULL,
		updated_at       DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		KEY idx_leaderboard_rank (` + "`rank`" + `),
		KEY idx_leaderboard_team (team)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS workouts (
		id                BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		name              VARCHAR(200) NOT NULL,
		description       TEXT,
		activity_type     VARCHAR(100) NOT NULL,
		duration          INT NOT NULL,
		difficulty        VARCHAR(50) NOT NULL,
		calories_estimate INT NOT NULL DEFAULT 0,
		created_at        DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		KEY idx_workouts_type (activity_type),
		KEY idx_workouts_difficulty (difficulty)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// Migrate applies the schema statements in order. Every statement is
// idempotent (CREATE TABLE IF NOT EXISTS) so running it on each boot
// is safe; the first statement that fails aborts the startup.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
