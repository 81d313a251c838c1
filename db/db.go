package db

import (
	"database/sql"
	"fmt"

	"card-bank-api/config"
	"card-bank-api/logger"

	_ "github.com/lib/pq"
)

// Connect opens a postgres connection using the loaded configuration.
// A lock_timeout is set on the session so a transfer stuck behind another
// row lock fails with a typed error instead of blocking the request forever.
func Connect(cfg *config.Config) (*sql.DB, error) {
	d := cfg.Database

	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable options='-c lock_timeout=%d'",
		d.Host, d.Port, d.User, d.Password, d.Name, cfg.Limits.LockTimeoutMS)

	safeConnStr := fmt.Sprintf("host=%s port=%s user=%s dbname=%s sslmode=disable",
		d.Host, d.Port, d.User, d.Name)

	logger.Log.WithField("connection", safeConnStr).Info("Attempting to connect to the database")

	database, err := sql.Open("postgres", connStr)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to open database connection")
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	if err = database.Ping(); err != nil {
		logger.Log.WithError(err).Error("Failed to ping database")
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Log.Info("Database connection established successfully")
	return database, nil
}
