package database

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"confms/internal/config"
)

// Database wraps the SQL database connection
type Database struct {
	DB *sql.DB
}

// New opens a PostgreSQL connection pool and verifies it
func New(cfg *config.DatabaseConfig) (*Database, error) {
	db, err := sql.Open("postgres", cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.MaxLifetime)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Database{DB: db}, nil
}

// Close closes the database connection
func (d *Database) Close() error {
	return d.DB.Close()
}

// HealthCheck verifies the database connection is alive
func (d *Database) HealthCheck() error {
	ctx, cancel := getContext(5 * time.Second)
	defer cancel()

	if err := d.DB.PingContext(ctx); err != nil {
		return fmt.Errorf("database health check failed: %w", err)
	}

	return nil
}
