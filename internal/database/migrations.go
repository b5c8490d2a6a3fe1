package database

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Migration represents one versioned schema change
type Migration struct {
	Version  string
	Title    string
	UpSQL    string
	DownSQL  string
	Checksum string // SHA256 of the up migration
}

// MigrationExecutor applies pending SQL migrations and guards applied ones
// against modification
type MigrationExecutor struct {
	db *sql.DB
}

// NewMigrationExecutor creates a new migration executor
func NewMigrationExecutor(db *sql.DB) *MigrationExecutor {
	return &MigrationExecutor{db: db}
}

// RunMigrations executes all pending migrations from the given directory
func (m *MigrationExecutor) RunMigrations(migrationsPath string) error {
	if err := m.createMigrationsTable(); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	migrations, err := m.readMigrationFiles(migrationsPath)
	if err != nil {
		return fmt.Errorf("failed to read migration files: %w", err)
	}

	if err := m.validateChecksums(migrations); err != nil {
		return fmt.Errorf("migration validation failed: %w", err)
	}

	applied, err := m.appliedVersions()
	if err != nil {
		return fmt.Errorf("failed to get applied migrations: %w", err)
	}

	for _, migration := range migrations {
		if _, done := applied[migration.Version]; done {
			continue
		}
		if err := m.executeMigration(migration); err != nil {
			return fmt.Errorf("failed to execute migration %s: %w", migration.Version, err)
		}
		slog.Info("Applied migration", "version", migration.Version, "title", migration.Title)
	}

	return nil
}

func (m *MigrationExecutor) createMigrationsTable() error {
	query := `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version VARCHAR(255) PRIMARY KEY,
			title VARCHAR(500),
			checksum VARCHAR(64),
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`
	_, err := m.db.Exec(query)
	return err
}

// readMigrationFiles pairs NNN_name.up.sql / NNN_name.down.sql files into
// Migration entries sorted by version
func (m *MigrationExecutor) readMigrationFiles(migrationsPath string) ([]Migration, error) {
	files, err := os.ReadDir(migrationsPath)
	if err != nil {
		return nil, err
	}

	byVersion := make(map[string]*Migration)
	for _, file := range files {
		filename := file.Name()
		if file.IsDir() || !strings.HasSuffix(filename, ".sql") {
			continue
		}

		parts := strings.SplitN(filename, "_", 2)
		if len(parts) < 2 {
			continue
		}
		version := parts[0]

		isUp := strings.HasSuffix(filename, ".up.sql")
		isDown := strings.HasSuffix(filename, ".down.sql")
		if !isUp && !isDown {
			continue
		}

		content, err := os.ReadFile(filepath.Join(migrationsPath, filename))
		if err != nil {
			return nil, err
		}

		if byVersion[version] == nil {
			title := strings.TrimSuffix(strings.TrimSuffix(parts[1], ".up.sql"), ".down.sql")
			title = strings.ReplaceAll(title, "_", " ")
			byVersion[version] = &Migration{Version: version, Title: title}
		}

		if isUp {
			byVersion[version].UpSQL = string(content)
			byVersion[version].Checksum = calculateChecksum(string(content))
		} else {
			byVersion[version].DownSQL = string(content)
		}
	}

	var migrations []Migration
	for _, migration := range byVersion {
		if migration.UpSQL != "" {
			migrations = append(migrations, *migration)
		}
	}
	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Version < migrations[j].Version
	})

	return migrations, nil
}

func (m *MigrationExecutor) appliedVersions() (map[string]struct{}, error) {
	rows, err := m.db.Query(`SELECT version FROM schema_migrations`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Error("Failed to close rows", "error", err)
		}
	}()

	versions := make(map[string]struct{})
	for rows.Next() {
		var version string
		if err := rows.Scan(&version); err != nil {
			return nil, err
		}
		versions[version] = struct{}{}
	}

	return versions, rows.Err()
}

func (m *MigrationExecutor) executeMigration(migration Migration) error {
	tx, err := m.db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
			slog.Error("Failed to rollback transaction", "error", err)
		}
	}()

	if _, err := tx.Exec(migration.UpSQL); err != nil {
		return fmt.Errorf("migration SQL failed: %w", err)
	}

	query := `INSERT INTO schema_migrations (version, title, checksum) VALUES ($1, $2, $3)`
	if _, err := tx.Exec(query, migration.Version, migration.Title, migration.Checksum); err != nil {
		return fmt.Errorf("failed to record migration: %w", err)
	}

	return tx.Commit()
}

// validateChecksums fails when an already applied migration file has been
// edited afterwards
func (m *MigrationExecutor) validateChecksums(migrations []Migration) error {
	rows, err := m.db.Query(`SELECT version, checksum FROM schema_migrations WHERE checksum IS NOT NULL`)
	if err != nil {
		return err
	}
	defer rows.Close()

	applied := make(map[string]string)
	for rows.Next() {
		var version, checksum string
		if err := rows.Scan(&version, &checksum); err != nil {
			return err
		}
		applied[version] = checksum
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for _, migration := range migrations {
		if checksum, exists := applied[migration.Version]; exists && checksum != migration.Checksum {
			return fmt.Errorf(
				"applied migration %s (%s) has been modified: expected checksum %s, got %s; "+
					"restore the original file or add a new migration",
				migration.Version, migration.Title, checksum, migration.Checksum,
			)
		}
	}

	return nil
}

func calculateChecksum(content string) string {
	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}
