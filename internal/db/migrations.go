package db

import (
	"errors"
	"fmt"
	"io/fs"
	"regexp"
	"sort"
	"strconv"
	"strings"

	embeddedmigrations "github.com/terraincognita07/cyclecal/migrations"
	"gorm.io/gorm"
)

var migrationFileName = regexp.MustCompile(`^(\d+)_([a-z0-9_]+)\.sql$`)

type migration struct {
	Version int
	Name    string
	SQL     string
}

type schemaMigration struct {
	Version int    `gorm:"column:version"`
	Name    string `gorm:"column:name"`
}

// ApplyMigrations runs every embedded migration that is not yet recorded in
// schema_migrations and returns the file names it applied, in order.
func ApplyMigrations(database *gorm.DB) ([]string, error) {
	return applyMigrations(database, embeddedmigrations.Files)
}

func applyMigrations(database *gorm.DB, files fs.FS) ([]string, error) {
	if err := database.Exec(`
CREATE TABLE IF NOT EXISTS schema_migrations (
  version INTEGER PRIMARY KEY,
  name TEXT NOT NULL,
  applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
)`).Error; err != nil {
		return nil, fmt.Errorf("create schema_migrations table: %w", err)
	}

	pending, err := readMigrations(files)
	if err != nil {
		return nil, err
	}

	recorded := make([]schemaMigration, 0)
	if err := database.Raw(`SELECT version, name FROM schema_migrations`).Scan(&recorded).Error; err != nil {
		return nil, fmt.Errorf("load applied migrations: %w", err)
	}
	done := make(map[int]bool, len(recorded))
	for _, row := range recorded {
		done[row.Version] = true
	}

	applied := make([]string, 0, len(pending))
	for _, next := range pending {
		if done[next.Version] {
			continue
		}
		if err := runMigration(database, next); err != nil {
			return applied, err
		}
		applied = append(applied, next.Name)
	}
	return applied, nil
}

func readMigrations(files fs.FS) ([]migration, error) {
	entries, err := fs.ReadDir(files, ".")
	if err != nil {
		return nil, fmt.Errorf("read embedded migrations: %w", err)
	}

	byVersion := make(map[int]string, len(entries))
	result := make([]migration, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		matches := migrationFileName.FindStringSubmatch(entry.Name())
		if matches == nil {
			continue
		}

		version, err := strconv.Atoi(matches[1])
		if err != nil {
			return nil, fmt.Errorf("parse migration version of %s: %w", entry.Name(), err)
		}
		if previous, exists := byVersion[version]; exists {
			return nil, fmt.Errorf("migration version %d declared by %s and %s", version, previous, entry.Name())
		}
		byVersion[version] = entry.Name()

		body, err := fs.ReadFile(files, entry.Name())
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", entry.Name(), err)
		}
		result = append(result, migration{Version: version, Name: entry.Name(), SQL: string(body)})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Version < result[j].Version
	})
	return result, nil
}

func runMigration(database *gorm.DB, next migration) error {
	statements := sqlStatements(next.SQL)
	if len(statements) == 0 {
		return fmt.Errorf("migration %s: %w", next.Name, errEmptyMigration)
	}

	return database.Transaction(func(tx *gorm.DB) error {
		for _, statement := range statements {
			if err := tx.Exec(statement).Error; err != nil {
				return fmt.Errorf("migration %s: %w", next.Name, err)
			}
		}
		if err := tx.Exec(`INSERT INTO schema_migrations(version, name) VALUES (?, ?)`, next.Version, next.Name).Error; err != nil {
			return fmt.Errorf("record migration %s: %w", next.Name, err)
		}
		return nil
	})
}

var errEmptyMigration = errors.New("migration has no statements")

// sqlStatements splits on ";" which is enough for the plain DDL we ship.
func sqlStatements(body string) []string {
	parts := strings.Split(body, ";")
	statements := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			statements = append(statements, trimmed)
		}
	}
	return statements
}
