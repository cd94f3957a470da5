package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"sync"

	"github.com/pressly/goose/v3"
	"github.com/vibast-solutions/ms-go-store-subscriptions/config"
)

//go:embed migrations/mysql/*.sql migrations/sqlite/*.sql
var migrations embed.FS

type Direction string

const (
	DirectionUp     Direction = "up"
	DirectionDown   Direction = "down"
	DirectionStatus Direction = "status"
)

// goose keeps its dialect and filesystem in package globals.
var gooseMu sync.Mutex

func migrationSource(driver string) (dialect string, dir string, err error) {
	switch driver {
	case config.DriverMySQL:
		return "mysql", "migrations/mysql", nil
	case config.DriverSQLite:
		return "sqlite3", "migrations/sqlite", nil
	default:
		return "", "", fmt.Errorf("unsupported database driver %q", driver)
	}
}

// Migrate applies the embedded schema migrations for driver in the given direction.
func Migrate(ctx context.Context, db *sql.DB, driver string, direction Direction, logger goose.Logger) error {
	dialect, dir, err := migrationSource(driver)
	if err != nil {
		return err
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(migrations)
	defer goose.SetBaseFS(nil)
	if logger != nil {
		goose.SetLogger(logger)
	}
	if err := goose.SetDialect(dialect); err != nil {
		return err
	}

	switch direction {
	case DirectionUp:
		return goose.UpContext(ctx, db, dir)
	case DirectionDown:
		return goose.DownContext(ctx, db, dir)
	case DirectionStatus:
		return goose.StatusContext(ctx, db, dir)
	default:
		return fmt.Errorf("unknown migration direction %q", direction)
	}
}
