package database

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"

	"readinglist/internal/platform/config"
)

//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var migrationsFS embed.FS

// Migrate applies every pending up migration for the configured dialect. It
// opens its own connection so it can run before Open.
func Migrate(cfg config.Config, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.DBDriver == config.DriverSQLite {
		if err := os.MkdirAll(filepath.Dir(cfg.DSN), 0o755); err != nil {
			return fmt.Errorf("create db dir: %w", err)
		}
	}
	src, err := iofs.New(migrationsFS, "migrations/"+cfg.DBDriver)
	if err != nil {
		return fmt.Errorf("migration source: %w", err)
	}
	databaseURL, err := migrationURL(cfg)
	if err != nil {
		return err
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, databaseURL)
	if err != nil {
		return fmt.Errorf("init migrations: %w", err)
	}
	defer func() {
		srcErr, dbErr := m.Close()
		if srcErr != nil {
			log.Warn("close migration source", zap.Error(srcErr))
		}
		if dbErr != nil {
			log.Warn("close migration database", zap.Error(dbErr))
		}
	}()
	m.Log = migrateLogger{log: log}

	from, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("read schema version: %w", err)
	}
	if dirty {
		return fmt.Errorf("schema is dirty at version %d", from)
	}
	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Debug("schema up to date", zap.Uint("version", from))
			return nil
		}
		return fmt.Errorf("apply migrations: %w", err)
	}
	to, _, _ := m.Version()
	log.Info("schema migrated", zap.Uint("from", from), zap.Uint("to", to))
	return nil
}

func migrationURL(cfg config.Config) (string, error) {
	switch cfg.DBDriver {
	case config.DriverSQLite:
		return "sqlite://" + cfg.DSN + "?_pragma=foreign_keys(1)", nil
	case config.DriverPostgres:
		for _, prefix := range []string{"postgres://", "postgresql://"} {
			if strings.HasPrefix(cfg.DSN, prefix) {
				return "pgx5://" + strings.TrimPrefix(cfg.DSN, prefix), nil
			}
		}
		if strings.HasPrefix(cfg.DSN, "pgx5://") {
			return cfg.DSN, nil
		}
		return "", fmt.Errorf("postgres dsn must be a postgres:// url")
	default:
		return "", fmt.Errorf("unsupported db driver %q", cfg.DBDriver)
	}
}

type migrateLogger struct {
	log *zap.Logger
}

func (l migrateLogger) Printf(format string, args ...any) {
	l.log.Debug(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (l migrateLogger) Verbose() bool { return false }
