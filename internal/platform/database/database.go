package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"readinglist/internal/platform/config"
	apperrors "readinglist/internal/platform/errors"
)

// Querier is the subset of *sql.DB and *sql.Tx the stores use.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type txKey struct{}

// DB wraps a database/sql handle with dialect-aware placeholder rebinding and
// a context-carried transaction. Stores write queries with '?' placeholders.
type DB struct {
	conn    *sql.DB
	dialect string
	log     *zap.Logger
}

// Open connects to the database configured in cfg. Migrations are not applied;
// see Migrate.
func Open(ctx context.Context, cfg config.Config, log *zap.Logger) (*DB, error) {
	var (
		conn *sql.DB
		err  error
	)
	switch cfg.DBDriver {
	case config.DriverSQLite:
		if err := os.MkdirAll(filepath.Dir(cfg.DSN), 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
		conn, err = sql.Open("sqlite", sqliteDSN(cfg.DSN))
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		// One writer at a time; also keeps in-transaction reads on the same connection.
		conn.SetMaxOpenConns(1)
	case config.DriverPostgres:
		conn, err = sql.Open("pgx", cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported db driver %q", cfg.DBDriver)
	}
	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("ping %s: %w", cfg.DBDriver, err)
	}
	if log == nil {
		log = zap.NewNop()
	}
	log.Debug("database opened", zap.String("driver", cfg.DBDriver))
	return &DB{conn: conn, dialect: cfg.DBDriver, log: log}, nil
}

func sqliteDSN(path string) string {
	if strings.Contains(path, "?") {
		return path
	}
	return "file:" + path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

func (d *DB) Dialect() string { return d.dialect }

func (d *DB) Close() error { return d.conn.Close() }

// Within runs fn inside a transaction. Nested calls join the outer transaction.
func (d *DB) Within(ctx context.Context, fn func(context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return fn(ctx)
	}
	tx, err := d.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w: %v", apperrors.ErrStorage, err)
	}
	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			d.log.Warn("rollback failed", zap.Error(rbErr))
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w: %v", apperrors.ErrStorage, err)
	}
	return nil
}

func (d *DB) querier(ctx context.Context) Querier {
	if tx, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return tx
	}
	return d.conn
}

func (d *DB) Exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return d.querier(ctx).ExecContext(ctx, d.Rebind(query), args...)
}

func (d *DB) Query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return d.querier(ctx).QueryContext(ctx, d.Rebind(query), args...)
}

func (d *DB) QueryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return d.querier(ctx).QueryRowContext(ctx, d.Rebind(query), args...)
}

// Rebind rewrites '?' placeholders into the dialect's form.
func (d *DB) Rebind(query string) string {
	if d.dialect != config.DriverPostgres {
		return query
	}
	var sb strings.Builder
	sb.Grow(len(query) + 8)
	n := 0
	inQuote := false
	for _, r := range query {
		switch {
		case r == '\'':
			inQuote = !inQuote
			sb.WriteRune(r)
		case r == '?' && !inQuote:
			n++
			sb.WriteString("$" + strconv.Itoa(n))
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// Classify maps a driver error onto the application taxonomy. Missing rows and
// foreign-key failures become ErrNotFound, unique violations ErrConflict, and
// anything else ErrStorage.
func Classify(err error, op string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, apperrors.ErrNotFound)
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		switch liteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return fmt.Errorf("%s: %w", op, apperrors.ErrConflict)
		case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
			return fmt.Errorf("%s: %w", op, apperrors.ErrNotFound)
		case sqlite3.SQLITE_CONSTRAINT_CHECK:
			return fmt.Errorf("%s: %w", op, apperrors.ErrInvalidInput)
		}
		// Without extended result codes only the primary code and message remain.
		if liteErr.Code()&0xff == sqlite3.SQLITE_CONSTRAINT {
			msg := liteErr.Error()
			switch {
			case strings.Contains(msg, "UNIQUE"):
				return fmt.Errorf("%s: %w", op, apperrors.ErrConflict)
			case strings.Contains(msg, "FOREIGN KEY"):
				return fmt.Errorf("%s: %w", op, apperrors.ErrNotFound)
			case strings.Contains(msg, "CHECK"):
				return fmt.Errorf("%s: %w", op, apperrors.ErrInvalidInput)
			}
		}
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return fmt.Errorf("%s: %w", op, apperrors.ErrConflict)
		case pgerrcode.ForeignKeyViolation:
			return fmt.Errorf("%s: %w", op, apperrors.ErrNotFound)
		case pgerrcode.CheckViolation:
			return fmt.Errorf("%s: %w", op, apperrors.ErrInvalidInput)
		}
	}
	return fmt.Errorf("%s: %w: %v", op, apperrors.ErrStorage, err)
}
