package client

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"

	"github.com/dmitrijs2005/arnorgym/internal/client/migrations"
	"github.com/dmitrijs2005/arnorgym/internal/client/repositories/kv"
	"github.com/pressly/goose/v3"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// MemoryDSN keeps a SQLite database in process memory. Used for the
// session scope so that it dies with the process.
const MemoryDSN = ":memory:"

// Repositories bundles the two storage scopes of the client.
type Repositories struct {
	Durable kv.Repository
	Session kv.Repository

	dbs []*sql.DB
}

// Close closes every database opened by InitStorage.
func (r *Repositories) Close() error {
	var errs []error
	for _, db := range r.dbs {
		errs = append(errs, db.Close())
	}
	return errors.Join(errs...)
}

func init() {
	goose.SetLogger(goose.NopLogger())
}

// RunMigrations applies the embedded migrations of the given goose dialect
// ("sqlite3" or "postgres").
func RunMigrations(ctx context.Context, db *sql.DB, dialect string) error {
	var (
		fsys fs.FS
		dir  string
	)
	switch dialect {
	case "sqlite3":
		fsys, dir = migrations.SQLite, "sqlite"
	case "postgres":
		fsys, dir = migrations.Postgres, "postgres"
	default:
		return fmt.Errorf("unsupported dialect %q", dialect)
	}

	goose.SetBaseFS(fsys)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	return goose.UpContext(ctx, db, dir)
}

// OpenSQLite opens a SQLite database and migrates it. An in-memory DSN is
// pinned to one connection, otherwise every pooled connection would see its
// own empty database.
func OpenSQLite(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if dsn == MemoryDSN {
		db.SetMaxOpenConns(1)
	}
	if err := RunMigrations(ctx, db, "sqlite3"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite migrations: %w", err)
	}
	return db, nil
}

// OpenPostgres opens a PostgreSQL database through pgx and migrates it.
func OpenPostgres(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres ping: %w", err)
	}
	if err := RunMigrations(ctx, db, "postgres"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres migrations: %w", err)
	}
	return db, nil
}

// StorageOptions selects where each storage scope lives.
type StorageOptions struct {
	// DurableDSN is the SQLite file of the durable scope.
	DurableDSN string
	// PostgresDSN, when set, replaces DurableDSN with a PostgreSQL database.
	PostgresDSN string
	// SessionDSN is the SQLite database of the session scope, MemoryDSN by default.
	SessionDSN string
}

// InitStorage opens and migrates the durable and session databases.
func InitStorage(ctx context.Context, opts StorageOptions) (*Repositories, error) {
	repos := &Repositories{}

	if opts.PostgresDSN != "" {
		db, err := OpenPostgres(ctx, opts.PostgresDSN)
		if err != nil {
			return nil, err
		}
		repos.dbs = append(repos.dbs, db)
		repos.Durable = kv.NewPostgresRepository(db)
	} else {
		db, err := OpenSQLite(ctx, opts.DurableDSN)
		if err != nil {
			return nil, err
		}
		repos.dbs = append(repos.dbs, db)
		repos.Durable = kv.NewSQLiteRepository(db)
	}

	sessionDSN := opts.SessionDSN
	if sessionDSN == "" {
		sessionDSN = MemoryDSN
	}
	db, err := OpenSQLite(ctx, sessionDSN)
	if err != nil {
		_ = repos.Close()
		return nil, err
	}
	repos.dbs = append(repos.dbs, db)
	repos.Session = kv.NewSQLiteRepository(db)

	return repos, nil
}
