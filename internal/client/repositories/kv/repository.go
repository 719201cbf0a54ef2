package kv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/arnorgym/internal/dbx"
)

type queries struct {
	get    string
	has    string
	set    string
	delete string
	clear  string
}

// sqlRepository implements Repository on top of database/sql. The
// dialect-specific SQL lives in queries.
type sqlRepository struct {
	db   dbx.DBTX
	conn *sql.DB // nil inside a transaction
	q    queries
}

func (r *sqlRepository) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := r.db.QueryRowContext(ctx, r.q.get, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get storage[%s]: %w", key, err)
	}
	return value, true, nil
}

func (r *sqlRepository) Has(ctx context.Context, key string) (bool, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, r.q.has, key).Scan(&n); err != nil {
		return false, fmt.Errorf("failed to check storage[%s]: %w", key, err)
	}
	return n > 0, nil
}

func (r *sqlRepository) Set(ctx context.Context, key string, value string) error {
	if _, err := r.db.ExecContext(ctx, r.q.set, key, value); err != nil {
		return fmt.Errorf("failed to set storage[%s]: %w", key, err)
	}
	return nil
}

func (r *sqlRepository) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, r.q.delete, key); err != nil {
		return fmt.Errorf("failed to delete storage[%s]: %w", key, err)
	}
	return nil
}

func (r *sqlRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, r.q.clear); err != nil {
		return fmt.Errorf("failed to clear storage: %w", err)
	}
	return nil
}

func (r *sqlRepository) Update(ctx context.Context, fn func(ctx context.Context, r Repository) error) error {
	if r.conn == nil {
		return fn(ctx, r)
	}
	return dbx.WithTx(ctx, r.conn, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return fn(ctx, &sqlRepository{db: tx, q: r.q})
	})
}
