package directory

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/arnorgym/internal/client/repositories/kv"
	"github.com/dmitrijs2005/arnorgym/internal/logging"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

var fixedNow = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

func newRepo(t *testing.T) kv.Repository {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`CREATE TABLE storage (key TEXT PRIMARY KEY, value TEXT NOT NULL);`)
	require.NoError(t, err)
	return kv.NewSQLiteRepository(db)
}

func newStore(t *testing.T) (*Store, kv.Repository) {
	t.Helper()
	repo := newRepo(t)
	return NewStore(repo, logging.Discard(), WithClock(func() time.Time { return fixedNow })), repo
}

// brokenRepo fails every call with err, or only writes when readOK is set.
type brokenRepo struct {
	kv.Repository
	err    error
	readOK bool
}

var errDisk = errors.New("quota exceeded")

func (b *brokenRepo) Get(ctx context.Context, key string) (string, bool, error) {
	if b.readOK {
		return b.Repository.Get(ctx, key)
	}
	return "", false, b.err
}

func (b *brokenRepo) Has(ctx context.Context, key string) (bool, error) {
	if b.readOK {
		return b.Repository.Has(ctx, key)
	}
	return false, b.err
}

func (b *brokenRepo) Set(context.Context, string, string) error { return b.err }
func (b *brokenRepo) Delete(context.Context, string) error      { return b.err }
