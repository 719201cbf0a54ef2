package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/dmitrijs2005/arnorgym/internal/client/auth"
	"github.com/dmitrijs2005/arnorgym/internal/client/directory"
	"github.com/dmitrijs2005/arnorgym/internal/client/repositories/kv"
	"github.com/dmitrijs2005/arnorgym/internal/client/session"
	"github.com/dmitrijs2005/arnorgym/internal/client/transfer"
	"github.com/dmitrijs2005/arnorgym/internal/logging"
	"github.com/spf13/afero"
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

type env struct {
	gym     *Gym
	durable kv.Repository
	session kv.Repository
	fs      afero.Fs
}

func newGym(t *testing.T, durable kv.Repository) *env {
	t.Helper()
	log := logging.Discard()
	clock := func() time.Time { return fixedNow }
	fs := afero.NewMemMapFs()
	sessionRepo := newRepo(t)

	store := directory.NewStore(durable, log, directory.WithClock(clock))
	engine := auth.NewEngine(store, log, auth.WithClock(clock))
	sessions := session.NewManager(sessionRepo, log, session.WithClock(clock))
	opener := func(ctx context.Context, uri string) (transfer.Target, error) {
		return transfer.Open(ctx, uri, transfer.Options{FS: fs})
	}

	return &env{
		gym:     NewGym(store, engine, sessions, opener, log),
		durable: durable,
		session: sessionRepo,
		fs:      fs,
	}
}
