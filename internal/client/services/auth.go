// Package services contains the application services of the ARNOR GYM
// client. They own the in-memory user directory for the run and combine the
// directory store, the auth engine and the session manager into the
// operations the CLI exposes.
package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/arnorgym/internal/client/auth"
	"github.com/dmitrijs2005/arnorgym/internal/client/directory"
	"github.com/dmitrijs2005/arnorgym/internal/client/session"
	"github.com/dmitrijs2005/arnorgym/internal/logging"
)

// AuthService is what the login/registration screens use.
type AuthService interface {
	// Init loads the directory and seeds it on the very first start.
	Init(ctx context.Context) (directory.LoadStatus, error)
	Login(ctx context.Context, username, password string) (session.Session, error)
	Register(ctx context.Context, username, password, confirmPassword, email string) error
	ForgotPassword(ctx context.Context, username string) (string, error)
	Logout(ctx context.Context) error
	// Profile returns the current session together with the account record.
	// ok is false when nobody is logged in.
	Profile(ctx context.Context) (p Profile, ok bool)
}

type Profile struct {
	Session session.Session
	Record  directory.UserRecord
	// Known is false when the session user is no longer in the directory.
	Known bool
}

// Gym implements AuthService and DevToolsService over one shared directory.
type Gym struct {
	store    *directory.Store
	engine   *auth.Engine
	sessions *session.Manager
	dir      *directory.Directory
	opener   TargetOpener
	log      logging.Logger
}

func NewGym(store *directory.Store, engine *auth.Engine, sessions *session.Manager, opener TargetOpener, log logging.Logger) *Gym {
	return &Gym{
		store:    store,
		engine:   engine,
		sessions: sessions,
		dir:      directory.New(),
		opener:   opener,
		log:      log,
	}
}

func (g *Gym) Init(ctx context.Context) (directory.LoadStatus, error) {
	dir, status := g.store.Load(ctx)
	g.dir = dir

	if _, err := g.store.SeedIfEmpty(ctx, g.dir); err != nil {
		return status, fmt.Errorf("seed directory: %w", err)
	}
	return status, nil
}

func (g *Gym) Login(ctx context.Context, username, password string) (session.Session, error) {
	if _, err := g.engine.Login(ctx, g.dir, auth.LoginRequest{Username: username, Password: password}); err != nil {
		return session.Session{}, err
	}
	return g.sessions.Start(ctx, username)
}

func (g *Gym) Register(ctx context.Context, username, password, confirmPassword, email string) error {
	_, err := g.engine.Register(ctx, g.dir, auth.RegisterRequest{
		Username:        username,
		Password:        password,
		ConfirmPassword: confirmPassword,
		Email:           email,
	})
	return err
}

func (g *Gym) ForgotPassword(ctx context.Context, username string) (string, error) {
	email, err := g.engine.RecoverPasswordLookup(g.dir, username)
	if err != nil {
		return "", err
	}
	g.log.Info(ctx, "password recovery lookup", "username", username)
	return email, nil
}

func (g *Gym) Logout(ctx context.Context) error {
	return g.sessions.End(ctx)
}

func (g *Gym) Profile(ctx context.Context) (Profile, bool) {
	s, ok := g.sessions.Current(ctx)
	if !ok {
		return Profile{}, false
	}
	rec, known := g.dir.Get(s.Username)
	return Profile{Session: s, Record: rec, Known: known}, true
}
