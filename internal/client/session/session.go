// Package session tracks the authenticated identity for one client run,
// independent of the durable user directory.
//
// The state lives in session-scoped storage under the keys currentUser,
// loginTime and sessionId. Logging out removes all three together and never
// touches the directory.
package session

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/arnorgym/internal/client/repositories/kv"
	"github.com/dmitrijs2005/arnorgym/internal/common"
	"github.com/dmitrijs2005/arnorgym/internal/logging"
	"github.com/dmitrijs2005/arnorgym/internal/timex"
	"github.com/google/uuid"
)

type State int

const (
	Anonymous State = iota
	Authenticated
)

func (s State) String() string {
	if s == Authenticated {
		return "authenticated"
	}
	return "anonymous"
}

type Session struct {
	ID        uuid.UUID
	Username  string
	LoginTime time.Time
}

type Manager struct {
	repo  kv.Repository
	log   logging.Logger
	now   func() time.Time
	newID func() uuid.UUID
}

type Option func(*Manager)

func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

func WithIDGenerator(gen func() uuid.UUID) Option {
	return func(m *Manager) { m.newID = gen }
}

func NewManager(repo kv.Repository, log logging.Logger, opts ...Option) *Manager {
	m := &Manager{repo: repo, log: log, now: time.Now, newID: uuid.New}
	for _, o := range opts {
		o(m)
	}
	return m
}

// Start records username as the authenticated identity, replacing any
// previous session.
func (m *Manager) Start(ctx context.Context, username string) (Session, error) {
	s := Session{
		ID:        m.newID(),
		Username:  username,
		LoginTime: m.now().UTC().Truncate(time.Millisecond),
	}

	err := m.repo.Update(ctx, func(ctx context.Context, tx kv.Repository) error {
		if err := tx.Set(ctx, common.SessionKeyUser, s.Username); err != nil {
			return err
		}
		if err := tx.Set(ctx, common.SessionKeyLoginTime, timex.FormatISO(s.LoginTime)); err != nil {
			return err
		}
		return tx.Set(ctx, common.SessionKeyID, s.ID.String())
	})
	if err != nil {
		return Session{}, fmt.Errorf("%w: start session: %v", common.ErrStorage, err)
	}

	m.log.Info(ctx, "session started", "username", s.Username, "session", s.ID.String())
	return s, nil
}

// Current returns the active session, if any. A missing or unreadable
// login time or id yields zero values for those fields; only the username
// decides whether a session exists.
func (m *Manager) Current(ctx context.Context) (Session, bool) {
	username, ok, err := m.repo.Get(ctx, common.SessionKeyUser)
	if err != nil {
		m.log.Warn(ctx, "failed to read session", "error", err)
		return Session{}, false
	}
	if !ok || username == "" {
		return Session{}, false
	}

	s := Session{Username: username}
	if raw, ok, err := m.repo.Get(ctx, common.SessionKeyLoginTime); err == nil && ok {
		if t, err := timex.ParseISO(raw); err == nil {
			s.LoginTime = t
		}
	}
	if raw, ok, err := m.repo.Get(ctx, common.SessionKeyID); err == nil && ok {
		if id, err := uuid.Parse(raw); err == nil {
			s.ID = id
		}
	}
	return s, true
}

func (m *Manager) IsAuthenticated(ctx context.Context) bool {
	_, ok := m.Current(ctx)
	return ok
}

func (m *Manager) State(ctx context.Context) State {
	if m.IsAuthenticated(ctx) {
		return Authenticated
	}
	return Anonymous
}

// End clears the session keys. Ending an anonymous session is a no-op.
func (m *Manager) End(ctx context.Context) error {
	s, had := m.Current(ctx)

	err := m.repo.Update(ctx, func(ctx context.Context, tx kv.Repository) error {
		for _, key := range []string{common.SessionKeyUser, common.SessionKeyLoginTime, common.SessionKeyID} {
			if err := tx.Delete(ctx, key); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: end session: %v", common.ErrStorage, err)
	}

	if had {
		m.log.Info(ctx, "session ended", "username", s.Username, "session", s.ID.String())
	}
	return nil
}
