package directory

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/arnorgym/internal/client/repositories/kv"
	"github.com/dmitrijs2005/arnorgym/internal/common"
	"github.com/dmitrijs2005/arnorgym/internal/logging"
	"github.com/dmitrijs2005/arnorgym/internal/timex"
)

// LoadStatus tells the caller what Load found in durable storage.
type LoadStatus int

const (
	// LoadOK means a valid document was read.
	LoadOK LoadStatus = iota
	// LoadMissing means the storage key is absent and the store needs seeding.
	LoadMissing
	// LoadRecovered means the document was unreadable and was replaced by an
	// empty directory in memory.
	LoadRecovered
)

func (s LoadStatus) String() string {
	switch s {
	case LoadOK:
		return "ok"
	case LoadMissing:
		return "missing"
	case LoadRecovered:
		return "recovered"
	default:
		return "unknown"
	}
}

// Store persists a Directory as one document in a kv.Repository.
type Store struct {
	repo kv.Repository
	log  logging.Logger
	now  func() time.Time
}

type Option func(*Store)

// WithClock overrides time.Now, used for registeredAt of the test account.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func NewStore(repo kv.Repository, log logging.Logger, opts ...Option) *Store {
	s := &Store{repo: repo, log: log, now: time.Now}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Load reads the durable document. It never fails: an absent key yields an
// empty directory with LoadMissing, a read or parse failure is logged and
// yields an empty directory with LoadRecovered.
func (s *Store) Load(ctx context.Context) (*Directory, LoadStatus) {
	doc, ok, err := s.repo.Get(ctx, common.StorageKey)
	if err != nil {
		s.log.Error(ctx, "failed to read user directory, starting empty", "error", err)
		return New(), LoadRecovered
	}
	if !ok {
		return New(), LoadMissing
	}

	d, err := Parse([]byte(doc))
	if err != nil {
		s.log.Error(ctx, "stored user directory is malformed, starting empty", "error", err)
		return New(), LoadRecovered
	}

	s.log.Info(ctx, "user directory loaded", "users", d.Len())
	return d, LoadOK
}

// SeedIfEmpty writes the built-in accounts when the storage key does not
// exist at all. A present key, even holding an empty directory, is never
// re-seeded. On seeding, dir is replaced by the built-ins.
func (s *Store) SeedIfEmpty(ctx context.Context, dir *Directory) (bool, error) {
	exists, err := s.repo.Has(ctx, common.StorageKey)
	if err != nil {
		return false, fmt.Errorf("%w: %v", common.ErrStorage, err)
	}
	if exists {
		return false, nil
	}

	s.log.Info(ctx, "first start, seeding default users")
	dir.Reset(Builtins())
	if err := s.Save(ctx, dir); err != nil {
		return true, err
	}
	s.log.Info(ctx, "default users seeded", "users", dir.Len())
	return true, nil
}

// Save writes the full snapshot of dir. Failures wrap common.ErrStorage;
// dir itself is left untouched.
func (s *Store) Save(ctx context.Context, dir *Directory) error {
	doc, err := dir.MarshalJSON()
	if err != nil {
		return fmt.Errorf("%w: encode directory: %v", common.ErrStorage, err)
	}
	if err := s.repo.Set(ctx, common.StorageKey, string(doc)); err != nil {
		s.log.Error(ctx, "failed to save user directory", "error", err)
		return fmt.Errorf("%w: %v", common.ErrStorage, err)
	}
	s.log.Debug(ctx, "user directory saved", "users", dir.Len())
	return nil
}

// Import parses doc and merges it into dir, imported records winning, then
// saves. A malformed document leaves dir unchanged and wraps
// common.ErrFormat. If saving fails the merge stays in memory and the error
// wraps common.ErrStorage.
func (s *Store) Import(ctx context.Context, doc []byte, dir *Directory) (int, error) {
	imported, err := Parse(doc)
	if err != nil {
		s.log.Warn(ctx, "import rejected", "error", err)
		return 0, err
	}

	n := Merge(dir, imported)
	if err := s.Save(ctx, dir); err != nil {
		return n, err
	}
	s.log.Info(ctx, "users imported", "imported", n, "users", dir.Len())
	return n, nil
}

// Clear empties dir and removes the storage key, so the next start seeds
// the built-in accounts again.
func (s *Store) Clear(ctx context.Context, dir *Directory) error {
	dir.Reset(nil)
	if err := s.repo.Delete(ctx, common.StorageKey); err != nil {
		return fmt.Errorf("%w: %v", common.ErrStorage, err)
	}
	s.log.Warn(ctx, "all users cleared")
	return nil
}

// AddTestUser puts the fixed test account into dir and saves.
func (s *Store) AddTestUser(ctx context.Context, dir *Directory) (UserRecord, error) {
	rec := UserRecord{
		Password:     TestPassword,
		Email:        TestEmail,
		RegisteredAt: timex.NewTimestamp(s.now()),
	}
	dir.Put(TestUsername, rec)
	if err := s.Save(ctx, dir); err != nil {
		return rec, err
	}
	s.log.Info(ctx, "test user added", "username", TestUsername)
	return rec, nil
}
