package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/dmitrijs2005/arnorgym/internal/client/auth"
	"github.com/dmitrijs2005/arnorgym/internal/client/client"
	"github.com/dmitrijs2005/arnorgym/internal/client/config"
	"github.com/dmitrijs2005/arnorgym/internal/client/directory"
	"github.com/dmitrijs2005/arnorgym/internal/client/services"
	"github.com/dmitrijs2005/arnorgym/internal/client/session"
	"github.com/dmitrijs2005/arnorgym/internal/client/transfer"
	"github.com/dmitrijs2005/arnorgym/internal/logging"
	"github.com/google/uuid"
	"github.com/spf13/afero"
)

// Mode is the form the auth screen currently shows.
type Mode string

const (
	ModeLogin    Mode = "login"
	ModeRegister Mode = "register"
)

type App struct {
	config *config.Config
	auth   services.AuthService
	dev    services.DevToolsService
	log    logging.Logger
	reader *bufio.Reader
	out    io.Writer
	closer io.Closer
	sched  *scheduler

	// mu guards the fields below; scheduled callbacks touch them too.
	mu       sync.Mutex
	mode      Mode
	userName  string
	sessionID uuid.UUID
}

func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	repos, err := client.InitStorage(ctx, client.StorageOptions{
		DurableDSN:  c.StorageDSN,
		PostgresDSN: c.PostgresDSN,
		SessionDSN:  c.SessionDSN,
	})
	if err != nil {
		log.Error(ctx, "error initializing storage", "error", err)
		return nil, err
	}

	store := directory.NewStore(repos.Durable, log)
	engine := auth.NewEngine(store, log)
	sessions := session.NewManager(repos.Session, log)

	topts := transfer.Options{
		FS: afero.NewOsFs(),
		S3: transfer.S3Options{
			Region:       c.S3Region,
			BaseEndpoint: c.S3BaseEndpoint,
			AccessKey:    c.S3AccessKey,
			SecretKey:    c.S3SecretKey,
		},
		HTTP: transfer.HTTPOptions{Timeout: c.HTTPTimeout, Retries: 2},
	}
	opener := func(ctx context.Context, uri string) (transfer.Target, error) {
		if uri == "" {
			uri = c.ExportURI
		}
		return transfer.Open(ctx, uri, topts)
	}

	gym := services.NewGym(store, engine, sessions, opener, log)

	a := newApp(c, gym, gym, log)
	a.closer = repos
	return a, nil
}

func newApp(c *config.Config, as services.AuthService, ds services.DevToolsService, log logging.Logger) *App {
	return &App{
		config: c,
		auth:   as,
		dev:    ds,
		log:    log,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
		sched:  newScheduler(log),
		mode:   ModeLogin,
	}
}

// Run loads the directory, shows the dashboard or the login form and then
// serves commands until the user exits.
func (a *App) Run(ctx context.Context) {
	defer a.close(ctx)

	printlnFn("Welcome to ARNOR GYM (type 'help' for commands)")
	a.start(ctx)

	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) start(ctx context.Context) {
	status, err := a.auth.Init(ctx)
	if err != nil {
		a.fail(err, "could not prepare user data")
	}
	if status == directory.LoadRecovered {
		a.info("Stored user data was unreadable, starting with an empty directory")
	}

	if p, ok := a.auth.Profile(ctx); ok {
		a.setSession(p.Session)
		printlnFn(renderDashboard(p))
		return
	}
	a.showForm()
}

func (a *App) close(ctx context.Context) {
	a.sched.stop()
	if a.closer == nil {
		return
	}
	if err := a.closer.Close(); err != nil {
		a.log.Error(ctx, "error closing storage", "error", err)
	}
}

func (a *App) currentMode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mode
}

// setMode switches the auth form and reports whether it changed.
func (a *App) setMode(mode Mode) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.mode == mode {
		return false
	}
	a.mode = mode
	return true
}

func (a *App) setSession(s session.Session) {
	a.mu.Lock()
	a.userName = s.Username
	a.sessionID = s.ID
	a.mu.Unlock()
}

func (a *App) clearSession() {
	a.setSession(session.Session{})
}

// isCurrentSession reports whether id is the session the App shows.
func (a *App) isCurrentSession(id uuid.UUID) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.userName != "" && a.sessionID == id
}

func (a *App) currentUser() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.userName
}

func (a *App) isLoggedIn() bool {
	return a.currentUser() != ""
}

func (a *App) getStatus() string {
	if u := a.currentUser(); u != "" {
		return fmt.Sprintf("(%s)", u)
	}
	return fmt.Sprintf("(%s)", a.currentMode())
}
