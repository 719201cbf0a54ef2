package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/arnorgym/internal/client/config"
	"github.com/dmitrijs2005/arnorgym/internal/client/directory"
	"github.com/dmitrijs2005/arnorgym/internal/client/services"
	"github.com/dmitrijs2005/arnorgym/internal/client/session"
	"github.com/dmitrijs2005/arnorgym/internal/logging"
	"github.com/google/uuid"
)

// captureOutput replaces printlnFn and returns a function yielding the
// printed lines joined together.
func captureOutput(t *testing.T) func() string {
	t.Helper()
	var (
		mu  sync.Mutex
		buf strings.Builder
	)
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		mu.Lock()
		defer mu.Unlock()
		return buf.WriteString(fmt.Sprintln(a...))
	}
	t.Cleanup(func() { printlnFn = orig })
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		return buf.String()
	}
}

// stubTexts feeds getSimpleText and getPassword from one queue of answers.
func stubTexts(t *testing.T, answers ...string) {
	t.Helper()
	origST, origGP := getSimpleText, getPassword
	next := func() (string, error) {
		if len(answers) == 0 {
			return "", io.EOF
		}
		v := answers[0]
		answers = answers[1:]
		return v, nil
	}
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) { return next() }
	getPassword = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) { return next() }
	t.Cleanup(func() {
		getSimpleText = origST
		getPassword = origGP
	})
}

type fakeTimer struct{ stopped bool }

func (f *fakeTimer) Stop() bool {
	f.stopped = true
	return true
}

type task struct {
	delay time.Duration
	fn    func()
	timer *fakeTimer
}

// stubAfterFunc records scheduled tasks instead of starting timers.
func stubAfterFunc(t *testing.T) *[]task {
	t.Helper()
	tasks := &[]task{}
	orig := afterFunc
	afterFunc = func(d time.Duration, f func()) timer {
		ft := &fakeTimer{}
		*tasks = append(*tasks, task{delay: d, fn: f, timer: ft})
		return ft
	}
	t.Cleanup(func() { afterFunc = orig })
	return tasks
}

func testConfig() *config.Config {
	return &config.Config{
		RedirectDelay:   1500 * time.Millisecond,
		ModeSwitchDelay: 2 * time.Second,
	}
}

func newTestApp(as services.AuthService, ds services.DevToolsService) *App {
	a := newApp(testConfig(), as, ds, logging.Discard())
	a.out = io.Discard
	return a
}

type fakeAuth struct {
	initStatus directory.LoadStatus
	initErr    error

	loginUser string
	loginPass string
	loginErr  error

	regArgs []string
	regErr  error

	forgotEmail string
	forgotErr   error

	logoutCalled bool
	logoutErr    error

	profile   services.Profile
	logged    bool
	loginTime time.Time
}

func (f *fakeAuth) Init(context.Context) (directory.LoadStatus, error) {
	return f.initStatus, f.initErr
}

func (f *fakeAuth) Login(_ context.Context, username, password string) (session.Session, error) {
	f.loginUser, f.loginPass = username, password
	if f.loginErr != nil {
		return session.Session{}, f.loginErr
	}
	s := session.Session{ID: uuid.New(), Username: username, LoginTime: f.loginTime}
	f.logged = true
	f.profile = services.Profile{Session: s, Record: directory.UserRecord{Email: username + "@arnorgym.com"}, Known: true}
	return s, nil
}

func (f *fakeAuth) Register(_ context.Context, username, password, confirmPassword, email string) error {
	f.regArgs = []string{username, password, confirmPassword, email}
	return f.regErr
}

func (f *fakeAuth) ForgotPassword(_ context.Context, username string) (string, error) {
	return f.forgotEmail, f.forgotErr
}

func (f *fakeAuth) Logout(context.Context) error {
	f.logoutCalled = true
	if f.logoutErr != nil {
		return f.logoutErr
	}
	f.logged = false
	return nil
}

func (f *fakeAuth) Profile(context.Context) (services.Profile, bool) {
	return f.profile, f.logged
}

type fakeDev struct {
	users *directory.Directory

	exportURI string
	exportLoc string
	exportErr error

	importURI string
	importN   int
	importErr error

	cleared  bool
	clearErr error

	testAdded bool
	addErr    error
}

func (f *fakeDev) Users(context.Context) *directory.Directory {
	if f.users == nil {
		return directory.New()
	}
	return f.users.Clone()
}

func (f *fakeDev) Export(_ context.Context, uri string) (string, error) {
	f.exportURI = uri
	return f.exportLoc, f.exportErr
}

func (f *fakeDev) Import(_ context.Context, uri string) (int, error) {
	f.importURI = uri
	return f.importN, f.importErr
}

func (f *fakeDev) ClearAll(context.Context) error {
	f.cleared = true
	return f.clearErr
}

func (f *fakeDev) AddTestUser(context.Context) error {
	f.testAdded = true
	return f.addErr
}
