package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"
)

type fakeExec struct {
	loggedIn bool

	calls []string
	args  [][]string
}

func (f *fakeExec) record(name string) error {
	f.calls = append(f.calls, name)
	return nil
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Login(ctx context.Context) error {
	f.loggedIn = true
	return f.record("login")
}
func (f *fakeExec) Register(ctx context.Context) error  { return f.record("register") }
func (f *fakeExec) Submit(ctx context.Context) error    { return f.record("submit") }
func (f *fakeExec) Toggle(ctx context.Context) error    { return f.record("toggle") }
func (f *fakeExec) Forgot(ctx context.Context) error    { return f.record("forgot") }
func (f *fakeExec) Dashboard(ctx context.Context) error { return f.record("dashboard") }
func (f *fakeExec) Logout(ctx context.Context) error {
	f.loggedIn = false
	return f.record("logout")
}
func (f *fakeExec) Users(ctx context.Context) error { return f.record("users") }
func (f *fakeExec) Export(ctx context.Context, args []string) error {
	f.args = append(f.args, args)
	return f.record("export")
}
func (f *fakeExec) Import(ctx context.Context, args []string) error {
	f.args = append(f.args, args)
	return f.record("import")
}
func (f *fakeExec) Clear(ctx context.Context) error   { return f.record("clear") }
func (f *fakeExec) AddTest(ctx context.Context) error { return f.record("addtest") }

func TestRunREPL_LoginFlowAndCommands(t *testing.T) {
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })

	input := strings.NewReader(strings.Join([]string{
		"help",
		"toggle",
		"register",
		"submit",
		"forgot",
		"login",
		"help",
		"whoami",
		"dashboard",
		"users",
		"export out.json",
		"import s3://bucket/users.json",
		"clear",
		"addtest",
		"foobar",
		"logout",
		"exit",
		"login",
	}, "\n"))

	exec := &fakeExec{loggedIn: false}

	runREPL(context.Background(), exec, func() string { return "status" }, bufio.NewReader(input))

	want := []string{"toggle", "register", "submit", "forgot", "login", "dashboard", "dashboard",
		"users", "export", "import", "clear", "addtest", "logout"}
	if strings.Join(exec.calls, ",") != strings.Join(want, ",") {
		t.Fatalf("calls mismatch: got %v, want %v", exec.calls, want)
	}
	if len(exec.args) != 2 || exec.args[0][0] != "out.json" || exec.args[1][0] != "s3://bucket/users.json" {
		t.Fatalf("args mismatch: %v", exec.args)
	}
}

func TestRunREPL_UnknownAndQuit(t *testing.T) {
	var printed []string
	origPrint := printlnFn
	printlnFn = func(a ...any) (int, error) {
		for _, v := range a {
			printed = append(printed, v.(string))
		}
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = origPrint })

	exec := &fakeExec{loggedIn: true}

	runREPL(context.Background(), exec, func() string { return "s" }, bufio.NewReader(strings.NewReader("get\n\nquit\nusers\n")))

	if len(exec.calls) != 0 {
		t.Fatalf("unexpected calls: %v", exec.calls)
	}
	if !strings.Contains(strings.Join(printed, " "), "Unknown command: get") {
		t.Fatalf("unknown command not reported: %v", printed)
	}
}

func TestRunREPL_LastLineWithoutNewline(t *testing.T) {
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewReader(strings.NewReader("users")))

	if len(exec.calls) != 1 || exec.calls[0] != "users" {
		t.Fatalf("calls: %v", exec.calls)
	}
}

func TestRunREPL_StopsWhenContextDone(t *testing.T) {
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	exec := &fakeExec{}
	runREPL(ctx, exec, func() string { return "" }, bufio.NewReader(strings.NewReader("users\n")))

	if len(exec.calls) != 0 {
		t.Fatalf("unexpected calls: %v", exec.calls)
	}
}
