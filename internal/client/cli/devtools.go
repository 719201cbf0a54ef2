package cli

import (
	"context"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dmitrijs2005/arnorgym/internal/client/directory"
	"github.com/dmitrijs2005/arnorgym/internal/timex"
)

// Users prints every account as a table.
func (a *App) Users(ctx context.Context) error {
	d := a.dev.Users(ctx)
	printlnFn(renderUsers(d))
	a.info("%d user(s)", d.Len())
	return nil
}

func renderUsers(d *directory.Directory) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("USERNAME", "EMAIL", "ROLE", "REGISTERED AT")

	for _, name := range d.Usernames() {
		rec, _ := d.Get(name)
		registered := ""
		if !rec.RegisteredAt.IsZero() {
			registered = timex.FormatISO(rec.RegisteredAt.Time)
		}
		t.Row(name, rec.Email, rec.Role, registered)
	}
	return t.String()
}

// Export writes the directory to args[0], or to the configured export
// location when no argument is given.
func (a *App) Export(ctx context.Context, args []string) error {
	uri := ""
	if len(args) > 0 {
		uri = args[0]
	}

	loc, err := a.dev.Export(ctx, uri)
	if err != nil {
		a.log.Error(ctx, "export failed", "uri", uri, "error", err)
		a.fail(err, "export failed, please try again later")
		return err
	}
	a.success("User data exported to %s", loc)
	return nil
}

// Import merges the document at args[0] into the directory.
func (a *App) Import(ctx context.Context, args []string) error {
	if len(args) == 0 {
		printlnFn("Usage: import <file.json | s3://bucket/key.json>")
		return nil
	}

	n, err := a.dev.Import(ctx, args[0])
	if err != nil {
		a.log.Warn(ctx, "import failed", "uri", args[0], "error", err)
		a.fail(err, "import failed")
		return err
	}
	a.success("User data imported (%d record(s))", n)
	return nil
}

// Clear removes every account after an explicit "y" confirmation.
func (a *App) Clear(ctx context.Context) error {
	answer, err := getSimpleText(a.reader, "Clear ALL user data? This cannot be undone. [y/N]", a.out)
	if err != nil {
		return err
	}
	if !strings.EqualFold(answer, "y") && !strings.EqualFold(answer, "yes") {
		a.info("Cancelled")
		return nil
	}

	if err := a.dev.ClearAll(ctx); err != nil {
		a.fail(err, "clear failed")
		return err
	}
	a.success("All user data cleared")
	return nil
}

// AddTest adds (or resets) the test account.
func (a *App) AddTest(ctx context.Context) error {
	if err := a.dev.AddTestUser(ctx); err != nil {
		a.fail(err, "could not add the test user")
		return err
	}
	a.success("Test user added (username: %s, password: %s)", directory.TestUsername, directory.TestPassword)
	return nil
}
