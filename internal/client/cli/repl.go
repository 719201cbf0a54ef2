package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Register(ctx context.Context) error
	Submit(ctx context.Context) error
	Toggle(ctx context.Context) error
	Forgot(ctx context.Context) error
	Dashboard(ctx context.Context) error
	Logout(ctx context.Context) error
	Users(ctx context.Context) error
	Export(ctx context.Context, args []string) error
	Import(ctx context.Context, args []string) error
	Clear(ctx context.Context) error
	AddTest(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the ARNOR GYM CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. Unknown commands are reported back to the
// user. The loop exits on EOF, when ctx is done, or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Auth form:
//	  - help           show available commands
//	  - login          fill in and submit the login form
//	  - register       fill in and submit the registration form
//	  - submit         submit the form currently shown
//	  - toggle         switch between the login and registration forms
//	  - forgot         look up the email of an account
//
//	Logged in:
//	  - whoami | dashboard   show the member dashboard
//	  - logout               log out
//
//	Always:
//	  - users          list every account
//	  - export [uri]   export accounts to a .json file or s3://bucket/key
//	  - import <uri>   import accounts from a .json file or s3://bucket/key
//	  - clear          remove every account (asks for confirmation)
//	  - addtest        add the test account
//	  - exit | quit    leave the program
//
// Errors returned by command handlers are ignored here; handlers report
// them to the user themselves. This keeps the REPL loop resilient.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("arnor %s > ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		eof := err != nil

		parts := strings.Fields(line)
		if len(parts) == 0 {
			if eof {
				return
			}
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: whoami, dashboard, logout, users, export, import, clear, addtest, exit")
			} else {
				printlnFn("Available commands: login, register, submit, toggle, forgot, users, export, import, clear, addtest, exit")
			}

		case "login":
			_ = a.Login(ctx)

		case "register":
			_ = a.Register(ctx)

		case "submit":
			_ = a.Submit(ctx)

		case "toggle":
			_ = a.Toggle(ctx)

		case "forgot":
			_ = a.Forgot(ctx)

		case "whoami", "dashboard":
			_ = a.Dashboard(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "users":
			_ = a.Users(ctx)

		case "export":
			_ = a.Export(ctx, args)

		case "import":
			_ = a.Import(ctx, args)

		case "clear":
			_ = a.Clear(ctx)

		case "addtest":
			_ = a.AddTest(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if eof {
			return
		}
	}
}
