// Package cli provides the interactive ARNOR GYM command-line client.
//
// It wires configuration, the two storage scopes, the application services
// and an interactive REPL. The REPL shows an auth form in login or register
// mode until somebody logs in, then a member dashboard.
//
// Key features:
//   - Login / Register with a toggle between the two forms
//   - Password recovery lookup
//   - Dashboard of the logged-in member, Logout
//   - Developer tools: users, export, import, clear, addtest
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
