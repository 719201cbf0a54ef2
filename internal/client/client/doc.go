// Package client bootstraps local persistence for the ARNOR GYM CLI.
//
// Two storage scopes are opened, mirroring browser Web Storage:
//
//   - durable: a SQLite file (or PostgreSQL when a DSN is configured) that
//     survives restarts and holds the user directory;
//   - session: an in-memory SQLite database by default, living as long as
//     the process, holding the authenticated identity.
//
// Both are migrated with the embedded goose migrations before use and are
// exposed as kv.Repository values.
package client
