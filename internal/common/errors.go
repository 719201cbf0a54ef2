// Package common defines sentinel errors and storage keys shared by the
// client layers. Match errors with errors.Is.
package common

import "errors"

var (
	// ErrStorage reports a durable or session storage read/write failure.
	// The in-memory state stays authoritative for the rest of the run.
	ErrStorage = errors.New("storage error")

	// ErrFormat reports an import document that could not be parsed.
	ErrFormat = errors.New("format error")
)
