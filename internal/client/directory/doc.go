// Package directory keeps the user directory of the gym: a mapping of
// usernames to UserRecord values persisted as one JSON document under the
// durable storage key "arnorGymUsers".
//
// The Store loads, seeds and saves that document. Export and Import move it
// in and out of the process; an import replaces whole records
// (last full record wins), it never merges individual fields.
package directory
