package kv

import "database/sql"

var sqliteQueries = queries{
	get: `SELECT value FROM storage WHERE key = ?`,
	has: `SELECT COUNT(*) FROM storage WHERE key = ?`,
	set: `
		INSERT INTO storage (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`,
	delete: `DELETE FROM storage WHERE key = ?`,
	clear:  `DELETE FROM storage`,
}

// NewSQLiteRepository returns a Repository over a SQLite database that has
// the storage table migrated.
func NewSQLiteRepository(db *sql.DB) Repository {
	return &sqlRepository{db: db, conn: db, q: sqliteQueries}
}
