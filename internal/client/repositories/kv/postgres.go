package kv

import "database/sql"

var postgresQueries = queries{
	get: `SELECT value FROM storage WHERE key = $1`,
	has: `SELECT COUNT(*) FROM storage WHERE key = $1`,
	set: `
		INSERT INTO storage (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()
	`,
	delete: `DELETE FROM storage WHERE key = $1`,
	clear:  `DELETE FROM storage`,
}

// NewPostgresRepository returns a Repository over a PostgreSQL database
// opened through the pgx stdlib driver.
func NewPostgresRepository(db *sql.DB) Repository {
	return &sqlRepository{db: db, conn: db, q: postgresQueries}
}
