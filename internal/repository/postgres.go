package repository

import (
	"database/sql"

	_ "github.com/lib/pq"
)

// NewPostgresDB creates and initializes a PostgreSQL database connection
func NewPostgresDB(connStr string) (*DB, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	if err := createPostgresTables(db); err != nil {
		db.Close()
		return nil, err
	}

	return &DB{DB: db, driver: DriverPostgres}, nil
}

func createPostgresTables(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS galleries (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT,
		slug TEXT NOT NULL UNIQUE,
		event_date TIMESTAMPTZ,
		theme TEXT NOT NULL DEFAULT 'dark',
		visibility TEXT NOT NULL DEFAULT 'public',
		secret_token TEXT,
		password_hash TEXT NOT NULL DEFAULT '',
		host_device_id TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_galleries_slug ON galleries(slug);
	CREATE INDEX IF NOT EXISTS idx_galleries_secret_token ON galleries(secret_token);

	CREATE TABLE IF NOT EXISTS media (
		id TEXT PRIMARY KEY,
		gallery_id TEXT NOT NULL REFERENCES galleries(id) ON DELETE CASCADE,
		name TEXT NOT NULL,
		stored_path TEXT NOT NULL DEFAULT '',
		file_hash TEXT NOT NULL DEFAULT '',
		file_size BIGINT NOT NULL DEFAULT 0,
		content_type TEXT NOT NULL DEFAULT '',
		type TEXT NOT NULL,
		note_text TEXT NOT NULL DEFAULT '',
		uploaded_by TEXT NOT NULL,
		uploaded_at TIMESTAMPTZ NOT NULL,
		captured_at TIMESTAMPTZ,
		device_id TEXT NOT NULL,
		tags TEXT NOT NULL DEFAULT '[]',
		thumb_small TEXT,
		thumb_medium TEXT,
		thumb_large TEXT,
		width INTEGER,
		height INTEGER
	);

	CREATE INDEX IF NOT EXISTS idx_media_gallery_uploaded ON media(gallery_id, uploaded_at DESC, id);
	CREATE INDEX IF NOT EXISTS idx_media_hash ON media(gallery_id, file_hash);

	CREATE TABLE IF NOT EXISTS comments (
		id TEXT PRIMARY KEY,
		gallery_id TEXT NOT NULL REFERENCES galleries(id) ON DELETE CASCADE,
		media_id TEXT NOT NULL REFERENCES media(id) ON DELETE CASCADE,
		author TEXT NOT NULL,
		device_id TEXT NOT NULL,
		text TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_comments_media ON comments(media_id, created_at);

	CREATE TABLE IF NOT EXISTS likes (
		gallery_id TEXT NOT NULL REFERENCES galleries(id) ON DELETE CASCADE,
		media_id TEXT NOT NULL REFERENCES media(id) ON DELETE CASCADE,
		device_id TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (media_id, device_id)
	);

	CREATE INDEX IF NOT EXISTS idx_likes_media ON likes(media_id);

	CREATE TABLE IF NOT EXISTS stories (
		id TEXT PRIMARY KEY,
		gallery_id TEXT NOT NULL REFERENCES galleries(id) ON DELETE CASCADE,
		stored_path TEXT NOT NULL,
		type TEXT NOT NULL,
		uploaded_by TEXT NOT NULL,
		device_id TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		expires_at TIMESTAMPTZ NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_stories_gallery ON stories(gallery_id, expires_at);
	CREATE INDEX IF NOT EXISTS idx_stories_expires ON stories(expires_at);

	CREATE TABLE IF NOT EXISTS profiles (
		gallery_id TEXT NOT NULL REFERENCES galleries(id) ON DELETE CASCADE,
		device_id TEXT NOT NULL,
		user_name TEXT NOT NULL,
		display_name TEXT,
		avatar_path TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (gallery_id, device_id)
	);

	CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		gallery_id TEXT NOT NULL REFERENCES galleries(id) ON DELETE CASCADE,
		role TEXT NOT NULL,
		device_id TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		expires_at TIMESTAMPTZ NOT NULL,
		last_activity_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		ip_address TEXT,
		user_agent TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_sessions_gallery ON sessions(gallery_id);
	CREATE INDEX IF NOT EXISTS idx_sessions_expires ON sessions(expires_at);
	`

	_, err := db.Exec(schema)
	return err
}
