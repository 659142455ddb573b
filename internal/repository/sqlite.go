package repository

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

// NewSQLiteDB creates and initializes a SQLite database
func NewSQLiteDB(dbPath string) (*DB, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, err
	}

	if err := createTables(db); err != nil {
		db.Close()
		return nil, err
	}

	return &DB{DB: db, driver: DriverSQLite}, nil
}

func createTables(db *sql.DB) error {
	schema := `
	-- Galleries table
	CREATE TABLE IF NOT EXISTS galleries (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT,
		slug TEXT NOT NULL UNIQUE,
		event_date DATETIME,
		theme TEXT NOT NULL DEFAULT 'dark',
		visibility TEXT NOT NULL DEFAULT 'public',
		secret_token TEXT,
		password_hash TEXT NOT NULL DEFAULT '',
		host_device_id TEXT NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_galleries_slug ON galleries(slug);
	CREATE INDEX IF NOT EXISTS idx_galleries_secret_token ON galleries(secret_token);

	-- Media table (feed items; tags stored as a JSON document)
	CREATE TABLE IF NOT EXISTS media (
		id TEXT PRIMARY KEY,
		gallery_id TEXT NOT NULL REFERENCES galleries(id) ON DELETE CASCADE,
		name TEXT NOT NULL,
		stored_path TEXT NOT NULL DEFAULT '',
		file_hash TEXT NOT NULL DEFAULT '',
		file_size INTEGER NOT NULL DEFAULT 0,
		content_type TEXT NOT NULL DEFAULT '',
		type TEXT NOT NULL,
		note_text TEXT NOT NULL DEFAULT '',
		uploaded_by TEXT NOT NULL,
		uploaded_at DATETIME NOT NULL,
		captured_at DATETIME,
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

	-- Comments table
	CREATE TABLE IF NOT EXISTS comments (
		id TEXT PRIMARY KEY,
		gallery_id TEXT NOT NULL REFERENCES galleries(id) ON DELETE CASCADE,
		media_id TEXT NOT NULL REFERENCES media(id) ON DELETE CASCADE,
		author TEXT NOT NULL,
		device_id TEXT NOT NULL,
		text TEXT NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_comments_media ON comments(media_id, created_at);

	-- Likes table (one like per device per item)
	CREATE TABLE IF NOT EXISTS likes (
		gallery_id TEXT NOT NULL REFERENCES galleries(id) ON DELETE CASCADE,
		media_id TEXT NOT NULL REFERENCES media(id) ON DELETE CASCADE,
		device_id TEXT NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (media_id, device_id)
	);

	CREATE INDEX IF NOT EXISTS idx_likes_media ON likes(media_id);

	-- Stories table (24h ephemeral media)
	CREATE TABLE IF NOT EXISTS stories (
		id TEXT PRIMARY KEY,
		gallery_id TEXT NOT NULL REFERENCES galleries(id) ON DELETE CASCADE,
		stored_path TEXT NOT NULL,
		type TEXT NOT NULL,
		uploaded_by TEXT NOT NULL,
		device_id TEXT NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		expires_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_stories_gallery ON stories(gallery_id, expires_at);
	CREATE INDEX IF NOT EXISTS idx_stories_expires ON stories(expires_at);

	-- Profiles table (per-gallery participants keyed by device)
	CREATE TABLE IF NOT EXISTS profiles (
		gallery_id TEXT NOT NULL REFERENCES galleries(id) ON DELETE CASCADE,
		device_id TEXT NOT NULL,
		user_name TEXT NOT NULL,
		display_name TEXT,
		avatar_path TEXT,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (gallery_id, device_id)
	);

	-- Sessions table (host/guest gallery sessions)
	CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		gallery_id TEXT NOT NULL REFERENCES galleries(id) ON DELETE CASCADE,
		role TEXT NOT NULL,
		device_id TEXT NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		expires_at DATETIME NOT NULL,
		last_activity_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		ip_address TEXT,
		user_agent TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_sessions_gallery ON sessions(gallery_id);
	CREATE INDEX IF NOT EXISTS idx_sessions_expires ON sessions(expires_at);
	`

	_, err := db.Exec(schema)
	return err
}
