package main

import (
	"context"
	"database/sql"
	"fmt"
)

// schemaStatements create the tables on startup if they are missing. The
// unique constraint on (playlist_id, song_id) backs the idempotent add.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id VARCHAR(36) PRIMARY KEY,
		email VARCHAR(255) NOT NULL UNIQUE,
		password_hash VARCHAR(255) NOT NULL,
		name VARCHAR(255) NOT NULL,
		profile_picture TEXT,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS artists (
		id VARCHAR(36) PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		bio TEXT,
		profile_picture TEXT,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS songs (
		id VARCHAR(36) PRIMARY KEY,
		title VARCHAR(255) NOT NULL,
		artist_id VARCHAR(36) NOT NULL REFERENCES artists(id),
		duration INTEGER NOT NULL,
		audio_url TEXT NOT NULL,
		cover_image TEXT,
		genre VARCHAR(100),
		release_date TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS playlists (
		id VARCHAR(36) PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		description TEXT,
		cover_image TEXT,
		user_id VARCHAR(36) NOT NULL REFERENCES users(id),
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS playlist_songs (
		id VARCHAR(36) PRIMARY KEY,
		playlist_id VARCHAR(36) NOT NULL REFERENCES playlists(id),
		song_id VARCHAR(36) NOT NULL REFERENCES songs(id),
		added_at TIMESTAMPTZ NOT NULL,
		UNIQUE (playlist_id, song_id)
	)`,
}

func ensureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}
