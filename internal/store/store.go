// Package store provides persistence for the music catalog backed by
// Postgres. Every owner-scoped operation is parameterized by both the entity
// id and the owner id in a single query, so "not found" and "not yours" are
// indistinguishable to callers.
package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrEmailTaken signals the email address is already registered.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials indicates a login failure.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrUserNotFound indicates the user does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrArtistNotFound indicates the artist does not exist.
	ErrArtistNotFound = errors.New("artist not found")
	// ErrSongNotFound indicates the song does not exist.
	ErrSongNotFound = errors.New("song not found")
	// ErrPlaylistNotFound indicates the playlist does not exist or is owned
	// by a different user.
	ErrPlaylistNotFound = errors.New("playlist not found")
	// ErrIntegrity indicates a referenced entity is unexpectedly missing,
	// e.g. a song whose artist row is gone. Not user-recoverable.
	ErrIntegrity = errors.New("data integrity fault")

	dummyPasswordHash = []byte("$2a$10$CwTycUXWue0Thq9StjUM0uJ8n4VWeNseyX2fA9DE.D7su7J6iYGTC")
)

// Store provides persistence backed by Postgres.
type Store struct {
	db *sql.DB
}

// New sets up a Store using the provided database handle.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// querier is satisfied by both *sql.DB and *sql.Tx, so read helpers can run
// inside or outside a transaction.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

func nullable(value *string) any {
	if value == nil {
		return nil
	}
	return *value
}

func ptr(value sql.NullString) *string {
	if !value.Valid {
		return nil
	}
	return &value.String
}
