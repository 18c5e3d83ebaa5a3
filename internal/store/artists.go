package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"tunestack/internal/models"
)

// ArtistPatch describes a partial artist update. Nil fields are left
// unchanged.
type ArtistPatch struct {
	Name           *string
	Bio            *string
	ProfilePicture *string
}

// CreateArtist persists a new artist.
func (s *Store) CreateArtist(ctx context.Context, name string, bio, profilePicture *string) (*models.Artist, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("artist name is required")
	}

	artist := models.Artist{
		ID:             uuid.New().String(),
		Name:           name,
		Bio:            bio,
		ProfilePicture: profilePicture,
		CreatedAt:      time.Now().UTC(),
	}
	artist.UpdatedAt = artist.CreatedAt

	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO artists (id, name, bio, profile_picture, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)`,
		artist.ID, artist.Name, nullable(bio), nullable(profilePicture), artist.CreatedAt); err != nil {
		return nil, fmt.Errorf("insert artist: %w", err)
	}

	return &artist, nil
}

// ListArtists returns a page of artists in insertion order.
func (s *Store) ListArtists(ctx context.Context, limit, offset int) ([]models.Artist, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, bio, profile_picture, created_at, updated_at
		FROM artists
		ORDER BY created_at ASC, id ASC
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list artists: %w", err)
	}
	defer rows.Close()

	artists := make([]models.Artist, 0)
	for rows.Next() {
		artist, err := scanArtist(rows)
		if err != nil {
			return nil, err
		}
		artists = append(artists, artist)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate artists: %w", err)
	}
	return artists, nil
}

// ArtistByID returns a single artist.
func (s *Store) ArtistByID(ctx context.Context, id string) (*models.Artist, error) {
	var (
		artist       models.Artist
		bio, picture sql.NullString
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, bio, profile_picture, created_at, updated_at
		FROM artists
		WHERE id = $1`, id).
		Scan(&artist.ID, &artist.Name, &bio, &picture, &artist.CreatedAt, &artist.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrArtistNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get artist: %w", err)
	}
	artist.Bio = ptr(bio)
	artist.ProfilePicture = ptr(picture)
	return &artist, nil
}

// UpdateArtist applies a partial update and refreshes updated_at.
func (s *Store) UpdateArtist(ctx context.Context, id string, patch ArtistPatch) (*models.Artist, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE artists
		SET name = COALESCE($1, name),
		    bio = COALESCE($2, bio),
		    profile_picture = COALESCE($3, profile_picture),
		    updated_at = $4
		WHERE id = $5`,
		nullable(patch.Name), nullable(patch.Bio), nullable(patch.ProfilePicture), time.Now().UTC(), id)
	if err != nil {
		return nil, fmt.Errorf("update artist: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return nil, ErrArtistNotFound
	}
	return s.ArtistByID(ctx, id)
}

// DeleteArtist removes an artist.
func (s *Store) DeleteArtist(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM artists WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete artist: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrArtistNotFound
	}
	return nil
}

func scanArtist(rows *sql.Rows) (models.Artist, error) {
	var (
		artist       models.Artist
		bio, picture sql.NullString
	)
	if err := rows.Scan(&artist.ID, &artist.Name, &bio, &picture, &artist.CreatedAt, &artist.UpdatedAt); err != nil {
		return models.Artist{}, fmt.Errorf("scan artist: %w", err)
	}
	artist.Bio = ptr(bio)
	artist.ProfilePicture = ptr(picture)
	return artist, nil
}
