package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"tunestack/internal/models"
)

// songSelect joins each song to its artist. The join is a LEFT JOIN on
// purpose: a song whose artist row is gone must surface as an integrity
// fault, not silently vanish from results.
const songSelect = `
	SELECT s.id, s.title, s.duration, s.audio_url, s.cover_image, s.genre, s.release_date,
	       s.created_at, s.updated_at,
	       a.id, a.name, a.bio, a.profile_picture, a.created_at, a.updated_at
	FROM songs s
	LEFT JOIN artists a ON a.id = s.artist_id`

// SongPatch describes a partial song update. Nil fields are left unchanged.
type SongPatch struct {
	Title       *string
	Duration    *int
	AudioURL    *string
	CoverImage  *string
	Genre       *string
	ReleaseDate *time.Time
}

// CreateSong persists a new song. The artist reference must resolve;
// creation fails with ErrArtistNotFound otherwise, so an orphaned song is
// never written.
func (s *Store) CreateSong(ctx context.Context, title, artistID string, duration int, audioURL string, coverImage, genre *string, releaseDate *time.Time) (*models.Song, error) {
	title = strings.TrimSpace(title)
	if title == "" || artistID == "" || audioURL == "" {
		return nil, fmt.Errorf("title, artistId and audioUrl are required")
	}
	if duration <= 0 {
		return nil, fmt.Errorf("duration must be positive")
	}

	artist, err := s.ArtistByID(ctx, artistID)
	if err != nil {
		return nil, err
	}

	song := models.Song{
		ID:          uuid.New().String(),
		Title:       title,
		Artist:      *artist,
		Duration:    duration,
		AudioURL:    audioURL,
		CoverImage:  coverImage,
		Genre:       genre,
		ReleaseDate: releaseDate,
		CreatedAt:   time.Now().UTC(),
	}
	song.UpdatedAt = song.CreatedAt

	var release any
	if releaseDate != nil {
		release = releaseDate.UTC()
	}

	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO songs (id, title, artist_id, duration, audio_url, cover_image, genre, release_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)`,
		song.ID, song.Title, artistID, song.Duration, song.AudioURL,
		nullable(coverImage), nullable(genre), release, song.CreatedAt); err != nil {
		return nil, fmt.Errorf("insert song: %w", err)
	}

	return &song, nil
}

// ListSongs returns a page of songs, most recent first.
func (s *Store) ListSongs(ctx context.Context, limit, offset int) ([]models.Song, error) {
	rows, err := s.db.QueryContext(ctx, songSelect+`
		ORDER BY s.created_at DESC, s.id ASC
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list songs: %w", err)
	}
	defer rows.Close()
	return collectSongs(rows)
}

// SongsByArtist returns a page of the artist's songs.
func (s *Store) SongsByArtist(ctx context.Context, artistID string, limit, offset int) ([]models.Song, error) {
	rows, err := s.db.QueryContext(ctx, songSelect+`
		WHERE s.artist_id = $1
		ORDER BY s.created_at DESC, s.id ASC
		LIMIT $2 OFFSET $3`, artistID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list songs by artist: %w", err)
	}
	defer rows.Close()
	return collectSongs(rows)
}

// SongByID returns a single song with its artist resolved.
func (s *Store) SongByID(ctx context.Context, id string) (*models.Song, error) {
	rows, err := s.db.QueryContext(ctx, songSelect+`
		WHERE s.id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("get song: %w", err)
	}
	defer rows.Close()

	songs, err := collectSongs(rows)
	if err != nil {
		return nil, err
	}
	if len(songs) == 0 {
		return nil, ErrSongNotFound
	}
	return &songs[0], nil
}

// UpdateSong applies a partial update and refreshes updated_at. Release
// dates are stored in UTC.
func (s *Store) UpdateSong(ctx context.Context, id string, patch SongPatch) (*models.Song, error) {
	var release any
	if patch.ReleaseDate != nil {
		release = patch.ReleaseDate.UTC()
	}
	var duration any
	if patch.Duration != nil {
		duration = *patch.Duration
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE songs
		SET title = COALESCE($1, title),
		    duration = COALESCE($2, duration),
		    audio_url = COALESCE($3, audio_url),
		    cover_image = COALESCE($4, cover_image),
		    genre = COALESCE($5, genre),
		    release_date = COALESCE($6, release_date),
		    updated_at = $7
		WHERE id = $8`,
		nullable(patch.Title), duration, nullable(patch.AudioURL),
		nullable(patch.CoverImage), nullable(patch.Genre), release, time.Now().UTC(), id)
	if err != nil {
		return nil, fmt.Errorf("update song: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return nil, ErrSongNotFound
	}
	return s.SongByID(ctx, id)
}

// DeleteSong removes a song.
func (s *Store) DeleteSong(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM songs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete song: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrSongNotFound
	}
	return nil
}

// resolveSongIDs filters ids down to those that exist in the catalog. It
// runs against either the database or an open transaction.
func (s *Store) resolveSongIDs(ctx context.Context, q querier, ids []string) ([]string, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := q.QueryContext(ctx, `
		SELECT id
		FROM songs
		WHERE id = ANY($1)`, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("resolve song ids: %w", err)
	}
	defer rows.Close()

	var valid []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan song id: %w", err)
		}
		valid = append(valid, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate song ids: %w", err)
	}
	return valid, nil
}

func collectSongs(rows *sql.Rows) ([]models.Song, error) {
	songs := make([]models.Song, 0)
	for rows.Next() {
		song, err := scanSong(rows)
		if err != nil {
			return nil, err
		}
		songs = append(songs, song)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate songs: %w", err)
	}
	return songs, nil
}

func scanSong(rows *sql.Rows) (models.Song, error) {
	var (
		song                   models.Song
		coverImage, genre      sql.NullString
		releaseDate            sql.NullTime
		artistID, artistName   sql.NullString
		artistBio, artistPic   sql.NullString
		artistCreat, artistUpd sql.NullTime
	)
	if err := rows.Scan(
		&song.ID, &song.Title, &song.Duration, &song.AudioURL, &coverImage, &genre, &releaseDate,
		&song.CreatedAt, &song.UpdatedAt,
		&artistID, &artistName, &artistBio, &artistPic, &artistCreat, &artistUpd,
	); err != nil {
		return models.Song{}, fmt.Errorf("scan song: %w", err)
	}

	if !artistID.Valid {
		return models.Song{}, fmt.Errorf("song %s references a missing artist: %w", song.ID, ErrIntegrity)
	}

	song.CoverImage = ptr(coverImage)
	song.Genre = ptr(genre)
	if releaseDate.Valid {
		t := releaseDate.Time.UTC()
		song.ReleaseDate = &t
	}
	song.Artist = models.Artist{
		ID:             artistID.String,
		Name:           artistName.String,
		Bio:            ptr(artistBio),
		ProfilePicture: ptr(artistPic),
		CreatedAt:      artistCreat.Time,
		UpdatedAt:      artistUpd.Time,
	}
	return song, nil
}
