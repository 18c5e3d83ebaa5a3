package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"tunestack/internal/models"
)

// PlaylistPatch describes a partial playlist update. Nil fields are left
// unchanged.
type PlaylistPatch struct {
	Name        *string
	Description *string
	CoverImage  *string
}

// playlistTxOptions is used for every playlist mutation so that membership
// writes and the playlist row are always observed together. Repeatable read
// keeps a concurrent add from surviving a delete.
var playlistTxOptions = &sql.TxOptions{Isolation: sql.LevelRepeatableRead}

// ListPlaylistsByUser returns the caller's playlists with membership counts
// computed at read time, in insertion order.
func (s *Store) ListPlaylistsByUser(ctx context.Context, userID string, limit, offset int) ([]models.PlaylistSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT p.id, p.name, p.description, p.cover_image, p.user_id, p.created_at, p.updated_at,
		       (SELECT COUNT(*) FROM playlist_songs ps WHERE ps.playlist_id = p.id) AS song_count
		FROM playlists p
		WHERE p.user_id = $1
		ORDER BY p.created_at ASC, p.id ASC
		LIMIT $2 OFFSET $3`, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list playlists: %w", err)
	}
	defer rows.Close()

	playlists := make([]models.PlaylistSummary, 0)
	for rows.Next() {
		var (
			summary            models.PlaylistSummary
			description, cover sql.NullString
		)
		if err := rows.Scan(&summary.ID, &summary.Name, &description, &cover, &summary.UserID,
			&summary.CreatedAt, &summary.UpdatedAt, &summary.SongCount); err != nil {
			return nil, fmt.Errorf("scan playlist: %w", err)
		}
		summary.Description = ptr(description)
		summary.CoverImage = ptr(cover)
		playlists = append(playlists, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate playlists: %w", err)
	}
	return playlists, nil
}

// PlaylistByID returns a playlist with its songs, scoped to the owner. A
// playlist owned by someone else is reported as not found.
func (s *Store) PlaylistByID(ctx context.Context, id, userID string) (*models.Playlist, error) {
	var (
		playlist           models.Playlist
		description, cover sql.NullString
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, description, cover_image, user_id, created_at, updated_at
		FROM playlists
		WHERE id = $1 AND user_id = $2`, id, userID).
		Scan(&playlist.ID, &playlist.Name, &description, &cover, &playlist.UserID,
			&playlist.CreatedAt, &playlist.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPlaylistNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get playlist: %w", err)
	}
	playlist.Description = ptr(description)
	playlist.CoverImage = ptr(cover)

	songs, err := s.listPlaylistSongs(ctx, playlist.ID)
	if err != nil {
		return nil, err
	}
	playlist.Songs = songs
	return &playlist, nil
}

// CreatePlaylist persists a new playlist for the user. Song ids that do not
// resolve to catalog songs are silently dropped.
func (s *Store) CreatePlaylist(ctx context.Context, userID, name string, description, coverImage *string, songIDs []string) (*models.Playlist, error) {
	if name == "" {
		return nil, fmt.Errorf("playlist name is required")
	}

	tx, err := s.db.BeginTx(ctx, playlistTxOptions)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if tx != nil {
			_ = tx.Rollback()
		}
	}()

	id := uuid.New().String()
	now := time.Now().UTC()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO playlists (id, name, description, cover_image, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)`,
		id, name, nullable(description), nullable(coverImage), userID, now); err != nil {
		return nil, fmt.Errorf("insert playlist: %w", err)
	}

	validIDs, err := s.resolveSongIDs(ctx, tx, songIDs)
	if err != nil {
		return nil, err
	}
	if _, err := insertMemberships(ctx, tx, id, validIDs, now); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit playlist create: %w", err)
	}
	tx = nil

	return s.PlaylistByID(ctx, id, userID)
}

// UpdatePlaylist applies a partial metadata update, refreshing updated_at.
// The dual not-found condition applies: a playlist owned by another user is
// indistinguishable from a missing one.
func (s *Store) UpdatePlaylist(ctx context.Context, id, userID string, patch PlaylistPatch) (*models.Playlist, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE playlists
		SET name = COALESCE($1, name),
		    description = COALESCE($2, description),
		    cover_image = COALESCE($3, cover_image),
		    updated_at = $4
		WHERE id = $5 AND user_id = $6`,
		nullable(patch.Name), nullable(patch.Description), nullable(patch.CoverImage),
		time.Now().UTC(), id, userID)
	if err != nil {
		return nil, fmt.Errorf("update playlist: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return nil, ErrPlaylistNotFound
	}
	return s.PlaylistByID(ctx, id, userID)
}

// DeletePlaylist removes a playlist and all of its membership rows in one
// transaction, so memberships never outlive their playlist.
func (s *Store) DeletePlaylist(ctx context.Context, id, userID string) error {
	tx, err := s.db.BeginTx(ctx, playlistTxOptions)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if tx != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err := tx.ExecContext(ctx, `
		DELETE FROM playlist_songs
		WHERE playlist_id IN (SELECT id FROM playlists WHERE id = $1 AND user_id = $2)`,
		id, userID); err != nil {
		return fmt.Errorf("delete playlist songs: %w", err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM playlists WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("delete playlist: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrPlaylistNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit playlist delete: %w", err)
	}
	tx = nil
	return nil
}

// AddPlaylistSongs adds songs to a playlist, skipping songs already present
// and song ids that do not resolve. It returns the number of rows actually
// inserted and refreshes updated_at whenever the playlist exists.
func (s *Store) AddPlaylistSongs(ctx context.Context, playlistID, userID string, songIDs []string) (int, error) {
	tx, err := s.db.BeginTx(ctx, playlistTxOptions)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if tx != nil {
			_ = tx.Rollback()
		}
	}()

	if err := ownedPlaylistExists(ctx, tx, playlistID, userID); err != nil {
		return 0, err
	}

	validIDs, err := s.resolveSongIDs(ctx, tx, songIDs)
	if err != nil {
		return 0, err
	}

	now := time.Now().UTC()
	added, err := insertMemberships(ctx, tx, playlistID, validIDs, now)
	if err != nil {
		return 0, err
	}

	if err := touchPlaylist(ctx, tx, playlistID, now); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit add songs: %w", err)
	}
	tx = nil
	return added, nil
}

// RemovePlaylistSongs deletes the matching membership rows. Removing a song
// that is not in the playlist is a no-op; the count of rows actually removed
// is returned.
func (s *Store) RemovePlaylistSongs(ctx context.Context, playlistID, userID string, songIDs []string) (int, error) {
	tx, err := s.db.BeginTx(ctx, playlistTxOptions)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if tx != nil {
			_ = tx.Rollback()
		}
	}()

	if err := ownedPlaylistExists(ctx, tx, playlistID, userID); err != nil {
		return 0, err
	}

	res, err := tx.ExecContext(ctx, `
		DELETE FROM playlist_songs
		WHERE playlist_id = $1 AND song_id = ANY($2)`, playlistID, pq.Array(songIDs))
	if err != nil {
		return 0, fmt.Errorf("delete playlist songs: %w", err)
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}

	if err := touchPlaylist(ctx, tx, playlistID, time.Now().UTC()); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit remove songs: %w", err)
	}
	tx = nil
	return int(removed), nil
}

// listPlaylistSongs returns the playlist's songs ordered by the time they
// were added.
func (s *Store) listPlaylistSongs(ctx context.Context, playlistID string) ([]models.Song, error) {
	rows, err := s.db.QueryContext(ctx, `
	SELECT s.id, s.title, s.duration, s.audio_url, s.cover_image, s.genre, s.release_date,
	       s.created_at, s.updated_at,
	       a.id, a.name, a.bio, a.profile_picture, a.created_at, a.updated_at
	FROM playlist_songs ps
	JOIN songs s ON s.id = ps.song_id
	LEFT JOIN artists a ON a.id = s.artist_id
	WHERE ps.playlist_id = $1
	ORDER BY ps.added_at ASC, ps.id ASC`, playlistID)
	if err != nil {
		return nil, fmt.Errorf("list playlist songs: %w", err)
	}
	defer rows.Close()
	return collectSongs(rows)
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// ownedPlaylistExists maps both "missing" and "not yours" onto
// ErrPlaylistNotFound in a single query.
func ownedPlaylistExists(ctx context.Context, tx *sql.Tx, playlistID, userID string) error {
	var id string
	err := tx.QueryRowContext(ctx, `
		SELECT id
		FROM playlists
		WHERE id = $1 AND user_id = $2`, playlistID, userID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrPlaylistNotFound
	}
	if err != nil {
		return fmt.Errorf("check playlist ownership: %w", err)
	}
	return nil
}

// insertMemberships inserts one membership row per song id, relying on the
// (playlist_id, song_id) unique constraint to skip songs already present.
// Returns the number of rows actually inserted.
func insertMemberships(ctx context.Context, tx *sql.Tx, playlistID string, songIDs []string, addedAt time.Time) (int, error) {
	if len(songIDs) == 0 {
		return 0, nil
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO playlist_songs (id, playlist_id, song_id, added_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (playlist_id, song_id) DO NOTHING`)
	if err != nil {
		return 0, fmt.Errorf("prepare insert playlist song: %w", err)
	}
	defer stmt.Close()

	added := 0
	for _, songID := range songIDs {
		res, err := stmt.ExecContext(ctx, uuid.New().String(), playlistID, songID, addedAt)
		if err != nil {
			return 0, fmt.Errorf("insert playlist song: %w", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("rows affected: %w", err)
		}
		added += int(affected)
	}
	return added, nil
}

func touchPlaylist(ctx context.Context, e execer, playlistID string, now time.Time) error {
	if _, err := e.ExecContext(ctx, `
		UPDATE playlists
		SET updated_at = $1
		WHERE id = $2`, now, playlistID); err != nil {
		return fmt.Errorf("touch playlist: %w", err)
	}
	return nil
}
