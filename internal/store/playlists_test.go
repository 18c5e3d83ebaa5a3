package store

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
)

var songColumns = []string{
	"id", "title", "duration", "audio_url", "cover_image", "genre", "release_date",
	"created_at", "updated_at",
	"artist_id", "artist_name", "artist_bio", "artist_picture", "artist_created_at", "artist_updated_at",
}

var playlistColumns = []string{"id", "name", "description", "cover_image", "user_id", "created_at", "updated_at"}

func TestListPlaylistsByUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta(`(SELECT COUNT(*) FROM playlist_songs ps WHERE ps.playlist_id = p.id) AS song_count`)).
		WithArgs("user-1", 20, 0).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "name", "description", "cover_image", "user_id", "created_at", "updated_at", "song_count",
		}).
			AddRow("pl-1", "Morning Mix", "wake up", nil, "user-1", now, now, 3).
			AddRow("pl-2", "Empty", nil, nil, "user-1", now, now, 0))

	playlists, err := s.ListPlaylistsByUser(context.Background(), "user-1", 20, 0)
	if err != nil {
		t.Fatalf("ListPlaylistsByUser: %v", err)
	}

	if len(playlists) != 2 {
		t.Fatalf("expected 2 playlists, got %d", len(playlists))
	}
	if playlists[0].SongCount != 3 || playlists[1].SongCount != 0 {
		t.Fatalf("unexpected song counts: %d, %d", playlists[0].SongCount, playlists[1].SongCount)
	}
	if playlists[1].Description != nil {
		t.Fatalf("expected nil description, got %q", *playlists[1].Description)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPlaylistByIDWrongOwner(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE id = $1 AND user_id = $2`)).
		WithArgs("pl-1", "intruder").
		WillReturnError(sql.ErrNoRows)

	if _, err := s.PlaylistByID(context.Background(), "pl-1", "intruder"); !errors.Is(err, ErrPlaylistNotFound) {
		t.Fatalf("expected ErrPlaylistNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPlaylistByIDWithSongs(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE id = $1 AND user_id = $2`)).
		WithArgs("pl-1", "user-1").
		WillReturnRows(sqlmock.NewRows(playlistColumns).
			AddRow("pl-1", "Morning Mix", nil, nil, "user-1", now, now))

	mock.ExpectQuery(regexp.QuoteMeta(`FROM playlist_songs ps`)).
		WithArgs("pl-1").
		WillReturnRows(sqlmock.NewRows(songColumns).
			AddRow("song-1", "Shape of You", 233, "https://cdn/audio/1", nil, "Pop", nil,
				now, now, "artist-1", "Ed Sheeran", nil, nil, now, now).
			AddRow("song-2", "Perfect", 263, "https://cdn/audio/2", nil, "Pop", nil,
				now, now, "artist-1", "Ed Sheeran", nil, nil, now, now))

	playlist, err := s.PlaylistByID(context.Background(), "pl-1", "user-1")
	if err != nil {
		t.Fatalf("PlaylistByID: %v", err)
	}

	if len(playlist.Songs) != 2 {
		t.Fatalf("expected 2 songs, got %d", len(playlist.Songs))
	}
	if playlist.Songs[0].Artist.Name != "Ed Sheeran" {
		t.Fatalf("unexpected artist: %q", playlist.Songs[0].Artist.Name)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreatePlaylistDropsUnknownSongs(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)
	now := time.Now().UTC()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO playlists`)).
		WithArgs(sqlmock.AnyArg(), "Mix", nil, nil, "user-1", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta(`WHERE id = ANY($1)`)).
		WithArgs(pq.Array([]string{"song-1", "bogus"})).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("song-1"))
	prep := mock.ExpectPrepare(regexp.QuoteMeta(`INSERT INTO playlist_songs`))
	prep.ExpectExec().
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), "song-1", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE id = $1 AND user_id = $2`)).
		WithArgs(sqlmock.AnyArg(), "user-1").
		WillReturnRows(sqlmock.NewRows(playlistColumns).
			AddRow("pl-1", "Mix", nil, nil, "user-1", now, now))
	mock.ExpectQuery(regexp.QuoteMeta(`FROM playlist_songs ps`)).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(songColumns).
			AddRow("song-1", "Shape of You", 233, "https://cdn/audio/1", nil, "Pop", nil,
				now, now, "artist-1", "Ed Sheeran", nil, nil, now, now))

	playlist, err := s.CreatePlaylist(context.Background(), "user-1", "Mix", nil, nil, []string{"song-1", "bogus"})
	if err != nil {
		t.Fatalf("CreatePlaylist: %v", err)
	}

	if len(playlist.Songs) != 1 || playlist.Songs[0].ID != "song-1" {
		t.Fatalf("unexpected songs: %#v", playlist.Songs)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAddPlaylistSongsSkipsDuplicates(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`WHERE id = $1 AND user_id = $2`)).
		WithArgs("pl-1", "user-1").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("pl-1"))
	mock.ExpectQuery(regexp.QuoteMeta(`WHERE id = ANY($1)`)).
		WithArgs(pq.Array([]string{"song-1", "song-2"})).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("song-1").AddRow("song-2"))
	prep := mock.ExpectPrepare(regexp.QuoteMeta(`ON CONFLICT (playlist_id, song_id) DO NOTHING`))
	prep.ExpectExec().
		WithArgs(sqlmock.AnyArg(), "pl-1", "song-1", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	prep.ExpectExec().
		WithArgs(sqlmock.AnyArg(), "pl-1", "song-2", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(`SET updated_at = $1`)).
		WithArgs(sqlmock.AnyArg(), "pl-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	added, err := s.AddPlaylistSongs(context.Background(), "pl-1", "user-1", []string{"song-1", "song-2"})
	if err != nil {
		t.Fatalf("AddPlaylistSongs: %v", err)
	}
	if added != 1 {
		t.Fatalf("expected 1 song added, got %d", added)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAddPlaylistSongsNotOwned(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`WHERE id = $1 AND user_id = $2`)).
		WithArgs("pl-1", "intruder").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	if _, err := s.AddPlaylistSongs(context.Background(), "pl-1", "intruder", []string{"song-1"}); !errors.Is(err, ErrPlaylistNotFound) {
		t.Fatalf("expected ErrPlaylistNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRemovePlaylistSongsCountsDeletedRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`WHERE id = $1 AND user_id = $2`)).
		WithArgs("pl-1", "user-1").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("pl-1"))
	mock.ExpectExec(regexp.QuoteMeta(`WHERE playlist_id = $1 AND song_id = ANY($2)`)).
		WithArgs("pl-1", pq.Array([]string{"song-1", "song-2", "not-in-playlist"})).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta(`SET updated_at = $1`)).
		WithArgs(sqlmock.AnyArg(), "pl-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	removed, err := s.RemovePlaylistSongs(context.Background(), "pl-1", "user-1", []string{"song-1", "song-2", "not-in-playlist"})
	if err != nil {
		t.Fatalf("RemovePlaylistSongs: %v", err)
	}
	if removed != 2 {
		t.Fatalf("expected 2 songs removed, got %d", removed)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpdatePlaylistNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	name := "Renamed"
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE playlists`)).
		WithArgs("Renamed", nil, nil, sqlmock.AnyArg(), "missing", "user-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if _, err := s.UpdatePlaylist(context.Background(), "missing", "user-1", PlaylistPatch{Name: &name}); !errors.Is(err, ErrPlaylistNotFound) {
		t.Fatalf("expected ErrPlaylistNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDeletePlaylistRemovesMemberships(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM playlist_songs`)).
		WithArgs("pl-1", "user-1").
		WillReturnResult(sqlmock.NewResult(0, 4))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM playlists WHERE id = $1 AND user_id = $2`)).
		WithArgs("pl-1", "user-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := s.DeletePlaylist(context.Background(), "pl-1", "user-1"); err != nil {
		t.Fatalf("DeletePlaylist: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDeletePlaylistNotOwnedRollsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM playlist_songs`)).
		WithArgs("pl-1", "intruder").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM playlists WHERE id = $1 AND user_id = $2`)).
		WithArgs("pl-1", "intruder").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	if err := s.DeletePlaylist(context.Background(), "pl-1", "intruder"); !errors.Is(err, ErrPlaylistNotFound) {
		t.Fatalf("expected ErrPlaylistNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
