package playlists

import (
	"context"

	"tunestack/internal/models"
	"tunestack/internal/store"
)

// Store captures the persistence needs for playlist workflows. Every
// operation is scoped to the owning user.
type Store interface {
	ListPlaylistsByUser(ctx context.Context, userID string, limit, offset int) ([]models.PlaylistSummary, error)
	PlaylistByID(ctx context.Context, id, userID string) (*models.Playlist, error)
	CreatePlaylist(ctx context.Context, userID, name string, description, coverImage *string, songIDs []string) (*models.Playlist, error)
	UpdatePlaylist(ctx context.Context, id, userID string, patch store.PlaylistPatch) (*models.Playlist, error)
	DeletePlaylist(ctx context.Context, id, userID string) error
	AddPlaylistSongs(ctx context.Context, playlistID, userID string, songIDs []string) (int, error)
	RemovePlaylistSongs(ctx context.Context, playlistID, userID string, songIDs []string) (int, error)
}

// Service coordinates playlist operations for the authenticated user.
type Service interface {
	List(ctx context.Context, userID string, limit, offset int) ([]models.PlaylistSummary, error)
	Get(ctx context.Context, id, userID string) (*models.Playlist, error)
	Create(ctx context.Context, userID, name string, description, coverImage *string, songIDs []string) (*models.Playlist, error)
	Update(ctx context.Context, id, userID string, patch store.PlaylistPatch) (*models.Playlist, error)
	Delete(ctx context.Context, id, userID string) error
	AddSongs(ctx context.Context, playlistID, userID string, songIDs []string) (int, error)
	RemoveSongs(ctx context.Context, playlistID, userID string, songIDs []string) (int, error)
}

type service struct {
	store Store
}

// New constructs a Service backed by the provided Store.
func New(store Store) Service {
	return &service{store: store}
}

func (s *service) List(ctx context.Context, userID string, limit, offset int) ([]models.PlaylistSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.ListPlaylistsByUser(ctx, userID, limit, offset)
}

func (s *service) Get(ctx context.Context, id, userID string) (*models.Playlist, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.PlaylistByID(ctx, id, userID)
}

func (s *service) Create(ctx context.Context, userID, name string, description, coverImage *string, songIDs []string) (*models.Playlist, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.CreatePlaylist(ctx, userID, name, description, coverImage, songIDs)
}

func (s *service) Update(ctx context.Context, id, userID string, patch store.PlaylistPatch) (*models.Playlist, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.UpdatePlaylist(ctx, id, userID, patch)
}

func (s *service) Delete(ctx context.Context, id, userID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.store.DeletePlaylist(ctx, id, userID)
}

func (s *service) AddSongs(ctx context.Context, playlistID, userID string, songIDs []string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return s.store.AddPlaylistSongs(ctx, playlistID, userID, songIDs)
}

func (s *service) RemoveSongs(ctx context.Context, playlistID, userID string, songIDs []string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return s.store.RemovePlaylistSongs(ctx, playlistID, userID, songIDs)
}
