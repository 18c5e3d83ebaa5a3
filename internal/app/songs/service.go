package songs

import (
	"context"
	"time"

	"tunestack/internal/models"
	"tunestack/internal/store"
)

// Store captures the persistence needs for song workflows.
type Store interface {
	CreateSong(ctx context.Context, title, artistID string, duration int, audioURL string, coverImage, genre *string, releaseDate *time.Time) (*models.Song, error)
	ListSongs(ctx context.Context, limit, offset int) ([]models.Song, error)
	SongByID(ctx context.Context, id string) (*models.Song, error)
	UpdateSong(ctx context.Context, id string, patch store.SongPatch) (*models.Song, error)
	DeleteSong(ctx context.Context, id string) error
}

// Service coordinates song catalog operations.
type Service interface {
	Create(ctx context.Context, title, artistID string, duration int, audioURL string, coverImage, genre *string, releaseDate *time.Time) (*models.Song, error)
	List(ctx context.Context, limit, offset int) ([]models.Song, error)
	Get(ctx context.Context, id string) (*models.Song, error)
	Update(ctx context.Context, id string, patch store.SongPatch) (*models.Song, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	store Store
}

// New constructs a Service backed by the provided Store.
func New(store Store) Service {
	return &service{store: store}
}

func (s *service) Create(ctx context.Context, title, artistID string, duration int, audioURL string, coverImage, genre *string, releaseDate *time.Time) (*models.Song, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.CreateSong(ctx, title, artistID, duration, audioURL, coverImage, genre, releaseDate)
}

func (s *service) List(ctx context.Context, limit, offset int) ([]models.Song, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.ListSongs(ctx, limit, offset)
}

func (s *service) Get(ctx context.Context, id string) (*models.Song, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.SongByID(ctx, id)
}

func (s *service) Update(ctx context.Context, id string, patch store.SongPatch) (*models.Song, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.UpdateSong(ctx, id, patch)
}

func (s *service) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.store.DeleteSong(ctx, id)
}
