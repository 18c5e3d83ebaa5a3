package artists

import (
	"context"
	"time"

	"tunestack/internal/models"
	"tunestack/internal/store"
)

// Store captures the persistence needs for artist workflows.
type Store interface {
	CreateArtist(ctx context.Context, name string, bio, profilePicture *string) (*models.Artist, error)
	ListArtists(ctx context.Context, limit, offset int) ([]models.Artist, error)
	ArtistByID(ctx context.Context, id string) (*models.Artist, error)
	UpdateArtist(ctx context.Context, id string, patch store.ArtistPatch) (*models.Artist, error)
	DeleteArtist(ctx context.Context, id string) error
	SongsByArtist(ctx context.Context, artistID string, limit, offset int) ([]models.Song, error)
	CreateSong(ctx context.Context, title, artistID string, duration int, audioURL string, coverImage, genre *string, releaseDate *time.Time) (*models.Song, error)
}

// Service coordinates artist catalog operations.
type Service interface {
	Create(ctx context.Context, name string, bio, profilePicture *string) (*models.Artist, error)
	List(ctx context.Context, limit, offset int) ([]models.Artist, error)
	Get(ctx context.Context, id string) (*models.Artist, error)
	Update(ctx context.Context, id string, patch store.ArtistPatch) (*models.Artist, error)
	Delete(ctx context.Context, id string) error
	Songs(ctx context.Context, artistID string, limit, offset int) ([]models.Song, error)
	AddSong(ctx context.Context, title, artistID string, duration int, audioURL string, coverImage, genre *string, releaseDate *time.Time) (*models.Song, error)
}

type service struct {
	store Store
}

// New constructs a Service backed by the provided Store.
func New(store Store) Service {
	return &service{store: store}
}

func (s *service) Create(ctx context.Context, name string, bio, profilePicture *string) (*models.Artist, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.CreateArtist(ctx, name, bio, profilePicture)
}

func (s *service) List(ctx context.Context, limit, offset int) ([]models.Artist, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.ListArtists(ctx, limit, offset)
}

func (s *service) Get(ctx context.Context, id string) (*models.Artist, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.ArtistByID(ctx, id)
}

func (s *service) Update(ctx context.Context, id string, patch store.ArtistPatch) (*models.Artist, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.UpdateArtist(ctx, id, patch)
}

func (s *service) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.store.DeleteArtist(ctx, id)
}

func (s *service) Songs(ctx context.Context, artistID string, limit, offset int) ([]models.Song, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.SongsByArtist(ctx, artistID, limit, offset)
}

func (s *service) AddSong(ctx context.Context, title, artistID string, duration int, audioURL string, coverImage, genre *string, releaseDate *time.Time) (*models.Song, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.CreateSong(ctx, title, artistID, duration, audioURL, coverImage, genre, releaseDate)
}
