package home

import (
	"context"

	"tunestack/internal/models"
)

// recommendationPageSize bounds both sections of the home feed.
const recommendationPageSize = 10

// Store captures the catalog reads behind the home feed.
type Store interface {
	ListSongs(ctx context.Context, limit, offset int) ([]models.Song, error)
	ListArtists(ctx context.Context, limit, offset int) ([]models.Artist, error)
}

// Feed is the home screen payload: recently added songs plus a slice of the
// artist catalog. There is no per-user personalization yet.
type Feed struct {
	RecentSongs []models.Song   `json:"recentSongs"`
	Artists     []models.Artist `json:"artists"`
}

// Service assembles the home feed.
type Service interface {
	Feed(ctx context.Context, userID string) (*Feed, error)
}

type service struct {
	store Store
}

// New constructs a Service backed by the provided Store.
func New(store Store) Service {
	return &service{store: store}
}

func (s *service) Feed(ctx context.Context, userID string) (*Feed, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	songs, err := s.store.ListSongs(ctx, recommendationPageSize, 0)
	if err != nil {
		return nil, err
	}
	artists, err := s.store.ListArtists(ctx, recommendationPageSize, 0)
	if err != nil {
		return nil, err
	}
	return &Feed{RecentSongs: songs, Artists: artists}, nil
}
