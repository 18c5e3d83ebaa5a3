package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"tunestack/internal/store"
)

// seedCatalog loads a starter catalog so a fresh instance has something to
// browse. It is a no-op once any artist exists.
func seedCatalog(ctx context.Context, db *sql.DB, dataStore *store.Store) error {
	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM artists`).Scan(&count); err != nil {
		return fmt.Errorf("count artists: %w", err)
	}
	if count > 0 {
		return nil
	}

	type seedSong struct {
		Title    string
		Duration int
		Genre    string
		Released time.Time
	}
	type seedArtist struct {
		Name  string
		Bio   string
		Songs []seedSong
	}

	seeds := []seedArtist{
		{
			Name: "Ed Sheeran",
			Bio:  "English singer-songwriter.",
			Songs: []seedSong{
				{Title: "Shape of You", Duration: 233, Genre: "Pop", Released: date(2017, 1, 6)},
				{Title: "Perfect", Duration: 263, Genre: "Pop", Released: date(2017, 3, 3)},
			},
		},
		{
			Name: "Taylor Swift",
			Bio:  "American singer-songwriter.",
			Songs: []seedSong{
				{Title: "Blank Space", Duration: 231, Genre: "Pop", Released: date(2014, 11, 10)},
				{Title: "Anti-Hero", Duration: 200, Genre: "Pop", Released: date(2022, 10, 21)},
			},
		},
		{
			Name: "Arijit Singh",
			Bio:  "Indian playback singer.",
			Songs: []seedSong{
				{Title: "Tum Hi Ho", Duration: 262, Genre: "Bollywood", Released: date(2013, 4, 4)},
				{Title: "Channa Mereya", Duration: 289, Genre: "Bollywood", Released: date(2016, 10, 7)},
			},
		},
		{
			Name: "Ariana Grande",
			Bio:  "American singer and actress.",
			Songs: []seedSong{
				{Title: "7 rings", Duration: 178, Genre: "Pop", Released: date(2019, 1, 18)},
			},
		},
		{
			Name: "Atif Aslam",
			Bio:  "Pakistani playback singer.",
			Songs: []seedSong{
				{Title: "Tera Hone Laga Hoon", Duration: 297, Genre: "Bollywood", Released: date(2009, 10, 16)},
			},
		},
	}

	for _, sa := range seeds {
		bio := sa.Bio
		artist, err := dataStore.CreateArtist(ctx, sa.Name, &bio, nil)
		if err != nil {
			return fmt.Errorf("seed artist %q: %w", sa.Name, err)
		}
		for _, ss := range sa.Songs {
			released := ss.Released
			genre := ss.Genre
			audioURL := fmt.Sprintf("https://cdn.tunestack.dev/audio/%s", ss.Title)
			if _, err := dataStore.CreateSong(ctx, ss.Title, artist.ID, ss.Duration, audioURL, nil, &genre, &released); err != nil {
				return fmt.Errorf("seed song %q: %w", ss.Title, err)
			}
		}
	}

	log.Info().Int("artists", len(seeds)).Msg("seeded starter catalog")
	return nil
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
