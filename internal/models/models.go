// Package models holds the domain types shared by the store, service and
// HTTP layers.
package models

import "time"

// User is an account holder. The password hash never leaves the store layer.
type User struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	Name           string    `json:"name"`
	ProfilePicture *string   `json:"profilePicture,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// Artist is a catalog artist referenced by songs.
type Artist struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Bio            *string   `json:"bio,omitempty"`
	ProfilePicture *string   `json:"profilePicture,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// Song is a catalog track. Artist is always resolved; a song whose artist
// reference does not resolve is a data-integrity fault, not a "not found".
type Song struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Artist      Artist     `json:"artist"`
	Duration    int        `json:"duration"`
	AudioURL    string     `json:"audioUrl"`
	CoverImage  *string    `json:"coverImage,omitempty"`
	Genre       *string    `json:"genre,omitempty"`
	ReleaseDate *time.Time `json:"releaseDate,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// Playlist is a user-owned, ordered collection of songs. Songs are ordered
// by the time they were added to the playlist.
type Playlist struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	CoverImage  *string   `json:"coverImage,omitempty"`
	UserID      string    `json:"userId"`
	Songs       []Song    `json:"songs"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// PlaylistSummary is the listing shape for a playlist: metadata plus the
// membership count computed at read time.
type PlaylistSummary struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	CoverImage  *string   `json:"coverImage,omitempty"`
	UserID      string    `json:"userId"`
	SongCount   int       `json:"songCount"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
