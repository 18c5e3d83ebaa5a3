// Package httpapi exposes the REST surface over the application services.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"tunestack/internal/app/home"
	"tunestack/internal/auth"
	"tunestack/internal/models"
	"tunestack/internal/store"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// UserService captures the account operations needed by the HTTP handlers.
type UserService interface {
	Register(ctx context.Context, email, password, name string) (*models.User, string, error)
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	Profile(ctx context.Context, userID string) (*models.User, error)
	UpdateProfile(ctx context.Context, userID string, patch store.UserPatch) (*models.User, error)
}

// ArtistService describes artist catalog workflows.
type ArtistService interface {
	Create(ctx context.Context, name string, bio, profilePicture *string) (*models.Artist, error)
	List(ctx context.Context, limit, offset int) ([]models.Artist, error)
	Get(ctx context.Context, id string) (*models.Artist, error)
	Update(ctx context.Context, id string, patch store.ArtistPatch) (*models.Artist, error)
	Delete(ctx context.Context, id string) error
	Songs(ctx context.Context, artistID string, limit, offset int) ([]models.Song, error)
}

// SongService coordinates track-level operations.
type SongService interface {
	Create(ctx context.Context, title, artistID string, duration int, audioURL string, coverImage, genre *string, releaseDate *time.Time) (*models.Song, error)
	List(ctx context.Context, limit, offset int) ([]models.Song, error)
	Get(ctx context.Context, id string) (*models.Song, error)
	Update(ctx context.Context, id string, patch store.SongPatch) (*models.Song, error)
	Delete(ctx context.Context, id string) error
}

// PlaylistService coordinates playlist operations for the authenticated user.
type PlaylistService interface {
	List(ctx context.Context, userID string, limit, offset int) ([]models.PlaylistSummary, error)
	Get(ctx context.Context, id, userID string) (*models.Playlist, error)
	Create(ctx context.Context, userID, name string, description, coverImage *string, songIDs []string) (*models.Playlist, error)
	Update(ctx context.Context, id, userID string, patch store.PlaylistPatch) (*models.Playlist, error)
	Delete(ctx context.Context, id, userID string) error
	AddSongs(ctx context.Context, playlistID, userID string, songIDs []string) (int, error)
	RemoveSongs(ctx context.Context, playlistID, userID string, songIDs []string) (int, error)
}

// HomeService assembles the home feed.
type HomeService interface {
	Feed(ctx context.Context, userID string) (*home.Feed, error)
}

// TokenVerifier resolves a bearer token to the user id it was issued for.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// Server wires HTTP handlers to the underlying services.
type Server struct {
	users     UserService
	artists   ArtistService
	songs     SongService
	playlists PlaylistService
	home      HomeService
	tokens    TokenVerifier
}

// New configures a Server with the given services.
func New(
	users UserService,
	artists ArtistService,
	songs SongService,
	playlists PlaylistService,
	home HomeService,
	tokens TokenVerifier,
) *Server {
	return &Server{
		users:     users,
		artists:   artists,
		songs:     songs,
		playlists: playlists,
		home:      home,
		tokens:    tokens,
	}
}

// Routes exposes the HTTP handlers. Everything except health and auth sits
// behind bearer-token authentication.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	mux.HandleFunc("POST /api/v1/auth/register", s.handleRegister)
	mux.HandleFunc("POST /api/v1/auth/login", s.handleLogin)

	mux.Handle("GET /api/v1/users/me", s.requireAuth(s.handleProfile))
	mux.Handle("PUT /api/v1/users/me", s.requireAuth(s.handleUpdateProfile))

	mux.Handle("GET /api/v1/home", s.requireAuth(s.handleHome))

	mux.Handle("POST /api/v1/artists", s.requireAuth(s.handleCreateArtist))
	mux.Handle("GET /api/v1/artists", s.requireAuth(s.handleListArtists))
	mux.Handle("GET /api/v1/artists/{id}", s.requireAuth(s.handleGetArtist))
	mux.Handle("PUT /api/v1/artists/{id}", s.requireAuth(s.handleUpdateArtist))
	mux.Handle("DELETE /api/v1/artists/{id}", s.requireAuth(s.handleDeleteArtist))
	mux.Handle("GET /api/v1/artists/{id}/songs", s.requireAuth(s.handleArtistSongs))

	mux.Handle("POST /api/v1/songs", s.requireAuth(s.handleCreateSong))
	mux.Handle("GET /api/v1/songs", s.requireAuth(s.handleListSongs))
	mux.Handle("GET /api/v1/songs/{id}", s.requireAuth(s.handleGetSong))
	mux.Handle("PUT /api/v1/songs/{id}", s.requireAuth(s.handleUpdateSong))
	mux.Handle("DELETE /api/v1/songs/{id}", s.requireAuth(s.handleDeleteSong))

	mux.Handle("POST /api/v1/playlists", s.requireAuth(s.handleCreatePlaylist))
	mux.Handle("GET /api/v1/playlists", s.requireAuth(s.handleListPlaylists))
	mux.Handle("GET /api/v1/playlists/{id}", s.requireAuth(s.handleGetPlaylist))
	mux.Handle("PUT /api/v1/playlists/{id}", s.requireAuth(s.handleUpdatePlaylist))
	mux.Handle("DELETE /api/v1/playlists/{id}", s.requireAuth(s.handleDeletePlaylist))
	mux.Handle("POST /api/v1/playlists/{id}/songs", s.requireAuth(s.handleAddPlaylistSongs))
	mux.Handle("DELETE /api/v1/playlists/{id}/songs", s.requireAuth(s.handleRemovePlaylistSongs))

	return mux
}

type contextKey string

const userIDKey contextKey = "userID"

// requireAuth verifies the bearer token and stashes the user id in the
// request context.
func (s *Server) requireAuth(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := parseBearerToken(r.Header.Get("Authorization"))
		if token == "" {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Message: "missing bearer token"})
			return
		}
		userID, err := s.tokens.Verify(token)
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Message: "invalid or expired token"})
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userIDKey, userID)))
	})
}

func requestUserID(r *http.Request) string {
	userID, _ := r.Context().Value(userIDKey).(string)
	return userID
}

type errorResponse struct {
	Message string `json:"message"`
}

// respondError maps service errors onto HTTP statuses. Unknown errors are
// logged and reported as an opaque 500.
func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrEmailTaken):
		writeJSON(w, http.StatusConflict, errorResponse{Message: err.Error()})
	case errors.Is(err, store.ErrInvalidCredentials), errors.Is(err, auth.ErrInvalidToken):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Message: err.Error()})
	case errors.Is(err, store.ErrUserNotFound),
		errors.Is(err, store.ErrArtistNotFound),
		errors.Is(err, store.ErrSongNotFound),
		errors.Is(err, store.ErrPlaylistNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Message: err.Error()})
	default:
		log.Error().Err(err).Msg("request failed")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Message: "internal server error"})
	}
}

func parseBearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// parsePage reads limit/offset query parameters, clamping them to sane
// bounds.
func parsePage(r *http.Request) (limit, offset int) {
	limit = defaultPageLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			limit = v
		}
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	if raw := r.URL.Query().Get("offset"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			offset = v
		}
	}
	return limit, offset
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "invalid JSON payload"})
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}
