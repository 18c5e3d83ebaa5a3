package httpapi

import (
	"net/http"
	"time"

	"tunestack/internal/store"
)

// Release dates travel over the wire as epoch milliseconds.
type songRequest struct {
	Title       string  `json:"title"`
	ArtistID    string  `json:"artistId"`
	Duration    int     `json:"duration"`
	AudioURL    string  `json:"audioUrl"`
	CoverImage  *string `json:"coverImage"`
	Genre       *string `json:"genre"`
	ReleaseDate *int64  `json:"releaseDate"`
}

type updateSongRequest struct {
	Title       *string `json:"title"`
	Duration    *int    `json:"duration"`
	AudioURL    *string `json:"audioUrl"`
	CoverImage  *string `json:"coverImage"`
	Genre       *string `json:"genre"`
	ReleaseDate *int64  `json:"releaseDate"`
}

func releaseTime(millis *int64) *time.Time {
	if millis == nil {
		return nil
	}
	t := time.UnixMilli(*millis).UTC()
	return &t
}

func (s *Server) handleCreateSong(w http.ResponseWriter, r *http.Request) {
	var req songRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Title == "" || req.ArtistID == "" || req.AudioURL == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "title, artistId and audioUrl are required"})
		return
	}
	if req.Duration <= 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "duration must be positive"})
		return
	}

	song, err := s.songs.Create(r.Context(), req.Title, req.ArtistID, req.Duration, req.AudioURL,
		req.CoverImage, req.Genre, releaseTime(req.ReleaseDate))
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, song)
}

func (s *Server) handleListSongs(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePage(r)
	songs, err := s.songs.List(r.Context(), limit, offset)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, songs)
}

func (s *Server) handleGetSong(w http.ResponseWriter, r *http.Request) {
	song, err := s.songs.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, song)
}

func (s *Server) handleUpdateSong(w http.ResponseWriter, r *http.Request) {
	var req updateSongRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Duration != nil && *req.Duration <= 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "duration must be positive"})
		return
	}

	song, err := s.songs.Update(r.Context(), r.PathValue("id"), store.SongPatch{
		Title:       req.Title,
		Duration:    req.Duration,
		AudioURL:    req.AudioURL,
		CoverImage:  req.CoverImage,
		Genre:       req.Genre,
		ReleaseDate: releaseTime(req.ReleaseDate),
	})
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, song)
}

func (s *Server) handleDeleteSong(w http.ResponseWriter, r *http.Request) {
	if err := s.songs.Delete(r.Context(), r.PathValue("id")); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
