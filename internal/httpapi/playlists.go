package httpapi

import (
	"net/http"

	"tunestack/internal/store"
)

type playlistRequest struct {
	Name        string   `json:"name"`
	Description *string  `json:"description"`
	CoverImage  *string  `json:"coverImage"`
	SongIDs     []string `json:"songIds"`
}

type updatePlaylistRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	CoverImage  *string `json:"coverImage"`
}

type playlistSongsRequest struct {
	SongIDs []string `json:"songIds"`
}

func (s *Server) handleCreatePlaylist(w http.ResponseWriter, r *http.Request) {
	var req playlistRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "playlist name is required"})
		return
	}

	playlist, err := s.playlists.Create(r.Context(), requestUserID(r), req.Name, req.Description, req.CoverImage, req.SongIDs)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, playlist)
}

func (s *Server) handleListPlaylists(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePage(r)
	playlists, err := s.playlists.List(r.Context(), requestUserID(r), limit, offset)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, playlists)
}

func (s *Server) handleGetPlaylist(w http.ResponseWriter, r *http.Request) {
	playlist, err := s.playlists.Get(r.Context(), r.PathValue("id"), requestUserID(r))
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, playlist)
}

func (s *Server) handleUpdatePlaylist(w http.ResponseWriter, r *http.Request) {
	var req updatePlaylistRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	playlist, err := s.playlists.Update(r.Context(), r.PathValue("id"), requestUserID(r), store.PlaylistPatch{
		Name:        req.Name,
		Description: req.Description,
		CoverImage:  req.CoverImage,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, playlist)
}

func (s *Server) handleDeletePlaylist(w http.ResponseWriter, r *http.Request) {
	if err := s.playlists.Delete(r.Context(), r.PathValue("id"), requestUserID(r)); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAddPlaylistSongs(w http.ResponseWriter, r *http.Request) {
	var req playlistSongsRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if len(req.SongIDs) == 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "songIds must not be empty"})
		return
	}

	added, err := s.playlists.AddSongs(r.Context(), r.PathValue("id"), requestUserID(r), req.SongIDs)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		SongsAdded int `json:"songsAdded"`
	}{SongsAdded: added})
}

func (s *Server) handleRemovePlaylistSongs(w http.ResponseWriter, r *http.Request) {
	var req playlistSongsRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if len(req.SongIDs) == 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "songIds must not be empty"})
		return
	}

	removed, err := s.playlists.RemoveSongs(r.Context(), r.PathValue("id"), requestUserID(r), req.SongIDs)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		SongsRemoved int `json:"songsRemoved"`
	}{SongsRemoved: removed})
}
