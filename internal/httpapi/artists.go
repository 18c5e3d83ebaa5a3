package httpapi

import (
	"net/http"

	"tunestack/internal/store"
)

type artistRequest struct {
	Name           string  `json:"name"`
	Bio            *string `json:"bio"`
	ProfilePicture *string `json:"profilePicture"`
}

type updateArtistRequest struct {
	Name           *string `json:"name"`
	Bio            *string `json:"bio"`
	ProfilePicture *string `json:"profilePicture"`
}

func (s *Server) handleCreateArtist(w http.ResponseWriter, r *http.Request) {
	var req artistRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "artist name is required"})
		return
	}

	artist, err := s.artists.Create(r.Context(), req.Name, req.Bio, req.ProfilePicture)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, artist)
}

func (s *Server) handleListArtists(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePage(r)
	artists, err := s.artists.List(r.Context(), limit, offset)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, artists)
}

func (s *Server) handleGetArtist(w http.ResponseWriter, r *http.Request) {
	artist, err := s.artists.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, artist)
}

func (s *Server) handleUpdateArtist(w http.ResponseWriter, r *http.Request) {
	var req updateArtistRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	artist, err := s.artists.Update(r.Context(), r.PathValue("id"), store.ArtistPatch{
		Name:           req.Name,
		Bio:            req.Bio,
		ProfilePicture: req.ProfilePicture,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, artist)
}

func (s *Server) handleDeleteArtist(w http.ResponseWriter, r *http.Request) {
	if err := s.artists.Delete(r.Context(), r.PathValue("id")); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleArtistSongs(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePage(r)
	songs, err := s.artists.Songs(r.Context(), r.PathValue("id"), limit, offset)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, songs)
}
