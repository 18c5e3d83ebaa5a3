package httpapi

import (
	"net/http"

	"tunestack/internal/store"
)

type updateProfileRequest struct {
	Name           *string `json:"name"`
	ProfilePicture *string `json:"profilePicture"`
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	user, err := s.users.Profile(r.Context(), requestUserID(r))
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req updateProfileRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := s.users.UpdateProfile(r.Context(), requestUserID(r), store.UserPatch{
		Name:           req.Name,
		ProfilePicture: req.ProfilePicture,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	feed, err := s.home.Feed(r.Context(), requestUserID(r))
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, feed)
}
