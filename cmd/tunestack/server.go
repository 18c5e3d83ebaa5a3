package main

import (
	"net/http"

	"tunestack/internal/app/artists"
	"tunestack/internal/app/home"
	"tunestack/internal/app/playlists"
	"tunestack/internal/app/songs"
	"tunestack/internal/app/users"
	"tunestack/internal/auth"
	"tunestack/internal/http/middleware"
	"tunestack/internal/httpapi"
	"tunestack/internal/store"
)

func newHTTPHandler(cfg Config, dataStore *store.Store) http.Handler {
	tokenSvc := auth.New(cfg.Auth)

	userSvc := users.New(dataStore, tokenSvc)
	artistSvc := artists.New(dataStore)
	songSvc := songs.New(dataStore)
	playlistSvc := playlists.New(dataStore)
	homeSvc := home.New(dataStore)

	handler := httpapi.New(userSvc, artistSvc, songSvc, playlistSvc, homeSvc, tokenSvc).Routes()

	handler = middleware.CORS(cfg.AllowedOrigins)(handler)
	handler = middleware.RequestLogging()(handler)
	handler = middleware.Recovery()(handler)
	return handler
}
