package profile

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type Server struct {
	store Store
}

func NewServer(store Store) *Server {
	return &Server{store: store}
}

func (s *Server) Router(middlewares ...func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	for _, mw := range middlewares {
		r.Use(mw)
	}

	r.Get("/profiles/me", s.handleGetMe)
	r.Post("/profiles/me", s.handleCreateMe)
	r.Patch("/profiles/me", s.handlePatchMe)
	r.Get("/profiles/{id}", s.handleGetProfile)

	r.Put("/profiles/me/preferences/{kind}", s.handleSetPreferences)
	r.Get("/profiles/me/genres", s.handleGetGenreNames)

	r.Get("/taxonomy/genres", s.handleListGenres)
	r.Get("/taxonomy/vibes", s.handleListVibes)
	r.Get("/taxonomy/soundscapes", s.handleListSoundscapes)
	r.Get("/taxonomy/artists", s.handleListArtists)

	return r
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error": msg,
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
