package party

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type Server struct {
	store Store
	bc    *Broadcaster
}

func NewServer(store Store, bc *Broadcaster) *Server {
	return &Server{
		store: store,
		bc:    bc,
	}
}

// Router wires the party API. The supplied middlewares (normally the JWT
// auth layer resolving X-User-Id) guard everything except /health and the
// websocket feed, which browsers cannot attach headers to.
func (s *Server) Router(middlewares ...func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/health", s.handleHealth)
	r.Get("/parties/{id}/ws", s.handlePartyWS)

	r.Group(func(r chi.Router) {
		for _, mw := range middlewares {
			r.Use(mw)
		}

		r.Post("/parties", s.handleCreateParty)
		r.Get("/parties/{id}", s.handleGetParty)
		r.Patch("/parties/{id}/status", s.handleSetStatus)
		r.Put("/parties/{id}/track", s.handleSetCurrentTrack)

		r.Get("/parties/{id}/queue", s.handleListQueue)
		r.Post("/parties/{id}/queue", s.handleEnqueue)
		r.Delete("/parties/{id}/queue/{entryId}", s.handleRemoveQueueEntry)
		r.Post("/parties/{id}/queue/{entryId}/vote", s.handleVoteQueueEntry)

		r.Get("/parties/{id}/participants", s.handleListParticipants)
		r.Post("/parties/{id}/participants", s.handleJoin)
		r.Delete("/parties/{id}/participants/me", s.handleLeave)
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"service": "party-service",
	})
}
