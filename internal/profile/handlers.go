package profile

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

func callerID(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get("X-User-Id"))
}

func (s *Server) handleGetMe(w http.ResponseWriter, r *http.Request) {
	userID := callerID(r)
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "missing user context")
		return
	}

	p, err := s.store.GetProfile(r.Context(), userID)
	if errors.Is(err, ErrNotFound) {
		writeError(w, http.StatusNotFound, "profile not found")
		return
	}
	if err != nil {
		log.Printf("party-service: get profile: %v", err)
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}

	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleCreateMe(w http.ResponseWriter, r *http.Request) {
	userID := callerID(r)
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "missing user context")
		return
	}

	var body struct {
		Username string `json:"username"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	body.Username = strings.TrimSpace(body.Username)
	if len(body.Username) < 3 || len(body.Username) > 30 {
		writeError(w, http.StatusBadRequest, "username must be between 3 and 30 characters")
		return
	}

	p, err := s.store.CreateProfile(r.Context(), userID, body.Username)
	if errors.Is(err, ErrUsernameTaken) {
		writeError(w, http.StatusConflict, "username already taken")
		return
	}
	if err != nil {
		log.Printf("party-service: create profile: %v", err)
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}

	writeJSON(w, http.StatusCreated, p)
}

func (s *Server) handlePatchMe(w http.ResponseWriter, r *http.Request) {
	userID := callerID(r)
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "missing user context")
		return
	}

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	p, err := s.store.UpdateProfile(r.Context(), userID, req)
	if errors.Is(err, ErrNotFound) {
		writeError(w, http.StatusNotFound, "profile not found")
		return
	}
	if errors.Is(err, ErrUsernameTaken) {
		writeError(w, http.StatusConflict, "username already taken")
		return
	}
	if err != nil {
		log.Printf("party-service: update profile: %v", err)
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}

	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	targetID := strings.TrimSpace(chi.URLParam(r, "id"))
	if targetID == "" {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	p, err := s.store.GetProfile(r.Context(), targetID)
	if errors.Is(err, ErrNotFound) {
		writeError(w, http.StatusNotFound, "profile not found")
		return
	}
	if err != nil {
		log.Printf("party-service: get profile %s: %v", targetID, err)
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}

	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleSetPreferences(w http.ResponseWriter, r *http.Request) {
	userID := callerID(r)
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "missing user context")
		return
	}

	kind := chi.URLParam(r, "kind")
	if _, ok := prefTables[kind]; !ok {
		writeError(w, http.StatusBadRequest, "unknown preference kind")
		return
	}

	var body struct {
		IDs []string `json:"ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := s.store.SetPreferences(r.Context(), userID, kind, body.IDs); err != nil {
		log.Printf("party-service: set %s preferences: %v", kind, err)
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGetGenreNames(w http.ResponseWriter, r *http.Request) {
	userID := callerID(r)
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "missing user context")
		return
	}

	names, err := s.store.GetGenreNames(r.Context(), userID)
	if err != nil {
		log.Printf("party-service: get genre names: %v", err)
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}

	writeJSON(w, http.StatusOK, names)
}

func (s *Server) handleListGenres(w http.ResponseWriter, r *http.Request) {
	s.writeTaxonomy(w, r, s.store.ListGenres, "genres")
}

func (s *Server) handleListVibes(w http.ResponseWriter, r *http.Request) {
	s.writeTaxonomy(w, r, s.store.ListVibes, "vibes")
}

func (s *Server) handleListSoundscapes(w http.ResponseWriter, r *http.Request) {
	s.writeTaxonomy(w, r, s.store.ListSoundscapes, "soundscapes")
}

func (s *Server) writeTaxonomy(w http.ResponseWriter, r *http.Request, list func(ctx context.Context) ([]TaxonomyItem, error), name string) {
	items, err := list(r.Context())
	if err != nil {
		log.Printf("party-service: list %s: %v", name, err)
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleListArtists(w http.ResponseWriter, r *http.Request) {
	artists, err := s.store.ListArtists(r.Context())
	if err != nil {
		log.Printf("party-service: list artists: %v", err)
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}
	writeJSON(w, http.StatusOK, artists)
}
