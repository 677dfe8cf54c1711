package party

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func callerID(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get("X-User-Id"))
}

func partyIDParam(r *http.Request) (string, bool) {
	raw := chi.URLParam(r, "id")
	if _, err := uuid.Parse(raw); err != nil {
		return "", false
	}
	return raw, true
}

func (s *Server) handleCreateParty(w http.ResponseWriter, r *http.Request) {
	userID := callerID(r)
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "missing user context")
		return
	}

	p, err := s.store.CreateParty(r.Context(), userID)
	if err != nil {
		writeStoreError(w, err, "create party")
		return
	}

	writeJSON(w, http.StatusCreated, p)
}

func (s *Server) handleGetParty(w http.ResponseWriter, r *http.Request) {
	partyID, ok := partyIDParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid party id")
		return
	}

	p, err := s.store.GetParty(r.Context(), partyID)
	if err != nil {
		writeStoreError(w, err, "get party")
		return
	}

	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleSetStatus(w http.ResponseWriter, r *http.Request) {
	userID := callerID(r)
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "missing user context")
		return
	}
	partyID, ok := partyIDParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid party id")
		return
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	body.Status = strings.TrimSpace(body.Status)
	if !validStatus(body.Status) {
		writeError(w, http.StatusBadRequest, "status must be Pending, Live or Ended")
		return
	}

	p, err := s.store.SetStatus(r.Context(), partyID, userID, body.Status)
	if err != nil {
		writeStoreError(w, err, "set status")
		return
	}

	s.bc.PublishParty(r.Context(), p)

	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleSetCurrentTrack(w http.ResponseWriter, r *http.Request) {
	userID := callerID(r)
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "missing user context")
		return
	}
	partyID, ok := partyIDParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid party id")
		return
	}

	var body struct {
		Track             Track     `json:"track"`
		PlaybackTimestamp time.Time `json:"playbackTimestamp"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	body.Track.ID = strings.TrimSpace(body.Track.ID)
	body.Track.Name = strings.TrimSpace(body.Track.Name)
	body.Track.Artist = strings.TrimSpace(body.Track.Artist)
	if body.Track.ID == "" || body.Track.Name == "" || body.Track.Artist == "" {
		writeError(w, http.StatusBadRequest, "track id, name and artist are required")
		return
	}
	if body.PlaybackTimestamp.IsZero() {
		body.PlaybackTimestamp = time.Now().UTC()
	}

	p, err := s.store.SetCurrentTrack(r.Context(), partyID, userID, body.Track, body.PlaybackTimestamp)
	if err != nil {
		writeStoreError(w, err, "set current track")
		return
	}

	s.bc.PublishParty(r.Context(), p)

	writeJSON(w, http.StatusOK, p)
}
