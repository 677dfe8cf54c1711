package party

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func (s *Server) handleListQueue(w http.ResponseWriter, r *http.Request) {
	partyID, ok := partyIDParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid party id")
		return
	}

	entries, err := s.store.ListQueue(r.Context(), partyID)
	if err != nil {
		writeStoreError(w, err, "list queue")
		return
	}

	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleEnqueue(w http.ResponseWriter, r *http.Request) {
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
		Track Track `json:"track"`
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
	if len(body.Track.Name) > 300 {
		writeError(w, http.StatusBadRequest, "track name is too long")
		return
	}
	if len(body.Track.Artist) > 200 {
		writeError(w, http.StatusBadRequest, "artist is too long")
		return
	}

	entry, err := s.store.Enqueue(r.Context(), partyID, body.Track, &userID)
	if err != nil {
		writeStoreError(w, err, "enqueue")
		return
	}

	s.bc.PublishQueue(r.Context(), partyID)

	writeJSON(w, http.StatusCreated, entry)
}

func (s *Server) handleRemoveQueueEntry(w http.ResponseWriter, r *http.Request) {
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
	entryID := chi.URLParam(r, "entryId")
	if _, err := uuid.Parse(entryID); err != nil {
		writeError(w, http.StatusBadRequest, "invalid queue entry id")
		return
	}

	if err := s.store.RemoveQueueEntry(r.Context(), partyID, entryID); err != nil {
		writeStoreError(w, err, "remove queue entry")
		return
	}

	s.bc.PublishQueue(r.Context(), partyID)

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleVoteQueueEntry(w http.ResponseWriter, r *http.Request) {
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
	entryID := chi.URLParam(r, "entryId")
	if _, err := uuid.Parse(entryID); err != nil {
		writeError(w, http.StatusBadRequest, "invalid queue entry id")
		return
	}

	entry, err := s.store.VoteQueueEntry(r.Context(), partyID, entryID)
	if err != nil {
		writeStoreError(w, err, "vote queue entry")
		return
	}

	s.bc.PublishQueue(r.Context(), partyID)

	writeJSON(w, http.StatusOK, map[string]any{"voteCount": entry.VoteCount})
}
