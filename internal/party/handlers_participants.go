package party

import (
	"net/http"
)

func (s *Server) handleJoin(w http.ResponseWriter, r *http.Request) {
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

	pt, err := s.store.Join(r.Context(), partyID, userID)
	if err != nil {
		writeStoreError(w, err, "join party")
		return
	}

	writeJSON(w, http.StatusCreated, pt)
}

func (s *Server) handleLeave(w http.ResponseWriter, r *http.Request) {
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

	if err := s.store.Leave(r.Context(), partyID, userID); err != nil {
		writeStoreError(w, err, "leave party")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListParticipants(w http.ResponseWriter, r *http.Request) {
	partyID, ok := partyIDParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid party id")
		return
	}

	participants, err := s.store.ListParticipants(r.Context(), partyID)
	if err != nil {
		writeStoreError(w, err, "list participants")
		return
	}

	writeJSON(w, http.StatusOK, participants)
}
