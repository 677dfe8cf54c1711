package party

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
)

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

// writeStoreError maps the store's error taxonomy onto HTTP statuses.
// Contention and unavailability get 503 so clients know a retry is in order;
// everything else is terminal for the call.
func writeStoreError(w http.ResponseWriter, err error, logContext string) {
	switch {
	case errors.Is(err, ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, ErrForbidden):
		writeError(w, http.StatusForbidden, "forbidden")
	case errors.Is(err, ErrInvalidTransition):
		writeError(w, http.StatusConflict, "party state does not allow this")
	case errors.Is(err, ErrConflict):
		writeError(w, http.StatusConflict, "conflict")
	case errors.Is(err, ErrContention):
		w.Header().Set("Retry-After", "1")
		writeError(w, http.StatusServiceUnavailable, "queue is busy, retry")
	case errors.Is(err, ErrStoreUnavailable):
		writeError(w, http.StatusServiceUnavailable, "store unavailable")
	default:
		log.Printf("party-service: %s: %v", logContext, err)
		writeError(w, http.StatusInternalServerError, "database error")
	}
}
