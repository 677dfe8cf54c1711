package party

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestHandleListQueue(t *testing.T) {
	t.Run("ordered entries", func(t *testing.T) {
		mockStore := new(MockStore)
		r := newTestServer(mockStore).Router()

		entries := []QueueEntry{
			{ID: "e1", PartyID: testPartyID, TrackID: "t1", SequenceNumber: 1},
			{ID: "e2", PartyID: testPartyID, TrackID: "t2", SequenceNumber: 2},
		}
		mockStore.On("ListQueue", mock.Anything, testPartyID).Return(entries, nil)

		req := httptest.NewRequest("GET", "/parties/"+testPartyID+"/queue", nil)
		req.Header.Set("X-User-Id", "u1")
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		var got []QueueEntry
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Len(t, got, 2)
		assert.Equal(t, int64(1), got[0].SequenceNumber)
		assert.Equal(t, int64(2), got[1].SequenceNumber)
	})

	t.Run("empty queue is an empty list", func(t *testing.T) {
		mockStore := new(MockStore)
		r := newTestServer(mockStore).Router()

		mockStore.On("ListQueue", mock.Anything, testPartyID).Return([]QueueEntry{}, nil)

		req := httptest.NewRequest("GET", "/parties/"+testPartyID+"/queue", nil)
		req.Header.Set("X-User-Id", "u1")
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, "[]", rec.Body.String())
	})
}

func TestHandleEnqueue(t *testing.T) {
	track := Track{ID: "tr1", Name: "Song", Artist: "Artist"}

	enqueue := func(r http.Handler, userID string, tr Track) *httptest.ResponseRecorder {
		b, _ := json.Marshal(map[string]any{"track": tr})
		req := httptest.NewRequest("POST", "/parties/"+testPartyID+"/queue", bytes.NewReader(b))
		if userID != "" {
			req.Header.Set("X-User-Id", userID)
		}
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		return rec
	}

	t.Run("success", func(t *testing.T) {
		mockStore := new(MockStore)
		r := newTestServer(mockStore).Router()

		userID := "u1"
		entry := &QueueEntry{ID: testEntryID, PartyID: testPartyID, TrackID: "tr1", SequenceNumber: 3, AddedBy: &userID}
		mockStore.On("Enqueue", mock.Anything, testPartyID, track, &userID).Return(entry, nil)

		rec := enqueue(r, "u1", track)
		assert.Equal(t, http.StatusCreated, rec.Code)

		var got QueueEntry
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, int64(3), got.SequenceNumber)
		assert.Equal(t, 0, got.VoteCount)
	})

	t.Run("ended party", func(t *testing.T) {
		mockStore := new(MockStore)
		r := newTestServer(mockStore).Router()

		userID := "u1"
		mockStore.On("Enqueue", mock.Anything, testPartyID, track, &userID).Return(nil, ErrInvalidTransition)

		rec := enqueue(r, "u1", track)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("contention maps to retryable 503", func(t *testing.T) {
		mockStore := new(MockStore)
		r := newTestServer(mockStore).Router()

		userID := "u1"
		mockStore.On("Enqueue", mock.Anything, testPartyID, track, &userID).Return(nil, ErrContention)

		rec := enqueue(r, "u1", track)
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Equal(t, "1", rec.Header().Get("Retry-After"))
	})

	t.Run("incomplete track", func(t *testing.T) {
		mockStore := new(MockStore)
		r := newTestServer(mockStore).Router()

		rec := enqueue(r, "u1", Track{Name: "Song"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		mockStore.AssertNotCalled(t, "Enqueue", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("missing user id", func(t *testing.T) {
		mockStore := new(MockStore)
		r := newTestServer(mockStore).Router()

		rec := enqueue(r, "", track)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestHandleRemoveQueueEntry(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		mockStore := new(MockStore)
		r := newTestServer(mockStore).Router()

		mockStore.On("RemoveQueueEntry", mock.Anything, testPartyID, testEntryID).Return(nil)

		req := httptest.NewRequest("DELETE", "/parties/"+testPartyID+"/queue/"+testEntryID, nil)
		req.Header.Set("X-User-Id", "u1")
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("missing entry", func(t *testing.T) {
		mockStore := new(MockStore)
		r := newTestServer(mockStore).Router()

		mockStore.On("RemoveQueueEntry", mock.Anything, testPartyID, testEntryID).Return(ErrNotFound)

		req := httptest.NewRequest("DELETE", "/parties/"+testPartyID+"/queue/"+testEntryID, nil)
		req.Header.Set("X-User-Id", "u1")
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestHandleVoteQueueEntry(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		mockStore := new(MockStore)
		r := newTestServer(mockStore).Router()

		entry := &QueueEntry{ID: testEntryID, PartyID: testPartyID, VoteCount: 4}
		mockStore.On("VoteQueueEntry", mock.Anything, testPartyID, testEntryID).Return(entry, nil)

		req := httptest.NewRequest("POST", "/parties/"+testPartyID+"/queue/"+testEntryID+"/vote", nil)
		req.Header.Set("X-User-Id", "u1")
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		var resp map[string]int
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, 4, resp["voteCount"])
	})

	t.Run("missing entry", func(t *testing.T) {
		mockStore := new(MockStore)
		r := newTestServer(mockStore).Router()

		mockStore.On("VoteQueueEntry", mock.Anything, testPartyID, testEntryID).Return(nil, ErrNotFound)

		req := httptest.NewRequest("POST", "/parties/"+testPartyID+"/queue/"+testEntryID+"/vote", nil)
		req.Header.Set("X-User-Id", "u1")
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
