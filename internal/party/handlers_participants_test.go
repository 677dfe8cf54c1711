package party

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestHandleJoin(t *testing.T) {
	join := func(r http.Handler, userID string) *httptest.ResponseRecorder {
		req := httptest.NewRequest("POST", "/parties/"+testPartyID+"/participants", nil)
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

		pt := &Participant{ID: "p1", PartyID: testPartyID, UserID: "u2", Role: RoleListener}
		mockStore.On("Join", mock.Anything, testPartyID, "u2").Return(pt, nil)

		rec := join(r, "u2")
		assert.Equal(t, http.StatusCreated, rec.Code)

		var got Participant
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, RoleListener, got.Role)
	})

	t.Run("duplicate join conflicts", func(t *testing.T) {
		mockStore := new(MockStore)
		r := newTestServer(mockStore).Router()

		mockStore.On("Join", mock.Anything, testPartyID, "u2").Return(nil, ErrConflict)

		rec := join(r, "u2")
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("unknown party", func(t *testing.T) {
		mockStore := new(MockStore)
		r := newTestServer(mockStore).Router()

		mockStore.On("Join", mock.Anything, testPartyID, "u2").Return(nil, ErrNotFound)

		rec := join(r, "u2")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestHandleLeave(t *testing.T) {
	t.Run("leave is a no-op for non-members", func(t *testing.T) {
		mockStore := new(MockStore)
		r := newTestServer(mockStore).Router()

		mockStore.On("Leave", mock.Anything, testPartyID, "u2").Return(nil)

		req := httptest.NewRequest("DELETE", "/parties/"+testPartyID+"/participants/me", nil)
		req.Header.Set("X-User-Id", "u2")
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}

func TestHandleListParticipants(t *testing.T) {
	t.Run("host plus listener", func(t *testing.T) {
		mockStore := new(MockStore)
		r := newTestServer(mockStore).Router()

		participants := []Participant{
			{ID: "p1", PartyID: testPartyID, UserID: "h1", Role: RoleHost},
			{ID: "p2", PartyID: testPartyID, UserID: "u2", Role: RoleListener},
		}
		mockStore.On("ListParticipants", mock.Anything, testPartyID).Return(participants, nil)

		req := httptest.NewRequest("GET", "/parties/"+testPartyID+"/participants", nil)
		req.Header.Set("X-User-Id", "u2")
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		var got []Participant
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Len(t, got, 2)

		hosts := 0
		for _, pt := range got {
			if pt.Role == RoleHost {
				hosts++
			}
		}
		assert.Equal(t, 1, hosts)
	})
}
