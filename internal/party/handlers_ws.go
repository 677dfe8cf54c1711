package party

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

const (
	wsWriteWait  = 10 * time.Second
	wsPongWait   = 60 * time.Second
	wsPingPeriod = (wsPongWait * 9) / 10
)

var upgrader = websocket.Upgrader{
	// Origin checks belong to the gateway in front of this service.
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type wsMessage struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// handlePartyWS streams broadcaster snapshots for one party over a websocket.
// The client gets the current party and queue immediately, then a
// "party.updated" or "queue.updated" message for every committed change.
func (s *Server) handlePartyWS(w http.ResponseWriter, r *http.Request) {
	partyID, ok := partyIDParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid party id")
		return
	}

	p, err := s.store.GetParty(r.Context(), partyID)
	if err != nil {
		writeStoreError(w, err, "ws get party")
		return
	}
	entries, err := s.store.ListQueue(r.Context(), partyID)
	if err != nil {
		writeStoreError(w, err, "ws list queue")
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("party-service: ws upgrade: %v", err)
		return
	}

	partySub := s.bc.SubscribeParty(r.Context(), partyID)
	queueSub := s.bc.SubscribeQueue(r.Context(), partyID)

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		conn.SetReadLimit(512)
		_ = conn.SetReadDeadline(time.Now().Add(wsPongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(wsPongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	// The write loop runs on the handler goroutine: returning from here
	// cancels the request context, so the subscriptions must outlive it not
	// a moment longer than the connection does.
	defer func() {
		partySub.Unsubscribe()
		queueSub.Unsubscribe()
		_ = conn.Close()
	}()

	write := func(msg wsMessage) bool {
		data, err := json.Marshal(msg)
		if err != nil {
			log.Printf("party-service: ws marshal: %v", err)
			return true
		}
		_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
		return conn.WriteMessage(websocket.TextMessage, data) == nil
	}

	if !write(wsMessage{Type: "party.snapshot", Payload: p}) {
		return
	}
	if !write(wsMessage{Type: "queue.snapshot", Payload: entries}) {
		return
	}

	ticker := time.NewTicker(wsPingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-closed:
			return
		case snapshot, ok := <-partySub.C:
			if !ok {
				return
			}
			if !write(wsMessage{Type: "party.updated", Payload: snapshot}) {
				return
			}
		case listing, ok := <-queueSub.C:
			if !ok {
				return
			}
			if !write(wsMessage{Type: "queue.updated", Payload: listing}) {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
