package session

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/websocket"
)

// Handler upgrades requests to WebSocket sessions. A nil checkOrigin uses
// the same-origin default of the upgrader.
func Handler(cfg Config, checkOrigin func(r *http.Request) bool) http.HandlerFunc {
	upgrader := websocket.Upgrader{CheckOrigin: checkOrigin}

	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("session: websocket upgrade: %v", err)
			return
		}
		defer conn.Close()

		sess := New(cfg, conn)
		defer sess.Close()
		sess.Start()

		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					log.Printf("session %s: websocket read: %v", sess.ID(), err)
				}
				return
			}

			var req Request
			if err := json.Unmarshal(msg, &req); err != nil {
				sess.sendError("invalid message format")
				continue
			}
			sess.Handle(req)
		}
	}
}
