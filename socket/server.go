package socket

import (
	socketio "github.com/googollee/go-socket.io"
	"go.uber.org/zap"
)

// Hub is the realtime channel for score notifications. Clients join their
// own room after connecting and receive notification events pushed there.
type Hub struct {
	Server *socketio.Server
	log    *zap.Logger
}

// NewHub initializes the Socket.IO server and its event handlers.
func NewHub(log *zap.Logger) *Hub {
	server := socketio.NewServer(nil)
	hub := &Hub{Server: server, log: log}

	server.OnConnect("/", func(c socketio.Conn) error {
		log.Debug("socket connected", zap.String("id", c.ID()))
		return nil
	})

	// Clients join their per-user room to receive score notifications.
	server.OnEvent("/", "join", func(c socketio.Conn, userID string) {
		if userID == "" {
			log.Warn("join without userId", zap.String("id", c.ID()))
			return
		}
		c.Join(roomForUser(userID))
	})

	server.OnDisconnect("/", func(c socketio.Conn, reason string) {
		log.Debug("socket disconnected", zap.String("id", c.ID()), zap.String("reason", reason))
	})

	return hub
}

func roomForUser(userID string) string {
	return "user:" + userID
}

// BroadcastToUser pushes an event to every connection in the user's room.
func (h *Hub) BroadcastToUser(userID, event string, payload interface{}) {
	h.Server.BroadcastToRoom("/", roomForUser(userID), event, payload)
}
