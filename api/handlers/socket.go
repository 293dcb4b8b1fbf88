package handlers

import (
	socketio "github.com/googollee/go-socket.io"
	"github.com/googollee/go-socket.io/engineio"
	"github.com/googollee/go-socket.io/engineio/transport"
	"github.com/googollee/go-socket.io/engineio/transport/polling"
	"github.com/googollee/go-socket.io/engineio/transport/websocket"
	"go.uber.org/zap"
)

var server *socketio.Server

// InitializeSocketIO starts the Socket.IO server that pushes realtime order
// and delivery updates to clients. Auth flows do not depend on it.
func InitializeSocketIO() *socketio.Server {
	server = socketio.NewServer(&engineio.Options{
		Transports: []transport.Transport{
			polling.Default,
			websocket.Default,
		},
	})

	server.OnConnect("/", func(s socketio.Conn) error {
		s.SetContext("")
		zap.S().Infow("socket client connected", "id", s.ID())
		return nil
	})

	server.OnError("/", func(s socketio.Conn, e error) {
		zap.S().Errorw("socket error", "error", e)
	})

	server.OnDisconnect("/", func(s socketio.Conn, reason string) {
		zap.S().Infow("socket client disconnected", "id", s.ID(), "reason", reason)
	})

	// clients identify themselves to receive user-scoped events
	server.OnEvent("/", "identity", func(s socketio.Conn, msg map[string]interface{}) {
		userID, ok := msg["userId"].(string)
		if ok {
			s.Join("user:" + userID)
			zap.S().Infow("socket identity set", "userId", userID)
		}
	})

	// delivery partners stream their position; relay it to the order room
	server.OnEvent("/", "updateLocation", func(s socketio.Conn, msg map[string]interface{}) {
		orderID, ok := msg["orderId"].(string)
		if ok {
			server.BroadcastToRoom("/", "order:"+orderID, "updateDeliveryLocation", msg)
		}
	})

	server.OnEvent("/", "joinOrder", func(s socketio.Conn, msg map[string]interface{}) {
		orderID, ok := msg["orderId"].(string)
		if ok {
			s.Join("order:" + orderID)
		}
	})

	server.OnEvent("/", "leaveOrder", func(s socketio.Conn, msg map[string]interface{}) {
		orderID, ok := msg["orderId"].(string)
		if ok {
			s.Leave("order:" + orderID)
		}
	})

	go func() {
		if err := server.Serve(); err != nil {
			zap.S().Fatalw("socket server error", "error", err)
		}
	}()

	return server
}

// EmitToUser pushes an event to every connection identified as the user
func EmitToUser(userID, event string, data map[string]interface{}) {
	if server != nil {
		server.BroadcastToRoom("/", "user:"+userID, event, data)
	}
}
