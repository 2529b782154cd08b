package server

import (
	"fmt"
	"log/slog"

	gorilla "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

var upgrader = gorilla.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

func (s *Server) handleWebSocket(c echo.Context) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return fmt.Errorf("failed to upgrade WebSocket: %w", err)
	}

	if err := s.hub.Register(conn); err != nil {
		slog.Warn("Failed to register dashboard client", "error", err)
		return nil
	}
	defer s.hub.Unregister(conn)

	// Read pump, blocks until the connection closes. Clients only
	// listen; anything they send is discarded.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	return nil
}
