package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // В продакшене нужно ограничить домены
	},
}

// EventsWebSocket стримит уведомления подключенным клиентам
func (h *Handlers) EventsWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("failed to upgrade to websocket", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse("websocket_failed", "Failed to establish WebSocket connection"))
		return
	}

	h.hub.Register(conn)
	h.logger.Info("websocket client connected", "clients", h.hub.ClientCount())

	// Держим соединение открытым; hub пишет, мы только следим за разрывом
	defer func() {
		h.hub.Unregister(conn)
		conn.Close()
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			h.logger.Debug("websocket client disconnected", "error", err)
			return
		}
	}
}
