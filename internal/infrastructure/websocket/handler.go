package websocket

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"collab-relay/pkg/logger"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true // origin policy is enforced by the HTTP CORS layer
	},
}

// Handler upgrades /ws requests and wires each connection into the hub.
type Handler struct {
	hub            Hub
	sendBuffer     int
	maxMessageSize int64
	log            logger.Logger
}

func NewHandler(hub Hub, sendBuffer int, maxMessageSize int64, log logger.Logger) *Handler {
	return &Handler{
		hub:            hub,
		sendBuffer:     sendBuffer,
		maxMessageSize: maxMessageSize,
		log:            log,
	}
}

func (h *Handler) HandleConnection(c echo.Context) error {
	ws, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		h.log.Error("Failed to upgrade connection", "error", err)
		return nil
	}

	conn := NewConnection(uuid.NewString(), ws, h.sendBuffer, h.log)
	h.hub.Register(conn)

	go conn.WritePump()
	go conn.ReadPump(h.hub, h.maxMessageSize)

	return nil
}
