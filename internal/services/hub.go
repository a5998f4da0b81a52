package services

import (
	"context"
	"encoding/json"

	"collab-relay/internal/domain"
	"collab-relay/pkg/logger"
)

type inboundEvent struct {
	conn domain.Connection
	env  domain.Envelope
}

// Hub owns the room store and the connection registry. All mutation
// happens on the single goroutine running Run, so every handler runs to
// completion before the next event is processed and compound operations
// (mutate, then broadcast) are atomic with respect to each other.
type Hub struct {
	store    *RoomStore
	registry *Registry
	log      logger.Logger

	register   chan domain.Connection
	unregister chan domain.Connection
	inbound    chan inboundEvent
	statsReq   chan chan domain.StatsSnapshot
}

func NewHub(log logger.Logger) *Hub {
	return &Hub{
		store:      NewRoomStore(),
		registry:   NewRegistry(),
		log:        log,
		register:   make(chan domain.Connection),
		unregister: make(chan domain.Connection),
		inbound:    make(chan inboundEvent),
		statsReq:   make(chan chan domain.StatsSnapshot),
	}
}

// Run processes events until the context is cancelled. It must be
// running before connections are registered.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case conn := <-h.register:
			h.registry.AddConnection(conn)
			h.log.Info("Connection registered", "conn_id", conn.ID())

		case conn := <-h.unregister:
			h.handleDisconnect(conn)

		case ev := <-h.inbound:
			h.handleEvent(ev.conn, ev.env)

		case reply := <-h.statsReq:
			reply <- h.snapshot()

		case <-ctx.Done():
			return
		}
	}
}

// Register hands a freshly accepted connection to the hub loop.
func (h *Hub) Register(conn domain.Connection) {
	h.register <- conn
}

// Unregister runs full disconnect cleanup for the connection: room
// membership, broadcaster slot and presence entry.
func (h *Hub) Unregister(conn domain.Connection) {
	h.unregister <- conn
}

// Dispatch queues an inbound event for processing.
func (h *Hub) Dispatch(conn domain.Connection, env domain.Envelope) {
	h.inbound <- inboundEvent{conn: conn, env: env}
}

// Snapshot reads occupancy counters off the hub loop. Blocks until the
// loop services the request.
func (h *Hub) Snapshot() domain.StatsSnapshot {
	reply := make(chan domain.StatsSnapshot, 1)
	h.statsReq <- reply
	return <-reply
}

func (h *Hub) snapshot() domain.StatsSnapshot {
	return domain.StatsSnapshot{
		Connections:  h.registry.ConnectionCount(),
		Rooms:        h.store.Len(),
		Participants: h.store.ParticipantCount(),
		OnlineUsers:  h.registry.UserCount(),
	}
}

func (h *Hub) handleEvent(conn domain.Connection, env domain.Envelope) {
	switch env.Event {
	case domain.EventRegisterUser:
		var p domain.RegisterUserPayload
		if !h.decode(conn, env, &p) {
			return
		}
		if p.UserID == "" {
			h.sendError(conn, "userId is required")
			return
		}
		h.handleRegisterUser(conn, p)

	case domain.EventJoinRoom:
		var p domain.RoomPayload
		if !h.decode(conn, env, &p) {
			return
		}
		if p.RoomID == "" {
			h.sendError(conn, "roomId is required")
			return
		}
		h.handleJoinRoom(conn, p.RoomID)

	case domain.EventLeaveRoom:
		// a missing or empty roomId is a no-op, not an error
		if len(env.Data) == 0 {
			return
		}
		var p domain.RoomPayload
		if !h.decode(conn, env, &p) {
			return
		}
		h.handleLeaveRoom(conn, p.RoomID)

	case domain.EventBroadcaster:
		var p domain.RoomPayload
		if !h.decode(conn, env, &p) {
			return
		}
		if p.RoomID == "" {
			h.sendError(conn, "roomId is required")
			return
		}
		h.handleBroadcaster(conn, p.RoomID)

	case domain.EventWatcher:
		var p domain.RoomPayload
		if !h.decode(conn, env, &p) {
			return
		}
		if p.RoomID == "" {
			h.sendError(conn, "roomId is required")
			return
		}
		h.handleWatcher(conn, p.RoomID)

	case domain.EventOffer, domain.EventAnswer, domain.EventCandidate:
		var p domain.SignalPayload
		if !h.decode(conn, env, &p) {
			return
		}
		if p.Target == "" {
			h.sendError(conn, "target is required")
			return
		}
		h.handleSignal(conn, env.Event, p)

	case domain.EventChatMessage:
		var p domain.ChatMessagePayload
		if !h.decode(conn, env, &p) {
			return
		}
		if p.RoomID == "" {
			h.sendError(conn, "roomId is required")
			return
		}
		h.handleChatMessage(conn, p)

	case domain.EventPrivateMessage:
		var p domain.PrivateMessagePayload
		if !h.decode(conn, env, &p) {
			return
		}
		if p.ReceiverID == "" {
			h.sendError(conn, "receiverId is required")
			return
		}
		h.handlePrivateMessage(conn, p)

	case domain.EventWhiteboardUpdate:
		var p domain.WhiteboardUpdatePayload
		if !h.decode(conn, env, &p) {
			return
		}
		if p.RoomID == "" {
			h.sendError(conn, "roomId is required")
			return
		}
		h.handleWhiteboardUpdate(conn, p)

	case domain.EventSlidesUpdate:
		var p domain.SlidesUpdatePayload
		if !h.decode(conn, env, &p) {
			return
		}
		if p.RoomID == "" {
			h.sendError(conn, "roomId is required")
			return
		}
		h.handleSlidesUpdate(conn, p)

	case domain.EventSlideChanged:
		var p domain.SlideChangedPayload
		if !h.decode(conn, env, &p) {
			return
		}
		if p.RoomID == "" {
			h.sendError(conn, "roomId is required")
			return
		}
		h.handleSlideChanged(conn, p)

	default:
		h.log.Warn("Unknown event", "event", env.Event, "conn_id", conn.ID())
	}
}

// decode unmarshals the envelope payload into v. A failure answers the
// sender with an error event so malformed messages never reach room or
// registry state.
func (h *Hub) decode(conn domain.Connection, env domain.Envelope, v interface{}) bool {
	if err := json.Unmarshal(env.Data, v); err != nil {
		h.log.Warn("Malformed payload", "event", env.Event, "conn_id", conn.ID(), "error", err)
		h.sendError(conn, "malformed "+env.Event+" payload")
		return false
	}
	return true
}

func (h *Hub) sendError(conn domain.Connection, message string) {
	if err := conn.Send(&domain.Outbound{
		Event: domain.EventError,
		Data:  domain.ErrorPayload{Message: message},
	}); err != nil {
		h.log.Error("Failed to send error event", "conn_id", conn.ID(), "error", err)
	}
}

// broadcastRoom delivers the event to every participant except
// excludeID. Pass an empty excludeID to include everyone.
func (h *Hub) broadcastRoom(room *domain.Room, excludeID string, msg *domain.Outbound) {
	for id, conn := range room.Participants {
		if id == excludeID {
			continue
		}
		if err := conn.Send(msg); err != nil {
			h.log.Error("Failed to send event", "event", msg.Event, "conn_id", id, "error", err)
		}
	}
}

// broadcastAll delivers the event to every live connection, in or out
// of rooms. Presence is global.
func (h *Hub) broadcastAll(msg *domain.Outbound) {
	for id, conn := range h.registry.conns {
		if err := conn.Send(msg); err != nil {
			h.log.Error("Failed to send event", "event", msg.Event, "conn_id", id, "error", err)
		}
	}
}
