package services

import "collab-relay/internal/domain"

// handleJoinRoom creates the room on first join, adds the caller and
// tells the rest of the room. When a deck is being presented the caller
// receives the full slide snapshot before anyone is told about them, so
// late joiners are never left on a blank screen.
func (h *Hub) handleJoinRoom(conn domain.Connection, roomID string) {
	room := h.store.GetOrCreate(roomID)
	h.store.AddParticipant(room, conn)

	if room.Slides.ShowSlides && len(room.Slides.Slides) > 0 {
		if err := conn.Send(&domain.Outbound{
			Event: domain.EventSlidesUpdate,
			Data:  room.Slides,
		}); err != nil {
			h.log.Error("Failed to send slide snapshot", "conn_id", conn.ID(), "room_id", roomID, "error", err)
		}
	}

	h.broadcastRoom(room, conn.ID(), &domain.Outbound{
		Event: domain.EventNewParticipant,
		Data:  conn.ID(),
	})

	h.log.Info("Joined room", "conn_id", conn.ID(), "room_id", roomID, "participants", len(room.Participants))
}

func (h *Hub) handleLeaveRoom(conn domain.Connection, roomID string) {
	if roomID == "" {
		return
	}
	room := h.store.Get(roomID)
	if room == nil {
		return
	}
	h.removeFromRoom(room, conn.ID())
}

// handleDisconnect applies leave semantics to every room the connection
// was in, then clears its presence entry. Exactly one offline broadcast
// goes out when the connection represented a registered user.
func (h *Hub) handleDisconnect(conn domain.Connection) {
	connID := conn.ID()

	for _, roomID := range h.store.RoomsFor(connID) {
		room := h.store.Get(roomID)
		if room == nil {
			continue
		}
		h.removeFromRoom(room, connID)
	}

	if userID := h.registry.RemoveConnection(connID); userID != "" {
		h.broadcastAll(&domain.Outbound{
			Event: domain.EventUserStatus,
			Data:  domain.UserStatusPayload{UserID: userID, Online: false},
		})
		h.log.Info("User offline", "user_id", userID, "conn_id", connID)
	}

	h.log.Info("Connection closed", "conn_id", connID)
}

// removeFromRoom is the shared removal path for leave and disconnect:
// drop membership, clear the broadcaster slot if held, notify the
// remaining participants, delete the room once empty. Idempotent for
// connections that already left.
func (h *Hub) removeFromRoom(room *domain.Room, connID string) {
	removed, wasBroadcaster := h.store.RemoveParticipant(room, connID)
	if !removed {
		return
	}

	h.broadcastRoom(room, connID, &domain.Outbound{
		Event: domain.EventParticipantLeft,
		Data:  connID,
	})

	if wasBroadcaster {
		// watchers tear down their peer connections on this
		h.broadcastRoom(room, connID, &domain.Outbound{
			Event: domain.EventDisconnectPeer,
			From:  connID,
		})
	}

	h.log.Info("Left room", "conn_id", connID, "room_id", room.ID, "participants", len(room.Participants))
}
