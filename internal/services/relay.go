package services

import "collab-relay/internal/domain"

// handleRegisterUser binds the user ID to this connection (last
// register wins), announces the user online to every connection and
// hands the registrant the current online-user snapshot.
func (h *Hub) handleRegisterUser(conn domain.Connection, p domain.RegisterUserPayload) {
	h.registry.RegisterUser(p.UserID, conn)

	h.broadcastAll(&domain.Outbound{
		Event: domain.EventUserStatus,
		Data:  domain.UserStatusPayload{UserID: p.UserID, Online: true},
	})

	if err := conn.Send(&domain.Outbound{
		Event: domain.EventOnlineUsers,
		Data:  h.registry.OnlineUsers(),
	}); err != nil {
		h.log.Error("Failed to send online users", "conn_id", conn.ID(), "error", err)
	}

	h.log.Info("User online", "user_id", p.UserID, "conn_id", conn.ID())
}

// handleBroadcaster records the caller as the room's broadcaster and
// announces it. No election: the last caller silently overwrites any
// prior broadcaster.
func (h *Hub) handleBroadcaster(conn domain.Connection, roomID string) {
	room := h.store.Get(roomID)
	if room == nil || !room.HasParticipant(conn.ID()) {
		return
	}

	room.Broadcaster = conn.ID()

	h.broadcastRoom(room, conn.ID(), &domain.Outbound{
		Event: domain.EventBroadcaster,
		From:  conn.ID(),
	})

	h.log.Info("Broadcaster claimed", "conn_id", conn.ID(), "room_id", roomID)
}

// handleWatcher forwards the watch request to the room's broadcaster
// only. With no broadcaster registered the request is dropped.
func (h *Hub) handleWatcher(conn domain.Connection, roomID string) {
	room := h.store.Get(roomID)
	if room == nil || room.Broadcaster == "" {
		return
	}
	bc := room.Participants[room.Broadcaster]
	if bc == nil {
		return
	}

	if err := bc.Send(&domain.Outbound{
		Event: domain.EventWatcher,
		From:  conn.ID(),
	}); err != nil {
		h.log.Error("Failed to relay watcher", "conn_id", conn.ID(), "room_id", roomID, "error", err)
	}
}

// handleSignal forwards an offer, answer or candidate verbatim to the
// target connection, tagged with the sender's ID. An offline target is
// a silent drop.
func (h *Hub) handleSignal(conn domain.Connection, event string, p domain.SignalPayload) {
	target := h.registry.Connection(p.Target)
	if target == nil {
		h.log.Debug("Signal target not connected", "event", event, "target", p.Target)
		return
	}

	if err := target.Send(&domain.Outbound{
		Event: event,
		From:  conn.ID(),
		Data:  p.Signal,
	}); err != nil {
		h.log.Error("Failed to relay signal", "event", event, "target", p.Target, "error", err)
	}
}

// handleChatMessage delivers the message to the whole room, sender
// included, so every client converges on the same history. Participants
// other than the sender also get a notification for unread badges when
// the message carries a sender identity.
func (h *Hub) handleChatMessage(conn domain.Connection, p domain.ChatMessagePayload) {
	room := h.store.Get(p.RoomID)
	if room == nil {
		return
	}

	h.broadcastRoom(room, "", &domain.Outbound{
		Event: domain.EventChatMessage,
		From:  conn.ID(),
		Data:  domain.ChatMessagePayload{SenderID: p.SenderID, Message: p.Message},
	})

	if p.SenderID != "" {
		h.broadcastRoom(room, conn.ID(), &domain.Outbound{
			Event: domain.EventNotification,
			Data:  domain.NotificationPayload{Kind: domain.EventChatMessage, From: p.SenderID, RoomID: p.RoomID},
		})
	}
}

// handlePrivateMessage resolves the receiver through the presence
// registry. An online receiver gets the message plus a notification;
// the sender always gets the message echoed back so its own UI updates
// whether or not the receiver was reachable.
func (h *Hub) handlePrivateMessage(conn domain.Connection, p domain.PrivateMessagePayload) {
	if receiver := h.registry.UserConnection(p.ReceiverID); receiver != nil {
		msg := &domain.Outbound{
			Event: domain.EventPrivateMessage,
			From:  conn.ID(),
			Data:  p,
		}
		if err := receiver.Send(msg); err != nil {
			h.log.Error("Failed to deliver private message", "receiver_id", p.ReceiverID, "error", err)
		}
		if err := receiver.Send(&domain.Outbound{
			Event: domain.EventNotification,
			Data:  domain.NotificationPayload{Kind: domain.EventPrivateMessage, From: p.SenderID},
		}); err != nil {
			h.log.Error("Failed to deliver notification", "receiver_id", p.ReceiverID, "error", err)
		}
	}

	if err := conn.Send(&domain.Outbound{
		Event: domain.EventPrivateMessage,
		From:  conn.ID(),
		Data:  p,
	}); err != nil {
		h.log.Error("Failed to echo private message", "conn_id", conn.ID(), "error", err)
	}
}

// handleWhiteboardUpdate relays the delta to everyone else in the room.
// Whiteboard state is never stored or replayed to late joiners.
func (h *Hub) handleWhiteboardUpdate(conn domain.Connection, p domain.WhiteboardUpdatePayload) {
	room := h.store.Get(p.RoomID)
	if room == nil {
		return
	}

	h.broadcastRoom(room, conn.ID(), &domain.Outbound{
		Event: domain.EventWhiteboardUpdate,
		From:  conn.ID(),
		Data:  p.Delta,
	})
}

// handleSlidesUpdate replaces the room's slide snapshot in a single
// assignment, then broadcasts it to the whole room including the sender.
func (h *Hub) handleSlidesUpdate(conn domain.Connection, p domain.SlidesUpdatePayload) {
	room := h.store.Get(p.RoomID)
	if room == nil {
		return
	}

	room.Slides = domain.SlideState{
		Slides:       p.Slides,
		CurrentSlide: p.CurrentSlide,
		ShowSlides:   p.ShowSlides,
	}

	h.broadcastRoom(room, "", &domain.Outbound{
		Event: domain.EventSlidesUpdate,
		From:  conn.ID(),
		Data:  room.Slides,
	})
}

// handleSlideChanged updates only the current slide index and
// broadcasts the bare index to the whole room including the sender.
func (h *Hub) handleSlideChanged(conn domain.Connection, p domain.SlideChangedPayload) {
	room := h.store.Get(p.RoomID)
	if room == nil {
		return
	}

	room.Slides.CurrentSlide = p.SlideIndex

	h.broadcastRoom(room, "", &domain.Outbound{
		Event: domain.EventSlideChanged,
		From:  conn.ID(),
		Data:  p.SlideIndex,
	})
}
