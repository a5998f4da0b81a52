package domain

import "encoding/json"

// Inbound event names (client -> server).
const (
	EventRegisterUser     = "registerUser"
	EventJoinRoom         = "joinRoom"
	EventLeaveRoom        = "leaveRoom"
	EventBroadcaster      = "broadcaster"
	EventWatcher          = "watcher"
	EventOffer            = "offer"
	EventAnswer           = "answer"
	EventCandidate        = "candidate"
	EventChatMessage      = "chatMessage"
	EventPrivateMessage   = "privateMessage"
	EventWhiteboardUpdate = "whiteboardUpdate"
	EventSlidesUpdate     = "slidesUpdate"
	EventSlideChanged     = "slideChanged"
)

// Outbound-only event names (server -> client).
const (
	EventNewParticipant  = "newParticipant"
	EventParticipantLeft = "participantLeft"
	EventNotification    = "notification"
	EventUserStatus      = "userStatus"
	EventOnlineUsers     = "onlineUsers"
	EventDisconnectPeer  = "disconnectPeer"
	EventError           = "error"
)

// Envelope is the wire shape of every inbound message. Data is decoded
// into the per-event payload struct once the event name is known, so
// malformed messages are caught at the boundary.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// Outbound is the wire shape of every server -> client message. From
// carries the originating connection ID for relayed events.
type Outbound struct {
	Event string      `json:"event"`
	From  string      `json:"from,omitempty"`
	Data  interface{} `json:"data,omitempty"`
}

type RegisterUserPayload struct {
	UserID string `json:"userId"`
}

type RoomPayload struct {
	RoomID string `json:"roomId"`
}

// SignalPayload carries a WebRTC handshake primitive (offer, answer or
// ICE candidate) addressed to a single connection. Signal is opaque to
// the relay.
type SignalPayload struct {
	Target string          `json:"target"`
	Signal json.RawMessage `json:"signal"`
}

type ChatMessagePayload struct {
	RoomID   string `json:"roomId,omitempty"`
	SenderID string `json:"senderId"`
	Message  string `json:"message"`
}

type PrivateMessagePayload struct {
	SenderID   string `json:"senderId"`
	ReceiverID string `json:"receiverId"`
	Message    string `json:"message"`
}

type WhiteboardUpdatePayload struct {
	RoomID string          `json:"roomId,omitempty"`
	Delta  json.RawMessage `json:"delta"`
}

type SlidesUpdatePayload struct {
	RoomID       string            `json:"roomId"`
	Slides       []json.RawMessage `json:"slides"`
	CurrentSlide int               `json:"currentSlide"`
	ShowSlides   bool              `json:"showSlides"`
}

type SlideChangedPayload struct {
	RoomID     string `json:"roomId"`
	SlideIndex int    `json:"slideIndex"`
}

type UserStatusPayload struct {
	UserID string `json:"userId"`
	Online bool   `json:"online"`
}

// NotificationPayload accompanies chat and private messages so clients
// can badge unread activity without parsing the message itself.
type NotificationPayload struct {
	Kind   string `json:"kind"`
	From   string `json:"from"`
	RoomID string `json:"roomId,omitempty"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}
