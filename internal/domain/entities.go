package domain

import "encoding/json"

// SlideState is the replicated slide snapshot of a room. It is
// overwritten as a whole on slidesUpdate so late joiners always see a
// consistent deck.
type SlideState struct {
	Slides       []json.RawMessage `json:"slides"`
	CurrentSlide int               `json:"currentSlide"`
	ShowSlides   bool              `json:"showSlides"`
}

// Room groups connections that share signaling and application state.
// A room exists only while its participant set is non-empty.
type Room struct {
	ID           string
	Participants map[string]Connection // connection ID -> connection
	Broadcaster  string                // connection ID, empty when none
	Slides       SlideState
}

func (r *Room) Empty() bool {
	return len(r.Participants) == 0
}

func (r *Room) HasParticipant(connID string) bool {
	_, ok := r.Participants[connID]
	return ok
}

// StatsSnapshot is a point-in-time view of relay occupancy, read off
// the hub loop for periodic reporting.
type StatsSnapshot struct {
	Connections  int
	Rooms        int
	Participants int
	OnlineUsers  int
}
