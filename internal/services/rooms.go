package services

import "collab-relay/internal/domain"

// RoomStore maps room IDs to live room state and keeps a connection ->
// room-ids back-reference so disconnect cleanup does not need to scan
// every room. It is not safe for concurrent use; the hub loop is its
// only caller.
type RoomStore struct {
	rooms  map[string]*domain.Room
	byConn map[string]map[string]struct{} // connection ID -> room IDs
}

func NewRoomStore() *RoomStore {
	return &RoomStore{
		rooms:  make(map[string]*domain.Room),
		byConn: make(map[string]map[string]struct{}),
	}
}

func (s *RoomStore) Get(roomID string) *domain.Room {
	return s.rooms[roomID]
}

// GetOrCreate returns the room, creating it with empty defaults on
// first join.
func (s *RoomStore) GetOrCreate(roomID string) *domain.Room {
	room := s.rooms[roomID]
	if room == nil {
		room = &domain.Room{
			ID:           roomID,
			Participants: make(map[string]domain.Connection),
		}
		s.rooms[roomID] = room
	}
	return room
}

// AddParticipant inserts the connection into the room and records the
// back-reference.
func (s *RoomStore) AddParticipant(room *domain.Room, conn domain.Connection) {
	room.Participants[conn.ID()] = conn

	ids := s.byConn[conn.ID()]
	if ids == nil {
		ids = make(map[string]struct{})
		s.byConn[conn.ID()] = ids
	}
	ids[room.ID] = struct{}{}
}

// RemoveParticipant takes the connection out of the room, clears the
// broadcaster slot if it held it, and deletes the room the moment it
// becomes empty. Safe to call for a connection that is not a member.
func (s *RoomStore) RemoveParticipant(room *domain.Room, connID string) (removed, wasBroadcaster bool) {
	if !room.HasParticipant(connID) {
		return false, false
	}
	delete(room.Participants, connID)

	if ids := s.byConn[connID]; ids != nil {
		delete(ids, room.ID)
		if len(ids) == 0 {
			delete(s.byConn, connID)
		}
	}

	if room.Broadcaster == connID {
		room.Broadcaster = ""
		wasBroadcaster = true
	}

	if room.Empty() {
		delete(s.rooms, room.ID)
	}
	return true, wasBroadcaster
}

// RoomsFor returns the IDs of every room the connection is currently
// in. The result is a copy, safe to mutate against during cleanup.
func (s *RoomStore) RoomsFor(connID string) []string {
	ids := s.byConn[connID]
	if len(ids) == 0 {
		return nil
	}
	out := make([]string, 0, len(ids))
	for id := range ids {
		out = append(out, id)
	}
	return out
}

func (s *RoomStore) Len() int {
	return len(s.rooms)
}

func (s *RoomStore) ParticipantCount() int {
	n := 0
	for _, room := range s.rooms {
		n += len(room.Participants)
	}
	return n
}
