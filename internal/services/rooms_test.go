package services

import (
	"sort"
	"testing"
)

func TestRoomStoreBackReferenceIndex(t *testing.T) {
	s := NewRoomStore()
	a := &fakeConn{id: "a"}

	r1 := s.GetOrCreate("r1")
	r2 := s.GetOrCreate("r2")
	s.AddParticipant(r1, a)
	s.AddParticipant(r2, a)

	got := s.RoomsFor("a")
	sort.Strings(got)
	if len(got) != 2 || got[0] != "r1" || got[1] != "r2" {
		t.Fatalf("index should list both rooms, got %v", got)
	}

	s.RemoveParticipant(r1, "a")
	if got := s.RoomsFor("a"); len(got) != 1 || got[0] != "r2" {
		t.Errorf("index should shrink with membership, got %v", got)
	}

	s.RemoveParticipant(r2, "a")
	if got := s.RoomsFor("a"); got != nil {
		t.Errorf("index entry should vanish with the last membership, got %v", got)
	}
}

func TestRoomStoreRemoveParticipant(t *testing.T) {
	s := NewRoomStore()
	a := &fakeConn{id: "a"}
	b := &fakeConn{id: "b"}

	room := s.GetOrCreate("r1")
	s.AddParticipant(room, a)
	s.AddParticipant(room, b)
	room.Broadcaster = "a"

	removed, wasBroadcaster := s.RemoveParticipant(room, "a")
	if !removed || !wasBroadcaster {
		t.Fatalf("expected removed broadcaster, got removed=%v wasBroadcaster=%v", removed, wasBroadcaster)
	}
	if room.Broadcaster != "" {
		t.Error("broadcaster slot should be cleared")
	}
	if s.Get("r1") == nil {
		t.Error("room with remaining participants must survive")
	}

	// removing a non-member is a safe no-op
	removed, _ = s.RemoveParticipant(room, "a")
	if removed {
		t.Error("second removal should report nothing removed")
	}

	s.RemoveParticipant(room, "b")
	if s.Get("r1") != nil {
		t.Error("empty room must be deleted synchronously")
	}
}

func TestRoomStoreCounters(t *testing.T) {
	s := NewRoomStore()
	a := &fakeConn{id: "a"}
	b := &fakeConn{id: "b"}

	r1 := s.GetOrCreate("r1")
	r2 := s.GetOrCreate("r2")
	s.AddParticipant(r1, a)
	s.AddParticipant(r2, a)
	s.AddParticipant(r2, b)

	if s.Len() != 2 {
		t.Errorf("expected 2 rooms, got %d", s.Len())
	}
	if s.ParticipantCount() != 3 {
		t.Errorf("expected 3 memberships, got %d", s.ParticipantCount())
	}
}
