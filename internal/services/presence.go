package services

import (
	"sort"

	"collab-relay/internal/domain"
)

// Registry tracks every live connection plus the global user -> connection
// presence mapping. At most one connection represents a user at a time;
// a later registration silently overwrites the earlier one. Not safe for
// concurrent use; owned by the hub loop.
type Registry struct {
	conns map[string]domain.Connection // connection ID -> connection
	users map[string]domain.Connection // user ID -> connection
}

func NewRegistry() *Registry {
	return &Registry{
		conns: make(map[string]domain.Connection),
		users: make(map[string]domain.Connection),
	}
}

func (r *Registry) AddConnection(conn domain.Connection) {
	r.conns[conn.ID()] = conn
}

func (r *Registry) Connection(connID string) domain.Connection {
	return r.conns[connID]
}

// RegisterUser binds the user ID to the connection, last register wins.
func (r *Registry) RegisterUser(userID string, conn domain.Connection) {
	r.users[userID] = conn
}

func (r *Registry) UserConnection(userID string) domain.Connection {
	return r.users[userID]
}

// RemoveConnection drops the connection and, if it represented a user,
// that presence entry too. Returns the user ID that went offline, or ""
// when the connection never registered.
func (r *Registry) RemoveConnection(connID string) string {
	delete(r.conns, connID)

	for userID, conn := range r.users {
		if conn.ID() == connID {
			delete(r.users, userID)
			return userID
		}
	}
	return ""
}

// OnlineUsers returns a sorted snapshot of the registered user IDs.
func (r *Registry) OnlineUsers() []string {
	out := make([]string, 0, len(r.users))
	for userID := range r.users {
		out = append(out, userID)
	}
	sort.Strings(out)
	return out
}

func (r *Registry) ConnectionCount() int {
	return len(r.conns)
}

func (r *Registry) UserCount() int {
	return len(r.users)
}
